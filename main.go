package main

import "github.com/april-ivy/april-ivy/cmd"

func main() {
	cmd.Execute()
}
