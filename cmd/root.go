package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "april-ivy",
	Short: "Keep a GitHub profile README in sync with Last.fm",
	Long: `april-ivy is an unattended daemon that polls a Last.fm account for
the most recent track and keeps a "now playing / last played" snippet
in a GitHub-hosted README up to date.

It only writes when something actually changed: a local cache of the
last published status suppresses redundant commits across restarts,
and every write is conditional on the README's revision SHA so a
concurrent edit is never overwritten.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
