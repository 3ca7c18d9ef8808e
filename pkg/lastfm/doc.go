// Package lastfm provides a minimal client for the Last.fm API 2.0
// recent-tracks endpoint.
//
// The package fetches a user's most recent track and normalizes it into
// a Status suitable for rendering. It is read-only: no authentication
// flow, no scrobbling.
//
// Example usage:
//
//	import "github.com/april-ivy/april-ivy/pkg/lastfm"
//
//	client, err := lastfm.NewClient(lastfm.Config{
//	    APIKey: "your-api-key",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	status, err := client.RecentStatus(ctx, "someuser")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if status == nil {
//	    fmt.Println("no listening history")
//	}
package lastfm
