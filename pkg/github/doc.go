// Package github provides a minimal client for the GitHub repository
// contents API: fetching a single file with its revision SHA, and
// conditionally updating it.
//
// The update path implements GitHub's optimistic-concurrency contract:
// a PUT carries the SHA of the content it was computed from, and the
// server rejects the write when that SHA no longer matches the current
// file. That rejection surfaces as ErrConflict and is never retried or
// merged here -- callers decide what to do on the next cycle.
package github
