// Package httputil provides HTTP utilities for fetching remote profiles.
//
// # Overview
//
// This package provides the infrastructure used whenever flamelens reads a
// profile from an http(s) URL instead of a local file:
//
//   - [Get]: size-limited fetch with automatic retry
//   - [Retry]: generic retry with exponential backoff
//
// # Retry
//
// [Retry] re-runs an operation for transient failures only:
//
//   - Network errors
//   - 5xx server errors
//   - 429 rate limit responses
//
// Anything else (404, malformed input) returns immediately. The delay
// doubles after each failed attempt.
//
//	err := httputil.Retry(ctx, 3, time.Second, func() error {
//	    return fetchOnce()
//	})
//
// # Size limits
//
// [Get] never reads more than its byte limit into memory; oversized
// responses fail with a PROFILE_TOO_LARGE error instead of an OOM. The
// default limit is [DefaultMaxBytes].
//
// Response caching lives in pkg/cache; pair [Get] with a Cache keyed by
// Keyer.HTTPKey to avoid refetching unchanged profiles.
package httputil
