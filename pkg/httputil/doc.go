// Package httputil provides HTTP utilities for fetching flag assets.
//
// # Overview
//
// This package provides infrastructure shared by the asset fetcher and
// any other remote source:
//
//   - [Cache]: File-based HTTP response caching
//   - [Retry]: Automatic retry with exponential backoff
//
// # Caching
//
// [Cache] stores HTTP responses in the filesystem (~/.cache/flagring/)
// with configurable TTL. Flag artwork changes rarely, so aggressive
// caching keeps repeated renders off the network entirely.
//
// Usage:
//
//	cache, err := httputil.NewCache("", 24*time.Hour)
//	ok, err := cache.Get("assets:pride.svg", &data)
//	if !ok {
//	    data = fetchFromSource()
//	    cache.Set("assets:pride.svg", data)
//	}
//
// Cache keys should be namespaced by source to avoid collisions.
//
// # Retry
//
// [Retry] wraps HTTP requests with automatic retry for transient failures:
//
//   - Network errors
//   - 5xx server errors
//   - 429 rate limit responses
//
// Wrap such failures in [RetryableError]; anything else fails fast:
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    return fetchAsset(url)
//	})
//
// # Configuration
//
// Default settings are suitable for most use cases:
//
//   - Cache directory: ~/.cache/flagring/
//   - Default TTL: 24 hours
//   - Max retries: 3
//   - Base backoff: 1 second
//
// The cache can be cleared via `flagring cache clear` or by deleting the
// cache directory.
package httputil
