// Package tmdb is a minimal client for the TMDB API endpoints the enrichment
// waterfall relies on: external-id lookup, movie/TV detail fetches with
// external-id cross-references, and per-episode detail.
package tmdb
