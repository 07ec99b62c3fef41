// Package omdb is a minimal client for the OMDb API, the waterfall's
// secondary metadata provider.
package omdb
