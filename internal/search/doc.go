// Package search builds video-search queries from resolved metadata and
// scrapes the result pages into structured candidate records. Query building
// is pure; the scraper isolates per-query failures and deduplicates URLs
// across all queries of a request.
package search
