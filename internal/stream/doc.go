// Package stream orchestrates one request end to end: identifier parsing,
// metadata resolution, query building, scraping, ranking, and output
// formatting. The handler never errors toward its caller; failures degrade
// to fallback-only responses.
package stream
