// Package metadata resolves a content identifier into display metadata via
// a prioritized waterfall of external sources.
//
// Phase order: TMDB external-id cross-reference, concurrent TMDB/OMDb detail
// fetches (TMDB values win ties), IMDb title-page scrape, and finally a
// synthesized placeholder title. Fields merge first-write-wins, so a value
// set by a higher-priority source is never overwritten. Series requests
// additionally run an episode chain (TMDB episode detail, OMDb episode
// lookup, IMDb episode-listing scrape) whose failures leave the episode
// title unset rather than failing the request.
package metadata
