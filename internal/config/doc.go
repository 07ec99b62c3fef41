// Package config loads and validates streamscout configuration.
//
// Configuration is a single TOML file layered over compiled defaults, with
// environment variables taking priority for credentials and the proxy. The
// full surface (provider keys and endpoints, HTTP timeout and retry budget,
// scraper selector candidates, scoring weights and tolerances, the domain
// whitelist, and the selection policy) is constructed once at process start
// and injected into components; nothing reads configuration globally.
package config
