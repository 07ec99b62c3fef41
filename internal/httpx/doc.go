// Package httpx provides the shared outbound HTTP client and the retry
// wrapper used by every network-facing component.
package httpx
