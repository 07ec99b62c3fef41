// Package logging builds the process logger and standardizes structured keys.
//
// Components receive a *slog.Logger tagged via NewComponentLogger and add
// per-request correlation fields with WithContext. Format (console or json)
// and level come from configuration.
package logging
