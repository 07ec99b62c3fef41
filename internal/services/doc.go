// Package services holds the shared error taxonomy for outbound calls.
//
// Every upstream failure is tagged with one of the sentinel errors so callers
// can classify without string matching: transient and timeout failures are
// retried, configuration and not-found failures short-circuit the phase that
// raised them, and parse failures leave the affected field unset.
package services
