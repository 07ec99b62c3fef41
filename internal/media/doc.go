// Package media defines the data model shared across the pipeline: parsed
// content identifiers, the metadata accumulator with first-write-wins merge
// semantics, scraped candidates, and the output stream record.
package media
