// Package services implements the driving port interfaces.
// Services contain the aggregation logic: normalising sources into
// datasets, merging them in priority order with either dedup engine,
// and orchestrating full pipeline runs against the driven ports.
package services
