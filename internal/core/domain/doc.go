// Package domain contains the core business entities for the
// aggregator: configured sources, dedup run state and statistics,
// and the domain error taxonomy. It has no dependencies on adapters
// or external libraries.
package domain
