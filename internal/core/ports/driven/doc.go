// Package driven defines the secondary ports: interfaces the core
// services depend on and adapters implement (dataset persistence, raw
// record reading, run-state tracking, progress reporting).
package driven
