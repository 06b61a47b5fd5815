// Package chunks materialises ordered value sequences as fixed-size
// chunk files and deduplicates chunk sequences back into a single
// file.
//
// Chunk files are an internally-produced artifact. That is why the
// sequential deduplicator treats an unreadable chunk as fatal while
// upstream source processing skips and continues: a missing chunk
// indicates a pipeline bug, not a flaky data source. The asymmetry is
// deliberate.
package chunks
