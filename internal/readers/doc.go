// Package readers provides implementations of the RecordReader
// interface for the supported data file formats. Each reader knows how
// to extract raw name records from one format.
//
// Readers are registered with the Registry at startup and dispatched
// by file extension.
package readers
