package services

import (
	"golang.org/x/time/rate"

	"github.com/DiAbL0Tin/aggregator-nicknames/internal/core/ports/driven"
	"github.com/DiAbL0Tin/aggregator-nicknames/internal/logger"
)

// Ensure implementations satisfy the interface.
var (
	_ driven.ProgressReporter = (*LogProgressReporter)(nil)
	_ driven.ProgressReporter = (*NopProgressReporter)(nil)
)

// LogProgressReporter writes progress lines through the verbose logger,
// throttled so tight batch loops don't flood the output. Done lines are
// never throttled.
type LogProgressReporter struct {
	limiter *rate.Limiter
}

// NewLogProgressReporter creates a reporter emitting at most one
// progress line per second.
func NewLogProgressReporter() *LogProgressReporter {
	return &LogProgressReporter{
		limiter: rate.NewLimiter(rate.Limit(1), 1),
	}
}

// Progress reports counters mid-stage.
func (r *LogProgressReporter) Progress(stage string, processed, unique int) {
	if !r.limiter.Allow() {
		return
	}
	logger.Info("%s: %d processed, %d unique", stage, processed, unique)
}

// Done reports the final counters for a stage.
func (r *LogProgressReporter) Done(stage string, processed, unique int) {
	logger.Info("%s done: %d processed, %d unique", stage, processed, unique)
}

// NopProgressReporter discards all progress updates.
type NopProgressReporter struct{}

// Progress implements driven.ProgressReporter.
func (NopProgressReporter) Progress(string, int, int) {}

// Done implements driven.ProgressReporter.
func (NopProgressReporter) Done(string, int, int) {}
