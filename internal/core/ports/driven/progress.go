package driven

// ProgressReporter receives progress updates during long-running
// stages. Reporting is a side effect only: implementations must never
// influence control flow, ordering or the values emitted.
type ProgressReporter interface {
	// Progress reports counters mid-stage. May be called frequently;
	// implementations are expected to throttle their own output.
	Progress(stage string, processed, unique int)

	// Done reports the final counters for a stage.
	Done(stage string, processed, unique int)
}
