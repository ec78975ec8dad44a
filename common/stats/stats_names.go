package stats

// Dispatcher stats, scoped under "dispatcher" by the caller.
const (
	// Jobs started, including replacements for requeued items.
	DispatcherSpawnedCounter = "spawned"
	// Results the report sink accepted.
	DispatcherCompletedCounter = "completed"
	// Results the sink rejected and that went back to their task's queue.
	DispatcherRequeuedCounter = "requeued"
	// Items given up on after too many rejections and written to the dump directory.
	DispatcherDumpedCounter = "dumped"
	// Jobs killed while the dispatcher was aborting.
	DispatcherAbortedCounter = "aborted"
	// Jobs currently running across all machines.
	DispatcherRunningGauge = "running"
	// Percentage of items done.
	DispatcherProgressGauge = "progress"
	// Wall time from spawn to the end of a job's output.
	DispatcherJobLatency_ms = "jobLatency_ms"
)
