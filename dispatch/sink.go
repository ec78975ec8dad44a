package dispatch

//go:generate mockgen -source=sink.go -package=dispatch -destination=sink_mock.go

// Sink receives finished jobs.
type Sink interface {
	// Done reports a finished job. Returning false asks for the benchmark
	// to be run again. A sink that gives up on a job (for example by dumping
	// it to a file) still returns true.
	Done(job *Job) bool

	// Progress is called with the rounded percentage of benchmarks done. It
	// is called only when that number changes, not for every completion.
	Progress(percent int)

	// DumpToFile stores a job that cannot be reported normally.
	DumpToFile(job *Job, reason string) error
}
