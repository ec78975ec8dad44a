package errors

type ExitCode int

const (
	SuccessExitCode ExitCode = 0

	// Generic failure: bad configuration, unreadable work set, fatal stream error.
	FailureExitCode ExitCode = 1

	// The run was aborted after it started dispatching.
	AbortedExitCode ExitCode = 2

	// Another run holds the lock file.
	LockHeldExitCode ExitCode = 3

	// Stopped by a signal, 128+SIGINT.
	InterruptedExitCode ExitCode = 130
)
