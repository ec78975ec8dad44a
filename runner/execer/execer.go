package execer

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
)

// Execer lets you run one shell command line. It knows nothing about tasks,
// machines or benchmarks; it's at the level of os/exec.

type Command struct {
	// Line is handed to the shell as is.
	Line string
	// LogTags are attached to every log entry about the process.
	LogTags map[string]interface{}
}

type ProcessState int

const (
	UNKNOWN ProcessState = iota
	RUNNING
	COMPLETE
	FAILED
)

func (s ProcessState) String() string {
	switch s {
	case RUNNING:
		return "RUNNING"
	case COMPLETE:
		return "COMPLETE"
	case FAILED:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// ErrWouldBlock is returned by Process.Read when no output is buffered right now.
var ErrWouldBlock = errors.New("read would block")

type Execer interface {
	Exec(command Command) (Process, error)
}

// Process is a started command whose stdout and stderr are merged into one
// non-blocking stream.
type Process interface {
	// Fd is the read end of the output stream, suitable for poll(2).
	Fd() int
	// Read reads buffered output. It returns ErrWouldBlock when nothing is
	// available yet and io.EOF once every writer has closed the stream.
	Read(p []byte) (int, error)
	Pid() int

	// Terminate asks the process group to exit without waiting for it.
	Terminate() error
	// Kill sends SIGKILL to the process group without waiting for it.
	Kill() error
	// Wait reaps the process. Calling it again returns the same status.
	Wait() ProcessStatus
	// Abort terminates the process group, kills it if it is still alive
	// after grace, and reaps it.
	Abort(grace time.Duration) ProcessStatus

	// Close releases the output stream.
	Close() error
}

type ProcessStatus struct {
	State    ProcessState
	ExitCode int
	Error    string
}

func (s ProcessStatus) String() string {
	if s.Error != "" {
		return fmt.Sprintf("%s (exit code %d): %s", s.State, s.ExitCode, s.Error)
	}
	return fmt.Sprintf("%s (exit code %d)", s.State, s.ExitCode)
}
