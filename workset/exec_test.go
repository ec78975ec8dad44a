package workset

import (
	"time"

	"github.com/staticafi/satt/runner/execer"
)

// nameExecer starts nothing; it lets tests pop items through Task.Spawn.
type nameExecer struct{}

func (nameExecer) Exec(cmd execer.Command) (execer.Process, error) { return nullProcess{}, nil }

type nullProcess struct{}

func (nullProcess) Fd() int                                  { return -1 }
func (nullProcess) Read(p []byte) (int, error)               { return 0, execer.ErrWouldBlock }
func (nullProcess) Pid() int                                 { return 0 }
func (nullProcess) Terminate() error                         { return nil }
func (nullProcess) Kill() error                              { return nil }
func (nullProcess) Wait() execer.ProcessStatus               { return execer.ProcessStatus{} }
func (nullProcess) Abort(time.Duration) execer.ProcessStatus { return execer.ProcessStatus{} }
func (nullProcess) Close() error                             { return nil }
