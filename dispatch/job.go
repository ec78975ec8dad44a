package dispatch

import (
	"bytes"
	"time"

	"github.com/staticafi/satt/bench"
	"github.com/staticafi/satt/runner/execer"
)

// Job is a benchmark running on its task's machine. Its output is parsed
// into Record line by line as it arrives.
type Job struct {
	Command string
	Process execer.Process
	Task    *Task
	Item    bench.Item
	Record  *bench.Record
	// Status is set once the process has been reaped.
	Status execer.ProcessStatus

	started time.Time
	partial []byte
}

func newJob(cmd string, p execer.Process, t *Task, item bench.Item) *Job {
	return &Job{
		Command: cmd,
		Process: p,
		Task:    t,
		Item:    item,
		Record:  &bench.Record{},
		started: time.Now(),
	}
}

// Machine is the machine the job runs on.
func (j *Job) Machine() string { return j.Task.Machine() }

// consume feeds every complete line of chunk to the parser and keeps the
// unterminated rest for the next call.
func (j *Job) consume(chunk []byte) {
	j.partial = append(j.partial, chunk...)
	for {
		i := bytes.IndexByte(j.partial, '\n')
		if i < 0 {
			break
		}
		bench.Advance(j.Record, string(j.partial[:i]))
		j.partial = j.partial[i+1:]
	}
	if len(j.partial) == 0 {
		j.partial = nil
	}
}

// flush parses a last line that was not terminated by a newline.
func (j *Job) flush() {
	if len(j.partial) > 0 {
		bench.Advance(j.Record, string(j.partial))
		j.partial = nil
	}
}
