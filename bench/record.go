package bench

import (
	"strings"

	"github.com/pkg/errors"
)

// State is the section of the job output currently being read.
type State int

const (
	None State = iota
	Versions
	Result
	MemoryUsage
	TimeConsumed
	Witness
	WitnessOutput
	Output
)

func (s State) String() string {
	switch s {
	case None:
		return "NONE"
	case Versions:
		return "VERSIONS"
	case Result:
		return "RESULT"
	case MemoryUsage:
		return "MEMORY USAGE"
	case TimeConsumed:
		return "TIME CONSUMED"
	case Witness:
		return "WITNESS"
	case WitnessOutput:
		return "WITNESS OUTPUT"
	case Output:
		return "OUTPUT"
	default:
		return "UNKNOWN_STATE"
	}
}

// ErrAlreadySet is returned when a write-once field of a Record is set twice.
var ErrAlreadySet = errors.New("value already set")

// Record accumulates the outcome of one job. It is filled line by line by
// Advance and handed to the report sink once the job's output stream closes.
//
// A Record must not be copied after the first line was fed to it.
type Record struct {
	// State is the section the next content line belongs to.
	State State

	// Result is the canonical verdict (one of the Verdict* constants),
	// empty when the job never reported one.
	Result string
	// Property qualifies a FALSE verdict, e.g. "unreach-call" for
	// FALSE(unreach-call). Empty otherwise.
	Property string

	rawOutput     strings.Builder
	versions      strings.Builder
	witness       strings.Builder
	witnessOutput strings.Builder

	memoryMB   *float64
	cpuSeconds *float64
}

// RawOutput is everything the job printed outside the structured sections,
// plus any line that could not be parsed inside them.
func (r *Record) RawOutput() string     { return r.rawOutput.String() }
func (r *Record) Versions() string      { return r.versions.String() }
func (r *Record) Witness() string       { return r.witness.String() }
func (r *Record) WitnessOutput() string { return r.witnessOutput.String() }

// MemoryUsage returns the reported memory usage in MB, if any.
func (r *Record) MemoryUsage() (float64, bool) {
	if r.memoryMB == nil {
		return 0, false
	}
	return *r.memoryMB, true
}

// CPUTime returns the reported CPU time in seconds, if any.
func (r *Record) CPUTime() (float64, bool) {
	if r.cpuSeconds == nil {
		return 0, false
	}
	return *r.cpuSeconds, true
}

// SetMemoryUsage sets the memory usage. It can be set only once.
func (r *Record) SetMemoryUsage(mb float64) error {
	if r.memoryMB != nil {
		return errors.Wrap(ErrAlreadySet, "memory usage")
	}
	r.memoryMB = &mb
	return nil
}

// SetCPUTime sets the consumed CPU time. It can be set only once.
func (r *Record) SetCPUTime(seconds float64) error {
	if r.cpuSeconds != nil {
		return errors.Wrap(ErrAlreadySet, "time consumed")
	}
	r.cpuSeconds = &seconds
	return nil
}

// appendTagged keeps a line that did not fit its section, prefixed with the
// section name so it can still be told apart in the raw output.
func (r *Record) appendTagged(s State, line string) {
	appendLine(&r.rawOutput, s.String()+": "+line)
}

func appendLine(b *strings.Builder, line string) {
	b.WriteString(line)
	b.WriteByte('\n')
}
