package bench

import (
	"strconv"
	"strings"
)

// Section markers of the job output protocol. Each one is printed on a line
// of its own and switches the section the following lines belong to.
const (
	MarkerVersions      = "=== VERSIONS"
	MarkerResult        = "=== RESULT"
	MarkerMemoryUsage   = "=== MEMORY USAGE"
	MarkerTimeConsumed  = "=== TIME CONSUMED"
	MarkerWitness       = "=== WITNESS"
	MarkerWitnessOutput = "=== WITNESS OUTPUT"
	MarkerOutput        = "=== OUTPUT"
)

var markers = map[string]State{
	MarkerVersions:      Versions,
	MarkerResult:        Result,
	MarkerMemoryUsage:   MemoryUsage,
	MarkerTimeConsumed:  TimeConsumed,
	MarkerWitness:       Witness,
	MarkerWitnessOutput: WitnessOutput,
	MarkerOutput:        Output,
}

// Verdicts a tool may report in the RESULT section.
const (
	VerdictTrue    = "TRUE"
	VerdictFalse   = "FALSE"
	VerdictUnknown = "UNKNOWN"
	VerdictError   = "ERROR"
	VerdictTimeout = "TIMEOUT"
)

// Advance feeds one line of job output into r. Marker lines switch r.State
// and are not stored; any other line goes to the current section. Lines
// that do not parse in their section end up in the raw output, so Advance
// never fails.
func Advance(r *Record, line string) {
	s := strings.TrimSpace(line)
	if st, ok := markers[s]; ok {
		r.State = st
		return
	}

	switch r.State {
	case Versions:
		appendLine(&r.versions, s)
	case Witness:
		appendLine(&r.witness, s)
	case WitnessOutput:
		appendLine(&r.witnessOutput, s)
	case Result:
		verdict, property, ok := ParseVerdict(s)
		if !ok {
			r.appendTagged(Result, s)
			return
		}
		r.Result = verdict
		r.Property = property
	case MemoryUsage:
		v, err := strconv.ParseFloat(s, 64)
		if err == nil {
			err = r.SetMemoryUsage(v)
		}
		if err != nil {
			r.appendTagged(MemoryUsage, s)
		}
	case TimeConsumed:
		v, err := strconv.ParseFloat(s, 64)
		if err == nil {
			err = r.SetCPUTime(v)
		}
		if err != nil {
			r.appendTagged(TimeConsumed, s)
		}
	default:
		appendLine(&r.rawOutput, s)
	}
}

// ParseVerdict matches s case-insensitively against the verdict vocabulary
// and returns the canonical verdict. Anything starting with FALSE is a FALSE
// verdict; a parenthesised suffix, as in FALSE(valid-deref), is returned as
// the property with its original case.
func ParseVerdict(s string) (verdict, property string, ok bool) {
	u := strings.ToUpper(s)
	switch u {
	case VerdictTimeout, VerdictError, VerdictTrue, VerdictUnknown:
		return u, "", true
	}
	if !strings.HasPrefix(u, VerdictFalse) {
		return "", "", false
	}

	rest := strings.TrimSpace(s[len(VerdictFalse):])
	if strings.HasPrefix(rest, "(") && strings.HasSuffix(rest, ")") {
		rest = rest[1 : len(rest)-1]
	}
	return VerdictFalse, rest, true
}

// BaseVerdict reduces an expected result as stored in a benchmark database,
// e.g. "false(unreach-call)", to its canonical verdict.
func BaseVerdict(s string) string {
	v, _, ok := ParseVerdict(strings.TrimSpace(s))
	if !ok {
		return ""
	}
	return v
}
