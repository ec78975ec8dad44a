package bench

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func feed(r *Record, text string) {
	for _, line := range strings.Split(text, "\n") {
		Advance(r, line)
	}
}

func TestFullSections(t *testing.T) {
	r := &Record{}
	feed(r, `=== VERSIONS
tool-1.0
=== RESULT
TRUE
=== MEMORY USAGE
128.5
=== TIME CONSUMED
3.2`)

	assert.Equal(t, "tool-1.0\n", r.Versions())
	assert.Equal(t, VerdictTrue, r.Result)

	mem, ok := r.MemoryUsage()
	assert.True(t, ok)
	assert.Equal(t, 128.5, mem)

	cpu, ok := r.CPUTime()
	assert.True(t, ok)
	assert.Equal(t, 3.2, cpu)

	assert.Equal(t, "", r.RawOutput())
	assert.Equal(t, TimeConsumed, r.State)
}

func TestOutputBeforeFirstMarker(t *testing.T) {
	r := &Record{}
	feed(r, "compiling\nlinking\n=== OUTPUT\ndone")
	assert.Equal(t, "compiling\nlinking\ndone\n", r.RawOutput())
	assert.Equal(t, Output, r.State)
}

func TestWriteOnceTime(t *testing.T) {
	r := &Record{}
	feed(r, "=== TIME CONSUMED\n3.2\n4.0")

	cpu, ok := r.CPUTime()
	if !ok || cpu != 3.2 {
		t.Fatalf("expected cpu time 3.2, got %v (set: %v)", cpu, ok)
	}
	if r.RawOutput() != "TIME CONSUMED: 4.0\n" {
		t.Fatalf("second value should be kept in the raw output, got %q", r.RawOutput())
	}
}

func TestWriteOnceMemoryAcrossMarkers(t *testing.T) {
	r := &Record{}
	feed(r, "=== MEMORY USAGE\n10\n=== OUTPUT\nx\n=== MEMORY USAGE\n20")

	mem, _ := r.MemoryUsage()
	assert.Equal(t, 10.0, mem)
	assert.Equal(t, "x\nMEMORY USAGE: 20\n", r.RawOutput())
}

func TestUnparsableNumbers(t *testing.T) {
	r := &Record{}
	feed(r, "=== MEMORY USAGE\nlots\n=== TIME CONSUMED\n12s")

	_, ok := r.MemoryUsage()
	assert.False(t, ok)
	_, ok = r.CPUTime()
	assert.False(t, ok)
	assert.Equal(t, "MEMORY USAGE: lots\nTIME CONSUMED: 12s\n", r.RawOutput())
}

func TestRepeatedMarkers(t *testing.T) {
	r := &Record{}
	feed(r, "=== VERSIONS\n=== VERSIONS\n=== WITNESS\n=== WITNESS OUTPUT\n=== RESULT\n=== RESULT")

	assert.Equal(t, "", r.Versions())
	assert.Equal(t, "", r.Witness())
	assert.Equal(t, "", r.WitnessOutput())
	assert.Equal(t, "", r.Result)
	assert.Equal(t, "", r.RawOutput())
	assert.Equal(t, Result, r.State)
}

func TestWitnessSections(t *testing.T) {
	r := &Record{}
	feed(r, "=== WITNESS\nconfirmed\n=== WITNESS OUTPUT\nvalidator says hi\nbye\n=== RESULT\nfalse(unreach-call)")

	assert.Equal(t, "confirmed\n", r.Witness())
	assert.Equal(t, "validator says hi\nbye\n", r.WitnessOutput())
	assert.Equal(t, VerdictFalse, r.Result)
	assert.Equal(t, "unreach-call", r.Property)
}

func TestMarkersAreCaseSensitive(t *testing.T) {
	r := &Record{}
	feed(r, "=== result\nTRUE")
	assert.Equal(t, "", r.Result)
	assert.Equal(t, "=== result\nTRUE\n", r.RawOutput())
}

func TestMarkerWithTrailingNewline(t *testing.T) {
	r := &Record{}
	Advance(r, "=== RESULT\r\n")
	Advance(r, "unknown\n")
	assert.Equal(t, VerdictUnknown, r.Result)
}

func TestUnknownResultToken(t *testing.T) {
	r := &Record{}
	feed(r, "=== RESULT\nmaybe\ntrue")
	assert.Equal(t, VerdictTrue, r.Result)
	assert.Equal(t, "RESULT: maybe\n", r.RawOutput())
}

func TestParseVerdict(t *testing.T) {
	tests := []struct {
		in       string
		verdict  string
		property string
		ok       bool
	}{
		{"TRUE", VerdictTrue, "", true},
		{"true", VerdictTrue, "", true},
		{"Timeout", VerdictTimeout, "", true},
		{"error", VerdictError, "", true},
		{"UNKNOWN", VerdictUnknown, "", true},
		{"FALSE", VerdictFalse, "", true},
		{"false(valid-deref)", VerdictFalse, "valid-deref", true},
		{"FALSE(unreach-call)", VerdictFalse, "unreach-call", true},
		{"falsely", VerdictFalse, "ly", true},
		{"", "", "", false},
		{"yes", "", "", false},
		{"TRUE!", "", "", false},
	}
	for _, tt := range tests {
		verdict, property, ok := ParseVerdict(tt.in)
		if verdict != tt.verdict || property != tt.property || ok != tt.ok {
			t.Errorf("ParseVerdict(%q) = %q, %q, %v; want %q, %q, %v",
				tt.in, verdict, property, ok, tt.verdict, tt.property, tt.ok)
		}
	}
}

func TestBaseVerdict(t *testing.T) {
	assert.Equal(t, VerdictFalse, BaseVerdict(" false(unreach-call) "))
	assert.Equal(t, VerdictTrue, BaseVerdict("true"))
	assert.Equal(t, "", BaseVerdict("?"))
}
