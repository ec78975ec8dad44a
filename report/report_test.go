package report

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staticafi/satt/bench"
	"github.com/staticafi/satt/dispatch"
	"github.com/staticafi/satt/report/store"
)

func init() {
	color.NoColor = true
}

func newJob(name, category string, lines ...string) *dispatch.Job {
	job := &dispatch.Job{
		Task:   dispatch.NewTask("m1", 1),
		Item:   bench.Item{Name: name, Category: category},
		Record: &bench.Record{},
	}
	for _, l := range lines {
		bench.Advance(job.Record, l)
	}
	return job
}

func tempDir(t *testing.T) string {
	dir, err := ioutil.TempDir("", "report")
	require.NoError(t, err)
	return dir
}

func newTestStdoutSink(out *bytes.Buffer, dir string) *StdoutSink {
	s := NewStdoutSink(out, &Dumper{Dir: dir})
	s.now = func() time.Time { return time.Date(2026, 1, 2, 15, 4, 5, 0, time.Local) }
	return s
}

func TestStdoutSinkAccepts(t *testing.T) {
	var out bytes.Buffer
	s := newTestStdoutSink(&out, "")
	s.Progress(42)

	ok := s.Done(newJob("benchmarks/loops/sum_true-unreach-call.c", "Loops", "=== RESULT", "true"))
	assert.True(t, ok)
	assert.Equal(t, "[15:04:05 | 42%]  Loops - sum_true-unreach-call.c: TRUE\n", out.String())
}

func TestStdoutSinkPrintsOutputOnError(t *testing.T) {
	var out bytes.Buffer
	s := newTestStdoutSink(&out, "")

	ok := s.Done(newJob("a.c", "Loops", "clang: crashed", "=== RESULT", "ERROR"))
	assert.True(t, ok)
	assert.Equal(t, "[15:04:05 | 0%]  Loops - a.c: ERROR\n--- output <<m1>>\nclang: crashed\n---\n", out.String())
}

func TestStdoutSinkRejectsMissingResult(t *testing.T) {
	var out bytes.Buffer
	s := newTestStdoutSink(&out, "")

	ok := s.Done(newJob("a.c", "Loops"))
	assert.False(t, ok)
	assert.Equal(t, "[15:04:05 | 0%]  Loops - a.c: NONE\n--- output <<m1>>\n", out.String())
}

func TestStdoutSinkShowsProperty(t *testing.T) {
	var out bytes.Buffer
	s := newTestStdoutSink(&out, "")
	s.Done(newJob("x_false-valid-deref.c", "MemSafety", "=== RESULT", "FALSE(valid-deref)"))
	assert.Contains(t, out.String(), "x_false-valid-deref.c: FALSE(valid-deref)\n")
}

func TestExpectedVerdict(t *testing.T) {
	assert.Equal(t, bench.VerdictTrue, ExpectedVerdict("a/true/b_false.c"))
	assert.Equal(t, bench.VerdictFalse, ExpectedVerdict("a/b_false-unreach-call_true-termination.c"))
	assert.Equal(t, bench.VerdictTrue, ExpectedVerdict("sum_true-unreach-call.c"))
	assert.Equal(t, "", ExpectedVerdict("plain.c"))
}

func TestVerdictColor(t *testing.T) {
	assert.Equal(t, colorError, verdictColor("x_true.c", ""))
	assert.Equal(t, colorError, verdictColor("x_true.c", bench.VerdictError))
	assert.Equal(t, colorUnknown, verdictColor("x_true.c", bench.VerdictUnknown))
	assert.Equal(t, colorCorrect, verdictColor("x_true.c", bench.VerdictTrue))
	assert.Equal(t, colorIncorrect, verdictColor("x_true.c", bench.VerdictFalse))
	assert.Equal(t, colorIncorrect, verdictColor("x.c", bench.VerdictFalse))
	assert.Equal(t, colorPlain, verdictColor("x_true.c", bench.VerdictTimeout))
}

func TestDumper(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)

	job := newJob("benchmarks/loops/a.c", "Loops",
		"warning: x", "=== VERSIONS", "tool-1.0", "=== TIME CONSUMED", "2.5", "=== RESULT", "unknown")
	d := &Dumper{Dir: filepath.Join(dir, "dumped")}
	path, err := d.Dump(job, "unknown task")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(filepath.Base(path), "Loops-a.c-"))
	assert.Equal(t, ".txt", filepath.Ext(path))

	data, err := ioutil.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "machine: m1\n")
	assert.Contains(t, text, "benchmark: benchmarks/loops/a.c\n")
	assert.Contains(t, text, "reason: unknown task\n")
	assert.Contains(t, text, "result: UNKNOWN\n")
	assert.Contains(t, text, "time: 2.5\n")
	assert.NotContains(t, text, "memory:")
	assert.Contains(t, text, "--- versions\ntool-1.0\n")
	assert.Contains(t, text, "--- output\nwarning: x\n")

	other, err := d.Dump(job, "unknown task")
	require.NoError(t, err)
	assert.NotEqual(t, path, other)
}

func TestIsCorrect(t *testing.T) {
	tests := []struct {
		expected, result, property string
		correct                    bool
	}{
		{"true", bench.VerdictTrue, "", true},
		{"TRUE", bench.VerdictFalse, "", false},
		{"false", bench.VerdictFalse, "unreach-call", true},
		{"false(valid-deref)", bench.VerdictFalse, "", true},
		{"false(valid-deref)", bench.VerdictFalse, "VALID-DEREF", true},
		{"false(valid-deref)", bench.VerdictFalse, "valid-free", false},
		{"", bench.VerdictTrue, "", false},
		{"true", "", "", false},
		{"unknown", bench.VerdictUnknown, "", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.correct, IsCorrect(tt.expected, tt.result, tt.property), "%+v", tt)
	}
}

func TestPoints(t *testing.T) {
	m := store.Rating{Unknown: 0, FalseCorrect: 1, FalseIncorrect: -16, TrueCorrect: 2, TrueIncorrect: -32}

	assert.Equal(t, 2, Points(m, true, bench.VerdictTrue, ""))
	assert.Equal(t, -32, Points(m, false, bench.VerdictTrue, ""))
	assert.Equal(t, 1, Points(m, true, bench.VerdictFalse, "confirmed\n"))
	assert.Equal(t, 0, Points(m, true, bench.VerdictFalse, "unconfirmed"))
	assert.Equal(t, -16, Points(m, false, bench.VerdictFalse, "confirmed"))
	assert.Equal(t, 0, Points(m, false, bench.VerdictTimeout, ""))
	assert.Equal(t, 0, Points(m, true, "", ""))

	m.Unknown = 3
	assert.Equal(t, 3, Points(m, false, bench.VerdictError, ""))
}
