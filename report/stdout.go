// Package report holds the sinks finished benchmarks are reported to.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"

	"github.com/staticafi/satt/bench"
	"github.com/staticafi/satt/dispatch"
)

var (
	colorCorrect   = color.New(color.FgGreen)
	colorIncorrect = color.New(color.FgRed)
	colorUnknown   = color.New(color.FgYellow)
	colorError     = color.New(color.BgRed)
	colorPlain     = color.New(color.Reset)
)

// StdoutSink prints one line per benchmark, colored by whether the verdict
// matches the one encoded in the benchmark's file name.
type StdoutSink struct {
	out      io.Writer
	dumper   *Dumper
	progress int
	now      func() time.Time
}

func NewStdoutSink(out io.Writer, dumper *Dumper) *StdoutSink {
	if dumper == nil {
		dumper = &Dumper{}
	}
	return &StdoutSink{out: out, dumper: dumper, now: time.Now}
}

// Done prints the job. Jobs without any result are printed with their
// output and rejected so that they run again.
func (s *StdoutSink) Done(job *dispatch.Job) bool {
	r := job.Record
	c := verdictColor(job.Item.Name, r.Result)
	prefix := fmt.Sprintf("[%s | %d%%]  ", s.now().Format("15:04:05"), s.progress)
	c.Fprintf(s.out, "%s%s - %s: %s\n", prefix, job.Item.Category, job.Item.Basename(), resultString(job))

	if r.Result == "" || r.Result == bench.VerdictError {
		fmt.Fprintf(s.out, "--- output <<%s>>\n", job.Machine())
		if out := strings.TrimSpace(r.RawOutput()); out != "" {
			fmt.Fprintln(s.out, out)
			fmt.Fprintln(s.out, "---")
		}
	}
	if r.Result == "" {
		log.WithFields(log.Fields{
			"machine":   job.Machine(),
			"benchmark": job.Item.Basename(),
			"status":    job.Status.String(),
		}).Debug("No result in output")
		return false
	}
	return true
}

func (s *StdoutSink) Progress(percent int) {
	s.progress = percent
}

func (s *StdoutSink) DumpToFile(job *dispatch.Job, reason string) error {
	path, err := s.dumper.Dump(job, reason)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{"benchmark": job.Item.Basename(), "path": path}).Infof("Dumped to file (%s)", reason)
	return nil
}

func resultString(job *dispatch.Job) string {
	r := job.Record
	switch {
	case r.Result == "":
		return "NONE"
	case r.Property != "":
		return fmt.Sprintf("%s(%s)", r.Result, r.Property)
	}
	return r.Result
}

// ExpectedVerdict guesses the correct answer from a benchmark's path: the
// first of "true" and "false" it contains wins.
func ExpectedVerdict(name string) string {
	t := strings.Index(name, "true")
	f := strings.Index(name, "false")
	switch {
	case t < 0 && f < 0:
		return ""
	case f < 0 || (t >= 0 && t < f):
		return bench.VerdictTrue
	}
	return bench.VerdictFalse
}

func verdictColor(name, result string) *color.Color {
	switch result {
	case "", bench.VerdictError:
		return colorError
	case bench.VerdictUnknown:
		return colorUnknown
	case bench.VerdictTrue, bench.VerdictFalse:
		if ExpectedVerdict(name) == result {
			return colorCorrect
		}
		return colorIncorrect
	}
	return colorPlain
}
