package report

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	uuid "github.com/nu7hatch/gouuid"
	"github.com/pkg/errors"

	"github.com/staticafi/satt/dispatch"
)

// DefaultDumpDir is where jobs that could not be reported end up.
const DefaultDumpDir = "dumped"

// Dumper writes jobs that can't be stored anywhere else into text files.
type Dumper struct {
	Dir string
}

// Dump writes job to a new file in the dump directory and returns its path.
func (d *Dumper) Dump(job *dispatch.Job, reason string) (string, error) {
	dir := d.Dir
	if dir == "" {
		dir = DefaultDumpDir
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrapf(err, "creating dump directory %s", dir)
	}
	id, err := uuid.NewV4()
	if err != nil {
		return "", errors.Wrap(err, "generating dump file name")
	}
	path := filepath.Join(dir, fmt.Sprintf("%s-%s-%s.txt", job.Item.Category, job.Item.Basename(), id))
	if err := ioutil.WriteFile(path, []byte(formatDump(job, reason)), 0644); err != nil {
		return "", errors.Wrapf(err, "writing %s", path)
	}
	return path, nil
}

func formatDump(job *dispatch.Job, reason string) string {
	r := job.Record
	var b strings.Builder
	fmt.Fprintf(&b, "machine: %s\n", job.Machine())
	fmt.Fprintf(&b, "benchmark: %s\n", job.Item.Name)
	fmt.Fprintf(&b, "category: %s\n", job.Item.Category)
	fmt.Fprintf(&b, "reason: %s\n", reason)
	fmt.Fprintf(&b, "result: %s\n", resultString(job))
	if cpu, ok := r.CPUTime(); ok {
		fmt.Fprintf(&b, "time: %g\n", cpu)
	}
	if mem, ok := r.MemoryUsage(); ok {
		fmt.Fprintf(&b, "memory: %g\n", mem)
	}
	fmt.Fprintf(&b, "exit: %s\n", job.Status)
	section := func(name, text string) {
		if text = strings.TrimSpace(text); text != "" {
			fmt.Fprintf(&b, "--- %s\n%s\n", name, text)
		}
	}
	section("versions", r.Versions())
	section("witness", r.Witness())
	section("witness output", r.WitnessOutput())
	section("output", r.RawOutput())
	return b.String()
}
