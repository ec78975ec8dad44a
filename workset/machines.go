// Package workset turns the machines file and the benchmark sets into
// tasks with queued benchmarks.
package workset

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/staticafi/satt/dispatch"
)

// ParseMachines reads one machine per line, optionally followed by the
// number of benchmarks it may run in parallel (default 1). Blank lines are
// skipped.
func ParseMachines(r io.Reader) ([]*dispatch.Task, error) {
	var tasks []*dispatch.Task
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) > 2 {
			return nil, errors.Errorf("wrong syntax of machines file on line %d", lineno)
		}
		parallel := 1
		if len(fields) == 2 {
			n, err := strconv.Atoi(fields[1])
			if err != nil || n < 1 {
				return nil, errors.Errorf("wrong number of parallel benchmarks on line %d: %q", lineno, fields[1])
			}
			parallel = n
		}
		tasks = append(tasks, dispatch.NewTask(fields[0], parallel))
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading machines")
	}
	return tasks, nil
}

// LoadMachines parses the machines file at path.
func LoadMachines(path string) ([]*dispatch.Task, error) {
	f, err := os.Open(ExpandPath(path))
	if err != nil {
		return nil, errors.Wrap(err, "failed opening file with machines")
	}
	defer f.Close()
	tasks, err := ParseMachines(f)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	if len(tasks) == 0 {
		return nil, errors.Errorf("no machines in %s", path)
	}
	return tasks, nil
}

// ExpandPath expands environment variables and a leading ~.
func ExpandPath(path string) string {
	path = os.ExpandEnv(path)
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = home + path[1:]
		}
	}
	return path
}
