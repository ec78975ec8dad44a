package workset

import (
	"bufio"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/staticafi/satt/bench"
	"github.com/staticafi/satt/dispatch"
)

// DefaultPrefix is prepended to benchmark paths, which are relative to the
// set file, so that they resolve from the remote working directory.
const DefaultPrefix = "benchmarks/"

const setSuffix = ".set"

// Assigner deals benchmarks out to tasks round robin. The position carries
// over from one set to the next.
type Assigner struct {
	Tasks  []*dispatch.Task
	Prefix string
	next   int
}

func NewAssigner(tasks []*dispatch.Task, prefix string) *Assigner {
	return &Assigner{Tasks: tasks, Prefix: prefix}
}

// Count is the number of benchmarks assigned so far.
func (a *Assigner) Count() int { return a.next }

// AddSets assigns the benchmarks of a comma separated list of globs. Each
// match is either a .set file or a directory whose .set files are used.
func (a *Assigner) AddSets(spec string) error {
	if len(a.Tasks) == 0 {
		return errors.New("no machines to assign benchmarks to")
	}
	for _, pattern := range strings.Split(spec, ",") {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		paths, err := filepath.Glob(ExpandPath(pattern))
		if err != nil {
			return errors.Wrapf(err, "bad pattern %q", pattern)
		}
		if len(paths) == 0 {
			return errors.Errorf("benchmarks not found: %s", pattern)
		}
		for _, path := range paths {
			info, err := os.Stat(path)
			if err != nil {
				return errors.Wrap(err, "reading benchmarks")
			}
			if info.IsDir() {
				err = a.addSetDir(path)
			} else {
				err = a.addSet(path)
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func (a *Assigner) addSetDir(dir string) error {
	entries, err := ioutil.ReadDir(dir)
	if err != nil {
		return errors.Wrapf(err, "failed opening dir with benchmarks (%s)", dir)
	}
	found := false
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), setSuffix) {
			continue
		}
		if err := a.addSet(filepath.Join(dir, e.Name())); err != nil {
			return err
		}
		found = true
	}
	if !found {
		log.WithField("dir", dir).Warn("Haven't found any .set file")
	}
	return nil
}

// addSet assigns every benchmark matched by the globs in a set file. The
// category is the file's name without the suffix.
func (a *Assigner) addSet(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "failed opening set of benchmarks (%s)", path)
	}
	defer f.Close()

	dir := filepath.Dir(path)
	category := strings.TrimSuffix(filepath.Base(path), setSuffix)
	before := a.next
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		matches, err := filepath.Glob(filepath.Join(dir, line))
		if err != nil {
			return errors.Wrapf(err, "bad pattern %q in %s", line, path)
		}
		sort.Strings(matches)
		for _, m := range matches {
			rel, err := filepath.Rel(dir, m)
			if err != nil {
				return err
			}
			a.assign(bench.Item{Name: a.Prefix + filepath.ToSlash(rel), Category: category})
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrapf(err, "reading %s", path)
	}
	log.WithFields(log.Fields{"set": category, "benchmarks": a.next - before}).Debug("Assigned set")
	return nil
}

func (a *Assigner) assign(item bench.Item) {
	a.Tasks[a.next%len(a.Tasks)].Add(item)
	a.next++
}
