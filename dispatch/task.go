package dispatch

import (
	"github.com/pkg/errors"

	"github.com/staticafi/satt/bench"
	"github.com/staticafi/satt/runner/execer"
)

// Task is one machine's queue of benchmarks together with the number of
// benchmarks the machine may run at once.
type Task struct {
	machine  string
	parallel int
	pending  []bench.Item
	running  int
}

// NewTask returns an empty task. A parallelism below one is raised to one.
func NewTask(machine string, parallel int) *Task {
	if parallel < 1 {
		parallel = 1
	}
	return &Task{machine: machine, parallel: parallel}
}

func (t *Task) Machine() string { return t.machine }
func (t *Task) Parallel() int   { return t.parallel }
func (t *Task) Pending() int    { return len(t.pending) }
func (t *Task) Running() int    { return t.running }

// Items returns the queued items in the order they will be spawned.
func (t *Task) Items() []bench.Item {
	items := make([]bench.Item, 0, len(t.pending))
	for i := len(t.pending) - 1; i >= 0; i-- {
		items = append(items, t.pending[i])
	}
	return items
}

// Add queues item for this machine.
func (t *Task) Add(item bench.Item) {
	t.pending = append(t.pending, item)
}

// Requeue puts back an item whose result was not accepted.
func (t *Task) Requeue(item bench.Item) {
	t.pending = append(t.pending, item)
}

// Spawn starts the most recently queued item. It returns a nil Job when the
// queue is empty or the machine already runs Parallel jobs. The popped item
// stays queued if the process could not be started.
func (t *Task) Spawn(e execer.Execer, tmpl *Template) (*Job, error) {
	if len(t.pending) == 0 || t.running >= t.parallel {
		return nil, nil
	}
	last := len(t.pending) - 1
	item := t.pending[last]
	t.pending = t.pending[:last]

	cmd := tmpl.Expand(t.machine, item)
	p, err := e.Exec(execer.Command{
		Line: cmd,
		LogTags: map[string]interface{}{
			"machine":   t.machine,
			"benchmark": item.Basename(),
			"category":  item.Category,
		},
	})
	if err != nil {
		t.pending = append(t.pending, item)
		return nil, errors.Wrapf(err, "spawning %s on %s", item.Basename(), t.machine)
	}
	t.running++
	return newJob(cmd, p, t, item), nil
}

func (t *Task) release() {
	if t.running > 0 {
		t.running--
	}
}
