// Package dispatch runs benchmarks on a pool of machines. Every machine has
// a Task with its own queue and parallelism; a single Dispatcher loop polls
// the output of all running jobs, parses it, hands finished jobs to a Sink
// and starts one replacement for every job that ends.
package dispatch

import (
	"context"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"

	"github.com/staticafi/satt/bench"
	"github.com/staticafi/satt/common/stats"
	"github.com/staticafi/satt/runner/execer"
)

const readBufferSize = 4096

// DefaultMaxRetries is how often a rejected benchmark is run again before
// it is dumped.
const DefaultMaxRetries = 5

// DefaultKillTimeout is the grace period between SIGTERM and SIGKILL when aborting.
const DefaultKillTimeout = 2 * time.Second

// ErrInterrupted is returned by Run when its context was cancelled.
var ErrInterrupted = errors.New("dispatch interrupted")

// FatalError stops a whole run: a job's output stream failed or a process
// could not be started.
type FatalError struct {
	Op      string
	Machine string
	Err     error
}

func (e *FatalError) Error() string {
	if e.Machine == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s on %s: %v", e.Op, e.Machine, e.Err)
}

func (e *FatalError) Cause() error { return e.Err }

type State int

const (
	Idle State = iota
	Running
	// Every queue is empty, the remaining jobs are finishing.
	Draining
	Aborting
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Draining:
		return "draining"
	case Aborting:
		return "aborting"
	case Stopped:
		return "stopped"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

type Options struct {
	Template *Template
	// MaxRetries bounds how often a benchmark whose result the sink rejected
	// is run again before it goes to Sink.DumpToFile. Zero retries forever.
	MaxRetries int
	// KillTimeout is how long jobs get to exit after SIGTERM when aborting.
	KillTimeout time.Duration
}

type Dispatcher struct {
	tasks  []*Task
	execer execer.Execer
	sink   Sink
	opts   Options
	stat   stats.StatsReceiver

	state    State
	active   map[int]*Job
	total    int
	done     int
	progress int
	rejected map[bench.Item]int
	buf      []byte

	// procs mirrors the running processes for Kill, which may be called
	// from another goroutine.
	mu    sync.Mutex
	procs map[int]execer.Process
}

func NewDispatcher(tasks []*Task, e execer.Execer, sink Sink, opts Options, stat stats.StatsReceiver) *Dispatcher {
	if opts.Template == nil {
		opts.Template = &Template{}
	}
	if opts.KillTimeout <= 0 {
		opts.KillTimeout = DefaultKillTimeout
	}
	if stat == nil {
		stat = stats.NilStatsReceiver()
	}
	return &Dispatcher{
		tasks:    tasks,
		execer:   e,
		sink:     sink,
		opts:     opts,
		stat:     stat.Scope("dispatcher"),
		active:   make(map[int]*Job),
		rejected: make(map[bench.Item]int),
		procs:    make(map[int]execer.Process),
		buf:      make([]byte, readBufferSize),
	}
}

func (d *Dispatcher) State() State { return d.state }

// Total is the number of benchmarks queued when Run started.
func (d *Dispatcher) Total() int { return d.total }

// Done is the number of benchmarks the sink accepted or that were dumped
// after too many rejections.
func (d *Dispatcher) Done() int { return d.done }

func (d *Dispatcher) Progress() int { return d.progress }

// Run starts as many jobs as every task allows and services them until all
// queues are empty and every job has been reported.
//
// It returns nil when everything ran, ErrInterrupted when ctx was cancelled,
// and a *FatalError when a process could not be started or an output stream
// failed. In the last two cases every running job is terminated before Run
// returns.
func (d *Dispatcher) Run(ctx context.Context) error {
	if d.state != Idle {
		return errors.Errorf("dispatcher is %s", d.state)
	}
	for _, t := range d.tasks {
		d.total += t.Pending()
	}
	if ctx.Err() != nil {
		d.state = Stopped
		return ErrInterrupted
	}

	w, err := newWaker()
	if err != nil {
		d.state = Stopped
		return err
	}
	stop := make(chan struct{})
	exited := make(chan struct{})
	go func() {
		defer close(exited)
		select {
		case <-ctx.Done():
			w.wake()
		case <-stop:
		}
	}()
	defer func() {
		close(stop)
		<-exited
		w.close()
	}()

	log.WithFields(log.Fields{"machines": len(d.tasks), "benchmarks": d.total}).Info("Started dispatching benchmarks")
	d.state = Running
	for _, t := range d.tasks {
		for i := 0; i < t.Parallel(); i++ {
			job, err := d.spawn(t)
			if err != nil {
				return d.abort(err)
			}
			if job == nil {
				break
			}
		}
	}

	for len(d.active) > 0 {
		d.updateState()
		if err := d.poll(ctx, w); err != nil {
			return d.abort(err)
		}
	}
	d.state = Stopped
	log.WithFields(log.Fields{"done": d.done, "total": d.total}).Info("Finished dispatching benchmarks")
	return nil
}

func (d *Dispatcher) updateState() {
	if d.state != Running {
		return
	}
	for _, t := range d.tasks {
		if t.Pending() > 0 {
			return
		}
	}
	d.state = Draining
}

func (d *Dispatcher) spawn(t *Task) (*Job, error) {
	job, err := t.Spawn(d.execer, d.opts.Template)
	if err != nil {
		return nil, &FatalError{Op: "spawn", Machine: t.Machine(), Err: err}
	}
	if job == nil {
		return nil, nil
	}
	d.active[job.Process.Fd()] = job
	d.track(job.Process)
	d.stat.Counter(stats.DispatcherSpawnedCounter).Inc(1)
	d.stat.Gauge(stats.DispatcherRunningGauge).Update(int64(len(d.active)))
	log.WithFields(jobFields(job)).Debug("Running benchmark")
	return job, nil
}

// poll waits for output on any job and services every job that got ready.
func (d *Dispatcher) poll(ctx context.Context, w *waker) error {
	fds := make([]unix.PollFd, 0, len(d.active)+1)
	fds = append(fds, unix.PollFd{Fd: int32(w.fd()), Events: unix.POLLIN})
	for fd := range d.active {
		fds = append(fds, unix.PollFd{Fd: int32(fd), Events: unix.POLLIN})
	}

	if _, err := unix.Poll(fds, -1); err != nil {
		if err == unix.EINTR {
			return nil
		}
		return &FatalError{Op: "poll", Err: err}
	}
	if fds[0].Revents != 0 {
		return ErrInterrupted
	}

	for _, pfd := range fds[1:] {
		if pfd.Revents == 0 {
			continue
		}
		job := d.active[int(pfd.Fd)]
		if pfd.Revents&(unix.POLLERR|unix.POLLNVAL) != 0 {
			return &FatalError{
				Op:      "waiting for " + job.Item.Basename(),
				Machine: job.Machine(),
				Err:     errors.Errorf("poll revents %#x", pfd.Revents),
			}
		}
		closed := pfd.Revents&unix.POLLHUP != 0
		eof, err := d.drain(job)
		if err != nil {
			return &FatalError{Op: "reading " + job.Item.Basename(), Machine: job.Machine(), Err: err}
		}
		if closed || eof {
			if err := d.finish(ctx, job); err != nil {
				return err
			}
		}
	}
	return nil
}

// drain reads everything the job's stream has buffered.
func (d *Dispatcher) drain(job *Job) (eof bool, err error) {
	for {
		n, err := job.Process.Read(d.buf)
		if n > 0 {
			job.consume(d.buf[:n])
		}
		switch err {
		case nil:
		case execer.ErrWouldBlock:
			return false, nil
		case io.EOF:
			return true, nil
		default:
			return false, err
		}
	}
}

// finish reaps a job whose output ended, reports it and starts its
// replacement.
func (d *Dispatcher) finish(ctx context.Context, job *Job) error {
	job.flush()
	status, err := d.reap(ctx, job)
	if err != nil {
		// still active, abort takes care of it
		return err
	}
	fd := job.Process.Fd()
	delete(d.active, fd)
	d.untrack(fd)
	job.Process.Close()
	job.Status = status
	job.Task.release()
	d.stat.Latency(stats.DispatcherJobLatency_ms).Record(time.Since(job.started))
	d.stat.Gauge(stats.DispatcherRunningGauge).Update(int64(len(d.active)))
	log.WithFields(jobFields(job)).WithField("status", job.Status.String()).Debug("Benchmark finished")

	if d.sink.Done(job) {
		delete(d.rejected, job.Item)
		d.stat.Counter(stats.DispatcherCompletedCounter).Inc(1)
		d.complete()
	} else {
		d.reject(job)
	}

	_, err = d.spawn(job.Task)
	return err
}

// reap waits for a job whose output ended. A process can keep running after
// closing its output, so the wait gives way to ctx.
func (d *Dispatcher) reap(ctx context.Context, job *Job) (execer.ProcessStatus, error) {
	waited := make(chan execer.ProcessStatus, 1)
	go func() {
		waited <- job.Process.Wait()
	}()
	select {
	case status := <-waited:
		return status, nil
	case <-ctx.Done():
	}
	select {
	case status := <-waited:
		return status, nil
	default:
		log.WithFields(jobFields(job)).Info("Interrupted while waiting for benchmark to exit")
		return execer.ProcessStatus{}, ErrInterrupted
	}
}

func (d *Dispatcher) reject(job *Job) {
	n := d.rejected[job.Item] + 1
	fields := jobFields(job)
	if d.opts.MaxRetries > 0 && n > d.opts.MaxRetries {
		delete(d.rejected, job.Item)
		reason := fmt.Sprintf("result rejected %d times", n)
		if err := d.sink.DumpToFile(job, reason); err != nil {
			log.WithFields(fields).Errorf("Dumping benchmark failed: %v", err)
		}
		log.WithFields(fields).Warnf("Giving up on benchmark, %s", reason)
		d.stat.Counter(stats.DispatcherDumpedCounter).Inc(1)
		d.complete()
		return
	}
	d.rejected[job.Item] = n
	log.WithFields(fields).WithField("attempt", n).Info("Benchmark result rejected, will run it again")
	d.stat.Counter(stats.DispatcherRequeuedCounter).Inc(1)
	job.Task.Requeue(job.Item)
}

func (d *Dispatcher) complete() {
	d.done++
	p := int(math.Round(100 * float64(d.done) / float64(d.total)))
	if p != d.progress {
		d.progress = p
		d.stat.Gauge(stats.DispatcherProgressGauge).Update(int64(p))
		d.sink.Progress(p)
	}
}

// abort terminates every running job, giving all of them the same
// KillTimeout to exit before they are killed.
func (d *Dispatcher) abort(cause error) error {
	d.state = Aborting
	if cause == ErrInterrupted {
		log.Info("Stopping...")
	} else {
		log.Errorf("Aborting: %v", cause)
	}

	for _, job := range d.active {
		job.Process.Terminate()
	}
	deadline := time.Now().Add(d.opts.KillTimeout)
	for fd, job := range d.active {
		job.Status = job.Process.Abort(time.Until(deadline))
		job.Process.Close()
		job.Task.release()
		delete(d.active, fd)
		d.untrack(fd)
		d.stat.Counter(stats.DispatcherAbortedCounter).Inc(1)
		log.WithFields(jobFields(job)).WithField("status", job.Status.String()).Debug("Benchmark aborted")
	}
	d.stat.Gauge(stats.DispatcherRunningGauge).Update(0)
	d.state = Stopped
	return cause
}

// Kill sends SIGKILL to every running job without waiting for them. Unlike
// the rest of Dispatcher it is safe to call while Run is in progress, for
// a forced exit.
func (d *Dispatcher) Kill() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, p := range d.procs {
		p.Kill()
	}
	if len(d.procs) > 0 {
		log.Warnf("Killed %d running benchmarks", len(d.procs))
	}
}

func (d *Dispatcher) track(p execer.Process) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.procs[p.Fd()] = p
}

func (d *Dispatcher) untrack(fd int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.procs, fd)
}

func jobFields(job *Job) log.Fields {
	return log.Fields{
		"machine":   job.Machine(),
		"benchmark": job.Item.Basename(),
		"category":  job.Item.Category,
	}
}
