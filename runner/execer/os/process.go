package os

import (
	"fmt"
	"io"
	"os/exec"
	"sync"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"

	"github.com/staticafi/satt/runner/execer"
)

// Implements runner/execer.Process
type process struct {
	cmd  *exec.Cmd
	fd   int
	tags log.Fields

	mutex   sync.Mutex
	closed  bool
	waiting bool
	result  *execer.ProcessStatus
}

func (p *process) Fd() int  { return p.fd }
func (p *process) Pid() int { return p.cmd.Process.Pid }

func (p *process) fields() log.Fields {
	f := log.Fields{"pid": p.cmd.Process.Pid}
	for k, v := range p.tags {
		f[k] = v
	}
	return f
}

func (p *process) Read(b []byte) (int, error) {
	for {
		n, err := unix.Read(p.fd, b)
		switch {
		case err == unix.EINTR:
			continue
		case err == unix.EAGAIN:
			return 0, execer.ErrWouldBlock
		case err != nil:
			return 0, err
		case n == 0 && len(b) > 0:
			return 0, io.EOF
		}
		return n, nil
	}
}

func (p *process) Close() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	return unix.Close(p.fd)
}

// Signal the whole process group; the shell's children would otherwise
// keep the output pipe open.
func (p *process) signal(sig unix.Signal) error {
	err := unix.Kill(-p.cmd.Process.Pid, sig)
	if err == unix.ESRCH {
		return nil
	}
	return err
}

func (p *process) Terminate() error {
	if err := p.signal(unix.SIGTERM); err != nil {
		log.WithFields(p.fields()).Errorf("Error sending SIGTERM: %s", err)
		return err
	}
	return nil
}

func (p *process) Kill() error {
	if err := p.signal(unix.SIGKILL); err != nil {
		log.WithFields(p.fields()).Errorf("Failed to SIGKILL process group: %s", err)
		return err
	}
	return nil
}

// Wait for the process to finish.
// If the command finishes without error return the status COMPLETE and exit Code 0.
// If the command fails, and we can get the exit code from the command, return COMPLETE with the failing exit code.
// if the command fails and we cannot get the exit code from the command, return FAILED and the error
// that prevented getting the exit code.
func (p *process) Wait() execer.ProcessStatus {
	p.mutex.Lock()
	if p.result != nil {
		defer p.mutex.Unlock()
		return *p.result
	}
	if p.waiting {
		p.mutex.Unlock()
		result, _ := p.awaitResult(-1)
		return result
	}
	p.waiting = true
	p.mutex.Unlock()

	result := statusOf(p.cmd.Wait())
	log.WithFields(p.fields()).Debugf("Finished waiting for process: %s", result)

	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.waiting = false
	if p.result == nil {
		p.result = &result
	}
	return *p.result
}

// awaitResult polls for the status recorded by whoever is reaping the
// process. It gives up after timeout unless timeout is negative.
func (p *process) awaitResult(timeout time.Duration) (execer.ProcessStatus, bool) {
	deadline := time.Now().Add(timeout)
	for {
		p.mutex.Lock()
		if p.result != nil {
			result := *p.result
			p.mutex.Unlock()
			return result, true
		}
		p.mutex.Unlock()
		if timeout >= 0 && time.Now().After(deadline) {
			return execer.ProcessStatus{}, false
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func statusOf(err error) execer.ProcessStatus {
	if err == nil {
		return execer.ProcessStatus{State: execer.COMPLETE}
	}
	if err, ok := err.(*exec.ExitError); ok {
		if status, ok := err.Sys().(syscall.WaitStatus); ok {
			if status.Signaled() {
				return execer.ProcessStatus{
					State:    execer.COMPLETE,
					ExitCode: -1,
					Error:    fmt.Sprintf("killed by %s", status.Signal()),
				}
			}
			return execer.ProcessStatus{State: execer.COMPLETE, ExitCode: status.ExitStatus()}
		}
		return execer.ProcessStatus{State: execer.FAILED, Error: "Could not find WaitStatus from exiterr.Sys()"}
	}
	return execer.ProcessStatus{State: execer.FAILED, Error: err.Error()}
}

// Abort sends SIGTERM to the process group, allowing for graceful exit, and
// SIGKILL once grace has passed. A non-positive grace kills right away.
func (p *process) Abort(grace time.Duration) execer.ProcessStatus {
	p.mutex.Lock()
	if p.result != nil {
		defer p.mutex.Unlock()
		return *p.result
	}
	if p.waiting {
		// Somebody else reaps it; make sure it goes away and take their result.
		p.mutex.Unlock()
		if grace > 0 && p.Terminate() == nil {
			if result, ok := p.awaitResult(grace); ok {
				return result
			}
		}
		p.Kill()
		result, _ := p.awaitResult(-1)
		return result
	}
	p.waiting = true
	p.mutex.Unlock()

	result := execer.ProcessStatus{State: execer.FAILED, ExitCode: -1, Error: "Aborted"}

	doneCh := make(chan error, 1)
	go func() {
		doneCh <- p.cmd.Wait()
	}()

	if grace > 0 {
		if err := p.Terminate(); err == nil {
			log.WithFields(p.fields()).Info("Aborting process via SIGTERM")
		}
		select {
		case <-doneCh:
			result.Error += " (SIGTERM)"
			return p.finishAbort(result)
		case <-time.After(grace):
			log.WithFields(p.fields()).Infof("Process still alive after %v, using SIGKILL", grace)
		}
	}

	p.Kill()
	<-doneCh
	result.Error += " (SIGKILL)"
	return p.finishAbort(result)
}

func (p *process) finishAbort(result execer.ProcessStatus) execer.ProcessStatus {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.waiting = false
	p.result = &result
	return result
}
