package os

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"

	"github.com/staticafi/satt/runner/execer"
)

const DefaultShell = "/bin/sh"

// Implements runner/execer.Execer
type osExecer struct {
	shell string
}

// NewExecer returns an Execer running each command line through shell
// (DefaultShell if empty). Commands get their own process group and a single
// pipe shared by stdout and stderr.
func NewExecer(shell string) execer.Execer {
	if shell == "" {
		shell = DefaultShell
	}
	return &osExecer{shell: shell}
}

func (e *osExecer) Exec(command execer.Command) (execer.Process, error) {
	if command.Line == "" {
		return nil, fmt.Errorf("No command specified.")
	}

	var fds [2]int
	if err := unix.Pipe2(fds[:], unix.O_CLOEXEC); err != nil {
		return nil, errors.Wrap(err, "creating output pipe")
	}
	// The child gets the write end twice, as stdout and stderr. The parent
	// drops its copy right after start so end of output means every writer
	// in the process group went away.
	w := os.NewFile(uintptr(fds[1]), "output")
	defer w.Close()

	if err := unix.SetNonblock(fds[0], true); err != nil {
		unix.Close(fds[0])
		return nil, errors.Wrap(err, "making output pipe non-blocking")
	}

	cmd := exec.Command(e.shell, "-c", command.Line)
	cmd.Stdout = w
	cmd.Stderr = w
	// Sets pgid of all child processes to cmd's pid
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	if err := cmd.Start(); err != nil {
		unix.Close(fds[0])
		return nil, errors.Wrapf(err, "starting %q", command.Line)
	}

	p := &process{cmd: cmd, fd: fds[0], tags: log.Fields(command.LogTags)}
	log.WithFields(p.fields()).Debug("Started process")
	return p, nil
}
