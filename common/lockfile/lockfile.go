// Package lockfile keeps two runs from sharing a working directory.
package lockfile

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// ErrLocked is returned by Acquire when the lock file already exists.
var ErrLocked = errors.New("another run holds the lock")

type Lock struct {
	mu   sync.Mutex
	path string
}

// Acquire creates path exclusively and records the owner's pid and start
// time in it. A leftover file from a crashed run has to be removed by hand.
func Acquire(path string) (*Lock, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if os.IsExist(err) {
		return nil, errors.Wrapf(ErrLocked, "lock file %s exists", path)
	}
	if err != nil {
		return nil, errors.Wrap(err, "taking lock")
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "%d %s\n", os.Getpid(), time.Now().Format(time.ANSIC)); err != nil {
		os.Remove(path)
		return nil, errors.Wrapf(err, "writing lock file %s", path)
	}
	log.WithField("path", path).Debug("Took lock")
	return &Lock{path: path}, nil
}

// Release removes the lock file. Releasing twice is a no-op, also from
// different goroutines.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.path == "" {
		return nil
	}
	path := l.path
	l.path = ""
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "removing lock file %s", path)
	}
	return nil
}
