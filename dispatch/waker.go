package dispatch

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// waker is a self-pipe that makes the poll loop return when written to.
type waker struct {
	r, w int
}

func newWaker() (*waker, error) {
	var fds [2]int
	if err := unix.Pipe2(fds[:], unix.O_CLOEXEC|unix.O_NONBLOCK); err != nil {
		return nil, errors.Wrap(err, "creating wake pipe")
	}
	return &waker{r: fds[0], w: fds[1]}, nil
}

func (w *waker) fd() int { return w.r }

func (w *waker) wake() {
	// a full pipe already wakes the loop
	unix.Write(w.w, []byte{1})
}

func (w *waker) close() {
	unix.Close(w.r)
	unix.Close(w.w)
}
