package cli

import (
	"context"
	"os"
	"os/signal"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"

	satterrors "github.com/staticafi/satt/common/errors"
)

// Overridable for testing.
var exit = os.Exit

// notifyContext returns a context cancelled by the first SIGINT or SIGTERM.
// A second one runs teardown and exits the process right away.
func notifyContext(parent context.Context, teardown func()) (context.Context, func()) {
	ctx, cancel := context.WithCancel(parent)
	sigs := make(chan os.Signal, 2)
	signal.Notify(sigs, unix.SIGINT, unix.SIGTERM)
	done := make(chan struct{})

	go func() {
		select {
		case sig := <-sigs:
			log.Infof("Got %s, stopping all benchmarks", sig)
			cancel()
		case <-done:
			return
		}
		select {
		case sig := <-sigs:
			log.Errorf("Got %s again, exiting", sig)
			if teardown != nil {
				teardown()
			}
			exit(int(satterrors.InterruptedExitCode))
		case <-done:
		}
	}()

	return ctx, func() {
		signal.Stop(sigs)
		close(done)
		cancel()
	}
}
