// Package log configures the process-wide logrus logger.
package log

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/staticafi/satt/common/log/hooks"
)

// Setup sets the global level and, when file is non-empty, tees all log
// output to that file in addition to stderr. The returned file, if any, should
// be passed to Close on exit.
func Setup(level logrus.Level, file string) (*os.File, error) {
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if level >= logrus.DebugLevel {
		AddHook(hooks.NewContextHook())
	}
	if file == "" {
		logrus.SetOutput(os.Stderr)
		return nil, nil
	}
	f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, errors.Wrapf(err, "opening log file %s", file)
	}
	logrus.SetOutput(io.MultiWriter(os.Stderr, f))
	return f, nil
}

// Close points logging back at stderr and closes the file from Setup.
func Close(f *os.File) error {
	logrus.SetOutput(os.Stderr)
	if f == nil {
		return nil
	}
	return f.Close()
}

func AddHook(hook logrus.Hook) {
	logrus.AddHook(hook)
}

// ParseLevel is logrus.ParseLevel, except that debug forces DebugLevel.
func ParseLevel(name string, debug bool) (logrus.Level, error) {
	if debug {
		return logrus.DebugLevel, nil
	}
	if name == "" {
		return logrus.InfoLevel, nil
	}
	return logrus.ParseLevel(name)
}
