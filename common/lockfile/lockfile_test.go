package lockfile

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireRelease(t *testing.T) {
	dir, err := ioutil.TempDir("", "lockfile")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, ".satt-running.lock")

	l, err := Acquire(path)
	require.NoError(t, err)

	data, err := ioutil.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), strconv.Itoa(os.Getpid())+" "))

	_, err = Acquire(path)
	assert.Equal(t, ErrLocked, errors.Cause(err))

	require.NoError(t, l.Release())
	require.NoError(t, l.Release())
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	l, err = Acquire(path)
	require.NoError(t, err)
	require.NoError(t, l.Release())
}

func TestAcquireMissingDir(t *testing.T) {
	_, err := Acquire("/nonexistent/dir/lock")
	assert.Error(t, err)
	assert.NotEqual(t, ErrLocked, errors.Cause(err))
}

func TestConcurrentRelease(t *testing.T) {
	dir, err := ioutil.TempDir("", "lockfile")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "run.lock")

	l, err := Acquire(path)
	require.NoError(t, err)

	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() { errs <- l.Release() }()
	}
	assert.NoError(t, <-errs)
	assert.NoError(t, <-errs)
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
