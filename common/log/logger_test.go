package log

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupTeesToFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "log")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "satt.log")

	f, err := Setup(logrus.InfoLevel, path)
	require.NoError(t, err)
	require.NotNil(t, f)

	logrus.WithField("machine", "arran").Info("Started dispatching benchmarks")
	logrus.Debug("not logged")
	require.NoError(t, Close(f))

	data, err := ioutil.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.Contains(text, "Started dispatching benchmarks"))
	assert.True(t, strings.Contains(text, "machine=arran"))
	assert.False(t, strings.Contains(text, "not logged"))
}

func TestSetupWithoutFile(t *testing.T) {
	f, err := Setup(logrus.WarnLevel, "")
	require.NoError(t, err)
	assert.Nil(t, f)
	assert.Equal(t, logrus.WarnLevel, logrus.GetLevel())
	assert.NoError(t, Close(f))
	logrus.SetLevel(logrus.InfoLevel)
}

func TestSetupBadPath(t *testing.T) {
	_, err := Setup(logrus.InfoLevel, "/nonexistent/dir/satt.log")
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	l, err := ParseLevel("error", true)
	assert.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, l)

	l, err = ParseLevel("", false)
	assert.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, l)

	l, err = ParseLevel("warn", false)
	assert.NoError(t, err)
	assert.Equal(t, logrus.WarnLevel, l)

	_, err = ParseLevel("loud", false)
	assert.Error(t, err)
}
