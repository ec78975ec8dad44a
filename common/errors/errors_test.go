package errors

import (
	"fmt"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, SuccessExitCode, GetExitCode(nil))
	assert.Equal(t, FailureExitCode, GetExitCode(fmt.Errorf("boom")))
	assert.Equal(t, LockHeldExitCode, GetExitCode(NewError(fmt.Errorf("held"), LockHeldExitCode)))

	wrapped := pkgerrors.Wrap(NewError(fmt.Errorf("stop"), AbortedExitCode), "running")
	assert.Equal(t, AbortedExitCode, GetExitCode(wrapped))

	assert.Equal(t, InterruptedExitCode, GetExitCode(Wrapf(fmt.Errorf("sig"), InterruptedExitCode, "run %d", 1)))
	assert.Nil(t, Wrapf(nil, FailureExitCode, "x"))
}

func TestNilExitCodeError(t *testing.T) {
	var e *ExitCodeError
	assert.Equal(t, SuccessExitCode, e.GetExitCode())
	assert.Nil(t, NewError(nil, FailureExitCode))
}
