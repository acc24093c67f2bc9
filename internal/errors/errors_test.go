package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap_KeepsCode(t *testing.T) {
	base := ConfigInvalid("STATCHECK_WORKERS must be at least 1")
	err := Wrap(base, "configuration validation failed")

	assert.Equal(t, CodeConfigInvalid, GetCode(err))
	assert.Equal(t, "configuration validation failed: STATCHECK_WORKERS must be at least 1", err.Error())
	assert.True(t, stderrors.Is(err, base))
}

func TestWrap_FindsCodeThroughFmt(t *testing.T) {
	inner := fmt.Errorf("loading: %w", IOError("runs/a.json", fs.ErrNotExist))
	err := Wrapf(inner, "run %d", 2)

	assert.Equal(t, CodeIOError, GetCode(err))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestWrap_PlainError(t *testing.T) {
	err := Wrap(stderrors.New("boom"), "failed")
	assert.Equal(t, CodeInternalError, GetCode(err))
	assert.Nil(t, Wrap(nil, "nothing"))
	assert.Nil(t, Wrapf(nil, "nothing %d", 1))
}

func TestWithCode(t *testing.T) {
	err := WithCode(CodeInvalidInput, stderrors.New("bad record"))
	assert.Equal(t, CodeInvalidInput, GetCode(err))
	assert.True(t, IsAppError(err))
	assert.False(t, IsAppError(stderrors.New("plain")))
	assert.Equal(t, "UNKNOWN", GetCode(stderrors.New("plain")))
}

func TestConstructors(t *testing.T) {
	assert.Equal(t, "records.txt not found", NotFound("records.txt").Error())
	assert.Equal(t, "unsupported file type: records.txt", UnsupportedFile("records.txt").Error())
	assert.Equal(t, CodeUnsupportedFile, UnsupportedFile("x").Code)
}
