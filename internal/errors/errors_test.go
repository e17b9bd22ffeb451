package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapNilIsNil(t *testing.T) {
	assert.NoError(t, Wrap(IOFailure, "copy", "/dst", nil))
}

func TestWrapKeepsUnderlyingError(t *testing.T) {
	err := Wrap(NotFound, "stat", "/missing", fmt.Errorf("billy: stat: %w", fs.ErrNotExist))

	require.Error(t, err)
	assert.True(t, stderrors.Is(err, fs.ErrNotExist))
	assert.Equal(t, NotFound, KindOf(err))
	assert.Equal(t, "stat: /missing: billy: stat: file does not exist", err.Error())
}

func TestUserMessage(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{Wrap(InvalidConfig, "config", "", stderrors.New("source is required")), "Invalid configuration: source is required"},
		{Wrap(NotFound, "stat", "/src", fs.ErrNotExist), "Path not found: /src"},
		{Wrap(IOFailure, "write", "images.json", fs.ErrPermission), "I/O error: images.json: permission denied"},
		{Wrap(Internal, "plan", "", stderrors.New("boom")), "Unexpected error: boom"},
		{stderrors.New("plain"), "plain"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, UserMessage(tc.err))
	}
}

func TestKindOfPlainError(t *testing.T) {
	assert.Equal(t, Internal, KindOf(stderrors.New("x")))
}
