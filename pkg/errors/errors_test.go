package errors

import (
	stderrors "errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCapturesStack(t *testing.T) {
	err := New(ErrorTypeNoMatch, "nothing matched")

	require.NotEmpty(t, err.Stack)
	assert.Contains(t, err.Stack[0].Function, "TestNewCapturesStack")
	assert.Nil(t, err.Unwrap())
}

func TestWrapPreservesStackAndCause(t *testing.T) {
	inner := New(ErrorTypeNotFound, "missing")
	outer := Wrap(inner, ErrorTypePartialBatch, "batch short")

	assert.Equal(t, inner.Stack, outer.Stack)
	assert.True(t, stderrors.Is(outer, inner))
	assert.True(t, IsType(outer, ErrorTypePartialBatch))
	assert.False(t, IsType(outer, ErrorTypeNotFound))
	assert.Nil(t, Wrap(nil, ErrorTypeFile, "unused"))
}

func TestWrapStdlibError(t *testing.T) {
	err := Wrap(io.EOF, ErrorTypeFile, "read failed")

	assert.ErrorIs(t, err, io.EOF)
	assert.NotEmpty(t, err.Stack)
	assert.Equal(t, "file: read failed: EOF", err.Error())
}

func TestWithDetail(t *testing.T) {
	err := Newf(ErrorTypeDuplicate, "%d duplicate keys", 2).
		WithDetail("keys", []string{"mage", "spider"})

	assert.Equal(t, "duplicate_registration: 2 duplicate keys", err.Error())
	assert.Equal(t, []string{"mage", "spider"}, err.Details["keys"])
}

func TestIsTypeOnPlainError(t *testing.T) {
	assert.False(t, IsType(io.EOF, ErrorTypeInternal))
	assert.False(t, IsType(nil, ErrorTypeInternal))
}
