package logger

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewInvalidLevel(t *testing.T) {
	_, err := New(Config{Level: "chatty"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestNewWritesRotatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spawnpool.log")

	l, err := New(Config{
		Level:       "debug",
		Encoding:    "console",
		OutputPaths: []string{os.DevNull},
		File:        path,
		MaxSizeMB:   1,
	})
	require.NoError(t, err)

	l.Warn("queue almost empty", zap.String("type", "mage"))
	_ = l.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"queue almost empty"`)
	assert.Contains(t, string(data), `"type":"mage"`)
}

func TestWithContext(t *testing.T) {
	ctx := context.WithValue(context.Background(), RunIDKey, "run-1")
	ctx = context.WithValue(ctx, PoolKey, "enemies")

	assert.NotNil(t, WithContext(ctx))
	assert.NotNil(t, Get())
}
