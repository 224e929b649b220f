package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_EmptyPathIsNop(t *testing.T) {
	l, err := New("dev", "")
	require.NoError(t, err)
	require.NotNil(t, l)
	l.Info("discarded", "k", "v")
}

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")

	l, err := New("prod", path)
	require.NoError(t, err)
	l.With("component", "test").Info("hello", "answer", 42)
	l.Debug("below level")
	l.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
	assert.Contains(t, string(data), `"component":"test"`)
	assert.NotContains(t, string(data), "below level")
}
