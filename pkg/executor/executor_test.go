package executor

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecute(t *testing.T) {
	e := New()
	if !e.Available("sh") {
		t.Skip("sh not available")
	}

	out, err := e.Execute(context.Background(), "sh", "-c", "printf hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", out)
}

func TestExecuteIncludesStderr(t *testing.T) {
	e := New()
	if !e.Available("sh") {
		t.Skip("sh not available")
	}

	_, err := e.Execute(context.Background(), "sh", "-c", "echo broken >&2; exit 3")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "stderr: broken"))
}

func TestExecuteInDir(t *testing.T) {
	e := New()
	if !e.Available("pwd") {
		t.Skip("pwd not available")
	}

	dir := t.TempDir()
	out, err := e.ExecuteInDir(context.Background(), dir, "pwd")
	require.NoError(t, err)
	assert.Contains(t, strings.TrimSpace(out), strings.TrimPrefix(dir, "/private"))
}

func TestAvailable(t *testing.T) {
	assert.False(t, New().Available("definitely-not-a-real-binary-xyz"))
}
