package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/recap/internal/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTestConfig writes a config that keeps all state inside a temp dir.
func writeTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	cfg := `assemblyai:
  api_key: test-key
gemini:
  api_keys: ["k1"]
history:
  driver: sqlite
  sqlite_path: ` + filepath.Join(dir, "recap.db") + `
server:
  jwt_secret: cli-secret
paths:
  temp: ` + filepath.Join(dir, "temp") + `
logging:
  level: error
`
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0644))
	return path
}

// runApp runs the CLI and returns what it printed to stdout.
func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	runErr := newCLIApp().Run(append([]string{"recap"}, args...))

	w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	_, err = io.Copy(&buf, r)
	require.NoError(t, err)
	return buf.String(), runErr
}

func TestIsRef(t *testing.T) {
	tests := []struct {
		arg  string
		want bool
	}{
		{"meeting.mp3", false},
		{"/tmp/gs/meeting.mp3", false},
		{"gs://bucket/meeting.mp3", true},
		{"gridfs:65a1f0c2e4b0a1b2c3d4e5f6", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isRef(tt.arg), tt.arg)
	}
}

func TestTokenCommand(t *testing.T) {
	cfgPath := writeTestConfig(t)

	out, err := runApp(t, "--config", cfgPath, "token", "--user", "u1")
	require.NoError(t, err)

	ctx := identity.WithToken(context.Background(), strings.TrimSpace(out))
	id, err := identity.NewJWTChecker("cli-secret").CheckLogin(ctx)
	require.NoError(t, err)
	assert.Equal(t, identity.Identity{LoggedIn: true, UserID: "u1"}, id)
}

func TestHistoryListEmpty(t *testing.T) {
	cfgPath := writeTestConfig(t)

	out, err := runApp(t, "--config", cfgPath, "history", "list", "--user", "u1")
	require.NoError(t, err)

	var got map[string][]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.NotNil(t, got["history_record"])
	assert.Empty(t, got["history_record"])
}

func TestHistoryDeleteSelectedRequiresIDs(t *testing.T) {
	cfgPath := writeTestConfig(t)

	_, err := runApp(t, "--config", cfgPath, "history", "delete-selected")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INVALID_REQUEST")
}

func TestRunRequiresOneArgument(t *testing.T) {
	_, err := runApp(t, "run")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one audio file")
}

func TestMissingConfig(t *testing.T) {
	_, err := runApp(t, "--config", filepath.Join(t.TempDir(), "nope.yaml"), "history", "list", "--user", "u1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}
