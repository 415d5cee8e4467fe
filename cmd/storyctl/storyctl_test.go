package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storyloom/internal/bootstrap"
	"storyloom/internal/config"
)

func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("STORYLOOM_DB_PATH", filepath.Join(dir, "ctl.db"))
	t.Setenv("STORYLOOM_STORAGE", "sqlite")
	t.Setenv("STORYLOOM_LOG_LEVEL", "error")
	return dir
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute(), out.String())
	return out.String()
}

func TestPersonasCommands(t *testing.T) {
	dir := setupEnv(t)

	id := strings.TrimSpace(run(t, "personas", "create", "Alice"))
	require.NotEmpty(t, id)
	run(t, "personas", "create", "Bob")

	out := run(t, "personas", "list")
	assert.Contains(t, out, "*  "+id)
	assert.Contains(t, out, "Bob")

	exportPath := filepath.Join(dir, "personas.yaml")
	assert.Equal(t, "exported 2 personas\n", run(t, "personas", "export", exportPath))

	run(t, "personas", "delete", id)
	out = run(t, "personas", "list")
	assert.NotContains(t, out, id)
	assert.True(t, strings.HasPrefix(out, "*"), "remaining persona is promoted to default")

	assert.Equal(t, "imported 2 personas\n", run(t, "personas", "import", exportPath))
}

func TestFontsCSSCommand(t *testing.T) {
	setupEnv(t)

	run(t, "fonts", "set", "code", "Fira Code", "--size", "13")
	out := run(t, "fonts", "css")

	assert.Contains(t, out, `--font-code-family: "Fira Code", monospace;`)
	assert.Contains(t, out, "--font-code-size: 13px;")
}

func TestChatsRecentCommand(t *testing.T) {
	setupEnv(t)

	cfg, err := config.Parse()
	require.NoError(t, err)
	s, err := bootstrap.Open(cfg, nil)
	require.NoError(t, err)
	ctx := context.Background()
	root, err := s.Services.Dialogues.AppendMessage(ctx, "char-1", "", "user", "Where is the lighthouse?")
	require.NoError(t, err)
	_, err = s.Services.Dialogues.AppendMessage(ctx, "char-1", root.ID, "assistant", "North of the bay.")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	out := run(t, "chats", "recent", "char-1", "--limit", "3")
	assert.Contains(t, out, "Where is the lighthouse?")
	assert.True(t, strings.HasPrefix(out, "*"))
}
