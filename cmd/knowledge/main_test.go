package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestCollectDocuments(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "guide.md"), []byte("# Guide\n\nbody"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("plain notes"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "image.png"), []byte{0x89}, 0o644))

	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.Mkdir(sub, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "deep.markdown"), []byte("deep"), 0o644))

	docs, err := collectDocuments([]string{dir}, "ops")
	require.NoError(t, err)
	require.Len(t, docs, 3, "non-text files are skipped")

	byTitle := make(map[string]bool)
	for _, doc := range docs {
		byTitle[doc.Title] = true
		assert.Equal(t, "ops", doc.Category)
		assert.NotEmpty(t, doc.ID)
		assert.NotContains(t, doc.ID, "\\", "IDs use forward slashes")
	}
	assert.True(t, byTitle["guide"])
	assert.True(t, byTitle["notes"])
	assert.True(t, byTitle["deep"])
}

func TestCollectDocuments_SingleFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "single.md")
	require.NoError(t, os.WriteFile(path, []byte("content"), 0o644))

	docs, err := collectDocuments([]string{path}, "")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "single", docs[0].Title)
	assert.Equal(t, "content", docs[0].Content)
}

func TestCollectDocuments_MissingPath(t *testing.T) {
	_, err := collectDocuments([]string{"/does/not/exist"}, "")
	assert.Error(t, err)
}

func TestIndexableFile(t *testing.T) {
	assert.True(t, indexableFile("a.md"))
	assert.True(t, indexableFile("a.MD"))
	assert.True(t, indexableFile("a.markdown"))
	assert.True(t, indexableFile("a.txt"))
	assert.False(t, indexableFile("a.png"))
	assert.False(t, indexableFile("a"))
}

func TestSnippet(t *testing.T) {
	assert.Equal(t, "short text", snippet("short   text", 50))

	long := strings.Repeat("word ", 100)
	cut := snippet(long, 40)
	assert.True(t, strings.HasSuffix(cut, "…"))
	assert.LessOrEqual(t, len(cut), 40+len("…"))
}

func TestSetupLogger(t *testing.T) {
	app := &cli.App{
		Name: "knowledge",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "log-level", Value: "info"},
		},
		Before: setupLogger,
		Action: func(c *cli.Context) error { return nil },
	}

	t.Run("valid levels accepted", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error", "WARN"} {
			assert.NoError(t, app.Run([]string{"knowledge", "--log-level", level}))
		}
	})

	t.Run("invalid level rejected", func(t *testing.T) {
		err := app.Run([]string{"knowledge", "--log-level", "verbose"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})

	t.Run("debug level enables debug logging", func(t *testing.T) {
		require.NoError(t, app.Run([]string{"knowledge", "--log-level", "debug"}))
		assert.True(t, slog.Default().Enabled(nil, slog.LevelDebug))
	})
}
