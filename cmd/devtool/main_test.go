package main

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickfindr/devtool/internal/config"
	"github.com/quickfindr/devtool/internal/favorites"
	"github.com/quickfindr/devtool/internal/section"
)

// captureOutput redirects status output to a buffer for the rest of the test
func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = prev })
	return &buf
}

func testEnv(t *testing.T) *Env {
	t.Helper()
	dir := t.TempDir()
	return &Env{
		Cfg: &config.Config{
			SlintFile:     filepath.Join(dir, "app_window.slint"),
			FavoritesFile: filepath.Join(dir, "favorites.json"),
			PrunePrefixes: []string{"/test/path"},
			RecentLimit:   favorites.DefaultRecentLimit,
			LogLevel:      "info",
			LogFormat:     "text",
			Environment:   "test",
		},
		Log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func fixture(t *testing.T) string {
	t.Helper()
	return readFile(t, filepath.Join("..", "..", "internal", "section", "testdata", "app_window.slint"))
}

func TestRegistry(t *testing.T) {
	r := newRegistry(testEnv(t))

	names := make([]string, 0)
	for _, cmd := range r.List() {
		names = append(names, cmd.Name())
	}
	assert.Equal(t, []string{
		"audit-braces",
		"balance-braces",
		"clean-recent",
		"doctor",
		"rebuild-anchored",
		"rebuild-section",
		"replace-section",
	}, names)

	_, ok := r.Get("clean-recent")
	assert.True(t, ok)
	_, ok = r.Get("missing")
	assert.False(t, ok)
}

func TestRun(t *testing.T) {
	t.Run("no command prints help and fails", func(t *testing.T) {
		out := captureOutput(t)
		assert.Equal(t, 1, run(newRegistry(testEnv(t)), nil))
		assert.Contains(t, out.String(), "Usage: devtool <command>")
	})

	t.Run("help succeeds", func(t *testing.T) {
		out := captureOutput(t)
		assert.Equal(t, 0, run(newRegistry(testEnv(t)), []string{"help"}))
		assert.Contains(t, out.String(), "rebuild-section")
	})

	t.Run("unknown command fails", func(t *testing.T) {
		out := captureOutput(t)
		assert.Equal(t, 1, run(newRegistry(testEnv(t)), []string{"frobnicate"}))
		assert.Contains(t, out.String(), "Unknown command: frobnicate")
	})

	t.Run("command error fails", func(t *testing.T) {
		out := captureOutput(t)
		// the default markup file has not been created
		assert.Equal(t, 1, run(newRegistry(testEnv(t)), []string{"audit-braces"}))
		assert.Contains(t, out.String(), "failed to read file")
	})

	t.Run("log records carry the command name", func(t *testing.T) {
		captureOutput(t)
		var logs bytes.Buffer
		env := testEnv(t)
		env.Log = slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
		writeFile(t, env.Cfg.SlintFile, "a {\n}\n")

		assert.Equal(t, 0, run(newRegistry(env), []string{"audit-braces"}))
		assert.Contains(t, logs.String(), "command=audit-braces")
		assert.Contains(t, logs.String(), "msg=\"command finished\"")
	})

	t.Run("command flag help succeeds", func(t *testing.T) {
		out := captureOutput(t)
		assert.Equal(t, 0, run(newRegistry(testEnv(t)), []string{"balance-braces", "-h"}))
		assert.Contains(t, out.String(), "-dry-run")
	})
}

func TestAuditBraces(t *testing.T) {
	t.Run("removes extra closers and reports negative lines", func(t *testing.T) {
		out := captureOutput(t)
		env := testEnv(t)
		writeFile(t, env.Cfg.SlintFile, "a {\n}\n}\nb {\n}\n")

		require.NoError(t, (&AuditBracesCommand{env: env}).Run(nil))

		// the last lone closer goes, wherever the depth first went negative
		assert.Equal(t, "a {\n}\n}\nb {\n", readFile(t, env.Cfg.SlintFile))
		assert.Contains(t, out.String(), "Line 3: }... - depth: -1")
		assert.Contains(t, out.String(), "1 extra closing brace(s)")
		assert.Contains(t, out.String(), "File fixed!")
	})

	t.Run("appends missing closers keeping CRLF", func(t *testing.T) {
		captureOutput(t)
		env := testEnv(t)
		writeFile(t, env.Cfg.SlintFile, "a {\r\n  b {\r\n")

		require.NoError(t, (&AuditBracesCommand{env: env}).Run(nil))

		assert.Equal(t, "a {\r\n  b {\r\n}\r\n}\r\n", readFile(t, env.Cfg.SlintFile))
	})

	t.Run("balanced file is left alone", func(t *testing.T) {
		out := captureOutput(t)
		env := testEnv(t)
		writeFile(t, env.Cfg.SlintFile, "a {\n}\n")

		require.NoError(t, (&AuditBracesCommand{env: env}).Run([]string{"-backup"}))

		assert.Contains(t, out.String(), "The file is balanced!")
		assert.NoFileExists(t, env.Cfg.SlintFile+".bak")
	})

	t.Run("report-only fails without writing", func(t *testing.T) {
		captureOutput(t)
		env := testEnv(t)
		writeFile(t, env.Cfg.SlintFile, "a {\n")

		err := (&AuditBracesCommand{env: env}).Run([]string{"-report-only"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unbalanced")
		assert.Equal(t, "a {\n", readFile(t, env.Cfg.SlintFile))
	})

	t.Run("dry run prints a diff", func(t *testing.T) {
		out := captureOutput(t)
		env := testEnv(t)
		writeFile(t, env.Cfg.SlintFile, "a {\n")

		require.NoError(t, (&AuditBracesCommand{env: env}).Run([]string{"-dry-run"}))

		assert.Equal(t, "a {\n", readFile(t, env.Cfg.SlintFile))
		assert.Contains(t, out.String(), "+}\n")
		assert.Contains(t, out.String(), "nothing written")
	})
}

func TestBalanceBraces(t *testing.T) {
	t.Run("appends missing closers", func(t *testing.T) {
		captureOutput(t)
		env := testEnv(t)
		writeFile(t, env.Cfg.SlintFile, "a {\nb {\n")

		require.NoError(t, (&BalanceBracesCommand{env: env}).Run(nil))

		assert.Equal(t, "a {\nb {\n\n}\n}\n", readFile(t, env.Cfg.SlintFile))
	})

	t.Run("running twice leaves the file unchanged", func(t *testing.T) {
		captureOutput(t)
		env := testEnv(t)
		writeFile(t, env.Cfg.SlintFile, "a {\n}\n}\n}\n")
		cmd := &BalanceBracesCommand{env: env}

		require.NoError(t, cmd.Run(nil))
		once := readFile(t, env.Cfg.SlintFile)
		require.NoError(t, cmd.Run(nil))

		assert.Equal(t, "a {\n}\n", once)
		assert.Equal(t, once, readFile(t, env.Cfg.SlintFile))
	})

	t.Run("balanced file with mixed line endings is unchanged", func(t *testing.T) {
		captureOutput(t)
		env := testEnv(t)
		writeFile(t, env.Cfg.SlintFile, "a {\r\n  b\n}\r\n")

		require.NoError(t, (&BalanceBracesCommand{env: env}).Run(nil))

		assert.Equal(t, "a {\r\n  b\n}\r\n", readFile(t, env.Cfg.SlintFile))
	})

	t.Run("-file overrides the configured path and -backup keeps the original", func(t *testing.T) {
		captureOutput(t)
		env := testEnv(t)
		other := filepath.Join(t.TempDir(), "other.slint")
		writeFile(t, other, "}\n")

		require.NoError(t, (&BalanceBracesCommand{env: env}).Run([]string{"-file", other, "-backup"}))

		assert.Equal(t, "", readFile(t, other))
		assert.Equal(t, "}\n", readFile(t, other+".bak"))
		assert.NoFileExists(t, env.Cfg.SlintFile)
	})
}

func TestReplaceSection(t *testing.T) {
	out := captureOutput(t)
	env := testEnv(t)
	writeFile(t, env.Cfg.SlintFile, fixture(t))

	require.NoError(t, (&ReplaceSectionCommand{env: env}).Run(nil))

	assert.Contains(t, readFile(t, env.Cfg.SlintFile), section.RowBody())
	assert.Contains(t, out.String(), "1 section(s) replaced")
}

func TestRebuildAnchored(t *testing.T) {
	t.Run("rebuilds the section", func(t *testing.T) {
		out := captureOutput(t)
		env := testEnv(t)
		writeFile(t, env.Cfg.SlintFile, fixture(t))

		require.NoError(t, (&RebuildAnchoredCommand{env: env}).Run(nil))

		assert.Contains(t, readFile(t, env.Cfg.SlintFile), section.AnchoredBlock())
		assert.Contains(t, out.String(), "Favorites section rebuilt!")
	})

	t.Run("warns when nothing matches", func(t *testing.T) {
		out := captureOutput(t)
		env := testEnv(t)
		writeFile(t, env.Cfg.SlintFile, "Window {\n}\n")

		require.NoError(t, (&RebuildAnchoredCommand{env: env}).Run(nil))

		assert.Contains(t, out.String(), "not found")
		assert.Equal(t, "Window {\n}\n", readFile(t, env.Cfg.SlintFile))
	})
}

func TestRebuildSection(t *testing.T) {
	t.Run("rebuilds the section by depth", func(t *testing.T) {
		out := captureOutput(t)
		env := testEnv(t)
		writeFile(t, env.Cfg.SlintFile, fixture(t))

		require.NoError(t, (&RebuildSectionCommand{env: env}).Run(nil))

		assert.Contains(t, readFile(t, env.Cfg.SlintFile), section.Block())
		assert.Contains(t, out.String(), "Section found from line 6 to 15")
	})

	t.Run("missing section is an error", func(t *testing.T) {
		captureOutput(t)
		env := testEnv(t)
		writeFile(t, env.Cfg.SlintFile, "Window {\n}\n")

		err := (&RebuildSectionCommand{env: env}).Run(nil)

		assert.ErrorIs(t, err, section.ErrSectionNotFound)
	})
}

const favoritesJSON = `{
  "favorites": [],
  "recent_folders": [
    {"path": "/test/path1", "name": "path1", "last_used": 3},
    {"path": "/home/dev/src", "name": "src", "last_used": 2},
    {"path": "/home/dev/src", "name": "src", "last_used": 1}
  ]
}`

func TestCleanRecent(t *testing.T) {
	t.Run("removes blocklisted entries", func(t *testing.T) {
		out := captureOutput(t)
		env := testEnv(t)
		writeFile(t, env.Cfg.FavoritesFile, favoritesJSON)

		require.NoError(t, (&CleanRecentCommand{env: env}).Run(nil))

		f, err := favorites.Load(env.Cfg.FavoritesFile)
		require.NoError(t, err)
		assert.Len(t, f.RecentFolders, 2)
		assert.Contains(t, out.String(), "Cleanup: 3 -> 2 recent folders")
	})

	t.Run("keeps keys and entry fields it does not know", func(t *testing.T) {
		captureOutput(t)
		env := testEnv(t)
		writeFile(t, env.Cfg.FavoritesFile, `{"recent_folders":[`+
			`{"path":"/test/path1","name":"path1","last_used":2},`+
			`{"path":"C:\\Users\\dév\\Musique","name":"Musique","last_used":1,"pinned":true}],`+
			`"favorites":[],"window":{"w":800}}`)

		require.NoError(t, (&CleanRecentCommand{env: env}).Run(nil))

		assert.JSONEq(t, `{"recent_folders":[`+
			`{"path":"C:\\Users\\dév\\Musique","name":"Musique","last_used":1,"pinned":true}],`+
			`"favorites":[],"window":{"w":800}}`, readFile(t, env.Cfg.FavoritesFile))
		assert.True(t, strings.HasPrefix(readFile(t, env.Cfg.FavoritesFile), "{\n  \"recent_folders\""))
	})

	t.Run("second run writes nothing", func(t *testing.T) {
		captureOutput(t)
		env := testEnv(t)
		writeFile(t, env.Cfg.FavoritesFile, favoritesJSON)
		cmd := &CleanRecentCommand{env: env}
		require.NoError(t, cmd.Run(nil))
		once := readFile(t, env.Cfg.FavoritesFile)

		out := captureOutput(t)
		require.NoError(t, cmd.Run(nil))

		assert.Equal(t, once, readFile(t, env.Cfg.FavoritesFile))
		assert.Contains(t, out.String(), "Cleanup: 2 -> 2 recent folders")
		assert.Contains(t, out.String(), "Nothing to clean")
	})

	t.Run("tidy dedupes and custom prefixes replace the defaults", func(t *testing.T) {
		captureOutput(t)
		env := testEnv(t)
		writeFile(t, env.Cfg.FavoritesFile, favoritesJSON)

		require.NoError(t, (&CleanRecentCommand{env: env}).Run([]string{"-tidy", "-prefix", "/nothing"}))

		f, err := favorites.Load(env.Cfg.FavoritesFile)
		require.NoError(t, err)
		require.Len(t, f.RecentFolders, 2)
		assert.Equal(t, "/test/path1", f.RecentFolders[0].Path)
		assert.Equal(t, uint64(2), f.RecentFolders[1].LastUsed)
	})

	t.Run("dry run lists removals", func(t *testing.T) {
		out := captureOutput(t)
		env := testEnv(t)
		writeFile(t, env.Cfg.FavoritesFile, favoritesJSON)

		require.NoError(t, (&CleanRecentCommand{env: env}).Run([]string{"-dry-run"}))

		assert.Equal(t, favoritesJSON, readFile(t, env.Cfg.FavoritesFile))
		assert.Contains(t, out.String(), "would remove /test/path1 (path1)")
	})

	t.Run("malformed JSON is an error", func(t *testing.T) {
		captureOutput(t)
		env := testEnv(t)
		writeFile(t, env.Cfg.FavoritesFile, "{")

		err := (&CleanRecentCommand{env: env}).Run(nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to unmarshal JSON")
	})

	t.Run("rejects a negative limit", func(t *testing.T) {
		captureOutput(t)
		err := (&CleanRecentCommand{env: testEnv(t)}).Run([]string{"-limit", "-2"})
		require.Error(t, err)
	})
}

func TestDoctor(t *testing.T) {
	t.Run("healthy files pass", func(t *testing.T) {
		out := captureOutput(t)
		env := testEnv(t)
		writeFile(t, env.Cfg.SlintFile, fixture(t))
		writeFile(t, env.Cfg.FavoritesFile, `{"favorites": [], "recent_folders": []}`)

		require.NoError(t, (&DoctorCommand{env: env}).Run(nil))
		assert.Contains(t, out.String(), "All files look healthy!")
	})

	t.Run("missing favorites file is only a warning", func(t *testing.T) {
		out := captureOutput(t)
		env := testEnv(t)
		writeFile(t, env.Cfg.SlintFile, fixture(t))

		require.NoError(t, (&DoctorCommand{env: env}).Run(nil))
		assert.Contains(t, out.String(), "does not exist yet")
	})

	t.Run("favorites that break the schema fail", func(t *testing.T) {
		out := captureOutput(t)
		env := testEnv(t)
		writeFile(t, env.Cfg.SlintFile, fixture(t))
		writeFile(t, env.Cfg.FavoritesFile, `{"favorites": []}`)

		require.Error(t, (&DoctorCommand{env: env}).Run(nil))
		assert.Contains(t, out.String(), "the app would discard this file")
	})

	t.Run("wrongly typed entries are reported as schema errors", func(t *testing.T) {
		out := captureOutput(t)
		env := testEnv(t)
		writeFile(t, env.Cfg.SlintFile, fixture(t))
		writeFile(t, env.Cfg.FavoritesFile, `{"favorites": [], "recent_folders": [{"path": "/a", "name": "a", "last_used": -1}]}`)

		require.Error(t, (&DoctorCommand{env: env}).Run(nil))
		assert.Contains(t, out.String(), "the app would discard this file")
		assert.Contains(t, out.String(), "minimum")
	})

	t.Run("reports every problem without writing", func(t *testing.T) {
		out := captureOutput(t)
		env := testEnv(t)
		broken := strings.Replace(fixture(t), "}\n", "", 1)
		writeFile(t, env.Cfg.SlintFile, broken)
		writeFile(t, env.Cfg.FavoritesFile, favoritesJSON)

		err := (&DoctorCommand{env: env}).Run(nil)

		require.Error(t, err)
		assert.Contains(t, out.String(), "run audit-braces")
		assert.Contains(t, out.String(), "run clean-recent")
		assert.Equal(t, broken, readFile(t, env.Cfg.SlintFile))
		assert.Equal(t, favoritesJSON, readFile(t, env.Cfg.FavoritesFile))
	})
}
