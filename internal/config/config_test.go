package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/renato0307/novix/internal/commands"
)

func newTestLoader(t *testing.T, content string) *Loader {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if content != "" {
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
	return NewLoader(path, WithStateDir(filepath.Join(dir, "state")))
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := newTestLoader(t, "").Load()
	require.NoError(t, err)

	assert.Equal(t, "charm", cfg.Theme)
	assert.Equal(t, "system", cfg.Mode)
	assert.Equal(t, "comfortable", cfg.Density)
	assert.False(t, cfg.AutoApplyPatch)
	assert.Equal(t, 20, cfg.RecentLimit)
	assert.Equal(t, "ctrl+k", cfg.Keys.Toggle)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Log.File)
}

func TestLoad_File(t *testing.T) {
	cfg, err := newTestLoader(t, `
theme: nord
mode: dark
density: compact
auto_apply_patch: true
recent_limit: 5
keys:
  toggle: ctrl+p
log:
  level: debug
  format: json
`).Load()
	require.NoError(t, err)

	assert.Equal(t, "nord", cfg.Theme)
	assert.Equal(t, "dark", cfg.Mode)
	assert.Equal(t, "compact", cfg.Density)
	assert.True(t, cfg.AutoApplyPatch)
	assert.Equal(t, 5, cfg.RecentLimit)
	assert.Equal(t, "ctrl+p", cfg.KeyMap().Toggle)
	assert.Equal(t, "esc", cfg.KeyMap().Close)
	assert.Equal(t, "json", string(cfg.Logging().Format))
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("NOVIX_THEME", "dracula")
	t.Setenv("NOVIX_LOG_LEVEL", "warn")

	cfg, err := newTestLoader(t, "theme: nord\n").Load()
	require.NoError(t, err)
	assert.Equal(t, "dracula", cfg.Theme)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"theme", "theme: neon\n", `invalid theme "neon"`},
		{"mode", "mode: dim\n", `invalid mode "dim"`},
		{"density", "density: tight\n", `invalid density "tight"`},
		{"recent limit", "recent_limit: 0\n", "recent_limit must be >= 1"},
		{"broken yaml", "theme: [\n", "failed to read config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestLoader(t, tt.content).Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSet_KeepsOtherKeys(t *testing.T) {
	l := newTestLoader(t, "theme: nord\nkeys:\n  toggle: ctrl+p\n")

	require.NoError(t, l.Set(KeyMode, "light"))
	require.NoError(t, l.Set(KeyAutoApply, true))
	require.NoError(t, l.Set("keys.close", "ctrl+g"))

	data, err := os.ReadFile(l.ConfigPath())
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(data, &doc))
	assert.Equal(t, "nord", doc["theme"])
	assert.Equal(t, "light", doc["mode"])
	assert.Equal(t, true, doc["auto_apply_patch"])
	assert.Equal(t, map[string]any{"toggle": "ctrl+p", "close": "ctrl+g"}, doc["keys"])

	cfg, err := NewLoader(l.ConfigPath()).Load()
	require.NoError(t, err)
	assert.Equal(t, "light", cfg.Mode)
	assert.True(t, cfg.AutoApplyPatch)
}

func TestSet_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	l := NewLoader(filepath.Join(dir, "nested", "config.yaml"))

	require.NoError(t, l.Set(KeyDensity, "compact"))

	cfg, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, "compact", cfg.Density)
}

func TestSet_RejectsInvalid(t *testing.T) {
	l := newTestLoader(t, "")

	err := l.Set(KeyTheme, "neon")
	assert.ErrorContains(t, err, `invalid theme "neon"`)
	_, statErr := os.Stat(l.ConfigPath())
	assert.True(t, os.IsNotExist(statErr), "nothing is written")

	assert.ErrorContains(t, l.Set(KeyRecentLimit, 0), "recent_limit must be >= 1")
}

func TestRecent_RoundTrip(t *testing.T) {
	l := newTestLoader(t, "")

	entries, err := l.LoadRecent()
	require.NoError(t, err)
	assert.Empty(t, entries)

	want := []commands.RecentEntry{
		{ID: "nav-world", Title: "Go to World panel"},
		{ID: "char-character_001", Title: "Open Character: Alice", Subtitle: "character_001"},
	}
	require.NoError(t, l.SaveRecent(want))

	got, err := l.LoadRecent()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRecent_Corrupt(t *testing.T) {
	l := newTestLoader(t, "")
	require.NoError(t, os.MkdirAll(filepath.Dir(l.RecentPath()), 0o700))
	require.NoError(t, os.WriteFile(l.RecentPath(), []byte("entries: {"), 0o600))

	_, err := l.LoadRecent()
	assert.ErrorContains(t, err, "failed to parse recent list")
}

func TestDefaultPaths(t *testing.T) {
	assert.Equal(t, "config.yaml", filepath.Base(DefaultConfigPath()))
	assert.Equal(t, AppName, filepath.Base(filepath.Dir(DefaultConfigPath())))
	assert.Equal(t, "novix.log", filepath.Base(DefaultLogPath()))

	l := NewLoader("", WithStateDir("/tmp/state"))
	assert.Equal(t, DefaultConfigPath(), l.ConfigPath())
	assert.Equal(t, "/tmp/state/recent.yaml", l.RecentPath())
	assert.Equal(t, "/tmp/state/repl_history", l.HistoryPath())
}
