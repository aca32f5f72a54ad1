package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parkerchace/MusicTheory-sub000/pkg/config"
	"github.com/parkerchace/MusicTheory-sub000/pkg/menu"
	"github.com/parkerchace/MusicTheory-sub000/pkg/observability"
	"github.com/parkerchace/MusicTheory-sub000/pkg/pipeline"
	"github.com/parkerchace/MusicTheory-sub000/pkg/render"
)

// isolate points config and cache lookups at temp dirs.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	t.Setenv(config.EnvConfig, "")
	t.Setenv(config.EnvRedisURL, "")
	t.Setenv(config.EnvCacheDir, "")
	t.Setenv(config.EnvAddr, "")
	return dir
}

func execute(t *testing.T, c *CLI, args ...string) error {
	t.Helper()
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	for _, want := range []string{"suggest", "layout", "passing", "serve", "browse", "cache", "completion"} {
		assert.Contains(t, names, want)
	}
	assert.Equal(t, appName, root.Use)
}

func TestLayoutWritesJSON(t *testing.T) {
	dir := isolate(t)
	out := filepath.Join(dir, "g7.json")

	c := New(io.Discard, LogInfo)
	err := execute(t, c, "layout", "G7", "--format", "json", "-o", out, "--no-cache")
	require.NoError(t, err)

	m, err := menu.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "G7", m.Center.Name)
	assert.Equal(t, menu.KindSubstitutions, m.Kind)
	assert.NotEmpty(t, m.Nodes)
	assert.Len(t, m.Edges, len(m.Nodes))
}

func TestLayoutSeveralFormatsShareBase(t *testing.T) {
	dir := isolate(t)
	base := filepath.Join(dir, "menu")

	c := New(io.Discard, LogInfo)
	err := execute(t, c, "layout", "Dm7", "--key", "F", "--format", "json,dot", "-o", base+".svg", "--no-cache")
	require.NoError(t, err)

	for _, ext := range []string{".json", ".dot"} {
		_, err := os.Stat(base + ext)
		assert.NoError(t, err, ext)
	}
}

func TestPassingWritesMenu(t *testing.T) {
	dir := isolate(t)
	out := filepath.Join(dir, "passing.json")

	c := New(io.Discard, LogInfo)
	err := execute(t, c, "passing", "Cmaj7", "Dm7", "--format", "json", "-o", out, "--no-cache")
	require.NoError(t, err)

	m, err := menu.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, menu.KindPassing, m.Kind)
	require.NotNil(t, m.Target)
	assert.Equal(t, "Dm7", m.Target.Name)
}

func TestLayoutRejectsBadInput(t *testing.T) {
	isolate(t)

	tests := []struct {
		name string
		args []string
	}{
		{"bad chord", []string{"layout", "H7", "--no-cache"}},
		{"bad key", []string{"layout", "G7", "--key", "X", "--no-cache"}},
		{"bad filter", []string{"layout", "G7", "--filter", "loud", "--no-cache"}},
		{"bad format", []string{"layout", "G7", "--format", "gif", "--no-cache"}},
		{"stdout needs one format", []string{"layout", "G7", "--format", "json,dot", "-o", "-", "--no-cache"}},
		{"missing chord", []string{"layout"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, execute(t, New(io.Discard, LogInfo), tt.args...))
		})
	}
}

func TestConfigFlagLoadsFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "chordmap.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[display]
complexity = 90
filter = "chromatic"

[cache]
disabled = true
`), 0o644))

	c := New(io.Discard, LogInfo)
	out := filepath.Join(dir, "out.json")
	require.NoError(t, execute(t, c, "--config", path, "layout", "G7", "--format", "json", "-o", out))

	assert.Equal(t, path, c.Config.Path)
	m, err := menu.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "chromatic", m.Filter)
	assert.Equal(t, 90, m.Complexity)
}

func TestConfigFlagMissingFile(t *testing.T) {
	dir := isolate(t)
	err := execute(t, New(io.Discard, LogInfo), "--config", filepath.Join(dir, "nope.toml"), "cache", "path")
	assert.Error(t, err)
}

func TestBaseOptionsFromConfig(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.Config.Display.Threshold = 4
	c.Config.Display.Exhaustive = true
	c.Config.Ranking.Mode = "color"

	opts := c.baseOptions()
	assert.Equal(t, 4, opts.Threshold)
	assert.True(t, opts.Exhaustive)
	assert.Equal(t, "color", opts.Ranking)
	assert.Equal(t, c.Config.Layout, opts.Params)
	assert.Same(t, c.Logger, opts.Logger)
}

func TestNewRunnerTTL(t *testing.T) {
	isolate(t)
	c := New(io.Discard, LogInfo)
	c.Config.Cache.TTL = "90m"

	r, err := c.newRunner(context.Background(), true)
	require.NoError(t, err)
	defer r.Close()
	assert.Equal(t, "1h30m0s", r.TTL.String())
}

func TestParseFormats(t *testing.T) {
	assert.Equal(t, []string{render.FormatSVG}, parseFormats(""))
	assert.Equal(t, []string{"json", "svg"}, parseFormats("json, SVG"))
	assert.Equal(t, []string{"png"}, parseFormats("png,"))
}

func TestOutputPaths(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		formats []string
		want    map[string]string
	}{
		{"default base", "", []string{"svg"}, map[string]string{"svg": "G7.svg"}},
		{"single explicit", "out/menu.png", []string{"png"}, map[string]string{"png": "out/menu.png"}},
		{"several strip ext", "menu.svg", []string{"svg", "json"}, map[string]string{"svg": "menu.svg", "json": "menu.json"}},
		{"several keep unknown ext", "menu.v2", []string{"dot", "json"}, map[string]string{"dot": "menu.v2.dot", "json": "menu.v2.json"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, outputPaths(tt.output, "G7", tt.formats))
		})
	}
}

func TestDefaultBase(t *testing.T) {
	assert.Equal(t, "Fsharpm7b5", defaultBase(pipeline.Options{Chord: "F#m7b5"}))
	assert.Equal(t, "Cmaj7-to-Dm7", defaultBase(pipeline.Options{Chord: "Cmaj7", Passing: "Dm7"}))
	assert.Equal(t, "C_E", slugChord("C/E"))
}

func TestVerboseInstallsLogHooks(t *testing.T) {
	isolate(t)
	t.Cleanup(observability.Reset)

	var buf bytes.Buffer
	c := New(&buf, LogDebug)
	require.NoError(t, execute(t, c, "suggest", "G7", "--no-cache", "--json"))

	assert.Contains(t, buf.String(), "generate")
}
