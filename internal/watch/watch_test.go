package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/jmylchreest/stylekit/internal/config"
)

const validTOML = `content = ["templates/**/*.html"]
plugins = ["daisyui"]

[daisyui]
themes = ["light", "dark"]
`

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
}

// decodeOnly validates without consulting node_modules.
func decodeOnly(path string) (*config.Config, error) {
	cfg, err := config.Decode(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(config.ValidateOptions{}).Err(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// waitFor returns the first snapshot satisfying match, or fails the test.
func waitFor(t *testing.T, ch <-chan Snapshot, match func(Snapshot) bool) Snapshot {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case snap := <-ch:
			if match(snap) {
				return snap
			}
		case <-timeout:
			t.Fatal("timed out waiting for snapshot")
			return Snapshot{}
		}
	}
}

func TestWatcher_ReloadsOnChange(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dir := t.TempDir()
	path := filepath.Join(dir, "stylekit.toml")
	writeFile(t, path, validTOML)

	w := New(path, decodeOnly, nil)
	w.SetDebounce(10 * time.Millisecond)

	snaps := make(chan Snapshot, 16)
	w.SetChangeCallback(func(s Snapshot) { snaps <- s })

	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	initial := w.Current()
	require.NoError(t, initial.Err)
	require.NotNil(t, initial.Config)
	assert.Equal(t, []string{"light", "dark"}, initial.Config.DaisyUI.Themes)
	assert.NotEmpty(t, initial.Age())

	writeFile(t, path, validTOML+`dark_theme = "dark"
prefix = "dui-"
`)

	snap := waitFor(t, snaps, func(s Snapshot) bool {
		return s.Err == nil && s.Config != nil && s.Config.DaisyUI.Prefix == "dui-"
	})
	assert.NotEqual(t, initial.ID, snap.ID)
	assert.Equal(t, "dui-", w.Current().Config.DaisyUI.Prefix)

	// An invalid edit is reported but the snapshot carries no config.
	writeFile(t, path, `[daisyui]
themes = []
`)
	bad := waitFor(t, snaps, func(s Snapshot) bool { return s.Err != nil })
	assert.ErrorIs(t, bad.Err, config.ErrNoThemes)
	assert.Nil(t, bad.Config)
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dir := t.TempDir()
	path := filepath.Join(dir, "stylekit.toml")
	writeFile(t, path, validTOML)

	loads := make(chan string, 16)
	load := func(p string) (*config.Config, error) {
		loads <- p
		return decodeOnly(p)
	}

	w := New(path, load, nil)
	w.SetDebounce(10 * time.Millisecond)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	<-loads // initial load

	writeFile(t, filepath.Join(dir, "other.toml"), "x = 1\n")

	select {
	case p := <-loads:
		t.Fatalf("unexpected reload of %s", p)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_StartStopIdempotent(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dir := t.TempDir()
	path := filepath.Join(dir, "stylekit.toml")
	writeFile(t, path, validTOML)

	w := New(path, decodeOnly, nil)
	ctx := context.Background()

	require.NoError(t, w.Start(ctx))
	require.NoError(t, w.Start(ctx))
	w.Stop()
	w.Stop()

	// Restart after stop
	require.NoError(t, w.Start(ctx))
	w.Stop()
}

func TestWatcher_ContextCancel(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dir := t.TempDir()
	path := filepath.Join(dir, "stylekit.toml")
	writeFile(t, path, validTOML)

	w := New(path, decodeOnly, nil)
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, w.Start(ctx))

	cancel()
	// Stop still waits for the loop to exit.
	w.Stop()
}

func TestWatcher_MissingDirectory(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "nope", "stylekit.toml"), decodeOnly, nil)
	assert.Error(t, w.Start(context.Background()))
}

func TestWatcher_ReloadError(t *testing.T) {
	loadErr := errors.New("boom")
	w := New("stylekit.toml", func(string) (*config.Config, error) {
		return config.DefaultConfig(), loadErr
	}, nil)

	snap := w.Reload()
	assert.ErrorIs(t, snap.Err, loadErr)
	assert.Nil(t, snap.Config)
	assert.Equal(t, snap.ID, w.Current().ID)
}

func TestWatcher_CurrentIsCopy(t *testing.T) {
	w := New("stylekit.toml", func(string) (*config.Config, error) {
		return config.DefaultConfig(), nil
	}, nil)

	snap := w.Reload()
	snap.Config.DaisyUI.Themes[0] = "mutated"
	assert.Equal(t, "light", w.Current().Config.DaisyUI.Themes[0])
}

func TestWatcher_ReloadsOnWatchedDirChange(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dir := t.TempDir()
	path := filepath.Join(dir, "stylekit.toml")
	writeFile(t, path, validTOML)
	themesDir := filepath.Join(t.TempDir(), "stylekit", "themes")
	require.NoError(t, os.MkdirAll(themesDir, 0755))

	loads := make(chan string, 16)
	load := func(p string) (*config.Config, error) {
		loads <- p
		return decodeOnly(p)
	}

	w := New(path, load, nil)
	w.SetDebounce(10 * time.Millisecond)
	w.WatchDir(themesDir, "*.toml")
	w.WatchDir(filepath.Join(dir, "missing"), "*.toml")

	snaps := make(chan Snapshot, 16)
	w.SetChangeCallback(func(s Snapshot) { snaps <- s })

	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	<-loads // initial load

	// Files not matching the pattern are ignored.
	writeFile(t, filepath.Join(themesDir, "notes.txt"), "brand colors\n")
	select {
	case <-loads:
		t.Fatal("unexpected reload for non-theme file")
	case <-time.After(200 * time.Millisecond):
	}

	writeFile(t, filepath.Join(themesDir, "brand.toml"), "color_scheme = \"dark\"\n")
	snap := waitFor(t, snaps, func(s Snapshot) bool { return s.Err == nil })
	assert.Equal(t, []string{"light", "dark"}, snap.Config.DaisyUI.Themes)
	assert.Equal(t, path, <-loads)

	// Removing a theme file reloads as well.
	require.NoError(t, os.Remove(filepath.Join(themesDir, "brand.toml")))
	waitFor(t, snaps, func(s Snapshot) bool { return s.Err == nil })
}
