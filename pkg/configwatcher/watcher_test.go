package configwatcher

import (
	"context"
	"course_academy_backend/internal/config"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseConfig = `server:
  mode: test
jwt:
  secret: 0123456789abcdef0123456789abcdef
log:
  level: %s
cors:
  allowed_origins:
    - %s
storage:
  local_path: %s
`

func writeConfig(t *testing.T, dir, level, origin string) {
	t.Helper()
	body := []byte(fmt.Sprintf(baseConfig, level, origin, filepath.Join(dir, "uploads")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), body, 0o644))
}

func TestWatchConfigReloads(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "info", "http://a.example")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan *config.Config, 4)
	done := make(chan error, 1)
	go func() {
		done <- WatchConfig(ctx, dir, func(c *config.Config) { reloaded <- c })
	}()

	// give the watcher time to register the directory
	time.Sleep(200 * time.Millisecond)
	writeConfig(t, dir, "warn", "http://b.example")

	select {
	case c := <-reloaded:
		assert.Equal(t, "warn", c.Log.Level)
		assert.Equal(t, []string{"http://b.example"}, c.CORS.AllowedOrigins)
	case <-time.After(5 * time.Second):
		t.Fatal("config was not reloaded")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatchConfigIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "info", "http://a.example")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan *config.Config, 1)
	go WatchConfig(ctx, dir, func(c *config.Config) { reloaded <- c })

	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	select {
	case <-reloaded:
		t.Fatal("unrelated file triggered a reload")
	case <-time.After(debounce + 500*time.Millisecond):
	}
}

func TestWatchConfigMissingDir(t *testing.T) {
	err := WatchConfig(context.Background(), filepath.Join(t.TempDir(), "missing"), func(*config.Config) {})
	assert.Error(t, err)
}
