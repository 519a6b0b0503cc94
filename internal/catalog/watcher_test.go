package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/hammamikhairi/craftbox/internal/logger"
)

func TestFileWatcherReloads(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "recipes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleCatalog), 0o644))

	log := logger.New(logger.LevelOff, nil)
	initial, err := LoadFile(path)
	require.NoError(t, err)
	src := NewMemorySource(log, initial...)

	w := NewFileWatcher(path, src, log, WithDebounce(20*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Give the watcher time to register before touching the file.
	time.Sleep(100 * time.Millisecond)

	updated := sampleCatalog + "  - output: Shovel\n    ingredients:\n      - item: Iron\n        quantity: 1\n"
	require.NoError(t, os.WriteFile(path, []byte(updated), 0o644))

	assert.Eventually(t, func() bool {
		return len(src.Names()) == 3
	}, 2*time.Second, 20*time.Millisecond)

	// A broken file keeps the previous catalog.
	require.NoError(t, os.WriteFile(path, []byte("recipes: [\n"), 0o644))
	time.Sleep(150 * time.Millisecond)
	assert.Len(t, src.Names(), 3)

	cancel()
	require.NoError(t, <-done)
}
