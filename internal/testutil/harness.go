package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/tilegen/internal/app"
	"github.com/vk/tilegen/internal/hcl"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an end-to-end generation run.
type HarnessResult struct {
	LogOutput string
	Err       error
	App       *app.App
	Result    *app.Result
	// OutDir is where outputs were written, empty unless requested.
	OutDir string
}

// Options tunes a harness run.
type Options struct {
	WriteOutputs bool
	WorkerCount  int
}

// RunFabricTest writes files (relative path -> content) into a temporary
// architecture directory and runs the whole generation pipeline on it.
func RunFabricTest(t *testing.T, files map[string]string, opts Options) *HarnessResult {
	t.Helper()
	return RunFabricTestWithContext(context.Background(), t, files, opts)
}

// RunFabricTestWithContext is RunFabricTest with a caller-provided context.
func RunFabricTestWithContext(ctx context.Context, t *testing.T, files map[string]string, opts Options) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()
	archDir := filepath.Join(tmpDir, "arch")
	require.NoError(t, os.Mkdir(archDir, 0755))

	for name, content := range files {
		filePath := filepath.Join(archDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	}

	workers := opts.WorkerCount
	if workers == 0 {
		workers = 4
	}
	cfg := app.Config{
		ArchPath:    archDir,
		LogLevel:    "debug",
		LogFormat:   "text",
		WorkerCount: workers,
	}
	if opts.WriteOutputs {
		cfg.OutDir = filepath.Join(tmpDir, "out")
	}
	appConfig, err := app.NewConfig(cfg)
	require.NoError(t, err)

	logBuffer := &SafeBuffer{}
	res := &HarnessResult{OutDir: cfg.OutDir}
	t.Cleanup(func() {
		if os.Getenv("TILEGEN_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	testApp, err := app.NewApp(logBuffer, appConfig, hcl.NewLoader())
	if err != nil {
		res.Err = err
		res.LogOutput = logBuffer.String()
		return res
	}
	res.App = testApp
	res.Result, res.Err = testApp.Run(ctx)
	res.LogOutput = logBuffer.String()
	return res
}
