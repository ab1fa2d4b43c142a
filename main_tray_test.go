//go:build tray

package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bartek5186/memlab/internal/app"
	"github.com/bartek5186/memlab/internal/demos"
	"github.com/bartek5186/memlab/internal/runner"
)

type blockingDemo struct {
	started chan struct{}
	release chan struct{}
}

func (b *blockingDemo) Name() string        { return "block" }
func (b *blockingDemo) Description() string { return "" }
func (b *blockingDemo) Run(_ context.Context, out io.Writer) error {
	_, _ = io.WriteString(out, "first run output\n")
	close(b.started)
	<-b.release
	return nil
}

func TestRunToFile_BusyClickKeepsLastOutput(t *testing.T) {
	// --- Arrange ---
	dir := t.TempDir()
	path := filepath.Join(dir, "last-run.txt")
	require.NoError(t, os.WriteFile(path, []byte("previous\n"), 0o644))

	d := &blockingDemo{started: make(chan struct{}), release: make(chan struct{})}
	reg := demos.NewRegistry(zerolog.Nop())
	reg.Register("block", "Blocking", "", func() demos.Demo { return d })
	r := runner.New(zerolog.Nop(), reg, nil, 0)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = r.Run(context.Background(), "block", io.Discard)
	}()
	<-d.started

	a := &app.App{Log: zerolog.Nop(), Dir: dir, Registry: reg, Runner: r}
	e, ok := reg.Get("block")
	require.True(t, ok)

	// --- Act ---
	runToFile(context.Background(), a, e, path)
	close(d.release)
	<-done

	// --- Assert ---
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "previous\n", string(data))

	leftovers, err := filepath.Glob(filepath.Join(dir, "last-run-*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}
