package main

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receiveBatch(t *testing.T, out <-chan []string) []string {
	t.Helper()
	select {
	case batch := <-out:
		return batch
	case <-time.After(2 * time.Second):
		require.FailNow(t, "timed out waiting for debounced batch")
		return nil
	}
}

func TestDebounceSkillEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	in := make(chan string)
	out := make(chan []string)
	go debounceSkillEvents(ctx, in, 20*time.Millisecond, out)

	in <- "beta"
	in <- "alpha"
	in <- "beta"
	assert.Equal(t, []string{"alpha", "beta"}, receiveBatch(t, out))

	in <- "gamma"
	assert.Equal(t, []string{"gamma"}, receiveBatch(t, out))
}

func TestDebounceSkillEventsAcceptsInputWhileBatchWaits(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	in := make(chan string)
	out := make(chan []string)
	go debounceSkillEvents(ctx, in, 10*time.Millisecond, out)

	in <- "alpha"
	time.Sleep(50 * time.Millisecond)

	// The first batch is ready but unreceived; sending must not block
	sent := make(chan struct{})
	go func() {
		in <- "beta"
		close(sent)
	}()
	select {
	case <-sent:
	case <-time.After(2 * time.Second):
		require.FailNow(t, "debouncer blocked input while a batch was pending")
	}

	batch := receiveBatch(t, out)
	if len(batch) == 1 {
		assert.Equal(t, []string{"alpha"}, batch)
		assert.Equal(t, []string{"beta"}, receiveBatch(t, out))
	} else {
		assert.Equal(t, []string{"alpha", "beta"}, batch)
	}
}

func TestDebounceSkillEventsFlushesOnClose(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	in := make(chan string)
	out := make(chan []string)
	done := make(chan struct{})
	go func() {
		debounceSkillEvents(ctx, in, time.Hour, out)
		close(done)
	}()

	in <- "alpha"
	close(in)
	assert.Equal(t, []string{"alpha"}, receiveBatch(t, out))
	<-done
}

func TestDebounceSkillEventsStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	in := make(chan string)
	out := make(chan []string)
	done := make(chan struct{})
	go func() {
		debounceSkillEvents(ctx, in, time.Hour, out)
		close(done)
	}()

	in <- "alpha"
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		require.FailNow(t, "debouncer did not stop after cancel")
	}
}

func TestSkillNameForPath(t *testing.T) {
	root := filepath.Join("/repo", "skills")

	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{"manifest", filepath.Join(root, "alpha", "SKILL.md"), "alpha"},
		{"nested reference", filepath.Join(root, "alpha", "references", "guide.md"), "alpha"},
		{"skill directory", filepath.Join(root, "beta"), "beta"},
		{"root itself", root, ""},
		{"outside root", filepath.Join("/repo", "README.md"), ""},
		{"hidden entry", filepath.Join(root, ".git", "HEAD"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, skillNameForPath(root, tt.path))
		})
	}
}
