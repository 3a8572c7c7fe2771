package app

import (
	"errors"
	"testing"

	"ai-voice-guard-service/internal/config"
)

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func TestApplication_Lifecycle(t *testing.T) {
	var closed []string
	a := New(&config.Config{}, nil,
		closerFunc(func() error { closed = append(closed, "first"); return errors.New("boom") }),
		closerFunc(func() error { closed = append(closed, "second"); return nil }),
	)

	if a.Ready() {
		t.Error("expected application not ready before Start")
	}

	if err := a.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !a.Ready() {
		t.Error("expected application ready after Start")
	}
	if a.StartupTime.IsZero() {
		t.Error("expected startup time to be set")
	}

	a.Shutdown()
	if a.Ready() {
		t.Error("expected application not ready after Shutdown")
	}
	if len(closed) != 2 || closed[0] != "first" || closed[1] != "second" {
		t.Errorf("expected all closers called in order despite errors, got %v", closed)
	}
}
