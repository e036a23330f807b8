package tui

import (
	"context"
	"errors"
	"testing"
)

func TestInCI(t *testing.T) {
	for _, env := range ciEnvs {
		t.Setenv(env, "")
	}
	if InCI() {
		t.Fatal("InCI() = true with no CI variables set")
	}

	t.Setenv("GITHUB_ACTIONS", "true")
	if !InCI() {
		t.Error("InCI() = false with GITHUB_ACTIONS set")
	}
	if IsInteractive() {
		t.Error("IsInteractive() = true in CI")
	}
}

func TestSpin_NonInteractiveRunsAction(t *testing.T) {
	t.Setenv("CI", "true")

	ran := false
	wantErr := errors.New("composer failed")
	err := Spin(context.Background(), "Installing", func(context.Context) error {
		ran = true
		return wantErr
	})

	if !ran {
		t.Error("action did not run")
	}
	if !errors.Is(err, wantErr) {
		t.Errorf("Spin() error = %v, want %v", err, wantErr)
	}
}

func TestKeyMap(t *testing.T) {
	km := keyMap()
	keys := km.Quit.Keys()
	if len(keys) != 2 || keys[0] != "ctrl+c" || keys[1] != "esc" {
		t.Errorf("Quit keys = %v", keys)
	}
}
