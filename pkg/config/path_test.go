package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandPath_ExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatalf("home dir: %v", err)
	}

	got := expandPath("~/.greetbox/config.json")
	want := filepath.Join(home, ".greetbox", "config.json")
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestExpandPath_LeavesOtherPathsAlone(t *testing.T) {
	for _, p := range []string{"", "/etc/greetbox.json", "relative/config.json"} {
		if got := expandPath(p); got != p {
			t.Fatalf("expected %q unchanged, got %q", p, got)
		}
	}
}

func TestDefaultConfig_UsesGreetboxLogPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg := DefaultConfig()

	want := filepath.Join(home, ".greetbox", "logs", "greetbox.log")
	if cfg.Logger.OutputPath != want {
		t.Fatalf("expected %q, got %q", want, cfg.Logger.OutputPath)
	}
}

func TestInitDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	got, created, err := InitDefaultConfig(path)
	if err != nil {
		t.Fatalf("InitDefaultConfig failed: %v", err)
	}
	if !created || got != path {
		t.Fatalf("expected %q to be created, got %q created=%v", path, got, created)
	}

	_, created, err = InitDefaultConfig(path)
	if err != nil {
		t.Fatalf("second InitDefaultConfig failed: %v", err)
	}
	if created {
		t.Fatal("expected existing config to be kept")
	}
}
