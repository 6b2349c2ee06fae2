package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"greetbox/pkg/config"
)

func runRoot(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("%v failed: %v\n%s", args, err, out.String())
	}
	return out.String()
}

func TestConfigInitAndShow(t *testing.T) {
	resetConfigPath(t)
	t.Setenv(config.ConfigPathEnv, "")
	path := filepath.Join(t.TempDir(), "config.json")

	out := runRoot(t, "-c", path, "config", "init")
	if !strings.Contains(out, "Created default config at: "+path) {
		t.Fatalf("unexpected init output: %q", out)
	}

	out = runRoot(t, "-c", path, "config", "show")
	var shown struct {
		Greeting struct {
			Template string `yaml:"template"`
		} `yaml:"greeting"`
		Form struct {
			Ordering string `yaml:"ordering"`
		} `yaml:"form"`
	}
	if err := yaml.Unmarshal([]byte(out), &shown); err != nil {
		t.Fatalf("config show is not YAML: %v\n%s", err, out)
	}
	if shown.Greeting.Template != "Hello, %s!" || shown.Form.Ordering != "resolved" {
		t.Fatalf("unexpected config: %+v", shown)
	}

	out = runRoot(t, "-c", path, "config", "validate")
	if !strings.Contains(out, "Config is valid") {
		t.Fatalf("unexpected validate output: %q", out)
	}
}

func TestVersionCommand(t *testing.T) {
	out := runRoot(t, "version")
	if !strings.HasPrefix(out, "greetbox/") {
		t.Fatalf("unexpected version output: %q", out)
	}
}
