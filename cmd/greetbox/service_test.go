package main

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/kardianos/service"
	"go.uber.org/fx"

	"greetbox/pkg/config"
)

func resetConfigPath(t *testing.T) {
	t.Helper()
	original := configPath
	t.Cleanup(func() {
		configPath = original
	})
}

func TestServiceConfig_DefaultArguments(t *testing.T) {
	resetConfigPath(t)
	configPath = ""
	t.Setenv(config.ConfigPathEnv, "")

	got := ServiceConfig().Arguments
	want := []string{"serve", "run"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected arguments %v, got %v", want, got)
	}
}

func TestServiceConfig_IncludesConfigFlag(t *testing.T) {
	resetConfigPath(t)
	configFile := filepath.Join(t.TempDir(), "service-config.json")
	configPath = configFile
	t.Setenv(config.ConfigPathEnv, "")

	got := ServiceConfig().Arguments
	want := []string{"-c", configFile, "serve", "run"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected arguments %v, got %v", want, got)
	}
}

func TestServiceConfig_UsesConfigPathEnvWhenFlagNotProvided(t *testing.T) {
	resetConfigPath(t)
	configPath = ""
	configFile := filepath.Join(t.TempDir(), "env-config.json")
	t.Setenv(config.ConfigPathEnv, configFile)

	got := ServiceConfig().Arguments
	want := []string{"-c", configFile, "serve", "run"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected arguments %v, got %v", want, got)
	}
}

func TestStatusString(t *testing.T) {
	cases := map[service.Status]string{
		service.StatusRunning: "Running",
		service.StatusStopped: "Stopped",
		service.StatusUnknown: "Unknown",
	}
	for status, want := range cases {
		if got := statusString(status); got != want {
			t.Fatalf("status %v: expected %q, got %q", status, want, got)
		}
	}
}

func TestAppGraphsAreComplete(t *testing.T) {
	if err := fx.ValidateApp(serveModules("test"), fx.NopLogger); err != nil {
		t.Fatalf("serve app graph invalid: %v", err)
	}
	if err := fx.ValidateApp(coreModules(), quietLogging(), fx.NopLogger); err != nil {
		t.Fatalf("core app graph invalid: %v", err)
	}
}
