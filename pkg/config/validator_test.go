package config

import (
	"errors"
	"strings"
	"testing"
)

func assertFieldError(t *testing.T, err error, field string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected validation error for %s", field)
	}

	var validationErrors ValidationErrors
	if !errors.As(err, &validationErrors) {
		t.Fatalf("expected ValidationErrors, got %T", err)
	}
	for _, validationErr := range validationErrors {
		if validationErr.Field == field {
			return
		}
	}
	t.Fatalf("expected %s validation error, got %v", field, err)
}

func TestValidateConfig_AcceptsDefaults(t *testing.T) {
	if err := ValidateConfig(DefaultConfig()); err != nil {
		t.Fatalf("expected defaults to be valid, got %v", err)
	}
}

func TestValidateConfig_RejectsInvalidOrdering(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Form.Ordering = "random"
	assertFieldError(t, ValidateConfig(cfg), "form.ordering")
}

func TestValidateConfig_RejectsTemplateWithoutPlaceholder(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Greeting.Template = "Hello!"
	assertFieldError(t, ValidateConfig(cfg), "greeting.template")

	cfg.Greeting.Template = "%s and %s"
	assertFieldError(t, ValidateConfig(cfg), "greeting.template")
}

func TestValidateConfig_RejectsTemplatesTheBackendRejects(t *testing.T) {
	for _, tmpl := range []string{"Hi %s, you are %d", "%%s literally", "Hello %s 100%"} {
		cfg := DefaultConfig()
		cfg.Greeting.Template = tmpl
		assertFieldError(t, ValidateConfig(cfg), "greeting.template")
	}
}

func TestCheckGreetingTemplate(t *testing.T) {
	valid := []string{"Hello, %s!", "%s", "100%% sure, %s"}
	for _, tmpl := range valid {
		if err := CheckGreetingTemplate(tmpl); err != nil {
			t.Fatalf("template %q: expected valid, got %v", tmpl, err)
		}
	}

	invalid := map[string]string{
		"Hi %s %d":      "unsupported verb %d",
		"%%s":           "found 0",
		"Hello %s 100%": "trailing %",
		"%s %s":         "found 2",
	}
	for tmpl, want := range invalid {
		err := CheckGreetingTemplate(tmpl)
		if err == nil || !strings.Contains(err.Error(), want) {
			t.Fatalf("template %q: expected error containing %q, got %v", tmpl, want, err)
		}
	}
}

func TestValidateConfig_RejectsRelativeEndpoint(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Greeting.Endpoint = "localhost:18790"
	assertFieldError(t, ValidateConfig(cfg), "greeting.endpoint")

	cfg.Greeting.Endpoint = "https://greet.example.com"
	if err := ValidateConfig(cfg); err != nil {
		t.Fatalf("expected https endpoint to be valid, got %v", err)
	}
}

func TestValidateConfig_RejectsNegativeTimeout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Greeting.TimeoutSeconds = -1
	assertFieldError(t, ValidateConfig(cfg), "greeting.timeout_seconds")
}

func TestValidateConfig_PortOnlyCheckedWhenEnabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WebUI.Port = 0
	assertFieldError(t, ValidateConfig(cfg), "webui.port")

	cfg.WebUI.Enabled = false
	if err := ValidateConfig(cfg); err != nil {
		t.Fatalf("expected disabled webui to skip port check, got %v", err)
	}
}

func TestValidateConfig_CollectsAllErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logger.Level = "verbose"
	cfg.Logger.MaxSize = -1
	cfg.Form.Ordering = "random"

	err := ValidateConfig(cfg)
	var validationErrors ValidationErrors
	if !errors.As(err, &validationErrors) {
		t.Fatalf("expected ValidationErrors, got %T", err)
	}
	if len(validationErrors) != 3 {
		t.Fatalf("expected 3 errors, got %d: %v", len(validationErrors), err)
	}
	if !strings.Contains(err.Error(), "logger.level") {
		t.Fatalf("expected message to name logger.level, got %q", err.Error())
	}
}
