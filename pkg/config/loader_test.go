package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_CreatesMissingFileWithDefaults(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.json")

	cfg, err := NewLoader().Load(cfgPath)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.WebUI.Port != 18790 || cfg.Greeting.Template != "Hello, %s!" {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
	if _, err := os.Stat(cfgPath); err != nil {
		t.Fatalf("expected config file to be created: %v", err)
	}
}

func TestLoad_UsesConfigPathEnvWhenPathEmpty(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "from-env.json")

	seed := DefaultConfig()
	seed.WebUI.Port = 29999
	if err := NewLoader().Save(cfgPath, seed); err != nil {
		t.Fatalf("save config: %v", err)
	}

	t.Setenv(ConfigPathEnv, cfgPath)

	got, err := NewLoader().Load("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if got.WebUI.Port != 29999 {
		t.Fatalf("expected webui port 29999, got %d", got.WebUI.Port)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.json")
	if err := SaveToFile(DefaultConfig(), cfgPath); err != nil {
		t.Fatalf("save config: %v", err)
	}

	t.Setenv("GREETBOX_FORM_ORDERING", "submitted")
	t.Setenv("GREETBOX_GREETING_TEMPLATE", "Hi %s")

	got, err := NewLoader().Load(cfgPath)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if got.FormOrdering() != OrderingSubmitted {
		t.Fatalf("expected ordering from env, got %q", got.FormOrdering())
	}
	if got.GreetingTemplate() != "Hi %s" {
		t.Fatalf("expected template from env, got %q", got.GreetingTemplate())
	}
}

func TestLoad_NormalizesFields(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.json")
	content := `{
  "greeting": {"endpoint": "  http://localhost:18790  "},
  "form": {"ordering": " Submitted "}
}`
	if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	got, err := NewLoader().Load(cfgPath)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if got.Greeting.Endpoint != "http://localhost:18790" {
		t.Fatalf("expected trimmed endpoint, got %q", got.Greeting.Endpoint)
	}
	if got.Form.Ordering != OrderingSubmitted {
		t.Fatalf("expected normalized ordering, got %q", got.Form.Ordering)
	}
	if got.Greeting.Template != "Hello, %s!" {
		t.Fatalf("expected default template for missing key, got %q", got.Greeting.Template)
	}
}

func TestLoad_RejectsMalformedFile(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(cfgPath, []byte("{not json"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := NewLoader().Load(cfgPath); err == nil {
		t.Fatal("expected error for malformed config")
	}
}

func TestSave_WritesSnakeCaseKeys(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.json")
	cfg := DefaultConfig()
	cfg.Greeting.TimeoutSeconds = 5
	if err := SaveToFile(cfg, cfgPath); err != nil {
		t.Fatalf("save config: %v", err)
	}

	raw, err := os.ReadFile(cfgPath)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	var decoded map[string]map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("decode config: %v", err)
	}
	if decoded["greeting"]["timeout_seconds"] != float64(5) {
		t.Fatalf("expected greeting.timeout_seconds=5, got %v", decoded["greeting"])
	}
}

func TestExampleConfig_IsValid(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(cfgPath, []byte(ExampleConfig), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := NewLoader().Load(cfgPath)
	if err != nil {
		t.Fatalf("load example config: %v", err)
	}
	if err := ValidateConfig(cfg); err != nil {
		t.Fatalf("expected example config to be valid: %v", err)
	}
}
