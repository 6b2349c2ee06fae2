// Package config provides configuration management for greetbox.
// It uses Viper for loading with support for:
// - JSON config files (auto-created on first run)
// - Environment variables prefixed with GREETBOX_
// - Hot-reload of the greeting template
// - Default values
package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Ordering values accepted by form.ordering.
const (
	OrderingResolved  = "resolved"
	OrderingSubmitted = "submitted"
)

// Config represents the complete greetbox configuration.
type Config struct {
	Logger   LoggerConfig   `mapstructure:"logger" json:"logger" yaml:"logger"`
	WebUI    WebUIConfig    `mapstructure:"webui" json:"webui" yaml:"webui"`
	Greeting GreetingConfig `mapstructure:"greeting" json:"greeting" yaml:"greeting"`
	Form     FormConfig     `mapstructure:"form" json:"form" yaml:"form"`
	mu       sync.RWMutex
}

// LoggerConfig controls structured logging and file rotation.
type LoggerConfig struct {
	Level       string `mapstructure:"level" json:"level" yaml:"level"`
	OutputPath  string `mapstructure:"output_path" json:"output_path" yaml:"output_path"`
	MaxSize     int    `mapstructure:"max_size" json:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" json:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" json:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" json:"compress" yaml:"compress"`
	Development bool   `mapstructure:"development" json:"development" yaml:"development"`
}

// WebUIConfig for the web front-end server.
type WebUIConfig struct {
	Enabled bool   `mapstructure:"enabled" json:"enabled" yaml:"enabled"`
	Host    string `mapstructure:"host" json:"host" yaml:"host"`
	Port    int    `mapstructure:"port" json:"port" yaml:"port"`
}

// GreetingConfig selects and tunes the greeting backend.
type GreetingConfig struct {
	// Endpoint is the base URL of a remote backend. Empty means in-process.
	Endpoint string `mapstructure:"endpoint" json:"endpoint" yaml:"endpoint"`
	// Template is the format used by the in-process backend; one %s verb.
	Template string `mapstructure:"template" json:"template" yaml:"template"`
	// TimeoutSeconds bounds remote calls; 0 disables the timeout.
	TimeoutSeconds int `mapstructure:"timeout_seconds" json:"timeout_seconds" yaml:"timeout_seconds"`
}

// FormConfig tunes the greeting form component.
type FormConfig struct {
	// Ordering is "resolved" (last response to arrive wins) or "submitted" (latest submission wins).
	Ordering string `mapstructure:"ordering" json:"ordering" yaml:"ordering"`
}

// DefaultConfig returns a new Config with default values.
func DefaultConfig() *Config {
	logPath := ""
	if home, err := os.UserHomeDir(); err == nil {
		logPath = filepath.Join(home, ".greetbox", "logs", "greetbox.log")
	}

	return &Config{
		Logger: LoggerConfig{
			Level:      "info",
			OutputPath: logPath,
			MaxSize:    100,
			MaxBackups: 3,
			MaxAge:     7,
			Compress:   true,
		},
		WebUI: WebUIConfig{
			Enabled: true,
			Host:    "0.0.0.0",
			Port:    18790,
		},
		Greeting: GreetingConfig{
			Template: "Hello, %s!",
		},
		Form: FormConfig{
			Ordering: OrderingResolved,
		},
	}
}

// GreetingTemplate returns the configured greeting template.
func (c *Config) GreetingTemplate() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Greeting.Template
}

// SetGreetingTemplate updates the greeting template in place.
func (c *Config) SetGreetingTemplate(template string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Greeting.Template = template
}

// FormOrdering returns the normalized ordering policy.
func (c *Config) FormOrdering() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ordering := strings.ToLower(strings.TrimSpace(c.Form.Ordering))
	if ordering == "" {
		return OrderingResolved
	}
	return ordering
}

// SetFormOrdering updates the ordering used for forms mounted afterwards.
func (c *Config) SetFormOrdering(ordering string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Form.Ordering = ordering
}

// expandPath expands ~ to home directory.
func expandPath(path string) string {
	if path == "" {
		return path
	}
	if path[0] == '~' {
		home, _ := os.UserHomeDir()
		if len(path) > 1 && path[1] == '/' {
			return home + path[1:]
		}
		return home
	}
	return path
}
