package config

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for _, err := range e {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validator validates configuration.
type Validator struct {
	errors ValidationErrors
}

// NewValidator creates a new configuration validator.
func NewValidator() *Validator {
	return &Validator{
		errors: make(ValidationErrors, 0),
	}
}

// Validate validates the entire configuration.
func (v *Validator) Validate(cfg *Config) error {
	v.errors = make(ValidationErrors, 0)

	v.validateLogger(&cfg.Logger)
	v.validateWebUI(&cfg.WebUI)
	v.validateGreeting(&cfg.Greeting)
	v.validateForm(&cfg.Form)

	if len(v.errors) > 0 {
		return v.errors
	}
	return nil
}

func (v *Validator) validateLogger(cfg *LoggerConfig) {
	switch strings.ToLower(strings.TrimSpace(cfg.Level)) {
	case "", "debug", "info", "warn", "error", "fatal":
	default:
		v.addError("logger.level", "level must be one of: debug, info, warn, error, fatal")
	}
	if cfg.MaxSize < 0 {
		v.addError("logger.max_size", "max_size must be non-negative")
	}
	if cfg.MaxBackups < 0 {
		v.addError("logger.max_backups", "max_backups must be non-negative")
	}
	if cfg.MaxAge < 0 {
		v.addError("logger.max_age", "max_age must be non-negative")
	}
}

func (v *Validator) validateWebUI(cfg *WebUIConfig) {
	if !cfg.Enabled {
		return
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		v.addError("webui.port", "port must be between 1 and 65535")
	}
}

func (v *Validator) validateGreeting(cfg *GreetingConfig) {
	if cfg.TimeoutSeconds < 0 {
		v.addError("greeting.timeout_seconds", "timeout_seconds must be non-negative")
	}

	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint != "" {
		u, err := url.Parse(endpoint)
		if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			v.addError("greeting.endpoint", "endpoint must be an absolute http or https URL")
		}
	}

	if strings.TrimSpace(cfg.Template) != "" {
		if err := CheckGreetingTemplate(cfg.Template); err != nil {
			v.addError("greeting.template", "invalid template: "+err.Error())
		}
	}
}

func (v *Validator) validateForm(cfg *FormConfig) {
	switch strings.ToLower(strings.TrimSpace(cfg.Ordering)) {
	case "", OrderingResolved, OrderingSubmitted:
	default:
		v.addError("form.ordering", "ordering must be one of: resolved, submitted")
	}
}

// addError adds a validation error.
func (v *Validator) addError(field, message string) {
	v.errors = append(v.errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// ValidateConfig is a convenience function to validate a configuration.
func ValidateConfig(cfg *Config) error {
	validator := NewValidator()
	return validator.Validate(cfg)
}
