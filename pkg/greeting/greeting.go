// Package greeting implements the greeting backend and the client binding
// used to reach it. Callers depend on the Greeter capability only, so the
// in-process Service and the HTTP Client are interchangeable.
package greeting

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"greetbox/pkg/config"
)

// DefaultTemplate is the format applied to a name when none is configured.
const DefaultTemplate = "Hello, %s!"

// ErrInvalidTemplate is returned when a template does not contain exactly one %s verb.
var ErrInvalidTemplate = errors.New("greeting template must contain exactly one %s verb")

// Greeter turns a name into a greeting.
type Greeter interface {
	Greet(ctx context.Context, name string) (string, error)
}

// GreeterFunc adapts a function to the Greeter interface.
type GreeterFunc func(ctx context.Context, name string) (string, error)

// Greet calls f(ctx, name).
func (f GreeterFunc) Greet(ctx context.Context, name string) (string, error) {
	return f(ctx, name)
}

// Service is the greeting backend. It performs no validation on the name:
// an empty name yields a greeting for the empty string.
type Service struct {
	mu       sync.RWMutex
	template string
}

// NewService creates a backend using template, or DefaultTemplate when empty.
func NewService(template string) (*Service, error) {
	if strings.TrimSpace(template) == "" {
		template = DefaultTemplate
	}
	if err := ValidateTemplate(template); err != nil {
		return nil, err
	}
	return &Service{template: template}, nil
}

// Greet formats name with the current template.
func (s *Service) Greet(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.RLock()
	template := s.template
	s.mu.RUnlock()
	return fmt.Sprintf(template, name), nil
}

// Template returns the active template.
func (s *Service) Template() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.template
}

// SetTemplate swaps the active template. The previous template stays in
// place when the new one is invalid.
func (s *Service) SetTemplate(template string) error {
	if strings.TrimSpace(template) == "" {
		template = DefaultTemplate
	}
	if err := ValidateTemplate(template); err != nil {
		return err
	}
	s.mu.Lock()
	s.template = template
	s.mu.Unlock()
	return nil
}

// ValidateTemplate checks that template has exactly one %s verb and no other verbs.
func ValidateTemplate(template string) error {
	if err := config.CheckGreetingTemplate(template); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
	}
	return nil
}
