package greeting

import (
	"context"
	"testing"

	"greetbox/pkg/config"
	"greetbox/pkg/logger"
)

func TestProvideGreeter_LocalServiceWithoutEndpoint(t *testing.T) {
	cfg := config.DefaultConfig()
	svc, err := ProvideService(cfg)
	if err != nil {
		t.Fatalf("ProvideService failed: %v", err)
	}

	g := ProvideGreeter(cfg, svc, logger.NewNop())
	got, ok := g.(*Service)
	if !ok {
		t.Fatalf("expected *Service, got %T", g)
	}
	if got != svc {
		t.Fatal("expected the provided service to be reused")
	}
}

func TestProvideGreeter_ClientWithEndpoint(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Greeting.Endpoint = "http://greet.internal:18790/"
	cfg.Greeting.TimeoutSeconds = 3
	svc, err := ProvideService(cfg)
	if err != nil {
		t.Fatalf("ProvideService failed: %v", err)
	}

	g := ProvideGreeter(cfg, svc, logger.NewNop())
	client, ok := g.(*Client)
	if !ok {
		t.Fatalf("expected *Client, got %T", g)
	}
	if client.Endpoint() != "http://greet.internal:18790" {
		t.Fatalf("unexpected endpoint %q", client.Endpoint())
	}
}

func TestProvideService_RejectsInvalidTemplate(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Greeting.Template = "Hi %s, you are %d"
	if _, err := ProvideService(cfg); err == nil {
		t.Fatal("expected invalid template to fail")
	}
}

func TestTemplateReloadHandler_SwapsTemplate(t *testing.T) {
	cfg := config.DefaultConfig()
	svc, err := ProvideService(cfg)
	if err != nil {
		t.Fatalf("ProvideService failed: %v", err)
	}
	handler := templateReloadHandler(cfg, svc, logger.NewNop())

	reloaded := config.DefaultConfig()
	reloaded.Greeting.Template = "Howdy, %s."
	if err := handler(reloaded); err != nil {
		t.Fatalf("handler failed: %v", err)
	}

	if svc.Template() != "Howdy, %s." {
		t.Fatalf("expected service template to be swapped, got %q", svc.Template())
	}
	if cfg.GreetingTemplate() != "Howdy, %s." {
		t.Fatalf("expected live config to follow, got %q", cfg.GreetingTemplate())
	}
	got, _ := svc.Greet(context.Background(), "Alice")
	if got != "Howdy, Alice." {
		t.Fatalf("unexpected greeting %q", got)
	}
}

func TestTemplateReloadHandler_InvalidTemplateKeepsPrevious(t *testing.T) {
	cfg := config.DefaultConfig()
	svc, err := ProvideService(cfg)
	if err != nil {
		t.Fatalf("ProvideService failed: %v", err)
	}
	handler := templateReloadHandler(cfg, svc, logger.NewNop())

	reloaded := config.DefaultConfig()
	reloaded.Greeting.Template = "Hello %s 100%"
	if err := handler(reloaded); err == nil {
		t.Fatal("expected invalid template to be reported")
	}

	if svc.Template() != DefaultTemplate {
		t.Fatalf("expected previous template, got %q", svc.Template())
	}
	if cfg.GreetingTemplate() != DefaultTemplate {
		t.Fatalf("expected live config unchanged, got %q", cfg.GreetingTemplate())
	}
}
