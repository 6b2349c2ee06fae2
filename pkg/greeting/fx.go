package greeting

import (
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"greetbox/pkg/config"
	"greetbox/pkg/logger"
)

// Module provides the greeting backend and the Greeter used by forms.
var Module = fx.Module("greeting",
	fx.Provide(ProvideService),
	fx.Provide(ProvideGreeter),
	fx.Invoke(registerTemplateReload),
)

// ProvideService builds the in-process backend from config.
func ProvideService(cfg *config.Config) (*Service, error) {
	return NewService(cfg.GreetingTemplate())
}

// ProvideGreeter returns the remote Client when an endpoint is configured,
// otherwise the in-process Service.
func ProvideGreeter(cfg *config.Config, svc *Service, log *logger.Logger) Greeter {
	if cfg.Greeting.Endpoint == "" {
		log.Debug("Using in-process greeting backend", zap.String("template", svc.Template()))
		return svc
	}

	timeout := time.Duration(cfg.Greeting.TimeoutSeconds) * time.Second
	log.Info("Using remote greeting backend",
		zap.String("endpoint", cfg.Greeting.Endpoint),
		zap.Duration("timeout", timeout),
	)
	return NewClient(cfg.Greeting.Endpoint, WithTimeout(timeout))
}

func registerTemplateReload(w *config.Watcher, cfg *config.Config, svc *Service, log *logger.Logger) {
	w.AddHandler(templateReloadHandler(cfg, svc, log))
}

// templateReloadHandler swaps the backend template when a reloaded config
// changes it. An invalid template leaves the current one in place.
func templateReloadHandler(cfg *config.Config, svc *Service, log *logger.Logger) config.ChangeHandler {
	return func(newCfg *config.Config) error {
		template := newCfg.GreetingTemplate()
		if template == svc.Template() {
			return nil
		}
		if err := svc.SetTemplate(template); err != nil {
			return err
		}
		cfg.SetGreetingTemplate(template)
		log.Info("Greeting template updated", zap.String("template", svc.Template()))
		return nil
	}
}
