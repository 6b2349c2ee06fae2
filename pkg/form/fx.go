package form

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"greetbox/pkg/config"
	"greetbox/pkg/greeting"
	"greetbox/pkg/logger"
)

// Module provides the form Factory for fx dependency injection.
var Module = fx.Module("form",
	fx.Provide(NewFactory),
	fx.Invoke(registerOrderingReload),
)

// Factory mounts forms wired to the configured greeter. The ordering is read
// from config on every mount, so a reload affects forms mounted afterwards.
type Factory struct {
	greeter greeting.Greeter
	cfg     *config.Config
	log     *logger.Logger
}

// NewFactory creates a form factory.
func NewFactory(g greeting.Greeter, cfg *config.Config, log *logger.Logger) *Factory {
	return &Factory{greeter: g, cfg: cfg, log: log}
}

// New mounts a form. Extra options are applied after the configured ones.
func (fa *Factory) New(ctx context.Context, opts ...Option) *Form {
	ordering, err := ParseOrdering(fa.cfg.FormOrdering())
	if err != nil {
		fa.log.Warn("Invalid form ordering, using default", zap.Error(err))
	}

	base := []Option{
		WithContext(ctx),
		WithLogger(fa.log.WithFields(zap.String("component", "form"))),
		WithOrdering(ordering),
	}
	return New(fa.greeter, append(base, opts...)...)
}

func registerOrderingReload(w *config.Watcher, cfg *config.Config, log *logger.Logger) {
	w.AddHandler(orderingReloadHandler(cfg, log))
}

func orderingReloadHandler(cfg *config.Config, log *logger.Logger) config.ChangeHandler {
	return func(newCfg *config.Config) error {
		ordering := newCfg.FormOrdering()
		if ordering == cfg.FormOrdering() {
			return nil
		}
		cfg.SetFormOrdering(ordering)
		log.Info("Form ordering updated", zap.String("ordering", ordering))
		return nil
	}
}
