package config

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"greetbox/pkg/logger"
)

// Module provides configuration for fx dependency injection, loaded from
// the default location.
var Module = ModuleWithPath("")

// ModuleWithPath provides configuration loaded from path (empty means default).
func ModuleWithPath(path string) fx.Option {
	return fx.Module("config",
		fx.Provide(ProvideLoader),
		fx.Provide(ProvideConfigWithPath(path)),
		fx.Provide(ProvideLoggerConfig),
		fx.Provide(ProvideWatcher),
	)
}

// ProvideLoader provides a configuration loader.
func ProvideLoader() *Loader {
	return NewLoader()
}

// ProvideConfigWithPath provides validated configuration from a specific path.
func ProvideConfigWithPath(path string) func(*Loader) (*Config, error) {
	return func(loader *Loader) (*Config, error) {
		cfg, err := loader.LoadFromFile(path)
		if err != nil {
			return nil, err
		}

		if err := ValidateConfig(cfg); err != nil {
			return nil, err
		}

		return cfg, nil
	}
}

// ProvideLoggerConfig derives the logger configuration.
func ProvideLoggerConfig(cfg *Config) *logger.Config {
	return cfg.Logger.ToLoggerConfig()
}

// ProvideWatcher provides a configuration watcher with hot-reload.
func ProvideWatcher(loader *Loader, cfg *Config, lc fx.Lifecycle, log *logger.Logger) *Watcher {
	watcher := NewWatcher(loader, cfg, log)

	watcher.AddHandler(func(newCfg *Config) error {
		log.Info("Configuration reloaded",
			zap.String("file", loader.GetConfigPath()),
			zap.String("ordering", newCfg.FormOrdering()),
		)
		return nil
	})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting configuration watcher", zap.String("file", loader.GetConfigPath()))
			return watcher.Start()
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Stopping configuration watcher")
			watcher.Stop()
			return nil
		},
	})

	return watcher
}
