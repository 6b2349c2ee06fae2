package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kardianos/service"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"greetbox/pkg/config"
	"greetbox/pkg/logger"
	"greetbox/pkg/webui"
)

// ServeService implements service.Interface for the greetbox server.
type ServeService struct {
	app    *fx.App
	logger service.Logger
}

// NewServeService creates a new server service.
func NewServeService() *ServeService {
	return &ServeService{}
}

// Start implements service.Interface.
func (s *ServeService) Start(svc service.Service) error {
	if s.logger != nil {
		s.logger.Info("Starting greetbox service")
	}
	go s.run()
	return nil
}

// Stop implements service.Interface.
func (s *ServeService) Stop(svc service.Service) error {
	if s.logger != nil {
		s.logger.Info("Stopping greetbox service")
	}
	if s.app == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.app.Stop(ctx); err != nil {
		if s.logger != nil {
			s.logger.Errorf("Error stopping service: %v", err)
		}
		return err
	}
	return nil
}

func (s *ServeService) run() {
	s.app = fx.New(
		serveModules("daemon"),
		fx.NopLogger,
	)
	s.app.Run()
}

// serveModules is the full server application.
func serveModules(mode string) fx.Option {
	return fx.Options(
		coreModules(),
		webui.Module,
		fx.Invoke(func(lc fx.Lifecycle, log *logger.Logger, cfg *config.Config, srv *webui.Server) {
			lc.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					log.Info("greetbox started",
						zap.String("mode", mode),
						zap.String("host", cfg.WebUI.Host),
						zap.Int("port", cfg.WebUI.Port),
						zap.String("form_ordering", cfg.FormOrdering()))
					return nil
				},
				OnStop: func(ctx context.Context) error {
					stats := srv.Stats()
					log.Info("greetbox stopped",
						zap.Uint64("submitted", stats.Submitted),
						zap.Uint64("resolved", stats.Resolved),
						zap.Uint64("failed", stats.Failed))
					return nil
				},
			})
		}),
	)
}

// ServiceConfig returns the service configuration. An explicit config path
// (flag or env) is forwarded so the service loads the same file.
func ServiceConfig() *service.Config {
	args := []string{"serve", "run"}
	path := strings.TrimSpace(configPath)
	if path == "" {
		path = strings.TrimSpace(os.Getenv(config.ConfigPathEnv))
	}
	if path != "" {
		args = append([]string{"-c", path}, args...)
	}

	return &service.Config{
		Name:        "greetbox",
		DisplayName: "greetbox",
		Description: "greetbox greeting form server",
		Arguments:   args,
	}
}

func newSystemService() (service.Service, *ServeService, error) {
	prg := NewServeService()
	s, err := service.New(prg, ServiceConfig())
	if err != nil {
		return nil, nil, fmt.Errorf("creating service: %w", err)
	}
	return s, prg, nil
}

// InstallService installs the server as a system service.
func InstallService() error {
	s, prg, err := newSystemService()
	if err != nil {
		return err
	}
	l, err := s.Logger(nil)
	if err != nil {
		return fmt.Errorf("creating service logger: %w", err)
	}
	prg.logger = l

	if err := s.Install(); err != nil {
		return fmt.Errorf("installing service: %w", err)
	}
	fmt.Println("Service installed successfully!")
	fmt.Println("Use 'greetbox serve start' to start the service")
	return nil
}

// UninstallService uninstalls the server service.
func UninstallService() error {
	s, _, err := newSystemService()
	if err != nil {
		return err
	}
	if err := s.Uninstall(); err != nil {
		return fmt.Errorf("uninstalling service: %w", err)
	}
	fmt.Println("Service uninstalled successfully!")
	return nil
}

// StartService starts the server service.
func StartService() error {
	s, _, err := newSystemService()
	if err != nil {
		return err
	}
	if err := s.Start(); err != nil {
		return fmt.Errorf("starting service: %w", err)
	}
	fmt.Println("Service started successfully!")
	return nil
}

// StopService stops the server service.
func StopService() error {
	s, _, err := newSystemService()
	if err != nil {
		return err
	}
	if err := s.Stop(); err != nil {
		return fmt.Errorf("stopping service: %w", err)
	}
	fmt.Println("Service stopped successfully!")
	return nil
}

// RestartService restarts the server service.
func RestartService() error {
	s, _, err := newSystemService()
	if err != nil {
		return err
	}
	if err := s.Restart(); err != nil {
		return fmt.Errorf("restarting service: %w", err)
	}
	fmt.Println("Service restarted successfully!")
	return nil
}

// StatusService prints the status of the server service.
func StatusService() error {
	s, _, err := newSystemService()
	if err != nil {
		return err
	}
	status, err := s.Status()
	if err != nil {
		return fmt.Errorf("getting service status: %w", err)
	}
	fmt.Printf("Service Status: %s\n", statusString(status))
	return nil
}

func statusString(status service.Status) string {
	switch status {
	case service.StatusRunning:
		return "Running"
	case service.StatusStopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

// RunService runs the server under the service manager.
func RunService() error {
	s, prg, err := newSystemService()
	if err != nil {
		return err
	}
	l, err := s.Logger(nil)
	if err != nil {
		return fmt.Errorf("creating service logger: %w", err)
	}
	prg.logger = l

	if err := s.Run(); err != nil {
		l.Error(err)
		return err
	}
	return nil
}

// runServeForeground runs the server until interrupted.
func runServeForeground() {
	app := fx.New(serveModules("foreground"))
	app.Run()
}
