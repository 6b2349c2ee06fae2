// Package webui serves the greeting form page over HTTP.
// It uses Echo v5 for routing, renders the form server-side, serves the
// embedded static assets, and mounts one form per WebSocket connection so
// greetings are pushed to the page as calls resolve. It also exposes the
// greeting backend endpoint used by remote greeting clients.
package webui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"go.uber.org/zap"

	"greetbox/pkg/config"
	"greetbox/pkg/form"
	"greetbox/pkg/greeting"
	"greetbox/pkg/logger"
	"greetbox/pkg/version"
	"greetbox/pkg/webui/frontend"
)

// ScriptPath is where the page script is served.
const ScriptPath = "/app.js"

// Server is the WebUI HTTP server.
type Server struct {
	echo       *echo.Echo
	httpServer *http.Server
	config     *config.Config
	logger     *logger.Logger
	forms      *form.Factory
	backend    *greeting.Service
	port       int
	startedAt  time.Time

	// ctx parents every mounted form; cancelled on Stop.
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	mounted map[string]*mountedForm
	retired form.Stats
}

// NewServer creates a new WebUI server.
func NewServer(
	cfg *config.Config,
	log *logger.Logger,
	forms *form.Factory,
	backend *greeting.Service,
) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		config:    cfg,
		logger:    log,
		forms:     forms,
		backend:   backend,
		port:      cfg.WebUI.Port,
		startedAt: time.Now(),
		ctx:       ctx,
		cancel:    cancel,
		mounted:   make(map[string]*mountedForm),
	}

	s.setup()
	return s
}

func (s *Server) setup() {
	e := echo.New()

	e.Use(middleware.Recover())
	e.Use(s.logRequests)

	e.GET("/", s.handlePage)
	e.GET("/health", s.handleHealth)

	e.GET("/api/status", s.handleStatus)
	e.POST(greeting.GreetPath, s.handleGreet)
	e.GET("/api/form/ws", s.handleFormWS)

	// Static assets (logo, page script)
	distFS, err := fs.Sub(frontend.Dist, "dist")
	if err == nil {
		e.GET("/*", echo.WrapHandler(http.FileServer(http.FS(distFS))))
	} else {
		s.logger.Error("Embedded frontend assets unavailable", zap.Error(err))
	}

	s.echo = e
}

// Handler returns the HTTP handler, for embedding and tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start starts the WebUI server. The listener is bound before returning so
// address errors surface to the caller.
func (s *Server) Start() error {
	addr := net.JoinHostPort(s.config.WebUI.Host, fmt.Sprintf("%d", s.port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}

	s.logger.Info("WebUI server starting",
		zap.String("addr", ln.Addr().String()),
	)

	// Use http.Server directly so shutdown is driven by the fx lifecycle.
	s.httpServer = &http.Server{
		Handler:           s.echo,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("WebUI server error", zap.Error(err))
		}
	}()

	return nil
}

// Stop gracefully stops the WebUI server and unmounts every form.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("WebUI server stopping")
	s.cancel()
	// Shutdown does not track hijacked connections.
	s.unmountAll()
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

func (s *Server) logRequests(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c *echo.Context) error {
		start := time.Now()
		err := next(c)
		req := c.Request()
		fields := []zap.Field{
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Duration("duration", time.Since(start)),
		}
		if err != nil {
			s.logger.Warn("Request failed", append(fields, zap.Error(err))...)
		} else {
			s.logger.Debug("Request served", fields...)
		}
		return err
	}
}

// --- Page ---

func (s *Server) pageView() form.View {
	return form.View{Title: "greetbox", ScriptPath: ScriptPath}
}

func (s *Server) handlePage(c *echo.Context) error {
	// A fresh instance renders the initial (idle) page; the browser mounts
	// its own instance over the WebSocket.
	f := s.forms.New(c.Request().Context(), form.WithView(s.pageView()))
	defer f.Close()

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		s.logger.Error("Failed to render form page", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to render page"})
	}
	return c.HTML(http.StatusOK, buf.String())
}

func (s *Server) handleHealth(c *echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// --- Greeting backend ---

func (s *Server) handleGreet(c *echo.Context) error {
	var body greeting.GreetRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	text, err := s.backend.Greet(c.Request().Context(), body.Name)
	if err != nil {
		s.logger.Warn("Greeting backend failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "greeting failed"})
	}
	return c.JSON(http.StatusOK, greeting.GreetResponse{Greeting: text})
}

// --- Status ---

// MountedForms returns the number of forms currently mounted over WebSockets.
func (s *Server) MountedForms() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.mounted)
}

// Stats sums submission counters of mounted and already unmounted forms.
func (s *Server) Stats() form.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := s.retired
	for _, m := range s.mounted {
		total = total.Add(m.form.Stats())
	}
	return total
}

func (s *Server) handleStatus(c *echo.Context) error {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	uptime := time.Since(s.startedAt)
	stats := s.Stats()
	build := version.Get()

	backend := "local"
	if endpoint := strings.TrimSpace(s.config.Greeting.Endpoint); endpoint != "" {
		backend = endpoint
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"version":            build.Version,
		"commit":             build.Commit,
		"build_time":         build.BuildTime,
		"os":                 build.OS,
		"arch":               build.Arch,
		"go_version":         build.GoVersion,
		"pid":                os.Getpid(),
		"uptime":             uptime.Round(time.Second).String(),
		"uptime_seconds":     int64(uptime.Seconds()),
		"memory_alloc_bytes": mem.Alloc,
		"greeting_backend":   backend,
		"greeting_template":  s.backend.Template(),
		"form_ordering":      s.config.FormOrdering(),
		"mounted_forms":      s.MountedForms(),
		"submissions": map[string]uint64{
			"submitted": stats.Submitted,
			"resolved":  stats.Resolved,
			"failed":    stats.Failed,
			"discarded": stats.Discarded,
		},
	})
}
