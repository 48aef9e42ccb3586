// Package preview serves a live gallery of every button style against the
// project stylesheet, with JSON endpoints for class strings, the token
// catalog and accessibility audits.
//
// When watching is enabled the stylesheet is re-linted on every change and
// connected pages are told to reload over a WebSocket.
package preview

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/conneroisu/inkit/internal/accessibility"
	"github.com/conneroisu/inkit/internal/config"
	"github.com/conneroisu/inkit/internal/errors"
	"github.com/conneroisu/inkit/internal/logging"
	"github.com/conneroisu/inkit/internal/stylesheet"
	"github.com/conneroisu/inkit/internal/validation"
	"github.com/conneroisu/inkit/internal/watcher"
	"github.com/conneroisu/inkit/internal/websocket"
	"github.com/conneroisu/inkit/pkg/button"
)

// auditIssuesFile labels the overlay issues found by the last /api/audit.
const auditIssuesFile = "/api/audit"

// Server is the preview HTTP server.
type Server struct {
	config     *config.Config
	logger     logging.Logger
	ws         *websocket.Manager
	watcher    *watcher.FileWatcher
	auditor    *accessibility.Auditor
	issues     *errors.Collector
	errHandler *errors.ErrorHandler
	startTime  time.Time

	serverMutex  sync.RWMutex
	httpServer   *http.Server
	listenAddr   string
	shutdownOnce sync.Once

	reportMutex sync.RWMutex
	report      *stylesheet.Report

	styleMutex   sync.RWMutex
	defaultStyle button.Style
}

// New creates a preview server for cfg. A nil logger discards output.
func New(cfg *config.Config, logger logging.Logger) (*Server, error) {
	if cfg == nil {
		return nil, errors.NewConfigError(errors.ErrCodeConfigInvalid, "nil configuration")
	}
	if logger == nil {
		logger = logging.Discard()
	}
	logger = logger.WithComponent("preview")

	s := &Server{
		config:     cfg,
		logger:     logger,
		auditor:    accessibility.NewAuditor(logger),
		issues:     errors.NewCollector(),
		errHandler: errors.NewErrorHandler(logger),
		startTime:  time.Now(),

		defaultStyle: cfg.DefaultStyle(),
	}
	s.ws = websocket.NewManager(websocket.OriginFunc(s.IsAllowedOrigin), logger)

	if cfg.Preview.Watch {
		fw, err := watcher.NewFileWatcher(cfg.Preview.Debounce, logger)
		if err != nil {
			return nil, errors.NewIOError(errors.ErrCodeServerStart, "failed to create file watcher", err)
		}
		s.watcher = fw
	}

	return s, nil
}

// Handler returns the routed handler wrapped in the server middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/button", s.handleButton)
	mux.HandleFunc("/api/classes", s.handleClasses)
	mux.HandleFunc("/api/tokens", s.handleTokens)
	mux.HandleFunc("/api/audit", s.handleAudit)
	mux.HandleFunc("/styles.css", s.handleStylesheet)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ws", s.ws.HandleWebSocket)

	return s.addMiddleware(mux)
}

// Start lints the stylesheet, starts watching it and serves HTTP until ctx
// is cancelled or Shutdown is called.
func (s *Server) Start(ctx context.Context) error {
	if err := s.ReloadStylesheet(ctx); err != nil {
		s.errHandler.Handle(ctx, err)
	}

	if s.watcher != nil {
		if err := s.setupFileWatcher(ctx); err != nil {
			s.logger.Warn(ctx, err, "Stylesheet watching disabled", "path", s.config.Preview.Stylesheet)
		}
	}

	ln, err := net.Listen("tcp", s.config.Addr())
	if err != nil {
		_ = s.Shutdown(ctx)
		return errors.NewNetworkError(errors.ErrCodeServerStart, "failed to listen on "+s.config.Addr(), err)
	}

	server := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.serverMutex.Lock()
	s.httpServer = server
	s.listenAddr = ln.Addr().String()
	s.serverMutex.Unlock()

	link := "http://" + s.listenAddr
	s.logger.Info(ctx, "Preview server listening", "url", link, "stylesheet", s.config.Preview.Stylesheet)
	if s.config.Server.Open {
		go s.openBrowser(ctx, link)
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(shutdownCtx, err, "Shutdown failed")
		}
	}()

	if err := server.Serve(ln); err != nil && err != http.ErrServerClosed {
		return errors.NewNetworkError(errors.ErrCodeServerStart, "server error", err)
	}
	return nil
}

// Addr returns the address the server is listening on, or "" before Start.
func (s *Server) Addr() string {
	s.serverMutex.RLock()
	defer s.serverMutex.RUnlock()
	return s.listenAddr
}

// Shutdown stops the watcher, closes WebSocket clients and shuts the HTTP
// server down.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.logger.Info(ctx, "Shutting down preview server")

		if s.watcher != nil {
			if err := s.watcher.Stop(); err != nil {
				s.logger.Warn(ctx, err, "Failed to stop file watcher")
			}
		}

		if err := s.ws.Shutdown(ctx); err != nil {
			s.logger.Warn(ctx, err, "Failed to shut down WebSocket manager")
		}

		s.serverMutex.RLock()
		server := s.httpServer
		s.serverMutex.RUnlock()
		if server != nil {
			shutdownErr = server.Shutdown(ctx)
		}
	})

	return shutdownErr
}

// IsAllowedOrigin accepts the configured host and port, its loopback
// aliases, and any configured allowed origin.
func (s *Server) IsAllowedOrigin(origin string) bool {
	// The listener port wins over the configured one, which may be 0.
	port := strconv.Itoa(s.config.Server.Port)
	if addr := s.Addr(); addr != "" {
		if _, p, err := net.SplitHostPort(addr); err == nil {
			port = p
		}
	}

	allowed := append([]string{}, s.config.Server.AllowedOrigins...)
	for _, host := range []string{s.config.Server.Host, "localhost", "127.0.0.1"} {
		allowed = append(allowed, net.JoinHostPort(host, port))
	}
	return validation.ValidateOrigin(origin, allowed) == nil
}

func (s *Server) setupFileWatcher(ctx context.Context) error {
	paths := []string{s.config.Preview.Stylesheet}
	if s.config.File != "" {
		paths = append(paths, s.config.File)
	}

	s.watcher.AddFilter(watcher.AnyFilter(watcher.CSSFilter, watcher.ConfigFilter))
	s.watcher.AddFilter(watcher.PathFilter(paths...))
	s.watcher.AddHandler(func(events []watcher.ChangeEvent) error {
		return s.handleChange(ctx, events)
	})

	// Watch directories so editors that save by rename are still seen.
	dirs := make(map[string]bool)
	for _, p := range paths {
		dir := filepath.Dir(p)
		if dirs[dir] {
			continue
		}
		dirs[dir] = true
		if err := s.watcher.AddPath(dir); err != nil {
			return err
		}
	}
	return s.watcher.Start(ctx)
}

func (s *Server) handleChange(ctx context.Context, events []watcher.ChangeEvent) error {
	configChanged := false
	for _, e := range events {
		s.logger.Debug(ctx, "File changed", "path", e.Path, "type", e.Type.String())
		if s.config.File != "" && filepath.Clean(e.Path) == filepath.Clean(s.config.File) {
			configChanged = true
		}
	}

	if configChanged {
		if err := s.ReloadConfig(ctx); err != nil {
			s.ws.Broadcast(websocket.UpdateMessage{
				Type:    websocket.MessageStyleError,
				Target:  s.config.File,
				Content: err.Error(),
			})
			return err
		}
	}

	if err := s.ReloadStylesheet(ctx); err != nil {
		s.ws.Broadcast(websocket.UpdateMessage{
			Type:    websocket.MessageStyleError,
			Target:  s.config.Preview.Stylesheet,
			Content: err.Error(),
		})
		return err
	}

	s.ws.Broadcast(websocket.UpdateMessage{
		Type:   websocket.MessageReload,
		Target: s.config.Preview.Stylesheet,
	})
	return nil
}

// ReloadConfig re-reads preview.default from the config file the server
// was started with. Other settings need a restart. An invalid file keeps the
// previous default and is reported as an issue.
func (s *Server) ReloadConfig(ctx context.Context) error {
	path := s.config.File
	if path == "" {
		return nil
	}

	cfg, err := config.LoadFile(path)
	if err != nil {
		s.issues.Replace(path, []errors.Issue{{Message: err.Error(), Severity: errors.SeverityError}})
		s.errHandler.Handle(ctx, err)
		return err
	}

	style := cfg.DefaultStyle()
	s.styleMutex.Lock()
	s.defaultStyle = style
	s.styleMutex.Unlock()
	s.issues.Replace(path, nil)

	s.logger.Info(ctx, "Configuration reloaded", "path", path, "default", style.Classes())
	return nil
}

// DefaultStyle returns the style every preview starts from.
func (s *Server) DefaultStyle() button.Style {
	s.styleMutex.RLock()
	defer s.styleMutex.RUnlock()
	return s.defaultStyle
}

// ReloadStylesheet re-lints the configured stylesheet and replaces the
// collected issues. A missing stylesheet is a warning, not an error.
func (s *Server) ReloadStylesheet(ctx context.Context) error {
	path := s.config.Preview.Stylesheet
	perf := logging.StartOperation(s.logger, "lint_stylesheet")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			s.setReport(nil)
			s.issues.Replace(path, []errors.Issue{{
				Message:  "stylesheet not found",
				Severity: errors.SeverityWarning,
			}})
			perf.End(ctx, "found", false)
			return nil
		}
		perf.EndWithError(ctx, err)
		return errors.NewIOError(errors.ErrCodeFileRead, "failed to read stylesheet", err).
			WithLocation(path, 0, 0)
	}

	report, err := stylesheet.Lint(path, string(data))
	if err != nil {
		s.setReport(nil)
		issue := errors.Issue{Message: err.Error(), Severity: errors.SeverityError}
		var ie *errors.InkitError
		if errors.As(err, &ie) {
			issue.Line, issue.Column = ie.Line, ie.Column
		}
		s.issues.Replace(path, []errors.Issue{issue})
		perf.EndWithError(ctx, err)
		return err
	}

	s.setReport(report)
	s.issues.Replace(path, report.Issues())
	perf.End(ctx, "coverage", report.Coverage(), "unknown", len(report.Unknown))
	return nil
}

func (s *Server) setReport(r *stylesheet.Report) {
	s.reportMutex.Lock()
	defer s.reportMutex.Unlock()
	s.report = r
}

// Report returns the latest lint report, or nil when the stylesheet is
// missing or failed to parse.
func (s *Server) Report() *stylesheet.Report {
	s.reportMutex.RLock()
	defer s.reportMutex.RUnlock()
	return s.report
}

// Issues returns the issues shown on the preview page.
func (s *Server) Issues() []errors.Issue {
	return s.issues.Issues()
}

func (s *Server) openBrowser(ctx context.Context, target string) {
	time.Sleep(100 * time.Millisecond)

	if err := validation.ValidateURL(target); err != nil {
		s.logger.Warn(ctx, err, "Refusing to open browser", "url", target)
		return
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "linux":
		cmd = exec.Command("xdg-open", target)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", target)
	case "darwin":
		cmd = exec.Command("open", target)
	default:
		s.logger.Warn(ctx, nil, "Cannot open browser on this platform", "os", runtime.GOOS)
		return
	}
	if err := cmd.Start(); err != nil {
		s.logger.Warn(ctx, err, "Failed to open browser")
	}
}
