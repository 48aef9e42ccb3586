package preview

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/conneroisu/inkit/internal/accessibility"
	"github.com/conneroisu/inkit/internal/errors"
	"github.com/conneroisu/inkit/internal/stylesheet"
	"github.com/conneroisu/inkit/internal/version"
	"github.com/conneroisu/inkit/pkg/button"
)

// ClassesResponse is the body of /api/classes.
type ClassesResponse struct {
	Classes string   `json:"classes"`
	Tokens  []string `json:"tokens"`
}

// AuditResponse is the body of /api/audit.
type AuditResponse struct {
	HTML   string                `json:"html"`
	Report *accessibility.Report `json:"report"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if !allowGet(w, r) {
		return
	}

	var buf bytes.Buffer
	err := Gallery(GalleryData{
		Title:      s.config.Preview.Title,
		Stylesheet: "/styles.css",
		Default:    s.DefaultStyle(),
		Overlay:    s.issues.Overlay(),
		LiveReload: s.config.Preview.Watch,
	}).Render(r.Context(), &buf)
	if err != nil {
		s.internalError(w, r, err, "Failed to render gallery")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (s *Server) handleButton(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	props, ok := s.props(w, r)
	if !ok {
		return
	}

	html, err := renderString(r, props)
	if err != nil {
		s.internalError(w, r, err, "Failed to render button")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(html))
}

func (s *Server) handleClasses(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	props, ok := s.props(w, r)
	if !ok {
		return
	}

	s.writeJSON(w, r, http.StatusOK, ClassesResponse{
		Classes: props.Classes(),
		Tokens:  props.Tokens(),
	})
}

func (s *Server) handleTokens(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	s.writeJSON(w, r, http.StatusOK, stylesheet.NewManifest())
}

func (s *Server) handleAudit(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	props, ok := s.props(w, r)
	if !ok {
		return
	}

	html, err := renderString(r, props)
	if err != nil {
		s.internalError(w, r, err, "Failed to render button")
		return
	}
	report, err := s.auditor.Audit(r.Context(), html)
	if err != nil {
		s.internalError(w, r, err, "Failed to audit button")
		return
	}

	s.issues.Replace(auditIssuesFile, report.Issues(auditIssuesFile))

	s.writeJSON(w, r, http.StatusOK, AuditResponse{HTML: html, Report: report})
}

func (s *Server) handleStylesheet(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	data, err := os.ReadFile(s.config.Preview.Stylesheet)
	if err != nil {
		if os.IsNotExist(err) {
			http.NotFound(w, r)
			return
		}
		s.internalError(w, r, err, "Failed to read stylesheet")
		return
	}

	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(data)
}

// handleHealth returns the server health status for health checks
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	stylesheetCheck := map[string]interface{}{
		"path":   s.config.Preview.Stylesheet,
		"issues": len(s.issues.Issues()),
		"status": "healthy",
	}
	if report := s.Report(); report != nil {
		stylesheetCheck["coverage"] = report.Coverage()
	}
	if s.issues.HasErrors() {
		stylesheetCheck["status"] = "degraded"
	}

	health := map[string]interface{}{
		"status":     "healthy",
		"timestamp":  time.Now().UTC(),
		"uptime":     time.Since(s.startTime).Round(time.Second).String(),
		"version":    version.GetShortVersion(),
		"build_info": version.GetBuildInfo(),
		"checks": map[string]interface{}{
			"server":        map[string]interface{}{"status": "healthy"},
			"websocket":     map[string]interface{}{"status": "healthy", "clients": s.ws.ConnectedClients()},
			"stylesheet":    stylesheetCheck,
			"accessibility": map[string]interface{}{"status": "healthy", "rules": len(s.auditor.Rules())},
		},
	}

	s.writeJSON(w, r, http.StatusOK, health)
}

// props parses the request into button props, writing a 400 on failure.
func (s *Server) props(w http.ResponseWriter, r *http.Request) (button.Props, bool) {
	props, err := RequestFromQuery(r.URL.Query()).Props(s.DefaultStyle())
	if err != nil {
		s.errHandler.Handle(r.Context(), err)
		status := http.StatusInternalServerError
		if errors.IsType(err, errors.ErrorTypeValidation) {
			status = http.StatusBadRequest
		}
		s.writeJSON(w, r, status, map[string]string{"error": err.Error()})
		return button.Props{}, false
	}
	return props, true
}

func renderString(r *http.Request, props button.Props) (string, error) {
	var buf bytes.Buffer
	if err := button.Button(props).Render(r.Context(), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func allowGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error(r.Context(), err, "Failed to encode response", "path", r.URL.Path)
	}
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	s.errHandler.Handle(r.Context(), errors.NewInternalError(errors.ErrCodeInternalError, msg, err).
		WithContext("path", r.URL.Path))
	http.Error(w, msg, http.StatusInternalServerError)
}
