package logger

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
)

// captureHandler records every log line so tests can assert on levels and
// messages without parsing output.
type captureHandler struct {
	mu      sync.Mutex
	records []slog.Record
}

func (h *captureHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *captureHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, r.Clone())
	return nil
}

func (h *captureHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *captureHandler) WithGroup(string) slog.Handler      { return h }

func (h *captureHandler) all() []slog.Record {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]slog.Record(nil), h.records...)
}

func newTestRouter(capture *captureHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestLogger(slog.New(capture)))
	return r
}

func TestRequestLogger_TagsResponseWithRequestID(t *testing.T) {
	capture := &captureHandler{}
	r := newTestRouter(capture)
	r.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	if w.Header().Get("X-Request-Id") == "" {
		t.Fatalf("expected X-Request-Id header on response")
	}
	recs := capture.all()
	if len(recs) != 1 || recs[0].Level != slog.LevelInfo {
		t.Fatalf("expected one info summary line, got %+v", recs)
	}
}

func TestRequestLogger_KeepsIncomingRequestID(t *testing.T) {
	capture := &captureHandler{}
	r := newTestRouter(capture)
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-Id", "rid-from-proxy")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-Id"); got != "rid-from-proxy" {
		t.Fatalf("expected incoming request id kept, got %q", got)
	}
}

func TestRequestLogger_SkipsHealthChecks(t *testing.T) {
	capture := &captureHandler{}
	r := newTestRouter(capture)
	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if n := len(capture.all()); n != 0 {
		t.Fatalf("health check should not be logged, got %d records", n)
	}
}

func TestRequestLogger_EscalatesByStatus(t *testing.T) {
	capture := &captureHandler{}
	r := newTestRouter(capture)
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/broken", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/broken", nil))

	recs := capture.all()
	if len(recs) != 2 {
		t.Fatalf("expected two summary lines, got %d", len(recs))
	}
	if recs[0].Level != slog.LevelWarn {
		t.Fatalf("4xx should log at warn, got %v", recs[0].Level)
	}
	if recs[1].Level != slog.LevelError {
		t.Fatalf("5xx should log at error, got %v", recs[1].Level)
	}
}
