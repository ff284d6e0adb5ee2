package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"fintrack-platform/internal/auth"
	"fintrack-platform/internal/employees"
	"fintrack-platform/pkg/logger"

	"github.com/gin-gonic/gin"
)

type staticResetTokens struct{ token string }

func (s staticResetTokens) Create(ctx context.Context, orgID, userID string) (string, error) {
	return s.token, nil
}

func (s staticResetTokens) Consume(ctx context.Context, token string) (string, string, error) {
	return "", "", auth.ErrResetTokenInvalid
}

// logCapture collects log records so tests can assert on what reaches the log.
type logCapture struct {
	mu      sync.Mutex
	records []slog.Record
}

func (h *logCapture) Enabled(context.Context, slog.Level) bool { return true }

func (h *logCapture) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, r.Clone())
	return nil
}

func (h *logCapture) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *logCapture) WithGroup(string) slog.Handler      { return h }

// issuanceAttrs runs a forgot-password request and returns the attributes of
// the token-issuance log line.
func issuanceAttrs(t *testing.T, logTokens bool) map[string]string {
	t.Helper()
	gin.SetMode(gin.TestMode)

	userSvc := employees.NewService(employees.NewMemoryRepo())
	if _, err := userSvc.Create(context.Background(), "org1", employees.CreateInput{
		FullName: "Ada Admin",
		Email:    "ada@acme.test",
		Password: "supersecret",
		Role:     "admin",
	}); err != nil {
		t.Fatalf("create user: %v", err)
	}

	h := Handlers{
		Users:          userSvc,
		Resets:         staticResetTokens{token: "tok-f33db33f"},
		LogResetTokens: logTokens,
	}

	capture := &logCapture{}
	r := gin.New()
	r.Use(logger.RequestLogger(slog.New(capture)))
	r.POST("/v1/auth/forgot-password", h.ForgotPassword)

	body, _ := json.Marshal(map[string]string{"email": "ada@acme.test"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/auth/forgot-password", bytes.NewReader(body)))
	if w.Code != http.StatusOK {
		t.Fatalf("forgot password: status %d body %s", w.Code, w.Body.String())
	}

	capture.mu.Lock()
	defer capture.mu.Unlock()
	for _, rec := range capture.records {
		if rec.Message != "password reset token issued" {
			continue
		}
		attrs := make(map[string]string)
		rec.Attrs(func(a slog.Attr) bool {
			attrs[a.Key] = a.Value.String()
			return true
		})
		return attrs
	}
	t.Fatalf("no issuance log line recorded")
	return nil
}

func TestForgotPassword_TokenStaysOutOfProductionLogs(t *testing.T) {
	attrs := issuanceAttrs(t, false)
	if _, ok := attrs["token"]; ok {
		t.Fatalf("reset token must not be logged in production, attrs %v", attrs)
	}
	if attrs["user_id"] == "" {
		t.Fatalf("issuance line should still carry user_id, attrs %v", attrs)
	}
}

func TestForgotPassword_DevLogsCarryToken(t *testing.T) {
	attrs := issuanceAttrs(t, true)
	if attrs["token"] != "tok-f33db33f" {
		t.Fatalf("expected token in dev log, attrs %v", attrs)
	}
}
