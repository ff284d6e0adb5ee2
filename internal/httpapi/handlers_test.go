package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fintrack-platform/internal/auth"
	"fintrack-platform/internal/config"
	"fintrack-platform/internal/employees"
	"fintrack-platform/internal/goals"
	"fintrack-platform/internal/loans"
	"fintrack-platform/internal/organization"
	"fintrack-platform/internal/profiles"
	"fintrack-platform/internal/rbac"
	"fintrack-platform/internal/repayments"
	"fintrack-platform/internal/savings"

	"github.com/gin-gonic/gin"
)

type testEnv struct {
	router  *gin.Engine
	h       Handlers
	manager *auth.Manager
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	manager, err := auth.NewManager(config.AuthConfig{
		JWTSecret:      "test-secret",
		AccessTokenTTL: time.Hour,
	})
	if err != nil {
		t.Fatalf("auth manager: %v", err)
	}

	userRepo := employees.NewMemoryRepo()
	userSvc := employees.NewService(userRepo)
	orgSvc := organization.NewService(organization.NewMemoryRepo(userRepo), userSvc)
	profileSvc := profiles.NewService(profiles.NewMemoryRepo())
	savingSvc := savings.NewService(savings.NewMemoryRepo())
	loanSvc := loans.NewService(loans.NewMemoryRepo())
	repaymentSvc := repayments.NewService(repayments.NewMemoryRepo(), loanSvc)
	goalSvc := goals.NewService(goals.NewMemoryRepo())

	h := Handlers{
		Auth:       manager,
		Limiter:    auth.NewLoginLimiter(nil),
		Orgs:       orgSvc,
		Users:      userSvc,
		Profiles:   profileSvc,
		Savings:    savingSvc,
		Loans:      loanSvc,
		Repayments: repaymentSvc,
		Goals:      goalSvc,
	}

	r := gin.New()
	r.POST("/v1/auth/login", h.Login)
	r.POST("/v1/organizations/with-admin-account", h.RegisterOrganization)

	api := r.Group("/v1")
	api.Use(auth.RequireToken(manager))
	api.Use(rbac.RequireOrganization())
	api.GET("/users/me", h.Me)
	api.GET("/users/me/statistics", h.MyStatistics)
	api.GET("/profiles/me", h.MyProfile)
	api.GET("/goals", h.ListMyGoals)
	api.POST("/goals", h.CreateGoal)
	api.GET("/goals/:id", h.GetGoal)
	api.PUT("/goals/:id", h.UpdateGoal)
	api.DELETE("/goals/:id", h.DeleteGoal)

	admin := api.Group("")
	admin.Use(rbac.RequireAnyRole(rbac.RoleAdmin))
	admin.POST("/users", h.CreateUser)
	admin.GET("/organizations/me/statistics", h.OrganizationStatistics)
	admin.POST("/profiles", h.CreateProfile)
	admin.GET("/profiles", h.ListProfiles)

	return testEnv{router: r, h: h, manager: manager}
}

func (e testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func registerOrg(t *testing.T, e testEnv) {
	t.Helper()
	w := e.do(t, http.MethodPost, "/v1/organizations/with-admin-account", "", gin.H{
		"name":            "Acme Sacco",
		"email":           "info@acme.test",
		"admin_full_name": "Ada Admin",
		"admin_email":     "ada@acme.test",
		"admin_password":  "supersecret",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register org: status %d body %s", w.Code, w.Body.String())
	}
}

func login(t *testing.T, e testEnv, email, password string) (token, role string) {
	t.Helper()
	w := e.do(t, http.MethodPost, "/v1/auth/login", "", gin.H{"email": email, "password": password})
	if w.Code != http.StatusOK {
		t.Fatalf("login: status %d body %s", w.Code, w.Body.String())
	}
	var resp struct {
		OK    bool   `json:"ok"`
		Token string `json:"token"`
		Role  string `json:"role"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	if !resp.OK || resp.Token == "" {
		t.Fatalf("unexpected login response: %s", w.Body.String())
	}
	return resp.Token, resp.Role
}

func TestLogin_ReturnsTokenAndRole(t *testing.T) {
	e := newTestEnv(t)
	registerOrg(t, e)

	token, role := login(t, e, "ada@acme.test", "supersecret")
	if role != "admin" {
		t.Fatalf("expected admin role, got %q", role)
	}

	// Raw token in the Authorization header, no Bearer prefix.
	w := e.do(t, http.MethodGet, "/v1/users/me", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("me: status %d body %s", w.Code, w.Body.String())
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	e := newTestEnv(t)
	registerOrg(t, e)

	w := e.do(t, http.MethodPost, "/v1/auth/login", "", gin.H{"email": "ada@acme.test", "password": "wrong-password"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	var body errorBody
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body.Code != "INVALID_CREDENTIALS" {
		t.Fatalf("expected INVALID_CREDENTIALS, got %q", body.Code)
	}
}

func TestProtectedRoute_ExpiredTokenCode(t *testing.T) {
	e := newTestEnv(t)
	registerOrg(t, e)

	expired, err := e.manager.Issue(time.Now().Add(-48*time.Hour), auth.TokenInput{
		UserID: "u1", OrgID: "o1", Role: "admin",
	})
	if err != nil {
		t.Fatalf("issue expired token: %v", err)
	}

	w := e.do(t, http.MethodGet, "/v1/users/me", expired, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	var body errorBody
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body.Code != auth.CodeExpiredToken {
		t.Fatalf("expected %s, got %q", auth.CodeExpiredToken, body.Code)
	}
}

func TestAdminRoute_RejectsEmployee(t *testing.T) {
	e := newTestEnv(t)
	registerOrg(t, e)

	adminToken, _ := login(t, e, "ada@acme.test", "supersecret")

	w := e.do(t, http.MethodPost, "/v1/users", adminToken, gin.H{
		"full_name": "Eve Employee",
		"email":     "eve@acme.test",
		"password":  "supersecret",
		"role":      "employee",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create user: status %d body %s", w.Code, w.Body.String())
	}

	empToken, role := login(t, e, "eve@acme.test", "supersecret")
	if role != "employee" {
		t.Fatalf("expected employee role, got %q", role)
	}

	w = e.do(t, http.MethodGet, "/v1/organizations/me/statistics", empToken, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for employee, got %d body %s", w.Code, w.Body.String())
	}
	w = e.do(t, http.MethodGet, "/v1/users/me/statistics", empToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("own statistics: status %d body %s", w.Code, w.Body.String())
	}
}
