package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"fintrack-platform/internal/audit"
	"fintrack-platform/internal/auth"
	"fintrack-platform/internal/employees"
	"fintrack-platform/internal/goals"
	"fintrack-platform/internal/loans"
	"fintrack-platform/internal/organization"
	"fintrack-platform/internal/profiles"
	"fintrack-platform/internal/repayments"
	"fintrack-platform/internal/savings"
	"fintrack-platform/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ResetTokens issues and redeems single-use password reset tokens.
// Satisfied by *auth.ResetStore.
type ResetTokens interface {
	Create(ctx context.Context, orgID, userID string) (string, error)
	Consume(ctx context.Context, token string) (orgID, userID string, err error)
}

// Handlers groups HTTP handlers for dependency injection.
// Keep these thin: parse/validate input, call internal services, return JSON.

type Handlers struct {
	Auth    *auth.Manager
	Limiter *auth.LoginLimiter
	Resets  ResetTokens

	// LogResetTokens permits writing issued reset tokens to the log.
	// Only non-production environments may set it; tokens grant a
	// password change for the account.
	LogResetTokens bool

	Orgs       *organization.Service
	Users      *employees.Service
	Profiles   *profiles.Service
	Savings    *savings.Service
	Loans      *loans.Service
	Repayments *repayments.Service
	Goals      *goals.Service

	// Audit is optional; admin mutations are recorded best-effort.
	Audit *audit.Service
}

// auditAdmin records an admin mutation. Audit failures are logged and
// swallowed; they never fail the request.
func (h Handlers) auditAdmin(c *gin.Context, orgID, message, targetUserID string) {
	if h.Audit == nil {
		return
	}
	ctx := c.Request.Context()
	actor, _ := auth.UserID(ctx)
	role, _ := auth.Role(ctx)
	if err := h.Audit.LogAdminAction(ctx, orgID, actor, role, c.ClientIP(), message, targetUserID); err != nil {
		logger.FromGin(c).Warn("audit append failed", "err", err)
	}
}

// errorBody is the wire error envelope. The web client switches on the code
// field; EXPIREDTOKEN is the only code that forces a logout.
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, errorBody{Code: code, Message: message})
}

// writeDomainError maps service sentinel errors onto HTTP statuses.
// Unknown errors collapse to 500 without leaking internals.
func writeDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, employees.ErrInvalidCredentials):
		writeError(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid email or password")
	case errors.Is(err, employees.ErrEmailTaken):
		writeError(c, http.StatusConflict, "EMAIL_TAKEN", "email already registered")
	case errors.Is(err, loans.ErrInvalidTransition):
		writeError(c, http.StatusConflict, "INVALID_TRANSITION", "loan status change not allowed")
	case errors.Is(err, loans.ErrNotRepayable):
		writeError(c, http.StatusConflict, "LOAN_NOT_REPAYABLE", "loan is not open for repayment")
	case errors.Is(err, profiles.ErrProfileExists):
		writeError(c, http.StatusConflict, "PROFILE_EXISTS", "user already has a profile")
	case errors.Is(err, employees.ErrNotFound),
		errors.Is(err, organization.ErrNotFound),
		errors.Is(err, profiles.ErrNotFound),
		errors.Is(err, savings.ErrNotFound),
		errors.Is(err, loans.ErrNotFound),
		errors.Is(err, repayments.ErrNotFound),
		errors.Is(err, goals.ErrNotFound):
		writeError(c, http.StatusNotFound, "NOT_FOUND", "resource not found")
	case errors.Is(err, employees.ErrInvalidArgument),
		errors.Is(err, organization.ErrInvalidArgument),
		errors.Is(err, profiles.ErrInvalidArgument),
		errors.Is(err, savings.ErrInvalidArgument),
		errors.Is(err, loans.ErrInvalidArgument),
		errors.Is(err, repayments.ErrInvalidArgument),
		errors.Is(err, goals.ErrInvalidArgument):
		writeError(c, http.StatusBadRequest, "INVALID_ARGUMENT", "invalid request")
	default:
		logger.FromGin(c).Error("request failed", "err", err)
		writeError(c, http.StatusInternalServerError, "INTERNAL", "internal error")
	}
}

// identity pulls the verified token identity out of the request context.
// The token middleware guarantees these are set on protected routes.
func identity(c *gin.Context) (userID, orgID string, ok bool) {
	ctx := c.Request.Context()
	userID, err := auth.UserID(ctx)
	if err != nil {
		writeError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing identity")
		return "", "", false
	}
	orgID, err = auth.OrgID(ctx)
	if err != nil {
		writeError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing organization")
		return "", "", false
	}
	return userID, orgID, true
}

/* ===================== AUTH ===================== */

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login checks credentials and returns a signed token.
// The response shape {ok, token, role} is what the web client persists.
func (h Handlers) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_ARGUMENT", "invalid json")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(c, http.StatusBadRequest, "INVALID_ARGUMENT", "email and password required")
		return
	}

	ctx := c.Request.Context()
	allowed, err := h.Limiter.Allow(ctx, c.ClientIP(), req.Email)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	if !allowed {
		writeError(c, http.StatusTooManyRequests, "TOO_MANY_ATTEMPTS", "too many login attempts, try again later")
		return
	}

	u, err := h.Users.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	token, err := h.Auth.Issue(time.Now(), auth.TokenInput{
		UserID: u.ID,
		OrgID:  u.OrgID,
		Name:   u.FullName,
		Role:   string(u.Role),
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}

	if err := h.Limiter.Reset(ctx, c.ClientIP(), req.Email); err != nil {
		logger.FromGin(c).Warn("rate limit reset failed", "err", err)
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "token": token, "role": string(u.Role)})
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPassword issues a reset token for a known account. The response is
// identical for unknown emails so the endpoint cannot be used to probe
// accounts. Delivery is out of band.
func (h Handlers) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		writeError(c, http.StatusBadRequest, "INVALID_ARGUMENT", "email required")
		return
	}

	ctx := c.Request.Context()
	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, employees.ErrNotFound) {
			c.JSON(http.StatusOK, gin.H{"ok": true})
			return
		}
		writeDomainError(c, err)
		return
	}

	token, err := h.Resets.Create(ctx, u.OrgID, u.ID)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	// The token is a credential; production logs record only the issuance.
	if h.LogResetTokens {
		logger.FromGin(c).Info("password reset token issued", "user_id", u.ID, "token", token)
	} else {
		logger.FromGin(c).Info("password reset token issued", "user_id", u.ID)
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type resetPasswordRequest struct {
	Password string `json:"password"`
}

// ResetPassword consumes the token from the URL path; tokens are single use.
func (h Handlers) ResetPassword(c *gin.Context) {
	token := c.Param("token")
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil || token == "" {
		writeError(c, http.StatusBadRequest, "INVALID_ARGUMENT", "token and password required")
		return
	}

	ctx := c.Request.Context()
	orgID, userID, err := h.Resets.Consume(ctx, token)
	if err != nil {
		if errors.Is(err, auth.ErrResetTokenInvalid) {
			writeError(c, http.StatusBadRequest, "RESET_TOKEN_INVALID", "reset token is invalid or expired")
			return
		}
		writeDomainError(c, err)
		return
	}

	if err := h.Users.SetPassword(ctx, orgID, userID, req.Password); err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
