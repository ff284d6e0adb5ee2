package httpapi

import (
	"errors"
	"net/http"
	"time"

	"fintrack-platform/internal/employees"
	"fintrack-platform/internal/profiles"

	"github.com/gin-gonic/gin"
)

/* ===================== PROFILES ===================== */

type createProfileRequest struct {
	UserID      string    `json:"user_id"`
	Position    string    `json:"position"`
	SalaryMinor int64     `json:"salary_minor"`
	Currency    string    `json:"currency"`
	HireDate    time.Time `json:"hire_date"`
}

func (h Handlers) CreateProfile(c *gin.Context) {
	_, orgID, ok := identity(c)
	if !ok {
		return
	}
	var req createProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_ARGUMENT", "invalid json")
		return
	}

	// The profile must point at a real account in this org.
	if _, err := h.Users.Get(c.Request.Context(), orgID, req.UserID); err != nil {
		writeDomainError(c, err)
		return
	}

	p, err := h.Profiles.Create(c.Request.Context(), orgID, profiles.CreateInput{
		UserID:      req.UserID,
		Position:    req.Position,
		SalaryMinor: req.SalaryMinor,
		Currency:    req.Currency,
		HireDate:    req.HireDate,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	h.auditAdmin(c, orgID, "employee profile created", req.UserID)
	c.JSON(http.StatusCreated, p)
}

func (h Handlers) ListProfiles(c *gin.Context) {
	_, orgID, ok := identity(c)
	if !ok {
		return
	}
	list, err := h.Profiles.ListByOrg(c.Request.Context(), orgID)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profiles": list})
}

// MyProfile returns the caller's employment profile with the account embedded,
// which is the shape the employee profile page renders.
func (h Handlers) MyProfile(c *gin.Context) {
	userID, orgID, ok := identity(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	p, err := h.Profiles.GetByUser(ctx, orgID, userID)
	if err != nil {
		if errors.Is(err, profiles.ErrNotFound) {
			writeError(c, http.StatusNotFound, "PROFILE_NOT_FOUND", "no profile on record")
			return
		}
		writeDomainError(c, err)
		return
	}
	u, err := h.Users.Get(ctx, orgID, userID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, struct {
		profiles.Profile
		User employees.User `json:"user"`
	}{Profile: p, User: u})
}

type updateProfileRequest struct {
	Position    string    `json:"position"`
	SalaryMinor int64     `json:"salary_minor"`
	Currency    string    `json:"currency"`
	HireDate    time.Time `json:"hire_date"`
}

func (h Handlers) UpdateProfile(c *gin.Context) {
	_, orgID, ok := identity(c)
	if !ok {
		return
	}
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_ARGUMENT", "invalid json")
		return
	}
	p, err := h.Profiles.Update(c.Request.Context(), orgID, c.Param("id"), profiles.UpdateInput{
		Position:    req.Position,
		SalaryMinor: req.SalaryMinor,
		Currency:    req.Currency,
		HireDate:    req.HireDate,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	h.auditAdmin(c, orgID, "employee profile updated", p.UserID)
	c.JSON(http.StatusOK, p)
}

func (h Handlers) DeleteProfile(c *gin.Context) {
	_, orgID, ok := identity(c)
	if !ok {
		return
	}
	if err := h.Profiles.Delete(c.Request.Context(), orgID, c.Param("id")); err != nil {
		writeDomainError(c, err)
		return
	}
	h.auditAdmin(c, orgID, "employee profile deleted", "")
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
