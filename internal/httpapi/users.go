package httpapi

import (
	"net/http"

	"fintrack-platform/internal/employees"

	"github.com/gin-gonic/gin"
)

/* ===================== USERS ===================== */

type createUserRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (h Handlers) CreateUser(c *gin.Context) {
	_, orgID, ok := identity(c)
	if !ok {
		return
	}
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_ARGUMENT", "invalid json")
		return
	}
	u, err := h.Users.Create(c.Request.Context(), orgID, employees.CreateInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	h.auditAdmin(c, orgID, "employee account created", u.ID)
	c.JSON(http.StatusCreated, u)
}

func (h Handlers) ListUsers(c *gin.Context) {
	_, orgID, ok := identity(c)
	if !ok {
		return
	}
	users, err := h.Users.List(c.Request.Context(), orgID)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (h Handlers) GetUser(c *gin.Context) {
	_, orgID, ok := identity(c)
	if !ok {
		return
	}
	u, err := h.Users.Get(c.Request.Context(), orgID, c.Param("id"))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

type updateUserRequest struct {
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	Status   string `json:"status"`
}

func (h Handlers) UpdateUser(c *gin.Context) {
	_, orgID, ok := identity(c)
	if !ok {
		return
	}
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_ARGUMENT", "invalid json")
		return
	}
	u, err := h.Users.Update(c.Request.Context(), orgID, c.Param("id"), employees.UpdateInput{
		FullName: req.FullName,
		Role:     req.Role,
		Status:   req.Status,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h Handlers) DeleteUser(c *gin.Context) {
	userID, orgID, ok := identity(c)
	if !ok {
		return
	}
	id := c.Param("id")
	if id == userID {
		writeError(c, http.StatusConflict, "SELF_DELETE", "cannot delete your own account")
		return
	}
	if err := h.Users.Delete(c.Request.Context(), orgID, id); err != nil {
		writeDomainError(c, err)
		return
	}
	h.auditAdmin(c, orgID, "employee account deleted", id)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Me returns the authenticated user's own record.
func (h Handlers) Me(c *gin.Context) {
	userID, orgID, ok := identity(c)
	if !ok {
		return
	}
	u, err := h.Users.Get(c.Request.Context(), orgID, userID)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// MyStatistics returns the authenticated user's personal dashboard numbers.
func (h Handlers) MyStatistics(c *gin.Context) {
	userID, orgID, ok := identity(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	saved, err := h.Savings.TotalMinorByUser(ctx, orgID, userID)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	outstanding, err := h.Loans.OutstandingMinorByUser(ctx, orgID, userID)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	repaid, err := h.Repayments.TotalMinorByUser(ctx, orgID, userID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_savings_minor":     saved,
		"outstanding_loans_minor": outstanding,
		"total_repaid_minor":      repaid,
	})
}
