package httpapi

import (
	"net/http"

	"fintrack-platform/internal/loans"
	"fintrack-platform/internal/organization"

	"github.com/gin-gonic/gin"
)

/* ===================== ORGANIZATIONS ===================== */

type registerOrganizationRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`

	AdminFullName string `json:"admin_full_name"`
	AdminEmail    string `json:"admin_email"`
	AdminPassword string `json:"admin_password"`
}

// RegisterOrganization is the public sign-up endpoint. It creates the
// organization and its first admin atomically; the admin logs in afterwards.
func (h Handlers) RegisterOrganization(c *gin.Context) {
	var req registerOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_ARGUMENT", "invalid json")
		return
	}
	org, admin, err := h.Orgs.Register(c.Request.Context(), organization.RegisterInput{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		AdminFullName: req.AdminFullName,
		AdminEmail:    req.AdminEmail,
		AdminPassword: req.AdminPassword,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "organization": org, "admin": admin})
}

func (h Handlers) GetMyOrganization(c *gin.Context) {
	_, orgID, ok := identity(c)
	if !ok {
		return
	}
	org, err := h.Orgs.Get(c.Request.Context(), orgID)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, org)
}

type updateOrganizationRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// UpdateOrganization only ever touches the caller's own organization; the
// path id must match the token's org claim.
func (h Handlers) UpdateOrganization(c *gin.Context) {
	_, orgID, ok := identity(c)
	if !ok {
		return
	}
	if id := c.Param("id"); id != orgID {
		writeError(c, http.StatusForbidden, "FORBIDDEN", "cannot modify another organization")
		return
	}
	var req updateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_ARGUMENT", "invalid json")
		return
	}
	org, err := h.Orgs.Update(c.Request.Context(), orgID, organization.UpdateInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	h.auditAdmin(c, orgID, "organization settings updated", "")
	c.JSON(http.StatusOK, org)
}

// OrganizationStatistics assembles the admin dashboard aggregate from the
// per-domain services.
func (h Handlers) OrganizationStatistics(c *gin.Context) {
	_, orgID, ok := identity(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	users, err := h.Users.List(ctx, orgID)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	saved, err := h.Savings.TotalMinorByOrg(ctx, orgID)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	outstanding, err := h.Loans.OutstandingMinorByOrg(ctx, orgID)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	repaid, err := h.Repayments.TotalMinorByOrg(ctx, orgID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	// Total loaned counts principal of every loan that left pending review.
	allLoans, err := h.Loans.ListByOrg(ctx, orgID)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	var loaned int64
	for _, l := range allLoans {
		switch l.Status {
		case loans.StatusApproved, loans.StatusPaid:
			loaned += l.PrincipalMinor
		}
	}

	c.JSON(http.StatusOK, organization.Statistics{
		EmployeeCount:         len(users),
		TotalSavingsMinor:     saved,
		TotalLoanedMinor:      loaned,
		TotalRepaidMinor:      repaid,
		OutstandingLoansMinor: outstanding,
	})
}
