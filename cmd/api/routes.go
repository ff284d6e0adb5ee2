package main

import (
	"fintrack-platform/internal/httpapi"
	"fintrack-platform/internal/rbac"

	"github.com/gin-gonic/gin"
)

// registerRoutes wires HTTP routes to handlers.
// Keep this file free of business logic. Handlers delegate to internal modules.
func registerRoutes(r *gin.Engine, h httpapi.Handlers, authMW gin.HandlerFunc) {
	// public
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := r.Group("/v1")

	// AUTH routes (public)
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/login", h.Login)
		authGroup.POST("/forgot-password", h.ForgotPassword)
		authGroup.POST("/reset-password/:token", h.ResetPassword)
	}

	// Public sign-up: organization plus its first admin.
	v1.POST("/organizations/with-admin-account", h.RegisterOrganization)

	// protected API group
	api := v1.Group("")
	api.Use(authMW)
	api.Use(rbac.RequireOrganization())
	{
		// Self-service routes, any authenticated role.
		api.GET("/users/me", h.Me)
		api.GET("/users/me/statistics", h.MyStatistics)
		api.GET("/savings/me", h.ListMySavings)
		api.GET("/loans/me", h.ListMyLoans)
		api.POST("/loans/request", h.RequestLoan)
		api.GET("/repayments/me", h.ListMyRepayments)
		// Employees may repay their own loans; admins may repay any.
		api.POST("/repayments", h.CreateRepayment)
		api.GET("/organizations/me", h.GetMyOrganization)
		api.GET("/profiles/me", h.MyProfile)

		// Personal goals are private to their owner, including from admins.
		api.GET("/goals", h.ListMyGoals)
		api.POST("/goals", h.CreateGoal)
		api.GET("/goals/:id", h.GetGoal)
		api.PUT("/goals/:id", h.UpdateGoal)
		api.DELETE("/goals/:id", h.DeleteGoal)

		// Admin-only management routes.
		admin := api.Group("")
		admin.Use(rbac.RequireAnyRole(rbac.RoleAdmin))
		{
			admin.PUT("/organizations/:id", h.UpdateOrganization)
			admin.GET("/organizations/me/statistics", h.OrganizationStatistics)

			admin.POST("/users", h.CreateUser)
			admin.GET("/users", h.ListUsers)
			admin.GET("/users/:id", h.GetUser)
			admin.PUT("/users/:id", h.UpdateUser)
			admin.DELETE("/users/:id", h.DeleteUser)

			admin.POST("/profiles", h.CreateProfile)
			admin.GET("/profiles", h.ListProfiles)
			admin.PUT("/profiles/:id", h.UpdateProfile)
			admin.DELETE("/profiles/:id", h.DeleteProfile)

			admin.POST("/savings", h.CreateSaving)
			admin.GET("/savings", h.ListSavings)
			admin.PUT("/savings/:id", h.UpdateSaving)
			admin.DELETE("/savings/:id", h.DeleteSaving)

			admin.POST("/loans", h.CreateLoan)
			admin.GET("/loans", h.ListLoans)
			admin.GET("/loans/:id", h.GetLoan)
			admin.PUT("/loans/:id/status", h.UpdateLoanStatus)
			admin.DELETE("/loans/:id", h.DeleteLoan)
			admin.GET("/loans/:id/repayments", h.ListLoanRepayments)

			admin.GET("/repayments", h.ListRepayments)
		}
	}
}
