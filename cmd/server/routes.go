package main

import (
	"github.com/gin-gonic/gin"
	"valora.backend/internal/interfaces/http/handlers"
	"valora.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler       *handlers.AuthHandler
	depositHandler    *handlers.DepositHandler
	walletHandler     *handlers.WalletHandler
	investmentHandler *handlers.InvestmentHandler
	withdrawalHandler *handlers.WithdrawalHandler
	userHandler       *handlers.UserHandler
	contactHandler    *handlers.ContactHandler
	adminHandler      *handlers.AdminHandler
	authMiddleware    gin.HandlerFunc
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/login", d.authHandler.Login)
		}

		// Plan routes (public)
		plans := v1.Group("/plans")
		{
			plans.GET("", d.investmentHandler.ListPlans)
		}

		// Company wallet routes (public)
		wallets := v1.Group("/wallets")
		{
			wallets.GET("", d.walletHandler.List)
		}

		// Contact form (public)
		v1.POST("/contact", d.contactHandler.Submit)

		// Deposit routes (protected)
		deposits := v1.Group("/deposits")
		deposits.Use(d.authMiddleware)
		{
			deposits.POST("", d.depositHandler.Create)
			deposits.GET("", d.depositHandler.List)
			deposits.GET("/:id", d.depositHandler.Get)
		}

		// Investment routes (protected)
		investments := v1.Group("/investments")
		investments.Use(d.authMiddleware)
		{
			investments.POST("", d.investmentHandler.Create)
			investments.GET("", d.investmentHandler.List)
		}

		// Withdrawal routes (protected)
		withdrawals := v1.Group("/withdrawals")
		withdrawals.Use(d.authMiddleware)
		{
			withdrawals.POST("", d.withdrawalHandler.Create)
			withdrawals.GET("", d.withdrawalHandler.List)
		}

		// Profile routes (protected)
		users := v1.Group("/users")
		users.Use(d.authMiddleware)
		{
			users.GET("/me", d.userHandler.Profile)
			users.GET("/me/balance", d.userHandler.Balance)
			users.GET("/me/transactions", d.userHandler.Transactions)
		}

		// Admin routes (protected)
		admin := v1.Group("/admin")
		admin.Use(d.authMiddleware, middleware.RequireAdmin())
		{
			admin.GET("/users", d.adminHandler.ListUsers)
			admin.PATCH("/users/:id/kyc", d.adminHandler.ReviewKyc)

			admin.GET("/deposits", d.adminHandler.ListDeposits)
			admin.POST("/deposits/:id/confirm", d.adminHandler.ConfirmDeposit)

			admin.PUT("/wallets", d.adminHandler.UpsertWallet)

			admin.GET("/withdrawals", d.adminHandler.ListWithdrawals)
			admin.POST("/withdrawals/:id/complete", d.adminHandler.CompleteWithdrawal)
			admin.POST("/withdrawals/:id/fail", d.adminHandler.FailWithdrawal)

			admin.POST("/reconcile", d.adminHandler.TriggerReconcile)
		}
	}
}
