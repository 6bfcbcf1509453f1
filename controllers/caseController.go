package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/L1nkStart/cgm-system-v1-sub000/handlers"
	"github.com/L1nkStart/cgm-system-v1-sub000/middlewares"
	"github.com/L1nkStart/cgm-system-v1-sub000/models"
)

// SetupCaseRoutes registers the case lifecycle routes. Every route requires
// a session; the service layer applies the state scoping per role.
func SetupCaseRoutes(router *gin.Engine, caseHandler *handlers.CaseHandler, paymentHandler *handlers.PaymentHandler) {
	cases := router.Group("/cases").Use(middlewares.SessionAuthMiddleware())
	{
		cases.GET("", caseHandler.ListCases)
		cases.POST("", caseHandler.CreateCase)
		cases.GET("/:case_id", caseHandler.GetCase)
		cases.PUT("/:case_id", caseHandler.UpdateCase)
		cases.DELETE("/:case_id", caseHandler.DeleteCase)

		cases.POST("/:case_id/audit", caseHandler.AuditCase)
		cases.POST("/:case_id/documents", caseHandler.UploadDocuments)
		cases.POST("/:case_id/pre-invoice", caseHandler.GeneratePreInvoice)
		cases.GET("/:case_id/pre-invoice", caseHandler.GetPreInvoice)
		cases.GET("/:case_id/history", caseHandler.GetHistory)

		cases.GET("/:case_id/payments", paymentHandler.ListCasePayments)
	}

	payments := router.Group("/payments").Use(
		middlewares.SessionAuthMiddleware(),
		middlewares.RoleAuthMiddleware(models.RoleJefeFinanciero, models.RoleSuperusuario, models.RoleAdministrador),
	)
	{
		payments.POST("", paymentHandler.CreatePayment)
		payments.GET("/:payment_id", paymentHandler.GetPayment)
		payments.PUT("/:payment_id", paymentHandler.UpdatePayment)
		payments.DELETE("/:payment_id", paymentHandler.DeletePayment)
	}
}
