package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/L1nkStart/cgm-system-v1-sub000/handlers"
	"github.com/L1nkStart/cgm-system-v1-sub000/middlewares"
	"github.com/L1nkStart/cgm-system-v1-sub000/models"
)

// SetupRecordRoutes registers the master-data routes: clients, patients,
// insurance holders and their relationships, baremos and users.
func SetupRecordRoutes(
	router *gin.Engine,
	clientHandler *handlers.ClientHandler,
	patientHandler *handlers.PatientHandler,
	holderHandler *handlers.InsuranceHolderHandler,
	baremoHandler *handlers.BaremoHandler,
	userHandler *handlers.UserHandler,
) {
	clients := router.Group("/clients").Use(middlewares.SessionAuthMiddleware())
	{
		clients.GET("", clientHandler.GetAllClients)
		clients.POST("", clientHandler.CreateClient)
		clients.GET("/:client_id", clientHandler.GetClient)
		clients.PUT("/:client_id", clientHandler.UpdateClient)
		clients.DELETE("/:client_id", clientHandler.DeleteClient)
	}

	patients := router.Group("/patients").Use(middlewares.SessionAuthMiddleware())
	{
		patients.GET("", patientHandler.GetAllPatients)
		patients.POST("", patientHandler.CreatePatient)
		patients.GET("/:patient_id", patientHandler.GetPatient)
		patients.PUT("/:patient_id", patientHandler.UpdatePatient)
		patients.DELETE("/:patient_id", patientHandler.DeletePatient)
		patients.GET("/:patient_id/relationships", holderHandler.ListPatientRelationships)
	}

	holders := router.Group("/insurance-holders").Use(middlewares.SessionAuthMiddleware())
	{
		holders.GET("", holderHandler.GetAllHolders)
		holders.POST("", holderHandler.CreateHolder)
		holders.GET("/:holder_id", holderHandler.GetHolder)
		holders.PUT("/:holder_id", holderHandler.UpdateHolder)
		holders.DELETE("/:holder_id", holderHandler.DeleteHolder)
	}

	relationships := router.Group("/holder-patient-relationships").Use(middlewares.SessionAuthMiddleware())
	{
		relationships.POST("", holderHandler.CreateRelationship)
		relationships.DELETE("/:relationship_id", holderHandler.DeleteRelationship)
	}

	baremos := router.Group("/baremos").Use(middlewares.SessionAuthMiddleware())
	{
		baremos.GET("", baremoHandler.GetAllBaremos)
		baremos.POST("", baremoHandler.CreateBaremo)
		baremos.GET("/:baremo_id", baremoHandler.GetBaremo)
		baremos.PUT("/:baremo_id", baremoHandler.UpdateBaremo)
		baremos.DELETE("/:baremo_id", baremoHandler.DeleteBaremo)
	}

	// User management is restricted to the administrative roles; the
	// service re-checks on every write.
	users := router.Group("/users").Use(
		middlewares.SessionAuthMiddleware(),
		middlewares.RoleAuthMiddleware(models.RoleSuperusuario, models.RoleAdministrador),
	)
	{
		users.GET("", userHandler.GetAllUsers)
		users.POST("", userHandler.CreateUser)
		users.GET("/:user_id", userHandler.GetUser)
		users.PUT("/:user_id", userHandler.UpdateUser)
		users.DELETE("/:user_id", userHandler.DeleteUser)
	}
}
