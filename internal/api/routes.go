package api

import (
	"net/http"

	"fitplan/training-planner/internal/service"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires every handler into the router. The public share
// route is the only endpoint outside the auth middleware.
func SetupRoutes(
	router *gin.Engine,
	authService service.AuthService,
	userService service.UserService,
	plannerService service.PlannerService,
	exerciseService service.ExerciseService,
	shareService service.ShareService,
	exportService service.ExportService,
) {
	authHandler := NewAuthHandler(authService)
	userHandler := NewUserHandler(userService)
	weekHandler := NewWeekHandler(plannerService)
	trainingHandler := NewTrainingHandler(plannerService)
	exerciseHandler := NewExerciseHandler(exerciseService)
	shareHandler := NewShareHandler(shareService)
	exportHandler := NewExportHandler(exportService)

	authMiddleware := AuthMiddleware(authService)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/auth/login", authHandler.Login)

		// public share resolution, no auth
		apiV1.GET("/public/share/:token", shareHandler.Resolve)
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", authHandler.Me)

		// --- User Management ---
		userGroup := protected.Group("/users")
		{
			// provisioning answers 400 on every failure, including
			// permission denials, so no RequireManageUsers here
			userGroup.POST("", userHandler.Provision)
			userGroup.GET("", RequireManageUsers(), userHandler.List)
			userGroup.PUT("/:id", RequireManageUsers(), userHandler.Update)
			userGroup.DELETE("/:id", RequireManageUsers(), userHandler.Deactivate)
		}

		// --- Training Weeks ---
		weekGroup := protected.Group("/weeks")
		{
			weekGroup.POST("", weekHandler.Create)
			weekGroup.GET("", weekHandler.List)
			weekGroup.GET("/full", weekHandler.ListFull)
			weekGroup.GET("/schedule", weekHandler.Schedule)
			weekGroup.GET("/alerts", weekHandler.Alerts)
			weekGroup.PUT("/:id", weekHandler.Update)
			weekGroup.DELETE("/:id", weekHandler.Delete)

			weekGroup.POST("/:weekId/trainings", trainingHandler.Create)
		}

		// --- Week Focuses ---
		focusGroup := protected.Group("/focuses")
		{
			focusGroup.POST("", weekHandler.CreateFocus)
			focusGroup.GET("", weekHandler.ListFocuses)
			focusGroup.PUT("/:id", weekHandler.UpdateFocus)
			focusGroup.DELETE("/:id", weekHandler.DeleteFocus)
		}

		// --- Trainings ---
		trainingGroup := protected.Group("/trainings")
		{
			trainingGroup.GET("/:id", trainingHandler.Get)
			trainingGroup.PUT("/:id", trainingHandler.Update)
			trainingGroup.DELETE("/:id", trainingHandler.Delete)

			trainingGroup.POST("/:id/blocks", trainingHandler.AddBlock)
			trainingGroup.PUT("/:id/blocks/:blockId", trainingHandler.UpdateBlock)
			trainingGroup.DELETE("/:id/blocks/:blockId", trainingHandler.DeleteBlock)

			trainingGroup.POST("/:id/prescriptions", trainingHandler.AddPrescription)
			trainingGroup.PUT("/:id/prescriptions/:prescriptionId", trainingHandler.UpdatePrescription)
			trainingGroup.DELETE("/:id/prescriptions/:prescriptionId", trainingHandler.DeletePrescription)

			trainingGroup.POST("/:id/share", shareHandler.Enable)
			trainingGroup.DELETE("/:id/share", shareHandler.Disable)
		}

		// --- Exercise Library ---
		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.POST("", exerciseHandler.Create)
			exerciseGroup.GET("", exerciseHandler.List)
			exerciseGroup.GET("/:id", exerciseHandler.Get)
			exerciseGroup.PUT("/:id", exerciseHandler.Update)
			exerciseGroup.DELETE("/:id", exerciseHandler.Delete)
		}

		patternGroup := protected.Group("/movement-patterns")
		{
			patternGroup.POST("", exerciseHandler.CreatePattern)
			patternGroup.GET("", exerciseHandler.ListPatterns)
			patternGroup.PUT("/:id", exerciseHandler.UpdatePattern)
			patternGroup.DELETE("/:id", exerciseHandler.DeletePattern)
		}

		// --- Export ---
		protected.GET("/export", exportHandler.Export)
	}
}
