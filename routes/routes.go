package routes

import (
	"esg-reporting-api/controllers"
	"esg-reporting-api/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			// Authentication
			public.POST("/login", controllers.Login)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "ESG Reporting API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// User profile
			protected.GET("/profile", controllers.GetProfile)
			protected.PUT("/change-password", controllers.ChangePassword)

			// Reference data
			protected.GET("/stakeholders", controllers.GetStakeholders)
			protected.POST("/stakeholders", middleware.RequireRole(3), controllers.CreateStakeholder) // 3 = admin
			protected.POST("/topics", middleware.RequireRole(3), controllers.CreateTopic)

			// Reports and their rating views
			reports := protected.Group("/reports")
			{
				reports.GET("", controllers.GetReports)
				reports.POST("", middleware.RequireRole(3), controllers.CreateReport)
				reports.GET("/:id/topics", controllers.GetReportTopics)

				// Analysts and admins submit rating batches
				reports.POST("/:id/submissions", middleware.RequireRole(1, 3), controllers.SubmitRatings) // 1 = analyst

				// Read-side views computed on demand from the rating store
				reports.GET("/:id/submissions/grouped", controllers.GetGroupedRatings)
				reports.GET("/:id/materiality-matrix", controllers.GetMaterialityMatrix)
			}

			// Submissions and single-rating maintenance
			protected.DELETE("/submissions/:id", middleware.RequireRole(1, 3), controllers.DeleteSubmission)
			protected.PATCH("/ratings/stakeholder/:id", middleware.RequireRole(1, 3), controllers.UpdateStakeholderRating)
			protected.PATCH("/ratings/topic/:id", middleware.RequireRole(1, 3), controllers.UpdateTopicRating)
		}
	}
}
