package routes

import (
	"snap-report-api/controllers"

	"github.com/gin-gonic/gin"
)

// SetupRoutes registers the public intake endpoint and the admin API.
func SetupRoutes(router *gin.Engine,
	submission *controllers.SubmissionController,
	admin *controllers.AdminController,
	export *controllers.ExportController) {

	api := router.Group("/api")
	{
		api.POST("/submit", submission.Submit)

		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "ok",
				"message": "Snap Report API is running",
			})
		})

		adminGroup := api.Group("/admin")
		{
			adminGroup.GET("/submissions", admin.ListSubmissions)
			adminGroup.GET("/submissions/:id", admin.GetSubmission)
			adminGroup.PUT("/submissions/:id/status", admin.UpdateStatus)
			adminGroup.DELETE("/submissions/:id", admin.DeleteSubmission)
			adminGroup.GET("/stats", admin.GetStats)
			adminGroup.GET("/export", export.Export)
			adminGroup.GET("/export-detailed", export.ExportDetailed)
		}
	}
}
