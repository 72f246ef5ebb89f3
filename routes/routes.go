package routes

import (
	"editorial-api/controllers"
	"editorial-api/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Editorial API is running",
				})
			})

			// Manuscript intake (no account needed to submit)
			public.POST("/submissions", controllers.CreateSubmission)

			// Reviewer magic-link surface: the token secret is the only
			// credential, so no session middleware sits in front.
			public.GET("/reviews/assignment", controllers.GetReviewAssignment)
			public.PUT("/reviews", controllers.RedeemReviewToken)

			// Token issuance is gated by the pre-shared editorial key
			// inside the handler, not by session identity.
			public.POST("/reviews", controllers.IssueReviewToken)
			public.GET("/reviews", controllers.ListReviewTokens)

			// Readership counters
			public.POST("/metrics/:slug/view", controllers.RecordView)
			public.POST("/metrics/:slug/download", controllers.RecordDownload)
		}

		// Reads that redact based on who is asking: anonymous callers get
		// the public projection, owners and editors the full record.
		visible := v1.Group("")
		visible.Use(middleware.OptionalAuthMiddleware())
		{
			visible.GET("/submissions/:id", controllers.GetSubmission)
			// With ?email= this is the public tracking dashboard; without
			// it, the editors' full listing (checked in the handler).
			visible.GET("/submissions", controllers.GetSubmissions)
		}

		// Protected routes (require verified identity)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.PATCH("/submissions/:id", controllers.UpdateSubmission)
		}
	}
}
