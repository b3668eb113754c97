package app

import (
	"medipublish_backend/docs"
	"medipublish_backend/internal/config"
	"medipublish_backend/internal/middleware"
	"medipublish_backend/internal/model"
	"medipublish_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c, cfg)
	a.registerMemberRoutes(router, c, repos, cfg)
	a.registerCreatorRoutes(router, c, cfg)
	a.registerAdminRoutes(router, c, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)

		// Catalog and published content are browsable without an account;
		// paid tiers resolve the identity when a token is present.
		public.GET("/cme/activities", c.activity.ListCatalog)
		public.GET("/content", c.content.ListContent)
		public.GET("/content/:id", middleware.OptionalAuthMiddleware(cfg), c.content.GetContent)
		public.GET("/plans", c.subscription.ListPlans)
		public.GET("/requirements", c.transcript.ListRequirements)

		public.GET("/community/posts", c.community.ListPosts)
		public.GET("/community/posts/:id", c.community.GetPost)

		// Stripe calls this; auth is the signature header.
		public.POST("/webhooks/stripe", c.subscription.StripeWebhook)
	}
}

func (a *App) registerMemberRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	member := router.Group("/api")
	member.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		member.GET("/me", c.auth.Me)
		member.PUT("/users/me", c.user.UpdateProfile)
		member.PUT("/users/me/password", c.user.ChangePassword)

		member.GET("/cme/activities/:id", c.activity.GetActivity)
		member.POST("/cme/activities/:id/submit", c.cme.SubmitAnswers)
		member.GET("/cme/activities/:id/attempts", c.cme.GetAttemptStatus)

		member.GET("/transcript", c.transcript.GetTranscript)
		member.GET("/transcript/requirements", c.transcript.CheckRequirements)
		member.POST("/transcript/export", c.transcript.ExportTranscript)

		member.GET("/subscription", c.subscription.GetCurrent)
		member.POST("/subscription", c.subscription.Subscribe)
		member.DELETE("/subscription", c.subscription.Cancel)

		member.POST("/community/posts", c.community.CreatePost)
		member.DELETE("/community/posts/:id", c.community.DeletePost)
		member.POST("/community/posts/:id/comments", c.community.AddComment)
		member.DELETE("/community/comments/:id", c.community.DeleteComment)
		member.POST("/community/posts/:id/upvote", c.community.UpvotePost)
	}
}

func (a *App) registerCreatorRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	creator := router.Group("/api/creator")
	creator.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Creator))
	{
		creator.POST("/activities", c.activity.CreateActivity)
		creator.GET("/activities/:id", c.activity.GetActivityDraft)
		creator.PUT("/activities/:id", c.activity.UpdateActivity)
		creator.POST("/activities/:id/questions", c.activity.AddQuestion)
		creator.PUT("/questions/:id", c.activity.UpdateQuestion)
		creator.DELETE("/questions/:id", c.activity.DeleteQuestion)

		creator.GET("/content", c.content.ListOwnContent)
		creator.POST("/content", c.content.CreateContent)
		creator.PUT("/content/:id", c.content.UpdateContent)
		creator.DELETE("/content/:id", c.content.DeleteContent)
		creator.PUT("/content/:id/submit", c.content.SubmitForReview)
		creator.POST("/content/video", c.content.UploadVideo)
	}
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/users", c.user.ListUsers)
		admin.PUT("/users/:id/license", c.user.ReviewLicense)
		admin.PUT("/users/:id/disable", c.user.DisableUser)

		admin.PUT("/activities/:id/publish", c.activity.PublishActivity)
		admin.PUT("/activities/:id/retire", c.activity.RetireActivity)

		admin.PUT("/content/:id/publish", c.content.PublishContent)

		admin.PUT("/requirements", c.transcript.SaveRequirement)

		admin.GET("/analytics", c.analytics.GetOverview)
	}
}
