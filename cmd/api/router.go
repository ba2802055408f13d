package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"contentstudio-backend/internal/infrastructure/realtime"
	"contentstudio-backend/internal/shared/middleware"
	"contentstudio-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	auth := middleware.AuthMiddleware(c.JWTManager)
	genLimit := middleware.GenerationRateLimit(c.Config.Generation.RequestsPerMinute)

	v1 := router.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", healthCheckHandler(c))

		// Change feed (SSE). Auth happens via token query in dashboards
		// that cannot set headers on EventSource, so the stream carries
		// no user data: events are table names only.
		v1.GET("/stream", realtime.NewStreamHandler(c.Feed))

		setupAuthRoutes(v1, c, auth)
		setupUserRoutes(v1, c, auth)
		setupBlogRoutes(v1, c, auth, genLimit)
		setupSocialRoutes(v1, c, auth, genLimit)
		setupListingRoutes(v1, c, auth, genLimit)
		setupSEORoutes(v1, c, auth, genLimit)
		setupWebsiteRoutes(v1, c, auth, genLimit)
		setupAuditRoutes(v1, c, auth, genLimit)
		setupImageRoutes(v1, c, auth, genLimit)
		setupTeamRoutes(v1, c, auth)
		setupBrandRoutes(v1, c, auth)
		setupActivityRoutes(v1, c, auth)
	}

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container, auth gin.HandlerFunc) {
	group := v1.Group("/auth")
	{
		group.POST("/register", c.UserHandler.Register)
		group.POST("/login", c.UserHandler.Login)
		group.POST("/refresh", c.UserHandler.Refresh)
		group.POST("/logout", auth, c.UserHandler.Logout)
	}
}

// ========================================
// USER ROUTES
// ========================================
func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container, auth gin.HandlerFunc) {
	group := v1.Group("/users")
	group.Use(auth)
	{
		group.GET("/me", c.UserHandler.GetProfile)
		group.PUT("/me", c.UserHandler.UpdateProfile)
		group.PUT("/me/password", c.UserHandler.ChangePassword)
	}
}

// ========================================
// CONTENT ROUTES
// ========================================
// Every content domain shares the same route shape: generate (rate
// limited), save/discard the preview, then plain CRUD over history.

func setupBlogRoutes(v1 *gin.RouterGroup, c *container.Container, auth, genLimit gin.HandlerFunc) {
	group := v1.Group("/blog")
	group.Use(auth)
	{
		group.POST("/generate", genLimit, c.BlogHandler.Generate)
		group.POST("/save", c.BlogHandler.Save)
		group.POST("/discard", c.BlogHandler.Discard)
		group.GET("", c.BlogHandler.List)
		group.GET("/state", c.BlogHandler.State)
		group.GET("/:id", c.BlogHandler.Get)
		group.DELETE("/:id", c.BlogHandler.Delete)
	}
}

func setupSocialRoutes(v1 *gin.RouterGroup, c *container.Container, auth, genLimit gin.HandlerFunc) {
	group := v1.Group("/social")
	group.Use(auth)
	{
		group.POST("/generate", genLimit, c.SocialHandler.Generate)
		group.POST("/save", c.SocialHandler.Save)
		group.POST("/discard", c.SocialHandler.Discard)
		group.GET("", c.SocialHandler.List)
		group.GET("/state", c.SocialHandler.State)
		group.DELETE("/:id", c.SocialHandler.Delete)
	}
}

func setupListingRoutes(v1 *gin.RouterGroup, c *container.Container, auth, genLimit gin.HandlerFunc) {
	group := v1.Group("/listings")
	group.Use(auth)
	{
		group.POST("/generate", genLimit, c.ListingHandler.Generate)
		group.POST("/save", c.ListingHandler.Save)
		group.POST("/discard", c.ListingHandler.Discard)
		group.GET("", c.ListingHandler.List)
		group.GET("/state", c.ListingHandler.State)
		group.DELETE("/:id", c.ListingHandler.Delete)
	}
}

func setupSEORoutes(v1 *gin.RouterGroup, c *container.Container, auth, genLimit gin.HandlerFunc) {
	group := v1.Group("/seo")
	group.Use(auth)
	{
		group.POST("/analyze", genLimit, c.SEOHandler.Analyze)
		group.POST("/save", c.SEOHandler.Save)
		group.POST("/discard", c.SEOHandler.Discard)
		group.GET("", c.SEOHandler.List)
		group.GET("/state", c.SEOHandler.State)
		group.GET("/:id", c.SEOHandler.Get)
		group.DELETE("/:id", c.SEOHandler.Delete)
	}
}

func setupWebsiteRoutes(v1 *gin.RouterGroup, c *container.Container, auth, genLimit gin.HandlerFunc) {
	group := v1.Group("/websites")
	group.Use(auth)
	{
		group.POST("/generate", genLimit, c.WebsiteHandler.Generate)
		group.POST("/save", c.WebsiteHandler.Save)
		group.POST("/discard", c.WebsiteHandler.Discard)
		group.GET("", c.WebsiteHandler.List)
		group.GET("/state", c.WebsiteHandler.State)
		group.GET("/:id", c.WebsiteHandler.Get)
		group.DELETE("/:id", c.WebsiteHandler.Delete)
	}
}

func setupAuditRoutes(v1 *gin.RouterGroup, c *container.Container, auth, genLimit gin.HandlerFunc) {
	group := v1.Group("/audits")
	group.Use(auth)
	{
		group.POST("/run", genLimit, c.AuditHandler.Run)
		group.POST("/save", c.AuditHandler.Save)
		group.POST("/discard", c.AuditHandler.Discard)
		group.GET("", c.AuditHandler.List)
		group.GET("/state", c.AuditHandler.State)
		group.GET("/:id", c.AuditHandler.Get)
		group.DELETE("/:id", c.AuditHandler.Delete)
	}
}

func setupImageRoutes(v1 *gin.RouterGroup, c *container.Container, auth, genLimit gin.HandlerFunc) {
	group := v1.Group("/images")
	group.Use(auth)
	{
		group.POST("/generate", genLimit, c.ImageHandler.Generate)
		group.POST("/save", c.ImageHandler.Save)
		group.POST("/discard", c.ImageHandler.Discard)
		group.GET("", c.ImageHandler.List)
		group.GET("/state", c.ImageHandler.State)
		group.DELETE("/:id", c.ImageHandler.Delete)
	}
}

// ========================================
// COLLABORATION ROUTES
// ========================================
func setupTeamRoutes(v1 *gin.RouterGroup, c *container.Container, auth gin.HandlerFunc) {
	teams := v1.Group("/teams")
	teams.Use(auth)
	{
		teams.POST("", c.TeamHandler.Create)
		teams.GET("", c.TeamHandler.List)
		teams.GET("/:id", c.TeamHandler.Get)
		teams.POST("/:id/invitations", c.TeamHandler.Invite)
		teams.DELETE("/:id/members/:userId", c.TeamHandler.RemoveMember)
	}

	invitations := v1.Group("/invitations")
	invitations.Use(auth)
	{
		invitations.GET("", c.TeamHandler.ListInvitations)
		invitations.POST("/:id/accept", c.TeamHandler.Accept)
		invitations.POST("/:id/reject", c.TeamHandler.Reject)
	}
}

func setupBrandRoutes(v1 *gin.RouterGroup, c *container.Container, auth gin.HandlerFunc) {
	group := v1.Group("/brand")
	group.Use(auth)
	{
		group.PUT("", c.BrandHandler.Upsert)
		group.GET("", c.BrandHandler.Get)
		group.POST("/logo", c.BrandHandler.UploadLogo)
		group.DELETE("", c.BrandHandler.Delete)
	}
}

func setupActivityRoutes(v1 *gin.RouterGroup, c *container.Container, auth gin.HandlerFunc) {
	group := v1.Group("/activity")
	group.Use(auth)
	{
		group.GET("", c.ActivityHandler.History)
		group.GET("/export", c.ActivityHandler.Export)
	}
}

// ========================================
// HEALTH CHECK
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
			"services":  gin.H{},
		}
		services := health["services"].(gin.H)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		dbStatus := "ok"
		if err := appCtx.DB.HealthCheck(ctx); err != nil {
			dbStatus = "unavailable"
			health["status"] = "degraded"
		}
		services["database"] = dbStatus

		redisStatus := "ok"
		if err := appCtx.Redis.HealthCheck(ctx); err != nil {
			redisStatus = "unavailable"
			health["status"] = "degraded"
		}
		services["redis"] = redisStatus

		c.JSON(200, health)
	}
}
