package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"qtirender/internal/domain"
	"qtirender/internal/handler"
	"qtirender/internal/middleware"
	"qtirender/internal/service"
)

// Handlers groups the HTTP handlers mounted by Setup.
type Handlers struct {
	Render   *handler.RenderHandler
	Item     *handler.ItemHandler
	Response *handler.ResponseHandler
	Health   *handler.HealthHandler
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(authSvc service.AuthService, h Handlers, allowedOrigins []string) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	protected.POST("/render", h.Render.Render)

	author := middleware.RequireRole(domain.RoleAuthor)
	learner := middleware.RequireRole(domain.RoleLearner)

	items := protected.Group("/items")
	items.POST("", author, h.Item.Create)
	items.GET("", h.Item.List)
	items.GET("/:id", h.Item.GetByID)
	items.GET("/:id/snapshot", h.Item.Snapshot)
	items.GET("/:id/snapshot/content", h.Item.SnapshotContent)
	items.POST("/:id/rerender", author, h.Item.Rerender)
	items.DELETE("/:id", author, h.Item.Delete)

	// Responses
	items.POST("/:id/responses", learner, h.Response.Submit)
	items.GET("/:id/responses", author, h.Response.List)
	items.GET("/:id/responses/export", author, h.Response.Export)

	return r
}
