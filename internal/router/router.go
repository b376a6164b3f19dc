package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/brandsite-backend/config"
	"github.com/ikkim/brandsite-backend/internal/app/controller"
	"github.com/ikkim/brandsite-backend/internal/middleware"
)

// Controllers bundles every HTTP handler set the router mounts.
type Controllers struct {
	Auth                *controller.AuthController
	Product             *controller.ProductController
	Category            *controller.CategoryController
	Partnership         *controller.PartnershipController
	CategoryPartnership *controller.CategoryPartnershipController
	Community           *controller.CommunityController
	Contact             *controller.ContactController
	Upload              *controller.UploadController
	Event               *controller.EventController
	Health              *controller.HealthController
}

type Router struct {
	controllers    Controllers
	authMiddleware *middleware.AuthMiddleware
	config         *config.Config
}

func NewRouter(controllers Controllers, authMiddleware *middleware.AuthMiddleware, cfg *config.Config) *Router {
	return &Router{
		controllers:    controllers,
		authMiddleware: authMiddleware,
		config:         cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()
	router.MaxMultipartMemory = r.config.Storage.MaxUploadSize

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	ctrl := r.controllers
	admin := r.authMiddleware.Admin()
	guarded := func(h gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, admin...), h)
	}

	router.GET("/health", ctrl.Health.Health)
	router.GET("/metrics", guarded(middleware.MetricsHandler())...)

	auth := router.Group("/auth")
	{
		auth.POST("/register", ctrl.Auth.Register)
		auth.POST("/login",
			middleware.RateLimit("login", r.config.RateLimit.LoginPerMinute, time.Minute),
			ctrl.Auth.Login,
		)
		auth.POST("/refresh", ctrl.Auth.Refresh)
		auth.POST("/logout", ctrl.Auth.Logout)
		auth.GET("/me", guarded(ctrl.Auth.GetMe)...)
	}

	products := router.Group("/product")
	{
		products.GET("", ctrl.Product.GetAllProducts)
		products.GET("/:id", ctrl.Product.GetProductByID)
		products.POST("", guarded(ctrl.Product.CreateProduct)...)
		products.PUT("/:id", guarded(ctrl.Product.UpdateProduct)...)
		products.DELETE("/:id", guarded(ctrl.Product.DeleteProduct)...)
	}

	categories := router.Group("/category")
	{
		categories.GET("", ctrl.Category.GetAllCategories)
		categories.GET("/:id", ctrl.Category.GetCategoryByID)
		categories.POST("", guarded(ctrl.Category.CreateCategory)...)
		categories.PUT("/:id", guarded(ctrl.Category.UpdateCategory)...)
		categories.DELETE("/:id", guarded(ctrl.Category.DeleteCategory)...)
	}

	partnerships := router.Group("/partnership")
	{
		partnerships.GET("", ctrl.Partnership.GetAllPartnerships)
		partnerships.GET("/:id", ctrl.Partnership.GetPartnershipByID)
		partnerships.POST("", guarded(ctrl.Partnership.CreatePartnership)...)
		partnerships.PUT("/:id", guarded(ctrl.Partnership.UpdatePartnership)...)
		partnerships.DELETE("/:id", guarded(ctrl.Partnership.DeletePartnership)...)
	}

	categoryPartnerships := router.Group("/categorypartnership")
	{
		categoryPartnerships.GET("", ctrl.CategoryPartnership.GetAll)
		categoryPartnerships.GET("/:id", ctrl.CategoryPartnership.GetByID)
		categoryPartnerships.POST("", guarded(ctrl.CategoryPartnership.Create)...)
		categoryPartnerships.PUT("/:id", guarded(ctrl.CategoryPartnership.Update)...)
		categoryPartnerships.DELETE("/:id", guarded(ctrl.CategoryPartnership.Delete)...)
	}

	community := router.Group("/community")
	{
		community.GET("", ctrl.Community.GetAll)
		community.GET("/:id", ctrl.Community.GetByID)
		community.POST("", guarded(ctrl.Community.Create)...)
		community.DELETE("/:id", guarded(ctrl.Community.Delete)...)
	}

	contacts := router.Group("/contact")
	{
		contacts.POST("",
			middleware.RateLimit("contact", r.config.RateLimit.ContactPerHour, time.Hour),
			ctrl.Contact.Create,
		)
		contacts.GET("", guarded(ctrl.Contact.GetAll)...)
		contacts.GET("/:id", guarded(ctrl.Contact.GetByID)...)
		contacts.PATCH("/:id", guarded(ctrl.Contact.MarkRead)...)
		contacts.DELETE("/:id", guarded(ctrl.Contact.Delete)...)
	}

	router.POST("/upload", guarded(ctrl.Upload.Upload)...)

	if ctrl.Event != nil {
		events := router.Group("/admin/events")
		{
			events.POST("/ticket", guarded(ctrl.Event.IssueTicket)...)
			// The socket handshake cannot carry headers; the ticket authenticates it.
			events.GET("/ws", ctrl.Event.Connect)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Vary", "Origin")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Request-ID, X-RateLimit-Limit, X-RateLimit-Remaining, Retry-After")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
