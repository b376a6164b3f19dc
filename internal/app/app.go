package app

import (
	"github.com/gin-gonic/gin"
	"github.com/ikkim/brandsite-backend/config"
	"github.com/ikkim/brandsite-backend/internal/app/controller"
	"github.com/ikkim/brandsite-backend/internal/app/repository"
	"github.com/ikkim/brandsite-backend/internal/app/service"
	"github.com/ikkim/brandsite-backend/internal/middleware"
	"github.com/ikkim/brandsite-backend/internal/router"
	"github.com/ikkim/brandsite-backend/internal/storage"
	ws "github.com/ikkim/brandsite-backend/internal/websocket"
	"github.com/ikkim/brandsite-backend/pkg/redis"
	"github.com/ikkim/brandsite-backend/pkg/util"
	"gorm.io/gorm"
)

// App is the assembled HTTP service.
type App struct {
	Engine   *gin.Engine
	Hub      *ws.Hub
	Auth     service.AuthService
	Contacts service.ContactService
	Tokens   *util.TokenService
}

// New wires repositories, services and controllers over db and store.
// Redis backed features switch on when a Redis client is installed.
func New(cfg *config.Config, db *gorm.DB, store storage.BlobStore) *App {
	hub := ws.NewHub()

	var (
		denylist service.TokenDenylist
		revoked  middleware.RevocationChecker
		tickets  ws.TicketStore = ws.NewMemoryTicketStore(ws.TicketTTL)
	)
	if redis.Enabled() {
		denylist = redis.Denylist{}
		revoked = redis.Denylist{}
		tickets = ws.NewRedisTicketStore(ws.TicketTTL)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	partnershipRepo := repository.NewPartnershipRepository(db)
	categoryPartnershipRepo := repository.NewCategoryPartnershipRepository(db)
	communityRepo := repository.NewCommunityRepository(db)
	contactRepo := repository.NewContactRepository(db)

	// Services
	tokens := util.NewTokenService(cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)
	uploads := service.NewUploadService(store, cfg.Storage.Folder, cfg.Storage.MaxUploadSize)
	authService := service.NewAuthService(userRepo, tokens, denylist)
	productService := service.NewProductService(productRepo, categoryRepo, uploads)
	categoryService := service.NewCategoryService(categoryRepo)
	partnershipService := service.NewPartnershipService(partnershipRepo, categoryPartnershipRepo, uploads)
	categoryPartnershipService := service.NewCategoryPartnershipService(categoryPartnershipRepo, cfg.Catalog.FallbackPartnershipCategoryID)
	communityService := service.NewCommunityService(communityRepo, uploads)
	contactService := service.NewContactService(contactRepo, hub)

	// Controllers
	controllers := router.Controllers{
		Auth:                controller.NewAuthController(authService, tokens, cfg.Server.Environment == "production"),
		Product:             controller.NewProductController(productService),
		Category:            controller.NewCategoryController(categoryService),
		Partnership:         controller.NewPartnershipController(partnershipService),
		CategoryPartnership: controller.NewCategoryPartnershipController(categoryPartnershipService),
		Community:           controller.NewCommunityController(communityService),
		Contact:             controller.NewContactController(contactService),
		Upload:              controller.NewUploadController(uploads),
		Event:               controller.NewEventController(hub, tickets, cfg.CORS.AllowedOrigins),
		Health:              controller.NewHealthController(db),
	}

	authMiddleware := middleware.NewAuthMiddleware(tokens, revoked, cfg.Server.LoginPath)

	return &App{
		Engine:   router.NewRouter(controllers, authMiddleware, cfg).Setup(),
		Hub:      hub,
		Auth:     authService,
		Contacts: contactService,
		Tokens:   tokens,
	}
}
