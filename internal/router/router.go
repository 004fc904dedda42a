package router

import (
	"time"

	"posgate/internal/config"
	"posgate/internal/handler"
	"posgate/internal/middleware"
	"posgate/internal/repository"
	"posgate/internal/service"
	"posgate/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters: CORS runs before auth so even
	// 401 responses carry the headers)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(cfg.RateLimitPerMinute, time.Minute))

	// ── Repositories ─────────────────────────────────────────────────────────
	saleRepo := repository.NewSaleRepository(db)
	productRepo := repository.NewProductRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	dispatcher := worker.NewDispatcher(rdb)
	saleSvc := service.NewSaleService(saleRepo, dispatcher)
	reportSvc := service.NewReportService(saleRepo, productRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	salesH := handler.NewSalesHandler(saleSvc, rdb)
	inventoryH := handler.NewInventoryHandler(productRepo)
	activityH := handler.NewActivityHandler(activityRepo)
	summaryH := handler.NewSummaryHandler(reportSvc, rdb,
		time.Duration(cfg.SummaryCacheTTLSeconds)*time.Second)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Protected — every /api route sits behind the shared bearer key
	api := r.Group("/api", middleware.APIKeyAuth(cfg.APIKey))
	{
		api.GET("/sales", salesH.List)
		api.POST("/sales", salesH.Create)
		api.GET("/inventory", inventoryH.List)
		api.GET("/activity-log", activityH.List)
		api.GET("/summary", summaryH.Get)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
