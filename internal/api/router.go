package api

import (
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/craftcrm/platform/internal/api/handler"
	"github.com/craftcrm/platform/internal/api/middleware"
	"github.com/craftcrm/platform/internal/core/catalog"
	"github.com/craftcrm/platform/internal/core/domain"
	"github.com/craftcrm/platform/internal/core/service"
	mongorepo "github.com/craftcrm/platform/internal/infrastructure/db/mongo"
	redisrepo "github.com/craftcrm/platform/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, sessionTTL time.Duration, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())

	// --- Repositories ---
	tenantRepo := mongorepo.NewTenantRepository(db)
	appRepo := mongorepo.NewAppRepository(db)
	moduleRepo := mongorepo.NewModuleRepository(db)
	fieldRepo := mongorepo.NewFieldRepository(db)
	viewRepo := mongorepo.NewViewRepository(db)
	recordRepo := mongorepo.NewRecordRepository(db)
	activityRepo := mongorepo.NewActivityRepository(db)
	userRepo := mongorepo.NewUserRepository(db)
	sessionRepo := mongorepo.NewSessionRepository(db)
	sessionCache := redisrepo.NewSessionCache(rdb)

	// --- Services ---
	cascader := service.NewCascader(appRepo, moduleRepo, fieldRepo, recordRepo, viewRepo, activityRepo, log)
	cat := catalog.New()
	generatorService := service.NewGeneratorService(cat, tenantRepo, appRepo, moduleRepo, fieldRepo, viewRepo, recordRepo, cascader, log)
	tenantService := service.NewTenantService(tenantRepo, appRepo, log)
	moduleService := service.NewModuleService(moduleRepo, cascader, log)
	fieldService := service.NewFieldService(moduleRepo, fieldRepo, recordRepo, log)
	viewService := service.NewViewService(moduleRepo, fieldRepo, recordRepo, viewRepo, log)
	recordService := service.NewRecordService(moduleRepo, fieldRepo, recordRepo, activityRepo, log)
	authService := service.NewAuthService(appRepo, userRepo, sessionRepo, sessionCache, sessionTTL, log)

	// --- Handlers ---
	tenantHandler := handler.NewTenantHandler(tenantService)
	generatorHandler := handler.NewGeneratorHandler(generatorService)
	moduleHandler := handler.NewModuleHandler(moduleService)
	fieldHandler := handler.NewFieldHandler(fieldService)
	viewHandler := handler.NewViewHandler(viewService)
	recordHandler := handler.NewRecordHandler(recordService)
	authHandler := handler.NewAuthHandler(authService)
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	session := middleware.Session(authService)

	// --- Health probes and metrics (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	v1 := e.Group("/v1")

	// --- Public routes ---
	// Tenant signup and app generation are the onboarding path: they must
	// run before any user exists, so no session can guard them. Owner setup
	// follows, then login.
	v1.POST("/tenants", tenantHandler.Create)
	v1.POST("/apps/generate", generatorHandler.Generate)
	v1.POST("/auth/setup", authHandler.Setup)
	v1.POST("/auth/login", authHandler.Login)
	v1.GET("/apps/preview", generatorHandler.Preview)

	// --- Session routes ---
	auth := v1.Group("", session)
	auth.GET("/auth/me", authHandler.Me)
	auth.POST("/auth/logout", authHandler.Logout)
	auth.POST("/auth/password", authHandler.ChangePassword)

	// --- Tenants ---
	auth.GET("/tenants/:id", tenantHandler.Get, middleware.RequirePermission(domain.PermManageApp))
	auth.GET("/tenants/slug/:slug", tenantHandler.GetBySlug, middleware.RequirePermission(domain.PermManageApp))
	auth.GET("/tenants/:id/apps", tenantHandler.ListApps, middleware.RequirePermission(domain.PermManageApp))

	// --- User management ---
	auth.GET("/users", authHandler.List, middleware.RequirePermission(domain.PermManageUsers))
	auth.POST("/users", authHandler.Invite, middleware.RequirePermission(domain.PermManageUsers))
	auth.PATCH("/users/:id/role", authHandler.ChangeRole, middleware.RequirePermission(domain.PermManageUsers))

	// --- Schema ---
	auth.GET("/apps/:appId/modules", moduleHandler.ListByApp)
	auth.GET("/modules/:id", moduleHandler.Get)
	auth.PATCH("/modules/:id", moduleHandler.Update, middleware.RequirePermission(domain.PermManageSchema))
	auth.DELETE("/modules/:id", moduleHandler.Delete, middleware.RequirePermission(domain.PermManageSchema))
	auth.POST("/modules/:moduleId/fields", fieldHandler.Create, middleware.RequirePermission(domain.PermManageSchema))
	auth.PATCH("/fields/:id", fieldHandler.Update, middleware.RequirePermission(domain.PermManageSchema))
	auth.DELETE("/fields/:id", fieldHandler.Delete, middleware.RequirePermission(domain.PermManageSchema))

	// --- Records ---
	auth.GET("/modules/:moduleId/records", recordHandler.List, middleware.RequirePermission(domain.PermViewRecords))
	auth.GET("/modules/:moduleId/records/count", recordHandler.Count, middleware.RequirePermission(domain.PermViewRecords))
	auth.POST("/modules/:moduleId/records", recordHandler.Create, middleware.RequirePermission(domain.PermCreateRecords))
	auth.GET("/records/:id", recordHandler.Get, middleware.RequirePermission(domain.PermViewRecords))
	auth.PATCH("/records/:id", recordHandler.Update, middleware.RequirePermission(domain.PermEditRecords))
	auth.DELETE("/records/:id", recordHandler.Delete, middleware.RequirePermission(domain.PermDeleteRecords))
	auth.POST("/records/:id/activities", recordHandler.AddNote, middleware.RequirePermission(domain.PermEditRecords))

	// --- Views ---
	auth.POST("/modules/:moduleId/views", viewHandler.Create, middleware.RequirePermission(domain.PermManageViews))
	auth.GET("/modules/:moduleId/views", viewHandler.ListByModule, middleware.RequirePermission(domain.PermViewRecords))
	auth.PATCH("/views/:id", viewHandler.Update, middleware.RequirePermission(domain.PermManageViews))
	auth.DELETE("/views/:id", viewHandler.Delete, middleware.RequirePermission(domain.PermManageViews))
	auth.GET("/views/:id/records", viewHandler.Evaluate, middleware.RequirePermission(domain.PermViewRecords))

	return e
}
