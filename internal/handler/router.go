package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"clinic-booking-api/internal/domain/user"
	"clinic-booking-api/internal/handler/api"
	"clinic-booking-api/internal/handler/middleware"
	"clinic-booking-api/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	authHandler *api.AuthHandler,
	voucherHandler *api.VoucherHandler,
	bookingHandler *api.BookingHandler,
	catalogHandler *api.CatalogHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, authHandler, voucherHandler, bookingHandler, catalogHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	authHandler *api.AuthHandler,
	voucherHandler *api.VoucherHandler,
	bookingHandler *api.BookingHandler,
	catalogHandler *api.CatalogHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: authHandler.Login},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: authHandler.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: authHandler.Me},
			})
		}

		vouchers := apiGroup.Group("/vouchers")
		{
			addRoutes(vouchers, []route{
				{Method: http.MethodPost, Path: "/validate", Handler: voucherHandler.Validate},
				{Method: http.MethodGet, Path: "", Handler: voucherHandler.ListActive},
				{Method: http.MethodGet, Path: "/:code", Handler: voucherHandler.GetByCode},
			})
		}

		bookings := apiGroup.Group("/bookings")
		{
			addRoutes(bookings, []route{
				{Method: http.MethodPost, Path: "", Handler: bookingHandler.Create},
				{Method: http.MethodGet, Path: "/:reference", Handler: bookingHandler.GetByReference},
			})
		}

		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/branches", Handler: catalogHandler.ListBranches},
			{Method: http.MethodGet, Path: "/branches/:id/services", Handler: catalogHandler.ListServices},
			{Method: http.MethodGet, Path: "/services/:id", Handler: catalogHandler.GetService},
		})

		admin := apiGroup.Group("/admin")
		admin.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRoleAtLeast(user.RoleStaff))
		{
			addRoutes(admin, []route{
				{Method: http.MethodGet, Path: "/vouchers", Handler: voucherHandler.List},
				{Method: http.MethodPost, Path: "/vouchers", Handler: voucherHandler.Create},
				{Method: http.MethodPatch, Path: "/vouchers/:id", Handler: voucherHandler.Update},
				{Method: http.MethodDelete, Path: "/vouchers/:id", Handler: voucherHandler.Delete},
				{Method: http.MethodGet, Path: "/bookings", Handler: bookingHandler.ListByEmail},
				{Method: http.MethodPost, Path: "/bookings/:id/cancel", Handler: bookingHandler.Cancel},
			})
		}
	}
}

// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, r.Handler)
		case http.MethodPost:
			g.POST(r.Path, r.Handler)
		case http.MethodPut:
			g.PUT(r.Path, r.Handler)
		case http.MethodPatch:
			g.PATCH(r.Path, r.Handler)
		case http.MethodDelete:
			g.DELETE(r.Path, r.Handler)
		default:
			g.Any(r.Path, r.Handler)
		}
	}
}
