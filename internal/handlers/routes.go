package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"snackbar/internal/middleware"
	"snackbar/internal/services"
)

type RouterConfig struct {
	Orders   services.OrderService
	Admin    services.AdminService
	Sessions middleware.SessionValidator
	Store    Pinger
	Metrics  *middleware.Metrics
	CORS     middleware.CORSConfig
	// TrustedProxies lists the proxy addresses or CIDRs whose forwarding
	// headers decide the client ip. Empty trusts no proxy.
	TrustedProxies []string
	Logger         *zap.Logger
}

// NewRouter wires every endpoint. Only the status update is guarded by an
// admin session.
func NewRouter(cfg RouterConfig) *gin.Engine {
	lg := cfg.Logger
	if lg == nil {
		lg = zap.NewNop()
	}

	router := gin.New()
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		lg.Error("Invalid trusted proxies, trusting none", zap.Strings("proxies", cfg.TrustedProxies), zap.Error(err))
		_ = router.SetTrustedProxies(nil)
	}
	router.Use(
		middleware.Recovery(lg),
		middleware.RequestID(),
		middleware.RequestLogger(lg),
	)
	if cfg.Metrics != nil {
		router.Use(cfg.Metrics.Middleware())
	}
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler := NewHealthHandler(cfg.Store, lg)
	orderHandler := NewOrderHandler(cfg.Orders, lg)
	adminHandler := NewAdminHandler(cfg.Admin, lg)

	router.GET("/healthz", healthHandler.Health)
	if cfg.Metrics != nil {
		router.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	api := router.Group("/api")
	{
		api.POST("/admin/login", adminHandler.Login)
		api.POST("/admin/logout", adminHandler.Logout)

		api.POST("/orders", orderHandler.CreateOrder)
		api.GET("/orders", orderHandler.ListOrders)
		api.GET("/orders/:id", orderHandler.GetOrder)
		api.PATCH("/orders/:id/status", middleware.AdminAuth(cfg.Sessions), orderHandler.UpdateOrderStatus)
	}

	return router
}
