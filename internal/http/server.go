package httpapi

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"frispy/internal/app"
	"frispy/internal/domain"
	"frispy/internal/repository"
	"frispy/internal/service"
)

// Services are the use cases exposed over HTTP.
type Services struct {
	Menu      *service.MenuService
	Inventory *service.InventoryService
	Orders    *service.OrderService
	Sales     *service.SalesService
	Reports   *service.ReportService
}

// Options tune middleware.
type Options struct {
	Production     bool
	AllowedOrigins []string
}

type Server struct {
	engine    *gin.Engine
	menu      *service.MenuService
	inventory *service.InventoryService
	orders    *service.OrderService
	sales     *service.SalesService
	reports   *service.ReportService
	state     *app.State
	log       logrus.FieldLogger
}

func NewServer(svc Services, state *app.State, opts Options, log logrus.FieldLogger) *Server {
	registerValidators()

	r := gin.New()
	r.Use(requestLogger(log), gin.Recovery(), cors.New(corsConfig(opts)))
	s := &Server{
		engine:    r,
		menu:      svc.Menu,
		inventory: svc.Inventory,
		orders:    svc.Orders,
		sales:     svc.Sales,
		reports:   svc.Reports,
		state:     state,
		log:       log,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) registerRoutes() {
	// Swagger UI
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	s.engine.GET("/healthz", s.health)

	v1 := s.engine.Group("/api/v1")
	{
		menu := v1.Group("/menu")
		menu.GET("", s.listMenu)
		menu.POST("", s.createMenuItem)
		menu.GET("/categories", s.menuCategories)
		menu.GET("/:id", s.getMenuItem)
		menu.PUT("/:id", s.updateMenuItem)
		menu.DELETE("/:id", s.deleteMenuItem)

		inv := v1.Group("/inventory")
		inv.GET("", s.listInventory)
		inv.POST("", s.createInventoryItem)
		inv.GET("/stats", s.inventoryStats)
		inv.GET("/categories", s.inventoryCategories)
		inv.GET("/:id", s.getInventoryItem)
		inv.PUT("/:id", s.updateInventoryItem)
		inv.DELETE("/:id", s.deleteInventoryItem)
		inv.POST("/:id/increment", s.incrementStock)
		inv.POST("/:id/decrement", s.decrementStock)
		inv.PUT("/:id/quantity", s.setStockQuantity)

		v1.POST("/checkout", s.checkout)

		sales := v1.Group("/sales")
		sales.GET("", s.listSales)
		sales.GET("/:id", s.getSale)
		sales.DELETE("/:id", s.deleteSale)

		orders := v1.Group("/orders")
		orders.GET("", s.listOrders)
		orders.POST("", s.createOrder)
		orders.GET("/:id", s.getOrder)
		orders.DELETE("/:id", s.deleteOrder)
		orders.POST("/:id/status", s.updateOrderStatus)

		an := v1.Group("/analytics")
		an.GET("/dashboard", s.dashboard)
		an.GET("/summary/:window", s.summary)
		an.GET("/best-sellers", s.bestSellers)
		an.GET("/sales-by-day", s.salesByDay)
		an.GET("/peak-hours", s.peakHours)
		an.GET("/low-stock", s.lowStock)

		v1.GET("/reports/sales.xlsx", s.exportSales)

		data := v1.Group("/data")
		data.POST("/seed", s.seedData)
		data.DELETE("", s.clearData)
	}
}

// requestLogger logs one line per request through logrus.
func requestLogger(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		entry := log.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
			"client":  c.ClientIP(),
		})
		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			entry.Error("request failed")
		case c.Writer.Status() >= http.StatusBadRequest:
			entry.Warn("request rejected")
		default:
			entry.Info("request")
		}
	}
}

// corsConfig allows every origin outside production. In production only the
// configured allowlist is accepted, and an empty allowlist rejects all.
func corsConfig(opts Options) cors.Config {
	cfg := cors.DefaultConfig()
	if opts.Production {
		if len(opts.AllowedOrigins) == 0 {
			cfg.AllowOriginFunc = func(string) bool { return false }
		} else {
			cfg.AllowOrigins = opts.AllowedOrigins
		}
	} else {
		cfg.AllowAllOrigins = true
	}
	cfg.AddAllowMethods("GET", "POST", "PUT", "DELETE", "OPTIONS")
	cfg.AddAllowHeaders("Origin", "Content-Type", "Authorization")
	cfg.AddExposeHeaders("Content-Length", "Content-Disposition")
	return cfg
}

var registerOnce sync.Once

func registerValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("orderstatus", func(fl validator.FieldLevel) bool {
			return domain.OrderStatus(fl.Field().String()).Valid()
		})
	})
}

// bindJSON binds the request body and writes a 400 on failure.
func bindJSON(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		fields := make(map[string]string, len(ve))
		for _, fe := range ve {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": fields})
		return false
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
	return false
}

func writeError(c *gin.Context, err error) {
	status := mapErrorToStatus(err)
	c.JSON(status, gin.H{"error": err.Error()})
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotEnoughStock):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidState):
		return http.StatusConflict
	case errors.Is(err, repository.ErrLockNotObtained):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

type healthResponse struct {
	Status      string `json:"status"`
	Initialized bool   `json:"initialized"`
	Seeded      bool   `json:"seeded"`
	Error       string `json:"error,omitempty"`
}

// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} healthResponse
// @Failure 503 {object} healthResponse
// @Router /healthz [get]
func (s *Server) health(c *gin.Context) {
	resp := healthResponse{Status: "ok", Initialized: s.state.Initialized(), Seeded: s.state.Seeded()}
	if !resp.Initialized {
		resp.Status = "starting"
		if err := s.state.Err(); err != nil {
			resp.Status = "error"
			resp.Error = err.Error()
		}
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}
