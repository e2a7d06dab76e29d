package handler

import (
	"log/slog"
	"net/http"

	"amenity-booking/internal/handler/api"
	"amenity-booking/internal/handler/middleware"
	"amenity-booking/internal/pkg/config"
	"amenity-booking/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type RouterParams struct {
	fx.In

	Engine       *gin.Engine
	Config       config.Config
	Logger       *slog.Logger
	RequestLog   *middleware.Logger
	Metrics      *metrics.Metrics
	Gatherer     prometheus.Gatherer
	Bookings     *api.BookingHandler
	Amenities    *api.AmenityHandler
	Waitlist     *api.WaitlistHandler
	Confirmation *api.ConfirmationHandler
	Auth         *middleware.AuthMiddleware
	RateLimiter  *middleware.IPRateLimiter
}

func NewRouter(p RouterParams) {
	setupMiddleware(p)
	setupRoutes(p)
}

func setupMiddleware(p RouterParams) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	p.Engine.Use(middleware.CustomRecovery(p.Logger))
	p.Engine.Use(middleware.NewCORSMiddleware(p.Config.CORS, p.Logger))
	p.Engine.Use(p.RequestLog.LoggingMiddleware())
	p.Engine.Use(middleware.Metrics(p.Metrics))
	p.Engine.Use(middleware.ErrorHandler())
}

func setupRoutes(p RouterParams) {
	engine := p.Engine
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(p.Gatherer, promhttp.HandlerOpts{})))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addRoutes(engine.Group("/bookings"), []route{
		{Method: http.MethodGet, Path: "/confirm/:bookingId", Handler: p.Confirmation.Handle, Mw: []gin.HandlerFunc{p.RateLimiter.Middleware()}},
	})

	apiGroup := engine.Group("/api")
	apiGroup.Use(p.Auth.RequireAuth())
	admin := []gin.HandlerFunc{p.Auth.RequireAdmin()}
	{
		addRoutes(apiGroup.Group("/bookings"), []route{
			{Method: http.MethodPost, Path: "", Handler: p.Bookings.Create},
			{Method: http.MethodGet, Path: "", Handler: p.Bookings.ListMine},
			{Method: http.MethodGet, Path: "/:id", Handler: p.Bookings.Get},
			{Method: http.MethodPost, Path: "/cancel/:bookingId", Handler: p.Bookings.Cancel},
			{Method: http.MethodPost, Path: "/:id/check-in", Handler: p.Bookings.CheckIn},
			{Method: http.MethodPost, Path: "/:id/complete", Handler: p.Bookings.Complete},
			{Method: http.MethodPost, Path: "/:id/clear", Handler: p.Bookings.Clear},
			{Method: http.MethodPost, Path: "/:id/confirm", Handler: p.Bookings.Confirm},
			{Method: http.MethodPost, Path: "/:id/decline", Handler: p.Bookings.Decline},
		})

		addRoutes(apiGroup.Group("/waitlist"), []route{
			{Method: http.MethodGet, Path: "", Handler: p.Waitlist.ListMine},
			{Method: http.MethodDelete, Path: "/:id", Handler: p.Waitlist.Leave},
		})

		addRoutes(apiGroup.Group("/amenities"), []route{
			{Method: http.MethodGet, Path: "", Handler: p.Amenities.List},
			{Method: http.MethodGet, Path: "/:id", Handler: p.Amenities.Get},
			{Method: http.MethodGet, Path: "/:id/slots", Handler: p.Amenities.Slots},
			{Method: http.MethodGet, Path: "/:id/bookings", Handler: p.Amenities.Bookings, Mw: admin},
			{Method: http.MethodPost, Path: "", Handler: p.Amenities.Create, Mw: admin},
			{Method: http.MethodPut, Path: "/:id", Handler: p.Amenities.Update, Mw: admin},
			{Method: http.MethodPut, Path: "/:id/block", Handler: p.Amenities.Block, Mw: admin},
			{Method: http.MethodPost, Path: "/:id/blackout-dates", Handler: p.Amenities.AddBlackoutDate, Mw: admin},
			{Method: http.MethodDelete, Path: "/:id/blackout-dates/:date", Handler: p.Amenities.RemoveBlackoutDate, Mw: admin},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
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
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(append([]gin.HandlerFunc{}, r.Mw...), r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
