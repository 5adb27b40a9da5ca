package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"workshop-engine/internal/handler/api"
	"workshop-engine/internal/handler/middleware"
	"workshop-engine/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	logger *middleware.Logger,
	bookingHandler *api.BookingHandler,
	mechanicHandler *api.MechanicHandler,
	partHandler *api.PartHandler,
) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, bookingHandler, mechanicHandler, partHandler)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.Recovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	bookingHandler *api.BookingHandler,
	mechanicHandler *api.MechanicHandler,
	partHandler *api.PartHandler,
) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiGroup := engine.Group("/api")
	{
		bookings := apiGroup.Group("/bookings")
		{
			addRoutes(bookings, []route{
				{Method: http.MethodPost, Path: "", Handler: bookingHandler.CreateBooking},
				{Method: http.MethodGet, Path: "", Handler: bookingHandler.ListBookings},
				{Method: http.MethodGet, Path: "/:id", Handler: bookingHandler.GetBooking},
				{Method: http.MethodPost, Path: "/:id/transition", Handler: bookingHandler.TransitionBooking},
				{Method: http.MethodPost, Path: "/:id/undo", Handler: bookingHandler.UndoBooking},
			})
		}

		mechanics := apiGroup.Group("/mechanics")
		{
			addRoutes(mechanics, []route{
				{Method: http.MethodPost, Path: "", Handler: mechanicHandler.CreateMechanic},
				{Method: http.MethodGet, Path: "", Handler: mechanicHandler.ListMechanics},
				{Method: http.MethodGet, Path: "/:id", Handler: mechanicHandler.GetMechanic},
				{Method: http.MethodPatch, Path: "/:id/duty", Handler: mechanicHandler.SetDuty},
				{Method: http.MethodPost, Path: "/:id/promote", Handler: mechanicHandler.PromoteMechanic},
			})
		}

		parts := apiGroup.Group("/parts")
		{
			addRoutes(parts, []route{
				{Method: http.MethodPost, Path: "", Handler: partHandler.CreatePart},
				{Method: http.MethodGet, Path: "", Handler: partHandler.ListParts},
				{Method: http.MethodGet, Path: "/:id", Handler: partHandler.GetPart},
				{Method: http.MethodPatch, Path: "/:id/stock", Handler: partHandler.AdjustStock},
			})
		}

		apiGroup.POST("/promote", mechanicHandler.PromoteAll)
	}
}

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
