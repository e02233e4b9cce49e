package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/nekogravitycat/item-sharing-backend/internal/actor"
	"github.com/nekogravitycat/item-sharing-backend/internal/booking"
	bookingHttp "github.com/nekogravitycat/item-sharing-backend/internal/booking/http"
	"github.com/nekogravitycat/item-sharing-backend/internal/item"
	itemHttp "github.com/nekogravitycat/item-sharing-backend/internal/item/http"
	"github.com/nekogravitycat/item-sharing-backend/internal/itemrequest"
	requestHttp "github.com/nekogravitycat/item-sharing-backend/internal/itemrequest/http"
	"github.com/nekogravitycat/item-sharing-backend/internal/metrics"
	"github.com/nekogravitycat/item-sharing-backend/internal/user"
	userHttp "github.com/nekogravitycat/item-sharing-backend/internal/user/http"
)

// Config holds everything the router needs to assemble middleware and routes.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	Logger       zerolog.Logger
	RateRPS      float64
	RateBurst    int

	UserService    user.Service
	ItemService    item.Service
	RequestService itemrequest.Service
	BookingService booking.Service
}

// NewRouter initializes the HTTP router engine.
// It assembles the middleware chain (logging, recovery, metrics, CORS,
// rate limiting) and registers routes for each module.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(RequestLogger(cfg.Logger), gin.Recovery(), Metrics())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", actor.Header}
	r.Use(cors.New(corsConfig))

	if cfg.RateRPS > 0 {
		r.Use(RateLimit(cfg.RateRPS, cfg.RateBurst))
	}

	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// actorMiddleware: resolves the acting user from the sharer header.
	actorMiddleware := actor.Required()

	userHandler := userHttp.NewHandler(cfg.UserService)
	itemHandler := itemHttp.NewHandler(cfg.ItemService)
	requestHandler := requestHttp.NewHandler(cfg.RequestService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)

	root := r.Group("")
	{
		userHttp.RegisterRoutes(root, userHandler)
		itemHttp.RegisterRoutes(root, itemHandler, actorMiddleware)
		requestHttp.RegisterRoutes(root, requestHandler, actorMiddleware)
		bookingHttp.RegisterRoutes(root, bookingHandler, actorMiddleware)
	}

	return r
}
