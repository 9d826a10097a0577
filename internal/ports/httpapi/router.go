package httpapi

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"blitz/internal/app"
	"blitz/internal/config"
	"blitz/internal/ports"
)

var _ ports.GameService = (*app.Service)(nil)

// Handler adapts HTTP requests onto the game service.
type Handler struct {
	service       ports.GameService
	logger        *zap.Logger
	defaultJokers int
}

// NewRouter builds the gin engine with all Blitz routes registered.
func NewRouter(service ports.GameService, cfg *config.ServerConfig, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Handler{
		service:       service,
		logger:        logger,
		defaultJokers: cfg.DefaultJokers,
	}

	router := gin.New()
	router.Use(gin.Recovery())

	router.POST("/games", h.createGame)
	router.POST("/games/:id/players", h.joinGame)
	router.POST("/games/:id/deal", h.deal)
	router.POST("/games/:id/turn", h.submitTurn)
	router.DELETE("/games/:id/players/:player", h.exitGame)
	router.GET("/games/:id/state", h.state)
	router.GET("/stream/:id/:player", h.stream)

	return router
}
