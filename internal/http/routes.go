package http

import (
	"prime31/internal/account"
	"prime31/internal/config"
	"prime31/internal/game"
	"prime31/internal/http/handlers"
	"prime31/internal/http/middleware"
	"prime31/internal/room"
	"prime31/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server bundles the components the routes serve.
type Server struct {
	Accounts *account.Service
	Rooms    *room.Registry
	Games    *game.Engine
	Hub      *ws.Hub
	Config   *config.Config
	Version  string
}

// NewServer builds a Hub over the given components.
func NewServer(cfg *config.Config, accounts *account.Service, version string) *Server {
	rooms := room.NewRegistry()
	games := game.NewEngine()
	hub := ws.NewHub(accounts, rooms, games, ws.Options{DisconnectPolicy: cfg.DisconnectPolicy})
	return &Server{
		Accounts: accounts,
		Rooms:    rooms,
		Games:    games,
		Hub:      hub,
		Config:   cfg,
		Version:  version,
	}
}

func RegisterRoutes(r *gin.Engine, s *Server) {
	h := handlers.NewHandler(s.Accounts, s.Hub, s.Rooms, s.Games)
	healthHandler := handlers.NewHealthHandler(s.Accounts, s.Version, map[string]handlers.Counter{
		"sessions": s.Hub.Sessions,
		"rooms":    s.Rooms.Len,
		"games":    s.Games.Len,
	})

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	limit, window := s.Config.APIRateLimit, s.Config.APIRateWindow

	v1 := r.Group("/api/v1")
	v1.Use(middleware.RateLimit(limit, window))
	v1.POST("/register", h.Register)
	v1.POST("/login", h.Login)
	v1.GET("/me", middleware.JWT(), middleware.UserRateLimit(limit, window), h.Me)
	v1.GET("/rooms/:id", h.Room)
	v1.GET("/games/:room_id", h.Game)

	r.GET("/ws", ws.HandleWS(s.Hub, s.Config.AllowedOrigin, s.Config.SendBuffer))
}
