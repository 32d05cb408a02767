package server

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/shinyyama/podcast-backend/internal/config"
	"github.com/shinyyama/podcast-backend/internal/handler"
	appmw "github.com/shinyyama/podcast-backend/internal/middleware"
	"github.com/shinyyama/podcast-backend/internal/repository"
	"github.com/shinyyama/podcast-backend/internal/service"
	"gorm.io/gorm"
)

type Server struct {
	e *echo.Echo
}

// Deps are the collaborators built outside the server.
type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Verifier appmw.TokenVerifier
	Trigger  service.EventTrigger
	SHA      string
	Build    string
}

func New(d Deps) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type", "Authorization", appmw.HeaderAdminKey, appmw.HeaderImpersonate},
		AllowCredentials: true,
		AllowOriginFunc:  allowOrigin(d.Config.AllowedOriginSuffix),
	}))

	userRepo := repository.NewUserRepository(d.DB)
	seasonRepo := repository.NewSeasonRepository(d.DB)
	pointRepo := repository.NewPointRepository(d.DB)
	gamblingRepo := repository.NewGamblingRepository(d.DB)
	episodeRepo := repository.NewEpisodeRepository(d.DB)
	webhookRepo := repository.NewWebhookRepository(d.DB)

	seasonSvc := service.NewSeasonService(seasonRepo)
	pointSvc := service.NewPointService(userRepo, pointRepo, seasonSvc)
	gamblingSvc := service.NewGamblingService(gamblingRepo, seasonSvc, d.Config.DefaultGamblingLookup)
	webhookSvc := service.NewWebhookService(webhookRepo)
	episodeSvc := service.NewEpisodeService(episodeRepo, d.Trigger)

	seasonHandler := handler.NewSeasonHandler(seasonSvc)
	pointHandler := handler.NewPointHandler(pointSvc)
	gamblingHandler := handler.NewGamblingHandler(gamblingSvc)
	webhookHandler := handler.NewWebhookHandler(webhookSvc)
	episodeHandler := handler.NewEpisodeHandler(episodeSvc)
	adminHandler := handler.NewAdminHandler(pointSvc, gamblingSvc)

	e.GET("/healthz", func(c echo.Context) error {
		status := "ok"
		if sqlDB, err := d.DB.DB(); err != nil || sqlDB.PingContext(c.Request().Context()) != nil {
			status = "db_unavailable"
		}
		return c.JSON(http.StatusOK, map[string]string{
			"status":     status,
			"git_sha":    d.SHA,
			"build_time": d.Build,
		})
	})

	api := e.Group("/api")

	authMw := appmw.NewAuthMiddleware(d.Verifier, userRepo)
	api.GET("/me/points", pointHandler.Mine, authMw.RequireAuth)
	api.GET("/seasons/current", seasonHandler.Current, authMw.RequireAuth)
	api.GET("/gambling/types", gamblingHandler.ListTypes, authMw.RequireAuth)
	api.POST("/gambling/bets", gamblingHandler.PlaceBet, authMw.RequireAuth)
	api.GET("/gambling/bets", gamblingHandler.ListForAssignment, authMw.RequireAuth)
	api.GET("/gambling/bets/active", gamblingHandler.ListActive, authMw.RequireAuth)
	api.GET("/gambling/bets/by-type", gamblingHandler.ListForType, authMw.RequireAuth)
	api.GET("/gambling/bets/by-assignments", gamblingHandler.ListForAssignments, authMw.RequireAuth)

	adminKey := appmw.RequireAdminKey(d.Config.AdminAPIKey)
	api.GET("/webhooks", webhookHandler.List, adminKey)
	api.POST("/webhooks", webhookHandler.Create, adminKey)
	api.DELETE("/webhooks", webhookHandler.Delete, adminKey)
	api.POST("/episodes/status", episodeHandler.UpdateStatus, adminKey)
	api.POST("/admin/seasons", seasonHandler.Start, adminKey)
	api.POST("/admin/points/adjustments", adminHandler.AdjustPoints, adminKey)
	api.POST("/admin/gambling/bets/:id/resolve", adminHandler.ResolveBet, adminKey)

	return &Server{e: e}
}

// allowOrigin admits localhost on any port and hosts under suffix.
func allowOrigin(suffix string) func(origin string) (bool, error) {
	return func(origin string) (bool, error) {
		low := strings.ToLower(origin)
		if strings.HasPrefix(low, "http://localhost:") || strings.HasPrefix(low, "http://127.0.0.1:") ||
			strings.HasPrefix(low, "https://localhost:") || strings.HasPrefix(low, "https://127.0.0.1:") {
			return true, nil
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false, nil
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return false, nil
		}
		return suffix != "" && strings.HasSuffix(u.Hostname(), suffix), nil
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.e.ServeHTTP(w, r)
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}
