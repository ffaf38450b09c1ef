package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"

	"github.com/nweber28/espn-fantasy-baseball-tools/internal/analysis"
	"github.com/nweber28/espn-fantasy-baseball-tools/internal/api/handlers"
	"github.com/nweber28/espn-fantasy-baseball-tools/internal/cache"
	"github.com/nweber28/espn-fantasy-baseball-tools/internal/config"
	"github.com/nweber28/espn-fantasy-baseball-tools/internal/providers"
	"github.com/nweber28/espn-fantasy-baseball-tools/pkg/logger"
	"github.com/nweber28/espn-fantasy-baseball-tools/pkg/types"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.GetLogger().WithError(err).Fatal("Failed to load configuration")
	}

	log := logger.InitLogger("", cfg.IsDevelopment())
	log.WithFields(map[string]interface{}{
		"service": cfg.ServiceName,
		"env":     cfg.Env,
		"port":    cfg.Port,
	}).Info("Starting roster analytics service")

	// Cache is best-effort: analyses still run against live upstreams
	// when Redis is down.
	var cacheProvider types.CacheProvider
	redisCache, err := cache.NewRedisCache(cfg.RedisURL, cfg.CacheTTL)
	if err != nil {
		log.WithError(err).Warn("Redis unavailable, running without response cache")
	} else {
		cacheProvider = redisCache
		defer redisCache.Close()
	}

	espn := providers.NewESPNClient(cfg.LeagueID, cfg.SeasonID, cfg.SWID, cfg.EspnS2, cfg.FetchTimeout, cacheProvider)
	fangraphs := providers.NewFanGraphsClient(cfg.FetchTimeout, cacheProvider)
	mlb := providers.NewMLBClient(cfg.FetchTimeout, cacheProvider)
	svc := analysis.NewService(cfg, espn, fangraphs, mlb)

	// Warm the snapshot so the first request does not pay the fetch cost.
	warmCtx, cancelWarm := context.WithTimeout(context.Background(), 2*cfg.FetchTimeout)
	if err := svc.Refresh(warmCtx); err != nil {
		log.WithError(err).Warn("Initial snapshot load failed, will retry on demand")
	}
	cancelWarm()

	scheduler := cron.New()
	if _, err := scheduler.AddFunc("@hourly", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*cfg.FetchTimeout)
		defer cancel()
		if err := svc.Refresh(ctx); err != nil {
			log.WithError(err).Warn("Scheduled snapshot refresh failed")
		}
	}); err != nil {
		log.WithError(err).Fatal("Failed to schedule snapshot refresh")
	}
	scheduler.Start()
	defer scheduler.Stop()

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	rosterHandler := handlers.NewRosterHandler(svc)
	waiverHandler := handlers.NewWaiverHandler(svc)
	tradeHandler := handlers.NewTradeHandler(svc)
	streamingHandler := handlers.NewStreamingHandler(svc)
	draftHandler := handlers.NewDraftHandler(svc, cfg.RosterSlots)
	healthHandler := handlers.NewHealthHandler(cfg.ServiceName, svc, cacheProvider)

	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/teams", rosterHandler.Teams)
		v1.POST("/roster/optimize", rosterHandler.Optimize)
		v1.POST("/waivers/analyze", waiverHandler.Analyze)
		v1.POST("/trades/evaluate", tradeHandler.Evaluate)
		v1.GET("/streaming", streamingHandler.Matchups)

		draftGroup := v1.Group("/draft")
		{
			draftGroup.POST("/start", draftHandler.Start)
			draftGroup.POST("/pick", draftHandler.Pick)
			draftGroup.POST("/undo", draftHandler.Undo)
			draftGroup.GET("/board", draftHandler.Board)
			draftGroup.GET("/available", draftHandler.Available)
			draftGroup.GET("/leaderboard", draftHandler.Leaderboard)
		}
	}

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.WithField("addr", server.Addr).Info("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Forced shutdown")
	}
	log.Info("Server stopped")
}
