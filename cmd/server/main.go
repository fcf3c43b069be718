package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Pc-CraftGroup/sky-haven-manager/internal/config"
	"github.com/Pc-CraftGroup/sky-haven-manager/internal/database"
	"github.com/Pc-CraftGroup/sky-haven-manager/internal/handler"
	"github.com/Pc-CraftGroup/sky-haven-manager/internal/middleware"
	"github.com/Pc-CraftGroup/sky-haven-manager/internal/repository"
	"github.com/Pc-CraftGroup/sky-haven-manager/internal/service"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if !cfg.IsProduction() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	// Database
	db, err := database.NewPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := database.RunMigrations(context.Background(), db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}
	log.Info().Msg("migrations applied")

	// Repositories
	playerRepo := repository.NewPlayerRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	gameRepo := repository.NewGameRepository(db)
	flightRepo := repository.NewFlightRepository(db)
	eventRepo := repository.NewEventRepository(db)

	// Services
	webhooks := service.NewDiscordWebhookService(
		os.Getenv("DISCORD_WEBHOOK_STATUS"),
		os.Getenv("DISCORD_WEBHOOK_CRASHES"),
		os.Getenv("DISCORD_WEBHOOK_EVENTS"),
	)
	authSvc := service.NewAuthService(playerRepo, sessionRepo, gameRepo, cfg.JWTSecret)
	eventSvc := service.NewEventService(eventRepo, webhooks)
	wsHub := service.NewWSHub()
	gameSvc := service.NewGameService(
		gameRepo, playerRepo, flightRepo, eventSvc, wsHub,
		time.Duration(cfg.TickSeconds)*time.Second,
		time.Duration(cfg.PositionSeconds)*time.Second,
		time.Duration(cfg.SaveSeconds)*time.Second,
	)

	// Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
		BodyLimit:    1 * 1024 * 1024, // 1MB
	})

	app.Use(recover.New())
	app.Use(middleware.Logger())
	app.Use(middleware.CORS())

	// Health
	healthH := handler.NewHealthHandler(db)
	app.Get("/health", healthH.Health)
	app.Get("/ready", healthH.Ready)

	// API v1
	v1 := app.Group("/api/v1")

	// Auth (public)
	authH := handler.NewAuthHandler(authSvc)
	auth := v1.Group("/auth")
	auth.Post("/register", middleware.RateLimit(5, time.Minute), authH.Register)
	auth.Post("/login", middleware.RateLimit(10, time.Minute), authH.Login)
	auth.Post("/refresh", middleware.RateLimit(20, time.Minute), authH.Refresh)
	auth.Post("/logout", authH.Logout)

	// Public (no auth)
	publicH := handler.NewPublicHandler(playerRepo, gameRepo, flightRepo, eventRepo, wsHub)
	public := v1.Group("/public", middleware.RateLimit(60, time.Minute))
	public.Get("/stats", publicH.Stats)
	public.Get("/leaderboard", publicH.Leaderboard)
	public.Get("/flights", publicH.ActiveFlights)
	public.Get("/events", publicH.Events)
	public.Get("/players/:id", publicH.Profile)

	// Admin — registered BEFORE protected group
	admin := v1.Group("/admin", middleware.AdminKey(cfg.AdminKey))
	adminH := handler.NewAdminHandler(playerRepo, gameRepo, flightRepo, gameSvc, wsHub)
	admin.Get("/stats", adminH.Stats)
	admin.Post("/announce", adminH.Announce)
	admin.Delete("/flights/stale", adminH.PruneFlights)

	// JWT-protected routes (catch-all — must be LAST)
	protected := v1.Group("", middleware.Auth(cfg.JWTSecret))

	// Game
	gameH := handler.NewGameHandler(gameSvc)
	game := protected.Group("/game")
	game.Get("/state", gameH.GetState)
	game.Post("/reset", gameH.Reset)
	game.Get("/fleet", gameH.GetFleet)
	game.Get("/catalog", gameH.GetCatalog)
	game.Get("/airports", gameH.GetAirports)
	game.Post("/aircraft", gameH.PurchaseAircraft)
	game.Post("/aircraft/:id/flights", gameH.StartFlight)
	game.Post("/aircraft/:id/refuel", gameH.Refuel)
	game.Post("/aircraft/:id/maintenance", gameH.PerformMaintenance)
	game.Delete("/aircraft/:id", gameH.SellAircraft)
	game.Put("/aircraft/:id/cabin", gameH.ConfigureCabin)
	game.Put("/cabin", gameH.SetDefaultCabin)
	game.Put("/settings", gameH.UpdateSettings)

	// WebSocket
	wsH := handler.NewWSHandler(wsHub, authSvc)
	app.Get("/ws", wsH.Upgrade)

	// Start hub and simulation loops
	go wsHub.Run()
	gameSvc.Start()

	// Hourly cleanup of expired refresh tokens
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if n, err := sessionRepo.CleanupExpired(ctx); err != nil {
				log.Warn().Err(err).Msg("refresh token cleanup failed")
			} else if n > 0 {
				log.Debug().Int64("rows", n).Msg("expired refresh tokens removed")
			}
			cancel()
		}
	}()
	webhooks.SendServerStatus(true, 0)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("sky haven backend running")

	<-quit
	log.Info().Msg("shutting down")
	_ = app.ShutdownWithTimeout(5 * time.Second)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gameSvc.Stop(shutdownCtx)
	cancel()
	wsHub.Shutdown()
	webhooks.SendServerStatus(false, 0)
	log.Info().Msg("server stopped")
}
