package main // Entry point package

import (
	"github.com/joho/godotenv"    // optional .env bootstrap for local development
	"github.com/labstack/echo/v4" // Echo web framework
	"go.uber.org/zap"             // structured logging

	"github.com/schadenscheck/admin-api/internal/config"
	"github.com/schadenscheck/admin-api/internal/handler"
	"github.com/schadenscheck/admin-api/internal/middleware"
	"github.com/schadenscheck/admin-api/internal/repository"
	"github.com/schadenscheck/admin-api/internal/router"
	"github.com/schadenscheck/admin-api/internal/service"
	"github.com/schadenscheck/admin-api/internal/utils"
)

func main() {
	// Load a .env file when present; in deployed environments the variables
	// come from the process environment and the file is simply absent.
	_ = godotenv.Load()

	cfg := config.Load()

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	// Startup validation happens before the listener opens: a weak signing
	// secret or a credential slot without its hash must keep the service
	// from accepting any traffic, not surface on the first request.
	codec, err := utils.NewTokenCodec(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		log.Fatal("invalid signing secret", zap.Error(err))
	}
	creds, err := repository.NewCredentialRepo(cfg.Admins)
	if err != nil {
		log.Fatal("invalid credential configuration", zap.Error(err))
	}
	if creds.Count() == 0 {
		log.Warn("no admin accounts configured; every login will fail")
	}
	auth, err := service.NewAuthenticator(creds, cfg.BcryptCost)
	if err != nil {
		log.Fatal("authenticator init failed", zap.Error(err))
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestLogger(log))

	// Redis is optional: without it the login route simply runs unlimited.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn("redis unavailable, login rate limiting disabled")
	}
	loginLimit := middleware.LoginRateLimit(config.LoadRateLimitConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(auth, codec, cfg.CookieName), codec, cfg.CookieName, loginLimit)
	router.RegisterAdmin(e, handler.NewAdminHandler(cfg.Env, creds), codec, cfg.CookieName)

	addr := ":" + cfg.Port
	log.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env), zap.Int("admin_accounts", creds.Count()))

	if err := e.Start(addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
