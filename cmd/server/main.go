package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/callowaylaw/backend/internal/config"
	"github.com/callowaylaw/backend/internal/handler"
	"github.com/callowaylaw/backend/internal/logging"
	"github.com/callowaylaw/backend/internal/mailer"
	"github.com/callowaylaw/backend/internal/repository"
	"github.com/callowaylaw/backend/internal/service"
	"github.com/callowaylaw/backend/pkg/auth"
)

func main() {
	_ = godotenv.Load()
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("invalid configuration", "error", err)
	}

	ctx := context.Background()
	pool, err := repository.NewPool(ctx, cfg.Database.ConnString())
	if err != nil {
		logging.Fatal("failed to connect to database", "error", err)
	}
	defer pool.Close()

	if err := repository.EnsureSchema(ctx, pool); err != nil {
		logging.Fatal("failed to ensure schema", "error", err)
	}

	// The mailer is initialized once here and handed to the service as a
	// read-only dependency; request handlers never mutate it.
	mail := mailer.NewSMTP(cfg.SMTP)

	contactRepo := repository.NewPgContactRepository(pool)
	contactService := service.NewContactService(contactRepo, mail, cfg.SMTP.NotifyTo)
	authService := service.NewAuthService(cfg.Auth.AdminPassword, []byte(cfg.Auth.JWTSecret))

	h := handler.New(pool, cfg.AllowedOrigins)
	contactHandler := handler.NewContactHandler(contactService)
	authHandler := handler.NewAuthHandler(authService)
	adminHandler := handler.NewAdminContactHandler(contactService)
	guard := auth.RequireAdmin([]byte(cfg.Auth.JWTSecret))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api", h.Health)
	mux.HandleFunc("GET /api/health", h.Health)
	mux.HandleFunc("POST /api/v1/contact", contactHandler.Submit)
	mux.HandleFunc("POST /api/v1/admin/login", authHandler.Login)

	mux.Handle("GET /api/v1/admin/contacts", guard(http.HandlerFunc(adminHandler.List)))
	mux.Handle("GET /api/v1/admin/contacts/{id}/history", guard(http.HandlerFunc(adminHandler.History)))
	mux.Handle("PATCH /api/v1/admin/contacts/{id}", guard(http.HandlerFunc(adminHandler.UpdateStatus)))
	mux.Handle("DELETE /api/v1/admin/contacts/{id}", guard(http.HandlerFunc(adminHandler.Delete)))
	mux.Handle("POST /api/v1/admin/reply", guard(http.HandlerFunc(adminHandler.Reply)))

	// Unmatched API-shaped paths get a JSON 404 instead of the page router.
	mux.HandleFunc("/api/", h.NotFoundAPI)

	handler.NewPageRouter(cfg.SiteDir).Register(mux)

	var root http.Handler = mux
	root = h.CORS(root)
	if cfg.RateLimitEnabled() {
		root = handler.NewRateLimiter(60).Middleware(root)
		slog.Info("rate limiting enabled")
	}
	root = handler.SecurityHeaders(root)
	root = handler.RequestLogger(root)
	root = handler.Recover(root)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      root,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}
