package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/emplo/profile-service/internal/config"
	"github.com/emplo/profile-service/internal/crypto"
	"github.com/emplo/profile-service/internal/handler"
	"github.com/emplo/profile-service/internal/middleware"
	"github.com/emplo/profile-service/internal/repository"
	"github.com/emplo/profile-service/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	tokens, err := crypto.NewTokenIssuer(cfg.JWTSecret, cfg.JWTAlgorithm, cfg.TokenExpiry)
	if err != nil {
		slog.Error("invalid token configuration", "error", err)
		os.Exit(1)
	}

	db, err := repository.NewDB(cfg.DatabaseDSN)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	repo := repository.NewProfileRepository(db)

	// The unique email index must exist before any insert traffic.
	schemaCtx, cancelSchema := context.WithTimeout(context.Background(), 10*time.Second)
	err = repo.EnsureSchema(schemaCtx)
	cancelSchema()
	if err != nil {
		slog.Error("schema setup failed", "error", err)
		os.Exit(1)
	}

	authService := service.NewAuthService(repo, tokens)
	authHandler := handler.NewAuthHandler(authService)

	profileService := service.NewProfileService(repo)
	profileHandler := handler.NewProfileHandler(profileService)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"Connected to Backend"}`))
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Post("/profile", authHandler.HandleRegister)
	r.Post("/login", authHandler.HandleLogin)

	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(tokens))
		r.Get("/me", authHandler.HandleMe)
	})

	r.Get("/profile/{id}", profileHandler.HandleGetProfile)
	r.Get("/profiles", profileHandler.HandleListProfiles)
	r.Put("/profile/{id}", profileHandler.HandleUpdateProfile)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
