package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/taskglow/taskglow/internal/api/handler"
	"github.com/taskglow/taskglow/internal/api/middleware"
	"github.com/taskglow/taskglow/internal/services/credentials"
	"github.com/taskglow/taskglow/internal/services/session"
	"github.com/taskglow/taskglow/internal/services/tasks"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger             *slog.Logger
	CredentialsService *credentials.Service
	SessionService     *session.Service
	TaskService        *tasks.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	authHandler := handler.NewAuthHandler(cfg.CredentialsService, cfg.SessionService)
	taskHandler := handler.NewTaskHandler(cfg.TaskService)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.SessionService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Auth routes (no session required)
	api.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", authHandler.Logout).Methods(http.MethodPost)
	api.HandleFunc("/auth/forgot", authHandler.ForgotPassword).Methods(http.MethodPost)
	api.HandleFunc("/auth/reset", authHandler.ResetPassword).Methods(http.MethodPost)

	// Protected account routes
	account := api.PathPrefix("/auth").Subrouter()
	account.Use(authMiddleware)
	account.HandleFunc("/me", authHandler.GetMe).Methods(http.MethodGet)

	profile := api.PathPrefix("/profile").Subrouter()
	profile.Use(authMiddleware)
	profile.HandleFunc("", authHandler.UpdateProfile).Methods(http.MethodPatch)

	// Task routes (all require a session)
	taskRoutes := api.PathPrefix("/tasks").Subrouter()
	taskRoutes.Use(authMiddleware)
	taskRoutes.HandleFunc("", taskHandler.List).Methods(http.MethodGet)
	taskRoutes.HandleFunc("", taskHandler.Add).Methods(http.MethodPost)
	taskRoutes.HandleFunc("/toggle-all", taskHandler.ToggleAll).Methods(http.MethodPost)
	taskRoutes.HandleFunc("/stats", taskHandler.Stats).Methods(http.MethodGet)
	taskRoutes.HandleFunc("/trend", taskHandler.Trend).Methods(http.MethodGet)
	taskRoutes.HandleFunc("/{id}", taskHandler.Edit).Methods(http.MethodPatch)
	taskRoutes.HandleFunc("/{id}", taskHandler.Delete).Methods(http.MethodDelete)
	taskRoutes.HandleFunc("/{id}/toggle", taskHandler.Toggle).Methods(http.MethodPost)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
