package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/members-club/webserver/config"
	"github.com/members-club/webserver/internal/auth"
	"github.com/members-club/webserver/internal/db"
	"github.com/members-club/webserver/internal/handlers"
	"github.com/members-club/webserver/internal/services"
	"github.com/members-club/webserver/internal/store"
	"github.com/members-club/webserver/internal/view"
)

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	db         *sql.DB
}

// New constructs a Server with basic middleware and defaults.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	if cfg.Session.Secret == "" {
		return nil, errors.New("SESSION_SECRET is required")
	}

	dbConn, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	dataStore := store.New(dbConn)
	userRepo := store.NewUserRepository(dataStore, cfg.Retention.MaxUsers)
	postRepo := store.NewPostRepository(dataStore, cfg.Retention.MaxPosts)
	sessionRepo := store.NewSessionRepository(dataStore)

	userService := services.NewUserService(userRepo, cfg.AdminSecret)
	postService := services.NewPostService(postRepo)
	authService := auth.NewService(userRepo, sessionRepo, cfg.Session)

	renderer, err := view.NewRenderer()
	if err != nil {
		_ = dbConn.Close()
		return nil, err
	}

	userHandler := handlers.NewUserHandler(renderer, userService, postService, authService)
	postHandler := handlers.NewPostHandler(renderer, postService)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
		authService.Middleware,
	)
	router.Get("/healthz", handlers.Healthz)
	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/posts", http.StatusSeeOther)
	})
	router.Route("/user", func(r chi.Router) {
		handlers.UserRouter(r, userHandler)
	})
	router.Route("/posts", func(r chi.Router) {
		handlers.PostRouter(r, postHandler)
	})

	port := cfg.ServerPort
	if port == 0 {
		port = 8080
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		db:         dbConn,
	}, nil
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown attempts a graceful shutdown.
func (s *Server) Shutdown() error {
	if s.db != nil {
		_ = s.db.Close()
	}
	return s.httpServer.Close()
}
