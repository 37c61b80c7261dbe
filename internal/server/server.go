package server

import (
	"context"
	"fmt"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/maxaizer/intern-match/internal/config"
	"github.com/maxaizer/intern-match/internal/domain/models"
	"github.com/maxaizer/intern-match/internal/metrics"
	log "github.com/sirupsen/logrus"
	"net/http"
	"time"
)

type ApplicationService interface {
	Apply(ctx context.Context, userID string, postingID uint) (string, error)
	SetStatus(ctx context.Context, applicationID string, status string) error
	ListForUser(ctx context.Context, userID string) ([]models.Application, error)
	Summary(ctx context.Context) (*models.ApplicationsSummary, error)
	Get(ctx context.Context, applicationID string) (*models.ApplicationDetails, error)
}

type MatchService interface {
	FindMatches(ctx context.Context, userID string) ([]models.Match, error)
}

type ProfileService interface {
	Get(ctx context.Context, userID string) (*models.Profile, error)
	Save(ctx context.Context, profile models.Profile) error
}

type Catalog interface {
	GetAll(ctx context.Context) ([]models.Posting, error)
	GetByID(ctx context.Context, id uint) (*models.Posting, error)
}

type Services struct {
	Applications ApplicationService
	Matches      MatchService
	Profiles     ProfileService
	Catalog      Catalog
}

type Server struct {
	httpServer *http.Server
	services   Services
	validate   *validator.Validate
}

func New(cfg config.ServerConfig, services Services) *Server {
	s := &Server{
		services: services,
		validate: validator.New(),
	}

	s.httpServer = &http.Server{
		Addr:         cfg.Address,
		Handler:      s.Routes(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(withLogging)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Post("/api/match", s.handleMatch)
	r.Get("/api/profile/{userID}", s.handleGetProfile)
	r.Put("/api/profile/{userID}", s.handleSaveProfile)

	r.Route("/applications", func(r chi.Router) {
		r.Post("/apply", s.handleApply)
		r.Get("/user/{userID}", s.handleUserApplications)
		r.Get("/summary", s.handleSummary)
		r.Get("/{id}", s.handleGetApplication)
		r.Put("/update-status/{id}", s.handleUpdateStatus)
	})

	r.Route("/internships", func(r chi.Router) {
		r.Get("/all", s.handleListInternships)
		r.Get("/{id}", s.handleGetInternship)
	})

	return r
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Infof("server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	log.Info("server stopped")
	return nil
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.WithFields(log.Fields{
			"request_id": middleware.GetReqID(r.Context()),
			"status":     ww.Status(),
		}).Debugf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	jsonResponse(w, http.StatusOK, map[string]any{"success": true, "status": "ok"})
}
