package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/electrium-mobility/rolesync/pkg/utils/logging"
	"github.com/electrium-mobility/rolesync/pkg/utils/safe"
)

type Server struct {
	router         *chi.Mux
	commandHandler *CommandHandler
	signingSecret  string
}

type Options func(*Server)

// WithSlashCommand mounts the slash command endpoint behind signature
// verification.
func WithSlashCommand(handler *CommandHandler, signingSecret string) Options {
	return func(s *Server) {
		s.commandHandler = handler
		s.signingSecret = signingSecret
	}
}

func New(opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
	}
	for _, opt := range opts {
		opt(s)
	}

	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", healthHandler)

	if s.commandHandler != nil {
		r.Route("/hooks/slack", func(r chi.Router) {
			r.Use(slackSignatureMiddleware(s.signingSecret))
			r.Post("/command", s.commandHandler.ServeHTTP)
		})
	}

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	resp := map[string]string{"status": "ok"}
	data, _ := json.Marshal(resp)
	safe.Write(r.Context(), w, data)
}

// accessLogger logs every HTTP request with its status and duration.
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.From(r.Context()).Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
