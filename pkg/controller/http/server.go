package http

import (
	"context"
	"html/template"
	"net/http"
	"time"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/secmon-lab/regform/pkg/domain/interfaces"
	"github.com/secmon-lab/regform/pkg/domain/model"
	"github.com/secmon-lab/regform/pkg/domain/types"
	"github.com/secmon-lab/regform/pkg/usecase"
	"github.com/secmon-lab/regform/pkg/utils/logging"
	"github.com/secmon-lab/regform/pkg/utils/safe"
)

// FormUseCase drives per-form validation state
type FormUseCase interface {
	LoadForm(ctx context.Context, id types.FormID) (*model.Form, error)
	HandleFocusLoss(ctx context.Context, id types.FormID, field types.FieldID, value string, surface interfaces.Surface) (*usecase.FocusResult, error)
	SubmitForm(ctx context.Context, id types.FormID, values map[types.FieldID]string, surface interfaces.Surface) (*usecase.SubmitResult, error)
}

type Server struct {
	router       *chi.Mux
	tmpl         *template.Template
	formUC       FormUseCase
	enableSentry bool
}

type Options func(*Server)

// WithSentry attaches a Sentry hub to every request and reports panics
func WithSentry(enabled bool) Options {
	return func(s *Server) {
		s.enableSentry = enabled
	}
}

func New(formUC FormUseCase, opts ...Options) (*Server, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	s := &Server{
		router: r,
		tmpl:   tmpl,
		formUC: formUC,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)
	if s.enableSentry {
		r.Use(sentryhttp.New(sentryhttp.Options{
			Repanic: true,
			Timeout: 2 * time.Second,
		}).Handle)
	}

	r.Get("/health", healthHandler)
	r.Get("/", s.newFormHandler)

	r.Route("/forms/{formID}", func(r chi.Router) {
		r.Use(formIDMiddleware)
		r.Get("/", s.pageHandler)
		r.Post("/focusout", s.focusOutHandler)
		r.Post("/submit", s.submitHandler)
	})

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	safe.Write(r.Context(), w, []byte("ok"))
}

// accessLogger is a middleware that logs HTTP requests
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
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

// requestLogger binds a logger carrying the request ID to the request context
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		logger := logging.From(ctx).With("request_id", middleware.GetReqID(ctx))
		ctx = logging.With(ctx, logger)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
