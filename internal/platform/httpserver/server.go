package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	authorization "github.com/toma2023/fluent-academy-serverside/contexts/identity-access/authorization-service"
	sessiontoken "github.com/toma2023/fluent-academy-serverside/contexts/identity-access/session-token-service"
	classcatalog "github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/class-catalog-service"
	enrollment "github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/enrollment-service"
	selectionledger "github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/selection-ledger"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "github.com/toma2023/fluent-academy-serverside/internal/platform/httpserver/docs"
)

// Modules groups the context modules served over HTTP.
type Modules struct {
	SessionToken  sessiontoken.Module
	Authorization authorization.Module
	Catalog       classcatalog.Module
	Selections    selectionledger.Module
	Enrollment    enrollment.Module
}

type Config struct {
	Addr string
	// EnforceRoleGuards puts admin/instructor checks on the class status,
	// feedback, class update and role assignment routes.
	EnforceRoleGuards bool
	HealthCheck       func(context.Context) error
}

type Server struct {
	mux           *http.ServeMux
	http          *http.Server
	logger        *slog.Logger
	addr          string
	enforceGuards bool
	healthCheck   func(context.Context) error

	sessions      sessiontoken.Module
	authorization authorization.Module
	catalog       classcatalog.Module
	selections    selectionledger.Module
	enrollment    enrollment.Module
}

func New(modules Modules, cfg Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	addr := cfg.Addr
	if addr == "" {
		addr = ":5000"
	}

	s := &Server{
		mux:           http.NewServeMux(),
		logger:        logger,
		addr:          addr,
		enforceGuards: cfg.EnforceRoleGuards,
		healthCheck:   cfg.HealthCheck,
		sessions:      modules.SessionToken,
		authorization: modules.Authorization,
		catalog:       modules.Catalog,
		selections:    modules.Selections,
		enrollment:    modules.Enrollment,
	}
	s.registerRoutes()
	s.http = &http.Server{
		Addr:              addr,
		Handler:           withCORS(s.mux),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler exposes the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Start blocks until the server stops. A graceful Shutdown returns nil.
func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests,
// including enrollment dispatches that run after a payment response.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("http server shutting down",
		"event", "http_server_shutdown",
		"module", "internal/platform/httpserver",
		"layer", "platform",
	)
	return s.http.Shutdown(ctx)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	s.mux.HandleFunc("GET /{$}", s.handleRoot)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)

	s.mux.HandleFunc("POST /jwt", s.handleIssueToken)
	s.mux.HandleFunc("POST /users", s.handleRegisterUser)
	s.mux.HandleFunc("GET /users", s.handleListUsers)
	s.mux.HandleFunc("GET /users/admin/{email}", s.handleCheckAdmin)
	s.mux.HandleFunc("PATCH /users/admin/{id}", s.handleMakeAdmin)
	s.mux.HandleFunc("GET /users/instructor/{email}", s.handleCheckInstructor)
	s.mux.HandleFunc("PATCH /users/instructor/{id}", s.handleMakeInstructor)

	s.mux.HandleFunc("GET /instructors", s.handleListInstructors)
	s.mux.HandleFunc("POST /addClass", s.handleCreateClass)
	s.mux.HandleFunc("GET /addClass", s.handleListClasses)
	s.mux.HandleFunc("GET /addClass/{id}", s.handleGetClass)
	s.mux.HandleFunc("PATCH /addClass/{id}", s.handleSetClassStatus)
	s.mux.HandleFunc("PUT /updateMyClass/{id}", s.handleUpdateClass)
	s.mux.HandleFunc("PUT /addFeedback/{id}", s.handleSetClassFeedback)
	s.mux.HandleFunc("GET /topClass", s.handleTopClasses)

	s.mux.HandleFunc("POST /selects", s.handleAddSelection)
	s.mux.HandleFunc("GET /selects", s.handleListSelections)
	s.mux.HandleFunc("GET /selects/{id}", s.handleGetSelection)
	s.mux.HandleFunc("DELETE /selects/{id}", s.handleRemoveSelection)

	s.mux.HandleFunc("POST /create-payment-intent", s.handleCreatePaymentIntent)
	s.mux.HandleFunc("POST /payments", s.handleCompletePayment)
	s.mux.HandleFunc("GET /payments/{email}", s.handleListPayments)
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("Fluent academy is running"))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.healthCheck != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.healthCheck(ctx); err != nil {
			s.logger.Warn("health check failed",
				"event", "http_health_check_failed",
				"module", "internal/platform/httpserver",
				"layer", "platform",
				"error", err.Error(),
			)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// withCORS allows browser clients on any origin, matching the open cors()
// setup the web client was built against.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers := w.Header()
		headers.Set("Access-Control-Allow-Origin", "*")
		headers.Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		headers.Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func decodeJSON(r *http.Request, out any) error {
	return json.NewDecoder(r.Body).Decode(out)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writePlainError answers with a bare text body, the format older clients
// expect from the listing endpoints. message names the failed operation and
// never carries driver error text.
func writePlainError(w http.ResponseWriter, status int, message string) {
	http.Error(w, message, status)
}
