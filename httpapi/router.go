package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"classicmatch"
)

// Options configures the API server.
type Options struct {
	Engine         *classicmatch.Engine
	Profiles       ProfileStore
	Chat           ChatStore
	Contact        ContactStore
	Logger         zerolog.Logger
	AllowedOrigins []string
	// RequestsPerMinute caps each client IP across the API. Zero means the
	// default of 100.
	RequestsPerMinute int
	// Registry receives the API metrics. Nil uses a private registry, which
	// keeps tests from colliding on duplicate registration.
	Registry *prometheus.Registry
}

// Server carries the wired handlers. Build it with NewServer and mount
// Handler.
type Server struct {
	engine    *classicmatch.Engine
	profiles  ProfileStore
	chat      ChatStore
	contact   ContactStore
	logger    zerolog.Logger
	metrics   *apiMetrics
	registry  *prometheus.Registry
	origins   []string
	perMinute int
}

// NewServer wires the handlers.
func NewServer(opts Options) *Server {
	registry := opts.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	return &Server{
		engine:    opts.Engine,
		profiles:  opts.Profiles,
		chat:      opts.Chat,
		contact:   opts.Contact,
		logger:    opts.Logger,
		metrics:   newAPIMetrics(registry),
		registry:  registry,
		origins:   opts.AllowedOrigins,
		perMinute: opts.RequestsPerMinute,
	}
}

// Handler builds the chi router with the full route table.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	allowed := s.origins
	if len(allowed) == 0 {
		allowed = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowed,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           int((10 * time.Minute).Seconds()),
	}))

	perMinute := s.perMinute
	if perMinute <= 0 {
		perMinute = 100
	}
	r.Use(httprate.LimitByIP(perMinute, time.Minute))
	r.Use(s.withClientIP)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Post("/signup", s.count("signup", s.handleSignup))
		r.Post("/signup/validate", s.count("signup_validate", s.handleValidateSignup))
		r.Post("/login", s.count("login", s.handleLogin))
		r.Post("/admin/login", s.count("admin_login", s.handleAdminLogin))

		r.Post("/verify", s.count("verify", s.handleVerify))
		r.Post("/verify/resend", s.count("verify_resend", s.handleResendConfirmation))
		r.Post("/password/request", s.count("password_request", s.handlePasswordRequest))
		r.Post("/password/reset", s.count("password_reset", s.handlePasswordReset))

		r.Get("/session", s.count("session", s.handleSessionCheck))

		r.Group(func(r chi.Router) {
			r.Use(s.requireMember)
			r.Get("/public-chat", s.count("chat_list", s.handleChatList))
			r.Post("/public-chat", s.count("chat_post", s.handleChatPost))
			r.Get("/profile", s.count("profile_get", s.handleProfileGet))
			r.Post("/profile", s.count("profile_post", s.handleProfilePost))
			r.Post("/contact", s.count("contact", s.handleContact))
		})

		r.Group(func(r chi.Router) {
			r.Use(s.requireAdmin)
			r.Get("/admin/contact", s.count("admin_contact", s.handleAdminContactList))
		})
	})

	r.Get("/logout", s.count("logout", s.handleLogout))
	r.Post("/admin/logout", s.count("admin_logout", s.handleAdminLogout))

	return r
}

func (s *Server) count(route string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.requests.WithLabelValues(route).Inc()
		h(w, r)
	}
}
