package server

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/Fukolomka/Sitea/docs"
	"github.com/Fukolomka/Sitea/internal/caseopening"
	"github.com/Fukolomka/Sitea/internal/catalog"
	"github.com/Fukolomka/Sitea/internal/config"
	"github.com/Fukolomka/Sitea/internal/database"
	"github.com/Fukolomka/Sitea/internal/handler"
	"github.com/Fukolomka/Sitea/internal/logger"
	"github.com/Fukolomka/Sitea/internal/metrics"
	"github.com/Fukolomka/Sitea/internal/user"
	"github.com/Fukolomka/Sitea/internal/wallet"
)

// Deps are the services the HTTP API is built on
type Deps struct {
	DBPool         database.Pool
	Tokens         TokenVerifier
	CatalogService catalog.Service
	OpeningService caseopening.Service
	UserService    user.Service
	WalletService  wallet.Service
	AuthHandlers   *handler.AuthHandlers
	AdminCatalog   *handler.AdminCatalogHandler
}

type Server struct {
	httpServer *http.Server
	router     chi.Router
}

// NewServer creates a new Server instance
func NewServer(cfg config.ServerConfig, opening config.OpeningConfig, version string, deps Deps) *Server {
	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()
	openLimiter := NewOpenRateLimiter(opening.RatePerSecond, opening.RateBurst)
	requireAuth := AuthMiddleware(deps.Tokens, cfg.TrustedProxies, detector)

	r.Use(chimw.Recoverer)
	r.Use(SecurityHeadersMiddleware())
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", HeaderAuthorization, "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(SecurityLoggingMiddleware(cfg.TrustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(cfg.MaxBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(deps.DBPool))
	r.Get("/version", handler.HandleVersion(version))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Get("/steam", deps.AuthHandlers.HandleSteamLogin())
			r.Get("/steam/return", deps.AuthHandlers.HandleSteamReturn())
			r.Post("/logout", deps.AuthHandlers.HandleLogout())
		})

		r.Route("/cases", func(r chi.Router) {
			r.Get("/", handler.HandleListCases(deps.CatalogService))
			r.Get("/{id}", handler.HandleGetCase(deps.CatalogService))
			r.With(requireAuth, openLimiter.Middleware(cfg.TrustedProxies)).
				Post("/{id}/open", handler.HandleOpenCase(deps.OpeningService))
		})

		r.Route("/user", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/", handler.HandleGetProfile(deps.UserService))
			r.Get("/inventory", handler.HandleGetInventory(deps.UserService))
			r.Get("/openings", handler.HandleGetOpenings(deps.UserService))
			r.Get("/stats", handler.HandleGetStats(deps.UserService))
			r.Post("/balance", handler.HandleDeposit(deps.WalletService))
			r.Get("/transactions", handler.HandleGetTransactions(deps.WalletService))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(requireAuth, RequireAdmin)
			r.Post("/catalog/reload", deps.AdminCatalog.HandleReloadCatalog)
		})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return &Server{
		httpServer: &http.Server{
			Addr:              cfg.Address(),
			Handler:           r,
			ReadHeaderTimeout: readHeaderTimeout,
			ReadTimeout:       cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			IdleTimeout:       cfg.IdleTimeout,
		},
		router: r,
	}
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func isQuietPath(path string) bool {
	for _, p := range QuietPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		if isQuietPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		ctx := logger.WithRequestID(r.Context(), logger.GenerateRequestID())
		r = r.WithContext(ctx)
		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Session tokens travel in both of these.
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAuthorization) || strings.EqualFold(k, HeaderCookie) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
