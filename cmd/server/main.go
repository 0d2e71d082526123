package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/registrar/internal/auth"
	"github.com/mmynk/registrar/internal/config"
	"github.com/mmynk/registrar/internal/controller"
	"github.com/mmynk/registrar/internal/metrics"
	"github.com/mmynk/registrar/internal/middleware"
	"github.com/mmynk/registrar/internal/records"
	"github.com/mmynk/registrar/internal/service"
	"github.com/mmynk/registrar/internal/storage/sqlite"
	"github.com/mmynk/registrar/pkg/api"
	"github.com/mmynk/registrar/pkg/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("Failed to load .env file", "error", err)
	}

	cfg, err := config.Load("")
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	kv, err := sqlite.New(cfg.Storage.Path, sqlite.WithQuota(cfg.Storage.Quota))
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer kv.Close()
	slog.Info("Storage initialized", "database", cfg.Storage.Path, "key", cfg.Storage.Key, "quota", cfg.Storage.Quota)

	store := records.NewStore(kv, cfg.Storage.Key)
	m := metrics.New()

	opts := []controller.Option{controller.WithObserver(m)}
	if cfg.Registry.StrictValidation {
		opts = append(opts, controller.WithValidation())
	}

	interceptors := []connect.Interceptor{middleware.LoggingInterceptor()}
	var authSvc *service.AuthService
	if cfg.Auth.Enabled() {
		jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
		authSvc = service.NewAuthService(
			auth.NewAdminAuthenticator(cfg.Auth.AdminUser, cfg.Auth.AdminPasswordHash),
			jwtManager,
		)
		interceptors = append(interceptors, middleware.RequireAuth(jwtManager, api.LoginProcedure))
		slog.Info("Admin login enabled", "user", cfg.Auth.AdminUser, "token_ttl", cfg.Auth.TokenTTL)
	}

	svc := service.NewRegistryService(store, authSvc, opts...)
	if all, err := store.LoadAll(ctx); err == nil {
		m.SetRecords(len(all))
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(loggingMiddleware)
	r.Use(corsMiddleware)

	path, handler := api.NewRegistryServiceHandler(svc, connect.WithInterceptors(interceptors...))
	r.Mount(path, handler)
	r.Handle("/metrics", m.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if _, _, err := kv.GetItem(r.Context(), store.Key()); err != nil {
			http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	})

	if staticDir, ok := resolveStatic(cfg.Server.StaticPath); ok {
		slog.Info("Serving static files", "path", staticDir)
		r.NotFound(staticHandler(staticDir))
	}

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           h2c.NewHandler(r, &http2.Server{}),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	slog.Info("Connect server starting", "address", cfg.Server.Addr)
	if err := runServer(ctx, srv); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func resolveStatic(staticPath string) (string, bool) {
	staticDir, err := filepath.Abs(staticPath)
	if err != nil {
		slog.Warn("Failed to resolve static path", "path", staticPath, "error", err)
		return "", false
	}
	info, err := os.Stat(staticDir)
	if err != nil || !info.IsDir() {
		return "", false
	}
	return staticDir, true
}

// staticHandler serves files from staticDir, falling back to index.html for
// unknown paths.
func staticHandler(staticDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		urlPath := r.URL.Path
		if urlPath == "/" {
			urlPath = "/index.html"
		}

		filePath := filepath.Join(staticDir, filepath.Clean(urlPath))
		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
			return
		}

		http.ServeFile(w, r, filePath)
	}
}

// loggingMiddleware logs all incoming requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		slog.Debug("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"remote_addr", r.RemoteAddr,
			"request_id", chimiddleware.GetReqID(r.Context()),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms, X-Request-Id")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms, X-Request-Id")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
