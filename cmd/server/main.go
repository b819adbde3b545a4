package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/simpledraw/simpledraw/internal/auth"
	"github.com/simpledraw/simpledraw/internal/collab"
	"github.com/simpledraw/simpledraw/internal/config"
	"github.com/simpledraw/simpledraw/internal/db"
	"github.com/simpledraw/simpledraw/internal/discovery"
	"github.com/simpledraw/simpledraw/internal/export"
	mw "github.com/simpledraw/simpledraw/internal/middleware"
	"github.com/simpledraw/simpledraw/internal/project"
	"github.com/simpledraw/simpledraw/internal/store"
	"github.com/simpledraw/simpledraw/internal/typeid"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	snapshots, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		slog.Error("open snapshot store", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	authService := auth.NewService(cfg.JWTSecret)
	authHandler := auth.NewHandler(authService)

	projectService := project.NewService(snapshots, authService)
	projectHandler := project.NewHandler(projectService)

	hub := collab.NewHub(projectService.LoadDocument, projectService.SaveDocument, cfg.AutosaveInterval)
	go hub.Run()

	exportHandler := export.NewHandler()

	if cfg.MDNSAdvertise {
		server, err := discovery.Advertise(cfg.MDNSService, cfg.Port)
		if err != nil {
			slog.Warn("mdns advertise failed", "error", err)
		} else {
			defer server.Shutdown()
			slog.Info("advertising on mdns", "service", cfg.MDNSService)
		}
	}

	r := mux.NewRouter()

	// Global middleware
	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	r.Use(mw.CORS(cfg.Origins()))

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Export endpoint (public)
	r.HandleFunc("/export/pdf", exportHandler.ExportPDF).Methods("POST", "OPTIONS")

	// Creating a project is public and returns its first share token
	r.HandleFunc("/api/projects", projectHandler.Create).Methods("POST", "OPTIONS")

	// Protected project routes
	api := r.PathPrefix("/api/projects/{projectId}").Subrouter()
	api.Use(authService.ProjectMiddleware)

	api.HandleFunc("", projectHandler.Delete).Methods("DELETE")
	api.HandleFunc("/snapshots/latest", projectHandler.GetLatestSnapshot).Methods("GET")
	api.HandleFunc("/snapshots", projectHandler.SaveSnapshot).Methods("PUT")
	api.HandleFunc("/tokens", authHandler.Share).Methods("POST")

	// WebSocket endpoint
	ws := r.PathPrefix("/ws/project/{projectId}").Subrouter()
	ws.Use(authService.ProjectMiddleware)
	ws.HandleFunc("", func(w http.ResponseWriter, r *http.Request) {
		handleWebSocket(w, r, hub, cfg.Origins())
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server")

		// Stop hub first to save all modified drawings
		slog.Info("saving all drawings...")
		hub.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server starting", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

// openStore picks Postgres when DATABASE_URL is set and the data directory
// otherwise.
func openStore(ctx context.Context, cfg *config.Config) (store.SnapshotStore, func(), error) {
	if !cfg.UsePostgres() {
		fs, err := store.NewFileStore(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		slog.Info("using file store", "dir", cfg.DataDir)
		return fs, func() {}, nil
	}

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}
	pg := store.NewPostgresStore(pool)
	if err := pg.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	slog.Info("using postgres store")
	return pg, pool.Close, nil
}

func handleWebSocket(w http.ResponseWriter, r *http.Request, hub *collab.Hub, origins []string) {
	grant := auth.GrantFromContext(r.Context())
	if grant == nil {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}

	displayName := grant.DisplayName
	if displayName == "" {
		displayName = "guest-" + uuid.New().String()[:8]
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: originPatterns(origins),
	})
	if err != nil {
		slog.Error("websocket accept", "error", err)
		return
	}

	clientID := typeid.NewClientID()
	client := collab.NewClient(hub, conn, displayName, displayName, grant.ProjectID, clientID)

	hub.Register(client)

	ctx := r.Context()
	go client.WritePump(ctx)
	client.ReadPump(ctx)
}

// originPatterns strips schemes, since websocket origin patterns match hosts.
func originPatterns(origins []string) []string {
	patterns := make([]string, 0, len(origins))
	for _, o := range origins {
		if u, err := url.Parse(o); err == nil && u.Host != "" {
			patterns = append(patterns, u.Host)
		}
	}
	return patterns
}
