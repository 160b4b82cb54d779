package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/at-ishikawa/verbdrill/internal/bootstrap"
	"github.com/at-ishikawa/verbdrill/internal/catalog"
	"github.com/at-ishikawa/verbdrill/internal/config"
	"github.com/at-ishikawa/verbdrill/internal/database"
	"github.com/at-ishikawa/verbdrill/internal/learning"
	"github.com/at-ishikawa/verbdrill/internal/practice"
	"github.com/at-ishikawa/verbdrill/internal/server"
)

var configFile string

func main() {
	rootCmd := &cobra.Command{
		Use:           "verbdrill-server",
		Short:         "Verb drill HTTP server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context())
		},
	}
	rootCmd.Flags().StringVar(&configFile, "config", "", "config file path")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	app := bootstrap.New()

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loadConfig() > %w", err)
	}

	handler, err := newDrillHandler(cfg, app)
	if err != nil {
		return err
	}
	path, h := server.NewDrillServiceHandler(handler)

	mux := http.NewServeMux()
	mux.Handle(path, h)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           corsMiddleware(h2c.NewHandler(mux, &http2.Server{}), cfg.Server.CORS.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}
	app.AddShutdownHook("server", srv.Shutdown)

	return app.Run(ctx, func(ctx context.Context) error {
		slog.Default().Info("starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
}

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	return loader.Load()
}

// newDrillHandler wires the catalog and the history backend. Database connections are closed on shutdown.
func newDrillHandler(cfg *config.Config, app *bootstrap.App) (*server.DrillHandler, error) {
	lexicon, err := catalog.Load(cfg.Catalog.File)
	if err != nil {
		return nil, fmt.Errorf("catalog.Load() > %w", err)
	}
	defaults, err := practice.ParseSettings(cfg.Practice.VerbCount, cfg.Practice.Pronouns, cfg.Practice.Tenses, cfg.Practice.Forms)
	if err != nil {
		return nil, fmt.Errorf("practice.ParseSettings() > %w", err)
	}

	var repository learning.AttemptRepository
	switch cfg.History.Backend {
	case config.HistoryBackendDB:
		db, err := database.Open(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("database.Open() > %w", err)
		}
		app.AddShutdownHook("database", func(ctx context.Context) error {
			return db.Close()
		})
		repository = learning.NewDBAttemptRepository(db)
	default:
		repository = learning.NewYAMLAttemptRepository(cfg.History.Directory)
	}

	handler, err := server.NewDrillHandler(lexicon, defaults, repository, rand.New(rand.NewSource(time.Now().UnixNano())))
	if err != nil {
		return nil, fmt.Errorf("server.NewDrillHandler() > %w", err)
	}
	return handler, nil
}

func corsMiddleware(next http.Handler, allowedOrigins []string) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowed[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Max-Age", "3600")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
