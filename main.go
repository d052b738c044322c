package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pnw_targets/internal/app"
	"pnw_targets/internal/config"
	"pnw_targets/internal/handler"
	"pnw_targets/internal/pnw"
	"pnw_targets/internal/processing"
	"pnw_targets/internal/ratelimit"
	"pnw_targets/internal/report"
	"pnw_targets/internal/sheets"

	"github.com/rs/zerolog/log"
)

func main() {
	app.SetupEnvironment()

	// Parse command line flags
	nationID := flag.Int("nation", 0, "Your nation ID")
	mode := flag.String("mode", "raid", "Search mode: raid or beige")
	limit := flag.Int("limit", config.DefaultTargetLimit, "Maximum number of targets to return")
	pages := flag.Int("pages", config.DefaultMaxPages, "Maximum number of nation pages to scan")
	serve := flag.Bool("serve", false, "Run the HTTP search server instead of a single search")
	flag.Parse()

	cfg, err := app.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	client := pnw.NewClient(cfg.PNWAPIKey)

	if *serve {
		runServer(cfg, client)
		return
	}

	if *nationID <= 0 {
		log.Fatal().Msg("A positive -nation ID is required")
	}

	opts := processing.SearchOptions{Limit: *limit, MaxPages: *pages}
	if err := runSearch(context.Background(), cfg, client, *mode, *nationID, opts); err != nil {
		log.Fatal().Err(err).Str("mode", *mode).Int("nation_id", *nationID).Msg("Search failed")
	}
}

// runSearch runs one search, prints the result table and optionally exports it
func runSearch(ctx context.Context, cfg *app.Config, client *pnw.Client, mode string, nationID int, opts processing.SearchOptions) error {
	log.Info().
		Str("mode", mode).
		Int("nation_id", nationID).
		Int("limit", opts.Limit).
		Int("max_pages", opts.MaxPages).
		Msg("Starting PnW target search")

	var table report.Table
	switch mode {
	case "raid":
		result, err := processing.NewRaidFinder(client).Find(ctx, nationID, opts)
		if err != nil {
			return err
		}
		table = report.RaidTable(result)
	case "beige":
		result, err := processing.NewBeigeFinder(client).Find(ctx, nationID, opts)
		if err != nil {
			return err
		}
		table = report.BeigeTable(result)
	default:
		return fmt.Errorf("%w: unknown mode %q, expected raid or beige", app.ErrInput, mode)
	}

	if err := report.Render(os.Stdout, table); err != nil {
		return fmt.Errorf("failed to print results: %w", err)
	}

	if cfg.ExportEnabled() {
		sheetsClient, err := sheets.NewClient(ctx, cfg.CredentialsFile)
		if err != nil {
			return err
		}
		kind := "Raid"
		if mode == "beige" {
			kind = "Beige"
		}
		exporter := sheets.NewExporter(sheetsClient, cfg.SpreadsheetID)
		if err := exporter.Export(ctx, sheets.SheetName(kind, nationID), table); err != nil {
			return fmt.Errorf("failed to export results: %w", err)
		}
	}

	log.Info().
		Int64("api_calls", client.GetAPICallCount()).
		Int("targets", len(table.Rows)).
		Msg("Completed PnW target search")

	return nil
}

// runServer serves searches over HTTP until SIGINT or SIGTERM
func runServer(cfg *app.Config, client *pnw.Client) {
	store, closeStore := newQuotaStore(cfg)
	defer closeStore()

	limiter := ratelimit.NewLimiter(store, config.DefaultResilienceConfig.Quota)
	h := handler.NewHandler(processing.NewRaidFinder(client), processing.NewBeigeFinder(client), limiter)

	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      h.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 10 * time.Minute, // a full scan can take several minutes
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.ListenAddr).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown error")
	}

	log.Info().
		Int64("api_calls", client.GetAPICallCount()).
		Msg("Server stopped")
}

// newQuotaStore picks Redis when REDIS_URL is set and the in-process store otherwise
func newQuotaStore(cfg *app.Config) (ratelimit.Store, func()) {
	if cfg.RedisURL == "" {
		log.Info().Msg("Using in-memory quota store")
		return ratelimit.NewMemoryStore(), func() {}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	store, err := ratelimit.NewRedisStore(ctx, cfg.RedisURL, config.SearchQuotaWindow)
	if err != nil {
		log.Fatal().Err(err).Msg("Redis connection failed")
	}
	log.Info().Msg("Using Redis quota store")

	return store, func() {
		if err := store.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close Redis connection")
		}
	}
}
