// Command tileserver reads single-band GeoTIFF/COG rasters from a local
// directory tree and serves them as colourised, reprojected PNG slippy-map
// tiles over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/pspoerri/geotiles/internal/appconfig"
	"github.com/pspoerri/geotiles/internal/catalog"
	"github.com/pspoerri/geotiles/internal/reader"
	"github.com/pspoerri/geotiles/internal/server"
	"github.com/pspoerri/geotiles/internal/tilecache"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		dataFolder  string
		port        int
		cacheSizeGB float64
		showVersion bool
	)
	flag.StringVar(&dataFolder, "data-folder", "", "Root of the raster tree (default ./data)")
	flag.IntVar(&port, "port", 0, "HTTP listen port (default 8000)")
	flag.Float64Var(&cacheSizeGB, "cache-size-gb", 0, "Tile cache byte budget in GiB (default 2)")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: tileserver [flags]\n\nServe GeoTIFF rasters as XYZ PNG tiles.\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("tileserver %s (commit %s)\n", version, commit)
		return 0
	}

	cfg, err := appconfig.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 1
	}
	applyFlagOverrides(cfg, dataFolder, port, cacheSizeGB)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 1
	}

	log := newLogger(cfg.Logging)

	ready := make(chan struct{})
	cache := tilecache.New(cfg.CacheSizeBytes())

	var lr *reader.LocalReader
	scanErr := make(chan error, 1)
	go func() {
		log.Info().Str("data_folder", cfg.Server.DataFolder).Msg("scanning catalogue")
		cat, err := catalog.Build(cfg.Server.DataFolder, log)
		if err != nil {
			scanErr <- err
			return
		}
		log.Info().Int("layers", cat.Size()).Msg("catalogue ready")
		lr = reader.NewLocalReader(cat, cache)
		close(ready)
		scanErr <- nil
	}()

	// Wait for the initial scan before the HTTP listener starts; no route,
	// /healthz included, is served while the scan runs (spec.md §6's
	// "missing source" startup failure maps to a non-zero exit).
	if err := <-scanErr; err != nil {
		log.Error().Err(err).Msg("catalogue scan failed")
		return 1
	}

	srv := server.New(lr, cache, log, ready)
	httpServer := &http.Server{
		Addr:         addr(cfg.Server.Host, cfg.Server.Port),
		Handler:      srv.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.ReadTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", httpServer.Addr).Msg("listening")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Error().Err(err).Msg("bind failed")
		return 1
	case <-sigCh:
		log.Info().Msg("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
	if err := lr.Close(); err != nil {
		log.Error().Err(err).Msg("closing source rasters")
	}
	return 0
}

func addr(host string, port int) string {
	return fmt.Sprintf("%s:%d", host, port)
}

func applyFlagOverrides(cfg *appconfig.Config, dataFolder string, port int, cacheSizeGB float64) {
	var o appconfig.FlagOverrides
	if dataFolder != "" {
		o.DataFolder = &dataFolder
	}
	if port != 0 {
		o.Port = &port
	}
	if cacheSizeGB != 0 {
		o.CacheSizeGB = &cacheSizeGB
	}
	cfg.Apply(o)
}

func newLogger(cfg appconfig.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	var w = os.Stderr
	logger := zerolog.New(w).Level(level).With().Timestamp().Logger()
	if cfg.Console {
		logger = logger.Output(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen})
	}
	return logger
}
