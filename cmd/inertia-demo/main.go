// Command inertia-demo serves a small Inertia.js application.
//
// It is configured with environment variables:
//
//	INERTIA_ADDR         listen address (default ":8080")
//	INERTIA_VERSION      asset version, overridden by the Vite manifest
//	INERTIA_MANIFEST     path to the Vite manifest, enables production assets
//	INERTIA_ASSETS_PATH  URL path of the built assets (default "/build/")
//	INERTIA_SSR_URL      URL of the server-side rendering service
//	INERTIA_LOG_LEVEL    log level (default "info")
//	INERTIA_CONCURRENCY  number of props resolved concurrently
//	INERTIA_DEV          load assets from the Vite dev server
package main

import (
	"context"
	"embed"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"go.inout.gg/inertia/v2"
	"go.inout.gg/inertia/v2/contrib/vite"
)

//go:embed templates/*.html
var templates embed.FS

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
		With().
		Timestamp().
		Str("app", "inertia-demo").
		Logger()

	if err := run(logger); err != nil {
		logger.Fatal().Err(err).Msg("inertia-demo failed")
	}
}

func run(logger zerolog.Logger) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	logger = logger.Level(level)

	renderer, err := newRenderer(cfg)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newRouter(renderer, newStore(), logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)

	go func() {
		logger.Info().Str("addr", cfg.Addr).Str("version", renderer.Version()).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		logger.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}

	return nil
}

// newRenderer creates the Inertia renderer for cfg. Assets are resolved from
// the Vite manifest when it is configured, whose content hash is then used as
// the asset version.
func newRenderer(cfg *config) (*inertia.Renderer, error) {
	viteConfig := vite.Config{
		Manifest:     nil,
		TemplateName: "",
		ViteAddress:  "",
		AssetsPath:   cfg.AssetsPath,
		Dev:          cfg.Dev,
	}
	version := cfg.Version

	if cfg.Manifest != "" && !cfg.Dev {
		m, err := vite.ParseManifestFromFS(os.DirFS(filepath.Dir(cfg.Manifest)), filepath.Base(cfg.Manifest))
		if err != nil {
			return nil, err
		}

		viteConfig.Manifest = m
		version = m.Version()
	} else {
		// Without a manifest the assets are served by the Vite dev server.
		viteConfig.Dev = true
	}

	t, err := vite.FromFS(templates, "templates/*.html", &viteConfig)
	if err != nil {
		return nil, err
	}

	//nolint:exhaustruct
	config := inertia.Config{
		Version:     version,
		RootView:    "app.html",
		Concurrency: cfg.Concurrency,
	}

	if cfg.SSRURL != "" {
		config.SSRClient = inertia.NewHTTPSSRClient(cfg.SSRURL, nil)
	}

	return inertia.NewFromTemplate(t, &config), nil
}
