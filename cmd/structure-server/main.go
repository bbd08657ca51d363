// Command structure-server serves crystal structure generation over HTTP,
// with Prometheus metrics on /metrics and optional OpenTelemetry tracing.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/materialsfoundry/crystal-generator/core"
	"github.com/materialsfoundry/crystal-generator/internal/logging"
	"github.com/materialsfoundry/crystal-generator/internal/observability"
	"github.com/materialsfoundry/crystal-generator/internal/server"
	"github.com/materialsfoundry/crystal-generator/kb"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	cacheSize := flag.Int("cache-size", 256, "response cache entries")
	envFile := flag.String("env-file", "", "optional .env file with LOG_* and TRACING_* settings")
	flag.Parse()

	if *envFile != "" {
		if err := godotenv.Load(*envFile); err != nil {
			os.Stderr.WriteString("failed to load env file: " + err.Error() + "\n")
			os.Exit(1)
		}
	} else {
		// Best-effort load of a local .env; absence is fine.
		_ = godotenv.Load()
	}

	log := logging.NewFromEnv()
	ctx := context.Background()

	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv(), log)
	if err != nil {
		log.Error(ctx, "tracing init failed", logging.Err(err))
		os.Exit(1)
	}
	defer observability.ShutdownWithTimeout(context.Background(), shutdownTracing, log)

	metrics, err := observability.NewGeneratorCollector(nil)
	if err != nil {
		log.Error(ctx, "metrics init failed", logging.Err(err))
		os.Exit(1)
	}

	registry := kb.NewRegistry()
	metrics.RegistryElements.Set(float64(registry.Len()))

	gen := core.NewGenerator(registry, core.WithLogger(log))
	srv, err := server.New(gen, registry, log, metrics, server.Config{CacheSize: *cacheSize})
	if err != nil {
		log.Error(ctx, "server init failed", logging.Err(err))
		os.Exit(1)
	}

	httpServer := &http.Server{
		Addr:              *addr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "structure server listening", logging.String("addr", *addr))
		errCh <- httpServer.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info(ctx, "shutting down", logging.String("signal", sig.String()))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Warn(ctx, "server shutdown failed", logging.Err(err))
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "server failed", logging.Err(err))
			os.Exit(1)
		}
	}
}
