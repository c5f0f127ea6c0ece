// Package main is the entry point for the orbit camera viewer.
package main

import (
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/orbitcam/internal/config"
	"github.com/Faultbox/orbitcam/internal/logger"
	"github.com/Faultbox/orbitcam/internal/metrics"
	"github.com/Faultbox/orbitcam/internal/viewer"
)

var flagRecord = flag.String("record", "", "Write an input trace to this file on exit")

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, configPath, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== OrbitCam ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if cfg.Metrics.Addr != "" {
		serveMetrics(cfg.Metrics.Addr)
	}

	v, err := viewer.New(cfg, viewer.Options{
		ConfigPath: configPath,
		RecordPath: *flagRecord,
	})
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		os.Exit(1)
	}
	defer v.Close()

	if err := v.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}

// serveMetrics exposes Prometheus metrics in the background.
func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("serving metrics", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()
}
