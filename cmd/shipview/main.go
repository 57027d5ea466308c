// shipview is a real-time triangle-mesh viewer with Phong shading,
// planar shadows, procedural motion and region-based hull coloring.
package main

import (
	"fmt"
	"os"

	"github.com/xlab/closer"
	"go.uber.org/zap"

	"github.com/orbitlab/shipview/internal/app"
	"github.com/orbitlab/shipview/internal/config"
	"github.com/orbitlab/shipview/internal/logger"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	closer.Bind(logger.Sync)

	viewer, err := app.New(cfg)
	if err != nil {
		logger.Error("startup failed", zap.Error(err))
		closer.Fatalln("startup failed:", err)
	}
	closer.Bind(viewer.Close)

	if err := viewer.Run(); err != nil {
		logger.Error("frame loop failed", zap.Error(err))
		closer.Fatalln("frame loop failed:", err)
	}

	// Runs the bound cleanups and exits.
	closer.Close()
}
