// Package main tessellates the configured surface without opening a window
// and reports the resulting mesh.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/cassini/internal/config"
	"github.com/Faultbox/cassini/internal/engine/mesh"
	"github.com/Faultbox/cassini/internal/logger"
)

var (
	flagWriteConfig = flag.String("write-config", "", "Write the effective config to this path")
	flagSaveConfig  = flag.Bool("save-config", false, "Write the effective config to the user config directory")
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if *flagWriteConfig != "" {
		if err := cfg.SaveTo(*flagWriteConfig); err != nil {
			logger.Error("failed to write config", zap.String("path", *flagWriteConfig), zap.Error(err))
			os.Exit(1)
		}
		logger.Info("config written", zap.String("path", *flagWriteConfig))
	}
	if *flagSaveConfig {
		if err := cfg.Save(); err != nil {
			logger.Error("failed to save config", zap.String("dir", config.ConfigDir()), zap.Error(err))
			os.Exit(1)
		}
		logger.Info("config saved", zap.String("dir", config.ConfigDir()))
	}

	d := cfg.MeshDomain()
	start := time.Now()
	m, err := mesh.Tessellate(cfg.Cassini(), d)
	if err != nil {
		logger.Error("tessellation failed", zap.Error(err))
		os.Exit(1)
	}
	took := time.Since(start)
	st := m.Stats()

	logger.Debug("mesh generated",
		zap.Int("triangles", st.Triangles),
		zap.Duration("took", took),
	)

	fmt.Printf("surface:   A=%g K=%g scale=%g\n", cfg.Surface.A, cfg.Surface.K, cfg.Surface.Scale)
	fmt.Printf("domain:    u [%g, %g) x %d, z [%g, %g) x %d\n",
		d.MinU, d.MaxU, d.StepsU, d.MinZ, d.MaxZ, d.StepsZ)
	fmt.Printf("triangles: %d\n", st.Triangles)
	fmt.Printf("vertices:  %d\n", st.Vertices)
	fmt.Printf("non-finite vertices: %d\n", st.NonFiniteVertices)
	fmt.Printf("degenerate normals:  %d\n", st.DegenerateNormals)
	fmt.Printf("took:      %s\n", took)
}
