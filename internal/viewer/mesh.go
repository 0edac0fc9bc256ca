package viewer

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/cassini/internal/config"
	"github.com/Faultbox/cassini/internal/engine/mesh"
	"github.com/Faultbox/cassini/internal/logger"
)

// buildMesh tessellates the surface described by cfg and logs its stats.
func buildMesh(cfg *config.Config) (*mesh.Mesh, error) {
	start := time.Now()
	m, err := mesh.Tessellate(cfg.Cassini(), cfg.MeshDomain())
	if err != nil {
		return nil, err
	}
	LogStats(m.Stats(), time.Since(start))
	return m, nil
}

// LogStats reports a generated mesh, warning when it carries non-finite
// vertices or degenerate normals.
func LogStats(st mesh.Stats, took time.Duration) {
	fields := []zap.Field{
		zap.Int("triangles", st.Triangles),
		zap.Int("vertices", st.Vertices),
		zap.Int("non_finite", st.NonFiniteVertices),
		zap.Int("degenerate_normals", st.DegenerateNormals),
		zap.Duration("took", took),
	}
	if st.NonFiniteVertices > 0 || st.DegenerateNormals > 0 {
		logger.Warn("mesh generated with degenerate samples", fields...)
		return
	}
	logger.Info("mesh generated", fields...)
}
