// Package scene composes a vehicle, a set of static shapes, and an
// external (frame-sourced) point cloud into the single merged cloud the
// solver consumes each tick.
package scene

import (
	"github.com/banshee-data/velocity.report/internal/sim/geom"
	"github.com/banshee-data/velocity.report/internal/sim/shape"
	"github.com/banshee-data/velocity.report/internal/sim/vehicle"
)

// DetectionSink receives a solved detection cloud for a given simulated
// time, so persistence (internal/sim/store) can be wired in without the
// solver depending on it directly.
type DetectionSink interface {
	RecordDetections(timestamp float64, cloud *geom.PointCloud) error
}

// Scene owns a vehicle, a list of static shapes, and the most recently
// published external cloud (typically a frame player's current frame).
type Scene struct {
	vehicle *vehicle.Vehicle
	shapes  []shape.Shape

	externalCloud *geom.PointCloud

	meshCacheValid bool
	meshQuality    int
	shapeMesh      *geom.PointCloud
}

// New returns an empty scene around v.
func New(v *vehicle.Vehicle) *Scene {
	return &Scene{vehicle: v, externalCloud: geom.NewPointCloud(0)}
}

// Vehicle returns the scene's vehicle.
func (s *Scene) Vehicle() *vehicle.Vehicle { return s.vehicle }

// AddShape registers a static shape that contributes to every merged cloud.
func (s *Scene) AddShape(sh shape.Shape) {
	s.shapes = append(s.shapes, sh)
	s.meshCacheValid = false
}

// Shapes returns the scene's registered shapes.
func (s *Scene) Shapes() []shape.Shape { return s.shapes }

// SetExternalCloud stores c as the scene's external cloud (e.g. the
// current frame from a frame player). Shape meshes are not rebuilt.
func (s *Scene) SetExternalCloud(c *geom.PointCloud) {
	s.externalCloud = c
}

// Trajectory delegates to the scene's vehicle.
func (s *Scene) Trajectory() []geom.Point {
	return s.vehicle.Trajectory()
}

// MergedCloud returns the concatenation of every shape's surface mesh at
// quality and the current external cloud. The shape-mesh half is cached
// per quality and invalidated by AddShape; the result itself is a fresh
// allocation each time the merge is recomputed.
func (s *Scene) MergedCloud(quality int) *geom.PointCloud {
	if !s.meshCacheValid || s.meshQuality != quality {
		s.shapeMesh = geom.NewPointCloud(0)
		for _, sh := range s.shapes {
			s.shapeMesh.AppendAll(sh.SurfaceMesh(quality).Points())
		}
		s.meshCacheValid = true
		s.meshQuality = quality
	}

	merged := geom.NewPointCloud(s.shapeMesh.Len() + s.externalCloud.Len())
	merged.AppendAll(s.shapeMesh.Points())
	merged.AppendAll(s.externalCloud.Points())
	return merged
}
