package scene

import (
	"testing"

	"github.com/banshee-data/velocity.report/internal/sim/geom"
	"github.com/banshee-data/velocity.report/internal/sim/shape"
	"github.com/banshee-data/velocity.report/internal/sim/spatial"
	"github.com/banshee-data/velocity.report/internal/sim/vehicle"
)

func newTestScene() *Scene {
	root := spatial.NewNode(spatial.Identity())
	v := vehicle.New("rig", root, 1, 1, 1)
	return New(v)
}

func TestMergedCloudIncludesShapesAndExternal(t *testing.T) {
	s := newTestScene()
	node := spatial.NewNode(spatial.Identity())
	s.AddShape(shape.NewCube("box", node, 1.0))

	external := geom.NewPointCloud(1)
	external.Append(geom.Point{X: 9, Y: 9, Z: 9})
	s.SetExternalCloud(external)

	merged := s.MergedCloud(8)
	cubeMesh := shape.NewCube("box", node, 1.0).SurfaceMesh(8)
	want := cubeMesh.Len() + 1
	if merged.Len() != want {
		t.Errorf("MergedCloud().Len() = %d, want %d", merged.Len(), want)
	}
}

func TestSetExternalCloudDoesNotRebuildShapeMesh(t *testing.T) {
	s := newTestScene()
	node := spatial.NewNode(spatial.Identity())
	s.AddShape(shape.NewCube("box", node, 1.0))

	first := s.MergedCloud(8)
	s.SetExternalCloud(geom.NewPointCloud(0))
	second := s.MergedCloud(8)

	if first.Len() != second.Len() {
		t.Errorf("shape contribution changed across SetExternalCloud calls: %d vs %d", first.Len(), second.Len())
	}
}

func TestMergedCloudIsFreshEachCall(t *testing.T) {
	s := newTestScene()
	a := s.MergedCloud(8)
	b := s.MergedCloud(8)
	if a == b {
		t.Error("expected MergedCloud to return a freshly allocated cloud each call")
	}
}
