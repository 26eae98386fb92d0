package shape

import (
	"testing"

	"github.com/banshee-data/velocity.report/internal/sim/geom"
	"github.com/banshee-data/velocity.report/internal/sim/spatial"
)

func TestCubeSurfaceMeshPointCount(t *testing.T) {
	node := spatial.NewNode(spatial.Identity())
	cube := NewCube("c1", node, 2.0)

	mesh := cube.SurfaceMesh(16)
	n := roundSqrt(16)
	want := 6 * n * n
	if got := mesh.Len(); got != want {
		t.Errorf("SurfaceMesh(16).Len() = %d, want %d", got, want)
	}
}

func TestCubeSurfaceMeshCachedUntilNodeMoves(t *testing.T) {
	node := spatial.NewNode(spatial.Identity())
	cube := NewCube("c1", node, 2.0)

	first := cube.SurfaceMesh(16)
	second := cube.SurfaceMesh(16)
	if first != second {
		t.Error("expected cached mesh to be reused for the same quality and transform")
	}

	node.SetLocalTransform(spatial.Transform{Position: node.LocalTransform().Position.Add(geom.Vector{X: 1})})
	third := cube.SurfaceMesh(16)
	if third == first {
		t.Error("expected mesh cache to be invalidated after the node moved")
	}
}
