package spatial

import (
	"math"
	"testing"

	"github.com/banshee-data/velocity.report/internal/sim/geom"
)

func TestComposeTranslationOnly(t *testing.T) {
	parent := Transform{Position: geom.Point{X: 1, Y: 2, Z: 3}}
	child := Transform{Position: geom.Point{X: 1}}

	got := parent.Compose(child).Position
	want := geom.Point{X: 2, Y: 2, Z: 3}
	if got != want {
		t.Errorf("Compose() position = %v, want %v", got, want)
	}
}

func TestComposeRotatesChildPositionByParentOrientation(t *testing.T) {
	parent := Transform{Orientation: geom.Vector{Z: float32(math.Pi / 2)}}
	child := Transform{Position: geom.Point{X: 1}}

	got := parent.Compose(child).Position
	want := geom.Point{Y: 1}
	if diff := got.Sub(want).Magnitude(); diff > 1e-4 {
		t.Errorf("Compose() position = %v, want approximately %v", got, want)
	}
}

func TestForwardDirectionIdentity(t *testing.T) {
	got := Identity().ForwardDirection()
	if got != (geom.Vector{Z: 1}) {
		t.Errorf("ForwardDirection() of identity = %v, want (0,0,1)", got)
	}
}
