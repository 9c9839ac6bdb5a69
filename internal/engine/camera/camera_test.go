package camera

import (
	"testing"

	"github.com/Faultbox/flipbook/pkg/math"
)

func near(a, b float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-3
}

func TestLookFromRoundTrip(t *testing.T) {
	c := NewOrbitCamera()
	pos := math.Vec3{X: 10, Y: 10, Z: 20}
	c.LookFrom(pos, math.Vec3{})

	got := c.Position()
	if !near(got.X, pos.X) || !near(got.Y, pos.Y) || !near(got.Z, pos.Z) {
		t.Errorf("Position() = %+v, want %+v", got, pos)
	}
}

func TestHandleZoomClamps(t *testing.T) {
	c := NewOrbitCamera()
	for i := 0; i < 100; i++ {
		c.HandleZoom(1)
	}
	if c.Distance != c.MinDistance {
		t.Errorf("Distance = %v, want MinDistance %v", c.Distance, c.MinDistance)
	}
	for i := 0; i < 100; i++ {
		c.HandleZoom(-1)
	}
	if c.Distance != c.MaxDistance {
		t.Errorf("Distance = %v, want MaxDistance %v", c.Distance, c.MaxDistance)
	}
}

func TestHandleDragClampsPitch(t *testing.T) {
	c := NewOrbitCamera()
	c.HandleDrag(0, 10000)
	if c.RotationX != c.MaxPitch {
		t.Errorf("RotationX = %v, want %v", c.RotationX, c.MaxPitch)
	}
	c.HandleDrag(0, -20000)
	if c.RotationX != c.MinPitch {
		t.Errorf("RotationX = %v, want %v", c.RotationX, c.MinPitch)
	}
}

func TestViewMatrixCentersTarget(t *testing.T) {
	c := NewOrbitCamera()
	c.LookFrom(math.Vec3{X: 3, Y: 4, Z: 12}, math.Vec3{X: 1, Y: 1, Z: 1})

	// The orbit center lands on the view axis, in front of the camera.
	p := c.ViewMatrix().TransformPoint([3]float32{1, 1, 1})
	if !near(p[0], 0) || !near(p[1], 0) || p[2] >= 0 {
		t.Errorf("center in view space = %v, want (0, 0, -d)", p)
	}
}

func TestFitToBounds(t *testing.T) {
	c := NewOrbitCamera()
	c.FitToBounds([3]float32{-3, -4, -1}, [3]float32{3, 4, 1})

	if c.Center != (math.Vec3{}) {
		t.Errorf("Center = %+v, want origin", c.Center)
	}
	if c.Distance < 5 {
		t.Errorf("Distance = %v, expected to back off to fit", c.Distance)
	}

	c.FitToBounds([3]float32{0, 0, 0}, [3]float32{2, 4, 1})
	if want := (math.Vec3{X: 1, Y: 2, Z: 0.5}); c.Center != want {
		t.Errorf("Center = %+v, want %+v", c.Center, want)
	}
}
