package picking

import (
	"testing"

	"github.com/Faultbox/flipbook/pkg/math"
)

func TestNewAABBOrdersCorners(t *testing.T) {
	box := NewAABB([3]float32{1, -2, 3}, [3]float32{-1, 2, -3})
	if box.Min != [3]float32{-1, -2, -3} || box.Max != [3]float32{1, 2, 3} {
		t.Errorf("NewAABB = %+v", box)
	}
}

func TestIntersectAABB(t *testing.T) {
	box := NewAABB([3]float32{-1, -1, -1}, [3]float32{1, 1, 1})

	tests := []struct {
		name  string
		ray   Ray
		hit   bool
		wantT float32
	}{
		{"head on", Ray{Origin: [3]float32{0, 0, 5}, Direction: [3]float32{0, 0, -1}}, true, 4},
		{"miss to the side", Ray{Origin: [3]float32{3, 0, 5}, Direction: [3]float32{0, 0, -1}}, false, 0},
		{"pointing away", Ray{Origin: [3]float32{0, 0, 5}, Direction: [3]float32{0, 0, 1}}, false, 0},
		{"from inside", Ray{Origin: [3]float32{0, 0, 0}, Direction: [3]float32{1, 0, 0}}, true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, hit := tt.ray.IntersectAABB(box)
			if hit != tt.hit {
				t.Fatalf("hit = %v, want %v", hit, tt.hit)
			}
			if hit && (got < tt.wantT-1e-4 || got > tt.wantT+1e-4) {
				t.Errorf("t = %v, want %v", got, tt.wantT)
			}
		})
	}
}

func TestScreenToRayCenter(t *testing.T) {
	proj := math.Perspective(0.8, 1, 0.1, 100)
	view := math.LookAt(math.Vec3{X: 0, Y: 0, Z: 10}, math.Vec3{}, math.Vec3{Y: 1})
	inv := proj.Mul(view).Inverse()

	ray := ScreenToRay(50, 50, 100, 100, inv)
	if ray.Direction[2] > -0.999 {
		t.Errorf("center ray direction = %v, want (0, 0, -1)", ray.Direction)
	}

	box := NewAABB([3]float32{-3, -4, -0.5}, [3]float32{3, 4, 0.5})
	if _, hit := ray.IntersectAABB(box); !hit {
		t.Error("center ray should hit a box at the origin")
	}
	if _, hit := ScreenToRay(0, 0, 100, 100, inv).IntersectAABB(box); hit {
		t.Error("corner ray should miss the box")
	}
}
