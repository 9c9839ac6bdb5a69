package flip

import "github.com/chewxy/math32"

// Progress maps a page rotation to clamp((θ + π) / π, 0, 1) for pages
// turning toward -π, mirrored for the +π convention. It is 1 at rest and
// 0 once the page lies on the other side of the spine.
func Progress(rotation float32) float32 {
	return clamp(1-math32.Abs(rotation)/math32.Pi, 0, 1)
}

// Bend returns the out-of-plane displacement of a vertex at normalizedX
// (0 at the spine, 1 at the free edge). Both edges stay flat and the
// midline arches by k*progress.
func Bend(normalizedX, progress, k float32) float32 {
	return math32.Sin(normalizedX*math32.Pi) * k * progress
}

// RestingDepth is the z a settled page takes:
// -(pageCount - index - 1) * spacing.
func RestingDepth(index, pageCount int, spacing float32) float32 {
	return -float32(pageCount-index-1) * spacing
}

// RestingTilt is the small z rotation of a settled page. The sign alternates
// by parity so neighbouring pages never end up coplanar.
func RestingTilt(index int, step float32) float32 {
	tilt := float32(index) * step
	if index%2 == 1 {
		return -tilt
	}
	return tilt
}

// applyBend writes Bend for every vertex of s and marks its buffer dirty.
func applyBend(s Sheet, progress, k float32) {
	w := s.Width()
	n := s.VertexCount()
	for i := 0; i < n; i++ {
		nx := float32(0)
		if w > 0 {
			nx = clamp(s.VertexX(i)/w, 0, 1)
		}
		s.SetVertexZ(i, Bend(nx, progress, k))
	}
	s.MarkDirty()
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
