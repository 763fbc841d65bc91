package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Anchor selects how a model's look-at pivot is derived from its bounding box.
type Anchor int

const (
	// AnchorCentroid uses the geometric center of the box.
	AnchorCentroid Anchor = iota

	// AnchorBase uses the horizontal center of the box at its lowest point (Min.Y),
	// so the camera orbits around the footprint of the model rather than its middle.
	AnchorBase
)

// String returns the lowercase anchor name.
func (a Anchor) String() string {
	switch a {
	case AnchorBase:
		return "base"
	default:
		return "centroid"
	}
}

// Box3 is an axis-aligned bounding box.
type Box3 struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// EmptyBox returns an inverted box that any expansion will overwrite.
//
// Returns:
//   - Box3: a box with Min = +Inf and Max = -Inf
func EmptyBox() Box3 {
	inf := float32(math.Inf(1))
	return Box3{
		Min: mgl32.Vec3{inf, inf, inf},
		Max: mgl32.Vec3{-inf, -inf, -inf},
	}
}

// NewBox3 creates a box from explicit corners.
func NewBox3(min, max mgl32.Vec3) Box3 {
	return Box3{Min: min, Max: max}
}

// IsEmpty reports whether the box encloses no points.
func (b Box3) IsEmpty() bool {
	return b.Max[0] < b.Min[0] || b.Max[1] < b.Min[1] || b.Max[2] < b.Min[2]
}

// ExpandByPoint grows the box to include p.
//
// Parameters:
//   - p: the point to include
//
// Returns:
//   - Box3: the expanded box
func (b Box3) ExpandByPoint(p mgl32.Vec3) Box3 {
	for i := range 3 {
		b.Min[i] = min(b.Min[i], p[i])
		b.Max[i] = max(b.Max[i], p[i])
	}
	return b
}

// Union returns the smallest box enclosing both b and o. Empty boxes are ignored.
//
// Parameters:
//   - o: the other box
//
// Returns:
//   - Box3: the union
func (b Box3) Union(o Box3) Box3 {
	if o.IsEmpty() {
		return b
	}
	if b.IsEmpty() {
		return o
	}
	return b.ExpandByPoint(o.Min).ExpandByPoint(o.Max)
}

// Center returns the geometric center. An empty box reports the origin.
func (b Box3) Center() mgl32.Vec3 {
	if b.IsEmpty() {
		return mgl32.Vec3{}
	}
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the box extents along each axis. An empty box reports zero.
func (b Box3) Size() mgl32.Vec3 {
	if b.IsEmpty() {
		return mgl32.Vec3{}
	}
	return b.Max.Sub(b.Min)
}

// ApplyMatrix4 transforms the eight corners of the box by m and returns the
// axis-aligned box enclosing them.
//
// Parameters:
//   - m: the affine transform to apply
//
// Returns:
//   - Box3: the re-fitted box
func (b Box3) ApplyMatrix4(m mgl32.Mat4) Box3 {
	if b.IsEmpty() {
		return b
	}
	out := EmptyBox()
	for i := range 8 {
		corner := mgl32.Vec3{b.Min[0], b.Min[1], b.Min[2]}
		if i&1 != 0 {
			corner[0] = b.Max[0]
		}
		if i&2 != 0 {
			corner[1] = b.Max[1]
		}
		if i&4 != 0 {
			corner[2] = b.Max[2]
		}
		out = out.ExpandByPoint(mgl32.TransformCoordinate(corner, m))
	}
	return out
}

// ModelCenter derives the camera pivot for a model from its world bounding box.
// An empty box yields the origin.
//
// Parameters:
//   - b: the model's world-space bounding box
//   - anchor: which point of the box to use
//
// Returns:
//   - mgl32.Vec3: the pivot point
func ModelCenter(b Box3, anchor Anchor) mgl32.Vec3 {
	c := b.Center()
	if anchor == AnchorBase && !b.IsEmpty() {
		c[1] = b.Min[1]
	}
	return c
}
