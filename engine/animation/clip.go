// Package animation plays the keyframe clips embedded in a loaded model by
// writing sampled transforms onto scene nodes.
package animation

import (
	"sort"

	"github.com/Carmen-Shannon/oxy-showcase/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Interpolation selects how values between keyframes are derived.
type Interpolation int

const (
	// InterpolationLinear lerps vectors and slerps rotations.
	InterpolationLinear Interpolation = iota

	// InterpolationStep holds each keyframe value until the next keyframe.
	InterpolationStep
)

// Clip is a named animation made of per-node transform channels.
type Clip struct {
	// Name is the animation identifier.
	Name string

	// Duration is the total length of the animation in seconds.
	Duration float32

	// Channels contains animation data for each animated node.
	Channels []Channel
}

// Channel contains keyframe data for a single node.
type Channel struct {
	// Target is the name of the node this channel animates.
	Target string

	// Interpolation applies to every key list in the channel.
	Interpolation Interpolation

	// PositionKeys are keyframes for translation.
	PositionKeys []VectorKeyframe

	// RotationKeys are keyframes for rotation (quaternion).
	RotationKeys []QuaternionKeyframe

	// ScaleKeys are keyframes for scale.
	ScaleKeys []VectorKeyframe
}

// VectorKeyframe stores a 3D vector value at a specific time.
type VectorKeyframe struct {
	// Time is the keyframe timestamp in seconds.
	Time float32

	// Value is the 3D vector value at this keyframe.
	Value mgl32.Vec3
}

// QuaternionKeyframe stores a quaternion rotation at a specific time.
type QuaternionKeyframe struct {
	// Time is the keyframe timestamp in seconds.
	Time float32

	// Value is the quaternion value at this keyframe.
	Value mgl32.Quat
}

// ResetDuration sets Duration to the latest keyframe time across all channels.
func (c *Clip) ResetDuration() {
	var d float32
	for _, ch := range c.Channels {
		if n := len(ch.PositionKeys); n > 0 {
			d = max(d, ch.PositionKeys[n-1].Time)
		}
		if n := len(ch.RotationKeys); n > 0 {
			d = max(d, ch.RotationKeys[n-1].Time)
		}
		if n := len(ch.ScaleKeys); n > 0 {
			d = max(d, ch.ScaleKeys[n-1].Time)
		}
	}
	c.Duration = d
}

// bracket finds the keyframes surrounding t in a sorted key list of length n.
// It returns the lower index, the upper index and the blend factor between them.
func bracket(n int, timeAt func(int) float32, t float32) (int, int, float32) {
	if n == 1 || t <= timeAt(0) {
		return 0, 0, 0
	}
	if t >= timeAt(n-1) {
		return n - 1, n - 1, 0
	}
	hi := sort.Search(n, func(i int) bool { return timeAt(i) > t })
	lo := hi - 1
	span := timeAt(hi) - timeAt(lo)
	if span <= 0 {
		return hi, hi, 0
	}
	return lo, hi, (t - timeAt(lo)) / span
}

func sampleVector(keys []VectorKeyframe, t float32, mode Interpolation) (mgl32.Vec3, bool) {
	if len(keys) == 0 {
		return mgl32.Vec3{}, false
	}
	lo, hi, k := bracket(len(keys), func(i int) float32 { return keys[i].Time }, t)
	if mode == InterpolationStep || lo == hi {
		return keys[lo].Value, true
	}
	return common.Lerp3(keys[lo].Value, keys[hi].Value, k), true
}

func sampleRotation(keys []QuaternionKeyframe, t float32, mode Interpolation) (mgl32.Quat, bool) {
	if len(keys) == 0 {
		return mgl32.QuatIdent(), false
	}
	lo, hi, k := bracket(len(keys), func(i int) float32 { return keys[i].Time }, t)
	if mode == InterpolationStep || lo == hi {
		return keys[lo].Value, true
	}
	a, b := keys[lo].Value, keys[hi].Value
	if a.Dot(b) < 0 {
		b = b.Scale(-1)
	}
	return mgl32.QuatSlerp(a, b, k).Normalize(), true
}
