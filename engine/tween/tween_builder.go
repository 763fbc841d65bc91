package tween

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween/ease"
)

// Vec3TweenBuilderOption is a functional option for configuring a Vec3Tween.
type Vec3TweenBuilderOption func(*Vec3Tween)

// WithDelay sets the time between Start and the first interpolated write.
//
// Parameters:
//   - d: the delay
//
// Returns:
//   - Vec3TweenBuilderOption: option function to apply
func WithDelay(d time.Duration) Vec3TweenBuilderOption {
	return func(t *Vec3Tween) {
		t.delay = max(d, 0)
	}
}

// WithEasing sets the easing function. Nil keeps the default.
//
// Parameters:
//   - fn: a gween easing function
//
// Returns:
//   - Vec3TweenBuilderOption: option function to apply
func WithEasing(fn ease.TweenFunc) Vec3TweenBuilderOption {
	return func(t *Vec3Tween) {
		if fn != nil {
			t.easing = fn
		}
	}
}

// WithOnUpdate sets the callback receiving every written value.
func WithOnUpdate(fn func(mgl32.Vec3)) Vec3TweenBuilderOption {
	return func(t *Vec3Tween) {
		t.onUpdate = fn
	}
}

// WithOnComplete sets the callback fired once when the tween finishes.
func WithOnComplete(fn func()) Vec3TweenBuilderOption {
	return func(t *Vec3Tween) {
		t.onComplete = fn
	}
}
