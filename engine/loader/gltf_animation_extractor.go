package loader

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-showcase/engine/animation"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
)

// gltfAnimationExtractorImpl is the implementation of the gltfAnimationExtractor interface.
type gltfAnimationExtractorImpl struct {
	doc *gltf.Document

	// nodeNames maps glTF node indices to the unique names given to scene nodes.
	nodeNames []string
}

// gltfAnimationExtractor converts glTF animations into clips keyed by node name.
type gltfAnimationExtractor interface {
	// ExtractAnimation converts a single animation.
	//
	// Parameters:
	//   - animIndex: index into the document's animations
	//
	// Returns:
	//   - *animation.Clip: the clip, with duration set from its last keyframe
	//   - error: error if a sampler or accessor is malformed
	ExtractAnimation(animIndex int) (*animation.Clip, error)

	// ExtractAllAnimations converts every animation in the document.
	//
	// Returns:
	//   - []*animation.Clip: the clips in document order
	//   - error: error from the first malformed animation
	ExtractAllAnimations() ([]*animation.Clip, error)
}

var _ gltfAnimationExtractor = &gltfAnimationExtractorImpl{}

// newGLTFAnimationExtractor creates an animation extractor.
//
// Parameters:
//   - doc: the parsed document
//   - nodeNames: scene node names indexed by glTF node index
//
// Returns:
//   - gltfAnimationExtractor: the extractor
func newGLTFAnimationExtractor(doc *gltf.Document, nodeNames []string) gltfAnimationExtractor {
	return &gltfAnimationExtractorImpl{doc: doc, nodeNames: nodeNames}
}

func (e *gltfAnimationExtractorImpl) ExtractAnimation(animIndex int) (*animation.Clip, error) {
	if animIndex < 0 || animIndex >= len(e.doc.Animations) {
		return nil, fmt.Errorf("animation index %d out of range", animIndex)
	}
	anim := e.doc.Animations[animIndex]

	name := anim.Name
	if name == "" {
		name = fmt.Sprintf("animation_%d", animIndex)
	}
	clip := &animation.Clip{Name: name}

	channelByNode := make(map[channelKey]int)
	for ci, ch := range anim.Channels {
		if ch.Target.Node == nil {
			continue
		}
		node := *ch.Target.Node
		if node < 0 || node >= len(e.nodeNames) {
			continue
		}
		samplerIdx := ch.Sampler
		if samplerIdx < 0 || samplerIdx >= len(anim.Samplers) {
			return nil, fmt.Errorf("animation %q channel %d: sampler %d out of range", name, ci, samplerIdx)
		}
		sampler := anim.Samplers[samplerIdx]

		interp := animation.InterpolationLinear
		if sampler.Interpolation == gltf.InterpolationStep {
			interp = animation.InterpolationStep
		}
		key := channelKey{node: node, interp: interp}
		pos, ok := channelByNode[key]
		if !ok {
			pos = len(clip.Channels)
			channelByNode[key] = pos
			clip.Channels = append(clip.Channels, animation.Channel{Target: e.nodeNames[node], Interpolation: interp})
		}
		out := &clip.Channels[pos]

		times, err := readScalars(e.doc, sampler.Input)
		if err != nil {
			return nil, fmt.Errorf("animation %q channel %d input: %w", name, ci, err)
		}
		cubic := sampler.Interpolation == gltf.InterpolationCubicSpline

		switch ch.Target.Path {
		case gltf.TRSTranslation, gltf.TRSScale:
			values, err := readVec3s(e.doc, sampler.Output)
			if err != nil {
				return nil, fmt.Errorf("animation %q channel %d output: %w", name, ci, err)
			}
			keys := vectorKeys(times, values, cubic)
			if ch.Target.Path == gltf.TRSTranslation {
				out.PositionKeys = keys
			} else {
				out.ScaleKeys = keys
			}
		case gltf.TRSRotation:
			values, err := readVec4s(e.doc, sampler.Output)
			if err != nil {
				return nil, fmt.Errorf("animation %q channel %d output: %w", name, ci, err)
			}
			out.RotationKeys = rotationKeys(times, values, cubic)
		default:
			// morph target weights have no node transform to drive
		}
	}

	clip.ResetDuration()
	return clip, nil
}

func (e *gltfAnimationExtractorImpl) ExtractAllAnimations() ([]*animation.Clip, error) {
	clips := make([]*animation.Clip, 0, len(e.doc.Animations))
	for i := range e.doc.Animations {
		clip, err := e.ExtractAnimation(i)
		if err != nil {
			return nil, err
		}
		clips = append(clips, clip)
	}
	return clips, nil
}

// channelKey groups glTF channels that share a node and interpolation mode.
type channelKey struct {
	node   int
	interp animation.Interpolation
}

// splineValue picks the keyframe value for key i. Cubic spline outputs are
// stored as (in-tangent, value, out-tangent) triples; only the value is kept.
func splineValue(i int, cubic bool) int {
	if cubic {
		return 3*i + 1
	}
	return i
}

func vectorKeys(times []float32, values []mgl32.Vec3, cubic bool) []animation.VectorKeyframe {
	keys := make([]animation.VectorKeyframe, 0, len(times))
	for i, t := range times {
		vi := splineValue(i, cubic)
		if vi >= len(values) {
			break
		}
		keys = append(keys, animation.VectorKeyframe{Time: t, Value: values[vi]})
	}
	return keys
}

func rotationKeys(times []float32, values [][4]float32, cubic bool) []animation.QuaternionKeyframe {
	keys := make([]animation.QuaternionKeyframe, 0, len(times))
	for i, t := range times {
		vi := splineValue(i, cubic)
		if vi >= len(values) {
			break
		}
		v := values[vi]
		q := mgl32.Quat{W: v[3], V: mgl32.Vec3{v[0], v[1], v[2]}}
		keys = append(keys, animation.QuaternionKeyframe{Time: t, Value: q.Normalize()})
	}
	return keys
}
