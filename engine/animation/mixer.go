package animation

import (
	"math"

	"github.com/Carmen-Shannon/oxy-showcase/engine/scene"
)

// LoopMode selects what an action does when it reaches the end of its clip.
type LoopMode int

const (
	// LoopRepeat wraps back to the start of the clip.
	LoopRepeat LoopMode = iota

	// LoopOnce holds the final pose and stops.
	LoopOnce
)

type action struct {
	clip      *Clip
	targets   []*scene.Node
	loop      LoopMode
	timeScale float32
	time      float32
	running   bool
}

// Action is the playback state of one clip on a mixer.
type Action interface {
	// Clip returns the clip this action plays.
	Clip() *Clip

	// Play starts or resumes playback.
	//
	// Returns:
	//   - Action: the action, for chaining
	Play() Action

	// Stop halts playback and rewinds to the start.
	//
	// Returns:
	//   - Action: the action, for chaining
	Stop() Action

	// SetLoop selects the loop mode. The default is LoopRepeat.
	//
	// Parameters:
	//   - mode: the loop mode
	//
	// Returns:
	//   - Action: the action, for chaining
	SetLoop(mode LoopMode) Action

	// SetTimeScale sets the playback speed multiplier.
	//
	// Parameters:
	//   - scale: 1 plays at authored speed
	//
	// Returns:
	//   - Action: the action, for chaining
	SetTimeScale(scale float32) Action

	// IsRunning reports whether the action advances on Update.
	IsRunning() bool

	// Time returns the local playback time in seconds.
	Time() float32
}

var _ Action = &action{}

func (a *action) Clip() *Clip {
	return a.clip
}

func (a *action) Play() Action {
	a.running = true
	return a
}

func (a *action) Stop() Action {
	a.running = false
	a.time = 0
	return a
}

func (a *action) SetLoop(mode LoopMode) Action {
	a.loop = mode
	return a
}

func (a *action) SetTimeScale(scale float32) Action {
	a.timeScale = scale
	return a
}

func (a *action) IsRunning() bool {
	return a.running
}

func (a *action) Time() float32 {
	return a.time
}

// advance moves local time by dt and reports whether a pose should be written.
func (a *action) advance(dt float32) bool {
	if !a.running {
		return false
	}
	a.time += dt * a.timeScale
	d := a.clip.Duration
	if d <= 0 {
		a.time = 0
		return true
	}
	switch a.loop {
	case LoopOnce:
		if a.time >= d {
			a.time = d
			a.running = false
		} else if a.time < 0 {
			a.time = 0
			a.running = false
		}
	default:
		a.time = float32(math.Mod(float64(a.time), float64(d)))
		if a.time < 0 {
			a.time += d
		}
	}
	return true
}

func (a *action) apply() {
	for i, ch := range a.clip.Channels {
		node := a.targets[i]
		if node == nil {
			continue
		}
		if v, ok := sampleVector(ch.PositionKeys, a.time, ch.Interpolation); ok {
			node.SetTranslation(v)
		}
		if q, ok := sampleRotation(ch.RotationKeys, a.time, ch.Interpolation); ok {
			node.SetRotation(q)
		}
		if v, ok := sampleVector(ch.ScaleKeys, a.time, ch.Interpolation); ok {
			node.SetScale(v)
		}
	}
}

type mixer struct {
	root    *scene.Node
	skinned []*scene.Node
	actions []*action
	byClip  map[*Clip]*action
	time    float32
}

// Mixer advances clip actions bound to a scene subtree. Every running action
// writes its pose each update; actions targeting the same node are not blended
// and the last action registered wins. After the poses are written, the joint
// palette of every skinned node in the subtree is recomputed.
type Mixer interface {
	// Root returns the subtree channel targets are resolved against.
	Root() *scene.Node

	// ClipAction returns the action for clip, creating it on first use.
	// Channel targets are resolved by node name among the root's descendants,
	// falling back to the root itself; unknown targets are skipped.
	//
	// Parameters:
	//   - clip: the clip to play
	//
	// Returns:
	//   - Action: the clip's action (nil if clip is nil)
	ClipAction(clip *Clip) Action

	// Actions returns every action created on the mixer.
	Actions() []Action

	// Update advances all running actions by dt seconds and writes their poses.
	//
	// Parameters:
	//   - dt: seconds since the previous update
	Update(dt float32)

	// Time returns the total time the mixer has been advanced, in seconds.
	Time() float32

	// StopAllActions stops and rewinds every action.
	StopAllActions()
}

var _ Mixer = &mixer{}

// NewMixer creates a Mixer over root.
// Panics if root is nil.
//
// Parameters:
//   - root: the model subtree to animate
//
// Returns:
//   - Mixer: the new mixer
func NewMixer(root *scene.Node) Mixer {
	if root == nil {
		panic("animation.NewMixer: root node is required")
	}
	m := &mixer{
		root:   root,
		byClip: make(map[*Clip]*action),
	}
	root.Traverse(func(n *scene.Node) {
		if n.Skin() != nil {
			m.skinned = append(m.skinned, n)
		}
	})
	return m
}

// PlayAll creates an action for every clip and starts them together.
//
// Parameters:
//   - m: the mixer
//   - clips: the clips to start
func PlayAll(m Mixer, clips []*Clip) {
	for _, c := range clips {
		if a := m.ClipAction(c); a != nil {
			a.Play()
		}
	}
}

func (m *mixer) Root() *scene.Node {
	return m.root
}

func (m *mixer) ClipAction(clip *Clip) Action {
	if clip == nil {
		return nil
	}
	if a, ok := m.byClip[clip]; ok {
		return a
	}
	a := &action{
		clip:      clip,
		targets:   make([]*scene.Node, len(clip.Channels)),
		loop:      LoopRepeat,
		timeScale: 1,
	}
	for i, ch := range clip.Channels {
		a.targets[i] = m.resolve(ch.Target)
	}
	m.byClip[clip] = a
	m.actions = append(m.actions, a)
	return a
}

// resolve prefers a descendant so a wrapper root named like one of its
// children is never animated in the child's place.
func (m *mixer) resolve(name string) *scene.Node {
	if n := m.root.FindDescendant(name); n != nil {
		return n
	}
	if m.root.Name() == name {
		return m.root
	}
	return nil
}

func (m *mixer) Actions() []Action {
	out := make([]Action, len(m.actions))
	for i, a := range m.actions {
		out[i] = a
	}
	return out
}

func (m *mixer) Update(dt float32) {
	m.time += dt
	for _, a := range m.actions {
		if a.advance(dt) {
			a.apply()
		}
	}
	for _, n := range m.skinned {
		n.Skin().Update(n.WorldMatrix())
	}
}

func (m *mixer) Time() float32 {
	return m.time
}

func (m *mixer) StopAllActions() {
	for _, a := range m.actions {
		a.Stop()
	}
}
