package loader

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-showcase/engine/animation"
	"github.com/Carmen-Shannon/oxy-showcase/engine/audio"
	"github.com/Carmen-Shannon/oxy-showcase/engine/logger"
	"github.com/Carmen-Shannon/oxy-showcase/engine/scene"
	"github.com/faiface/beep"
)

// Model is a decoded asset: its node tree and the animation clips it carries.
type Model struct {
	// Name is the asset identifier, usually the file name.
	Name string

	// Root is the top-level node of the model's hierarchy.
	Root *scene.Node

	// Clips are the embedded animations, targeting nodes under Root by name.
	Clips []*animation.Clip

	// SkippedPrimitives counts mesh primitives that could not be decoded,
	// such as compressed or non-triangle ones.
	SkippedPrimitives int

	// SkippedSkins counts skins left unbound because they exceed the joint
	// limit; their meshes draw in bind pose.
	SkippedSkins int
}

// ModelDecodeFunc decodes a model file.
type ModelDecodeFunc func(path string) (*Model, error)

// AudioDecodeFunc decodes an audio file into memory.
type AudioDecodeFunc func(path string) (*beep.Buffer, error)

// Poster schedules a task on the loop goroutine.
type Poster interface {
	Post(task func())
}

// assetLoader is the implementation of the AssetLoader interface.
type assetLoader struct {
	mu sync.RWMutex

	poster Poster
	log    *logger.Logger

	workers   int
	queueSize int
	idle      time.Duration
	pool      worker.DynamicWorkerPool
	taskID    atomic.Int64

	decodeModel ModelDecodeFunc
	decodeAudio AudioDecodeFunc

	modelCache map[string]*Future[*Model]
}

// AssetLoader decodes models and audio on a worker pool and delivers results
// to the loop goroutine. Each load is a single-shot Future; a failed load logs
// a warning and resolves with the error so the dependent feature stays inert.
type AssetLoader interface {
	// LoadModel starts decoding a model file. Repeated loads of the same path
	// share one Future.
	//
	// Parameters:
	//   - path: the model file path (.gltf or .glb)
	//
	// Returns:
	//   - *Future[*Model]: resolves with the decoded model or the failure
	LoadModel(path string) *Future[*Model]

	// LoadAudio starts decoding an audio file.
	//
	// Parameters:
	//   - path: the audio file path
	//
	// Returns:
	//   - *Future[*beep.Buffer]: resolves with the decoded buffer or the failure
	LoadAudio(path string) *Future[*beep.Buffer]
}

var _ AssetLoader = &assetLoader{}

// NewAssetLoader creates an AssetLoader posting results through poster.
// Defaults to the glTF model backend, the beep audio decoders and three workers.
// Panics if poster is nil.
//
// Parameters:
//   - poster: delivers continuations to the loop goroutine (usually the scheduler)
//   - options: functional options for workers, decoders and logging
//
// Returns:
//   - AssetLoader: the new loader
func NewAssetLoader(poster Poster, options ...LoaderBuilderOption) AssetLoader {
	if poster == nil {
		panic("loader.NewAssetLoader: poster is required")
	}
	backend := newGLTFLoaderBackend()
	l := &assetLoader{
		poster:      poster,
		log:         logger.NewNop(),
		workers:     3,
		queueSize:   256,
		idle:        time.Second,
		decodeModel: backend.Load,
		decodeAudio: audio.Decode,
		modelCache:  make(map[string]*Future[*Model]),
	}
	for _, option := range options {
		option(l)
	}
	l.pool = worker.NewDynamicWorkerPool(l.workers, l.queueSize, l.idle)
	return l
}

func (l *assetLoader) LoadModel(path string) *Future[*Model] {
	l.mu.Lock()
	if cached, ok := l.modelCache[path]; ok {
		l.mu.Unlock()
		return cached
	}
	f := NewFuture[*Model](l.poster.Post)
	l.modelCache[path] = f
	l.mu.Unlock()

	l.submit(func() error {
		m, err := l.decodeModel(path)
		if err != nil {
			err = fmt.Errorf("failed to load model %s: %w", path, err)
			l.log.Warnw("model load failed", "path", path, "error", err)
			f.Resolve(nil, err)
			return err
		}
		if m.SkippedPrimitives > 0 || m.SkippedSkins > 0 {
			l.log.Warnw("model partially decoded", "path", path,
				"skippedPrimitives", m.SkippedPrimitives, "skippedSkins", m.SkippedSkins)
		}
		l.log.Infow("model loaded", "path", path, "clips", len(m.Clips))
		f.Resolve(m, nil)
		return nil
	})
	return f
}

func (l *assetLoader) LoadAudio(path string) *Future[*beep.Buffer] {
	f := NewFuture[*beep.Buffer](l.poster.Post)
	l.submit(func() error {
		buf, err := l.decodeAudio(path)
		if err != nil {
			err = fmt.Errorf("failed to load audio %s: %w", path, err)
			l.log.Warnw("audio load failed", "path", path, "error", err)
			f.Resolve(nil, err)
			return err
		}
		l.log.Infow("audio loaded", "path", path, "samples", buf.Len())
		f.Resolve(buf, nil)
		return nil
	})
	return f
}

func (l *assetLoader) submit(fn func() error) {
	id := int(l.taskID.Add(1))
	l.pool.SubmitTask(worker.Task{
		ID: id,
		Do: func() (any, error) {
			return nil, fn()
		},
	})
}
