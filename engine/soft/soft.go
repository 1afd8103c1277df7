// SPDX-License-Identifier: EPL-2.0

package soft

import (
	"sync"

	"github.com/ik5/fmodgo/audio"
	"github.com/ik5/fmodgo/engine"
	"github.com/ik5/fmodgo/formats/aiff"
	"github.com/ik5/fmodgo/formats/mp3"
	"github.com/ik5/fmodgo/formats/vorbis"
	"github.com/ik5/fmodgo/formats/wav"
	"go.uber.org/zap"
)

// object is one row of the engine's table.
type object struct {
	kind   engine.Kind
	name   string
	parent engine.ID
	mode   engine.Mode

	// pcm is the decoded data of a sound, or of the sound a channel plays.
	pcm      *audio.PCM
	defaults engine.Defaults
	locked   bool
	lockA    int
	lockB    int

	params  map[engine.Param]float64
	related map[engine.Relation]engine.ID
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for object lifecycle messages.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLoaders replaces the loader registry used to decode sound files.
func WithLoaders(loaders *audio.Registry) Option {
	return func(e *Engine) {
		if loaders != nil {
			e.loaders = loaders
		}
	}
}

// Engine is an in-memory engine.Engine. It decodes sounds completely at
// creation time and tracks every other object as a table of parameters.
// Nothing is mixed or played.
type Engine struct {
	logger  *zap.Logger
	loaders *audio.Registry

	mu      sync.Mutex
	next    engine.ID
	objects map[engine.ID]*object
}

// DefaultLoaders returns a registry with every format this module decodes.
func DefaultLoaders() *audio.Registry {
	r := audio.NewRegistry()
	r.Register("wav", wav.Loader{})
	r.Register("aiff", aiff.Loader{})
	r.Register("aif", aiff.Loader{})
	r.Register("mp3", mp3.Loader{})
	r.Register("ogg", vorbis.Loader{})
	return r
}

func New(opts ...Option) *Engine {
	e := &Engine{
		logger:  zap.NewNop(),
		objects: make(map[engine.ID]*object),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.loaders == nil {
		e.loaders = DefaultLoaders()
	}
	return e
}

// Live returns the number of objects in the table.
func (e *Engine) Live() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return len(e.objects)
}

// lookup returns the object for id if it exists and has one of kinds.
// An empty kinds list accepts any kind.
func (e *Engine) lookup(id engine.ID, kinds ...engine.Kind) (*object, engine.Result) {
	obj, ok := e.objects[id]
	if !ok {
		return nil, engine.ResultInvalidHandle
	}
	if len(kinds) == 0 {
		return obj, engine.ResultOK
	}
	for _, k := range kinds {
		if obj.kind == k {
			return obj, engine.ResultOK
		}
	}
	return nil, engine.ResultInvalidHandle
}

func (e *Engine) insert(obj *object) engine.ID {
	if obj.params == nil {
		obj.params = make(map[engine.Param]float64)
	}
	if obj.related == nil {
		obj.related = make(map[engine.Relation]engine.ID)
	}
	if obj.parent != 0 {
		obj.related[engine.RelationSystem] = obj.parent
	}

	e.next++
	e.objects[e.next] = obj
	return e.next
}

func (e *Engine) Release(id engine.ID) engine.Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	obj, res := e.lookup(id)
	if !res.OK() {
		return res
	}

	switch obj.kind {
	case engine.KindChannel, engine.KindDSPConnection:
		// Reclaimed by the engine, never by the caller.
		return engine.ResultBadCommand
	case engine.KindChannelGroup:
		if sys, ok := e.objects[obj.parent]; ok && sys.related[engine.RelationMasterChannelGroup] == id {
			return engine.ResultBadCommand
		}
	case engine.KindSound:
		if obj.locked {
			return engine.ResultBadCommand
		}
		e.stopChannels(id)
	}

	delete(e.objects, id)
	e.logger.Debug("released object",
		zap.Stringer("kind", obj.kind),
		zap.Uint64("id", uint64(id)),
		zap.String("name", obj.name),
	)
	return engine.ResultOK
}

// stopChannels ends every channel that plays sound.
func (e *Engine) stopChannels(sound engine.ID) {
	for _, obj := range e.objects {
		if obj.kind == engine.KindChannel && obj.related[engine.RelationCurrentSound] == sound {
			obj.params[engine.ParamPlaying] = 0
		}
	}
}

func (e *Engine) Format(id engine.ID) (engine.Format, engine.Result) {
	e.mu.Lock()
	defer e.mu.Unlock()

	obj, res := e.lookup(id, engine.KindSound)
	if !res.OK() {
		return engine.Format{}, res
	}
	return engine.Format{Channels: obj.pcm.Channels, Bits: obj.pcm.BitDepth}, engine.ResultOK
}

func (e *Engine) Defaults(id engine.ID) (engine.Defaults, engine.Result) {
	e.mu.Lock()
	defer e.mu.Unlock()

	obj, res := e.lookup(id, engine.KindSound)
	if !res.OK() {
		return engine.Defaults{}, res
	}
	return obj.defaults, engine.ResultOK
}

func (e *Engine) SetDefaults(id engine.ID, d engine.Defaults) engine.Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	obj, res := e.lookup(id, engine.KindSound)
	if !res.OK() {
		return res
	}
	if d.Frequency <= 0 || d.Priority < 0 || d.Priority > 256 {
		return engine.ResultInvalidParam
	}
	d.Volume = clamp(d.Volume, 0, 1)
	d.Pan = clamp(d.Pan, -1, 1)
	obj.defaults = d
	return engine.ResultOK
}

func (e *Engine) Length(id engine.ID, unit engine.TimeUnit) (uint32, engine.Result) {
	e.mu.Lock()
	defer e.mu.Unlock()

	obj, res := e.lookup(id, engine.KindSound)
	if !res.OK() {
		return 0, res
	}

	switch unit {
	case engine.TimeUnitPCMBytes:
		return uint32(len(obj.pcm.Data)), engine.ResultOK
	case engine.TimeUnitPCM:
		return uint32(obj.pcm.Frames()), engine.ResultOK
	case engine.TimeUnitMS:
		return uint32(obj.pcm.DurationMS()), engine.ResultOK
	default:
		return 0, engine.ResultInvalidParam
	}
}

func (e *Engine) Name(id engine.ID) (string, engine.Result) {
	e.mu.Lock()
	defer e.mu.Unlock()

	obj, res := e.lookup(id)
	if !res.OK() {
		return "", res
	}
	return obj.name, engine.ResultOK
}

// Lock returns the bytes from offset for length bytes. A range that runs
// past the end continues from the start of the buffer in the second region.
func (e *Engine) Lock(id engine.ID, offset, length uint32) ([]byte, []byte, engine.Result) {
	e.mu.Lock()
	defer e.mu.Unlock()

	obj, res := e.lookup(id, engine.KindSound)
	if !res.OK() {
		return nil, nil, res
	}
	if obj.locked {
		return nil, nil, engine.ResultAlreadyLocked
	}

	data := obj.pcm.Data
	size := len(data)
	if int(offset) >= size {
		return nil, nil, engine.ResultInvalidPosition
	}

	n := min(int(length), size)
	end := int(offset) + n

	var a, b []byte
	if end <= size {
		a = data[offset:end:end]
	} else {
		a = data[offset:size:size]
		wrap := end - size
		b = data[0:wrap:wrap]
	}

	obj.locked = true
	obj.lockA, obj.lockB = len(a), len(b)
	return a, b, engine.ResultOK
}

func (e *Engine) Unlock(id engine.ID, a, b []byte) engine.Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	obj, res := e.lookup(id, engine.KindSound)
	if !res.OK() {
		return res
	}
	if !obj.locked {
		return engine.ResultBadCommand
	}
	if len(a) != obj.lockA || len(b) != obj.lockB {
		return engine.ResultInvalidParam
	}

	obj.locked = false
	obj.lockA, obj.lockB = 0, 0
	return engine.ResultOK
}

func (e *Engine) Related(id engine.ID, rel engine.Relation) (engine.ID, engine.Result) {
	e.mu.Lock()
	defer e.mu.Unlock()

	obj, res := e.lookup(id)
	if !res.OK() {
		return 0, res
	}
	target, ok := obj.related[rel]
	if !ok || target == 0 {
		return 0, engine.ResultInvalidParam
	}
	return target, engine.ResultOK
}

// Attach moves a channel to a channel group or a sound to a sound group.
func (e *Engine) Attach(id engine.ID, rel engine.Relation, target engine.ID) engine.Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	obj, res := e.lookup(id)
	if !res.OK() {
		return res
	}

	var want engine.Kind
	switch {
	case obj.kind == engine.KindChannel && rel == engine.RelationChannelGroup:
		want = engine.KindChannelGroup
	case obj.kind == engine.KindSound && rel == engine.RelationSoundGroup:
		want = engine.KindSoundGroup
	default:
		return engine.ResultInvalidParam
	}

	if _, res := e.lookup(target, want); !res.OK() {
		return res
	}
	obj.related[rel] = target
	return engine.ResultOK
}

func (e *Engine) Update(system engine.ID) engine.Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	_, res := e.lookup(system, engine.KindSystem)
	return res
}

var _ engine.Engine = (*Engine)(nil)
