// SPDX-License-Identifier: EPL-2.0

package native

import (
	"runtime"
	"sync"
	"unsafe"

	"github.com/ik5/fmodgo/engine"
	"go.uber.org/zap"
)

// Available reports whether the FMOD Ex library can be loaded.
func Available() bool {
	return load() == nil
}

// Option configures an Engine.
type Option func(*Engine)

func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMaxChannels sets the number of virtual channels systems are
// initialised with. The default is 32.
func WithMaxChannels(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxChannels = n
		}
	}
}

// lockState keeps the native pointers of an outstanding lock; Unlock must
// hand the same pointers back.
type lockState struct {
	ptr1, ptr2 uintptr
	len1, len2 uint32
}

// tracked is what the engine knows about a pointer the library handed out.
type tracked struct {
	kind engine.Kind
	// system the object lives in; zero for a system.
	system engine.ID
	// parent is the object the pointer depends on, such as the sound a
	// channel plays. It is forgotten together with its parent.
	parent engine.ID
}

// Engine implements engine.Engine over the FMOD Ex C API. Identifiers are
// the native object pointers.
type Engine struct {
	logger      *zap.Logger
	maxChannels int

	mu      sync.Mutex
	objects map[engine.ID]tracked
	locks   map[engine.ID]lockState
}

// New loads the library on first use and returns an engine bound to it.
func New(opts ...Option) (*Engine, error) {
	if err := load(); err != nil {
		return nil, err
	}

	e := &Engine{
		logger:      zap.NewNop(),
		maxChannels: 32,
		objects:     make(map[engine.ID]tracked),
		locks:       make(map[engine.ID]lockState),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

func result(code int32) engine.Result { return engine.Result(code) }

// track records an identifier handed out by the library. A pointer that is
// already known keeps its entry unless the kind changed, which means the
// library reused the memory.
func (e *Engine) track(ptr uintptr, t tracked) engine.ID {
	id := engine.ID(ptr)
	e.mu.Lock()
	if old, ok := e.objects[id]; !ok || old.kind != t.kind {
		e.objects[id] = t
	}
	e.mu.Unlock()
	return id
}

// forget drops id and, transitively, every pointer living in it or
// depending on it. e.mu must be held.
func (e *Engine) forget(id engine.ID) {
	gone := map[engine.ID]bool{id: true}
	delete(e.objects, id)
	delete(e.locks, id)

	for changed := true; changed; {
		changed = false
		for oid, o := range e.objects {
			if gone[o.system] || gone[o.parent] {
				gone[oid] = true
				delete(e.objects, oid)
				delete(e.locks, oid)
				changed = true
			}
		}
	}
}

// systemOf returns the system id lives in, or id itself for a system.
func (e *Engine) systemOf(id engine.ID) engine.ID {
	e.mu.Lock()
	defer e.mu.Unlock()

	o := e.objects[id]
	if o.kind == engine.KindSystem {
		return id
	}
	return o.system
}

// kindOf returns the kind of id; unknown identifiers never reach the
// library.
func (e *Engine) kindOf(id engine.ID) (engine.Kind, engine.Result) {
	e.mu.Lock()
	defer e.mu.Unlock()

	o, ok := e.objects[id]
	if !ok {
		return 0, engine.ResultInvalidHandle
	}
	return o.kind, engine.ResultOK
}

func (e *Engine) expect(id engine.ID, kinds ...engine.Kind) (uintptr, engine.Result) {
	kind, res := e.kindOf(id)
	if !res.OK() {
		return 0, res
	}
	for _, k := range kinds {
		if k == kind {
			return uintptr(id), engine.ResultOK
		}
	}
	return 0, engine.ResultInvalidHandle
}

func (e *Engine) Create(kind engine.Kind, args engine.CreateArgs) (engine.ID, engine.Result) {
	var (
		ptr  uintptr
		code int32
		t    = tracked{kind: kind, system: args.Parent}
	)

	switch kind {
	case engine.KindSystem:
		t.system = 0
		if code = fmodSystemCreate(&ptr); code != 0 {
			break
		}
		if code = fmodSystemInit(ptr, int32(e.maxChannels), initNormal, 0); code != 0 {
			fmodSystemRelease(ptr)
		}
	case engine.KindSound:
		sys, res := e.expect(args.Parent, engine.KindSystem)
		if !res.OK() {
			return 0, res
		}
		code = createSound(sys, args, &ptr)
	case engine.KindChannel:
		sound, res := e.expect(args.Source, engine.KindSound)
		if !res.OK() {
			return 0, res
		}
		sys := uintptr(args.Parent)
		if sys == 0 {
			if code = fmodSoundGetSystemObject(sound, &sys); code != 0 {
				break
			}
		}
		code = fmodSystemPlaySound(sys, channelFree, sound, fmodBool(args.Paused), &ptr)
		t.system, t.parent = engine.ID(sys), args.Source
	case engine.KindDSP:
		sys, res := e.expect(args.Parent, engine.KindSystem)
		if !res.OK() {
			return 0, res
		}
		typ, ok := dspTypes[args.Name]
		if !ok {
			return 0, engine.ResultInvalidParam
		}
		code = fmodSystemCreateDSPByType(sys, typ, &ptr)
	case engine.KindDSPConnection:
		return e.connect(args)
	case engine.KindChannelGroup:
		sys, res := e.expect(args.Parent, engine.KindSystem)
		if !res.OK() {
			return 0, res
		}
		code = fmodSystemCreateChannelGroup(sys, args.Name, &ptr)
	case engine.KindSoundGroup:
		sys, res := e.expect(args.Parent, engine.KindSystem)
		if !res.OK() {
			return 0, res
		}
		code = fmodSystemCreateSoundGroup(sys, args.Name, &ptr)
	default:
		return 0, engine.ResultInvalidParam
	}

	if code != 0 {
		e.logger.Debug("create rejected", zap.Stringer("kind", kind), zap.Stringer("result", result(code)))
		return 0, result(code)
	}
	return e.track(ptr, t), engine.ResultOK
}

func createSound(sys uintptr, args engine.CreateArgs, ptr *uintptr) int32 {
	if args.Mode&engine.ModeOpenMemory == 0 {
		return fmodSystemCreateSound(sys, args.Name, uint32(args.Mode), nil, ptr)
	}
	if len(args.Data) == 0 {
		return int32(engine.ResultInvalidParam)
	}

	info := createSoundExInfo{length: uint32(len(args.Data))}
	info.cbsize = int32(unsafe.Sizeof(info))
	code := fmodSystemCreateSoundMemory(sys, &args.Data[0], uint32(args.Mode), &info, ptr)
	runtime.KeepAlive(args.Data)
	return code
}

// connect adds the Source DSP to a channel, a channel group or, for a zero
// Target, the system's master group.
func (e *Engine) connect(args engine.CreateArgs) (engine.ID, engine.Result) {
	dsp, res := e.expect(args.Source, engine.KindDSP)
	if !res.OK() {
		return 0, res
	}

	var (
		ptr  uintptr
		code int32
		t    = tracked{kind: engine.KindDSPConnection, system: e.systemOf(args.Source), parent: args.Target}
	)
	if args.Target == 0 {
		sys := uintptr(args.Parent)
		if sys == 0 {
			if code = fmodDSPGetSystemObject(dsp, &sys); code != 0 {
				return 0, result(code)
			}
		}
		code = fmodSystemAddDSP(sys, dsp, &ptr)
	} else {
		kind, res := e.kindOf(args.Target)
		if !res.OK() {
			return 0, res
		}
		switch kind {
		case engine.KindChannel:
			code = fmodChannelAddDSP(uintptr(args.Target), dsp, &ptr)
		case engine.KindChannelGroup:
			code = fmodChannelGroupAddDSP(uintptr(args.Target), dsp, &ptr)
		default:
			return 0, engine.ResultInvalidHandle
		}
	}

	if code != 0 {
		return 0, result(code)
	}
	return e.track(ptr, t), engine.ResultOK
}

func (e *Engine) Release(id engine.ID) engine.Result {
	kind, res := e.kindOf(id)
	if !res.OK() {
		return res
	}

	e.mu.Lock()
	_, locked := e.locks[id]
	e.mu.Unlock()
	if locked {
		return engine.ResultBadCommand
	}

	ptr := uintptr(id)
	var code int32
	switch kind {
	case engine.KindSystem:
		code = fmodSystemRelease(ptr)
	case engine.KindSound:
		code = fmodSoundRelease(ptr)
	case engine.KindDSP:
		code = fmodDSPRelease(ptr)
	case engine.KindChannelGroup:
		code = fmodChannelGroupRelease(ptr)
	case engine.KindSoundGroup:
		code = fmodSoundGroupRelease(ptr)
	default:
		return engine.ResultBadCommand
	}

	e.mu.Lock()
	e.forget(id)
	e.mu.Unlock()

	return result(code)
}

func (e *Engine) Format(id engine.ID) (engine.Format, engine.Result) {
	sound, res := e.expect(id, engine.KindSound)
	if !res.OK() {
		return engine.Format{}, res
	}

	var typ, format, channels, bits int32
	if code := fmodSoundGetFormat(sound, &typ, &format, &channels, &bits); code != 0 {
		return engine.Format{}, result(code)
	}
	return engine.Format{Channels: int(channels), Bits: int(bits)}, engine.ResultOK
}

func (e *Engine) Defaults(id engine.ID) (engine.Defaults, engine.Result) {
	sound, res := e.expect(id, engine.KindSound)
	if !res.OK() {
		return engine.Defaults{}, res
	}

	var (
		d        engine.Defaults
		priority int32
	)
	if code := fmodSoundGetDefaults(sound, &d.Frequency, &d.Volume, &d.Pan, &priority); code != 0 {
		return engine.Defaults{}, result(code)
	}
	d.Priority = int(priority)
	return d, engine.ResultOK
}

func (e *Engine) SetDefaults(id engine.ID, d engine.Defaults) engine.Result {
	sound, res := e.expect(id, engine.KindSound)
	if !res.OK() {
		return res
	}
	return result(fmodSoundSetDefaults(sound, d.Frequency, d.Volume, d.Pan, int32(d.Priority)))
}

func (e *Engine) Length(id engine.ID, unit engine.TimeUnit) (uint32, engine.Result) {
	sound, res := e.expect(id, engine.KindSound)
	if !res.OK() {
		return 0, res
	}

	var n uint32
	if code := fmodSoundGetLength(sound, &n, uint32(unit)); code != 0 {
		return 0, result(code)
	}
	return n, engine.ResultOK
}

func (e *Engine) Name(id engine.ID) (string, engine.Result) {
	kind, res := e.kindOf(id)
	if !res.OK() {
		return "", res
	}

	buf := make([]byte, nameSize)
	var code int32
	switch kind {
	case engine.KindSound:
		code = fmodSoundGetName(uintptr(id), &buf[0], int32(len(buf)))
	case engine.KindChannelGroup:
		code = fmodChannelGroupGetName(uintptr(id), &buf[0], int32(len(buf)))
	case engine.KindSoundGroup:
		code = fmodSoundGroupGetName(uintptr(id), &buf[0], int32(len(buf)))
	case engine.KindDSP:
		var version uint32
		var channels, width, height int32
		code = fmodDSPGetInfo(uintptr(id), &buf[0], &version, &channels, &width, &height)
		buf = buf[:dspNameSize]
	default:
		return "", engine.ResultInvalidParam
	}

	if code != 0 {
		return "", result(code)
	}
	return cString(buf), engine.ResultOK
}

// Lock returns slices over the library's own sample memory. The pointers
// are kept until Unlock.
func (e *Engine) Lock(id engine.ID, offset, length uint32) ([]byte, []byte, engine.Result) {
	sound, res := e.expect(id, engine.KindSound)
	if !res.OK() {
		return nil, nil, res
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.locks[id]; ok {
		return nil, nil, engine.ResultAlreadyLocked
	}

	var st lockState
	if code := fmodSoundLock(sound, offset, length, &st.ptr1, &st.ptr2, &st.len1, &st.len2); code != 0 {
		return nil, nil, result(code)
	}
	e.locks[id] = st

	return nativeBytes(st.ptr1, st.len1), nativeBytes(st.ptr2, st.len2), engine.ResultOK
}

func (e *Engine) Unlock(id engine.ID, a, b []byte) engine.Result {
	sound, res := e.expect(id, engine.KindSound)
	if !res.OK() {
		return res
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	st, ok := e.locks[id]
	if !ok {
		return engine.ResultBadCommand
	}
	if uint32(len(a)) != st.len1 || uint32(len(b)) != st.len2 {
		return engine.ResultInvalidParam
	}
	delete(e.locks, id)

	return result(fmodSoundUnlock(sound, st.ptr1, st.ptr2, st.len1, st.len2))
}

func nativeBytes(ptr uintptr, n uint32) []byte {
	if ptr == 0 || n == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(ptr)), n)
}

// relatedKind is the kind of object rel leads to.
var relatedKind = map[engine.Relation]engine.Kind{
	engine.RelationSystem:             engine.KindSystem,
	engine.RelationCurrentSound:       engine.KindSound,
	engine.RelationChannelGroup:       engine.KindChannelGroup,
	engine.RelationSoundGroup:         engine.KindSoundGroup,
	engine.RelationDSPHead:            engine.KindDSP,
	engine.RelationMasterChannelGroup: engine.KindChannelGroup,
	engine.RelationInput:              engine.KindDSP,
	engine.RelationOutput:             engine.KindDSP,
}

func (e *Engine) Related(id engine.ID, rel engine.Relation) (engine.ID, engine.Result) {
	kind, res := e.kindOf(id)
	if !res.OK() {
		return 0, res
	}

	fn := relatedFunc(kind, rel)
	if fn == nil {
		return 0, engine.ResultInvalidParam
	}

	var ptr uintptr
	if code := fn(uintptr(id), &ptr); code != 0 {
		return 0, result(code)
	}
	if ptr == 0 {
		return 0, engine.ResultInvalidHandle
	}

	t := tracked{kind: relatedKind[rel], system: e.systemOf(id)}
	if kind == engine.KindChannel || kind == engine.KindDSPConnection {
		t.parent = id
	}
	return e.track(ptr, t), engine.ResultOK
}

func relatedFunc(kind engine.Kind, rel engine.Relation) func(uintptr, *uintptr) int32 {
	switch rel {
	case engine.RelationSystem:
		switch kind {
		case engine.KindSound:
			return fmodSoundGetSystemObject
		case engine.KindChannel:
			return fmodChannelGetSystemObject
		case engine.KindDSP:
			return fmodDSPGetSystemObject
		case engine.KindChannelGroup:
			return fmodChannelGroupGetSystemObject
		case engine.KindSoundGroup:
			return fmodSoundGroupGetSystemObject
		}
	case engine.RelationCurrentSound:
		if kind == engine.KindChannel {
			return fmodChannelGetCurrentSound
		}
	case engine.RelationChannelGroup:
		switch kind {
		case engine.KindChannel:
			return fmodChannelGetChannelGroup
		case engine.KindChannelGroup:
			return fmodChannelGroupGetParentGroup
		}
	case engine.RelationSoundGroup:
		switch kind {
		case engine.KindSound:
			return fmodSoundGetSoundGroup
		case engine.KindSystem:
			return fmodSystemGetMasterSound
		}
	case engine.RelationDSPHead:
		switch kind {
		case engine.KindChannel:
			return fmodChannelGetDSPHead
		case engine.KindChannelGroup:
			return fmodChannelGroupGetDSPHead
		}
	case engine.RelationMasterChannelGroup:
		if kind == engine.KindSystem {
			return fmodSystemGetMasterChannel
		}
	case engine.RelationInput:
		if kind == engine.KindDSPConnection {
			return fmodDSPConnectionGetInput
		}
	case engine.RelationOutput:
		if kind == engine.KindDSPConnection {
			return fmodDSPConnectionGetOutput
		}
	}
	return nil
}

func (e *Engine) Attach(id engine.ID, rel engine.Relation, target engine.ID) engine.Result {
	kind, res := e.kindOf(id)
	if !res.OK() {
		return res
	}

	switch {
	case kind == engine.KindChannel && rel == engine.RelationChannelGroup:
		group, res := e.expect(target, engine.KindChannelGroup)
		if !res.OK() {
			return res
		}
		return result(fmodChannelSetChannelGroup(uintptr(id), group))
	case kind == engine.KindSound && rel == engine.RelationSoundGroup:
		group, res := e.expect(target, engine.KindSoundGroup)
		if !res.OK() {
			return res
		}
		return result(fmodSoundSetSoundGroup(uintptr(id), group))
	}
	return engine.ResultInvalidParam
}

func (e *Engine) Update(system engine.ID) engine.Result {
	sys, res := e.expect(system, engine.KindSystem)
	if !res.OK() {
		return res
	}
	code := fmodSystemUpdate(sys)
	e.pruneChannels(system)
	return result(code)
}

// pruneChannels forgets the channels of system that finished playing. The
// library reuses their memory for later channels.
func (e *Engine) pruneChannels(system engine.ID) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for id, o := range e.objects {
		if o.kind != engine.KindChannel || o.system != system {
			continue
		}
		var playing int32
		if code := fmodChannelIsPlaying(uintptr(id), &playing); code != 0 || playing == 0 {
			e.forget(id)
		}
	}
}

var _ engine.Engine = (*Engine)(nil)
