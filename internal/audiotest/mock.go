// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"sync"

	"github.com/ik5/fmodgo/engine"
)

// Call is one recorded engine call.
type Call struct {
	Method string
	ID     engine.ID
}

// Object is the state the mock keeps for one engine object.
type Object struct {
	Kind     engine.Kind
	Name     string
	Format   engine.Format
	Defaults engine.Defaults
	PCM      []byte
	// Split, when non-zero, makes Lock hand out bytes past this offset as
	// the second region, like a wrapped ring buffer.
	Split    int
	Locked   bool
	Params   map[engine.Param]float64
	Related  map[engine.Relation]engine.ID
	Released bool
}

// Engine is a recording engine.Engine for tests. Sounds are created from
// fixtures registered with AddSound; any method can be made to fail with
// FailOn.
type Engine struct {
	mu       sync.Mutex
	next     engine.ID
	objects  map[engine.ID]*Object
	fixtures map[string]Object
	failures map[string]engine.Result
	calls    []Call
}

// NewEngine creates an empty mock engine.
func NewEngine() *Engine {
	return &Engine{
		objects:  make(map[engine.ID]*Object),
		fixtures: make(map[string]Object),
		failures: make(map[string]engine.Result),
	}
}

// AddSound registers a fixture that Create(KindSound) returns for name.
func (e *Engine) AddSound(name string, format engine.Format, rate float32, pcm []byte) {
	e.AddObject(name, Object{
		Kind:     engine.KindSound,
		Format:   format,
		Defaults: engine.Defaults{Frequency: rate, Volume: 1, Priority: 128},
		PCM:      pcm,
	})
}

// AddObject registers an arbitrary fixture for name.
func (e *Engine) AddObject(name string, obj Object) {
	e.mu.Lock()
	defer e.mu.Unlock()

	obj.Name = name
	e.fixtures[name] = obj
}

// FailOn makes every later call to method return res.
func (e *Engine) FailOn(method string, res engine.Result) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.failures[method] = res
}

// Clear removes all injected failures.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.failures = make(map[string]engine.Result)
}

// Calls returns a copy of the recorded calls.
func (e *Engine) Calls() []Call {
	e.mu.Lock()
	defer e.mu.Unlock()

	return append([]Call(nil), e.calls...)
}

// Count returns how many times method was called for id. A zero id counts
// calls for any object.
func (e *Engine) Count(method string, id engine.ID) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	n := 0
	for _, c := range e.calls {
		if c.Method == method && (id == 0 || c.ID == id) {
			n++
		}
	}
	return n
}

// Object returns the state of id.
func (e *Engine) Object(id engine.ID) (*Object, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	obj, ok := e.objects[id]
	return obj, ok
}

// Link sets the object returned by Related(id, rel).
func (e *Engine) Link(id engine.ID, rel engine.Relation, target engine.ID) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if obj, ok := e.objects[id]; ok {
		obj.Related[rel] = target
	}
}

// enter records a call and returns the injected failure, if any, and the
// live object for id.
func (e *Engine) enter(method string, id engine.ID) (*Object, engine.Result) {
	e.calls = append(e.calls, Call{Method: method, ID: id})
	if res, ok := e.failures[method]; ok {
		return nil, res
	}
	if id == 0 {
		return nil, engine.ResultOK
	}
	obj, ok := e.objects[id]
	if !ok || obj.Released {
		return nil, engine.ResultInvalidHandle
	}
	return obj, engine.ResultOK
}

func (e *Engine) Create(kind engine.Kind, args engine.CreateArgs) (engine.ID, engine.Result) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, res := e.enter("Create", 0); !res.OK() {
		return 0, res
	}

	obj := Object{Kind: kind, Name: args.Name}
	if kind == engine.KindSound {
		fixture, ok := e.fixtures[args.Name]
		if !ok {
			return 0, engine.ResultFileNotFound
		}
		obj = fixture
		obj.PCM = append([]byte(nil), fixture.PCM...)
	}
	obj.Params = make(map[engine.Param]float64)
	obj.Related = make(map[engine.Relation]engine.ID)
	if args.Source != 0 {
		obj.Related[engine.RelationCurrentSound] = args.Source
	}

	e.next++
	e.objects[e.next] = &obj
	return e.next, engine.ResultOK
}

func (e *Engine) Release(id engine.ID) engine.Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	obj, res := e.enter("Release", id)
	if !res.OK() {
		return res
	}
	obj.Released = true
	return engine.ResultOK
}

func (e *Engine) Format(id engine.ID) (engine.Format, engine.Result) {
	e.mu.Lock()
	defer e.mu.Unlock()

	obj, res := e.enter("Format", id)
	if !res.OK() {
		return engine.Format{}, res
	}
	return obj.Format, engine.ResultOK
}

func (e *Engine) Defaults(id engine.ID) (engine.Defaults, engine.Result) {
	e.mu.Lock()
	defer e.mu.Unlock()

	obj, res := e.enter("Defaults", id)
	if !res.OK() {
		return engine.Defaults{}, res
	}
	return obj.Defaults, engine.ResultOK
}

func (e *Engine) SetDefaults(id engine.ID, d engine.Defaults) engine.Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	obj, res := e.enter("SetDefaults", id)
	if !res.OK() {
		return res
	}
	obj.Defaults = d
	return engine.ResultOK
}

func (e *Engine) Length(id engine.ID, unit engine.TimeUnit) (uint32, engine.Result) {
	e.mu.Lock()
	defer e.mu.Unlock()

	obj, res := e.enter("Length", id)
	if !res.OK() {
		return 0, res
	}
	switch unit {
	case engine.TimeUnitPCMBytes:
		return uint32(len(obj.PCM)), engine.ResultOK
	case engine.TimeUnitPCM:
		frame := obj.Format.Channels * obj.Format.Bits / 8
		if frame == 0 {
			return 0, engine.ResultFormat
		}
		return uint32(len(obj.PCM) / frame), engine.ResultOK
	default:
		return 0, engine.ResultInvalidParam
	}
}

func (e *Engine) Name(id engine.ID) (string, engine.Result) {
	e.mu.Lock()
	defer e.mu.Unlock()

	obj, res := e.enter("Name", id)
	if !res.OK() {
		return "", res
	}
	return obj.Name, engine.ResultOK
}

func (e *Engine) Lock(id engine.ID, offset, length uint32) ([]byte, []byte, engine.Result) {
	e.mu.Lock()
	defer e.mu.Unlock()

	obj, res := e.enter("Lock", id)
	if !res.OK() {
		return nil, nil, res
	}
	if obj.Locked {
		return nil, nil, engine.ResultAlreadyLocked
	}
	end := int(offset) + int(length)
	if end > len(obj.PCM) {
		return nil, nil, engine.ResultInvalidPosition
	}
	obj.Locked = true

	if obj.Split > int(offset) && obj.Split < end {
		return obj.PCM[offset:obj.Split], obj.PCM[obj.Split:end], engine.ResultOK
	}
	return obj.PCM[offset:end], nil, engine.ResultOK
}

func (e *Engine) Unlock(id engine.ID, a, b []byte) engine.Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	obj, res := e.enter("Unlock", id)
	if !res.OK() {
		return res
	}
	if !obj.Locked {
		return engine.ResultBadCommand
	}
	obj.Locked = false
	return engine.ResultOK
}

func (e *Engine) Related(id engine.ID, rel engine.Relation) (engine.ID, engine.Result) {
	e.mu.Lock()
	defer e.mu.Unlock()

	obj, res := e.enter("Related", id)
	if !res.OK() {
		return 0, res
	}
	target, ok := obj.Related[rel]
	if !ok {
		return 0, engine.ResultInvalidParam
	}
	return target, engine.ResultOK
}

func (e *Engine) Attach(id engine.ID, rel engine.Relation, target engine.ID) engine.Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	obj, res := e.enter("Attach", id)
	if !res.OK() {
		return res
	}
	obj.Related[rel] = target
	return engine.ResultOK
}

func (e *Engine) Get(id engine.ID, p engine.Param) (float64, engine.Result) {
	e.mu.Lock()
	defer e.mu.Unlock()

	obj, res := e.enter("Get", id)
	if !res.OK() {
		return 0, res
	}
	return obj.Params[p], engine.ResultOK
}

func (e *Engine) Set(id engine.ID, p engine.Param, v float64) engine.Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	obj, res := e.enter("Set", id)
	if !res.OK() {
		return res
	}
	obj.Params[p] = v
	return engine.ResultOK
}

func (e *Engine) Update(system engine.ID) engine.Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	_, res := e.enter("Update", system)
	return res
}

var _ engine.Engine = (*Engine)(nil)
