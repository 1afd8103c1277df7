// SPDX-License-Identifier: EPL-2.0

package handle

import (
	"fmt"

	"github.com/ik5/fmodgo/engine"
)

// Ownership tells whether a handle releases its resource.
type Ownership uint8

const (
	// Owning handles release their resource exactly once.
	Owning Ownership = iota
	// Borrowed handles were obtained by traversal and never release.
	Borrowed
)

func (o Ownership) String() string {
	if o == Borrowed {
		return "borrowed"
	}
	return "owning"
}

// Handle wraps one engine identifier. A Handle is not safe for concurrent
// use; confine it to one goroutine or serialise access externally.
type Handle struct {
	reg       *Registry
	id        engine.ID
	kind      engine.Kind
	ownership Ownership
	seq       uint64
	released  bool
	lock      *Region

	// owner is the owning handle a borrowed handle was taken from, if any.
	owner *Handle
}

// ID returns the engine identifier, also after release.
func (h *Handle) ID() engine.ID { return h.id }

func (h *Handle) Kind() engine.Kind { return h.kind }

func (h *Handle) Ownership() Ownership { return h.ownership }

// Live reports whether the handle may still be used. A borrowed handle of
// a registry-owned object dies when the owning handle is released.
func (h *Handle) Live() bool {
	return !h.released && (h.owner == nil || !h.owner.released)
}

// Locked reports whether a lock region is outstanding.
func (h *Handle) Locked() bool { return h.lock != nil }

// Registry returns the registry the handle belongs to.
func (h *Handle) Registry() *Registry { return h.reg }

// Close releases the handle. It is Registry.Release for use with defer.
func (h *Handle) Close() error {
	return h.reg.Release(h)
}

// Err returns an ErrUseAfterRelease error once the handle is released and
// nil before. It makes no engine call.
func (h *Handle) Err() error {
	return h.check()
}

func (h *Handle) check() error {
	if !h.Live() {
		return fmt.Errorf("%w: %s %d", ErrUseAfterRelease, h.kind, h.id)
	}
	return nil
}

func (h *Handle) op(name string) string {
	return h.kind.String() + " " + name
}

// Call forwards one engine call for this handle. The handle must be live;
// the result is mapped into nil or an *engine.EngineError named after op.
func (h *Handle) Call(op string, fn func(eng engine.Engine, id engine.ID) engine.Result) error {
	if err := h.check(); err != nil {
		return err
	}
	return engine.Check(h.op(op), fn(h.reg.eng, h.id))
}

// Related follows rel from this handle and wraps the result as a borrowed
// handle of the given kind.
func (h *Handle) Related(rel engine.Relation, kind engine.Kind) (*Handle, error) {
	var target engine.ID
	err := h.Call("related "+kind.String(), func(eng engine.Engine, id engine.ID) engine.Result {
		var res engine.Result
		target, res = eng.Related(id, rel)
		return res
	})
	if err != nil {
		return nil, err
	}
	return h.Borrow(kind, target)
}

// Borrow wraps id, reached from h, in a borrowed handle. The new handle
// dies with the registry's owning handle for id or, when the registry does
// not own id, together with h.
func (h *Handle) Borrow(kind engine.Kind, id engine.ID) (*Handle, error) {
	if err := h.check(); err != nil {
		return nil, err
	}
	return h.reg.borrow(kind, id, h.anchor())
}

// anchor is the owning handle whose release ends h's lifetime.
func (h *Handle) anchor() *Handle {
	switch {
	case h.owner != nil:
		return h.owner
	case h.ownership == Owning:
		return h
	}
	return nil
}

// Lock locks length bytes of PCM data starting at offset. The region must
// be passed to Unlock before the next Lock or before release.
func (h *Handle) Lock(offset, length uint32) (*Region, error) {
	if err := h.check(); err != nil {
		return nil, err
	}
	if h.lock != nil {
		return nil, fmt.Errorf("%w: %s %d is already locked", ErrLockState, h.kind, h.id)
	}

	a, b, res := h.reg.eng.Lock(h.id, offset, length)
	if err := engine.Check(h.op("lock"), res); err != nil {
		return nil, err
	}

	h.lock = &Region{A: a, B: b, Offset: offset, Length: length, owner: h}
	return h.lock, nil
}

// Unlock hands region back to the engine. The handle counts as unlocked
// afterwards even when the engine reports a failure.
func (h *Handle) Unlock(region *Region) error {
	if err := h.check(); err != nil {
		return err
	}
	if h.lock == nil {
		return fmt.Errorf("%w: %s %d is not locked", ErrLockState, h.kind, h.id)
	}
	if region != h.lock {
		return fmt.Errorf("%w: region does not belong to the lock on %s %d", ErrLockState, h.kind, h.id)
	}

	res := h.reg.eng.Unlock(h.id, region.A, region.B)
	h.lock = nil
	region.owner = nil

	return engine.Check(h.op("unlock"), res)
}
