// SPDX-License-Identifier: EPL-2.0

package handle

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/ik5/fmodgo/engine"
	"github.com/ik5/fmodgo/internal/status"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// CreateFunc creates one engine object and returns its identifier.
type CreateFunc func(eng engine.Engine) (engine.ID, engine.Result)

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMetrics records handle lifecycle events in m.
func WithMetrics(m *status.Metrics) Option {
	return func(r *Registry) {
		r.metrics = m
	}
}

// Registry owns the identifiers it created and releases each of them
// exactly once.
type Registry struct {
	eng     engine.Engine
	id      uuid.UUID
	logger  *zap.Logger
	metrics *status.Metrics

	mu       sync.Mutex
	seq      uint64
	owned    map[engine.ID]*Handle
	userData map[engine.ID]any
}

// New creates a registry in front of eng.
func New(eng engine.Engine, opts ...Option) *Registry {
	r := &Registry{
		eng:      eng,
		id:       uuid.New(),
		logger:   zap.NewNop(),
		owned:    make(map[engine.ID]*Handle),
		userData: make(map[engine.ID]any),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With(zap.Stringer("registry", r.id))
	return r
}

func (r *Registry) Engine() engine.Engine { return r.eng }

// ID identifies the registry in logs.
func (r *Registry) ID() uuid.UUID { return r.id }

func (r *Registry) Logger() *zap.Logger { return r.logger }

func (r *Registry) Metrics() *status.Metrics { return r.metrics }

// Live returns the number of live owning handles.
func (r *Registry) Live() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.owned)
}

// Acquire runs create against the engine and wraps the new identifier in an
// owning handle.
func (r *Registry) Acquire(kind engine.Kind, create CreateFunc) (*Handle, error) {
	id, res := create(r.eng)
	if err := engine.Check("create "+kind.String(), res); err != nil {
		r.logger.Debug("create rejected", zap.Stringer("kind", kind), zap.Error(err))
		return nil, err
	}
	if id == 0 {
		return nil, fmt.Errorf("%w: create %s", ErrNilID, kind)
	}

	r.mu.Lock()
	if prev, ok := r.owned[id]; ok {
		r.mu.Unlock()
		return nil, fmt.Errorf("%w: %s %d already owned as %s", ErrDuplicateOwner, kind, id, prev.kind)
	}
	r.seq++
	h := &Handle{reg: r, id: id, kind: kind, ownership: Owning, seq: r.seq}
	r.owned[id] = h
	r.mu.Unlock()

	r.metrics.RecordAcquired(kind.String())
	r.logger.Debug("handle acquired", zap.Stringer("kind", kind), zap.Uint64("id", uint64(id)))

	return h, nil
}

// Create acquires a new object of kind through Engine.Create.
func (r *Registry) Create(kind engine.Kind, args engine.CreateArgs) (*Handle, error) {
	return r.Acquire(kind, func(eng engine.Engine) (engine.ID, engine.Result) {
		return eng.Create(kind, args)
	})
}

// Borrow wraps an identifier obtained by traversal. The handle never
// releases its resource. When the registry owns id, the borrowed handle
// dies together with the owning one.
func (r *Registry) Borrow(kind engine.Kind, id engine.ID) (*Handle, error) {
	return r.borrow(kind, id, nil)
}

func (r *Registry) borrow(kind engine.Kind, id engine.ID, fallback *Handle) (*Handle, error) {
	if id == 0 {
		return nil, fmt.Errorf("%w: borrow %s", ErrNilID, kind)
	}

	r.mu.Lock()
	owner, ok := r.owned[id]
	r.mu.Unlock()
	if !ok {
		owner = fallback
	}

	return &Handle{reg: r, id: id, kind: kind, ownership: Borrowed, owner: owner}, nil
}

// Release releases h. Releasing a dead or borrowed handle does nothing.
// A live owning handle is released through the engine once and is dead
// afterwards, also when the engine reports a failure. A handle with an
// outstanding lock is not released.
func (r *Registry) Release(h *Handle) error {
	if h == nil || h.released || h.ownership == Borrowed {
		return nil
	}
	if h.lock != nil {
		return fmt.Errorf("%w: release of %s %d with an outstanding lock", ErrLockState, h.kind, h.id)
	}

	res := r.eng.Release(h.id)
	h.released = true

	r.mu.Lock()
	delete(r.owned, h.id)
	delete(r.userData, h.id)
	r.mu.Unlock()

	err := engine.Check(h.op("release"), res)
	r.metrics.RecordReleased(h.kind.String(), err)
	if err != nil {
		r.logger.Warn("release rejected", zap.Stringer("kind", h.kind), zap.Uint64("id", uint64(h.id)), zap.Error(err))
		return err
	}

	r.logger.Debug("handle released", zap.Stringer("kind", h.kind), zap.Uint64("id", uint64(h.id)))
	return nil
}

// With acquires a handle, passes it to fn and releases it on every exit
// path. The release error is joined to fn's error.
func (r *Registry) With(kind engine.Kind, create CreateFunc, fn func(h *Handle) error) (err error) {
	h, err := r.Acquire(kind, create)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, r.Release(h))
	}()

	return fn(h)
}

// Close releases every live owning handle, newest first, so that objects
// are released before the system that created them. Close stops at a
// handle with an outstanding lock and leaves it and every older handle
// live; unlock and call Close again.
func (r *Registry) Close() error {
	r.mu.Lock()
	handles := make([]*Handle, 0, len(r.owned))
	for _, h := range r.owned {
		handles = append(handles, h)
	}
	r.mu.Unlock()

	slices.SortFunc(handles, func(a, b *Handle) int {
		switch {
		case a.seq > b.seq:
			return -1
		case a.seq < b.seq:
			return 1
		}
		return 0
	})

	var err error
	for _, h := range handles {
		rerr := r.Release(h)
		err = multierr.Append(err, rerr)
		if errors.Is(rerr, ErrLockState) {
			r.logger.Warn("close stopped at a locked handle", zap.Stringer("kind", h.kind), zap.Uint64("id", uint64(h.id)))
			return err
		}
	}

	r.mu.Lock()
	clear(r.userData)
	r.mu.Unlock()

	return err
}
