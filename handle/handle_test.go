// SPDX-License-Identifier: EPL-2.0

package handle

import (
	"bytes"
	"errors"
	"testing"

	"github.com/ik5/fmodgo/engine"
	"github.com/ik5/fmodgo/internal/audiotest"
)

func TestLock_Pairing(t *testing.T) {
	t.Parallel()

	reg, eng := newSoundRegistry(t)
	h := createSound(t, reg)

	region, err := h.Lock(0, 8)
	if err != nil {
		t.Fatalf("Lock() error = %v", err)
	}
	if !h.Locked() || !region.Active() {
		t.Fatal("handle not locked after Lock")
	}

	if _, err := h.Lock(0, 8); !errors.Is(err, ErrLockState) {
		t.Errorf("second Lock() error = %v, want ErrLockState", err)
	}
	if got := eng.Count("Lock", h.ID()); got != 1 {
		t.Errorf("engine Lock calls = %d, want 1", got)
	}

	if err := reg.Release(h); !errors.Is(err, ErrLockState) {
		t.Errorf("Release() while locked error = %v, want ErrLockState", err)
	}
	if !h.Live() {
		t.Fatal("handle released while locked")
	}

	if err := h.Unlock(region); err != nil {
		t.Fatalf("Unlock() error = %v", err)
	}
	if h.Locked() || region.Active() {
		t.Error("handle still locked after Unlock")
	}
	if err := h.Unlock(region); !errors.Is(err, ErrLockState) {
		t.Errorf("second Unlock() error = %v, want ErrLockState", err)
	}
	if got := eng.Count("Unlock", h.ID()); got != 1 {
		t.Errorf("engine Unlock calls = %d, want 1", got)
	}

	if err := reg.Release(h); err != nil {
		t.Errorf("Release() after Unlock error = %v", err)
	}
}

func TestLock_ForeignRegion(t *testing.T) {
	t.Parallel()

	reg, _ := newSoundRegistry(t)
	a := createSound(t, reg)
	b := createSound(t, reg)

	ra, err := a.Lock(0, 4)
	if err != nil {
		t.Fatalf("Lock(a) error = %v", err)
	}
	rb, err := b.Lock(0, 4)
	if err != nil {
		t.Fatalf("Lock(b) error = %v", err)
	}

	if err := a.Unlock(rb); !errors.Is(err, ErrLockState) {
		t.Errorf("Unlock(foreign) error = %v, want ErrLockState", err)
	}
	if err := a.Unlock(ra); err != nil {
		t.Errorf("Unlock(a) error = %v", err)
	}
	if err := b.Unlock(rb); err != nil {
		t.Errorf("Unlock(b) error = %v", err)
	}
}

func TestLock_EngineRejects(t *testing.T) {
	t.Parallel()

	reg, _ := newSoundRegistry(t)
	h := createSound(t, reg)

	_, err := h.Lock(4, 100)
	if code, _ := engine.CodeOf(err); code != engine.ResultInvalidPosition {
		t.Fatalf("Lock() error = %v, want invalid position", err)
	}
	if h.Locked() {
		t.Error("handle locked after a rejected Lock")
	}
}

func TestUnlock_EngineFailureClearsLock(t *testing.T) {
	t.Parallel()

	reg, eng := newSoundRegistry(t)
	h := createSound(t, reg)

	region, err := h.Lock(0, 8)
	if err != nil {
		t.Fatalf("Lock() error = %v", err)
	}
	eng.FailOn("Unlock", engine.ResultInternal)

	if err := h.Unlock(region); err == nil {
		t.Fatal("Unlock() error = nil, want engine error")
	}
	if h.Locked() {
		t.Error("handle still locked after a failed Unlock")
	}
	if err := reg.Release(h); err != nil {
		t.Errorf("Release() error = %v", err)
	}
}

func TestRegion_WrappedParts(t *testing.T) {
	t.Parallel()

	eng := audiotest.NewEngine()
	eng.AddObject("ring", audiotest.Object{
		Kind:   engine.KindSound,
		Format: engine.Format{Channels: 1, Bits: 8},
		PCM:    []byte{1, 2, 3, 4, 5, 6},
		Split:  4,
	})
	reg := New(eng)

	h, err := reg.Create(engine.KindSound, engine.CreateArgs{Name: "ring"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	region, err := h.Lock(0, 6)
	if err != nil {
		t.Fatalf("Lock() error = %v", err)
	}
	defer h.Unlock(region)

	if region.Len() != 6 {
		t.Errorf("Len() = %d, want 6", region.Len())
	}
	var buf bytes.Buffer
	n, err := region.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}
	if n != 6 || !bytes.Equal(buf.Bytes(), []byte{1, 2, 3, 4, 5, 6}) {
		t.Errorf("WriteTo() = %d %v", n, buf.Bytes())
	}
}

func TestUserData_SideTable(t *testing.T) {
	t.Parallel()

	type track struct{ title string }

	reg, _ := newSoundRegistry(t)
	h := createSound(t, reg)
	alias, err := reg.Borrow(engine.KindSound, h.ID())
	if err != nil {
		t.Fatalf("Borrow() error = %v", err)
	}

	if _, ok, err := UserDataOf[*track](h); ok || err != nil {
		t.Fatalf("UserDataOf() on empty = %v, %v", ok, err)
	}

	if err := reg.SetUserData(h, &track{title: "intro"}); err != nil {
		t.Fatalf("SetUserData() error = %v", err)
	}

	got, ok, err := UserDataOf[*track](alias)
	if err != nil || !ok {
		t.Fatalf("UserDataOf() = %v, %v", ok, err)
	}
	if got.title != "intro" {
		t.Errorf("title = %q, want intro", got.title)
	}

	if _, _, err := UserDataOf[string](h); !errors.Is(err, ErrUserDataType) {
		t.Errorf("UserDataOf[string]() error = %v, want ErrUserDataType", err)
	}

	if err := reg.Release(h); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
	if _, ok, _ := reg.UserData(alias); ok {
		t.Error("user data survived the owning release")
	}
}

func TestUserData_Clear(t *testing.T) {
	t.Parallel()

	reg, _ := newSoundRegistry(t)
	h := createSound(t, reg)

	if err := reg.SetUserData(h, 42); err != nil {
		t.Fatalf("SetUserData() error = %v", err)
	}
	if err := reg.ClearUserData(h); err != nil {
		t.Fatalf("ClearUserData() error = %v", err)
	}
	if _, ok, _ := reg.UserData(h); ok {
		t.Error("UserData() ok = true after ClearUserData")
	}
}
