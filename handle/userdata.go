// SPDX-License-Identifier: EPL-2.0

package handle

import "fmt"

// SetUserData attaches v to the object behind h. Every handle for the same
// identifier sees the same value. The entry is dropped when the owning
// handle is released. Values on engine-owned objects, such as channels,
// stay until ClearUserData or Registry.Close.
func (r *Registry) SetUserData(h *Handle, v any) error {
	if err := h.check(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.userData[h.id] = v
	return nil
}

// UserData returns the value attached to the object behind h.
func (r *Registry) UserData(h *Handle) (any, bool, error) {
	if err := h.check(); err != nil {
		return nil, false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.userData[h.id]
	return v, ok, nil
}

// ClearUserData removes the value attached to the object behind h.
func (r *Registry) ClearUserData(h *Handle) error {
	if err := h.check(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.userData, h.id)
	return nil
}

// UserDataOf returns the value attached to h as a T.
func UserDataOf[T any](h *Handle) (T, bool, error) {
	var zero T

	v, ok, err := h.reg.UserData(h)
	if err != nil || !ok {
		return zero, false, err
	}

	t, ok := v.(T)
	if !ok {
		return zero, false, fmt.Errorf("%w: have %T, want %T", ErrUserDataType, v, zero)
	}
	return t, true, nil
}
