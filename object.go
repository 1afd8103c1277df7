// SPDX-License-Identifier: EPL-2.0

package fmodgo

import (
	"github.com/ik5/fmodgo/engine"
	"github.com/ik5/fmodgo/handle"
)

// object is the part every wrapper shares: a handle and the parameter
// forwards built on it.
type object struct {
	h *handle.Handle
}

// Handle returns the underlying handle.
func (o object) Handle() *handle.Handle { return o.h }

// Live reports whether the object may still be used.
func (o object) Live() bool { return o.h.Live() }

// SetUserData attaches v to the object, replacing any earlier value.
func (o object) SetUserData(v any) error {
	return o.h.Registry().SetUserData(o.h, v)
}

// UserData returns the value attached with SetUserData.
func (o object) UserData() (any, bool, error) {
	return o.h.Registry().UserData(o.h)
}

func (o object) name() (string, error) {
	var name string
	err := o.h.Call("name", func(eng engine.Engine, id engine.ID) engine.Result {
		var res engine.Result
		name, res = eng.Name(id)
		return res
	})
	return name, err
}

func (o object) get(op string, p engine.Param) (float64, error) {
	var v float64
	err := o.h.Call(op, func(eng engine.Engine, id engine.ID) engine.Result {
		var res engine.Result
		v, res = eng.Get(id, p)
		return res
	})
	return v, err
}

func (o object) set(op string, p engine.Param, v float64) error {
	return o.h.Call(op, func(eng engine.Engine, id engine.ID) engine.Result {
		return eng.Set(id, p, v)
	})
}

func (o object) getFloat(op string, p engine.Param) (float32, error) {
	v, err := o.get(op, p)
	return float32(v), err
}

func (o object) setFloat(op string, p engine.Param, v float32) error {
	return o.set(op, p, float64(v))
}

func (o object) getBool(op string, p engine.Param) (bool, error) {
	v, err := o.get(op, p)
	return v != 0, err
}

func (o object) setBool(op string, p engine.Param, v bool) error {
	if v {
		return o.set(op, p, 1)
	}
	return o.set(op, p, 0)
}

func (o object) getInt(op string, p engine.Param) (int, error) {
	v, err := o.get(op, p)
	return int(v), err
}

func (o object) setInt(op string, p engine.Param, v int) error {
	return o.set(op, p, float64(v))
}

func (o object) release() error {
	return o.h.Registry().Release(o.h)
}
