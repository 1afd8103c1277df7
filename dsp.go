// SPDX-License-Identifier: EPL-2.0

package fmodgo

import "github.com/ik5/fmodgo/engine"

// DSP is a processing unit.
type DSP struct {
	object
}

// Name returns the DSP type name.
func (d *DSP) Name() (string, error) { return d.name() }

func (d *DSP) Bypass() (bool, error) { return d.getBool("bypass", engine.ParamBypass) }

func (d *DSP) SetBypass(bypass bool) error {
	return d.setBool("set bypass", engine.ParamBypass, bypass)
}

func (d *DSP) Active() (bool, error) { return d.getBool("active", engine.ParamActive) }

func (d *DSP) SetActive(active bool) error {
	return d.setBool("set active", engine.ParamActive, active)
}

// Release frees the unit. DSP heads reached through a channel or group are
// borrowed and not released.
func (d *DSP) Release() error { return d.release() }

// DSPConnection links two units. It is owned by the engine.
type DSPConnection struct {
	object
}

// Mix returns the volume applied across the connection.
func (c *DSPConnection) Mix() (float32, error) { return c.getFloat("mix", engine.ParamMix) }

func (c *DSPConnection) SetMix(v float32) error { return c.setFloat("set mix", engine.ParamMix, v) }

// Input returns the unit feeding the connection.
func (c *DSPConnection) Input() (*DSP, error) {
	h, err := c.h.Related(engine.RelationInput, engine.KindDSP)
	if err != nil {
		return nil, err
	}
	return &DSP{object{h: h}}, nil
}

// Output returns the unit the connection feeds.
func (c *DSPConnection) Output() (*DSP, error) {
	h, err := c.h.Related(engine.RelationOutput, engine.KindDSP)
	if err != nil {
		return nil, err
	}
	return &DSP{object{h: h}}, nil
}
