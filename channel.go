// SPDX-License-Identifier: EPL-2.0

package fmodgo

import (
	"fmt"

	"github.com/ik5/fmodgo/engine"
)

// Channel is one playing instance of a sound. Channels belong to the
// engine; a Channel value never releases anything.
type Channel struct {
	object
	sys *System
}

// Stop ends playback. The channel stays addressable until the engine
// reuses it.
func (c *Channel) Stop() error { return c.set("stop", engine.ParamPlaying, 0) }

func (c *Channel) IsPlaying() (bool, error) { return c.getBool("is playing", engine.ParamPlaying) }

func (c *Channel) Volume() (float32, error) { return c.getFloat("volume", engine.ParamVolume) }

// SetVolume sets the linear volume, 0 to 1.
func (c *Channel) SetVolume(v float32) error { return c.setFloat("set volume", engine.ParamVolume, v) }

// Frequency returns the playback rate in Hz.
func (c *Channel) Frequency() (float32, error) { return c.getFloat("frequency", engine.ParamFrequency) }

func (c *Channel) SetFrequency(hz float32) error {
	return c.setFloat("set frequency", engine.ParamFrequency, hz)
}

func (c *Channel) Pan() (float32, error) { return c.getFloat("pan", engine.ParamPan) }

// SetPan sets the stereo balance from -1 (left) to 1 (right).
func (c *Channel) SetPan(pan float32) error { return c.setFloat("set pan", engine.ParamPan, pan) }

func (c *Channel) Mute() (bool, error) { return c.getBool("mute", engine.ParamMute) }

func (c *Channel) SetMute(mute bool) error { return c.setBool("set mute", engine.ParamMute, mute) }

func (c *Channel) Paused() (bool, error) { return c.getBool("paused", engine.ParamPaused) }

func (c *Channel) SetPaused(paused bool) error {
	return c.setBool("set paused", engine.ParamPaused, paused)
}

// Priority returns the channel priority, 0 being the most important.
func (c *Channel) Priority() (int, error) { return c.getInt("priority", engine.ParamPriority) }

func (c *Channel) SetPriority(p int) error { return c.setInt("set priority", engine.ParamPriority, p) }

// positionParam maps unit to its cursor parameter. Liveness is checked
// first so a dead channel always reports ErrUseAfterRelease.
func (c *Channel) positionParam(unit engine.TimeUnit) (engine.Param, error) {
	if err := c.h.Err(); err != nil {
		return 0, err
	}
	switch unit {
	case engine.TimeUnitMS:
		return engine.ParamPositionMS, nil
	case engine.TimeUnitPCM:
		return engine.ParamPositionPCM, nil
	case engine.TimeUnitPCMBytes:
		return engine.ParamPositionPCMBytes, nil
	}
	return 0, &engine.EngineError{Op: fmt.Sprintf("channel position unit %d", unit), Code: engine.ResultInvalidParam}
}

// Position returns the playback cursor in unit.
func (c *Channel) Position(unit engine.TimeUnit) (uint32, error) {
	p, err := c.positionParam(unit)
	if err != nil {
		return 0, err
	}
	v, err := c.get("position", p)
	return uint32(v), err
}

// SetPosition moves the playback cursor.
func (c *Channel) SetPosition(pos uint32, unit engine.TimeUnit) error {
	p, err := c.positionParam(unit)
	if err != nil {
		return err
	}
	return c.set("set position", p, float64(pos))
}

// CurrentSound returns the sound the channel plays.
func (c *Channel) CurrentSound() (*Sound, error) {
	h, err := c.h.Related(engine.RelationCurrentSound, engine.KindSound)
	if err != nil {
		return nil, err
	}
	return &Sound{object{h: h}, c.sys}, nil
}

func (c *Channel) ChannelGroup() (*ChannelGroup, error) {
	h, err := c.h.Related(engine.RelationChannelGroup, engine.KindChannelGroup)
	if err != nil {
		return nil, err
	}
	return &ChannelGroup{object{h: h}}, nil
}

// SetChannelGroup routes the channel into group.
func (c *Channel) SetChannelGroup(group *ChannelGroup) error {
	if err := group.h.Err(); err != nil {
		return err
	}
	return c.h.Call("set channel group", func(eng engine.Engine, id engine.ID) engine.Result {
		return eng.Attach(id, engine.RelationChannelGroup, group.h.ID())
	})
}

// DSPHead returns the first unit of the channel's DSP chain.
func (c *Channel) DSPHead() (*DSP, error) {
	h, err := c.h.Related(engine.RelationDSPHead, engine.KindDSP)
	if err != nil {
		return nil, err
	}
	return &DSP{object{h: h}}, nil
}

// AddDSP inserts dsp at the head of the channel's chain.
func (c *Channel) AddDSP(dsp *DSP) (*DSPConnection, error) {
	if err := c.h.Err(); err != nil {
		return nil, err
	}
	return c.sys.connect(dsp, c.h.ID())
}

var (
	positionParams = [3]engine.Param{engine.Param3DPositionX, engine.Param3DPositionY, engine.Param3DPositionZ}
	velocityParams = [3]engine.Param{engine.Param3DVelocityX, engine.Param3DVelocityY, engine.Param3DVelocityZ}
)

// Set3DAttributes sets the position and velocity of a 3D channel. A nil
// argument leaves that attribute unchanged.
func (c *Channel) Set3DAttributes(pos, vel *Vector) error {
	for _, attr := range []struct {
		v      *Vector
		params [3]engine.Param
	}{{pos, positionParams}, {vel, velocityParams}} {
		if attr.v == nil {
			continue
		}
		for i, f := range [3]float32{attr.v.X, attr.v.Y, attr.v.Z} {
			if err := c.setFloat("set 3d attributes", attr.params[i], f); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *Channel) Get3DAttributes() (pos, vel Vector, err error) {
	for _, attr := range []struct {
		v      *Vector
		params [3]engine.Param
	}{{&pos, positionParams}, {&vel, velocityParams}} {
		var xyz [3]float32
		for i, p := range attr.params {
			if xyz[i], err = c.getFloat("3d attributes", p); err != nil {
				return Vector{}, Vector{}, err
			}
		}
		*attr.v = Vector{xyz[0], xyz[1], xyz[2]}
	}
	return pos, vel, nil
}
