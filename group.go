// SPDX-License-Identifier: EPL-2.0

package fmodgo

import "github.com/ik5/fmodgo/engine"

// ChannelGroup mixes the channels routed into it.
type ChannelGroup struct {
	object
}

func (g *ChannelGroup) Name() (string, error) { return g.name() }

func (g *ChannelGroup) Volume() (float32, error) { return g.getFloat("volume", engine.ParamVolume) }

func (g *ChannelGroup) SetVolume(v float32) error {
	return g.setFloat("set volume", engine.ParamVolume, v)
}

func (g *ChannelGroup) Paused() (bool, error) { return g.getBool("paused", engine.ParamPaused) }

func (g *ChannelGroup) SetPaused(paused bool) error {
	return g.setBool("set paused", engine.ParamPaused, paused)
}

func (g *ChannelGroup) Mute() (bool, error) { return g.getBool("mute", engine.ParamMute) }

func (g *ChannelGroup) SetMute(mute bool) error { return g.setBool("set mute", engine.ParamMute, mute) }

// Stop stops every channel in the group.
func (g *ChannelGroup) Stop() error { return g.set("stop", engine.ParamPlaying, 0) }

// Release frees the group. The master group is borrowed and not released.
func (g *ChannelGroup) Release() error { return g.release() }

// SoundGroup limits how many of its sounds play at once.
type SoundGroup struct {
	object
}

func (g *SoundGroup) Name() (string, error) { return g.name() }

// MaxAudible returns the playback limit; -1 means unlimited.
func (g *SoundGroup) MaxAudible() (int, error) {
	return g.getInt("max audible", engine.ParamMaxAudible)
}

func (g *SoundGroup) SetMaxAudible(n int) error {
	return g.setInt("set max audible", engine.ParamMaxAudible, n)
}

func (g *SoundGroup) Volume() (float32, error) { return g.getFloat("volume", engine.ParamVolume) }

func (g *SoundGroup) SetVolume(v float32) error {
	return g.setFloat("set volume", engine.ParamVolume, v)
}

// NumSounds returns how many sounds are in the group.
func (g *SoundGroup) NumSounds() (int, error) { return g.getInt("num sounds", engine.ParamNumSounds) }

func (g *SoundGroup) Release() error { return g.release() }
