// SPDX-License-Identifier: EPL-2.0

package fmodgo

import (
	"github.com/ik5/fmodgo/engine"
	"github.com/ik5/fmodgo/handle"
)

// Sound is a loaded sample or stream.
type Sound struct {
	object
	sys *System
}

func (s *Sound) Format() (engine.Format, error) {
	var f engine.Format
	err := s.h.Call("format", func(eng engine.Engine, id engine.ID) engine.Result {
		var res engine.Result
		f, res = eng.Format(id)
		return res
	})
	return f, err
}

// Defaults returns the playback defaults new channels start from.
func (s *Sound) Defaults() (engine.Defaults, error) {
	var d engine.Defaults
	err := s.h.Call("defaults", func(eng engine.Engine, id engine.ID) engine.Result {
		var res engine.Result
		d, res = eng.Defaults(id)
		return res
	})
	return d, err
}

func (s *Sound) SetDefaults(d engine.Defaults) error {
	return s.h.Call("set defaults", func(eng engine.Engine, id engine.ID) engine.Result {
		return eng.SetDefaults(id, d)
	})
}

// Length returns the length of the sound in unit.
func (s *Sound) Length(unit engine.TimeUnit) (uint32, error) {
	var n uint32
	err := s.h.Call("length", func(eng engine.Engine, id engine.ID) engine.Result {
		var res engine.Result
		n, res = eng.Length(id, unit)
		return res
	})
	return n, err
}

// Name returns the path or name the sound was created with.
func (s *Sound) Name() (string, error) { return s.name() }

func (s *Sound) Mode() (engine.Mode, error) {
	v, err := s.get("mode", engine.ParamMode)
	return engine.Mode(v), err
}

// LoopCount returns the number of times the sound repeats; -1 loops forever.
func (s *Sound) LoopCount() (int, error) { return s.getInt("loop count", engine.ParamLoopCount) }

func (s *Sound) SetLoopCount(n int) error {
	return s.setInt("set loop count", engine.ParamLoopCount, n)
}

// SoundGroup returns the group the sound belongs to.
func (s *Sound) SoundGroup() (*SoundGroup, error) {
	h, err := s.h.Related(engine.RelationSoundGroup, engine.KindSoundGroup)
	if err != nil {
		return nil, err
	}
	return &SoundGroup{object{h: h}}, nil
}

// SetSoundGroup moves the sound into group.
func (s *Sound) SetSoundGroup(group *SoundGroup) error {
	if err := group.h.Err(); err != nil {
		return err
	}
	return s.h.Call("set sound group", func(eng engine.Engine, id engine.ID) engine.Result {
		return eng.Attach(id, engine.RelationSoundGroup, group.h.ID())
	})
}

// Lock gives access to length bytes of sample data starting at offset.
// Every successful Lock must be followed by Unlock with the same region.
func (s *Sound) Lock(offset, length uint32) (*handle.Region, error) {
	return s.h.Lock(offset, length)
}

func (s *Sound) Unlock(region *handle.Region) error {
	return s.h.Unlock(region)
}

// Play starts the sound on a new channel.
func (s *Sound) Play() (*Channel, error) {
	return s.sys.PlaySound(s, false)
}

// PlayPaused starts the sound on a new paused channel.
func (s *Sound) PlayPaused() (*Channel, error) {
	return s.sys.PlaySound(s, true)
}

// Release frees the sound. Later calls fail with handle.ErrUseAfterRelease.
func (s *Sound) Release() error { return s.release() }

// Close is Release for use with defer.
func (s *Sound) Close() error { return s.release() }
