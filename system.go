// SPDX-License-Identifier: EPL-2.0

package fmodgo

import (
	"github.com/ik5/fmodgo/engine"
	"github.com/ik5/fmodgo/handle"
)

// System is the root object. It creates every other object and owns the
// registry that releases them.
type System struct {
	object
	reg *handle.Registry
}

// Open creates a system on eng. The options configure the registry that
// tracks every object created through the system.
func Open(eng engine.Engine, opts ...handle.Option) (*System, error) {
	reg := handle.New(eng, opts...)
	h, err := reg.Create(engine.KindSystem, engine.CreateArgs{})
	if err != nil {
		return nil, err
	}
	return &System{object: object{h: h}, reg: reg}, nil
}

// Registry returns the registry owning the system's objects.
func (s *System) Registry() *handle.Registry { return s.reg }

func (s *System) create(kind engine.Kind, args engine.CreateArgs) (*handle.Handle, error) {
	if err := s.h.Err(); err != nil {
		return nil, err
	}
	args.Parent = s.h.ID()
	return s.reg.Create(kind, args)
}

// spawn creates an object the engine keeps ownership of, such as a
// channel, and wraps it in a handle borrowed from the system.
func (s *System) spawn(op string, kind engine.Kind, args engine.CreateArgs) (*handle.Handle, error) {
	var id engine.ID
	err := s.h.Call(op, func(eng engine.Engine, sys engine.ID) engine.Result {
		args.Parent = sys
		var res engine.Result
		id, res = eng.Create(kind, args)
		return res
	})
	if err != nil {
		return nil, err
	}
	return s.h.Borrow(kind, id)
}

// CreateSound loads and fully decodes the file at path.
func (s *System) CreateSound(path string, mode engine.Mode) (*Sound, error) {
	h, err := s.create(engine.KindSound, engine.CreateArgs{Name: path, Mode: mode})
	if err != nil {
		return nil, err
	}
	return &Sound{object: object{h: h}, sys: s}, nil
}

// CreateSoundFromMemory decodes a complete file image held in data.
func (s *System) CreateSoundFromMemory(data []byte, mode engine.Mode) (*Sound, error) {
	h, err := s.create(engine.KindSound, engine.CreateArgs{Data: data, Mode: mode | engine.ModeOpenMemory})
	if err != nil {
		return nil, err
	}
	return &Sound{object: object{h: h}, sys: s}, nil
}

// CreateStream opens path as a streamed sound.
func (s *System) CreateStream(path string, mode engine.Mode) (*Sound, error) {
	return s.CreateSound(path, mode|engine.ModeCreateStream)
}

// CreateDSP creates a DSP unit of the named type.
func (s *System) CreateDSP(name string) (*DSP, error) {
	h, err := s.create(engine.KindDSP, engine.CreateArgs{Name: name})
	if err != nil {
		return nil, err
	}
	return &DSP{object{h: h}}, nil
}

func (s *System) CreateChannelGroup(name string) (*ChannelGroup, error) {
	h, err := s.create(engine.KindChannelGroup, engine.CreateArgs{Name: name})
	if err != nil {
		return nil, err
	}
	return &ChannelGroup{object{h: h}}, nil
}

func (s *System) CreateSoundGroup(name string) (*SoundGroup, error) {
	h, err := s.create(engine.KindSoundGroup, engine.CreateArgs{Name: name})
	if err != nil {
		return nil, err
	}
	return &SoundGroup{object{h: h}}, nil
}

// MasterChannelGroup returns the group every channel is routed to by
// default. The group belongs to the system.
func (s *System) MasterChannelGroup() (*ChannelGroup, error) {
	h, err := s.h.Related(engine.RelationMasterChannelGroup, engine.KindChannelGroup)
	if err != nil {
		return nil, err
	}
	return &ChannelGroup{object{h: h}}, nil
}

// MasterSoundGroup returns the group new sounds join.
func (s *System) MasterSoundGroup() (*SoundGroup, error) {
	h, err := s.h.Related(engine.RelationSoundGroup, engine.KindSoundGroup)
	if err != nil {
		return nil, err
	}
	return &SoundGroup{object{h: h}}, nil
}

// PlaySound starts sound on a new channel. The channel is owned by the
// engine and is never released through the returned value.
func (s *System) PlaySound(sound *Sound, paused bool) (*Channel, error) {
	if err := sound.h.Err(); err != nil {
		return nil, err
	}
	h, err := s.spawn("play sound", engine.KindChannel, engine.CreateArgs{Source: sound.h.ID(), Paused: paused})
	if err != nil {
		return nil, err
	}
	return &Channel{object{h: h}, s}, nil
}

// AddDSP inserts dsp at the head of the master channel group.
func (s *System) AddDSP(dsp *DSP) (*DSPConnection, error) {
	return s.connect(dsp, 0)
}

func (s *System) connect(dsp *DSP, target engine.ID) (*DSPConnection, error) {
	if err := dsp.h.Err(); err != nil {
		return nil, err
	}
	h, err := s.spawn("add dsp", engine.KindDSPConnection, engine.CreateArgs{Source: dsp.h.ID(), Target: target})
	if err != nil {
		return nil, err
	}
	return &DSPConnection{object{h: h}}, nil
}

// Update advances the engine by one tick.
func (s *System) Update() error {
	return s.h.Call("update", func(eng engine.Engine, id engine.ID) engine.Result {
		return eng.Update(id)
	})
}

// Close releases every object created through the system, newest first,
// and the system itself last.
func (s *System) Close() error {
	return s.reg.Close()
}
