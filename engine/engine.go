// SPDX-License-Identifier: EPL-2.0

package engine

import "fmt"

// ID is an opaque engine-assigned identifier. Zero is never a valid object.
type ID uint64

// Kind is the type of object an ID refers to.
type Kind uint8

const (
	KindSystem Kind = iota + 1
	KindSound
	KindChannel
	KindDSP
	KindDSPConnection
	KindChannelGroup
	KindSoundGroup
)

var kindNames = map[Kind]string{
	KindSystem:        "system",
	KindSound:         "sound",
	KindChannel:       "channel",
	KindDSP:           "dsp",
	KindDSPConnection: "dsp connection",
	KindChannelGroup:  "channel group",
	KindSoundGroup:    "sound group",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// TimeUnit selects the unit of lengths and positions.
type TimeUnit uint32

const (
	TimeUnitMS       TimeUnit = 0x00000001
	TimeUnitPCM      TimeUnit = 0x00000002
	TimeUnitPCMBytes TimeUnit = 0x00000004
)

// Relation names a traversal from one object to another. The returned
// identifier is never owned by the caller.
type Relation uint8

const (
	RelationSystem Relation = iota + 1
	RelationCurrentSound
	RelationChannelGroup
	RelationSoundGroup
	RelationDSPHead
	RelationMasterChannelGroup
	RelationInput
	RelationOutput
)

// Mode holds the sound creation flags.
type Mode uint32

const (
	ModeDefault      Mode = 0x00000000
	ModeLoopOff      Mode = 0x00000001
	ModeLoopNormal   Mode = 0x00000002
	ModeLoopBidi     Mode = 0x00000004
	Mode2D           Mode = 0x00000008
	Mode3D           Mode = 0x00000010
	ModeHardware     Mode = 0x00000020
	ModeSoftware     Mode = 0x00000040
	ModeCreateStream Mode = 0x00000080
	ModeCreateSample Mode = 0x00000100
	ModeOpenMemory   Mode = 0x00000800
	ModeOpenUser     Mode = 0x00000400
)

// Param is a scalar property reached through Get and Set. Boolean
// properties use 0 and 1.
type Param uint8

const (
	ParamVolume Param = iota + 1
	ParamFrequency
	ParamPan
	ParamPriority
	ParamMute
	ParamPaused
	ParamPlaying
	ParamPositionMS
	ParamPositionPCM
	ParamPositionPCMBytes
	ParamLoopCount
	ParamMode
	ParamBypass
	ParamActive
	ParamMix
	ParamMaxAudible
	ParamNumSounds
	Param3DPositionX
	Param3DPositionY
	Param3DPositionZ
	Param3DVelocityX
	Param3DVelocityY
	Param3DVelocityZ
)

// Format is the sample layout of a sound.
type Format struct {
	Channels int
	Bits     int
}

// Defaults are the playback defaults stored on a sound.
type Defaults struct {
	Frequency float32
	Volume    float32
	Pan       float32
	Priority  int
}

// CreateArgs carries the arguments of Create. Which fields matter depends
// on the kind being created.
type CreateArgs struct {
	// Name is the file path of a sound, the name of a group or the type of a DSP.
	Name string
	// Data is the in-memory file contents when Mode has ModeOpenMemory.
	Data []byte
	Mode Mode
	// Parent is the system that creates the object.
	Parent ID
	// Source is the sound a channel plays or the DSP a connection adds.
	Source ID
	// Target is the channel or group a connection is added to; zero means
	// the master channel group.
	Target ID
	Paused bool
}

// Engine is the capability set the handle layer consumes. Every method is
// a synchronous round-trip and reports its outcome as a Result.
//
// Lock hands out two byte regions that may alias engine memory. Both must be
// passed back to Unlock unchanged in length before the sound is released or
// locked again.
type Engine interface {
	Create(kind Kind, args CreateArgs) (ID, Result)
	Release(id ID) Result

	Format(id ID) (Format, Result)
	Defaults(id ID) (Defaults, Result)
	SetDefaults(id ID, d Defaults) Result
	Length(id ID, unit TimeUnit) (uint32, Result)
	Name(id ID) (string, Result)

	Lock(id ID, offset, length uint32) (a, b []byte, res Result)
	Unlock(id ID, a, b []byte) Result

	Related(id ID, rel Relation) (ID, Result)
	Attach(id ID, rel Relation, target ID) Result

	Get(id ID, p Param) (float64, Result)
	Set(id ID, p Param, v float64) Result

	Update(system ID) Result
}
