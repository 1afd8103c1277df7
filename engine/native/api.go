// SPDX-License-Identifier: EPL-2.0

package native

// FMOD Ex C entry points. Every function returns an FMOD_RESULT; objects
// are opaque pointers. The variables are filled in by load.
var (
	fmodSystemCreate             func(system *uintptr) int32
	fmodSystemInit               func(system uintptr, maxChannels int32, flags uint32, extra uintptr) int32
	fmodSystemRelease            func(system uintptr) int32
	fmodSystemUpdate             func(system uintptr) int32
	fmodSystemCreateSound        func(system uintptr, name string, mode uint32, exinfo *createSoundExInfo, sound *uintptr) int32
	fmodSystemCreateSoundMemory  func(system uintptr, data *byte, mode uint32, exinfo *createSoundExInfo, sound *uintptr) int32
	fmodSystemCreateDSPByType    func(system uintptr, typ int32, dsp *uintptr) int32
	fmodSystemCreateChannelGroup func(system uintptr, name string, group *uintptr) int32
	fmodSystemCreateSoundGroup   func(system uintptr, name string, group *uintptr) int32
	fmodSystemGetMasterChannel   func(system uintptr, group *uintptr) int32
	fmodSystemGetMasterSound     func(system uintptr, group *uintptr) int32
	fmodSystemPlaySound          func(system uintptr, channelID int32, sound uintptr, paused int32, channel *uintptr) int32
	fmodSystemAddDSP             func(system uintptr, dsp uintptr, conn *uintptr) int32

	fmodSoundRelease         func(sound uintptr) int32
	fmodSoundGetSystemObject func(sound uintptr, system *uintptr) int32
	fmodSoundGetFormat       func(sound uintptr, typ, format, channels, bits *int32) int32
	fmodSoundGetDefaults     func(sound uintptr, frequency, volume, pan *float32, priority *int32) int32
	fmodSoundSetDefaults     func(sound uintptr, frequency, volume, pan float32, priority int32) int32
	fmodSoundGetLength       func(sound uintptr, length *uint32, unit uint32) int32
	fmodSoundGetName         func(sound uintptr, name *byte, size int32) int32
	fmodSoundLock            func(sound uintptr, offset, length uint32, ptr1, ptr2 *uintptr, len1, len2 *uint32) int32
	fmodSoundUnlock          func(sound uintptr, ptr1, ptr2 uintptr, len1, len2 uint32) int32
	fmodSoundGetSoundGroup   func(sound uintptr, group *uintptr) int32
	fmodSoundSetSoundGroup   func(sound uintptr, group uintptr) int32
	fmodSoundGetMode         func(sound uintptr, mode *uint32) int32
	fmodSoundSetMode         func(sound uintptr, mode uint32) int32
	fmodSoundGetLoopCount    func(sound uintptr, count *int32) int32
	fmodSoundSetLoopCount    func(sound uintptr, count int32) int32

	fmodChannelGetSystemObject func(channel uintptr, system *uintptr) int32
	fmodChannelStop            func(channel uintptr) int32
	fmodChannelIsPlaying       func(channel uintptr, playing *int32) int32
	fmodChannelGetVolume       func(channel uintptr, v *float32) int32
	fmodChannelSetVolume       func(channel uintptr, v float32) int32
	fmodChannelGetFrequency    func(channel uintptr, v *float32) int32
	fmodChannelSetFrequency    func(channel uintptr, v float32) int32
	fmodChannelGetPan          func(channel uintptr, v *float32) int32
	fmodChannelSetPan          func(channel uintptr, v float32) int32
	fmodChannelGetMute         func(channel uintptr, v *int32) int32
	fmodChannelSetMute         func(channel uintptr, v int32) int32
	fmodChannelGetPaused       func(channel uintptr, v *int32) int32
	fmodChannelSetPaused       func(channel uintptr, v int32) int32
	fmodChannelGetPriority     func(channel uintptr, v *int32) int32
	fmodChannelSetPriority     func(channel uintptr, v int32) int32
	fmodChannelGetLoopCount    func(channel uintptr, v *int32) int32
	fmodChannelSetLoopCount    func(channel uintptr, v int32) int32
	fmodChannelGetPosition     func(channel uintptr, pos *uint32, unit uint32) int32
	fmodChannelSetPosition     func(channel uintptr, pos uint32, unit uint32) int32
	fmodChannelGetCurrentSound func(channel uintptr, sound *uintptr) int32
	fmodChannelGetChannelGroup func(channel uintptr, group *uintptr) int32
	fmodChannelSetChannelGroup func(channel uintptr, group uintptr) int32
	fmodChannelGetDSPHead      func(channel uintptr, dsp *uintptr) int32
	fmodChannelAddDSP          func(channel uintptr, dsp uintptr, conn *uintptr) int32
	fmodChannelGet3DAttributes func(channel uintptr, pos, vel *vector) int32
	fmodChannelSet3DAttributes func(channel uintptr, pos, vel *vector) int32

	fmodChannelGroupRelease         func(group uintptr) int32
	fmodChannelGroupGetSystemObject func(group uintptr, system *uintptr) int32
	fmodChannelGroupGetVolume       func(group uintptr, v *float32) int32
	fmodChannelGroupSetVolume       func(group uintptr, v float32) int32
	fmodChannelGroupGetPaused       func(group uintptr, v *int32) int32
	fmodChannelGroupSetPaused       func(group uintptr, v int32) int32
	fmodChannelGroupGetMute         func(group uintptr, v *int32) int32
	fmodChannelGroupSetMute         func(group uintptr, v int32) int32
	fmodChannelGroupStop            func(group uintptr) int32
	fmodChannelGroupGetName         func(group uintptr, name *byte, size int32) int32
	fmodChannelGroupGetParentGroup  func(group uintptr, parent *uintptr) int32
	fmodChannelGroupGetDSPHead      func(group uintptr, dsp *uintptr) int32
	fmodChannelGroupAddDSP          func(group uintptr, dsp uintptr, conn *uintptr) int32

	fmodSoundGroupRelease         func(group uintptr) int32
	fmodSoundGroupGetSystemObject func(group uintptr, system *uintptr) int32
	fmodSoundGroupGetMaxAudible   func(group uintptr, v *int32) int32
	fmodSoundGroupSetMaxAudible   func(group uintptr, v int32) int32
	fmodSoundGroupGetVolume       func(group uintptr, v *float32) int32
	fmodSoundGroupSetVolume       func(group uintptr, v float32) int32
	fmodSoundGroupGetNumSounds    func(group uintptr, v *int32) int32
	fmodSoundGroupGetName         func(group uintptr, name *byte, size int32) int32

	fmodDSPRelease         func(dsp uintptr) int32
	fmodDSPGetSystemObject func(dsp uintptr, system *uintptr) int32
	fmodDSPGetBypass       func(dsp uintptr, v *int32) int32
	fmodDSPSetBypass       func(dsp uintptr, v int32) int32
	fmodDSPGetActive       func(dsp uintptr, v *int32) int32
	fmodDSPSetActive       func(dsp uintptr, v int32) int32
	fmodDSPGetInfo         func(dsp uintptr, name *byte, version *uint32, channels, width, height *int32) int32

	fmodDSPConnectionGetMix    func(conn uintptr, v *float32) int32
	fmodDSPConnectionSetMix    func(conn uintptr, v float32) int32
	fmodDSPConnectionGetInput  func(conn uintptr, dsp *uintptr) int32
	fmodDSPConnectionGetOutput func(conn uintptr, dsp *uintptr) int32
)

const (
	initNormal  = 0
	channelFree = -1

	// DSP units carry their type name in a fixed 32 byte field.
	dspNameSize = 32
	nameSize    = 256
)

// dspTypes maps DSP names to FMOD_DSP_TYPE values.
var dspTypes = map[string]int32{
	"mixer":      1,
	"oscillator": 2,
	"lowpass":    3,
	"itlowpass":  4,
	"highpass":   5,
	"echo":       6,
	"flange":     7,
	"distortion": 8,
	"normalize":  9,
	"parameq":    10,
	"pitchshift": 11,
	"chorus":     12,
	"itecho":     15,
	"compressor": 16,
	"sfxreverb":  17,
}

type vector struct {
	X, Y, Z float32
}

// createSoundExInfo mirrors FMOD_CREATESOUNDEXINFO. Only cbsize and length
// are set; they are required to open a sound from memory.
type createSoundExInfo struct {
	cbsize              int32
	length              uint32
	fileOffset          uint32
	numChannels         int32
	defaultFrequency    int32
	format              int32
	decodeBufferSize    uint32
	initialSubsound     int32
	numSubsounds        int32
	inclusionList       uintptr
	inclusionListNum    int32
	pcmReadCallback     uintptr
	pcmSetPosCallback   uintptr
	nonBlockCallback    uintptr
	dlsName             uintptr
	encryptionKey       uintptr
	maxPolyphony        int32
	userData            uintptr
	suggestedSoundType  int32
	userOpen            uintptr
	userClose           uintptr
	userRead            uintptr
	userSeek            uintptr
	userAsyncRead       uintptr
	userAsyncCancel     uintptr
	speakerMap          int32
	initialSoundGroup   uintptr
	initialSeekPosition uint32
	initialSeekPosType  uint32
	ignoreSetFileSystem int32
	cddaForceASPI       int32
	audioQueuePolicy    uint32
	minMidiGranularity  uint32
	nonBlockThreadID    int32
}

// cString returns the NUL terminated prefix of buf.
func cString(buf []byte) string {
	for i, b := range buf {
		if b == 0 {
			return string(buf[:i])
		}
	}
	return string(buf)
}

func fmodBool(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
