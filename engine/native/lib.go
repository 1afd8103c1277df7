// SPDX-License-Identifier: EPL-2.0

//go:build darwin || linux

package native

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/ebitengine/purego"
)

var (
	libOnce    sync.Once
	libHandle  uintptr
	libInitErr error
)

// libPaths lists the locations tried in order. FMODEX_LIB_PATH comes first.
func libPaths() []string {
	var paths []string
	if p := os.Getenv("FMODEX_LIB_PATH"); p != "" {
		paths = append(paths, p)
	}

	switch runtime.GOOS {
	case "darwin":
		paths = append(paths, "libfmodex.dylib", "/usr/local/lib/libfmodex.dylib", "/opt/homebrew/lib/libfmodex.dylib")
	default:
		paths = append(paths, "libfmodex64.so", "libfmodex.so", "/usr/local/lib/libfmodex64.so", "/usr/local/lib/libfmodex.so")
	}
	return paths
}

// load opens the library and registers every entry point, once.
func load() error {
	libOnce.Do(func() {
		libInitErr = loadLib()
	})
	return libInitErr
}

func loadLib() error {
	var lastErr error
	for _, path := range libPaths() {
		h, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
		if err != nil {
			lastErr = err
			continue
		}
		if err := checkSymbols(h); err != nil {
			_ = purego.Dlclose(h)
			lastErr = err
			continue
		}
		libHandle = h
		registerSymbols(h)
		return nil
	}

	if lastErr != nil {
		return fmt.Errorf("%w: %w", ErrLibraryNotFound, lastErr)
	}
	return ErrLibraryNotFound
}

// checkSymbols makes sure h is an FMOD Ex build before RegisterLibFunc,
// which panics on a missing symbol.
func checkSymbols(h uintptr) error {
	for _, name := range []string{"FMOD_System_Create", "FMOD_Sound_Lock", "FMOD_DSPConnection_GetMix"} {
		if _, err := purego.Dlsym(h, name); err != nil {
			return errors.Join(ErrLibraryNotFound, fmt.Errorf("symbol %s: %w", name, err))
		}
	}
	return nil
}

func registerSymbols(h uintptr) {
	purego.RegisterLibFunc(&fmodSystemCreate, h, "FMOD_System_Create")
	purego.RegisterLibFunc(&fmodSystemInit, h, "FMOD_System_Init")
	purego.RegisterLibFunc(&fmodSystemRelease, h, "FMOD_System_Release")
	purego.RegisterLibFunc(&fmodSystemUpdate, h, "FMOD_System_Update")
	purego.RegisterLibFunc(&fmodSystemCreateSound, h, "FMOD_System_CreateSound")
	purego.RegisterLibFunc(&fmodSystemCreateSoundMemory, h, "FMOD_System_CreateSound")
	purego.RegisterLibFunc(&fmodSystemCreateDSPByType, h, "FMOD_System_CreateDSPByType")
	purego.RegisterLibFunc(&fmodSystemCreateChannelGroup, h, "FMOD_System_CreateChannelGroup")
	purego.RegisterLibFunc(&fmodSystemCreateSoundGroup, h, "FMOD_System_CreateSoundGroup")
	purego.RegisterLibFunc(&fmodSystemGetMasterChannel, h, "FMOD_System_GetMasterChannelGroup")
	purego.RegisterLibFunc(&fmodSystemGetMasterSound, h, "FMOD_System_GetMasterSoundGroup")
	purego.RegisterLibFunc(&fmodSystemPlaySound, h, "FMOD_System_PlaySound")
	purego.RegisterLibFunc(&fmodSystemAddDSP, h, "FMOD_System_AddDSP")

	purego.RegisterLibFunc(&fmodSoundRelease, h, "FMOD_Sound_Release")
	purego.RegisterLibFunc(&fmodSoundGetSystemObject, h, "FMOD_Sound_GetSystemObject")
	purego.RegisterLibFunc(&fmodSoundGetFormat, h, "FMOD_Sound_GetFormat")
	purego.RegisterLibFunc(&fmodSoundGetDefaults, h, "FMOD_Sound_GetDefaults")
	purego.RegisterLibFunc(&fmodSoundSetDefaults, h, "FMOD_Sound_SetDefaults")
	purego.RegisterLibFunc(&fmodSoundGetLength, h, "FMOD_Sound_GetLength")
	purego.RegisterLibFunc(&fmodSoundGetName, h, "FMOD_Sound_GetName")
	purego.RegisterLibFunc(&fmodSoundLock, h, "FMOD_Sound_Lock")
	purego.RegisterLibFunc(&fmodSoundUnlock, h, "FMOD_Sound_Unlock")
	purego.RegisterLibFunc(&fmodSoundGetSoundGroup, h, "FMOD_Sound_GetSoundGroup")
	purego.RegisterLibFunc(&fmodSoundSetSoundGroup, h, "FMOD_Sound_SetSoundGroup")
	purego.RegisterLibFunc(&fmodSoundGetMode, h, "FMOD_Sound_GetMode")
	purego.RegisterLibFunc(&fmodSoundSetMode, h, "FMOD_Sound_SetMode")
	purego.RegisterLibFunc(&fmodSoundGetLoopCount, h, "FMOD_Sound_GetLoopCount")
	purego.RegisterLibFunc(&fmodSoundSetLoopCount, h, "FMOD_Sound_SetLoopCount")

	purego.RegisterLibFunc(&fmodChannelGetSystemObject, h, "FMOD_Channel_GetSystemObject")
	purego.RegisterLibFunc(&fmodChannelStop, h, "FMOD_Channel_Stop")
	purego.RegisterLibFunc(&fmodChannelIsPlaying, h, "FMOD_Channel_IsPlaying")
	purego.RegisterLibFunc(&fmodChannelGetVolume, h, "FMOD_Channel_GetVolume")
	purego.RegisterLibFunc(&fmodChannelSetVolume, h, "FMOD_Channel_SetVolume")
	purego.RegisterLibFunc(&fmodChannelGetFrequency, h, "FMOD_Channel_GetFrequency")
	purego.RegisterLibFunc(&fmodChannelSetFrequency, h, "FMOD_Channel_SetFrequency")
	purego.RegisterLibFunc(&fmodChannelGetPan, h, "FMOD_Channel_GetPan")
	purego.RegisterLibFunc(&fmodChannelSetPan, h, "FMOD_Channel_SetPan")
	purego.RegisterLibFunc(&fmodChannelGetMute, h, "FMOD_Channel_GetMute")
	purego.RegisterLibFunc(&fmodChannelSetMute, h, "FMOD_Channel_SetMute")
	purego.RegisterLibFunc(&fmodChannelGetPaused, h, "FMOD_Channel_GetPaused")
	purego.RegisterLibFunc(&fmodChannelSetPaused, h, "FMOD_Channel_SetPaused")
	purego.RegisterLibFunc(&fmodChannelGetPriority, h, "FMOD_Channel_GetPriority")
	purego.RegisterLibFunc(&fmodChannelSetPriority, h, "FMOD_Channel_SetPriority")
	purego.RegisterLibFunc(&fmodChannelGetLoopCount, h, "FMOD_Channel_GetLoopCount")
	purego.RegisterLibFunc(&fmodChannelSetLoopCount, h, "FMOD_Channel_SetLoopCount")
	purego.RegisterLibFunc(&fmodChannelGetPosition, h, "FMOD_Channel_GetPosition")
	purego.RegisterLibFunc(&fmodChannelSetPosition, h, "FMOD_Channel_SetPosition")
	purego.RegisterLibFunc(&fmodChannelGetCurrentSound, h, "FMOD_Channel_GetCurrentSound")
	purego.RegisterLibFunc(&fmodChannelGetChannelGroup, h, "FMOD_Channel_GetChannelGroup")
	purego.RegisterLibFunc(&fmodChannelSetChannelGroup, h, "FMOD_Channel_SetChannelGroup")
	purego.RegisterLibFunc(&fmodChannelGetDSPHead, h, "FMOD_Channel_GetDSPHead")
	purego.RegisterLibFunc(&fmodChannelAddDSP, h, "FMOD_Channel_AddDSP")
	purego.RegisterLibFunc(&fmodChannelGet3DAttributes, h, "FMOD_Channel_Get3DAttributes")
	purego.RegisterLibFunc(&fmodChannelSet3DAttributes, h, "FMOD_Channel_Set3DAttributes")

	purego.RegisterLibFunc(&fmodChannelGroupRelease, h, "FMOD_ChannelGroup_Release")
	purego.RegisterLibFunc(&fmodChannelGroupGetSystemObject, h, "FMOD_ChannelGroup_GetSystemObject")
	purego.RegisterLibFunc(&fmodChannelGroupGetVolume, h, "FMOD_ChannelGroup_GetVolume")
	purego.RegisterLibFunc(&fmodChannelGroupSetVolume, h, "FMOD_ChannelGroup_SetVolume")
	purego.RegisterLibFunc(&fmodChannelGroupGetPaused, h, "FMOD_ChannelGroup_GetPaused")
	purego.RegisterLibFunc(&fmodChannelGroupSetPaused, h, "FMOD_ChannelGroup_SetPaused")
	purego.RegisterLibFunc(&fmodChannelGroupGetMute, h, "FMOD_ChannelGroup_GetMute")
	purego.RegisterLibFunc(&fmodChannelGroupSetMute, h, "FMOD_ChannelGroup_SetMute")
	purego.RegisterLibFunc(&fmodChannelGroupStop, h, "FMOD_ChannelGroup_Stop")
	purego.RegisterLibFunc(&fmodChannelGroupGetName, h, "FMOD_ChannelGroup_GetName")
	purego.RegisterLibFunc(&fmodChannelGroupGetParentGroup, h, "FMOD_ChannelGroup_GetParentGroup")
	purego.RegisterLibFunc(&fmodChannelGroupGetDSPHead, h, "FMOD_ChannelGroup_GetDSPHead")
	purego.RegisterLibFunc(&fmodChannelGroupAddDSP, h, "FMOD_ChannelGroup_AddDSP")

	purego.RegisterLibFunc(&fmodSoundGroupRelease, h, "FMOD_SoundGroup_Release")
	purego.RegisterLibFunc(&fmodSoundGroupGetSystemObject, h, "FMOD_SoundGroup_GetSystemObject")
	purego.RegisterLibFunc(&fmodSoundGroupGetMaxAudible, h, "FMOD_SoundGroup_GetMaxAudible")
	purego.RegisterLibFunc(&fmodSoundGroupSetMaxAudible, h, "FMOD_SoundGroup_SetMaxAudible")
	purego.RegisterLibFunc(&fmodSoundGroupGetVolume, h, "FMOD_SoundGroup_GetVolume")
	purego.RegisterLibFunc(&fmodSoundGroupSetVolume, h, "FMOD_SoundGroup_SetVolume")
	purego.RegisterLibFunc(&fmodSoundGroupGetNumSounds, h, "FMOD_SoundGroup_GetNumSounds")
	purego.RegisterLibFunc(&fmodSoundGroupGetName, h, "FMOD_SoundGroup_GetName")

	purego.RegisterLibFunc(&fmodDSPRelease, h, "FMOD_DSP_Release")
	purego.RegisterLibFunc(&fmodDSPGetSystemObject, h, "FMOD_DSP_GetSystemObject")
	purego.RegisterLibFunc(&fmodDSPGetBypass, h, "FMOD_DSP_GetBypass")
	purego.RegisterLibFunc(&fmodDSPSetBypass, h, "FMOD_DSP_SetBypass")
	purego.RegisterLibFunc(&fmodDSPGetActive, h, "FMOD_DSP_GetActive")
	purego.RegisterLibFunc(&fmodDSPSetActive, h, "FMOD_DSP_SetActive")
	purego.RegisterLibFunc(&fmodDSPGetInfo, h, "FMOD_DSP_GetInfo")

	purego.RegisterLibFunc(&fmodDSPConnectionGetMix, h, "FMOD_DSPConnection_GetMix")
	purego.RegisterLibFunc(&fmodDSPConnectionSetMix, h, "FMOD_DSPConnection_SetMix")
	purego.RegisterLibFunc(&fmodDSPConnectionGetInput, h, "FMOD_DSPConnection_GetInput")
	purego.RegisterLibFunc(&fmodDSPConnectionGetOutput, h, "FMOD_DSPConnection_GetOutput")
}
