// SPDX-License-Identifier: EPL-2.0

package native

import "github.com/ik5/fmodgo/engine"

type (
	getFloat func(uintptr, *float32) int32
	setFloat func(uintptr, float32) int32
	getInt   func(uintptr, *int32) int32
	setInt   func(uintptr, int32) int32
)

// floatAccessors returns the native getter and setter for a float
// parameter, or nils when kind has no such parameter.
func floatAccessors(kind engine.Kind, p engine.Param) (getFloat, setFloat) {
	switch kind {
	case engine.KindChannel:
		switch p {
		case engine.ParamVolume:
			return fmodChannelGetVolume, fmodChannelSetVolume
		case engine.ParamFrequency:
			return fmodChannelGetFrequency, fmodChannelSetFrequency
		case engine.ParamPan:
			return fmodChannelGetPan, fmodChannelSetPan
		}
	case engine.KindChannelGroup:
		if p == engine.ParamVolume {
			return fmodChannelGroupGetVolume, fmodChannelGroupSetVolume
		}
	case engine.KindSoundGroup:
		if p == engine.ParamVolume {
			return fmodSoundGroupGetVolume, fmodSoundGroupSetVolume
		}
	case engine.KindDSPConnection:
		if p == engine.ParamMix {
			return fmodDSPConnectionGetMix, fmodDSPConnectionSetMix
		}
	}
	return nil, nil
}

// intAccessors covers integer and FMOD_BOOL parameters.
func intAccessors(kind engine.Kind, p engine.Param) (getInt, setInt) {
	switch kind {
	case engine.KindSound:
		if p == engine.ParamLoopCount {
			return fmodSoundGetLoopCount, fmodSoundSetLoopCount
		}
	case engine.KindChannel:
		switch p {
		case engine.ParamMute:
			return fmodChannelGetMute, fmodChannelSetMute
		case engine.ParamPaused:
			return fmodChannelGetPaused, fmodChannelSetPaused
		case engine.ParamPriority:
			return fmodChannelGetPriority, fmodChannelSetPriority
		case engine.ParamLoopCount:
			return fmodChannelGetLoopCount, fmodChannelSetLoopCount
		case engine.ParamPlaying:
			return fmodChannelIsPlaying, func(ch uintptr, v int32) int32 {
				if v != 0 {
					return int32(engine.ResultInvalidParam)
				}
				return fmodChannelStop(ch)
			}
		}
	case engine.KindChannelGroup:
		switch p {
		case engine.ParamMute:
			return fmodChannelGroupGetMute, fmodChannelGroupSetMute
		case engine.ParamPaused:
			return fmodChannelGroupGetPaused, fmodChannelGroupSetPaused
		case engine.ParamPlaying:
			return nil, func(group uintptr, v int32) int32 {
				if v != 0 {
					return int32(engine.ResultInvalidParam)
				}
				return fmodChannelGroupStop(group)
			}
		}
	case engine.KindSoundGroup:
		switch p {
		case engine.ParamMaxAudible:
			return fmodSoundGroupGetMaxAudible, fmodSoundGroupSetMaxAudible
		case engine.ParamNumSounds:
			return fmodSoundGroupGetNumSounds, nil
		}
	case engine.KindDSP:
		switch p {
		case engine.ParamBypass:
			return fmodDSPGetBypass, fmodDSPSetBypass
		case engine.ParamActive:
			return fmodDSPGetActive, fmodDSPSetActive
		}
	}
	return nil, nil
}

var positionUnits = map[engine.Param]engine.TimeUnit{
	engine.ParamPositionMS:       engine.TimeUnitMS,
	engine.ParamPositionPCM:      engine.TimeUnitPCM,
	engine.ParamPositionPCMBytes: engine.TimeUnitPCMBytes,
}

// component maps a 3D parameter to the vector it belongs to and the index
// of its axis.
func component(p engine.Param) (velocity bool, axis int, ok bool) {
	switch p {
	case engine.Param3DPositionX, engine.Param3DPositionY, engine.Param3DPositionZ:
		return false, int(p - engine.Param3DPositionX), true
	case engine.Param3DVelocityX, engine.Param3DVelocityY, engine.Param3DVelocityZ:
		return true, int(p - engine.Param3DVelocityX), true
	}
	return false, 0, false
}

func axisOf(v *vector, axis int) *float32 {
	switch axis {
	case 0:
		return &v.X
	case 1:
		return &v.Y
	}
	return &v.Z
}

func (e *Engine) Get(id engine.ID, p engine.Param) (float64, engine.Result) {
	kind, res := e.kindOf(id)
	if !res.OK() {
		return 0, res
	}
	ptr := uintptr(id)

	if get, _ := floatAccessors(kind, p); get != nil {
		var v float32
		if code := get(ptr, &v); code != 0 {
			return 0, result(code)
		}
		return float64(v), engine.ResultOK
	}
	if get, _ := intAccessors(kind, p); get != nil {
		var v int32
		if code := get(ptr, &v); code != 0 {
			return 0, result(code)
		}
		return float64(v), engine.ResultOK
	}

	switch {
	case kind == engine.KindSound && p == engine.ParamMode:
		var mode uint32
		if code := fmodSoundGetMode(ptr, &mode); code != 0 {
			return 0, result(code)
		}
		return float64(mode), engine.ResultOK
	case kind == engine.KindChannel:
		if unit, ok := positionUnits[p]; ok {
			var pos uint32
			if code := fmodChannelGetPosition(ptr, &pos, uint32(unit)); code != 0 {
				return 0, result(code)
			}
			return float64(pos), engine.ResultOK
		}
		if velocity, axis, ok := component(p); ok {
			var pos, vel vector
			if code := fmodChannelGet3DAttributes(ptr, &pos, &vel); code != 0 {
				return 0, result(code)
			}
			if velocity {
				return float64(*axisOf(&vel, axis)), engine.ResultOK
			}
			return float64(*axisOf(&pos, axis)), engine.ResultOK
		}
	}
	return 0, engine.ResultInvalidParam
}

func (e *Engine) Set(id engine.ID, p engine.Param, v float64) engine.Result {
	kind, res := e.kindOf(id)
	if !res.OK() {
		return res
	}
	ptr := uintptr(id)

	if _, set := floatAccessors(kind, p); set != nil {
		return result(set(ptr, float32(v)))
	}
	if _, set := intAccessors(kind, p); set != nil {
		return result(set(ptr, int32(v)))
	}

	switch {
	case kind == engine.KindSound && p == engine.ParamMode:
		return result(fmodSoundSetMode(ptr, uint32(v)))
	case kind == engine.KindChannel:
		if unit, ok := positionUnits[p]; ok {
			if v < 0 {
				return engine.ResultInvalidPosition
			}
			return result(fmodChannelSetPosition(ptr, uint32(v), uint32(unit)))
		}
		if velocity, axis, ok := component(p); ok {
			var pos, vel vector
			if code := fmodChannelGet3DAttributes(ptr, &pos, &vel); code != 0 {
				return result(code)
			}
			if velocity {
				*axisOf(&vel, axis) = float32(v)
			} else {
				*axisOf(&pos, axis) = float32(v)
			}
			return result(fmodChannelSet3DAttributes(ptr, &pos, &vel))
		}
	}
	return engine.ResultInvalidParam
}
