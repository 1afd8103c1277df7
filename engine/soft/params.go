// SPDX-License-Identifier: EPL-2.0

package soft

import "github.com/ik5/fmodgo/engine"

func groupParams() map[engine.Param]float64 {
	return map[engine.Param]float64{
		engine.ParamVolume: 1,
		engine.ParamPaused: 0,
		engine.ParamMute:   0,
	}
}

func soundGroupParams() map[engine.Param]float64 {
	return map[engine.Param]float64{
		engine.ParamMaxAudible: -1,
		engine.ParamVolume:     1,
	}
}

func dspParams() map[engine.Param]float64 {
	return map[engine.Param]float64{
		engine.ParamBypass: 0,
		engine.ParamActive: 1,
	}
}

func boolParam(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func clamp[T float32 | float64](v, lo, hi T) T {
	return max(lo, min(v, hi))
}

func (e *Engine) Get(id engine.ID, p engine.Param) (float64, engine.Result) {
	e.mu.Lock()
	defer e.mu.Unlock()

	obj, res := e.lookup(id)
	if !res.OK() {
		return 0, res
	}

	switch {
	case obj.kind == engine.KindSoundGroup && p == engine.ParamNumSounds:
		return float64(e.countSounds(id)), engine.ResultOK
	case obj.kind == engine.KindChannel && (p == engine.ParamPositionMS || p == engine.ParamPositionPCMBytes):
		return fromFrames(obj, p), engine.ResultOK
	}

	v, ok := obj.params[p]
	if !ok {
		return 0, engine.ResultInvalidParam
	}
	return v, engine.ResultOK
}

func (e *Engine) Set(id engine.ID, p engine.Param, v float64) engine.Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	obj, res := e.lookup(id)
	if !res.OK() {
		return res
	}

	if obj.kind == engine.KindChannelGroup && p == engine.ParamPlaying {
		if v != 0 {
			return engine.ResultInvalidParam
		}
		e.stopGroup(id)
		return engine.ResultOK
	}

	if obj.kind == engine.KindChannel {
		switch p {
		case engine.ParamPositionMS, engine.ParamPositionPCM, engine.ParamPositionPCMBytes:
			return setPosition(obj, p, v)
		}
	}

	if _, ok := obj.params[p]; !ok {
		return engine.ResultInvalidParam
	}

	switch p {
	case engine.ParamVolume:
		v = clamp(v, 0, 1)
	case engine.ParamPan:
		v = clamp(v, -1, 1)
	case engine.ParamPriority:
		if v < 0 || v > 256 {
			return engine.ResultInvalidParam
		}
	case engine.ParamMute, engine.ParamPaused, engine.ParamPlaying, engine.ParamBypass, engine.ParamActive:
		v = boolParam(v != 0)
	case engine.ParamMaxAudible:
		if v < -1 {
			return engine.ResultInvalidParam
		}
	}

	obj.params[p] = v
	return engine.ResultOK
}

// stopGroup ends every channel in a channel group.
func (e *Engine) stopGroup(group engine.ID) {
	for _, obj := range e.objects {
		if obj.kind == engine.KindChannel && obj.related[engine.RelationChannelGroup] == group {
			obj.params[engine.ParamPlaying] = 0
		}
	}
}

// countSounds returns the number of live sounds in a sound group.
func (e *Engine) countSounds(group engine.ID) int {
	n := 0
	for _, obj := range e.objects {
		if obj.kind == engine.KindSound && obj.related[engine.RelationSoundGroup] == group {
			n++
		}
	}
	return n
}

// fromFrames converts a channel's position to milliseconds or bytes.
func fromFrames(ch *object, p engine.Param) float64 {
	frames := ch.params[engine.ParamPositionPCM]
	if p == engine.ParamPositionPCMBytes {
		return frames * float64(ch.pcm.FrameSize())
	}
	if ch.pcm.SampleRate == 0 {
		return 0
	}
	return float64(int64(frames) * 1000 / int64(ch.pcm.SampleRate))
}

func setPosition(ch *object, p engine.Param, v float64) engine.Result {
	if v < 0 {
		return engine.ResultInvalidPosition
	}

	frames := int64(v)
	switch p {
	case engine.ParamPositionMS:
		frames = frames * int64(ch.pcm.SampleRate) / 1000
	case engine.ParamPositionPCMBytes:
		fs := ch.pcm.FrameSize()
		if fs == 0 {
			return engine.ResultFormat
		}
		frames /= int64(fs)
	}

	if frames > int64(ch.pcm.Frames()) {
		return engine.ResultInvalidPosition
	}
	ch.params[engine.ParamPositionPCM] = float64(frames)
	return engine.ResultOK
}
