// SPDX-License-Identifier: EPL-2.0

package soft

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/ik5/fmodgo/audio"
	"github.com/ik5/fmodgo/engine"
	"go.uber.org/zap"
)

const defaultPriority = 128

func (e *Engine) Create(kind engine.Kind, args engine.CreateArgs) (engine.ID, engine.Result) {
	if kind == engine.KindSound {
		// Decoding runs outside the table lock.
		pcm, res := e.load(args)
		if !res.OK() {
			return 0, res
		}

		e.mu.Lock()
		defer e.mu.Unlock()
		return e.createSound(args, pcm)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	switch kind {
	case engine.KindSystem:
		return e.createSystem()
	case engine.KindChannel:
		return e.createChannel(args)
	case engine.KindDSP:
		return e.createDSP(args)
	case engine.KindDSPConnection:
		return e.createConnection(args)
	case engine.KindChannelGroup:
		return e.createChannelGroup(args)
	case engine.KindSoundGroup:
		return e.createSoundGroup(args)
	default:
		return 0, engine.ResultInvalidParam
	}
}

// createSystem adds a system with its master channel group and master
// sound group.
func (e *Engine) createSystem() (engine.ID, engine.Result) {
	sys := &object{kind: engine.KindSystem, name: "system"}
	id := e.insert(sys)

	master := &object{kind: engine.KindChannelGroup, name: "master", parent: id, params: groupParams()}
	masterID := e.insert(master)
	master.related[engine.RelationDSPHead] = e.newHead(id)

	sounds := &object{kind: engine.KindSoundGroup, name: "master", parent: id, params: soundGroupParams()}
	soundsID := e.insert(sounds)

	sys.related[engine.RelationMasterChannelGroup] = masterID
	sys.related[engine.RelationSoundGroup] = soundsID

	e.logger.Debug("created system", zap.Uint64("id", uint64(id)))
	return id, engine.ResultOK
}

func (e *Engine) createSound(args engine.CreateArgs, pcm *audio.PCM) (engine.ID, engine.Result) {
	sys, res := e.lookup(args.Parent, engine.KindSystem)
	if !res.OK() {
		return 0, res
	}

	obj := &object{
		kind:   engine.KindSound,
		name:   args.Name,
		parent: args.Parent,
		mode:   args.Mode,
		pcm:    pcm,
		defaults: engine.Defaults{
			Frequency: float32(pcm.SampleRate),
			Volume:    1,
			Priority:  defaultPriority,
		},
		params: map[engine.Param]float64{
			engine.ParamLoopCount: -1,
			engine.ParamMode:      float64(args.Mode),
		},
	}
	id := e.insert(obj)
	obj.related[engine.RelationSoundGroup] = sys.related[engine.RelationSoundGroup]

	e.logger.Debug("created sound",
		zap.Uint64("id", uint64(id)),
		zap.String("name", args.Name),
		zap.Int("rate", pcm.SampleRate),
		zap.Int("channels", pcm.Channels),
		zap.Int("bits", pcm.BitDepth),
		zap.Int("bytes", len(pcm.Data)),
	)
	return id, engine.ResultOK
}

// createChannel starts a sound on the master channel group.
func (e *Engine) createChannel(args engine.CreateArgs) (engine.ID, engine.Result) {
	sound, res := e.lookup(args.Source, engine.KindSound)
	if !res.OK() {
		return 0, res
	}
	sys, res := e.lookup(sound.parent, engine.KindSystem)
	if !res.OK() {
		return 0, res
	}

	d := sound.defaults
	obj := &object{
		kind:   engine.KindChannel,
		name:   sound.name,
		parent: sound.parent,
		pcm:    sound.pcm,
		params: map[engine.Param]float64{
			engine.ParamVolume:      float64(d.Volume),
			engine.ParamFrequency:   float64(d.Frequency),
			engine.ParamPan:         float64(d.Pan),
			engine.ParamPriority:    float64(d.Priority),
			engine.ParamMute:        0,
			engine.ParamPaused:      boolParam(args.Paused),
			engine.ParamPlaying:     1,
			engine.ParamPositionPCM: 0,
			engine.ParamLoopCount:   sound.params[engine.ParamLoopCount],
			engine.Param3DPositionX: 0,
			engine.Param3DPositionY: 0,
			engine.Param3DPositionZ: 0,
			engine.Param3DVelocityX: 0,
			engine.Param3DVelocityY: 0,
			engine.Param3DVelocityZ: 0,
		},
	}
	id := e.insert(obj)
	obj.related[engine.RelationCurrentSound] = args.Source
	obj.related[engine.RelationChannelGroup] = sys.related[engine.RelationMasterChannelGroup]
	obj.related[engine.RelationDSPHead] = e.newHead(sound.parent)

	e.logger.Debug("started channel",
		zap.Uint64("id", uint64(id)),
		zap.Uint64("sound", uint64(args.Source)),
		zap.Bool("paused", args.Paused),
	)
	return id, engine.ResultOK
}

func (e *Engine) createDSP(args engine.CreateArgs) (engine.ID, engine.Result) {
	if _, res := e.lookup(args.Parent, engine.KindSystem); !res.OK() {
		return 0, res
	}

	name := args.Name
	if name == "" {
		name = "dsp"
	}
	return e.insert(&object{kind: engine.KindDSP, name: name, parent: args.Parent, params: dspParams()}), engine.ResultOK
}

// createConnection adds the Source DSP in front of the DSP head of Target,
// a channel or channel group. A zero Target means the master channel group.
func (e *Engine) createConnection(args engine.CreateArgs) (engine.ID, engine.Result) {
	dsp, res := e.lookup(args.Source, engine.KindDSP)
	if !res.OK() {
		return 0, res
	}

	target := args.Target
	if target == 0 {
		sys, res := e.lookup(dsp.parent, engine.KindSystem)
		if !res.OK() {
			return 0, res
		}
		target = sys.related[engine.RelationMasterChannelGroup]
	}

	out, res := e.lookup(target, engine.KindChannel, engine.KindChannelGroup)
	if !res.OK() {
		return 0, res
	}

	obj := &object{
		kind:   engine.KindDSPConnection,
		name:   dsp.name,
		parent: dsp.parent,
		params: map[engine.Param]float64{engine.ParamMix: 1},
	}
	id := e.insert(obj)
	obj.related[engine.RelationInput] = args.Source
	obj.related[engine.RelationOutput] = out.related[engine.RelationDSPHead]
	return id, engine.ResultOK
}

func (e *Engine) createChannelGroup(args engine.CreateArgs) (engine.ID, engine.Result) {
	sys, res := e.lookup(args.Parent, engine.KindSystem)
	if !res.OK() {
		return 0, res
	}

	obj := &object{kind: engine.KindChannelGroup, name: args.Name, parent: args.Parent, params: groupParams()}
	id := e.insert(obj)
	obj.related[engine.RelationChannelGroup] = sys.related[engine.RelationMasterChannelGroup]
	obj.related[engine.RelationDSPHead] = e.newHead(args.Parent)
	return id, engine.ResultOK
}

func (e *Engine) createSoundGroup(args engine.CreateArgs) (engine.ID, engine.Result) {
	if _, res := e.lookup(args.Parent, engine.KindSystem); !res.OK() {
		return 0, res
	}

	return e.insert(&object{kind: engine.KindSoundGroup, name: args.Name, parent: args.Parent, params: soundGroupParams()}), engine.ResultOK
}

// newHead adds the DSP unit that heads a channel or channel group.
func (e *Engine) newHead(system engine.ID) engine.ID {
	return e.insert(&object{kind: engine.KindDSP, name: "head", parent: system, params: dspParams()})
}

// load decodes the file or memory block a sound is created from.
func (e *Engine) load(args engine.CreateArgs) (*audio.PCM, engine.Result) {
	key := audio.Ext(args.Name)

	var r io.Reader
	if args.Mode&engine.ModeOpenMemory != 0 {
		if len(args.Data) == 0 {
			return nil, engine.ResultInvalidParam
		}
		if key == "" {
			key = sniff(args.Data)
		}
		r = bytes.NewReader(args.Data)
	} else {
		f, err := os.Open(args.Name)
		if err != nil {
			e.logger.Warn("could not open sound file", zap.String("name", args.Name), zap.Error(err))
			if errors.Is(err, fs.ErrNotExist) {
				return nil, engine.ResultFileNotFound
			}
			return nil, engine.ResultFileBad
		}
		defer f.Close()
		r = f
	}

	loader, ok := e.loaders.Get(key)
	if !ok {
		e.logger.Warn("no loader for sound", zap.String("name", args.Name), zap.String("format", key))
		return nil, engine.ResultFormat
	}

	pcm, err := loader.Load(r)
	if err != nil {
		e.logger.Warn("could not decode sound", zap.String("name", args.Name), zap.Error(err))
		return nil, engine.ResultFormat
	}
	if pcm.Channels < 1 || pcm.SampleRate < 1 {
		return nil, engine.ResultFormat
	}
	return pcm, engine.ResultOK
}

// sniff guesses the format of an in-memory file from its magic bytes.
func sniff(data []byte) string {
	switch {
	case bytes.HasPrefix(data, []byte("RIFF")):
		return "wav"
	case bytes.HasPrefix(data, []byte("FORM")):
		return "aiff"
	case bytes.HasPrefix(data, []byte("OggS")):
		return "ogg"
	case bytes.HasPrefix(data, []byte("ID3")),
		len(data) > 1 && data[0] == 0xff && data[1]&0xe0 == 0xe0:
		return "mp3"
	}
	return ""
}
