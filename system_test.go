// SPDX-License-Identifier: EPL-2.0

package fmodgo

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/fmodgo/engine"
	"github.com/ik5/fmodgo/engine/soft"
	"github.com/ik5/fmodgo/formats/wav"
	"github.com/ik5/fmodgo/handle"
)

// wavFixture writes a stereo 16-bit 1 kHz file of payload bytes and returns
// its path and contents.
func wavFixture(t *testing.T, payload []byte) (string, []byte) {
	t.Helper()

	buf := new(bytes.Buffer)
	h := wav.Header{Channels: 2, SampleRate: 1000, BitsPerSample: 16, DataLen: len(payload)}
	if err := wav.Write(buf, h, payload); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "fixture.wav")
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}
	return path, buf.Bytes()
}

func ramp(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i)
	}
	return b
}

func openSoft(t *testing.T) *System {
	t.Helper()

	sys, err := Open(soft.New())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = sys.Close() })
	return sys
}

func softSound(t *testing.T, sys *System) (*Sound, []byte) {
	t.Helper()

	path, file := wavFixture(t, ramp(400))
	s, err := sys.CreateSound(path, engine.ModeDefault)
	if err != nil {
		t.Fatalf("CreateSound() error = %v", err)
	}
	return s, file
}

func TestSound_RoundTrip(t *testing.T) {
	t.Parallel()

	sys := openSoft(t)
	s, file := softSound(t, sys)

	format, err := s.Format()
	if err != nil || format != (engine.Format{Channels: 2, Bits: 16}) {
		t.Errorf("Format() = %+v, %v", format, err)
	}
	if n, err := s.Length(engine.TimeUnitPCM); err != nil || n != 100 {
		t.Errorf("Length(PCM) = %d, %v, want 100", n, err)
	}

	out := filepath.Join(t.TempDir(), "out.wav")
	if err := s.SaveToWAV(out); err != nil {
		t.Fatalf("SaveToWAV() error = %v", err)
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, file) {
		t.Error("exported file differs from the loaded one")
	}

	mem, err := sys.CreateSoundFromMemory(file, engine.ModeDefault)
	if err != nil {
		t.Fatalf("CreateSoundFromMemory() error = %v", err)
	}
	buf := new(bytes.Buffer)
	if err := mem.ExportWAV(buf); err != nil {
		t.Fatalf("ExportWAV() error = %v", err)
	}
	if !bytes.Equal(buf.Bytes(), file) {
		t.Error("memory sound exported differently")
	}
}

func TestSound_ZeroLengthExport(t *testing.T) {
	t.Parallel()

	buf := new(bytes.Buffer)
	if err := wav.Write(buf, wav.Header{Channels: 1, SampleRate: 8000, BitsPerSample: 16}); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "empty.wav")
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}

	sys := openSoft(t)
	s, err := sys.CreateSound(path, engine.ModeDefault)
	if err != nil {
		t.Fatalf("CreateSound() error = %v", err)
	}
	if n, err := s.Length(engine.TimeUnitPCMBytes); err != nil || n != 0 {
		t.Fatalf("Length() = %d, %v, want 0", n, err)
	}

	out := new(bytes.Buffer)
	if err := s.ExportWAV(out); err != nil {
		t.Fatalf("ExportWAV() error = %v", err)
	}
	if out.Len() != wav.HeaderSize || !bytes.Equal(out.Bytes(), buf.Bytes()) {
		t.Errorf("ExportWAV() = % x, want % x", out.Bytes(), buf.Bytes())
	}
	if s.Handle().Locked() {
		t.Error("sound left locked")
	}
}

func TestSound_Properties(t *testing.T) {
	t.Parallel()

	sys := openSoft(t)
	s, _ := softSound(t, sys)

	if n, err := s.LoopCount(); err != nil || n != -1 {
		t.Errorf("LoopCount() = %d, %v, want -1", n, err)
	}
	if err := s.SetLoopCount(3); err != nil {
		t.Fatalf("SetLoopCount() error = %v", err)
	}
	if n, _ := s.LoopCount(); n != 3 {
		t.Errorf("LoopCount() = %d, want 3", n)
	}

	d, err := s.Defaults()
	if err != nil || d.Frequency != 1000 {
		t.Fatalf("Defaults() = %+v, %v", d, err)
	}
	d.Volume = 0.5
	if err := s.SetDefaults(d); err != nil {
		t.Fatalf("SetDefaults() error = %v", err)
	}
	ch, err := s.Play()
	if err != nil {
		t.Fatalf("Play() error = %v", err)
	}
	if v, _ := ch.Volume(); v != 0.5 {
		t.Errorf("channel volume = %v, want the sound default 0.5", v)
	}

	path, _ := wavFixture(t, ramp(8))
	stream, err := sys.CreateStream(path, engine.ModeLoopOff)
	if err != nil {
		t.Fatalf("CreateStream() error = %v", err)
	}
	if mode, err := stream.Mode(); err != nil || mode != engine.ModeLoopOff|engine.ModeCreateStream {
		t.Errorf("Mode() = %#x, %v", mode, err)
	}
	if name, err := stream.Name(); err != nil || name != path {
		t.Errorf("Name() = %q, %v, want %q", name, err, path)
	}
}

func TestSound_CreateErrors(t *testing.T) {
	t.Parallel()

	sys := openSoft(t)

	_, err := sys.CreateSound(filepath.Join(t.TempDir(), "missing.wav"), engine.ModeDefault)
	if code, ok := engine.CodeOf(err); !ok || code != engine.ResultFileNotFound {
		t.Errorf("CreateSound(missing) error = %v, want %v", err, engine.ResultFileNotFound)
	}

	_, err = sys.CreateSoundFromMemory([]byte("not audio at all"), engine.ModeDefault)
	if code, ok := engine.CodeOf(err); !ok || code != engine.ResultFormat {
		t.Errorf("CreateSoundFromMemory(garbage) error = %v, want %v", err, engine.ResultFormat)
	}
}

func TestChannel_Playback(t *testing.T) {
	t.Parallel()

	sys := openSoft(t)
	s, _ := softSound(t, sys)

	ch, err := s.PlayPaused()
	if err != nil {
		t.Fatalf("PlayPaused() error = %v", err)
	}
	if ch.Handle().Ownership() != handle.Borrowed {
		t.Error("channel handle is owning")
	}
	if paused, _ := ch.Paused(); !paused {
		t.Error("PlayPaused() channel not paused")
	}
	if err := ch.SetPaused(false); err != nil {
		t.Fatalf("SetPaused() error = %v", err)
	}
	if hz, _ := ch.Frequency(); hz != 1000 {
		t.Errorf("Frequency() = %v, want 1000", hz)
	}

	setters := []struct {
		name string
		set  func() error
		get  func() (float32, error)
		want float32
	}{
		{"volume", func() error { return ch.SetVolume(0.25) }, ch.Volume, 0.25},
		{"volume clamped", func() error { return ch.SetVolume(2) }, ch.Volume, 1},
		{"pan", func() error { return ch.SetPan(-0.5) }, ch.Pan, -0.5},
		{"frequency", func() error { return ch.SetFrequency(2000) }, ch.Frequency, 2000},
	}
	for _, tt := range setters {
		if err := tt.set(); err != nil {
			t.Fatalf("%s: set error = %v", tt.name, err)
		}
		if got, err := tt.get(); err != nil || got != tt.want {
			t.Errorf("%s = %v, %v, want %v", tt.name, got, err, tt.want)
		}
	}

	if err := ch.SetMute(true); err != nil {
		t.Fatal(err)
	}
	if mute, _ := ch.Mute(); !mute {
		t.Error("Mute() = false after SetMute(true)")
	}
	if err := ch.SetPriority(10); err != nil {
		t.Fatal(err)
	}
	if p, _ := ch.Priority(); p != 10 {
		t.Errorf("Priority() = %d, want 10", p)
	}
	if code, _ := engine.CodeOf(ch.SetPriority(300)); code != engine.ResultInvalidParam {
		t.Errorf("SetPriority(300) code = %v, want %v", code, engine.ResultInvalidParam)
	}

	if err := ch.SetPosition(50, engine.TimeUnitPCM); err != nil {
		t.Fatalf("SetPosition() error = %v", err)
	}
	positions := map[engine.TimeUnit]uint32{
		engine.TimeUnitPCM:      50,
		engine.TimeUnitPCMBytes: 200,
		engine.TimeUnitMS:       50,
	}
	for unit, want := range positions {
		if got, err := ch.Position(unit); err != nil || got != want {
			t.Errorf("Position(%d) = %d, %v, want %d", unit, got, err, want)
		}
	}
	if code, _ := engine.CodeOf(ch.SetPosition(101, engine.TimeUnitPCM)); code != engine.ResultInvalidPosition {
		t.Errorf("SetPosition(past end) code = %v, want %v", code, engine.ResultInvalidPosition)
	}
	if _, err := ch.Position(engine.TimeUnit(0x40)); err == nil {
		t.Error("Position(unknown unit) error = nil")
	}

	current, err := ch.CurrentSound()
	if err != nil || current.Handle().ID() != s.Handle().ID() {
		t.Errorf("CurrentSound() = %v, %v", current, err)
	}
	if err := current.Release(); err != nil || !s.Live() {
		t.Errorf("releasing a borrowed sound: err %v, live %v", err, s.Live())
	}

	if playing, _ := ch.IsPlaying(); !playing {
		t.Error("IsPlaying() = false before Stop")
	}
	if err := ch.Stop(); err != nil {
		t.Fatal(err)
	}
	if playing, _ := ch.IsPlaying(); playing {
		t.Error("IsPlaying() = true after Stop")
	}
}

func TestChannel_3DAttributes(t *testing.T) {
	t.Parallel()

	sys := openSoft(t)
	s, _ := softSound(t, sys)
	ch, err := s.Play()
	if err != nil {
		t.Fatal(err)
	}

	if err := ch.Set3DAttributes(&Vector{1, 2, 3}, nil); err != nil {
		t.Fatalf("Set3DAttributes() error = %v", err)
	}
	if err := ch.Set3DAttributes(nil, &Vector{0, 0, -4}); err != nil {
		t.Fatalf("Set3DAttributes() error = %v", err)
	}

	pos, vel, err := ch.Get3DAttributes()
	if err != nil {
		t.Fatalf("Get3DAttributes() error = %v", err)
	}
	if pos != (Vector{1, 2, 3}) || vel != (Vector{0, 0, -4}) {
		t.Errorf("Get3DAttributes() = %+v, %+v", pos, vel)
	}
}

func TestGroups(t *testing.T) {
	t.Parallel()

	sys := openSoft(t)
	s, _ := softSound(t, sys)

	master, err := sys.MasterSoundGroup()
	if err != nil {
		t.Fatalf("MasterSoundGroup() error = %v", err)
	}
	if n, _ := master.NumSounds(); n != 1 {
		t.Errorf("master NumSounds() = %d, want 1", n)
	}

	sfx, err := sys.CreateSoundGroup("sfx")
	if err != nil {
		t.Fatalf("CreateSoundGroup() error = %v", err)
	}
	if err := s.SetSoundGroup(sfx); err != nil {
		t.Fatalf("SetSoundGroup() error = %v", err)
	}
	if n, _ := sfx.NumSounds(); n != 1 {
		t.Errorf("sfx NumSounds() = %d, want 1", n)
	}
	if n, _ := master.NumSounds(); n != 0 {
		t.Errorf("master NumSounds() = %d, want 0", n)
	}
	if g, err := s.SoundGroup(); err != nil || g.Handle().ID() != sfx.Handle().ID() {
		t.Errorf("SoundGroup() = %v, %v", g, err)
	}
	if n, _ := sfx.MaxAudible(); n != -1 {
		t.Errorf("MaxAudible() = %d, want -1", n)
	}
	if err := sfx.SetMaxAudible(2); err != nil {
		t.Fatal(err)
	}
	if name, _ := sfx.Name(); name != "sfx" {
		t.Errorf("Name() = %q, want sfx", name)
	}

	music, err := sys.CreateChannelGroup("music")
	if err != nil {
		t.Fatalf("CreateChannelGroup() error = %v", err)
	}
	inGroup, _ := s.Play()
	outside, _ := s.Play()
	if err := inGroup.SetChannelGroup(music); err != nil {
		t.Fatalf("SetChannelGroup() error = %v", err)
	}
	if g, err := inGroup.ChannelGroup(); err != nil || g.Handle().ID() != music.Handle().ID() {
		t.Errorf("ChannelGroup() = %v, %v", g, err)
	}
	if err := music.SetVolume(0.5); err != nil {
		t.Fatal(err)
	}
	if v, _ := music.Volume(); v != 0.5 {
		t.Errorf("group Volume() = %v, want 0.5", v)
	}

	if err := music.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if playing, _ := inGroup.IsPlaying(); playing {
		t.Error("channel in stopped group still playing")
	}
	if playing, _ := outside.IsPlaying(); !playing {
		t.Error("channel outside stopped group stopped")
	}

	if err := music.Release(); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
	if err := music.SetMute(true); !errors.Is(err, handle.ErrUseAfterRelease) {
		t.Errorf("SetMute() after release error = %v, want ErrUseAfterRelease", err)
	}
}

func TestMasterChannelGroup_Borrowed(t *testing.T) {
	t.Parallel()

	sys := openSoft(t)

	master, err := sys.MasterChannelGroup()
	if err != nil {
		t.Fatalf("MasterChannelGroup() error = %v", err)
	}
	if err := master.Release(); err != nil {
		t.Errorf("Release() on borrowed group error = %v", err)
	}
	if err := master.SetPaused(true); err != nil {
		t.Errorf("SetPaused() after borrowed release error = %v", err)
	}
	if paused, _ := master.Paused(); !paused {
		t.Error("Paused() = false")
	}
}

func TestDSP(t *testing.T) {
	t.Parallel()

	sys := openSoft(t)
	s, _ := softSound(t, sys)

	dsp, err := sys.CreateDSP("echo")
	if err != nil {
		t.Fatalf("CreateDSP() error = %v", err)
	}
	if name, _ := dsp.Name(); name != "echo" {
		t.Errorf("Name() = %q, want echo", name)
	}
	if active, _ := dsp.Active(); !active {
		t.Error("Active() = false for a new DSP")
	}
	if err := dsp.SetBypass(true); err != nil {
		t.Fatal(err)
	}
	if bypass, _ := dsp.Bypass(); !bypass {
		t.Error("Bypass() = false after SetBypass(true)")
	}

	conn, err := sys.AddDSP(dsp)
	if err != nil {
		t.Fatalf("AddDSP() error = %v", err)
	}
	if mix, _ := conn.Mix(); mix != 1 {
		t.Errorf("Mix() = %v, want 1", mix)
	}
	if err := conn.SetMix(0.5); err != nil {
		t.Fatal(err)
	}
	if in, err := conn.Input(); err != nil || in.Handle().ID() != dsp.Handle().ID() {
		t.Errorf("Input() = %v, %v", in, err)
	}

	ch, err := s.Play()
	if err != nil {
		t.Fatal(err)
	}
	chConn, err := ch.AddDSP(dsp)
	if err != nil {
		t.Fatalf("Channel.AddDSP() error = %v", err)
	}
	head, err := ch.DSPHead()
	if err != nil {
		t.Fatalf("DSPHead() error = %v", err)
	}
	if out, err := chConn.Output(); err != nil || out.Handle().ID() != head.Handle().ID() {
		t.Errorf("Output() = %v, %v, want the channel head", out, err)
	}

	if err := dsp.Release(); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
	if _, err := sys.AddDSP(dsp); !errors.Is(err, handle.ErrUseAfterRelease) {
		t.Errorf("AddDSP(released) error = %v, want ErrUseAfterRelease", err)
	}
}

func TestSystem_Close(t *testing.T) {
	t.Parallel()

	sys, err := Open(soft.New())
	if err != nil {
		t.Fatal(err)
	}
	s, _ := softSound(t, sys)
	if _, err := sys.CreateDSP("lowpass"); err != nil {
		t.Fatal(err)
	}
	ch, err := s.Play()
	if err != nil {
		t.Fatal(err)
	}
	master, err := sys.MasterChannelGroup()
	if err != nil {
		t.Fatal(err)
	}
	if err := sys.Update(); err != nil {
		t.Errorf("Update() error = %v", err)
	}
	if got := sys.Registry().Live(); got != 3 {
		t.Errorf("Live() = %d, want 3", got)
	}

	if err := sys.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if got := sys.Registry().Live(); got != 0 {
		t.Errorf("Live() after Close = %d, want 0", got)
	}
	if s.Live() || sys.Live() {
		t.Error("objects still live after Close")
	}

	if _, err := sys.CreateSound("x.wav", engine.ModeDefault); !errors.Is(err, handle.ErrUseAfterRelease) {
		t.Errorf("CreateSound() after Close error = %v, want ErrUseAfterRelease", err)
	}
	if _, err := s.Play(); !errors.Is(err, handle.ErrUseAfterRelease) {
		t.Errorf("Play() after Close error = %v, want ErrUseAfterRelease", err)
	}
	if err := sys.Update(); !errors.Is(err, handle.ErrUseAfterRelease) {
		t.Errorf("Update() after Close error = %v, want ErrUseAfterRelease", err)
	}
	if ch.Live() || master.Live() {
		t.Errorf("borrowed handles live after Close: channel %v, master group %v", ch.Live(), master.Live())
	}
	if _, err := ch.Position(engine.TimeUnit(0x40)); !errors.Is(err, handle.ErrUseAfterRelease) {
		t.Errorf("Position(unknown unit) after Close error = %v, want ErrUseAfterRelease", err)
	}
	if err := ch.Stop(); !errors.Is(err, handle.ErrUseAfterRelease) {
		t.Errorf("Stop() after Close error = %v, want ErrUseAfterRelease", err)
	}
	if err := sys.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestUserData(t *testing.T) {
	t.Parallel()

	sys := openSoft(t)
	s, _ := softSound(t, sys)

	type track struct{ title string }

	if err := s.SetUserData(track{"intro"}); err != nil {
		t.Fatalf("SetUserData() error = %v", err)
	}
	v, ok, err := s.UserData()
	if err != nil || !ok || v.(track).title != "intro" {
		t.Errorf("UserData() = %v, %v, %v", v, ok, err)
	}
	got, ok, err := handle.UserDataOf[track](s.Handle())
	if err != nil || !ok || got.title != "intro" {
		t.Errorf("UserDataOf() = %v, %v, %v", got, ok, err)
	}

	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if _, _, err := s.UserData(); !errors.Is(err, handle.ErrUseAfterRelease) {
		t.Errorf("UserData() after release error = %v, want ErrUseAfterRelease", err)
	}
}

func TestSound_LockUnlock(t *testing.T) {
	t.Parallel()

	sys := openSoft(t)
	s, _ := softSound(t, sys)

	region, err := s.Lock(396, 8)
	if err != nil {
		t.Fatalf("Lock() error = %v", err)
	}
	var got bytes.Buffer
	if _, err := region.WriteTo(&got); err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}
	if want := []byte{0x8c, 0x8d, 0x8e, 0x8f, 0, 1, 2, 3}; !bytes.Equal(got.Bytes(), want) {
		t.Errorf("locked bytes = % x, want % x", got.Bytes(), want)
	}
	if _, err := s.Lock(0, 4); !errors.Is(err, handle.ErrLockState) {
		t.Errorf("second Lock() error = %v, want ErrLockState", err)
	}
	if err := s.Release(); !errors.Is(err, handle.ErrLockState) {
		t.Errorf("Release() while locked error = %v, want ErrLockState", err)
	}
	if err := s.Unlock(region); err != nil {
		t.Fatalf("Unlock() error = %v", err)
	}
	if err := s.Release(); err != nil {
		t.Errorf("Release() error = %v", err)
	}
}
