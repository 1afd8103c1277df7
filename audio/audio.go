// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"sort"
	"strings"
	"sync"
)

// PCM is a fully decoded sound. Data holds interleaved little-endian
// samples in WAV layout: 8-bit samples are unsigned, wider ones signed.
type PCM struct {
	SampleRate int
	Channels   int
	BitDepth   int
	Data       []byte
}

// FrameSize is the number of bytes per sample frame.
func (p *PCM) FrameSize() int { return p.Channels * p.BitDepth / 8 }

// Frames is the number of complete sample frames in Data.
func (p *PCM) Frames() int {
	fs := p.FrameSize()
	if fs == 0 {
		return 0
	}
	return len(p.Data) / fs
}

// DurationMS is the length of the sound in milliseconds, truncated.
func (p *PCM) DurationMS() int {
	if p.SampleRate == 0 {
		return 0
	}
	return int(int64(p.Frames()) * 1000 / int64(p.SampleRate))
}

// Loader decodes a complete file into memory.
type Loader interface {
	Load(r io.Reader) (*PCM, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(r io.Reader) (*PCM, error)

func (f LoaderFunc) Load(r io.Reader) (*PCM, error) { return f(r) }

// Registry of loaders by format key (e.g., "wav", "mp3", "ogg").
type Registry struct {
	loaders map[string]Loader

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		loaders: make(map[string]Loader),
		mtx:     &sync.Mutex{},
	}
}

// Register adds l under format. Keys are case-insensitive.
func (r *Registry) Register(format string, l Loader) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.loaders[strings.ToLower(format)] = l
}

func (r *Registry) Get(format string) (Loader, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	l, ok := r.loaders[strings.ToLower(format)]
	return l, ok
}

// Formats returns the registered keys in sorted order.
func (r *Registry) Formats() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	keys := make([]string, 0, len(r.loaders))
	for k := range r.loaders {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Ext returns the format key for a file name: its extension without the
// dot, lower-cased.
func Ext(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i < 0 || i == len(name)-1 || strings.ContainsAny(name[i:], `/\`) {
		return ""
	}
	return strings.ToLower(name[i+1:])
}
