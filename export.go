// SPDX-License-Identifier: EPL-2.0

package fmodgo

import (
	"bufio"
	"io"
	"os"

	"github.com/ik5/fmodgo/engine"
	"github.com/ik5/fmodgo/formats/wav"
	"github.com/ik5/fmodgo/handle"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// wavHeader queries the engine for everything the header needs. The
// header is validated before any lock is taken.
func (s *Sound) wavHeader() (wav.Header, error) {
	format, err := s.Format()
	if err != nil {
		return wav.Header{}, err
	}
	defaults, err := s.Defaults()
	if err != nil {
		return wav.Header{}, err
	}
	length, err := s.Length(engine.TimeUnitPCMBytes)
	if err != nil {
		return wav.Header{}, err
	}

	hdr := wav.Header{
		Channels:      format.Channels,
		SampleRate:    int(defaults.Frequency),
		BitsPerSample: format.Bits,
		DataLen:       int(length),
	}
	if err := hdr.Validate(); err != nil {
		return wav.Header{}, err
	}
	return hdr, nil
}

// ExportWAV writes the sound's sample data to w as a PCM WAV file. The
// data is copied exactly as the engine holds it.
func (s *Sound) ExportWAV(w io.Writer) error {
	hdr, err := s.wavHeader()
	if err == nil {
		err = s.writeWAV(w, &hdr, "", nil)
	}
	s.recordExport(hdr.DataLen, "", err)
	return err
}

// SaveToWAV writes the sound to a new file at path. On failure a partial
// file may be left behind.
func (s *Sound) SaveToWAV(path string) (err error) {
	var hdr wav.Header
	defer func() {
		s.recordExport(hdr.DataLen, path, err)
	}()

	hdr, err = s.wavHeader()
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return &IOError{Op: "create", Path: path, Err: err}
	}

	bw := bufio.NewWriter(f)
	err = s.writeWAV(bw, &hdr, path, bw.Flush)
	if cerr := f.Close(); cerr != nil {
		err = multierr.Append(err, &IOError{Op: "close", Path: path, Err: cerr})
	}
	return err
}

// writeWAV locks the whole sound, writes header and data, runs flush and
// unlocks. hdr.DataLen is updated to the number of bytes the lock handed
// out.
func (s *Sound) writeWAV(w io.Writer, hdr *wav.Header, path string, flush func() error) (err error) {
	var region *handle.Region
	if hdr.DataLen > 0 {
		var lerr error
		region, lerr = s.Lock(0, uint32(hdr.DataLen))
		if lerr != nil {
			return lerr
		}
		defer func() {
			uerr := s.Unlock(region)
			switch {
			case uerr == nil:
			case err == nil:
				err = multierr.Combine(ErrExportUnverified, uerr)
			default:
				err = multierr.Append(err, uerr)
			}
		}()

		hdr.DataLen = region.Len()
	}

	if err := wav.WriteHeader(w, *hdr); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	if region != nil {
		if _, err := region.WriteTo(w); err != nil {
			return &IOError{Op: "write", Path: path, Err: err}
		}
	}
	if flush != nil {
		if err := flush(); err != nil {
			return &IOError{Op: "write", Path: path, Err: err}
		}
	}
	return nil
}

func (s *Sound) recordExport(payload int, path string, err error) {
	reg := s.h.Registry()
	reg.Metrics().RecordExport(payload, err)
	if err != nil {
		reg.Logger().Warn("wav export failed", zap.Uint64("sound", uint64(s.h.ID())), zap.String("path", path), zap.Error(err))
		return
	}
	reg.Logger().Debug("wav exported", zap.Uint64("sound", uint64(s.h.ID())), zap.String("path", path), zap.Int("bytes", wav.HeaderSize+payload))
}
