package audio

import (
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"
	"github.com/pkg/errors"
)

const sampleRate = beep.SampleRate(44100)

// Sample is a fully decoded keysound.
type Sample struct {
	buffer *beep.Buffer
}

// Engine owns the speaker and tracks how many keysounds are still
// sounding, which the session uses to detect the end of the chart.
type Engine struct {
	format beep.Format
	active int32
}

func NewEngine() (*Engine, error) {
	format := beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/20)); err != nil {
		return nil, errors.Wrap(err, "unable to open speaker")
	}
	return &Engine{format: format}, nil
}

// Resolve turns a chart-relative sample reference into an existing file
// path. Charts reference samples with Windows separators and whatever
// extension the author had; the first of .ogg then .wav that exists
// next to the chart wins. Returns "" when neither does.
func Resolve(base, name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = strings.TrimSuffix(name, path.Ext(name))
	for _, ext := range []string{".ogg", ".wav"} {
		p := filepath.Join(base, name+ext)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Load decodes an entire keysound into memory so playback never seeks.
func (e *Engine) Load(file string) (*Sample, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}

	var streamer beep.StreamSeekCloser
	var format beep.Format
	switch path.Ext(file) {
	case ".ogg":
		streamer, format, err = vorbis.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	default:
		f.Close()
		return nil, errors.Errorf("unsupported sample format %q", path.Ext(file))
	}
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "unable to decode %v", file)
	}
	defer streamer.Close()

	buffer := beep.NewBuffer(e.format)
	if format.SampleRate == e.format.SampleRate {
		buffer.Append(streamer)
	} else {
		buffer.Append(beep.Resample(4, format.SampleRate, e.format.SampleRate, streamer))
	}
	return &Sample{buffer: buffer}, nil
}

// Play starts a sample and forgets about it. Unbound samples are nil
// and silently unplayable.
func (e *Engine) Play(s *Sample) {
	if s == nil {
		return
	}
	atomic.AddInt32(&e.active, 1)
	speaker.Play(beep.Seq(
		s.buffer.Streamer(0, s.buffer.Len()),
		beep.Callback(func() { atomic.AddInt32(&e.active, -1) }),
	))
}

// Playing reports whether any sample started by Play is still sounding.
func (e *Engine) Playing() bool {
	return atomic.LoadInt32(&e.active) > 0
}
