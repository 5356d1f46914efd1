package transcode

import (
	"fmt"
	"math"
	"os"
	"time"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/RyanBlaney/voicematch/logging"
)

// AudioData represents decoded audio with metadata
type AudioData struct {
	PCM        []float64     `json:"-"` // Raw PCM data, mono
	SampleRate int           `json:"sample_rate"`
	Channels   int           `json:"channels"`
	Duration   time.Duration `json:"duration"`
}

// DecoderConfig holds decoder configuration
type DecoderConfig struct {
	TargetSampleRate int           `json:"target_sample_rate"`
	TargetChannels   int           `json:"target_channels"`
	MaxDuration      time.Duration `json:"max_duration"` // 0 = full file
	BufferSize       int           `json:"buffer_size"`
}

// DefaultDecoderConfig returns the configuration used for voice analysis:
// mono 16 kHz, bounded to the first 10 seconds of the recording.
func DefaultDecoderConfig() *DecoderConfig {
	return &DecoderConfig{
		TargetSampleRate: 16000,
		TargetChannels:   1,
		MaxDuration:      10 * time.Second,
		BufferSize:       8192,
	}
}

// DecodeErrorKind classifies decoder failures so callers can distinguish
// unreadable inputs from malformed audio.
type DecodeErrorKind string

const (
	DecodeErrorOpen   DecodeErrorKind = "open"
	DecodeErrorFormat DecodeErrorKind = "format"
	DecodeErrorRead   DecodeErrorKind = "read"
)

// DecodeError wraps a decoder failure with its classification
type DecodeError struct {
	Kind DecodeErrorKind
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s (%s): %v", e.Path, e.Kind, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Decoder handles audio decoding for WAV input
type Decoder struct {
	config *DecoderConfig
	logger logging.Logger
}

// NewDecoder creates a new decoder with the given config
func NewDecoder(config *DecoderConfig) *Decoder {
	if config == nil {
		config = DefaultDecoderConfig()
	}
	return &Decoder{
		config: config,
		logger: logging.WithFields(logging.Fields{"component": "transcode"}),
	}
}

// DecodeFile decodes an audio file and returns mono PCM at the target rate
func (d *Decoder) DecodeFile(filename string) (*AudioData, error) {
	logger := d.logger.WithFields(logging.Fields{
		"function": "DecodeFile",
		"filename": filename,
	})

	f, err := os.Open(filename)
	if err != nil {
		return nil, &DecodeError{Kind: DecodeErrorOpen, Path: filename, Err: err}
	}
	defer func() {
		if err := f.Close(); err != nil {
			logger.Error(err, "Failed to close input file")
		}
	}()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, &DecodeError{Kind: DecodeErrorFormat, Path: filename,
			Err: fmt.Errorf("not a valid WAV file")}
	}

	sampleRate := int(dec.SampleRate)
	channels := int(dec.NumChans)
	bitDepth := int(dec.BitDepth)
	if sampleRate <= 0 || channels <= 0 {
		return nil, &DecodeError{Kind: DecodeErrorFormat, Path: filename,
			Err: fmt.Errorf("invalid format: rate=%d channels=%d", sampleRate, channels)}
	}

	logger.Debug("Decoding audio file", logging.Fields{
		"input_sample_rate": sampleRate,
		"input_channels":    channels,
		"bit_depth":         bitDepth,
	})

	// Interleaved sample cap for the configured duration bound
	maxSamples := -1
	if d.config.MaxDuration > 0 {
		maxSamples = int(d.config.MaxDuration.Seconds()*float64(sampleRate)) * channels
	}

	// 8-bit WAV PCM is unsigned with a 128 midpoint; deeper depths are signed
	scale := float64(int64(1) << (bitDepth - 1))
	offset := 0.0
	if bitDepth == 8 {
		offset = scale
	}
	pcm := make([]float64, 0, d.config.BufferSize)
	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:   make([]int, d.config.BufferSize),
	}

	for maxSamples < 0 || len(pcm) < maxSamples {
		n, err := dec.PCMBuffer(buf)
		if err != nil {
			return nil, &DecodeError{Kind: DecodeErrorRead, Path: filename, Err: err}
		}
		if n == 0 {
			break
		}
		for _, s := range buf.Data[:n] {
			pcm = append(pcm, (float64(s)-offset)/scale)
		}
	}
	if maxSamples >= 0 && len(pcm) > maxSamples {
		pcm = pcm[:maxSamples]
	}
	if len(pcm) == 0 {
		return nil, &DecodeError{Kind: DecodeErrorRead, Path: filename,
			Err: fmt.Errorf("no audio samples")}
	}

	mono := downmixMono(pcm, channels)
	if sampleRate != d.config.TargetSampleRate {
		mono = Resample(mono, sampleRate, d.config.TargetSampleRate)
	}

	duration := time.Duration(float64(len(mono)) / float64(d.config.TargetSampleRate) * float64(time.Second))
	logger.Debug("Decoded audio file", logging.Fields{
		"samples":  len(mono),
		"duration": duration,
	})

	return &AudioData{
		PCM:        mono,
		SampleRate: d.config.TargetSampleRate,
		Channels:   1,
		Duration:   duration,
	}, nil
}

// GetConfig returns the decoder configuration
func (d *Decoder) GetConfig() *DecoderConfig {
	return d.config
}

// downmixMono averages interleaved channels into a single channel
func downmixMono(pcm []float64, channels int) []float64 {
	if channels <= 1 {
		return pcm
	}
	frames := len(pcm) / channels
	mono := make([]float64, frames)
	for i := range frames {
		sum := 0.0
		for c := range channels {
			sum += pcm[i*channels+c]
		}
		mono[i] = sum / float64(channels)
	}
	return mono
}

// Resample converts a mono signal between sample rates using linear
// interpolation. Adequate for feature extraction; not intended for playback.
func Resample(signal []float64, fromRate, toRate int) []float64 {
	if fromRate == toRate || len(signal) == 0 {
		return signal
	}
	ratio := float64(fromRate) / float64(toRate)
	outLen := int(math.Floor(float64(len(signal)) / ratio))
	if outLen < 1 {
		outLen = 1
	}
	out := make([]float64, outLen)
	for i := range outLen {
		pos := float64(i) * ratio
		idx := int(pos)
		if idx >= len(signal)-1 {
			out[i] = signal[len(signal)-1]
			continue
		}
		frac := pos - float64(idx)
		out[i] = signal[idx]*(1-frac) + signal[idx+1]*frac
	}
	return out
}
