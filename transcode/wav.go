package transcode

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// decodeWAV reads a WAV file natively with go-audio, downmixes to mono,
// scales to [-1, 1], and applies the duration cap
func (d *Decoder) decodeWAV(filename string) (*AudioData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open wav file: %w", err)
	}
	defer file.Close()

	decoder := wav.NewDecoder(file)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("not a valid wav file: %s", filename)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to read wav data: %w", err)
	}

	samples, sampleRate, err := monoFloat64(buf, int(decoder.BitDepth))
	if err != nil {
		return nil, err
	}

	if d.config.MaxDuration > 0 {
		maxSamples := int(d.config.MaxDuration * float64(sampleRate))
		if maxSamples > 0 && maxSamples < len(samples) {
			samples = samples[:maxSamples]
		}
	}

	return &AudioData{
		PCM:        samples,
		SampleRate: sampleRate,
		Duration:   float64(len(samples)) / float64(sampleRate),
	}, nil
}

// monoFloat64 converts an integer PCM buffer to mono float64 in [-1, 1],
// averaging interleaved channels
func monoFloat64(buf *audio.IntBuffer, bitDepth int) ([]float64, int, error) {
	if buf == nil || buf.Format == nil {
		return nil, 0, fmt.Errorf("empty wav buffer")
	}

	channels := buf.Format.NumChannels
	sampleRate := buf.Format.SampleRate
	if channels <= 0 || sampleRate <= 0 {
		return nil, 0, fmt.Errorf("invalid wav format: %d channels at %d Hz", channels, sampleRate)
	}
	if bitDepth <= 0 {
		bitDepth = 16
	}

	scale := float64(int64(1) << (bitDepth - 1))
	frames := len(buf.Data) / channels
	samples := make([]float64, frames)

	for i := 0; i < frames; i++ {
		sum := 0.0
		for c := 0; c < channels; c++ {
			sum += float64(buf.Data[i*channels+c]) / scale
		}
		samples[i] = sum / float64(channels)
	}

	return samples, sampleRate, nil
}
