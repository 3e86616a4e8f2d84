package render

import (
	"context"
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WAVE_FORMAT_PCM
const wavFormatPCM = 1

// RenderFile decodes the WAV at inPath, processes it and writes the result
// to outPath as 16-bit PCM.
func (e *Engine) RenderFile(ctx context.Context, inPath, outPath string) (Report, error) {
	buf, err := ReadWAV(inPath)
	if err != nil {
		return Report{}, err
	}

	rendered, report, err := e.Process(ctx, buf)
	if err != nil {
		return report, err
	}

	if err := WriteWAV(outPath, rendered); err != nil {
		return report, err
	}
	e.log.Info("%s", report)
	return report, nil
}

// ReadWAV decodes a whole integer PCM WAV file. 8-bit data comes back
// unsigned, as stored; Process removes the offset.
func ReadWAV(path string) (*audio.IntBuffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%s: not a valid WAV file", path)
	}
	if dec.WavAudioFormat != wavFormatPCM {
		return nil, fmt.Errorf("%w: %s has format tag %d", ErrUnsupportedFormat, path, dec.WavAudioFormat)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if buf.SourceBitDepth == 0 {
		buf.SourceBitDepth = int(dec.BitDepth)
	}
	return buf, nil
}

// WriteWAV encodes buf as 16-bit PCM at path.
func WriteWAV(path string, buf *audio.IntBuffer) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, buf.Format.SampleRate, OutputBitDepth, buf.Format.NumChannels, 1)
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalize %s: %w", path, err)
	}
	return nil
}
