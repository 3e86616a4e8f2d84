// Package render runs an effect module over recorded audio offline, playing
// a MIDI automation lane against it, and writes the result as WAV.
package render

import (
	"context"
	"errors"
	"fmt"
	"math"

	vecmath "github.com/cwbudde/algo-vecmath"
	"github.com/go-audio/audio"
	"github.com/google/uuid"
	gomidi "gitlab.com/gomidi/midi/v2"

	"github.com/justyntemme/pedalgo/pkg/framework/control"
	"github.com/justyntemme/pedalgo/pkg/framework/debug"
	"github.com/justyntemme/pedalgo/pkg/framework/effect"
	"github.com/justyntemme/pedalgo/pkg/framework/param"
	"github.com/justyntemme/pedalgo/pkg/midi"
)

// OutputBitDepth is the sample size of rendered files.
const OutputBitDepth = 16

var (
	// ErrUnsupportedChannels is returned for input that is neither mono nor stereo.
	ErrUnsupportedChannels = errors.New("render: only mono and stereo input is supported")
	// ErrUnsupportedFormat is returned for WAV data that is not integer PCM.
	ErrUnsupportedFormat = errors.New("render: only integer PCM is supported")
	// ErrUnsupportedMessage is returned when scheduling a message no module can react to.
	ErrUnsupportedMessage = errors.New("render: unsupported MIDI message")
)

// Options configures an Engine.
type Options struct {
	BlockSize   int
	OutputLevel float32 // 0..1
	FadeInMs    float64 // ramp the output level up from silence
	Logger      *debug.Logger
}

// Engine feeds audio through a module one sample at a time, in blocks.
// Queued MIDI events are applied at the start of the block they fall in,
// the way a hardware control loop polls between audio buffers.
type Engine struct {
	module    effect.Module
	router    *control.Router
	queue     *midi.EventQueue
	blockSize int
	level     float32
	fadeInMs  float64
	smoother  *param.Smoother
	log       *debug.Logger
}

// New creates an engine driving m. Control input is routed through r.
func New(m effect.Module, r *control.Router, opts Options) *Engine {
	if opts.BlockSize <= 0 {
		opts.BlockSize = 256
	}
	if opts.Logger == nil {
		opts.Logger = debug.Default().With("render")
	}
	return &Engine{
		module:    m,
		router:    r,
		queue:     midi.NewEventQueue(),
		blockSize: opts.BlockSize,
		level:     clampLevel(opts.OutputLevel),
		fadeInMs:  opts.FadeInMs,
		smoother:  param.NewSmoother(param.LinearSmoothing, 0),
		log:       opts.Logger,
	}
}

func clampLevel(l float32) float32 {
	if math.IsNaN(float64(l)) || l < 0 {
		return 0
	}
	if l > 1 {
		return 1
	}
	return l
}

// Schedule queues msg to be applied at frame.
func (e *Engine) Schedule(frame int64, msg gomidi.Message) error {
	if frame < 0 || frame > math.MaxInt32 {
		return fmt.Errorf("render: frame %d out of range", frame)
	}
	ev, ok := midi.FromMessage(msg, int32(frame))
	if !ok {
		return fmt.Errorf("%w: %v", ErrUnsupportedMessage, msg)
	}
	e.queue.Add(ev)
	return nil
}

// Pending returns the number of scheduled events not yet applied.
func (e *Engine) Pending() int {
	return e.queue.Size()
}

// Process renders in through the module and returns 16-bit output with the
// same rate and channel count. The module is initialized at the input's
// sample rate first. ctx is checked between blocks.
func (e *Engine) Process(ctx context.Context, in *audio.IntBuffer) (*audio.IntBuffer, Report, error) {
	report := Report{RunID: uuid.New()}

	if in == nil || in.Format == nil {
		return nil, report, errors.New("render: input has no format")
	}
	ch := in.Format.NumChannels
	if ch != 1 && ch != 2 {
		return nil, report, fmt.Errorf("%w: %d channels", ErrUnsupportedChannels, ch)
	}
	sr := in.Format.SampleRate
	if sr <= 0 {
		return nil, report, fmt.Errorf("render: invalid sample rate %d", sr)
	}

	bitDepth := in.SourceBitDepth
	if bitDepth <= 0 {
		bitDepth = OutputBitDepth
	}
	if bitDepth > 32 {
		return nil, report, fmt.Errorf("%w: %d-bit samples", ErrUnsupportedFormat, bitDepth)
	}
	inScale := float64(int64(1) << uint(bitDepth-1))
	// 8-bit PCM is unsigned with silence at 128
	var bias float64
	if bitDepth == 8 {
		bias = inScale
	}
	outScale := float64(int64(1) << (OutputBitDepth - 1))

	frames := len(in.Data) / ch
	out := &audio.IntBuffer{
		Data:           make([]int, frames*ch),
		Format:         &audio.Format{SampleRate: sr, NumChannels: ch},
		SourceBitDepth: OutputBitDepth,
	}

	e.module.Init(float32(sr))
	e.initLevel(float64(sr))

	profiler := debug.NewBlockProfiler(float64(sr))
	meter := debug.NewMeter()

	n := e.blockSize
	inL, inR := make([]float64, n), make([]float64, n)
	outL, outR := make([]float64, n), make([]float64, n)
	gains := make([]float64, n)

	e.log.Info("run %s: %s, %d frames at %d Hz, %d ch, block %d",
		report.RunID, e.module.Name(), frames, sr, ch, n)

	for start := 0; start < frames; start += n {
		if err := ctx.Err(); err != nil {
			report.Frames = int64(start)
			return nil, report, fmt.Errorf("render cancelled at frame %d: %w", start, err)
		}

		end := start + n
		if end > frames {
			end = frames
		}
		size := end - start

		if applied := e.router.Drain(e.queue, int32(start), int32(end)); applied > 0 {
			report.Events += applied
			e.log.Debug("frame %d: applied %d events", start, applied)
		}

		for i := 0; i < size; i++ {
			base := (start + i) * ch
			inL[i] = float64(in.Data[base]) - bias
			if ch == 2 {
				inR[i] = float64(in.Data[base+1]) - bias
			}
		}
		vecmath.ScaleBlock(inL[:size], inL[:size], 1/inScale)
		if ch == 2 {
			vecmath.ScaleBlock(inR[:size], inR[:size], 1/inScale)
		}

		stop := profiler.StartBlock()
		for i := 0; i < size; i++ {
			if ch == 1 {
				e.module.ProcessMono(float32(inL[i]))
			} else {
				e.module.ProcessStereo(float32(inL[i]), float32(inR[i]))
			}
			outL[i] = float64(e.module.AudioLeft())
			outR[i] = float64(e.module.AudioRight())
		}
		stop()

		if led := e.module.OutputLEDBrightness(); led > report.PeakLED {
			report.PeakLED = led
		}

		e.smoother.Fill(gains[:size])
		vecmath.MulBlockInPlace(outL[:size], gains[:size])
		meter.Add(outL[:size])
		if ch == 2 {
			vecmath.MulBlockInPlace(outR[:size], gains[:size])
			meter.Add(outR[:size])
		}

		for i := 0; i < size; i++ {
			base := (start + i) * ch
			out.Data[base] = quantize(outL[i], outScale)
			if ch == 2 {
				out.Data[base+1] = quantize(outR[i], outScale)
			}
		}

		report.Blocks++
	}

	report.Frames = int64(frames)
	report.Pending = e.queue.Size()
	report.Output = meter.Result()
	report.Load = profiler.Load(n)

	if report.Pending > 0 {
		e.log.Warn("run %s: %d events scheduled past the end of the input", report.RunID, report.Pending)
	}
	report.Output.LogStats(e.log, "output")
	return out, report, nil
}

func (e *Engine) initLevel(sampleRate float64) {
	if e.fadeInMs <= 0 {
		e.smoother.Reset(float64(e.level))
		return
	}
	e.smoother.Reset(0)
	e.smoother.SetTime(sampleRate, e.fadeInMs)
	e.smoother.SetTarget(float64(e.level))
}

func quantize(x, scale float64) int {
	if math.IsNaN(x) {
		return 0
	}
	v := math.Round(x * scale)
	if v > scale-1 {
		v = scale - 1
	}
	if v < -scale {
		v = -scale
	}
	return int(v)
}
