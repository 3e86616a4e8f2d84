// Package delay provides delay lines for echo effects.
package delay

// Line is a circular delay line read with linear interpolation.
type Line struct {
	buffer     []float32
	writePos   int
	sampleRate float64
}

// New allocates a line able to delay up to maxDelaySeconds.
func New(maxDelaySeconds, sampleRate float64) *Line {
	size := int(maxDelaySeconds*sampleRate) + 2
	return &Line{
		buffer:     make([]float32, size),
		sampleRate: sampleRate,
	}
}

// MaxDelay returns the longest usable delay in samples.
func (d *Line) MaxDelay() float64 {
	return float64(len(d.buffer) - 2)
}

// Reset clears the delay buffer
func (d *Line) Reset() {
	for i := range d.buffer {
		d.buffer[i] = 0
	}
	d.writePos = 0
}

// Write adds a sample to the delay line
func (d *Line) Write(sample float32) {
	d.buffer[d.writePos] = sample
	d.writePos++
	if d.writePos >= len(d.buffer) {
		d.writePos = 0
	}
}

// Read returns the sample written delaySamples ago. The delay is clamped
// to [1, MaxDelay].
func (d *Line) Read(delaySamples float64) float32 {
	if delaySamples < 1 {
		delaySamples = 1
	}
	if m := d.MaxDelay(); delaySamples > m {
		delaySamples = m
	}

	size := len(d.buffer)
	readPos := float64(d.writePos) - delaySamples
	if readPos < 0 {
		readPos += float64(size)
	}

	i := int(readPos)
	frac := float32(readPos - float64(i))
	s1 := d.buffer[i]
	s2 := d.buffer[(i+1)%size]
	return s1 + (s2-s1)*frac
}

// SamplesForMs converts a delay time to samples at the line's rate.
func (d *Line) SamplesForMs(ms float64) float64 {
	return ms * d.sampleRate / 1000.0
}

// Process writes input and returns the delayed sample.
func (d *Line) Process(input float32, delaySamples float64) float32 {
	output := d.Read(delaySamples)
	d.Write(input)
	return output
}

// Echo is a feedback delay with a one-pole lowpass in the loop, so each
// repeat is darker than the last.
type Echo struct {
	Line
	feedback float32
	damp     float32
	state    float32
}

// NewEcho creates an echo with up to maxDelaySeconds of delay.
func NewEcho(maxDelaySeconds, sampleRate float64) *Echo {
	return &Echo{
		Line:     *New(maxDelaySeconds, sampleRate),
		feedback: 0.4,
		damp:     0.2,
	}
}

// SetFeedback sets the loop gain, kept below 1 so the loop always decays.
func (e *Echo) SetFeedback(feedback float32) {
	if feedback < 0 {
		feedback = 0
	}
	if feedback > 0.95 {
		feedback = 0.95
	}
	e.feedback = feedback
}

// SetDamp sets the loop lowpass amount in 0..1.
func (e *Echo) SetDamp(damp float32) {
	if damp < 0 {
		damp = 0
	}
	if damp > 1 {
		damp = 1
	}
	e.damp = damp
}

// Reset clears the line and the loop filter.
func (e *Echo) Reset() {
	e.Line.Reset()
	e.state = 0
}

// Process feeds input into the loop and returns the wet signal.
func (e *Echo) Process(input float32, delaySamples float64) float32 {
	wet := e.Read(delaySamples)
	e.state = wet*(1-e.damp) + e.state*e.damp
	e.Write(input + e.state*e.feedback)
	return wet
}
