// Package config loads rig files: which modules to chain, where their knobs
// start, and the MIDI automation to play against them during a render.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/justyntemme/pedalgo/pkg/framework/debug"
	"github.com/justyntemme/pedalgo/pkg/framework/param"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid rig")

// Rig is the top-level rig file.
type Rig struct {
	SampleRate int `yaml:"sample_rate"`
	BlockSize  int `yaml:"block_size"`
	// MidiChannel is 1..16, or 0 to listen on every channel
	MidiChannel int    `yaml:"midi_channel"`
	Input       string `yaml:"input"`
	Output      string `yaml:"output"`
	// OutputLevel is a magnitude such as "0.8" or "80%"
	OutputLevel string       `yaml:"output_level"`
	LogLevel    string       `yaml:"log_level"`
	Chain       []Slot       `yaml:"chain"`
	Automation  []Automation `yaml:"automation"`
}

// Slot is one module in the chain.
type Slot struct {
	Module string `yaml:"module"`
	Bypass bool   `yaml:"bypass"`
	// Knobs maps a knob index to its starting position, "0.75" or "75%"
	Knobs map[int]string `yaml:"knobs"`
}

// Automation is one MIDI message played at a point in time. Exactly one of
// CC and Program is set.
type Automation struct {
	At      float64 `yaml:"at"` // seconds from the start
	CC      *int    `yaml:"cc,omitempty"`
	Value   int     `yaml:"value"`
	Program *int    `yaml:"program,omitempty"`
}

// Defaults.
const (
	DefaultSampleRate = 48000
	DefaultBlockSize  = 256
)

// LoadEnv reads .env style files into the environment. Missing files are
// not an error.
func LoadEnv(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// Load reads and validates a rig file, applying PEDAL_* environment
// overrides on top of it.
func Load(path string) (*Rig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rig: %w", err)
	}
	rig, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rig, nil
}

// Parse decodes a rig from YAML, applies defaults and environment
// overrides, and validates the result.
func Parse(data []byte) (*Rig, error) {
	rig := &Rig{}
	if err := yaml.Unmarshal(data, rig); err != nil {
		return nil, fmt.Errorf("parse rig: %w", err)
	}
	if err := rig.applyEnv(); err != nil {
		return nil, err
	}
	rig.applyDefaults()
	if err := rig.Validate(); err != nil {
		return nil, err
	}
	return rig, nil
}

func (r *Rig) applyDefaults() {
	if r.SampleRate == 0 {
		r.SampleRate = DefaultSampleRate
	}
	if r.BlockSize == 0 {
		r.BlockSize = DefaultBlockSize
	}
	if r.OutputLevel == "" {
		r.OutputLevel = "1"
	}
}

func (r *Rig) applyEnv() error {
	var err error
	r.Input = getEnv("PEDAL_INPUT", r.Input)
	r.Output = getEnv("PEDAL_OUTPUT", r.Output)
	r.LogLevel = getEnv("PEDAL_LOG_LEVEL", r.LogLevel)
	r.OutputLevel = getEnv("PEDAL_OUTPUT_LEVEL", r.OutputLevel)

	if r.SampleRate, err = getEnvInt("PEDAL_SAMPLE_RATE", r.SampleRate); err != nil {
		return err
	}
	if r.BlockSize, err = getEnvInt("PEDAL_BLOCK_SIZE", r.BlockSize); err != nil {
		return err
	}
	if r.MidiChannel, err = getEnvInt("PEDAL_MIDI_CHANNEL", r.MidiChannel); err != nil {
		return err
	}
	return nil
}

// Validate reports every problem with the rig at once.
func (r *Rig) Validate() error {
	var errs []error
	bad := func(format string, args ...interface{}) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]interface{}{ErrInvalid}, args...)...))
	}

	if r.SampleRate < 8000 || r.SampleRate > 192000 {
		bad("sample_rate %d outside 8000..192000", r.SampleRate)
	}
	if r.BlockSize < 1 || r.BlockSize > 8192 {
		bad("block_size %d outside 1..8192", r.BlockSize)
	}
	if r.MidiChannel < 0 || r.MidiChannel > 16 {
		bad("midi_channel %d outside 0..16", r.MidiChannel)
	}
	if _, err := debug.ParseLevel(r.LogLevel); err != nil {
		bad("log_level: %v", err)
	}
	if _, err := r.Level(); err != nil {
		bad("output_level: %v", err)
	}
	if len(r.Chain) == 0 {
		bad("chain is empty")
	}

	for i, s := range r.Chain {
		if strings.TrimSpace(s.Module) == "" {
			bad("chain[%d]: module name is empty", i)
		}
		if _, err := s.Positions(); err != nil {
			bad("chain[%d]: %v", i, err)
		}
	}

	for i, a := range r.Automation {
		switch {
		case a.At < 0:
			bad("automation[%d]: negative time %g", i, a.At)
		case (a.CC == nil) == (a.Program == nil):
			bad("automation[%d]: set exactly one of cc and program", i)
		case a.CC != nil && (*a.CC < 0 || *a.CC > 127):
			bad("automation[%d]: cc %d outside 0..127", i, *a.CC)
		case a.CC != nil && (a.Value < 0 || a.Value > 127):
			bad("automation[%d]: value %d outside 0..127", i, a.Value)
		case a.Program != nil && (*a.Program < 0 || *a.Program > 127):
			bad("automation[%d]: program %d outside 0..127", i, *a.Program)
		}
	}

	return errors.Join(errs...)
}

// Level returns the output level magnitude.
func (r *Rig) Level() (float32, error) {
	return parseMagnitude(r.OutputLevel)
}

// Channel returns the zero-based MIDI channel, or -1 for every channel.
func (r *Rig) Channel() int {
	return r.MidiChannel - 1
}

// Positions parses the slot's knob positions.
func (s Slot) Positions() (map[int]float32, error) {
	out := make(map[int]float32, len(s.Knobs))
	for knob, v := range s.Knobs {
		if knob < 0 {
			return nil, fmt.Errorf("knob %d is negative", knob)
		}
		m, err := parseMagnitude(v)
		if err != nil {
			return nil, fmt.Errorf("knob %d: %w", knob, err)
		}
		out[knob] = m
	}
	return out, nil
}

func parseMagnitude(s string) (float32, error) {
	m, err := param.ParsePercent(s)
	if err != nil {
		return 0, err
	}
	if m < 0 || m > 1 {
		return 0, fmt.Errorf("%q outside 0..1", s)
	}
	return m, nil
}

// getEnv returns the value of the environment variable key, or defaultValue if unset.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
