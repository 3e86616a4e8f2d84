package render

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/justyntemme/pedalgo/pkg/framework/debug"
	"github.com/justyntemme/pedalgo/pkg/framework/param"
)

// Report summarises one render.
type Report struct {
	RunID   uuid.UUID
	Frames  int64
	Blocks  int
	Events  int // automation events applied
	Pending int // events that fell after the last frame
	PeakLED float32
	Output  debug.MeterResult
	Load    float64 // average block time as a percentage of real time
}

func (r Report) String() string {
	return fmt.Sprintf("run %s: %d frames in %d blocks, %d events applied, LED peak %s, output peak %.3f, load %.1f%%",
		r.RunID, r.Frames, r.Blocks, r.Events, param.FormatPercent(r.PeakLED), r.Output.Peak, r.Load)
}
