package main

import (
	"context"
	"fmt"

	"github.com/justyntemme/pedalgo/pkg/config"
	"github.com/justyntemme/pedalgo/pkg/framework/control"
	"github.com/justyntemme/pedalgo/pkg/framework/debug"
	"github.com/justyntemme/pedalgo/pkg/framework/effect"
	"github.com/justyntemme/pedalgo/pkg/framework/plugin"
	"github.com/justyntemme/pedalgo/pkg/render"
)

// buildChain instantiates the rig's slots in order, sets their knobs and
// bypass state.
func buildChain(rig *config.Rig, reg *plugin.Registry) (*effect.Chain, error) {
	modules := make([]effect.Module, 0, len(rig.Chain))
	for i, slot := range rig.Chain {
		m, err := reg.New(slot.Module)
		if err != nil {
			return nil, fmt.Errorf("slot %d: %w", i, err)
		}

		positions, err := slot.Positions()
		if err != nil {
			return nil, fmt.Errorf("slot %d (%s): %w", i, slot.Module, err)
		}
		knobs := control.NewRouter(m)
		for knob, pos := range positions {
			if !knobs.Knob(knob, pos) {
				return nil, fmt.Errorf("slot %d (%s): knob %d is not mapped", i, slot.Module, knob)
			}
		}
		modules = append(modules, m)
	}

	chain := effect.NewChain("rig", modules...)
	for i, slot := range rig.Chain {
		chain.SetBypass(i, slot.Bypass)
	}
	return chain, nil
}

// renderRig runs the rig's input through its chain. Program change n
// toggles the bypass of slot n.
func renderRig(ctx context.Context, rig *config.Rig, reg *plugin.Registry) (render.Report, error) {
	log := debug.Default().With("render")

	chain, err := buildChain(rig, reg)
	if err != nil {
		return render.Report{}, err
	}
	outputLevel, err := rig.Level()
	if err != nil {
		return render.Report{}, err
	}

	buf, err := render.ReadWAV(rig.Input)
	if err != nil {
		return render.Report{}, err
	}
	if sr := buf.Format.SampleRate; sr != rig.SampleRate {
		log.Warn("%s is %d Hz, rig says %d Hz; timing automation at %d Hz", rig.Input, sr, rig.SampleRate, sr)
		rig.SampleRate = sr
	}

	router := control.NewRouter(chain)
	router.SetChannel(rig.Channel())
	router.OnProgramChange(func(program uint8) {
		slot := int(program)
		if slot >= chain.Len() {
			log.Debug("program %d: no slot", program)
			return
		}
		chain.ToggleBypass(slot)
		log.Info("slot %d (%s) bypass %t", slot, chain.Module(slot).Name(), chain.IsBypassed(slot))
	})

	engine := render.New(chain, router, render.Options{
		BlockSize:   rig.BlockSize,
		OutputLevel: outputLevel,
		Logger:      log,
	})
	for _, cue := range rig.Cues() {
		if err := engine.Schedule(cue.Frame, cue.Msg); err != nil {
			return render.Report{}, err
		}
	}

	out, report, err := engine.Process(ctx, buf)
	if err != nil {
		return report, err
	}
	if err := render.WriteWAV(rig.Output, out); err != nil {
		return report, err
	}
	log.Info("wrote %s", rig.Output)
	return report, nil
}
