package effects

import (
	"github.com/justyntemme/pedalgo/pkg/framework/effect"
	"github.com/justyntemme/pedalgo/pkg/framework/param"
	"github.com/justyntemme/pedalgo/pkg/framework/plugin"
)

var stock = []struct {
	info    plugin.Info
	params  []param.Descriptor
	factory plugin.Factory
}{
	{
		info:    plugin.Info{ID: "com.pedalgo.overdrive", Name: "Overdrive", Version: "1.0.0", Vendor: "pedalgo", Category: "Drive"},
		params:  OverdriveParams,
		factory: func() effect.Module { return NewOverdrive() },
	},
	{
		info:    plugin.Info{ID: "com.pedalgo.tremolo", Name: "Tremolo", Version: "1.0.0", Vendor: "pedalgo", Category: "Modulation"},
		params:  TremoloParams,
		factory: func() effect.Module { return NewTremolo() },
	},
	{
		info:    plugin.Info{ID: "com.pedalgo.delay", Name: "Delay", Version: "1.0.0", Vendor: "pedalgo", Category: "Time"},
		params:  DelayParams,
		factory: func() effect.Module { return NewDelay() },
	},
}

// Register adds the stock modules to r.
func Register(r *plugin.Registry) error {
	for _, s := range stock {
		if err := r.Register(s.info, s.params, s.factory); err != nil {
			return err
		}
	}
	return nil
}

// NewRegistry returns a registry holding the stock modules.
func NewRegistry() *plugin.Registry {
	r := plugin.NewRegistry()
	if err := Register(r); err != nil {
		panic(err)
	}
	return r
}
