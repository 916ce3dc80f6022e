package config

import (
	"sort"

	"github.com/san-kum/slitsim/internal/dynamo"
)

var Presets = map[string]dynamo.Params{
	"default": {Slit1: 0.3, Slit2: 0.7, T: 1, K: 10},
	"narrow":  {Slit1: 0.45, Slit2: 0.55, T: 1, K: 20},
	"wide":    {Slit1: 0.1, Slit2: 0.9, T: 2, K: 5},
	"diffuse": {Slit1: 0.3, Slit2: 0.7, T: 5, K: 10},
	"sharp":   {Slit1: 0.3, Slit2: 0.7, T: 0.1, K: 15},
}

// GetPreset returns the default configuration with the named parameter set
// applied, or nil when no such preset exists.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Params = p
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
