// Copyright (c) 2025, The Lifsim Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/neurosim/lifsim/lif"
	"gopkg.in/yaml.v3"
)

// Config holds the simulation settings loadable from a yaml file, in SI
// units throughout. The pA / ms framing of the reports is applied at the
// command layer only; the core never sees display units.
type Config struct {

	// neuron parameters in SI units.
	Params ParamsConfig `yaml:"params"`

	// integration timestep in seconds.
	Dt float64 `yaml:"dt"`

	// simulated time horizon in seconds.
	Horizon float64 `yaml:"horizon"`
}

// ParamsConfig mirrors lif.Params for yaml decoding.
type ParamsConfig struct {
	R      float64 `yaml:"r"`
	TauM   float64 `yaml:"tau_m"`
	Urest  float64 `yaml:"u_rest"`
	Ureset float64 `yaml:"u_reset"`
	Uthres float64 `yaml:"u_thres"`
}

// DefaultConfig returns the reference configuration.
func DefaultConfig() Config {
	np := lif.Params{}
	np.Defaults()
	return Config{
		Params: ParamsConfig{
			R:      np.R,
			TauM:   np.TauM,
			Urest:  np.Urest,
			Ureset: np.Ureset,
			Uthres: np.Uthres,
		},
		Dt:      1e-5,
		Horizon: 1,
	}
}

// LoadConfig reads a yaml config file over the defaults. An empty path
// returns the defaults unchanged.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// LifParams converts the loaded values to neuron parameters.
func (c Config) LifParams() lif.Params {
	return lif.Params{
		R:      c.Params.R,
		TauM:   c.Params.TauM,
		Urest:  c.Params.Urest,
		Ureset: c.Params.Ureset,
		Uthres: c.Params.Uthres,
	}
}
