// Copyright (c) 2025, The Lifsim Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Params.R != 95e6 {
		t.Errorf("default R: got %g", cfg.Params.R)
	}
	if cfg.Dt != 1e-5 || cfg.Horizon != 1 {
		t.Errorf("default dt/horizon: got %g, %g", cfg.Dt, cfg.Horizon)
	}
	np := cfg.LifParams()
	if err := np.Validate(); err != nil {
		t.Errorf("default config params should validate: %v", err)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lif.yaml")
	data := `params:
  r: 100e6
  tau_m: 0.02
  u_rest: -0.070
  u_reset: -0.070
  u_thres: -0.054
dt: 2e-5
horizon: 0.5
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Params.R != 100e6 || cfg.Params.TauM != 0.02 {
		t.Errorf("loaded params: %+v", cfg.Params)
	}
	if cfg.Dt != 2e-5 || cfg.Horizon != 0.5 {
		t.Errorf("loaded dt/horizon: %g, %g", cfg.Dt, cfg.Horizon)
	}
	np := cfg.LifParams()
	if np.Urest != -0.070 || np.Uthres != -0.054 {
		t.Errorf("converted params: %+v", np)
	}
}

func TestLoadConfigPartial(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lif.yaml")
	// only horizon given: everything else keeps defaults
	if err := os.WriteFile(path, []byte("horizon: 0.15\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Horizon != 0.15 {
		t.Errorf("horizon: got %g, want 0.15", cfg.Horizon)
	}
	if cfg.Params.R != 95e6 || cfg.Dt != 1e-5 {
		t.Errorf("defaults lost on partial load: %+v", cfg)
	}
}

func TestLoadConfigMissing(t *testing.T) {
	if _, err := LoadConfig("/nonexistent/lif.yaml"); err == nil {
		t.Error("missing file should error")
	}
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg != DefaultConfig() {
		t.Error("empty path should return defaults")
	}
}
