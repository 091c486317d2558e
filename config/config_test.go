package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Run.NumSteps != 1000 || cfg.Run.NumSeeds != 10000 {
		t.Errorf("unexpected run size %+v", cfg.Run)
	}
	if cfg.Derived.DT32 != 0.002 {
		t.Errorf("expected dt 0.002, got %v", cfg.Derived.DT32)
	}
	if cfg.Seeding.Policy != SeedCircle {
		t.Errorf("expected circle seeding, got %q", cfg.Seeding.Policy)
	}
	if cfg.Derived.Center != [3]float32{0.5, 0.01, 0.5} {
		t.Errorf("unexpected seed center %v", cfg.Derived.Center)
	}
	if cfg.Derived.Workers < 1 {
		t.Errorf("expected at least one worker, got %d", cfg.Derived.Workers)
	}
	if cfg.Output.VTPPath != "test.vtp" {
		t.Errorf("expected test.vtp, got %q", cfg.Output.VTPPath)
	}
}

func TestLoadMergesUserFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user.yaml")
	user := "run:\n  num_seeds: 12\nseeding:\n  policy: rake\ndevice:\n  workers: 3\n"
	if err := os.WriteFile(path, []byte(user), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Run.NumSeeds != 12 {
		t.Errorf("expected overridden seeds 12, got %d", cfg.Run.NumSeeds)
	}
	if cfg.Run.NumSteps != 1000 {
		t.Errorf("expected default steps to survive merge, got %d", cfg.Run.NumSteps)
	}
	if cfg.Seeding.Policy != SeedRake || cfg.Derived.Workers != 3 {
		t.Errorf("overrides not applied: %+v %+v", cfg.Seeding, cfg.Derived)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("seeding:\n  policy: spiral\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

func TestSetRunRefreshesDerived(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.SetRun(5, 6, 0.5)
	if cfg.Derived.DT32 != 0.5 || cfg.Run.NumSteps != 5 || cfg.Run.NumSeeds != 6 {
		t.Errorf("SetRun not applied: %+v %+v", cfg.Run, cfg.Derived)
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.SetRun(7, 8, 0.25)

	path := filepath.Join(t.TempDir(), "snap.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatal(err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if back.Run != cfg.Run {
		t.Errorf("expected %+v after reload, got %+v", cfg.Run, back.Run)
	}
}

func TestCfgAfterInit(t *testing.T) {
	MustInit("")
	if Cfg().Run.NumSteps != 1000 {
		t.Errorf("unexpected global config %+v", Cfg().Run)
	}
}
