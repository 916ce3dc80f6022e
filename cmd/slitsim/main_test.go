package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/san-kum/slitsim/internal/config"
	"github.com/san-kum/slitsim/internal/storage"
)

func newTestCmd(t *testing.T) *cobra.Command {
	t.Helper()
	preset, configFile, dataDir, resume = "", "", config.DefaultDataDir, ""
	cmd := &cobra.Command{Use: "test"}
	addLoopFlags(cmd)
	cmd.Flags().StringVar(&dataDir, "data", config.DefaultDataDir, "")
	return cmd
}

func TestResolveConfigLayering(t *testing.T) {
	cmd := newTestCmd(t)

	path := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(path, []byte("slit1: 0.2\nk: 15\nwidth: 300\n"), 0644); err != nil {
		t.Fatal(err)
	}
	preset = "wide"
	configFile = path
	if err := cmd.Flags().Set("k", "4"); err != nil {
		t.Fatal(err)
	}

	cfg, err := resolveConfig(cmd)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Params.Slit1 != 0.2 {
		t.Errorf("slit1 = %v, want file value 0.2", cfg.Params.Slit1)
	}
	if cfg.Params.Slit2 != config.Presets["wide"].Slit2 {
		t.Errorf("slit2 = %v, want preset value", cfg.Params.Slit2)
	}
	if cfg.Params.K != 4 {
		t.Errorf("k = %v, want flag value 4", cfg.Params.K)
	}
	if cfg.Width != 300 {
		t.Errorf("width = %d, want 300", cfg.Width)
	}
	if cfg.Height != config.DefaultHeight {
		t.Errorf("height = %d, want default", cfg.Height)
	}
}

func TestResolveConfigPreset(t *testing.T) {
	cmd := newTestCmd(t)
	preset = "narrow"
	cfg, err := resolveConfig(cmd)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Params != config.Presets["narrow"] {
		t.Errorf("params = %v, want narrow preset", cfg.Params)
	}

	preset = "missing"
	if _, err := resolveConfig(cmd); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestResolveConfigRejectsInvalid(t *testing.T) {
	cmd := newTestCmd(t)
	if err := cmd.Flags().Set("t", "0"); err != nil {
		t.Fatal(err)
	}
	if _, err := resolveConfig(cmd); err == nil {
		t.Error("expected validation error for t=0")
	}
}

func TestWriteConfig(t *testing.T) {
	cmd := newTestCmd(t)
	if err := cmd.Flags().Set("k", "7"); err != nil {
		t.Fatal(err)
	}
	if err := cmd.Flags().Set("height", "120"); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "slitsim.yaml")
	if err := writeConfig(cmd, []string{path}); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load written config: %v", err)
	}
	if cfg.Params.K != 7 || cfg.Height != 120 {
		t.Errorf("round trip lost flags: k=%v height=%d", cfg.Params.K, cfg.Height)
	}

	if err := writeConfig(cmd, []string{path}); err == nil {
		t.Error("expected error when the file already exists")
	}
}

func TestNewLoopResume(t *testing.T) {
	cmd := newTestCmd(t)
	dir := t.TempDir()
	if err := cmd.Flags().Set("data", dir); err != nil {
		t.Fatal(err)
	}
	if err := cmd.Flags().Set("width", "40"); err != nil {
		t.Fatal(err)
	}
	if err := cmd.Flags().Set("height", "10"); err != nil {
		t.Fatal(err)
	}
	cfg, err := resolveConfig(cmd)
	if err != nil {
		t.Fatal(err)
	}

	first, err := newLoop(cfg)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		first.Step()
	}
	st := storage.New(dir)
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}
	id, err := st.SaveLoop(first)
	if err != nil {
		t.Fatal(err)
	}

	resume = id
	defer func() { resume = "" }()
	next, err := newLoop(cfg)
	if err != nil {
		t.Fatalf("resume: %v", err)
	}
	if next.Renderer().Offset() != first.Renderer().Offset() {
		t.Errorf("offset = %v, want %v", next.Renderer().Offset(), first.Renderer().Offset())
	}
	if !next.Heatmap().Equal(first.Heatmap()) {
		t.Error("resumed heatmap differs from the saved one")
	}

	resume = "snapshot_missing"
	if _, err := newLoop(cfg); err == nil {
		t.Error("expected error for an unknown snapshot")
	}
}
