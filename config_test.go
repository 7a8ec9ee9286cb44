package main

import (
	"flag"
	"math"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ConfigFilename)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigMissing(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yml"))
	if err != nil {
		t.Fatalf("missing file should not fail: %v", err)
	}
	def := DefaultConfig()
	if cfg.Shape != def.Shape || cfg.Scale != def.Scale || cfg.Vulkan {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
shape: cube
scale: 0.5
vulkan: true
validation: true
validation_layers:
  - VK_LAYER_KHRONOS_validation
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Shape != "cube" || cfg.Scale != 0.5 || !cfg.Vulkan || !cfg.Validation {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.ApplicationName != DefaultConfig().ApplicationName {
		t.Errorf("unset keys should keep their default, got %q", cfg.ApplicationName)
	}
	dev := cfg.DeviceConfig()
	if !dev.Validation || !slices.Equal(dev.ValidationLayers, []string{"VK_LAYER_KHRONOS_validation"}) {
		t.Errorf("unexpected device config %+v", dev)
	}
}

func TestLoadConfigSyntax(t *testing.T) {
	if _, err := LoadConfig(writeConfig(t, "shape: [cube\n")); err == nil {
		t.Errorf("expected a parse error")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name  string
		shape string
		scale float32
		ok    bool
	}{
		{"default", "triangle", 1, true},
		{"cube", "Cube", 0.25, true},
		{"unknown shape", "sphere", 1, false},
		{"negative scale", "cube", -1, false},
		{"zero scale", "cube", 0, false},
		{"nan scale", "cube", float32(math.NaN()), false},
		{"infinite scale", "cube", float32(math.Inf(1)), false},
	}
	for _, c := range cases {
		cfg := DefaultConfig()
		cfg.Shape, cfg.Scale = c.shape, c.scale
		if err := cfg.Validate(); (err == nil) != c.ok {
			t.Errorf("%s: Validate() = %v", c.name, err)
		}
	}
}

func TestFlagsOverrideFile(t *testing.T) {
	// the file alone is invalid, the flags repair it
	cfg, err := LoadConfig(writeConfig(t, "shape: sphere\nscale: 0\nvulkan: true\nwireframe: true\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Validate() == nil {
		t.Fatalf("file values should not validate on their own")
	}

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	RegisterFlags(fs)
	if err := fs.Parse([]string{"-shape", "cube", "-scale", "2", "-vulkan=false"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	cfg.ApplyFlags(fs)
	if err := cfg.Validate(); err != nil {
		t.Fatalf("merged config should validate: %v", err)
	}
	if cfg.Shape != "cube" || cfg.Scale != 2 || cfg.Vulkan {
		t.Errorf("flags did not override the file: %+v", cfg)
	}
	if !cfg.Wireframe {
		t.Errorf("unset flag must keep the file value")
	}
}

func TestRunHostBuffer(t *testing.T) {
	for _, shape := range []string{"triangle", "cube"} {
		cfg := DefaultConfig()
		cfg.Shape = shape
		cfg.Scale = 2
		cfg.Wireframe = true
		if err := run(cfg); err != nil {
			t.Errorf("%s: %v", shape, err)
		}
	}
}

func TestRunUnknownShape(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Shape = "sphere"
	if err := run(cfg); err == nil {
		t.Errorf("expected an error for an unknown shape")
	}
}
