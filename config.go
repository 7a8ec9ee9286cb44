package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"math"
	"os"

	"GPU_vertex_layout/common"
	"GPU_vertex_layout/model"
	"gopkg.in/yaml.v3"
)

const ConfigFilename = "vertex-layout.yml"

// Config holds the settings that can be placed in a yaml file next to the binary. Command line flags
// take precedence over the file.
type Config struct {
	Shape            string   `yaml:"shape"`
	Scale            float32  `yaml:"scale"`
	Vulkan           bool     `yaml:"vulkan"`
	Validation       bool     `yaml:"validation"`
	Wireframe        bool     `yaml:"wireframe"`
	ValidationLayers []string `yaml:"validation_layers"`
	ApplicationName  string   `yaml:"application_name"`
}

func DefaultConfig() Config {
	return Config{
		Shape:           model.Triangle.String(),
		Scale:           1,
		ApplicationName: "GPU vertex layout",
	}
}

// LoadConfig reads path on top of the defaults. A missing file is not an error. Values are not
// validated here since flags may still override them.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// RegisterFlags defines the flags that override config keys on set.
func RegisterFlags(set *flag.FlagSet) {
	set.String("shape", "", "mesh to upload: triangle or cube")
	set.Float64("scale", 0, "uniform scale of the model matrix")
	set.Bool("vulkan", false, "upload into a vulkan buffer instead of host memory")
	set.Bool("validation", false, "enable vulkan validation layers")
	set.Bool("wireframe", false, "set the wireframe flag in the model uniforms")
}

// ApplyFlags copies every flag that was set explicitly on set into c.
func (c *Config) ApplyFlags(set *flag.FlagSet) {
	set.Visit(func(f *flag.Flag) {
		g, ok := f.Value.(flag.Getter)
		if !ok {
			return
		}
		switch v := g.Get().(type) {
		case string:
			if f.Name == "shape" {
				c.Shape = v
			}
		case float64:
			if f.Name == "scale" {
				c.Scale = float32(v)
			}
		case bool:
			switch f.Name {
			case "vulkan":
				c.Vulkan = v
			case "validation":
				c.Validation = v
			case "wireframe":
				c.Wireframe = v
			}
		}
	})
}

// Validate checks the merged settings.
func (c Config) Validate() error {
	if _, err := model.ParseShape(c.Shape); err != nil {
		return err
	}
	if !(c.Scale > 0) || math.IsInf(float64(c.Scale), 1) {
		return fmt.Errorf("scale must be a positive finite number, got %v", c.Scale)
	}
	return nil
}

func (c Config) DeviceConfig() common.Config {
	return common.Config{
		AppName:          c.ApplicationName,
		Validation:       c.Validation,
		ValidationLayers: c.ValidationLayers,
	}
}
