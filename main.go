package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"runtime"

	"GPU_vertex_layout/common"
	"GPU_vertex_layout/layout"
	"GPU_vertex_layout/model"
	"golang.org/x/term"
)

const PROGRAM_NAME = "GPU vertex layout"

func init() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.SetOutput(os.Stderr)
}

func main() {
	configPath := flag.String("config", ConfigFilename, "yaml config file, ignored when missing")
	printWGSL := flag.Bool("wgsl", false, "print the shader declarations and exit")
	verbose := flag.Bool("v", false, "debug logging")
	RegisterFlags(flag.CommandLine)
	flag.Parse()

	setupLogging(*verbose)

	if *printWGSL {
		fmt.Print(layout.ShaderSource())
		fmt.Print(model.UniformsDeclaration)
		return
	}

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg.ApplyFlags(flag.CommandLine)
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid settings: %v", err)
	}
	slog.Debug("starting", "program", PROGRAM_NAME, "go", runtime.Version(), "config", cfg)

	if err := run(cfg); err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}
}

func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler = slog.NewJSONHandler(os.Stderr, opts)
	if term.IsTerminal(int(os.Stderr.Fd())) {
		h = slog.NewTextHandler(os.Stderr, opts)
	}
	logger := slog.New(h)
	slog.SetDefault(logger)
	layout.SetLogger(logger)
}

func run(cfg Config) error {
	shaderLayout, err := layout.ShaderLayout()
	if err != nil {
		return err
	}
	fmt.Print(layout.HostLayout().String())
	fmt.Print(shaderLayout.String())
	if err := layout.Verify(); err != nil {
		return err
	}

	s, err := model.ParseShape(cfg.Shape)
	if err != nil {
		return err
	}
	m := model.NewModel(s)
	m.SetScale(cfg.Scale)
	m.Wireframe = cfg.Wireframe
	u := m.Uniforms()
	ub, err := u.Bytes()
	if err != nil {
		return err
	}
	slog.Debug("model", "name", m.Name, "vertices", len(m.Mesh.Vertices), "indices", m.Count(),
		"vertexBytes", m.VertexBufferSize(), "indexBytes", m.IndexBufferSize(), "uniformBytes", len(ub),
		"wireframe", m.Wireframe)

	var mem model.DeviceMemory
	if cfg.Vulkan {
		dc, err := common.NewHeadlessDevice(cfg.DeviceConfig())
		if err != nil {
			return fmt.Errorf("vulkan: %w", err)
		}
		defer dc.Destroy()
		buf, err := common.CreateVertexBuffer(dc, uint64(m.VertexBufferSize()))
		if err != nil {
			return fmt.Errorf("vulkan: %w", err)
		}
		defer common.DestroyBuffer(dc, buf)
		mem = buf
	} else {
		mem = common.NewHostBuffer(uint64(m.VertexBufferSize()))
	}

	if err := m.Upload(mem); err != nil {
		return err
	}
	got, err := model.ReadBack(mem)
	if err != nil {
		return err
	}
	if bad := model.Mismatches(m.Mesh.Vertices, got); len(bad) > 0 {
		for _, i := range bad {
			if i < len(got) {
				slog.Error("vertex differs", "index", i, "want", m.Mesh.Vertices[i].Floats(), "got", got[i].Floats())
			}
		}
		return fmt.Errorf("%d of %d vertices differ after the round trip", len(bad), len(m.Mesh.Vertices))
	}
	fmt.Printf("%s: %d vertices, %d bytes at stride %d, read back intact\n",
		m.Name, len(got), m.VertexBufferSize(), layout.Stride)
	return nil
}
