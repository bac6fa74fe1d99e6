package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"bezier-stencil/internal/commands"
	"bezier-stencil/internal/config"
	"bezier-stencil/internal/debug"
	"bezier-stencil/internal/graphics"
	"bezier-stencil/internal/logger"
	"bezier-stencil/internal/scene"
	"bezier-stencil/internal/shader"
	"bezier-stencil/internal/stencil"
	"bezier-stencil/internal/world"

	"github.com/anthonynsimon/bild/blend"
	"github.com/anthonynsimon/bild/imgio"
)

func main() {
	reg := commands.NewRegistry()
	registerRun(reg)
	registerCapture(reg)
	registerShaders(reg)

	args := os.Args[1:]
	if len(args) == 0 {
		args = []string{"run"}
	}
	if err := reg.Execute(args); err != nil {
		if errors.Is(err, commands.ErrUnknown) || errors.Is(err, flag.ErrHelp) {
			reg.Usage(os.Stderr)
		}
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "curve:", err)
		}
		os.Exit(1)
	}
}

// setup loads the config and installs the file logger as the default.
func setup(path string) (config.Config, *logger.Logger, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, nil, err
	}
	log := logger.New(cfg.Log.File, logger.ParseLevel(cfg.Log.Level))
	logger.SetDefault(log.Slog())
	logger.Default().Info("config loaded", "path", path, "variant", cfg.Stencil.Variant)
	return cfg, log, nil
}

func registerRun(reg *commands.Registry) {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	path := fs.String("config", config.DefaultPath, "config file")
	reg.Register("run", "open the interactive viewer", fs, func() error {
		cfg, log, err := setup(*path)
		if err != nil {
			return err
		}
		w, err := world.Build(cfg)
		if err != nil {
			return err
		}
		scn := scene.New(cfg, w, debug.New(log))
		defer scn.Close()

		win := graphics.Window{
			Width:  cfg.Window.Width,
			Height: cfg.Window.Height,
			Title:  cfg.Window.Title,
			FPS:    cfg.Window.FPS,
			MSAA:   cfg.Window.MSAA,
		}
		return graphics.Run(win, func() error { return scn.Init(cfg) }, scn.Update, scn.Draw)
	})
}

func registerCapture(reg *commands.Registry) {
	fs := flag.NewFlagSet("capture", flag.ContinueOnError)
	path := fs.String("config", config.DefaultPath, "config file")
	out := fs.String("o", "curve.png", "output PNG")
	width := fs.Int("w", 800, "image width")
	height := fs.Int("h", 600, "image height")
	variant := fs.String("variant", "", "override the stencil variant (four-pass, three-pass)")
	basePath := fs.String("base", "", "also write the frame with passes 2-4 disabled")
	diffPath := fs.String("diff", "", "also write the difference between the base and full frames")

	reg.Register("capture", "render one frame offline to a PNG", fs, func() error {
		cfg, _, err := setup(*path)
		if err != nil {
			return err
		}
		if *variant != "" {
			cfg.Stencil.Variant = *variant
			if err := cfg.Validate(); err != nil {
				return err
			}
		}
		if *width <= 0 || *height <= 0 {
			return fmt.Errorf("capture: bad size %dx%d", *width, *height)
		}
		w, err := world.Build(cfg)
		if err != nil {
			return err
		}

		full := w.Capture(cfg, *width, *height).Image()
		if err := imgio.Save(*out, full, imgio.PNGEncoder()); err != nil {
			return fmt.Errorf("capture: %w", err)
		}
		logger.Default().Info("frame saved", "path", *out)
		if *basePath == "" && *diffPath == "" {
			return nil
		}

		for _, p := range []int{stencil.PassIncrement, stencil.PassDecrement, stencil.PassRelight} {
			w.Compositor.SetEnabled(p, false)
		}
		base := w.Capture(cfg, *width, *height).Image()
		if *basePath != "" {
			if err := imgio.Save(*basePath, base, imgio.PNGEncoder()); err != nil {
				return fmt.Errorf("capture: %w", err)
			}
			logger.Default().Info("base frame saved", "path", *basePath)
		}
		if *diffPath != "" {
			if err := imgio.Save(*diffPath, blend.Difference(base, full), imgio.PNGEncoder()); err != nil {
				return fmt.Errorf("capture: %w", err)
			}
			logger.Default().Info("difference saved", "path", *diffPath)
		}
		return nil
	})
}

func registerShaders(reg *commands.Registry) {
	fs := flag.NewFlagSet("shaders", flag.ContinueOnError)
	check := fs.Bool("check", false, "compile every WGSL program instead of printing sources")
	reg.Register("shaders", "print or check the shader programs", fs, func() error {
		failed := 0
		for _, p := range shader.All() {
			if *check {
				if err := shader.Validate(p); err != nil {
					fmt.Fprintln(os.Stderr, err)
					failed++
					continue
				}
				fmt.Printf("%-10s ok\n", p.Name)
				continue
			}
			fmt.Printf("// %s: vertex\n%s\n// %s: fragment\n%s\n// %s: wgsl\n%s\n",
				p.Name, p.Vertex, p.Name, p.Fragment, p.Name, p.WGSL)
		}
		if failed > 0 {
			return fmt.Errorf("shaders: %d of %d programs failed", failed, len(shader.All()))
		}
		return nil
	})
}
