// Command fldemo renders a demonstration scene through the fldraw drawing
// layer at a chosen scale and writes it as a PNG.
//
// Usage:
//
//	fldemo -scale 1.5 -out demo.png
//	fldemo -config demo.toml -watch
//	fldemo -scale 2 -out - > demo.png
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/gogpu/fldraw"
	"github.com/gogpu/fldraw/surface"
)

// pipeName is the output name that writes the PNG to stdout.
const pipeName = "-"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "fldemo:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	def := defaultConfig()
	fs := flag.NewFlagSet("fldemo", flag.ContinueOnError)
	var (
		width      = fs.Int("width", def.Width, "logical width")
		height     = fs.Int("height", def.Height, "logical height")
		scale      = fs.Float64("scale", def.Scale, "device pixels per logical unit")
		output     = fs.String("out", def.Output, "output PNG file, - for stdout")
		antialias  = fs.Bool("aa", def.Antialias, "antialias filled shapes")
		direct     = fs.Bool("direct", def.DirectScaling, "let the backend scale images directly")
		verbose    = fs.Bool("v", def.Verbose, "log driver diagnostics")
		configPath = fs.String("config", "", "TOML configuration file")
		initConfig = fs.Bool("init", false, "write the current settings to -config and exit")
		watch      = fs.Bool("watch", false, "re-render whenever -config changes")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	fromFlags := func(base config) config {
		fs.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "width":
				base.Width = *width
			case "height":
				base.Height = *height
			case "scale":
				base.Scale = *scale
			case "out":
				base.Output = *output
			case "aa":
				base.Antialias = *antialias
			case "direct":
				base.DirectScaling = *direct
			case "v":
				base.Verbose = *verbose
			}
		})
		return base
	}
	load := func() (config, error) {
		conf := def
		if *configPath != "" {
			var err error
			if conf, err = readConfig(*configPath, def); err != nil {
				return def, err
			}
		}
		conf = fromFlags(conf)
		return conf, conf.validate()
	}

	if *initConfig {
		if *configPath == "" {
			return errors.New("-init needs -config")
		}
		return writeConfig(*configPath, fromFlags(def))
	}
	if *watch && *configPath == "" {
		return errors.New("-watch needs -config")
	}

	conf, err := load()
	if err != nil {
		return err
	}
	if err := render(conf); err != nil {
		return err
	}
	if !*watch {
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	slog.Info("watching config", "path", *configPath)
	return watchConfig(ctx, *configPath, func() {
		conf, err := load()
		if err == nil {
			err = render(conf)
		}
		if err != nil {
			slog.Error("re-render failed", "err", err)
		}
	}, func(err error) {
		slog.Error("watch", "err", err)
	})
}

// render draws the scene with conf and writes the PNG.
func render(conf config) error {
	if conf.Output == pipeName && term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("refusing to write PNG data to a terminal, redirect stdout or use -out")
	}
	configureLogger(conf.Verbose)

	var drawErr error
	s, err := surface.Open("offscreen",
		surface.Options{Width: conf.Width, Height: conf.Height, Scale: conf.Scale},
		fldraw.WithAntialias(conf.Antialias),
		fldraw.WithErrorHandler(func(err error) {
			drawErr = errors.Join(drawErr, err)
		}),
	)
	if err != nil {
		return err
	}
	off, ok := s.Backend.(*fldraw.Offscreen)
	if !ok {
		return fmt.Errorf("unexpected backend %T", s.Backend)
	}
	off.SetDirectScaling(conf.DirectScaling)

	drawScene(s.Canvas, conf.Width, conf.Height)
	if drawErr != nil {
		slog.Warn("drawing reported errors", "err", drawErr)
	}

	if conf.Output == pipeName {
		return png.Encode(os.Stdout, off.Image())
	}
	if err := off.SavePNG(conf.Output); err != nil {
		return err
	}
	st := s.Driver.ImageCache().Stats()
	slog.Info("rendered",
		"out", conf.Output,
		"size", fmt.Sprintf("%dx%d", off.Width(), off.Height()),
		"scale", conf.Scale,
		"cacheMisses", st.Misses)
	return nil
}

func configureLogger(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	if verbose {
		fldraw.SetLogger(logger)
	} else {
		fldraw.SetLogger(nil)
	}
}
