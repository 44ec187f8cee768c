package main

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nanobrick/herofx"
	"github.com/nanobrick/herofx/termfx"
)

var (
	headlessWidth  int
	headlessHeight int
	headlessFrames int
	headlessOut    string
)

var headlessCmd = &cobra.Command{
	Use:   "headless",
	Short: "Render frames offscreen and save the last one as PNG",
	Long: `Runs the scene for a fixed number of frames at 60 frames per second of
simulated time with the software rasterizer, then writes the final frame.

Example:
  herofx headless --frames 600 --out hero.png`,
	RunE: runHeadless,
}

var configCmd = &cobra.Command{
	Use:   "config [path]",
	Short: "Write the default config to a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := herofx.DefaultConfig().Save(args[0]); err != nil {
			return err
		}
		logger.Info("wrote default config", zap.String("path", args[0]))
		return nil
	},
}

func init() {
	headlessCmd.Flags().IntVar(&headlessWidth, "width", 800, "Image width in pixels")
	headlessCmd.Flags().IntVar(&headlessHeight, "height", 600, "Image height in pixels")
	headlessCmd.Flags().IntVar(&headlessFrames, "frames", 300, "Frames to simulate")
	headlessCmd.Flags().StringVarP(&headlessOut, "out", "o", "hero.png", "Output PNG path")
}

func runHeadless(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	opts, err := animatorOptions(ctx)
	if err != nil {
		return err
	}
	raster := termfx.NewRasterizer(nil, headlessWidth, headlessHeight)
	opts = append(opts, herofx.WithLogger(logger))
	anim, err := herofx.New(herofx.Rect{Width: float64(headlessWidth), Height: float64(headlessHeight)}, raster, opts...)
	if err != nil {
		return err
	}
	defer anim.Close()

	script, err := loadScript()
	if err != nil {
		return err
	}
	if script != nil {
		anim.SetTestRunner(script)
	}

	for i := 0; i < headlessFrames; i++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		anim.Frame(float64(i) / 60)
	}

	stats := anim.Scene().Stats()
	logger.Info("headless run complete",
		zap.Int("frames", headlessFrames),
		zap.Int("commands", stats.Commands),
		zap.Duration("compile", stats.CompileTime),
		zap.Int("counter", anim.Counter().Value()),
	)
	return writeFrame(headlessOut, raster.Framebuffer())
}

func writeFrame(path string, fb *termfx.Framebuffer) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, fb.Image()); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
