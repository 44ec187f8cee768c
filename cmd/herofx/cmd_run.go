package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/nanobrick/herofx/ebitenfx"
	"github.com/nanobrick/herofx/termfx"
)

var (
	windowWidth   int
	windowHeight  int
	showFPS       bool
	screenshotDir string
	termFPS       int
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Show the scene in a desktop window",
	Long: `Opens a resizable window and animates the scene. Move the mouse to
steer the camera; press Escape to quit.`,
	RunE: runWindow,
}

var termCmd = &cobra.Command{
	Use:   "term",
	Short: "Show the scene in the terminal",
	Long: `Renders the scene with two pixels per cell in a truecolor terminal.
Move the mouse to steer the camera; press q or Escape to quit.`,
	RunE: runTerm,
}

func init() {
	windowCmd.Flags().IntVar(&windowWidth, "width", 800, "Window width in pixels")
	windowCmd.Flags().IntVar(&windowHeight, "height", 600, "Window height in pixels")
	windowCmd.Flags().BoolVar(&showFPS, "fps", false, "Show frame rate")
	windowCmd.Flags().StringVar(&screenshotDir, "screenshots", "screenshots", "Directory for script screenshots")

	termCmd.Flags().IntVar(&termFPS, "fps", 30, "Target frame rate")
}

func runWindow(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	opts, err := animatorOptions(ctx)
	if err != nil {
		return err
	}
	script, err := loadScript()
	if err != nil {
		return err
	}
	return ebitenfx.Run(ebitenfx.RunConfig{
		Title:         "herofx",
		Width:         windowWidth,
		Height:        windowHeight,
		ShowFPS:       showFPS,
		ScreenshotDir: screenshotDir,
		Script:        script,
		Logger:        logger,
	}, opts...)
}

func runTerm(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	opts, err := animatorOptions(ctx)
	if err != nil {
		return err
	}
	script, err := loadScript()
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	return termfx.Run(ctx, screen, termfx.RunConfig{
		FPS:         termFPS,
		ShowCounter: true,
		Script:      script,
		Logger:      logger,
	}, opts...)
}
