package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/pocket-arcade/internal/platform/gfx"
)

var (
	flagCell   int
	flagWidth  int
	flagHeight int
)

var windowCmd = &cobra.Command{
	Use:   "window <game>",
	Short: "Play a game in a graphical window",
	Long: `Open the specified game in a resizable window. The touch pad is always
shown, so the window works on touch screens without a keyboard.

Examples:
  arcade window snake
  arcade window stacker --cell 24 --width 30 --height 40`,
	Args: cobra.ExactArgs(1),
	RunE: runWindow,
}

func init() {
	windowCmd.Flags().IntVar(&flagCell, "cell", gfx.DefaultCell, "Pixel size of one grid cell")
	windowCmd.Flags().IntVar(&flagWidth, "width", 60, "Window width in cells")
	windowCmd.Flags().IntVar(&flagHeight, "height", 30, "Window height in cells")
}

func runWindow(cmd *cobra.Command, args []string) error {
	setup, err := newSessionSetup(args[0], true, true, true)
	if err != nil {
		return err
	}
	defer setup.Close()

	return gfx.Run(setup.session, gfx.Options{
		Cell:   flagCell,
		Width:  flagWidth,
		Height: flagHeight,
		FPS:    flagFPS,
	})
}
