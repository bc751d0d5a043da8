package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/pocket-arcade/internal/platform/tui"
)

var flagTouch bool

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game in the terminal",
	Long: `Start playing the specified game in the terminal.

Controls:
  Arrows/WASD  - Steer, move or aim
  Space/Enter  - Fire or place
  Mouse        - Drag, swipe or tap
  R            - Restart (after game over)
  Ctrl+S       - Save a text screenshot
  ?            - Show all keys
  Q/Ctrl+C     - Quit

Examples:
  arcade play snake
  arcade play pong --seed 42
  arcade play stacker --touch
  arcade play invaders --config ./my-arcade.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagTouch, "touch", false, "Show the on-screen touch pad")
}

func runPlay(cmd *cobra.Command, args []string) error {
	setup, err := newSessionSetup(args[0], flagTouch, false, true)
	if err != nil {
		return err
	}
	defer setup.Close()

	// Start at the current terminal size; bubbletea confirms it with a
	// WindowSizeMsg once the program runs.
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		setup.session.Resize(w, h-tui.HelpRows)
	}

	return tui.Run(setup.session, flagFPS, setup.logger)
}
