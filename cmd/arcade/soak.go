package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pocket-arcade/internal/core"
	"github.com/vovakirdan/pocket-arcade/internal/engine"
)

var (
	flagFrames     uint64
	flagSoakWidth  int
	flagSoakHeight int
	flagInputRate  float64
)

var soakCmd = &cobra.Command{
	Use:   "soak <game>",
	Short: "Run a game headless with random input",
	Long: `Run the specified game without a display for a number of frames,
feeding random keys and gestures from a second goroutine. Prints the last
frame and the score. Useful with --seed to reproduce a run.

Examples:
  arcade soak snake --frames 10000 --fps 1000
  arcade soak invaders --seed 7 --width 60 --height 20`,
	Args: cobra.ExactArgs(1),
	RunE: runSoak,
}

func init() {
	soakCmd.Flags().Uint64Var(&flagFrames, "frames", 3000, "Frames to run")
	soakCmd.Flags().IntVar(&flagSoakWidth, "width", 80, "Surface width in cells")
	soakCmd.Flags().IntVar(&flagSoakHeight, "height", 24, "Surface height in cells")
	soakCmd.Flags().Float64Var(&flagInputRate, "input-rate", 0.2, "Chance of an input event per frame")
}

var soakKeys = []string{core.KeyUp, core.KeyDown, core.KeyLeft, core.KeyRight, core.KeySpace, core.KeyEnter, "r"}

// randomEvents produces one step of input: a key, a whole tap or a short drag.
func randomEvents(rng *rand.Rand, width, height int) []core.Event {
	x := rng.Float64() * float64(width)
	y := rng.Float64() * float64(height)
	switch rng.Intn(3) {
	case 0:
		return []core.Event{core.KeyEvent(soakKeys[rng.Intn(len(soakKeys))])}
	case 1:
		return []core.Event{core.StartEvent(x, y), core.EndEvent(), core.ClickEvent()}
	default:
		dx := (rng.Float64() - 0.5) * float64(width) / 2
		dy := (rng.Float64() - 0.5) * float64(height) / 2
		return []core.Event{
			core.StartEvent(x, y),
			core.MoveEvent(x+dx/2, y+dy/2),
			core.MoveEvent(x+dx, y+dy),
			core.EndEvent(),
		}
	}
}

// feedRandom posts input to loop until it reaches frames, then stops it.
func feedRandom(ctx context.Context, loop *engine.Loop, rng *rand.Rand, frames uint64, fps int) {
	ticker := time.NewTicker(time.Second / time.Duration(max(fps, 1)))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		if loop.Frame() >= frames {
			loop.Stop()
			return
		}
		if rng.Float64() >= flagInputRate {
			continue
		}
		for _, ev := range randomEvents(rng, flagSoakWidth, flagSoakHeight) {
			loop.Post(ev)
		}
	}
}

func runSoak(cmd *cobra.Command, args []string) error {
	setup, err := newSessionSetup(args[0], false, true, false)
	if err != nil {
		return err
	}
	defer setup.Close()

	session := setup.session
	session.Resize(flagSoakWidth, flagSoakHeight)

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()

	rng := rand.New(rand.NewSource(flagSeed))
	go feedRandom(ctx, session.Loop(), rng, flagFrames, flagFPS)

	start := time.Now()
	if err := session.Loop().Run(ctx, flagFPS); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	st := session.State()
	setup.logger.Info("soak finished",
		"game", session.Game().ID(),
		"frames", session.Loop().Frame(),
		"score", st.Score,
		"phase", st.Phase,
		"elapsed", time.Since(start).Round(time.Millisecond),
	)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, session.Screen().String())
	fmt.Fprintf(out, "frames: %d  score: %d  phase: %s\n", session.Loop().Frame(), st.Score, st.Phase)
	return nil
}
