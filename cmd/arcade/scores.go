package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/pocket-arcade/internal/config"
	"github.com/vovakirdan/pocket-arcade/internal/storage"
)

var (
	flagLimit int
	flagRunID string
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores",
	Long: `Display the top scores for a game, or a summary of every game when no
game is given.

Examples:
  arcade scores
  arcade scores snake
  arcade scores stacker --limit 20
  arcade scores --run 0b4f1c2e-...
  arcade scores pong --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().StringVar(&flagRunID, "run", "", "Show a single run by id")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every stored run of the game")
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

const dateFormat = "2006-01-02 15:04"

func runScores(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	switch {
	case flagRunID != "":
		return showRun(out, store, flagRunID)
	case len(args) == 0:
		return showSummary(out, store)
	}

	gameID := args[0]
	game, err := createGame(gameID, config.Default())
	if err != nil {
		return err
	}

	if flagClear {
		n, err := store.Clear(gameID)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Removed %d %s runs.\n", n, game.Title())
		return nil
	}

	scores, err := store.TopScores(gameID, flagLimit)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, titleStyle.Render("High Scores - "+game.Title()))
	fmt.Fprintln(out)

	if len(scores) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Play 'arcade play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Fprintln(out, scoreTable(scores))

	if st, err := store.Stats(gameID); err == nil {
		fmt.Fprintln(out)
		fmt.Fprintln(out, dimStyle.Render(fmt.Sprintf("Best: %d  Runs: %d  Average: %.1f",
			st.Best, st.Runs, st.Average)))
	}
	return nil
}

func showRun(out io.Writer, store *storage.Store, runID string) error {
	e, found, err := store.Lookup(runID)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("no run with id %s", runID)
	}
	fmt.Fprintln(out, titleStyle.Render("Run "+e.ID))
	fmt.Fprintf(out, "  game:   %s\n  score:  %d\n  frames: %d\n  seed:   %d\n  date:   %s\n",
		e.GameID, e.Score, e.Frames, e.Seed, e.CreatedAt.Format(dateFormat))
	return nil
}

func showSummary(out io.Writer, store *storage.Store) error {
	all, err := store.AllStats()
	if err != nil {
		return err
	}
	fmt.Fprintln(out, titleStyle.Render("Pocket Arcade - all games"))
	fmt.Fprintln(out)
	if len(all) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		return nil
	}

	rows := make([][]string, 0, len(all))
	for _, st := range all {
		rows = append(rows, []string{
			st.GameID,
			strconv.Itoa(st.Runs),
			strconv.Itoa(st.Best),
			strconv.FormatFloat(st.Average, 'f', 1, 64),
			st.LastPlayed.Format(dateFormat),
		})
	}
	fmt.Fprintln(out, styledTable("Game", "Runs", "Best", "Average", "Last played").Rows(rows...))
	return nil
}

func scoreTable(scores []storage.Entry) *table.Table {
	rows := make([][]string, 0, len(scores))
	for i, e := range scores {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(e.Score),
			strconv.FormatUint(e.Frames, 10),
			e.CreatedAt.Format(dateFormat),
			shortID(e.ID),
		})
	}
	return styledTable("Rank", "Score", "Frames", "Date", "Run").Rows(rows...)
}

func styledTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

// shortID trims a run id to its first group for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
