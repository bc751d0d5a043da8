// arcade plays small arcade games in the terminal or in a window.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play <game>       - Play a game in the terminal
//	arcade window <game>     - Play a game in a graphical window
//	arcade soak <game>       - Run a game headless with random input
//	arcade scores <game>     - Show high scores for a game
//	arcade config            - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.arcade/scores.db)
//	--config <path>     - Read tuning from a YAML file
//	--sound             - Play synthesized sound cues
//	--log-level <lvl>   - debug, info, warn or error
//	--log-file <path>   - Write logs to a file while a game owns the screen
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/pocket-arcade/internal/audio"
	"github.com/vovakirdan/pocket-arcade/internal/config"
	"github.com/vovakirdan/pocket-arcade/internal/core"
	"github.com/vovakirdan/pocket-arcade/internal/platform"
	"github.com/vovakirdan/pocket-arcade/internal/registry"
	"github.com/vovakirdan/pocket-arcade/internal/storage"

	// Import games to register them
	_ "github.com/vovakirdan/pocket-arcade/internal/games/invaders"
	_ "github.com/vovakirdan/pocket-arcade/internal/games/pong"
	_ "github.com/vovakirdan/pocket-arcade/internal/games/snake"
	_ "github.com/vovakirdan/pocket-arcade/internal/games/stacker"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagSound    bool
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Pocket Arcade - small games for the terminal and the window",
	Long: `Pocket Arcade runs Snake, Pong, Cosmic Invaders and Zen Stacker on one
frame loop, in the terminal or in a graphical window with touch support.

Available commands:
  list     - Show all available games
  play     - Play a game in the terminal
  window   - Play a game in a window
  soak     - Run a game headless with random input
  scores   - View high scores
  config   - Print the effective configuration

Examples:
  arcade list
  arcade play snake
  arcade play stacker --touch
  arcade window invaders --cell 20
  arcade soak pong --frames 5000 --seed 7
  arcade scores snake`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to arcade YAML config")
	rootCmd.PersistentFlags().BoolVar(&flagSound, "sound", false, "Play sound cues")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file used while a game owns the screen")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(soakCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the process logger. Full-screen hosts pass
// toScreen=false: logs then go to --log-file or nowhere.
func newLogger(toScreen bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	var w io.Writer = io.Discard
	closeFn := func() {}
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	case toScreen:
		w = os.Stderr
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          "arcade",
	})
	return logger, closeFn, nil
}

// loadConfig reads --config or the default search path.
func loadConfig(logger *log.Logger) (config.Config, error) {
	cfg, source, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	logger.Debug("config loaded", "source", source)
	return cfg, nil
}

// createGame selects a built-in game by its id.
func createGame(id string, cfg config.Config) (registry.Game, error) {
	kind, err := registry.ParseKind(id)
	if err != nil {
		return nil, fmt.Errorf("%w\nRun 'arcade list' to see available games", err)
	}
	return registry.CreateKind(kind, cfg)
}

// sessionSetup is what the play, window and soak commands share.
type sessionSetup struct {
	session *platform.Session
	store   *storage.Store
	synth   *audio.Synth
	logger  *log.Logger
	closeFn func()
}

// Close stops the session and releases sound, storage and the log file.
func (s *sessionSetup) Close() {
	s.session.Stop()
	s.closeAll()
}

// newSessionSetup creates the game and everything around it. Storage and
// sound are optional: failures are logged and play continues.
func newSessionSetup(gameID string, touch, toScreen, persist bool) (*sessionSetup, error) {
	logger, closeFn, err := newLogger(toScreen)
	if err != nil {
		return nil, err
	}

	cfg, err := loadConfig(logger)
	if err != nil {
		closeFn()
		return nil, err
	}

	game, err := createGame(gameID, cfg)
	if err != nil {
		closeFn()
		return nil, err
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	runtime := core.RuntimeConfig{
		TickRate: flagFPS,
		Seed:     seed,
	}

	setup := &sessionSetup{logger: logger, closeFn: closeFn}

	if flagSound {
		synth := audio.New(1)
		if err := synth.Init(); err != nil {
			logger.Warn("sound disabled", "err", err)
		} else {
			setup.synth = synth
			runtime.OnSound = synth.Func()
		}
	}

	opts := platform.Options{
		Game:    game,
		Runtime: runtime,
		Touch:   touch,
		Repeat:  cfg.Controls.Repeat,
		Logger:  logger,
	}
	if persist {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			logger.Warn("scores will not be saved", "err", err)
		} else {
			setup.store = store
			opts.Store = store
		}
	}

	session, err := platform.NewSession(opts)
	if err != nil {
		setup.closeAll()
		return nil, err
	}
	setup.session = session
	return setup, nil
}

func (s *sessionSetup) closeAll() {
	if s.synth != nil {
		s.synth.Close()
	}
	if s.store != nil {
		s.store.Close()
	}
	s.closeFn()
}
