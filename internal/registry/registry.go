// Package registry provides a global registry for game factories.
// Games register themselves in init() functions, allowing the hosts
// to discover and instantiate games without hardcoded dependencies.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/pocket-arcade/internal/config"
	"github.com/vovakirdan/pocket-arcade/internal/core"
	"github.com/vovakirdan/pocket-arcade/internal/engine"
)

// ErrUnknownGame is returned for ids and kinds nothing registered.
var ErrUnknownGame = errors.New("registry: unknown game")

// Game is the capability every arcade game implements.
// Games contain pure logic with no host dependencies (no Bubble Tea, no Ebiten).
// The host handles input normalization, timing, and rendering.
type Game interface {
	engine.Game

	// ID returns a unique identifier for this game (e.g., "snake").
	// Used for CLI commands and score storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset initializes the game explicitly. The host calls it before the
	// first tick; games call it themselves on restart.
	Reset(cfg core.RuntimeConfig)

	// Restart resets a finished game. It is a no-op while playing and
	// reports whether a restart happened.
	Restart() bool

	// State returns the current score and phase.
	State() core.GameState
}

// Kind selects one of the built-in games.
type Kind int

const (
	KindSnake Kind = iota
	KindPong
	KindInvaders
	KindStacker
)

// Kinds lists every built-in game in display order.
var Kinds = []Kind{KindSnake, KindPong, KindInvaders, KindStacker}

// ID returns the registry id for the kind.
func (k Kind) ID() string {
	switch k {
	case KindSnake:
		return "snake"
	case KindPong:
		return "pong"
	case KindInvaders:
		return "invaders"
	case KindStacker:
		return "stacker"
	default:
		return ""
	}
}

func (k Kind) String() string {
	if id := k.ID(); id != "" {
		return id
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps an id back to its kind.
func ParseKind(id string) (Kind, error) {
	for _, k := range Kinds {
		if k.ID() == id {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownGame, id)
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a new instance of a game tuned by cfg.
type Factory func(cfg config.Config) Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a game factory to the registry.
// Typically called from a game's init() function.
// Panics if a game with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f

	// Get title by creating a temporary instance
	titles[id] = f(config.Default()).Title()
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new game by its ID.
func Create(id string, cfg config.Config) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGame, id)
	}

	return f(cfg), nil
}

// CreateKind instantiates a built-in game by kind.
func CreateKind(k Kind, cfg config.Config) (Game, error) {
	if k.ID() == "" {
		return nil, fmt.Errorf("%w %v", ErrUnknownGame, k)
	}
	return Create(k.ID(), cfg)
}
