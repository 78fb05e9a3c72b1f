// Package players provides a factory of AI players from configuration strings.
// It also allows player providers to register themselves.
package players

import (
	"strings"

	"github.com/janpfeifer/hexapawnGo/internal/generics"
	"github.com/janpfeifer/hexapawnGo/internal/parameters"
	. "github.com/janpfeifer/hexapawnGo/internal/state"
	"github.com/pkg/errors"
)

// Player is anything that is able to play the game.
type Player interface {
	// Play returns the move chosen, the next state (after the move is taken), the expected score of
	// the move and optionally the scores of each of the legal moves.
	Play(s *State) (move Move, next *State, score float32, movesScores []float32)

	// Finalize is called at the end of a match.
	Finalize()
}

// Module must implement NewPlayer called at the start of a match.
// matchId is unique among matches, but the Module.NewPlayer may be called twice for the same matchId, for different
// players, when an AI plays against itself.
// matchName is used for logging and debugging.
//
// The module must remove from params the parameters it uses: left over parameters are reported as unknown.
type Module interface {
	NewPlayer(matchId uint64, matchName string, playerNum PlayerNum, params parameters.Params) (Player, error)
}

// moduleRegistration is a reference to the module and its name.
type moduleRegistration struct {
	Module
	Name string
}

var (
	// Registered external modules.
	keywordToModules = make(map[string]moduleRegistration)
)

// RegisterModule so it can be used by any of the front-ends to play.
func RegisterModule(name string, module Module) {
	keywordToModules[name] = moduleRegistration{Name: name, Module: module}
}

// RegisteredModules returns the names of the registered modules, sorted.
func RegisteredModules() []string {
	return generics.KeysSlice(keywordToModules)
}

var (
	// DefaultPlayerConfig is used if no configuration was given to the AI. The value may be changed by the
	// UI built.
	DefaultPlayerConfig = "minimax"
)

// New creates a new AI player given the configuration string.
//
// Args:
//
//	config: the AI name optionally followed by a colon (":") and a comma-separated list of parameters with optional
//		values associated, e.g.: "minimax:max_depth=4,randomness=0.1".
//		If empty, the default is given by DefaultPlayerConfig.
//
// More details on the config are dependent on the module used.
func New(matchId uint64, matchName string, playerNum PlayerNum, config string) (Player, error) {
	if config == "" {
		config = DefaultPlayerConfig
	}

	// Find moduleName.
	moduleName := config
	config = ""
	if moduleSplit := strings.Index(moduleName, ":"); moduleSplit != -1 {
		config = moduleName[moduleSplit+1:]
		moduleName = moduleName[:moduleSplit]
	}
	module, ok := keywordToModules[moduleName]
	if !ok {
		if len(keywordToModules) == 0 {
			return nil, errors.Errorf("unknown AI player %q: no AI modules registered, perhaps you need to "+
				"import _ \"github.com/janpfeifer/hexapawnGo/internal/players/default\" in your binary?", moduleName)
		}
		return nil, errors.Errorf("unknown AI player %q, registered AI players are %q", moduleName, RegisteredModules())
	}

	params := parameters.NewFromConfigString(config)
	player, err := module.NewPlayer(matchId, matchName, playerNum, params)
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to create AI player %q", moduleName)
	}

	// Check that all parameters were processed.
	if len(params) > 0 {
		player.Finalize()
		return nil, errors.Errorf("unknown parameters \"%s\" passed to AI player %q",
			strings.Join(generics.KeysSlice(params), "\", \""), moduleName)
	}
	return player, nil
}
