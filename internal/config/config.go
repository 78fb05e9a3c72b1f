// Package config loads the optional configuration of the game binaries from a YAML file and from
// environment variables. Flags explicitly set in the command line take precedence over it.
package config

import (
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/janpfeifer/hexapawnGo/internal/state"
	"github.com/pkg/errors"
)

// Config holds all the configurations.
type Config struct {
	Rules   Rules   `yaml:"rules"`
	Players Players `yaml:"players"`
	UI      UI      `yaml:"ui"`
}

// Rules of the game.
type Rules struct {
	Size    int    `yaml:"size" env:"HEXAPAWN_SIZE" env-default:"3" env-description:"Size of the square board"`
	Variant string `yaml:"variant" env:"HEXAPAWN_VARIANT" env-default:"open" env-description:"Rules variant: open or hexapawn"`

	// MaxMoves after which the game is a draw. 0 or negative for no limit.
	MaxMoves int `yaml:"max-moves" env:"HEXAPAWN_MAX_MOVES" env-default:"0" env-description:"Max number of moves before a draw, 0 for no limit"`
}

// Players configuration.
type Players struct {
	First string `yaml:"first" env:"HEXAPAWN_FIRST" env-default:"human" env-description:"Who plays first: human, ai or random"`
	AI    string `yaml:"ai" env:"HEXAPAWN_AI" env-default:"minimax" env-description:"Configuration of the AI player"`
	AI2   string `yaml:"ai2" env:"HEXAPAWN_AI2" env-description:"Configuration of the second AI player, when watching AI vs AI"`
}

// UI configuration.
type UI struct {
	NoColor     bool `yaml:"no-color" env:"HEXAPAWN_NO_COLOR" env-description:"Disable colors in the terminal"`
	ClearScreen bool `yaml:"clear-screen" env:"HEXAPAWN_CLEAR_SCREEN" env-description:"Clear the screen before printing the board"`
}

// Load the configuration from the YAML file in path, and from the environment variables (they take
// precedence). If path is empty, only the environment variables (and the defaults) are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path == "" {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, errors.Wrapf(err, "unable to read configuration from environment")
		}
		return cfg, nil
	}
	if err := cleanenv.ReadConfig(path, cfg); err != nil {
		return nil, errors.Wrapf(err, "unable to load config file %q", path)
	}
	return cfg, nil
}

// Description of the environment variables, to be included in the usage of the binaries.
func Description() string {
	header := "Environment variables:"
	description, err := cleanenv.GetDescription(&Config{}, &header)
	if err != nil {
		return ""
	}
	return description
}

// StateRules converts the configured rules to state.Rules, and validates them.
func (r Rules) StateRules() (state.Rules, error) {
	variant, err := state.ParseVariant(r.Variant)
	if err != nil {
		return state.Rules{}, err
	}
	rules := state.Rules{
		Size:     int8(r.Size),
		Variant:  variant,
		MaxMoves: r.MaxMoves,
	}
	if r.Size < state.MinSize || r.Size > state.MaxSize {
		// Checked before the conversion to int8 could wrap around.
		return state.Rules{}, errors.Wrapf(state.ErrInvalidRules, "board size %d out of range [%d, %d]", r.Size, state.MinSize, state.MaxSize)
	}
	if rules.MaxMoves < 0 {
		rules.MaxMoves = 0
	}
	if err := rules.Validate(); err != nil {
		return state.Rules{}, err
	}
	return rules, nil
}
