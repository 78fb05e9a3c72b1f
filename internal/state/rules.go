package state

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Variant of the rules used to decide which moves are valid.
type Variant uint8

const (
	// VariantOpen accepts any move between two points of the grid, as long as the game is not over.
	// Players can move any piece (even the opponent's, or from an empty point), to any distance.
	VariantOpen Variant = iota

	// VariantHexapawn uses pawn rules: a player moves one of its own pieces one row forward,
	// straight into an empty point, or diagonally capturing an opponent's piece.
	// A player that can't move loses.
	VariantHexapawn

	numVariants
)

var variantNames = [numVariants]string{"open", "hexapawn"}

func (v Variant) String() string {
	if v >= numVariants {
		return fmt.Sprintf("Variant(%d)", v)
	}
	return variantNames[v]
}

// ParseVariant converts a variant name (case-insensitive) to a Variant.
func ParseVariant(name string) (Variant, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for v, variantName := range variantNames {
		if name == variantName {
			return Variant(v), nil
		}
	}
	return 0, errors.Wrapf(ErrInvalidRules, "unknown rules variant %q, valid values are %q", name, variantNames)
}

// Rules is the immutable configuration of a game. It is carried by every State.
type Rules struct {
	// Size of the square board, from MinSize to MaxSize.
	Size int8

	// Variant of the rules used to validate moves.
	Variant Variant

	// MaxMoves (plies) after which the game is a draw. If <= 0 there is no limit.
	MaxMoves int
}

// DefaultRules returns the classic 3x3 board, with the open variant and no moves limit.
func DefaultRules() Rules {
	return Rules{
		Size:     DefaultSize,
		Variant:  VariantOpen,
		MaxMoves: DefaultMaxMoves,
	}
}

// Validate returns an error wrapping ErrInvalidRules if the rules can't be used.
func (r Rules) Validate() error {
	if r.Size < MinSize || r.Size > MaxSize {
		return errors.Wrapf(ErrInvalidRules, "board size %d out of range [%d, %d]", r.Size, MinSize, MaxSize)
	}
	if r.Variant >= numVariants {
		return errors.Wrapf(ErrInvalidRules, "unknown variant %s", r.Variant)
	}
	return nil
}

// HomeRow where the player's pieces start: the last row for the first player, and row 1 for the second.
func (r Rules) HomeRow(player PlayerNum) int8 {
	if player == PlayerFirst {
		return r.Size
	}
	return 1
}

// FarRow is the opponent's home row: the player wins by reaching it.
func (r Rules) FarRow(player PlayerNum) int8 {
	return r.HomeRow(player.Other())
}

// Forward returns the row increment of a move forward for the player.
func (r Rules) Forward(player PlayerNum) int8 {
	if player == PlayerFirst {
		return -1
	}
	return 1
}

func (r Rules) String() string {
	maxMoves := "no move limit"
	if r.MaxMoves > 0 {
		maxMoves = fmt.Sprintf("max %d moves", r.MaxMoves)
	}
	return fmt.Sprintf("%dx%d %s, %s", r.Size, r.Size, r.Variant, maxMoves)
}
