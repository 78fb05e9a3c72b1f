// Package features implements a set of board features, used by the scorers to evaluate positions that
// are not finished.
//
// All features are calculated from the perspective of the player to move (State.NextPlayer): each
// feature has an "Opponent" counterpart.
package features

import (
	"fmt"
	"log"
	"strings"

	. "github.com/janpfeifer/hexapawnGo/internal/state"
)

// BoardId represent an enum of board features.
type BoardId uint8

// FeatureSetter is the signature of a feature setter. f is the slice where to store the
// results.
type FeatureSetter func(s *State, def *BoardSpec, f []float32)

const (
	// IdNumPieces is the number of pieces of the player on the board, divided by the board size.
	IdNumPieces BoardId = iota
	IdOpponentNumPieces

	// IdAdvancement is the total number of rows advanced by the player's pieces from its home row,
	// normalized by size*(size-1).
	IdAdvancement
	IdOpponentAdvancement

	// IdMostAdvanced is the number of rows advanced by the player's most advanced piece, normalized by
	// size-1. The far row is never reached by a non-finished game, so this is always < 1.
	IdMostAdvanced
	IdOpponentMostAdvanced

	// IdNumPawnMoves is the number of pawn moves (one row forward, straight or capturing) available to
	// the player, normalized by 3*size.
	IdNumPawnMoves
	IdOpponentNumPawnMoves

	// IdMovesToDraw represents the number of moves till a draw due to running out of moves, capped at 10
	// and divided by 10. It is 1 if there is no moves limit.
	IdMovesToDraw

	// IdNumFeatureIds defined -- this must always be the last enum.
	IdNumFeatureIds
)

// BoardSpec includes the board feature name, dimension and index in the concatenation of features.
type BoardSpec struct {
	Id   BoardId
	Name string
	Dim  int

	// VecIndex refers to the index in the concatenated feature vector.
	VecIndex int
	Setter   FeatureSetter
}

var (
	// BoardSpecs enumerates in order the features extracted by FeatureVector.
	// The VecIndex attribute is properly set during the package initialization.
	// The  "Opp" prefix refers to the opponent version of the feature.
	BoardSpecs = [IdNumFeatureIds]BoardSpec{
		{IdNumPieces, "NumPieces", 1, 0, fNumPieces},
		{IdOpponentNumPieces, "OppNumPieces", 1, 0, fNumPieces},
		{IdAdvancement, "Advancement", 1, 0, fAdvancement},
		{IdOpponentAdvancement, "OppAdvancement", 1, 0, fAdvancement},
		{IdMostAdvanced, "MostAdvanced", 1, 0, fMostAdvanced},
		{IdOpponentMostAdvanced, "OppMostAdvanced", 1, 0, fMostAdvanced},
		{IdNumPawnMoves, "NumPawnMoves", 1, 0, fNumPawnMoves},
		{IdOpponentNumPawnMoves, "OppNumPawnMoves", 1, 0, fNumPawnMoves},
		{IdMovesToDraw, "MovesToDraw", 1, 0, fMovesToDraw},
	}

	// BoardFeaturesDim is the dimension of all board features concatenated, set during package
	// initialization.
	BoardFeaturesDim int
)

func init() {
	// Updates the indices of BoardSpecs, and sets BoardFeaturesDim.
	BoardFeaturesDim = 0
	for ii := range BoardSpecs {
		if BoardSpecs[ii].Id != BoardId(ii) {
			log.Fatalf("features.BoardSpecs index %d for %s doesn't match constant.",
				ii, BoardSpecs[ii].Name)
		}
		BoardSpecs[ii].VecIndex = BoardFeaturesDim
		BoardFeaturesDim += BoardSpecs[ii].Dim
	}
}

// FeatureVector calculates the feature vector, of length BoardFeaturesDim, for the given state.
func FeatureVector(s *State) (f []float32) {
	f = make([]float32, BoardFeaturesDim)
	for ii := range BoardSpecs {
		featDef := &BoardSpecs[ii]
		featDef.Setter(s, featDef, f)
	}
	return
}

// Describe returns a multi-line description of the features, one per line.
func Describe(f []float32) string {
	var sb strings.Builder
	for ii := range BoardSpecs {
		def := &BoardSpecs[ii]
		if def.Dim == 1 {
			_, _ = fmt.Fprintf(&sb, "\t%s: %.3f\n", def.Name, f[def.VecIndex])
		} else {
			_, _ = fmt.Fprintf(&sb, "\t%s: %v\n", def.Name, f[def.VecIndex:def.VecIndex+def.Dim])
		}
	}
	return sb.String()
}

// playerFor returns the player the feature refers to: odd ids are the "Opponent" version.
func playerFor(s *State, def *BoardSpec) PlayerNum {
	if def.Id < IdMovesToDraw && def.Id%2 == 1 {
		return s.NextPlayer.Other()
	}
	return s.NextPlayer
}

// rowsAdvanced returns how many rows forward the point is from the player's home row.
func rowsAdvanced(rules Rules, player PlayerNum, p Point) int {
	return int((p.Row - rules.HomeRow(player)) * rules.Forward(player))
}

func fNumPieces(s *State, def *BoardSpec, f []float32) {
	player := playerFor(s, def)
	f[def.VecIndex] = float32(s.Board.Count(player)) / float32(s.Rules.Size)
}

func fAdvancement(s *State, def *BoardSpec, f []float32) {
	player := playerFor(s, def)
	total := 0
	for p := range s.Board.Points() {
		if owner, ok := s.Board.Get(p); ok && owner == player {
			total += rowsAdvanced(s.Rules, player, p)
		}
	}
	size := int(s.Rules.Size)
	f[def.VecIndex] = float32(total) / float32(size*(size-1))
}

func fMostAdvanced(s *State, def *BoardSpec, f []float32) {
	player := playerFor(s, def)
	most := 0
	for p := range s.Board.Points() {
		if owner, ok := s.Board.Get(p); ok && owner == player {
			most = max(most, rowsAdvanced(s.Rules, player, p))
		}
	}
	f[def.VecIndex] = float32(most) / float32(s.Rules.Size-1)
}

func fNumPawnMoves(s *State, def *BoardSpec, f []float32) {
	player := playerFor(s, def)
	count := 0
	for range s.PawnMoves(player) {
		count++
	}
	f[def.VecIndex] = float32(count) / float32(3*int(s.Rules.Size))
}

func fMovesToDraw(s *State, def *BoardSpec, f []float32) {
	idx := def.VecIndex
	if s.Rules.MaxMoves <= 0 {
		f[idx] = 1
		return
	}
	f[idx] = float32(min(s.Rules.MaxMoves-s.MoveNumber+1, 10)) / 10
}
