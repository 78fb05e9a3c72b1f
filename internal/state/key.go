package state

import (
	"encoding/binary"
	"hash/fnv"

	"k8s.io/klog/v2"
)

// Key identifies a State for the purpose of search: two states with the same Key have the same
// valid moves and the same outcome. It is comparable and can be used as a map key.
//
// The move number is only part of the key if the rules have a moves limit, since otherwise it
// doesn't affect the outcome.
type Key struct {
	Board      Board
	NextPlayer PlayerNum
	MoveNumber int
	Rules      Rules
}

// Key returns the State's Key.
func (s *State) Key() Key {
	key := Key{
		Board:      s.Board,
		NextPlayer: s.NextPlayer,
		Rules:      s.Rules,
	}
	if s.Rules.MaxMoves > 0 {
		key.MoveNumber = s.MoveNumber
	}
	return key
}

// Hash of the board position and player to move. Usually unique, but not guaranteed. Used to identify positions in the search logs.
func (s *State) Hash() uint64 {
	hasher := fnv.New64a()
	cells := s.Board.cells[:int(s.Board.size)*int(s.Board.size)]
	if err := binary.Write(hasher, binary.LittleEndian, s.NextPlayer); err != nil {
		klog.Fatalf("Failed to write to hasher: %v", err)
	}
	if err := binary.Write(hasher, binary.LittleEndian, cells); err != nil {
		klog.Fatalf("Failed to write to hasher: %v", err)
	}
	return hasher.Sum64()
}
