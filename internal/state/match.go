package state

import (
	"encoding/gob"
	"os"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Save versions: bump when new fields are added to the saved matches.
const (
	MatchRulesAndMoves = iota + 1
)

// Encoder is any type of encoder -- implemented by gob.Encoder, json.Encoder
type Encoder interface {
	// Encode v or return an error.
	Encode(v any) error
}

// Decoder is any type of decoder -- implemented by gob.Decoder, json.Decoder
type Decoder interface {
	// Decode into v or return an error.
	Decode(v any) error
}

// EncodeMatch will "save" (encode) the rules and the moves of a match, for future reconstruction
// with LoadMatch and Replay.
func EncodeMatch(enc Encoder, rules Rules, moves []Move) error {
	if err := enc.Encode(MatchRulesAndMoves); err != nil {
		return errors.Wrapf(err, "failed to encode match's file version")
	}
	if err := enc.Encode(rules); err != nil {
		return errors.Wrapf(err, "failed to encode match's rules")
	}
	if err := enc.Encode(moves); err != nil {
		return errors.Wrapf(err, "failed to encode match's %d moves", len(moves))
	}
	return nil
}

// LoadMatch restores the rules and moves of a match saved with EncodeMatch.
func LoadMatch(dec Decoder) (rules Rules, moves []Move, err error) {
	var version int
	if err = dec.Decode(&version); err != nil {
		err = errors.Wrapf(err, "failed to decode match's file version")
		return
	}
	if version != MatchRulesAndMoves {
		err = errors.Errorf("unknown match file version %d", version)
		return
	}
	if err = dec.Decode(&rules); err != nil {
		err = errors.Wrapf(err, "failed to decode match's rules")
		return
	}
	if err = rules.Validate(); err != nil {
		err = errors.WithMessagef(err, "match loaded with invalid rules")
		return
	}
	if err = dec.Decode(&moves); err != nil {
		err = errors.Wrapf(err, "failed to decode match's moves")
		return
	}
	klog.V(2).Infof("Loaded match with rules %s and %d moves", rules, len(moves))
	return
}

// SaveMatch writes the rules and moves of a match to fileName, gob encoded. See LoadMatchFile.
func SaveMatch(fileName string, rules Rules, moves []Move) error {
	f, err := os.Create(fileName)
	if err != nil {
		return errors.Wrapf(err, "failed to create match file %q", fileName)
	}
	if err = EncodeMatch(gob.NewEncoder(f), rules, moves); err != nil {
		_ = f.Close()
		return errors.WithMessagef(err, "saving to %q", fileName)
	}
	return errors.Wrapf(f.Close(), "failed to close match file %q", fileName)
}

// LoadMatchFile reads a match saved with SaveMatch.
func LoadMatchFile(fileName string) (rules Rules, moves []Move, err error) {
	f, err := os.Open(fileName)
	if err != nil {
		err = errors.Wrapf(err, "failed to open match file %q", fileName)
		return
	}
	defer func() { _ = f.Close() }()
	rules, moves, err = LoadMatch(gob.NewDecoder(f))
	if err != nil {
		err = errors.WithMessagef(err, "loading %q", fileName)
	}
	return
}

// Replay the moves from a new game, and returns all the states of the match: one more than
// the number of moves.
//
// It returns an error wrapping ErrIllegalMove (or ErrGameOver) if any of the moves can't be played.
func Replay(rules Rules, moves []Move) ([]*State, error) {
	states := make([]*State, 0, len(moves)+1)
	s := NewGame(rules)
	states = append(states, s)
	for ii, move := range moves {
		next, err := s.CheckedAct(move)
		if err != nil {
			return states, errors.WithMessagef(err, "replaying move %d of %d", ii+1, len(moves))
		}
		s = next
		states = append(states, s)
	}
	return states, nil
}
