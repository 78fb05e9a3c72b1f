// Package state holds the game state: players, points, the board, moves and the rules
// that govern the transitions from one state to the next.
package state

import (
	"fmt"
	"iter"
	"strings"

	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
)

const (
	// NumPlayers is always 2.
	NumPlayers = 2

	// MinSize and MaxSize of the square board.
	MinSize = 3
	MaxSize = 8

	// MaxCells is the storage reserved by every Board, independent of its size.
	MaxCells = MaxSize * MaxSize

	// DefaultSize is the classic 3x3 board.
	DefaultSize = 3

	// DefaultMaxMoves after which the game is considered a draw: 0 means no limit, and a game only
	// ends when a player reaches its far row (or is blocked, with VariantHexapawn).
	DefaultMaxMoves = 0
)

// PlayerNum is either 0 or 1, corresponding to the first player to move or the second player to move.
type PlayerNum uint8

const (
	PlayerFirst PlayerNum = iota
	PlayerSecond

	// PlayerInvalid represents "no player": an empty cell, or no winner.
	PlayerInvalid
)

//go:generate go tool enumer -type=PlayerNum -trimprefix=Player -values -text -json -yaml state.go

// PlayerSymbols used when displaying the pieces of each player. PlayerInvalid is a blank.
var PlayerSymbols = [NumPlayers + 1]string{"X", "O", " "}

// Other returns the opponent. PlayerInvalid has no opponent, and returns itself.
func (p PlayerNum) Other() PlayerNum {
	if p >= PlayerInvalid {
		return PlayerInvalid
	}
	return 1 - p
}

// Symbol used to display the player's pieces.
func (p PlayerNum) Symbol() string {
	if p > PlayerInvalid {
		return "?"
	}
	return PlayerSymbols[p]
}

// Point in the board. Rows and columns start at 1.
type Point struct {
	Row, Col int8
}

// String returns the point as a column letter followed by the row number, e.g.: "A1" for Point{1, 1}.
func (p Point) String() string {
	if p.Row < 1 || p.Row > MaxSize || p.Col < 1 || p.Col > MaxSize {
		return fmt.Sprintf("(%d, %d)", p.Row, p.Col)
	}
	return fmt.Sprintf("%c%d", rune('A'+p.Col-1), p.Row)
}

// ParsePoint parses a "<ColumnLetter><RowDigit>" text, e.g. "A1" or "c3".
// It doesn't check that the point is on the grid of any particular board, see Board.IsOnGrid.
func ParsePoint(text string) (Point, error) {
	text = strings.ToUpper(strings.TrimSpace(text))
	if len(text) != 2 {
		return Point{}, errors.Wrapf(ErrInvalidPoint, "%q should be a column letter followed by a row number, e.g. \"A1\"", text)
	}
	col, row := text[0], text[1]
	if col < 'A' || col >= 'A'+MaxSize {
		return Point{}, errors.Wrapf(ErrInvalidPoint, "column %q in %q out of range", col, text)
	}
	if row < '1' || row >= '1'+MaxSize {
		return Point{}, errors.Wrapf(ErrInvalidPoint, "row %q in %q out of range", row, text)
	}
	return Point{Row: int8(row - '0'), Col: int8(col-'A') + 1}, nil
}

// Move of a piece from one point to another. Whether it is valid depends on the State (and its Rules).
type Move struct {
	From, To Point
}

func (m Move) String() string {
	return fmt.Sprintf("%s->%s", m.From, m.To)
}

// Board maps each point of a square grid to an optional occupant.
//
// It is stored in a flat array, so it can be copied with a simple assignment, and it is comparable,
// which allows it to be used as a map key.
type Board struct {
	size int8

	// cells hold 0 for empty, or PlayerNum+1, in row-major order.
	cells [MaxCells]uint8
}

// NewBoard creates an empty board with size x size cells.
func NewBoard(size int8) Board {
	if size < MinSize || size > MaxSize {
		exceptions.Panicf("invalid board size %d, it must be between %d and %d", size, MinSize, MaxSize)
	}
	return Board{size: size}
}

// Size of the board: number of rows (and columns).
func (b *Board) Size() int8 {
	return b.size
}

// IsOnGrid returns whether the point is within the board limits.
func (b *Board) IsOnGrid(p Point) bool {
	return p.Row >= 1 && p.Row <= b.size && p.Col >= 1 && p.Col <= b.size
}

func (b *Board) index(p Point) int {
	return int(p.Row-1)*int(b.size) + int(p.Col-1)
}

// Get returns the player occupying the point, and true. If the point is empty (or off-grid)
// it returns PlayerInvalid and false.
func (b *Board) Get(p Point) (player PlayerNum, occupied bool) {
	if !b.IsOnGrid(p) {
		return PlayerInvalid, false
	}
	cell := b.cells[b.index(p)]
	if cell == 0 {
		return PlayerInvalid, false
	}
	return PlayerNum(cell - 1), true
}

// Place a piece of the player on an empty point. It panics if the point is off-grid or occupied.
func (b *Board) Place(player PlayerNum, p Point) {
	if player >= PlayerInvalid {
		exceptions.Panicf("Board.Place(%s, %s): invalid player", player, p)
	}
	if !b.IsOnGrid(p) {
		exceptions.Panicf("Board.Place(%s, %s): point is off the %dx%d grid", player, p, b.size, b.size)
	}
	if occupant, occupied := b.Get(p); occupied {
		exceptions.Panicf("Board.Place(%s, %s): point already occupied by %s", player, p, occupant)
	}
	b.cells[b.index(p)] = uint8(player) + 1
}

// MovePawn clears from and puts a piece of player in to.
//
// It only checks that both points are on the grid (it panics otherwise): it doesn't check that
// from holds a piece of player, nor that to is free or capturable. That is up to the State rules.
func (b *Board) MovePawn(player PlayerNum, from, to Point) {
	if player >= PlayerInvalid {
		exceptions.Panicf("Board.MovePawn(%s, %s, %s): invalid player", player, from, to)
	}
	if !b.IsOnGrid(from) || !b.IsOnGrid(to) {
		exceptions.Panicf("Board.MovePawn(%s, %s, %s): points must be on the %dx%d grid", player, from, to, b.size, b.size)
	}
	b.cells[b.index(from)] = 0
	b.cells[b.index(to)] = uint8(player) + 1
}

// Points iterates over all points of the board, row by row.
func (b *Board) Points() iter.Seq[Point] {
	return func(yield func(Point) bool) {
		for row := int8(1); row <= b.size; row++ {
			for col := int8(1); col <= b.size; col++ {
				if !yield(Point{row, col}) {
					return
				}
			}
		}
	}
}

// Count returns the number of pieces the player has on the board.
func (b *Board) Count(player PlayerNum) (count int) {
	for p := range b.Points() {
		if occupant, ok := b.Get(p); ok && occupant == player {
			count++
		}
	}
	return
}

// HasPieceInRow returns whether player has any piece in the given row.
func (b *Board) HasPieceInRow(player PlayerNum, row int8) bool {
	for col := int8(1); col <= b.size; col++ {
		if occupant, ok := b.Get(Point{row, col}); ok && occupant == player {
			return true
		}
	}
	return false
}
