// Package cli implements a command-line UI for the game.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/janpfeifer/hexapawnGo/internal/generics"
	. "github.com/janpfeifer/hexapawnGo/internal/state"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

var (
	// ErrTooManyErrors is returned by ReadMove if the user failed to enter a valid move 3 times.
	ErrTooManyErrors = errors.New("failed to read move 3 times")

	// ErrQuit is returned by ReadMove if the user asked to quit.
	ErrQuit = errors.New("user quit")
)

var ansiFilter = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// displayWidth of s removes its color/control sequences and returns the length of what is left.
func displayWidth(s string) int {
	return len([]rune(ansiFilter.ReplaceAllString(s, "")))
}

// UI for the terminal. It reads moves from in and prints to out.
type UI struct {
	color, clearScreen bool
	reader             *bufio.Reader
	out                io.Writer
}

// New creates a UI using the standard input and output.
func New(color bool, clearScreen bool) *UI {
	return NewWithIO(os.Stdin, os.Stdout, color, clearScreen)
}

// NewWithIO creates a UI that reads from in and writes to out.
func NewWithIO(in io.Reader, out io.Writer, color bool, clearScreen bool) *UI {
	return &UI{
		color:       color,
		clearScreen: clearScreen,
		reader:      bufio.NewReader(in),
		out:         out,
	}
}

// terminalWidth returns the width of the output if it is a terminal, or 0 otherwise.
func (ui *UI) terminalWidth() int {
	f, ok := ui.out.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

// printCentered prints the block of lines centered in the terminal. If the output is not a terminal
// the lines are printed as is.
func (ui *UI) printCentered(block string) {
	lines := strings.Split(strings.TrimRight(block, "\n"), "\n")
	blockWidth := 0
	for _, line := range lines {
		blockWidth = max(blockWidth, displayWidth(line))
	}
	indent := max((ui.terminalWidth()-blockWidth)/2, 0)
	for _, line := range lines {
		if len(line) == 0 {
			_, _ = fmt.Fprintln(ui.out)
			continue
		}
		_, _ = fmt.Fprintf(ui.out, "%s%s\n", strings.Repeat(" ", indent), line)
	}
}

// Println prints to the UI output.
func (ui *UI) Println(a ...any) {
	_, _ = fmt.Fprintln(ui.out, a...)
}

// Printf prints to the UI output.
func (ui *UI) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(ui.out, format, a...)
}

// RunNextMove prints the state, reads a move from the user and plays it. It returns the new state.
// If the user fails to enter a valid move it tries again.
func (ui *UI) RunNextMove(s *State) (*State, error) {
	for {
		ui.Print(s, true)
		ui.Println()
		move, err := ui.ReadMove(s)
		if errors.Is(err, ErrTooManyErrors) {
			continue
		}
		if err != nil {
			return s, err
		}
		return s.Act(move), nil
	}
}

// Run a match between humans, until it is finished or the user quits.
// It returns the last state and the moves played.
func (ui *UI) Run(s *State) (final *State, moves []Move, err error) {
	for !s.IsOver() {
		s, err = ui.RunNextMove(s)
		if err != nil {
			return s, moves, err
		}
		moves = append(moves, *s.LastMove)
	}
	ui.Print(s, false)
	ui.PrintWinner(s)
	return s, moves, nil
}

// PrintWinner prints a banner with the winner (or a draw) and the reason the game finished.
func (ui *UI) PrintWinner(s *State) {
	var message string
	style := lipgloss.NewStyle().Padding(1, 2).Bold(true)
	if s.IsDraw() {
		message = "It's a draw."
		style = style.Background(lipgloss.Color("13")).Foreground(lipgloss.Color("0"))
	} else {
		message = fmt.Sprintf("Winner: %s", s.Winner().Symbol())
		if s.Winner() == PlayerFirst {
			style = style.Background(lipgloss.Color("1")).Foreground(lipgloss.Color("0"))
		} else {
			style = style.Background(lipgloss.Color("2")).Foreground(lipgloss.Color("0"))
		}
	}
	if !ui.color {
		style = lipgloss.NewStyle().Padding(1, 2).Border(lipgloss.NormalBorder())
	}
	ui.Println()
	ui.printCentered(style.Render(message + "\n" + s.FinishReason()))
	ui.Println()
}

var moveSeparators = strings.NewReplacer("->", " ", ",", " ", "-", " ")

func isQuit(text string) bool {
	switch strings.ToLower(text) {
	case "quit", "exit", "q":
		return true
	}
	return false
}

// ReadMove reads a move from the user: the piece to move and the destination, either in the same line (e.g.: "A3 A2")
// or in two separate lines. It returns only valid moves.
//
// It returns ErrTooManyErrors after 3 failed attempts, ErrQuit if the user typed "quit", or the error
// reading the input.
func (ui *UI) ReadMove(s *State) (move Move, err error) {
	// ANSI escape codes for:
	// - \033[30;45;2m: Black on a purplish background.
	// - \033[39;49;0m\033[0K: Reset color and clear to the end-of-line.
	const (
		inputAreaColor = "\033[30;45;2m"
		inputAreaReset = "\033[39;49;0m\033[0K"
		inputWidth     = 10
	)
	readLine := func(prompt string) (string, error) {
		ui.Printf("    %s%s > ", ui.playerString(s.NextPlayer), prompt)
		if ui.color {
			// Print "input area" in purple, and move the cursor back to the beginning of the input area.
			ui.Printf("%s%s\033[%dD", inputAreaColor, strings.Repeat(" ", inputWidth), inputWidth-1)
		}
		text, err := ui.reader.ReadString('\n')
		if ui.color {
			ui.Printf(inputAreaReset) // We don't want the purple color to leak.
		}
		if err != nil && !(errors.Is(err, io.EOF) && text != "") {
			return "", errors.Wrapf(err, "failed to read move")
		}
		return strings.TrimSpace(text), nil
	}

	for numErrs := 0; numErrs < 3; numErrs++ {
		var text string
		text, err = readLine(" piece to move")
		if err != nil {
			return
		}
		if text == "" {
			numErrs--
			continue
		}
		if isQuit(text) {
			err = ErrQuit
			return
		}
		fields := strings.Fields(moveSeparators.Replace(text))
		if len(fields) == 1 {
			text, err = readLine(" destination")
			if err != nil {
				return
			}
			if isQuit(text) {
				err = ErrQuit
				return
			}
			fields = append(fields, strings.Fields(moveSeparators.Replace(text))...)
		}
		if len(fields) != 2 {
			ui.Printf("    * Failed to parse your input %q, please enter the piece to move and the destination, e.g. \"A3 A2\"\n",
				strings.Join(fields, " "))
			continue
		}
		var points [2]Point
		failed := false
		for ii, field := range fields {
			if points[ii], err = ParsePoint(field); err != nil {
				ui.Printf("    * %v\n", err)
				failed = true
				break
			}
		}
		if failed {
			continue
		}
		move = Move{From: points[0], To: points[1]}
		if _, err = s.CheckedAct(move); err != nil {
			ui.Printf("    * %v\n", err)
			continue
		}
		return move, nil
	}
	err = ErrTooManyErrors
	return
}

// Print the state: move number, the board and whose turn it is. If includeMoves is set, and the game is not
// finished, it also describes the valid moves.
func (ui *UI) Print(s *State, includeMoves bool) {
	if ui.clearScreen {
		ui.Printf("\033c")
	}
	if ui.color {
		ui.Printf("\033[37;03;1m")
	}
	ui.Printf("\nMove #%d%s", s.MoveNumber, ui.colorEnd())
	if s.LastMove != nil {
		ui.Printf(" (last move: %s)", s.LastMove)
	}
	ui.Printf("\n\n")

	ui.PrintBoard(s)
	ui.Println()

	if !s.IsOver() {
		ui.PrintPlayer(s)
		ui.Println(" turn to play")
		if includeMoves {
			ui.printMoves(s)
		}
	}
}

// PrintBoard prints the board with the columns as letters and the rows as numbers.
func (ui *UI) PrintBoard(s *State) {
	var sb strings.Builder
	size := s.Board.Size()
	letters := make([]string, 0, size)
	separator := make([]string, 0, size)
	for col := int8(1); col <= size; col++ {
		letters = append(letters, string(rune('A'+col-1)))
		separator = append(separator, "---")
	}
	_, _ = fmt.Fprintf(&sb, "   %s\n", strings.Join(letters, "   "))
	for row := int8(1); row <= size; row++ {
		if row > 1 {
			_, _ = fmt.Fprintf(&sb, "  %s\n", strings.Join(separator, "+"))
		}
		cells := make([]string, 0, size)
		for col := int8(1); col <= size; col++ {
			player, ok := s.Board.Get(Point{Row: row, Col: col})
			if !ok {
				cells = append(cells, "   ")
				continue
			}
			cells = append(cells, ui.colorStart(player)+" "+player.Symbol()+" "+ui.colorEnd())
		}
		_, _ = fmt.Fprintf(&sb, "%d %s\n", row, strings.Join(cells, "|"))
	}
	ui.printCentered(strings.TrimRight(sb.String(), "\n"))
}

// playerString returns the player's symbol and name, colored if colors are enabled.
func (ui *UI) playerString(player PlayerNum) string {
	return fmt.Sprintf("%s%s (%s)%s", ui.colorStart(player), player.Symbol(), player, ui.colorEnd())
}

// PrintPlayer prints the player to move.
func (ui *UI) PrintPlayer(s *State) {
	ui.Printf("%s", ui.playerString(s.NextPlayer))
}

// PrintMovesScores prints the top n moves by score, as evaluated by an AI for the state.
func (ui *UI) PrintMovesScores(s *State, movesScores []float32, n int) {
	moves := s.LegalMoves()
	if len(movesScores) != len(moves) {
		return
	}
	ordering := generics.SliceOrdering(movesScores, true)
	if n > 0 && len(ordering) > n {
		ordering = ordering[:n]
	}
	parts := generics.SliceMap(ordering, func(idx int) string {
		return fmt.Sprintf("%s=%.2f", moves[idx], movesScores[idx])
	})
	ui.Printf("  - Best scored moves: %s\n", strings.Join(parts, ", "))
}

func (ui *UI) printMoves(s *State) {
	if s.Rules.Variant == VariantOpen {
		ui.Println("  - Any piece can be moved to any point of the board.")
		ui.Println("    Example: type 'A3 A2' (or 'A3' and then 'A2') to move the piece at A3 to A2.")
		return
	}
	moves := s.LegalMoves()
	byOrigin := make(map[Point][]string)
	var origins []Point
	for _, move := range moves {
		if _, found := byOrigin[move.From]; !found {
			origins = append(origins, move.From)
		}
		byOrigin[move.From] = append(byOrigin[move.From], move.To.String())
	}
	for _, from := range origins {
		ui.Printf("  - Move %s to one of [%s]\n", from, strings.Join(byOrigin[from], ", "))
	}
	if len(moves) > 0 {
		ui.Printf("    Example: type '%s %s' to move the piece at %s to %s.\n",
			moves[0].From, moves[0].To, moves[0].From, moves[0].To)
	}
}

func (ui *UI) colorStart(player PlayerNum) string {
	if !ui.color {
		return ""
	}
	if player == PlayerFirst {
		return "\033[30;41;1m"
	}
	return "\033[30;42;1m"
}

func (ui *UI) colorEnd() string {
	if !ui.color {
		return ""
	}
	return "\033[39;49;0m"
}
