// compare plays many matches between two AI configurations, in parallel, and reports the results.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/janpfeifer/hexapawnGo/internal/ai"
	"github.com/janpfeifer/hexapawnGo/internal/players"
	_ "github.com/janpfeifer/hexapawnGo/internal/players/default"
	"github.com/janpfeifer/hexapawnGo/internal/profilers"
	"github.com/janpfeifer/hexapawnGo/internal/state"
	"github.com/janpfeifer/hexapawnGo/internal/ui/cli"
	"github.com/janpfeifer/hexapawnGo/internal/ui/spinning"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
)

var (
	flagPlayer1Config = flag.String("ai1", "", "1st player configuration.")
	flagPlayer2Config = flag.String("ai2", "", "2nd player configuration.")
	flagNumMatches    = flag.Int("num_matches", 100, "Number of matches to play.")
	flagParallelism   = flag.Int("parallelism", 0, "If > 0 ignore GOMAXPROCS and play "+
		"these many matches simultaneously.")
	flagPrintSteps = flag.Bool("print_steps", false, "Print board at each step. "+
		"Very verbose, and you probably want to set --parallelism=1.")
	flagSize     = flag.Int("size", state.DefaultSize, "Size of the square board.")
	flagVariant  = flag.String("variant", state.VariantHexapawn.String(), "Rules variant: \"open\" or \"hexapawn\".")
	flagMaxMoves = flag.Int(
		"max_moves", state.DefaultMaxMoves, "If > 0, max moves before game is assumed to be a draw. Default is no limit.")
	flagSaveDir = flag.String("save_dir", "", "If set, each match is saved in this directory, and can be replayed "+
		"with hexapawn --replay.")
)

// Globals
var (
	// globalCtx used everywhere. It is cancelled when the program is about to exit either by
	// an interrupt (ctrl+C) or by reaching the end.
	globalCtx = context.Background()
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	if *flagPlayer1Config == "" || *flagPlayer2Config == "" {
		klog.Exitf("You must configure both players to compare with flags -ai1 and -ai2")
	}
	rules := must.M1(createRules())

	// Capture Control+C
	var globalCancel func()
	globalCtx, globalCancel = context.WithCancel(context.Background())
	spinning.SafeInterrupt(globalCancel, 5*time.Second)
	defer globalCancel()

	// Profilers: HTTP profiler server, CPU and memory profiles.
	profilers.Setup(globalCtx)
	defer profilers.OnQuit()

	// Check the configurations before starting, so errors are reported only once.
	for playerIdx, config := range [2]string{*flagPlayer1Config, *flagPlayer2Config} {
		player, err := players.New(0, "check", state.PlayerNum(playerIdx), config)
		if err != nil {
			klog.Exitf("Invalid configuration for AI-%d: %+v", playerIdx+1, err)
		}
		player.Finalize()
	}
	if *flagSaveDir != "" {
		must.M(os.MkdirAll(*flagSaveDir, 0o755))
	}

	r, err := runMatches(globalCtx, rules)
	if err != nil {
		klog.Exitf("Failed to run matches: %+v", err)
	}
	fmt.Println(r.Box())
}

func createRules() (state.Rules, error) {
	variant, err := state.ParseVariant(*flagVariant)
	if err != nil {
		return state.Rules{}, err
	}
	if *flagSize < state.MinSize || *flagSize > state.MaxSize {
		return state.Rules{}, errors.Wrapf(state.ErrInvalidRules, "invalid --size=%d", *flagSize)
	}
	rules := state.Rules{
		Size:     int8(*flagSize),
		Variant:  variant,
		MaxMoves: max(*flagMaxMoves, 0),
	}
	return rules, rules.Validate()
}

// Results of the matches, indexed by the AI (0 for --ai1, 1 for --ai2).
type Results struct {
	mu                   sync.Mutex
	start                time.Time
	winsAs1st, winsAs2nd [2]int
	draws                [2]int
	played, total        int
}

// record the result of a match: aiFirst is the AI that played first, and winner is the player who won.
func (r *Results) record(aiFirst int, winner state.PlayerNum) {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch winner {
	case state.PlayerInvalid:
		r.draws[aiFirst]++
	case state.PlayerFirst:
		r.winsAs1st[aiFirst]++
	default:
		r.winsAs2nd[1-aiFirst]++
	}
	r.played++
}

func (r *Results) String() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var parts []string
	parts = append(parts, fmt.Sprintf("Played %d of %d: ", r.played, r.total))
	for playerIdx := range 2 {
		parts = append(parts,
			fmt.Sprintf("AI-%d: %d Wins (1st: %d, 2nd: %d) / ",
				playerIdx+1, r.winsAs1st[playerIdx]+r.winsAs2nd[playerIdx],
				r.winsAs1st[playerIdx], r.winsAs2nd[playerIdx]))
	}
	parts = append(parts, fmt.Sprintf("%d draws (%d AI-1 as 1st, %d AI-2 as 1st) - ",
		r.draws[0]+r.draws[1], r.draws[0], r.draws[1]))
	parts = append(parts, time.Since(r.start).Round(time.Millisecond).String())
	parts = append(parts, "\033[0K")
	return strings.Join(parts, "")
}

// Box returns the final results rendered in a table-like box.
func (r *Results) Box() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	lines := []string{
		fmt.Sprintf("%-6s %6s %6s %6s %12s", "", "Wins", "As 1st", "As 2nd", "Draws as 1st"),
	}
	for playerIdx, config := range [2]string{*flagPlayer1Config, *flagPlayer2Config} {
		lines = append(lines, fmt.Sprintf("AI-%-3d %6d %6d %6d %12d   %s", playerIdx+1,
			r.winsAs1st[playerIdx]+r.winsAs2nd[playerIdx], r.winsAs1st[playerIdx], r.winsAs2nd[playerIdx],
			r.draws[playerIdx], config))
	}
	lines = append(lines, fmt.Sprintf("Draws: %d", r.draws[0]+r.draws[1]))
	lines = append(lines, fmt.Sprintf("%d of %d matches played in %s", r.played, r.total,
		time.Since(r.start).Round(time.Millisecond)))
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("13")).
		Padding(0, 1)
	return style.Render(strings.Join(lines, "\n"))
}

func runMatches(ctx context.Context, rules state.Rules) (*Results, error) {
	r := &Results{
		start: time.Now(),
		total: *flagNumMatches,
	}
	var wg errgroup.Group
	wg.SetLimit(getParallelism())
	fmt.Printf("\r%s", r)

	for matchIdx := range r.total {
		wg.Go(func() error {
			// AI-1 plays first in even matches, AI-2 in odd ones.
			aiFirst := matchIdx % 2
			configs := [2]string{*flagPlayer1Config, *flagPlayer2Config}
			if aiFirst == 1 {
				configs[0], configs[1] = configs[1], configs[0]
			}
			winner, err := runMatch(ctx, rules, matchIdx, configs)
			if err != nil || ctx.Err() != nil {
				return err
			}
			r.record(aiFirst, winner)
			fmt.Printf("\r%s", r)
			return nil
		})
	}
	err := wg.Wait()
	fmt.Printf("\r%s\n", r)
	if ctx.Err() != nil {
		fmt.Printf("Interrupted: %s\n", ctx.Err())
		return r, nil
	}
	return r, err
}

var (
	stepUI   = cli.New(true, false)
	muStepUI sync.Mutex
)

// runMatch creates the players and plays one match. configs are indexed by PlayerNum.
func runMatch(ctx context.Context, rules state.Rules, matchNum int, configs [2]string) (winner state.PlayerNum, err error) {
	if ctx.Err() != nil {
		// Already interrupted.
		return state.PlayerInvalid, nil
	}
	if klog.V(1).Enabled() {
		klog.Infof("Starting match %d", matchNum)
		defer klog.Infof("Finished match %d", matchNum)
	}
	matchName := fmt.Sprintf("Match-%05d", matchNum)

	// Searchers are not safe for concurrent use: each match has its own players.
	var aiPlayers [2]players.Player
	for playerNum, config := range configs {
		aiPlayers[playerNum], err = players.New(uint64(matchNum), matchName, state.PlayerNum(playerNum), config)
		if err != nil {
			return state.PlayerInvalid, err
		}
		defer aiPlayers[playerNum].Finalize()
	}

	// Run match.
	s := state.NewGame(rules)
	var moves []state.Move
	for !s.IsOver() {
		if ctx.Err() != nil {
			klog.V(1).Infof("Match %d interrupted: %s", matchNum, ctx.Err())
			return state.PlayerInvalid, nil
		}
		player := aiPlayers[s.NextPlayer]
		if klog.V(2).Enabled() {
			klog.Infof("%s: %s at move #%d", matchName, s.NextPlayer, s.MoveNumber)
		}
		move, next, _, movesScores := player.Play(s)
		if *flagPrintSteps {
			muStepUI.Lock()
			stepUI.Printf("%s, move #%d: %s plays %s\n", matchName, s.MoveNumber, player, move)
			stepUI.PrintMovesScores(s, movesScores, 5)
			stepUI.PrintBoard(next)
			stepUI.Println("------------------")
			muStepUI.Unlock()
		}
		moves = append(moves, move)
		s = next
	}
	if *flagSaveDir != "" {
		if err = state.SaveMatch(filepath.Join(*flagSaveDir, matchName+".gob"), rules, moves); err != nil {
			return state.PlayerInvalid, err
		}
	}

	_, endScore := ai.IsEndGameAndScore(s)
	switch {
	case endScore > 0:
		winner = s.NextPlayer
	case endScore < 0:
		winner = s.NextPlayer.Other()
	default:
		winner = state.PlayerInvalid
	}
	return winner, nil
}

// getParallelism returns the parallelism.
func getParallelism() (parallelism int) {
	parallelism = runtime.GOMAXPROCS(0)
	if *flagParallelism > 0 {
		parallelism = *flagParallelism
	}
	return
}
