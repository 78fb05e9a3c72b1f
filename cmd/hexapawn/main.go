// hexapawn plays the game in the terminal: human vs AI (default), human vs human (--hotseat) or
// AI vs AI (--watch). It can also save a match and replay it later.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/janpfeifer/hexapawnGo/internal/config"
	"github.com/janpfeifer/hexapawnGo/internal/players"
	_ "github.com/janpfeifer/hexapawnGo/internal/players/default"
	. "github.com/janpfeifer/hexapawnGo/internal/state"
	"github.com/janpfeifer/hexapawnGo/internal/ui/cli"
	"github.com/janpfeifer/hexapawnGo/internal/ui/spinning"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

var (
	flagHotseat = flag.Bool("hotseat", false, "Hotseat match: human vs human")
	flagWatch   = flag.Bool("watch", false, "Watch mode: AI vs AI playing")
	flagFirst   = flag.String("first", "human", "Who plays first: human, ai or random.")
	flagAI      = flag.String("ai", players.DefaultPlayerConfig, "AI configuration against which to play, "+
		"e.g.: \"minimax:max_depth=4,randomness=0.1\" or \"random\"")
	flagAI2        = flag.String("ai2", "", "Second AI configuration, if playing AI vs AI with --watch. Defaults to --ai.")
	flagSize       = flag.Int("size", DefaultSize, "Size of the square board.")
	flagVariant    = flag.String("variant", VariantOpen.String(), "Rules variant: \"open\" (any move is valid) or \"hexapawn\" (pawn moves).")
	flagMaxMoves   = flag.Int("max_moves", DefaultMaxMoves, "If > 0, max moves before game is considered a draw. Default is no limit.")
	flagConfigFile = flag.String("config_file", "", "YAML configuration file. Explicitly set flags take precedence.")
	flagColor      = flag.Bool("color", true, "Use colors in the terminal.")
	flagClear      = flag.Bool("clear_screen", false, "Clear the screen before printing the board.")
	flagQuiet      = flag.Bool("quiet", false, "Quiet mode for when watching AI play, only the moves and the last board position is printed.")
	flagSave       = flag.String("save", "", "File where to save the match, to be replayed later with --replay.")
	flagReplay     = flag.String("replay", "", "Replays a match saved with --save, instead of playing.")

	// aiPlayers: if nil, it's a human playing.
	aiPlayers = [NumPlayers]players.Player{nil, nil}
	matchName = "The Match"

	globalCtx = context.Background()
)

func main() {
	klog.InitFlags(nil)
	flag.Usage = func() {
		_, _ = fmt.Fprintf(flag.CommandLine.Output(), "Usage of %s:\n", os.Args[0])
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(flag.CommandLine.Output(), "\n%s", config.Description())
	}
	flag.Parse()

	cfg := must.M1(config.Load(*flagConfigFile))
	overrideConfigWithFlags(cfg)
	rules, err := cfg.Rules.StateRules()
	if err != nil {
		klog.Exitf("Invalid rules: %+v", err)
	}
	ui := cli.New(!cfg.UI.NoColor, cfg.UI.ClearScreen)

	if *flagReplay != "" {
		if err := replay(ui, *flagReplay); err != nil {
			klog.Exitf("Failed to replay match: %+v", err)
		}
		return
	}

	// Capture Control+C
	var cancel func()
	globalCtx, cancel = context.WithCancel(context.Background())
	spinning.SafeInterrupt(cancel, 3*time.Second)
	defer cancel()

	createPlayers(cfg)
	defer finalizePlayers()

	s, moves, err := runMatch(globalCtx, ui, rules)
	if *flagSave != "" && len(moves) > 0 {
		if saveErr := SaveMatch(*flagSave, rules, moves); saveErr != nil {
			klog.Errorf("Failed to save match: %+v", saveErr)
		} else {
			fmt.Printf("Match saved to %q\n", *flagSave)
		}
	}
	if err != nil {
		if errors.Is(err, cli.ErrQuit) || errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
			fmt.Printf("\nMatch interrupted at move #%d.\n", s.MoveNumber)
			return
		}
		klog.Exitf("Failed to run match: %+v", err)
	}
}

// overrideConfigWithFlags sets in cfg the values of the flags explicitly set by the user.
func overrideConfigWithFlags(cfg *config.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "size":
			cfg.Rules.Size = *flagSize
		case "variant":
			cfg.Rules.Variant = *flagVariant
		case "max_moves":
			cfg.Rules.MaxMoves = *flagMaxMoves
			if cfg.Rules.MaxMoves <= 0 {
				cfg.Rules.MaxMoves = -1
			}
		case "first":
			cfg.Players.First = *flagFirst
		case "ai":
			cfg.Players.AI = *flagAI
		case "ai2":
			cfg.Players.AI2 = *flagAI2
		case "color":
			cfg.UI.NoColor = !*flagColor
		case "clear_screen":
			cfg.UI.ClearScreen = *flagClear
		}
	})
	if cfg.Players.AI2 == "" {
		cfg.Players.AI2 = cfg.Players.AI
	}
}

// createPlayers in aiPlayers.
func createPlayers(cfg *config.Config) {
	if *flagHotseat && *flagWatch {
		klog.Exitf("--hotseat and --watch cannot be used together")
	}
	if *flagHotseat {
		// Both players are human, nothing to do.
		return
	}
	matchId := rand.Uint64()

	// Create AI player:
	var aiPlayerNum PlayerNum
	if *flagWatch {
		aiPlayerNum = PlayerFirst
	} else {
		switch strings.ToLower(cfg.Players.First) {
		case "human":
			aiPlayerNum = PlayerSecond
		case "ai":
			aiPlayerNum = PlayerFirst
		case "random", "":
			aiPlayerNum = PlayerNum(rand.IntN(NumPlayers))
		default:
			klog.Exitf("invalid --first=%q, only valid values are \"human\", \"ai\" or \"random\"", cfg.Players.First)
		}
	}
	aiPlayers[aiPlayerNum] = must.M1(players.New(matchId, matchName, aiPlayerNum, cfg.Players.AI))
	if !*flagWatch {
		return
	}

	// Create second AI
	otherPlayerNum := aiPlayerNum.Other()
	aiPlayers[otherPlayerNum] = must.M1(players.New(matchId, matchName, otherPlayerNum, cfg.Players.AI2))
}

func finalizePlayers() {
	for ii, player := range aiPlayers {
		if player != nil {
			player.Finalize()
			aiPlayers[ii] = nil
		}
	}
}

// runMatch until it is finished, interrupted or the user quits. It returns the last state and the moves played.
func runMatch(ctx context.Context, ui *cli.UI, rules Rules) (s *State, moves []Move, err error) {
	s = NewGame(rules)
	if aiPlayers[PlayerFirst] == nil && aiPlayers[PlayerSecond] == nil {
		// Hotseat: humans only.
		return ui.Run(s)
	}
	for !s.IsOver() {
		if ctx.Err() != nil {
			return s, moves, ctx.Err()
		}
		var next *State
		aiPlayer := aiPlayers[s.NextPlayer]
		if aiPlayer == nil {
			next, err = ui.RunNextMove(s)
			if err != nil {
				return s, moves, err
			}
		} else {
			// AI plays.
			if *flagWatch && !*flagQuiet {
				ui.Print(s, false)
				ui.Printf("\t%s move: ", aiPlayer)
			} else {
				ui.Printf("AI: %s\n", aiPlayer)
				ui.PrintPlayer(s)
			}
			spinner := spinning.New(ctx)
			var (
				move        Move
				score       float32
				movesScores []float32
			)
			move, next, score, movesScores = aiPlayer.Play(s)
			spinner.Done()
			ui.Printf(" %s (score=%.3f)\n", move, score)
			if !*flagQuiet {
				ui.PrintMovesScores(s, movesScores, 3)
			}
			ui.Println()
		}
		moves = append(moves, *next.LastMove)
		s = next
	}
	ui.Print(s, false)
	ui.PrintWinner(s)
	return s, moves, nil
}

// replay the match saved in fileName, printing each of its states.
func replay(ui *cli.UI, fileName string) error {
	rules, moves, err := LoadMatchFile(fileName)
	if err != nil {
		return err
	}
	ui.Printf("Replaying match from %q: %s, %d moves\n", fileName, rules, len(moves))
	states, err := Replay(rules, moves)
	for _, s := range states {
		ui.Print(s, false)
	}
	if err != nil {
		return err
	}
	last := states[len(states)-1]
	if last.IsOver() {
		ui.PrintWinner(last)
	} else {
		ui.Printf("Match was interrupted at move #%d.\n", last.MoveNumber)
	}
	return nil
}
