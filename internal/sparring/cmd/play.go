// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"laptudirm.com/x/sparring/pkg/config"
	"laptudirm.com/x/sparring/pkg/game"
	"laptudirm.com/x/sparring/pkg/rules"
)

// sparring play
func Play() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a game against the automated player",
		Args:  cobra.NoArgs,
		Long: heredoc.Doc(`play starts an interactive game against the automated
			player, which searches the game tree a fixed number of plys deep
			and replies after a short delay.

			Moves are entered in coordinate notation, like e2e4, and pawns
			reaching the last rank are promoted to queens. The other commands
			are select <square>, board, fen, moves, reset, help, and quit.`),

		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("depth") {
				cfg.Depth, _ = flags.GetInt("depth")
			}
			if flags.Changed("delay") {
				cfg.Delay, _ = flags.GetString("delay")
			}
			if flags.Changed("fen") {
				cfg.Start, _ = flags.GetString("fen")
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			p := newPrompt(cfg, cmd.InOrStdin(), cmd.OutOrStdout())
			if flags.Changed("side") {
				name, _ := flags.GetString("side")
				side, err := rules.ParseSide(name)
				if err != nil {
					return err
				}

				if err := p.controller.ChooseSide(side); err != nil {
					return err
				}

				p.show()
			}

			return p.run()
		},
	}

	cmd.Flags().StringP("side", "s", "", "Side to play, white or black")
	cmd.Flags().IntP("depth", "d", 0, "Search depth of the automated player")
	cmd.Flags().String("delay", "", "Delay before the automated player moves")
	cmd.Flags().String("fen", "", "Position to start the game from")

	return cmd
}

var errQuit = errors.New("quit")

var errorColor = color.New(color.FgRed)

// prompt is a game played over a line based terminal interface.
type prompt struct {
	controller *game.Controller
	queue      *game.Queue

	in  *bufio.Scanner
	out io.Writer

	// show a spinner while the automated player thinks
	spin bool
}

func newPrompt(cfg config.Config, in io.Reader, out io.Writer) *prompt {
	queue := &game.Queue{}

	return &prompt{
		controller: game.New(game.Config{
			Depth:    cfg.Depth,
			Delay:    cfg.AutomatedDelay(),
			StartFEN: cfg.Start,
		}, queue),
		queue: queue,

		in:  bufio.NewScanner(in),
		out: out,

		spin: true,
	}
}

// run plays games until the input ends or the human quits.
func (p *prompt) run() error {
	for {
		if p.controller.State() == game.AwaitingSideSelection {
			fmt.Fprint(p.out, "Choose your side (white/black): ")
			line, ok := p.read()
			if !ok {
				return nil
			}

			side, err := rules.ParseSide(strings.TrimSpace(line))
			if err != nil {
				errorColor.Fprintln(p.out, err)
				continue
			}

			if err := p.controller.ChooseSide(side); err != nil {
				errorColor.Fprintln(p.out, err)
				continue
			}

			p.show()
			continue
		}

		// The automated move is scheduled by the move before it, and is
		// played here, outside of the command which committed that move.
		if p.queue.Pending() > 0 {
			run := p.queue.RunPending
			if p.spin {
				run = func() error {
					return thinking(p.out, "thinking...", p.queue.RunPending)
				}
			}

			if err := run(); err != nil {
				return err
			}

			if history := p.controller.History(); len(history) > 0 {
				fmt.Fprintf(p.out, "sparring plays %s\n", history[len(history)-1])
			}

			p.show()
			continue
		}

		fmt.Fprintf(p.out, "%s> ", p.controller.HumanSide())
		line, ok := p.read()
		if !ok {
			return nil
		}

		switch err := p.execute(strings.Fields(line)); {
		case errors.Is(err, errQuit):
			return nil
		case err != nil:
			errorColor.Fprintln(p.out, err)
		}
	}
}

func (p *prompt) read() (string, bool) {
	if !p.in.Scan() {
		return "", false
	}

	return p.in.Text(), true
}

// execute runs a single command entered by the human.
func (p *prompt) execute(fields []string) error {
	if len(fields) == 0 {
		return nil
	}

	switch strings.ToLower(fields[0]) {
	case "quit", "exit":
		return errQuit

	case "help":
		fmt.Fprintln(p.out, heredoc.Doc(`
			<from><to>     play a move, like e2e4
			select <sq>    show where the piece on a square can move
			board          show the board
			fen            show the position's FEN string
			moves          show the moves played so far
			reset          start a new game
			quit           leave`))

	case "reset":
		p.controller.Reset()

	case "board":
		p.show()

	case "fen":
		fmt.Fprintln(p.out, p.controller.CurrentPosition().FEN())

	case "moves":
		var moves []string
		for _, mov := range p.controller.History() {
			moves = append(moves, mov.String())
		}
		fmt.Fprintln(p.out, strings.Join(moves, " "))

	case "select":
		if len(fields) != 2 {
			return errors.New("usage: select <square>")
		}

		sq, err := rules.ParseSquare(fields[1])
		if err != nil {
			return err
		}

		if err := p.controller.Select(sq); err != nil {
			return err
		}

		p.show()

	default:
		mov, err := rules.ParseMove(fields[0])
		if err != nil {
			return fmt.Errorf("unknown command %q, try help", fields[0])
		}

		if err := p.controller.SubmitHumanMove(mov.From, mov.To); err != nil {
			return err
		}

		p.show()
	}

	return nil
}

// show draws the board, and the outcome if the game has ended.
func (p *prompt) show() {
	pos := p.controller.CurrentPosition()
	if pos == nil {
		return
	}

	renderBoard(p.out, pos, p.controller.HumanSide(), p.controller.Targets())

	if p.controller.State() == game.Terminal {
		outcome := p.controller.TerminalOutcome()
		color.New(color.FgGreen).Fprintf(p.out, "%s (%s)\n", outcome, outcome.Score())
		fmt.Fprintln(p.out, "Type reset to play again or quit to leave.")
	}
}
