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
	"context"
	"fmt"
	"io"
	"math"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"laptudirm.com/x/sparring/pkg/match"
)

// sparring match
func Match() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Play the automated player against itself at two depths",
		Args:  cobra.NoArgs,
		Long: heredoc.Doc(`match plays games between two copies of the automated
			player searching at different depths, and estimates the elo
			difference between them.

			Every starting position is played twice with colours swapped.
			Positions are read one FEN per line from the positions file, or
			the standard starting position is used.`),

		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("depths") {
				cfg.Match.Depths, _ = flags.GetIntSlice("depths")
			}
			if flags.Changed("games") {
				cfg.Match.Games, _ = flags.GetInt("games")
			}
			if flags.Changed("concurrency") {
				cfg.Match.Concurrency, _ = flags.GetInt("concurrency")
			}
			if flags.Changed("max-plies") {
				cfg.Match.MaxPlies, _ = flags.GetInt("max-plies")
			}
			if flags.Changed("positions") {
				cfg.Match.Positions, _ = flags.GetString("positions")
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			book, err := match.NewBook(cfg.Match.Positions)
			if err != nil {
				return err
			}

			tally, err := match.Run(context.Background(), match.Config{
				Depths:      [2]int{cfg.Match.Depths[0], cfg.Match.Depths[1]},
				Games:       cfg.Match.Games,
				Concurrency: cfg.Match.Concurrency,
				MaxPlies:    cfg.Match.MaxPlies,
				Book:        book,
			}, func(result match.GameResult) {
				logrus.Infof("\x1b[32mFinished\x1b[0m %s", result)
			})
			if err != nil {
				return err
			}

			report(cmd.OutOrStdout(), cfg.Match.Depths, tally)
			return nil
		},
	}

	cmd.Flags().IntSlice("depths", nil, "Search depths of the two players")
	cmd.Flags().IntP("games", "g", 0, "Number of games to play")
	cmd.Flags().IntP("concurrency", "j", 0, "Number of games to play at once")
	cmd.Flags().Int("max-plies", 0, "Adjudicate games longer than this as draws")
	cmd.Flags().StringP("positions", "p", "", "File with one starting FEN per line")

	return cmd
}

func report(w io.Writer, depths []int, tally match.Tally) {
	lower, elo, upper := match.Elo(tally.Wins, tally.Draws, tally.Losses)
	err := math.Abs(math.Max(upper-elo, elo-lower))

	dep_str := fmt.Sprintf("║ DEPTH | %d vs %d", depths[0], depths[1])
	elo_str := fmt.Sprintf("║ ELO   | %.2f +- %.2f (95%%)", elo, err)
	gam_str := fmt.Sprintf("║ GAMES | N: %d W: %d L: %d D: %d", tally.Games(), tally.Wins, tally.Losses, tally.Draws)

	fmt.Fprintln(w, "╔═════════════════════════════════════════════════╗")
	fmt.Fprintf(w, "%-50s║\n", dep_str)
	fmt.Fprintf(w, "%-50s║\n", elo_str)
	fmt.Fprintf(w, "%-50s║\n", gam_str)
	fmt.Fprintln(w, "╚═════════════════════════════════════════════════╝")
}
