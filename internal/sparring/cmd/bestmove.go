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
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"laptudirm.com/x/sparring/pkg/rules"
	"laptudirm.com/x/sparring/pkg/search"
)

// sparring bestmove
func BestMove() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bestmove fen",
		Short: "Search a position for the best move",
		Args:  cobra.MinimumNArgs(1),
		Long: heredoc.Doc(`bestmove searches the given position the same way the
			automated player does and prints the move it would play, along
			with the move's score from white's point of view.

			The fen can be given as a single quoted argument or as separate
			arguments.`),

		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			depth := cfg.Depth
			if cmd.Flags().Changed("depth") {
				depth, _ = cmd.Flags().GetInt("depth")
			}

			if depth < 1 {
				return fmt.Errorf("depth must be at least 1, found %d", depth)
			}

			pos, err := rules.NewChess(strings.Join(args, " "))
			if err != nil {
				return err
			}

			if rules.IsTerminal(pos) {
				return fmt.Errorf("position is terminal: no move to search")
			}

			var result search.Result
			err = thinking(cmd.ErrOrStderr(), "searching...", func() (err error) {
				result, err = search.SelectMove(pos, depth)
				return err
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "bestmove %s score %d nodes %d\n", result.Move, result.Score, result.Nodes)
			return nil
		},
	}

	cmd.Flags().IntP("depth", "d", 0, "Search depth, in plys")
	return cmd
}
