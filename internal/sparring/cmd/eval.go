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

	"github.com/spf13/cobra"

	"laptudirm.com/x/sparring/pkg/eval"
	"laptudirm.com/x/sparring/pkg/rules"
)

// sparring eval
func Eval() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval fen",
		Short: "Print the static evaluation of a position",
		Args:  cobra.MinimumNArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			fen := strings.Join(args, " ")

			if mirror, _ := cmd.Flags().GetBool("mirror"); mirror {
				var err error
				if fen, err = rules.MirrorFEN(fen); err != nil {
					return err
				}
			}

			pos, err := rules.NewChess(fen)
			if err != nil {
				return err
			}

			if board, _ := cmd.Flags().GetBool("board"); board {
				renderBoard(cmd.OutOrStdout(), pos, rules.White, nil)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "score %d\n", eval.Evaluate(pos))
			return nil
		},
	}

	cmd.Flags().BoolP("mirror", "m", false, "Evaluate the colour reversed position")
	cmd.Flags().BoolP("board", "b", false, "Show the position's board")
	return cmd
}
