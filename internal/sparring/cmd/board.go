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
	"io"
	"strings"

	"github.com/fatih/color"

	"laptudirm.com/x/sparring/pkg/rules"
)

var (
	lightSquare  = color.New(color.BgHiYellow, color.FgBlack)
	darkSquare   = color.New(color.BgYellow, color.FgBlack)
	targetSquare = color.New(color.BgGreen, color.FgBlack)
)

// renderBoard draws the position from the given side's point of view,
// highlighting the target squares.
func renderBoard(w io.Writer, pos rules.Position, perspective rules.Side, targets []rules.Square) {
	occupancy := pos.Occupancy()

	highlighted := make(map[rules.Square]bool, len(targets))
	for _, sq := range targets {
		highlighted[sq] = true
	}

	files := "   a  b  c  d  e  f  g  h"
	if perspective == rules.Black {
		files = "   h  g  f  e  d  c  b  a"
	}

	fmt.Fprintln(w)
	for i := 0; i < 8; i++ {
		rank, step := 7-i, 1
		if perspective == rules.Black {
			rank, step = i, -1
		}

		var line strings.Builder
		fmt.Fprintf(&line, "%d ", rank+1)
		for j := 0; j < 8; j++ {
			file := j
			if step < 0 {
				file = 7 - j
			}

			sq := rules.NewSquare(file, rank)

			paint := darkSquare
			switch {
			case highlighted[sq]:
				paint = targetSquare
			case (file+rank)%2 == 1:
				paint = lightSquare
			}

			line.WriteString(paint.Sprintf(" %s ", pieceLetter(occupancy[sq])))
		}

		fmt.Fprintln(w, line.String())
	}

	fmt.Fprintln(w, files)
	fmt.Fprintln(w)
}

func pieceLetter(occupant rules.Occupant) string {
	switch {
	case occupant.Type == rules.NoPiece:
		return " "
	case occupant.Side == rules.White:
		return strings.ToUpper(occupant.Type.String())
	default:
		return occupant.Type.String()
	}
}
