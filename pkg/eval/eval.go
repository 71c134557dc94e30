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

// Package eval implements the static evaluation used by the search. The
// score is the material balance of the position from White's point of
// view: positive scores favor White, negative ones favor Black.
package eval

import "laptudirm.com/x/sparring/pkg/rules"

// Board is anything which can report its piece placement.
type Board interface {
	Occupancy() rules.Occupancy
}

// Values holds the material value of each piece type.
var Values = [rules.PieceTypeN]int{
	rules.NoPiece: 0,
	rules.Pawn:    10,
	rules.Knight:  30,
	rules.Bishop:  30,
	rules.Rook:    50,
	rules.Queen:   90,
	rules.King:    900,
}

// Evaluate returns the material balance of the given board.
func Evaluate(b Board) int {
	return Material(b.Occupancy())
}

// Material returns the material balance of the given piece placement.
func Material(occupancy rules.Occupancy) int {
	score := 0
	for _, occupant := range occupancy {
		value := Values[occupant.Type]
		if occupant.Side == rules.White {
			score += value
		} else {
			score -= value
		}
	}

	return score
}
