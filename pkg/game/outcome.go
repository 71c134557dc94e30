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

package game

import (
	"fmt"

	"laptudirm.com/x/sparring/pkg/rules"
)

// OutcomeKind is the kind of a game's outcome.
type OutcomeKind uint8

const (
	None OutcomeKind = iota
	Win
	Draw
)

// Outcome is the result of a game. Winner is only meaningful for a Win.
type Outcome struct {
	Kind   OutcomeKind
	Winner rules.Side
	Reason string
}

// OutcomeOf adjudicates the given position. A checkmate is a Win for the
// side not to move, every other terminal position is a Draw.
func OutcomeOf(pos rules.Position) Outcome {
	if pos.IsCheckmate() {
		return Outcome{
			Kind:   Win,
			Winner: pos.SideToMove().Other(),
			Reason: "Checkmate",
		}
	}

	if reason := pos.DrawReason(); reason != "" {
		return Outcome{Kind: Draw, Reason: reason}
	}

	return Outcome{}
}

// Score returns the outcome in PGN result notation.
func (outcome Outcome) Score() string {
	switch outcome.Kind {
	case Win:
		if outcome.Winner == rules.White {
			return "1-0"
		}
		return "0-1"
	case Draw:
		return "1/2-1/2"
	default:
		return "*"
	}
}

func (outcome Outcome) String() string {
	switch outcome.Kind {
	case Win:
		return fmt.Sprintf("%s wins by %s", outcome.Winner, outcome.Reason)
	case Draw:
		return fmt.Sprintf("draw by %s", outcome.Reason)
	default:
		return "game in progress"
	}
}
