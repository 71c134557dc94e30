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

package match

// Result represents the result of a single game from player 1's point of
// view.
type Result int

const (
	Win  Result = +1
	Draw Result = 0
	Loss Result = -1
)

// GameLostBy maps the losing player to the game's Result.
var GameLostBy = [2]Result{
	0: Loss,
	1: Win,
}

// String returns a string representation of the given Result.
func (result Result) String() string {
	switch result {
	case Win:
		return "1-0"
	case Draw:
		return "1/2-1/2"
	case Loss:
		return "0-1"
	default:
		return "?-?"
	}
}

// Tally counts the results of a match.
type Tally struct {
	Wins, Draws, Losses int
}

// Add counts the given Result.
func (tally *Tally) Add(result Result) {
	switch result {
	case Win:
		tally.Wins++
	case Draw:
		tally.Draws++
	case Loss:
		tally.Losses++
	}
}

// Games returns the number of games counted.
func (tally Tally) Games() int {
	return tally.Wins + tally.Draws + tally.Losses
}
