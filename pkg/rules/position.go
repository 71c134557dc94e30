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

package rules

import "errors"

// ErrIllegalMove is returned by Apply when the given move is not in the
// position's legal move set.
var ErrIllegalMove = errors.New("illegal move")

// ErrNoHistory is returned by Undo when no move has been applied.
var ErrNoHistory = errors.New("no move to undo")

// Position is a game state which can be branched from with Apply and
// returned to with Undo. Exactly one Side is to move at any time.
type Position interface {
	// LegalMoves returns every legal move in the position, in the
	// generator's order.
	LegalMoves() []Move

	// LegalMovesFrom returns the legal moves of the piece on the given
	// square, in the generator's order.
	LegalMovesFrom(Square) []Move

	// Apply plays the given move. Moves outside the legal move set are
	// rejected with ErrIllegalMove and leave the position untouched.
	Apply(Move) error

	// Undo takes back the last applied move.
	Undo() error

	SideToMove() Side

	IsCheckmate() bool
	IsDraw() bool

	// DrawReason returns why the position is drawn, or "" if it isn't.
	DrawReason() string

	Occupancy() Occupancy

	FEN() string
}

// IsTerminal reports whether the position has no continuation, either
// because of a checkmate or a draw.
func IsTerminal(pos Position) bool {
	return pos.IsCheckmate() || pos.IsDraw()
}
