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

import (
	"strings"

	"github.com/sirupsen/logrus"

	"laptudirm.com/x/mess/pkg/board"
	"laptudirm.com/x/mess/pkg/board/move"
	"laptudirm.com/x/mess/pkg/board/piece"
	"laptudirm.com/x/mess/pkg/formats/fen"
)

// Draw reasons reported by Chess.DrawReason.
const (
	DrawByStalemate            = "Stalemate"
	DrawByFiftyMoveRule        = "50-move Rule"
	DrawByThreefoldRepetition  = "Threefold Repetition"
	DrawByInsufficientMaterial = "Insufficient Material"
)

// Chess is a Position implementing the standard rules of chess on top of
// a mess board. Moves are made and unmade in place.
type Chess struct {
	board *board.Board

	// state of the current position, and of every position before a move
	// applied through this Chess, which Undo restores
	current state
	history []state
}

// state holds what is derived from a position, computed once when the
// position is reached.
type state struct {
	generated []move.Move
	moves     []Move
	inCheck   bool

	// built on first use
	occupancy *Occupancy
}

var _ Position = (*Chess)(nil)

// NewChess creates a new Chess position from the given FEN string.
func NewChess(fenstr string) (*Chess, error) {
	fenstr, err := NormalizeFEN(fenstr)
	if err != nil {
		return nil, err
	}

	chess := &Chess{
		board: board.New(board.FEN(fen.FromString(fenstr))),
	}

	chess.generate()
	return chess, nil
}

// NewPosition is NewChess behind the Position interface.
func NewPosition(fenstr string) (Position, error) {
	return NewChess(fenstr)
}

// generate computes the state of the board's current position. A move
// from mess's generator which isn't in UCI notation means the two
// libraries disagree, which no caller can recover from.
func (chess *Chess) generate() {
	generated := chess.board.GenerateMoves(false)

	moves := make([]Move, len(generated))
	for i, mov := range generated {
		m, err := ParseMove(mov.String())
		if err != nil {
			logrus.Panicf("rules: generated move %q in %s: %v", mov.String(), chess.FEN(), err)
		}

		moves[i] = m
	}

	chess.current = state{
		generated: generated,
		moves:     moves,
		inCheck:   chess.board.IsInCheck(chess.board.SideToMove),
	}
}

// LegalMoves returns the legal moves of the position in generation
// order. The returned slice must not be modified.
func (chess *Chess) LegalMoves() []Move {
	return chess.current.moves
}

func (chess *Chess) LegalMovesFrom(sq Square) []Move {
	var moves []Move
	for _, mov := range chess.current.moves {
		if mov.From == sq {
			moves = append(moves, mov)
		}
	}

	return moves
}

func (chess *Chess) Apply(m Move) error {
	index := chess.find(m)
	if index == -1 {
		return ErrIllegalMove
	}

	chess.board.MakeMove(chess.current.generated[index])
	chess.history = append(chess.history, chess.current)
	chess.generate()
	return nil
}

// find returns the index of the given move among the legal moves, -1 if
// it isn't legal.
func (chess *Chess) find(m Move) int {
	for i, mov := range chess.current.moves {
		if mov == m {
			return i
		}
	}

	return -1
}

func (chess *Chess) Undo() error {
	if len(chess.history) == 0 {
		return ErrNoHistory
	}

	chess.board.UnmakeMove()

	last := len(chess.history) - 1
	chess.current = chess.history[last]
	chess.history = chess.history[:last]
	return nil
}

func (chess *Chess) SideToMove() Side {
	if chess.board.SideToMove == piece.White {
		return White
	}

	return Black
}

func (chess *Chess) IsCheckmate() bool {
	return len(chess.current.moves) == 0 && chess.current.inCheck
}

func (chess *Chess) IsDraw() bool {
	return chess.DrawReason() != ""
}

func (chess *Chess) DrawReason() string {
	switch {
	case len(chess.current.moves) == 0:
		if chess.current.inCheck {
			return ""
		}

		return DrawByStalemate

	case chess.board.DrawClock >= 100:
		return DrawByFiftyMoveRule
	case chess.board.IsThreefoldRepetition():
		return DrawByThreefoldRepetition
	case chess.board.IsInsufficientMaterial():
		return DrawByInsufficientMaterial
	}

	return ""
}

func (chess *Chess) Occupancy() Occupancy {
	if chess.current.occupancy == nil {
		// a board generated FEN is always well formed
		occupancy, _ := parsePlacement(chess.board.FEN()[0])
		chess.current.occupancy = &occupancy
	}

	return *chess.current.occupancy
}

func (chess *Chess) FEN() string {
	fields := [6]string(chess.board.FEN())
	return strings.Join(fields[:], " ")
}
