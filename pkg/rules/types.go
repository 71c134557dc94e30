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
	"fmt"
	"strings"
)

// Side represents one of the two players.
type Side uint8

const (
	White Side = iota
	Black

	SideN = 2
)

// Other returns the opponent of the given Side.
func (side Side) Other() Side {
	return side ^ 1
}

func (side Side) String() string {
	switch side {
	case White:
		return "white"
	case Black:
		return "black"
	default:
		return "?"
	}
}

// ParseSide parses the long ("white") or short ("w") name of a Side.
func ParseSide(str string) (Side, error) {
	switch strings.ToLower(str) {
	case "w", "white":
		return White, nil
	case "b", "black":
		return Black, nil
	default:
		return White, fmt.Errorf("parse side: unknown side %q", str)
	}
}

// PieceType represents the type of a chess piece, without its color.
type PieceType uint8

const (
	NoPiece PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King

	PieceTypeN = 7
)

var pieceTypeLetters = [PieceTypeN]byte{' ', 'p', 'n', 'b', 'r', 'q', 'k'}

func (pt PieceType) String() string {
	if pt >= PieceTypeN {
		return "?"
	}

	return string(pieceTypeLetters[pt])
}

func pieceTypeFrom(letter byte) PieceType {
	for pt := Pawn; pt < PieceTypeN; pt++ {
		if pieceTypeLetters[pt] == letter {
			return pt
		}
	}

	return NoPiece
}

// Square represents a square on the board, a1 = 0 through h8 = 63.
type Square uint8

const SquareN = 64

// NewSquare returns the Square on the given file and rank, both zero based.
func NewSquare(file, rank int) Square {
	return Square(rank*8 + file)
}

// ParseSquare parses an algebraic square like "e4".
func ParseSquare(str string) (Square, error) {
	if len(str) != 2 ||
		str[0] < 'a' || str[0] > 'h' ||
		str[1] < '1' || str[1] > '8' {
		return 0, fmt.Errorf("parse square: invalid square %q", str)
	}

	return NewSquare(int(str[0]-'a'), int(str[1]-'1')), nil
}

func (sq Square) File() int { return int(sq) % 8 }
func (sq Square) Rank() int { return int(sq) / 8 }

func (sq Square) String() string {
	if sq >= SquareN {
		return "-"
	}

	return string([]byte{byte('a' + sq.File()), byte('1' + sq.Rank())})
}

// Move represents a transition between two positions. Moves are only
// ever produced by a Position's move generator.
type Move struct {
	From, To  Square
	Promotion PieceType
}

// ParseMove parses a move in UCI notation, like "e2e4" or "e7e8q".
func ParseMove(str string) (Move, error) {
	str = strings.ToLower(str)
	if len(str) != 4 && len(str) != 5 {
		return Move{}, fmt.Errorf("parse move: invalid move %q", str)
	}

	from, err := ParseSquare(str[0:2])
	if err != nil {
		return Move{}, fmt.Errorf("parse move: %w", err)
	}

	to, err := ParseSquare(str[2:4])
	if err != nil {
		return Move{}, fmt.Errorf("parse move: %w", err)
	}

	mov := Move{From: from, To: to}
	if len(str) == 5 {
		mov.Promotion = pieceTypeFrom(str[4])
		switch mov.Promotion {
		case Knight, Bishop, Rook, Queen:
		default:
			return Move{}, fmt.Errorf("parse move: invalid promotion in %q", str)
		}
	}

	return mov, nil
}

// String returns the UCI notation of the Move.
func (mov Move) String() string {
	str := mov.From.String() + mov.To.String()
	if mov.Promotion != NoPiece {
		str += mov.Promotion.String()
	}

	return str
}

// Occupant is the piece standing on a square. Type is NoPiece for an
// empty square, in which case Side is meaningless.
type Occupant struct {
	Type PieceType
	Side Side
}

// Occupancy is the piece placement of a position, indexed by Square.
type Occupancy [SquareN]Occupant
