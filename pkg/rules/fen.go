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
	"strconv"
	"strings"
	"unicode"
)

// StartFEN is the FEN string of the standard starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// NormalizeFEN validates the given FEN string and returns it with all six
// fields present. The move counters may be omitted from the input.
func NormalizeFEN(fen string) (string, error) {
	fields := strings.Fields(fen)
	switch len(fields) {
	case 4:
		fields = append(fields, "0", "1")
	case 6:
	default:
		return "", fmt.Errorf("fen: expected 6 fields, found %d", len(fields))
	}

	occupancy, err := parsePlacement(fields[0])
	if err != nil {
		return "", err
	}

	var kings [SideN]int
	for _, occupant := range occupancy {
		if occupant.Type == King {
			kings[occupant.Side]++
		}
	}

	if kings[White] != 1 || kings[Black] != 1 {
		return "", fmt.Errorf("fen: each side needs exactly one king")
	}

	if _, err := ParseSide(fields[1]); err != nil || len(fields[1]) != 1 {
		return "", fmt.Errorf("fen: invalid side to move %q", fields[1])
	}

	if fields[2] != "-" && strings.Trim(fields[2], "KQkq") != "" {
		return "", fmt.Errorf("fen: invalid castling rights %q", fields[2])
	}

	if fields[3] != "-" {
		if _, err := ParseSquare(fields[3]); err != nil {
			return "", fmt.Errorf("fen: invalid en passant target %q", fields[3])
		}
	}

	for _, counter := range fields[4:] {
		if n, err := strconv.Atoi(counter); err != nil || n < 0 {
			return "", fmt.Errorf("fen: invalid move counter %q", counter)
		}
	}

	return strings.Join(fields, " "), nil
}

// parsePlacement parses the piece placement field of a FEN string.
func parsePlacement(field string) (Occupancy, error) {
	var occupancy Occupancy

	ranks := strings.Split(field, "/")
	if len(ranks) != 8 {
		return occupancy, fmt.Errorf("fen: expected 8 ranks, found %d", len(ranks))
	}

	for i, rank := range ranks {
		r := 7 - i // ranks are listed from the eighth down
		file := 0
		for _, c := range []byte(rank) {
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}

			pt := pieceTypeFrom(byte(unicode.ToLower(rune(c))))
			if pt == NoPiece || file >= 8 {
				return occupancy, fmt.Errorf("fen: invalid rank %q", rank)
			}

			side := Black
			if unicode.IsUpper(rune(c)) {
				side = White
			}

			occupancy[NewSquare(file, r)] = Occupant{Type: pt, Side: side}
			file++
		}

		if file != 8 {
			return occupancy, fmt.Errorf("fen: invalid rank %q", rank)
		}
	}

	return occupancy, nil
}

// MirrorFEN returns the color reversed mirror of the given position: the
// board is flipped vertically, every piece changes color and the other
// side is to move.
func MirrorFEN(fen string) (string, error) {
	fen, err := NormalizeFEN(fen)
	if err != nil {
		return "", err
	}

	fields := strings.Fields(fen)

	ranks := strings.Split(fields[0], "/")
	for i, j := 0, len(ranks)-1; i < j; i, j = i+1, j-1 {
		ranks[i], ranks[j] = ranks[j], ranks[i]
	}
	fields[0] = swapCase(strings.Join(ranks, "/"))

	if fields[1] == "w" {
		fields[1] = "b"
	} else {
		fields[1] = "w"
	}

	if fields[2] != "-" {
		rights := swapCase(fields[2])
		fields[2] = ""
		for _, c := range "KQkq" {
			if strings.ContainsRune(rights, c) {
				fields[2] += string(c)
			}
		}
	}

	if fields[3] != "-" {
		sq, _ := ParseSquare(fields[3])
		fields[3] = NewSquare(sq.File(), 7-sq.Rank()).String()
	}

	return strings.Join(fields, " "), nil
}

func swapCase(str string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsUpper(r) {
			return unicode.ToLower(r)
		}
		return unicode.ToUpper(r)
	}, str)
}
