package rules_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"laptudirm.com/x/sparring/pkg/rules"
)

const (
	foolsMate   = "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3"
	stalemate   = "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1"
	bareKings   = "8/8/4k3/8/8/4K3/8/8 w - - 0 1"
	middleGame  = "r1bqkb1r/pppp1ppp/2n2n2/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 4 4"
	promotion   = "8/P6k/8/8/8/8/8/K7 w - - 0 1"
	enPassant   = "rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3"
	castleReady = "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1"
)

func mustChess(t *testing.T, fen string) *rules.Chess {
	t.Helper()

	chess, err := rules.NewChess(fen)
	if err != nil {
		t.Fatalf("NewChess(%q) error = %v", fen, err)
	}

	return chess
}

func TestParseSquare(t *testing.T) {
	tests := []struct {
		input   string
		want    rules.Square
		wantErr bool
	}{
		{input: "a1", want: 0},
		{input: "h1", want: 7},
		{input: "e4", want: 28},
		{input: "h8", want: 63},
		{input: "i1", wantErr: true},
		{input: "a9", wantErr: true},
		{input: "e", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := rules.ParseSquare(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSquare(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}

			if err == nil {
				if got != tt.want {
					t.Errorf("ParseSquare(%q) = %d, want %d", tt.input, got, tt.want)
				}

				if got.String() != tt.input {
					t.Errorf("Square(%d).String() = %q, want %q", got, got.String(), tt.input)
				}
			}
		})
	}
}

func TestParseMove(t *testing.T) {
	tests := []struct {
		input   string
		want    rules.Move
		wantErr bool
	}{
		{input: "e2e4", want: rules.Move{From: 12, To: 28}},
		{input: "E7E8Q", want: rules.Move{From: 52, To: 60, Promotion: rules.Queen}},
		{input: "a7a8n", want: rules.Move{From: 48, To: 56, Promotion: rules.Knight}},
		{input: "a7a8k", wantErr: true},
		{input: "e2", wantErr: true},
		{input: "e2e9", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := rules.ParseMove(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMove(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseMove(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestParseSide(t *testing.T) {
	for input, want := range map[string]rules.Side{
		"w": rules.White, "White": rules.White,
		"b": rules.Black, "BLACK": rules.Black,
	} {
		got, err := rules.ParseSide(input)
		if err != nil || got != want {
			t.Errorf("ParseSide(%q) = %v, %v; want %v", input, got, err, want)
		}
	}

	if _, err := rules.ParseSide("red"); err == nil {
		t.Error("ParseSide(red) expected an error")
	}

	if rules.White.Other() != rules.Black || rules.Black.Other() != rules.White {
		t.Error("Other() does not swap sides")
	}
}

func TestNormalizeFEN(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "start", input: rules.StartFEN, want: rules.StartFEN},
		{
			name:  "missing counters",
			input: "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -",
			want:  rules.StartFEN,
		},
		{name: "seven ranks", input: "8/8/8/8/8/8/K6k w - - 0 1", wantErr: true},
		{name: "long rank", input: "9/8/8/8/8/8/8/K6k w - - 0 1", wantErr: true},
		{name: "bad piece", input: "x7/8/8/8/8/8/8/K6k w - - 0 1", wantErr: true},
		{name: "no black king", input: "8/8/8/8/8/8/8/K7 w - - 0 1", wantErr: true},
		{name: "bad side", input: "k7/8/8/8/8/8/8/K7 x - - 0 1", wantErr: true},
		{name: "bad castling", input: "k7/8/8/8/8/8/8/K7 w X - 0 1", wantErr: true},
		{name: "bad en passant", input: "k7/8/8/8/8/8/8/K7 w - z9 0 1", wantErr: true},
		{name: "bad counter", input: "k7/8/8/8/8/8/8/K7 w - - x 1", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := rules.NormalizeFEN(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NormalizeFEN() error = %v, wantErr %v", err, tt.wantErr)
			}

			if got != tt.want {
				t.Errorf("NormalizeFEN() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMirrorFEN(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "start",
			input: rules.StartFEN,
			want:  "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR b KQkq - 0 1",
		},
		{
			name:  "en passant",
			input: enPassant,
			want:  "rnbqkbnr/pppp1ppp/8/8/3PpP2/8/PPP1P1PP/RNBQKBNR b KQkq f3 0 3",
		},
		{
			name:  "partial castling",
			input: "r3k3/8/8/8/8/8/8/4K2R w Kq - 0 1",
			want:  "4k2r/8/8/8/8/8/8/R3K3 b Qk - 0 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := rules.MirrorFEN(tt.input)
			if err != nil {
				t.Fatalf("MirrorFEN() error = %v", err)
			}

			if got != tt.want {
				t.Errorf("MirrorFEN() = %q, want %q", got, tt.want)
			}

			back, err := rules.MirrorFEN(got)
			if err != nil {
				t.Fatalf("MirrorFEN() error = %v", err)
			}

			if back != tt.input {
				t.Errorf("mirroring twice = %q, want %q", back, tt.input)
			}
		})
	}
}

func TestChessLegalMoves(t *testing.T) {
	chess := mustChess(t, rules.StartFEN)

	if got := len(chess.LegalMoves()); got != 20 {
		t.Errorf("start position has %d legal moves, want 20", got)
	}

	e2, _ := rules.ParseSquare("e2")
	from := chess.LegalMovesFrom(e2)
	if len(from) != 2 {
		t.Fatalf("e2 pawn has %d legal moves, want 2", len(from))
	}

	for _, mov := range from {
		if mov.From != e2 {
			t.Errorf("LegalMovesFrom(e2) returned %s", mov)
		}
	}

	e4, _ := rules.ParseSquare("e4")
	if got := chess.LegalMovesFrom(e4); len(got) != 0 {
		t.Errorf("LegalMovesFrom(e4) = %v, want none", got)
	}
}

func TestChessMoveCounts(t *testing.T) {
	tests := []struct {
		fen  string
		want int
	}{
		{fen: rules.StartFEN, want: 20},
		{fen: promotion, want: 7},
		{fen: castleReady, want: 26},
		{fen: "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", want: 48},
		{fen: "8/2p5/3p4/KP5r/1R3p2/8/4P1P1/8 w - - 0 1", want: 14},
		{fen: "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", want: 6},
	}

	for _, tt := range tests {
		if got := len(mustChess(t, tt.fen).LegalMoves()); got != tt.want {
			t.Errorf("%s: %d legal moves, want %d", tt.fen, got, tt.want)
		}
	}
}

func TestChessStateFollowsMoves(t *testing.T) {
	chess := mustChess(t, middleGame)

	// every position along the line must look exactly like the same
	// position set up from scratch, going forwards and back
	check := func(stage string) {
		t.Helper()

		fresh := mustChess(t, chess.FEN())
		if diff := cmp.Diff(fresh.LegalMoves(), chess.LegalMoves()); diff != "" {
			t.Errorf("%s %s: LegalMoves() mismatch (-want +got):\n%s", stage, chess.FEN(), diff)
		}

		if fresh.Occupancy() != chess.Occupancy() {
			t.Errorf("%s %s: Occupancy() differs from a new position", stage, chess.FEN())
		}

		if fresh.IsCheckmate() != chess.IsCheckmate() {
			t.Errorf("%s %s: IsCheckmate() differs from a new position", stage, chess.FEN())
		}
	}

	start := chess.FEN()

	applied := 0
	for applied < 8 {
		check("forwards")

		moves := chess.LegalMoves()
		if len(moves) == 0 {
			break
		}

		if err := chess.Apply(moves[len(moves)-1]); err != nil {
			t.Fatalf("Apply() error = %v", err)
		}
		applied++
	}

	for ; applied > 0; applied-- {
		check("backwards")

		if err := chess.Undo(); err != nil {
			t.Fatalf("Undo() error = %v", err)
		}
	}

	check("start")
	if chess.FEN() != start {
		t.Errorf("FEN() after undoing every move = %q, want %q", chess.FEN(), start)
	}
}

func TestChessApplyUndo(t *testing.T) {
	for _, fen := range []string{rules.StartFEN, middleGame, promotion, enPassant, castleReady} {
		chess := mustChess(t, fen)
		before := chess.FEN()

		for _, mov := range chess.LegalMoves() {
			if err := chess.Apply(mov); err != nil {
				t.Fatalf("%s: Apply(%s) error = %v", fen, mov, err)
			}

			if chess.FEN() == before {
				t.Errorf("%s: Apply(%s) did not change the position", fen, mov)
			}

			if err := chess.Undo(); err != nil {
				t.Fatalf("%s: Undo() error = %v", fen, err)
			}

			if after := chess.FEN(); after != before {
				t.Errorf("%s: Apply(%s) then Undo() = %q", fen, mov, after)
			}
		}
	}
}

func TestChessApplyIllegal(t *testing.T) {
	chess := mustChess(t, rules.StartFEN)
	before := chess.FEN()

	for _, str := range []string{"e2e5", "e7e5", "e1e2", "a1a8"} {
		mov, err := rules.ParseMove(str)
		if err != nil {
			t.Fatal(err)
		}

		if err := chess.Apply(mov); !errors.Is(err, rules.ErrIllegalMove) {
			t.Errorf("Apply(%s) error = %v, want ErrIllegalMove", str, err)
		}

		if chess.FEN() != before {
			t.Errorf("Apply(%s) changed the position", str)
		}
	}

	if err := chess.Undo(); !errors.Is(err, rules.ErrNoHistory) {
		t.Errorf("Undo() on a new position error = %v, want ErrNoHistory", err)
	}
}

func TestChessPromotionMoves(t *testing.T) {
	chess := mustChess(t, promotion)

	a7, _ := rules.ParseSquare("a7")
	promotions := map[rules.PieceType]bool{}
	for _, mov := range chess.LegalMovesFrom(a7) {
		promotions[mov.Promotion] = true
	}

	want := map[rules.PieceType]bool{
		rules.Knight: true, rules.Bishop: true, rules.Rook: true, rules.Queen: true,
	}

	if diff := cmp.Diff(want, promotions); diff != "" {
		t.Errorf("promotions mismatch (-want +got):\n%s", diff)
	}
}

func TestChessTerminal(t *testing.T) {
	tests := []struct {
		name      string
		fen       string
		checkmate bool
		draw      string
		toMove    rules.Side
	}{
		{name: "start", fen: rules.StartFEN, toMove: rules.White},
		{name: "fool's mate", fen: foolsMate, checkmate: true, toMove: rules.White},
		{name: "stalemate", fen: stalemate, draw: rules.DrawByStalemate, toMove: rules.Black},
		{name: "bare kings", fen: bareKings, draw: rules.DrawByInsufficientMaterial, toMove: rules.White},
		{
			name:   "fifty moves",
			fen:    "r3k3/8/8/8/8/8/8/4K2R w - - 100 80",
			draw:   rules.DrawByFiftyMoveRule,
			toMove: rules.White,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chess := mustChess(t, tt.fen)

			if got := chess.IsCheckmate(); got != tt.checkmate {
				t.Errorf("IsCheckmate() = %v, want %v", got, tt.checkmate)
			}

			if got := chess.DrawReason(); got != tt.draw {
				t.Errorf("DrawReason() = %q, want %q", got, tt.draw)
			}

			if got := chess.IsDraw(); got != (tt.draw != "") {
				t.Errorf("IsDraw() = %v", got)
			}

			if got := rules.IsTerminal(chess); got != (tt.checkmate || tt.draw != "") {
				t.Errorf("IsTerminal() = %v", got)
			}

			if got := chess.SideToMove(); got != tt.toMove {
				t.Errorf("SideToMove() = %v, want %v", got, tt.toMove)
			}
		})
	}
}

func TestChessThreefoldRepetition(t *testing.T) {
	chess := mustChess(t, rules.StartFEN)

	shuffle := []string{"g1f3", "g8f6", "f3g1", "f6g8"}
	for i := 0; i < 2; i++ {
		for _, str := range shuffle {
			mov, _ := rules.ParseMove(str)
			if err := chess.Apply(mov); err != nil {
				t.Fatalf("Apply(%s) error = %v", str, err)
			}
		}
	}

	if got := chess.DrawReason(); got != rules.DrawByThreefoldRepetition {
		t.Errorf("DrawReason() = %q, want %q", got, rules.DrawByThreefoldRepetition)
	}
}

func TestChessOccupancy(t *testing.T) {
	occupancy := mustChess(t, rules.StartFEN).Occupancy()

	tests := []struct {
		square string
		want   rules.Occupant
	}{
		{square: "e1", want: rules.Occupant{Type: rules.King, Side: rules.White}},
		{square: "d8", want: rules.Occupant{Type: rules.Queen, Side: rules.Black}},
		{square: "b1", want: rules.Occupant{Type: rules.Knight, Side: rules.White}},
		{square: "h7", want: rules.Occupant{Type: rules.Pawn, Side: rules.Black}},
		{square: "e4", want: rules.Occupant{}},
	}

	for _, tt := range tests {
		sq, _ := rules.ParseSquare(tt.square)
		if diff := cmp.Diff(tt.want, occupancy[sq]); diff != "" {
			t.Errorf("occupant of %s mismatch (-want +got):\n%s", tt.square, diff)
		}
	}

	pieces := 0
	for _, occupant := range occupancy {
		if occupant.Type != rules.NoPiece {
			pieces++
		}
	}

	if pieces != 32 {
		t.Errorf("start position has %d pieces, want 32", pieces)
	}
}
