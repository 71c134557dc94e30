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

// Package search implements the move selection of the automated player, a
// fixed depth minimax search with alpha-beta pruning.
package search

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"laptudirm.com/x/sparring/pkg/eval"
	"laptudirm.com/x/sparring/pkg/rules"
)

// DefaultDepth is the search depth, in plys, used by the automated player.
const DefaultDepth = 3

const (
	// Infinity bounds every score the search can return.
	Infinity = 1 << 30

	// MateScore is the score of a checkmate, above any material balance.
	MateScore = 100000
)

// ErrCollaborator is returned when the position rejects a move which its
// own generator produced, meaning the rules engine is inconsistent.
var ErrCollaborator = errors.New("rules engine rejected a generated move")

// Result is the outcome of a search. Found is false if no move was
// searched, in which case Score is the static score of the root.
type Result struct {
	Move  rules.Move
	Found bool
	Score int

	Nodes int
}

func (result Result) String() string {
	if !result.Found {
		return fmt.Sprintf("(none) score %d", result.Score)
	}

	return fmt.Sprintf("%s score %d", result.Move, result.Score)
}

// Evaluator statically scores a position from White's point of view.
type Evaluator func(eval.Board) int

// Searcher searches positions with an Evaluator. A Searcher is not safe
// for concurrent use, but any number of Searchers may run in parallel on
// distinct positions.
type Searcher struct {
	Evaluate Evaluator

	nodes int
}

// New returns a Searcher using the material evaluation.
func New() *Searcher {
	return &Searcher{Evaluate: eval.Evaluate}
}

// SelectMove searches the given position with a new Searcher.
func SelectMove(pos rules.Position, depth int) (Result, error) {
	return New().SelectMove(pos, depth)
}

// SelectMove returns the best move for the side to move in the given
// position, searching depth plys deep. The position is restored to its
// original state before SelectMove returns, even on errors.
//
// Every root move is scored with its own full alpha-beta window, so root
// moves are never pruned against each other. Ties go to the move which
// was generated first.
func (searcher *Searcher) SelectMove(pos rules.Position, depth int) (Result, error) {
	searcher.nodes = 1

	if depth <= 0 || rules.IsTerminal(pos) {
		return Result{Score: searcher.leaf(pos, depth), Nodes: 1}, nil
	}

	// white is the maximizing side
	maximizing := pos.SideToMove() == rules.White

	var result Result
	for _, mov := range pos.LegalMoves() {
		var score int
		err := searcher.try(pos, mov, func() (err error) {
			score, err = searcher.Minimax(pos, depth-1, !maximizing, -Infinity, Infinity)
			return err
		})
		if err != nil {
			return Result{}, err
		}

		if !result.Found || improves(score, result.Score, maximizing) {
			result.Move = mov
			result.Score = score
			result.Found = true
		}
	}

	result.Nodes = searcher.nodes
	logrus.Tracef("search: depth %d nodes %d best %s", depth, result.Nodes, result)
	return result, nil
}

// Minimax returns the minimax score of the given position searched depth
// plys deep, pruning branches which fall outside the alpha-beta window.
func (searcher *Searcher) Minimax(pos rules.Position, depth int, maximizing bool, alpha, beta int) (int, error) {
	searcher.nodes++

	if depth <= 0 || rules.IsTerminal(pos) {
		return searcher.leaf(pos, depth), nil
	}

	best := Infinity
	if maximizing {
		best = -Infinity
	}

	for _, mov := range pos.LegalMoves() {
		var score int
		err := searcher.try(pos, mov, func() (err error) {
			score, err = searcher.Minimax(pos, depth-1, !maximizing, alpha, beta)
			return err
		})
		if err != nil {
			return 0, err
		}

		if maximizing {
			best = max(best, score)
			alpha = max(alpha, best)
		} else {
			best = min(best, score)
			beta = min(beta, best)
		}

		if beta <= alpha {
			break
		}
	}

	return best, nil
}

// leaf returns the static score of the position. Checkmates are scored
// beyond any material balance, and sooner mates (more depth left) score
// higher.
func (searcher *Searcher) leaf(pos rules.Position, depth int) int {
	depth = max(depth, 0)

	if pos.IsCheckmate() {
		if pos.SideToMove() == rules.White {
			return -(MateScore + depth)
		}

		return MateScore + depth
	}

	return searcher.Evaluate(pos)
}

// try applies the given move, runs fn and takes the move back. The move is
// taken back whatever fn does, so the position is never left mutated.
func (searcher *Searcher) try(pos rules.Position, mov rules.Move, fn func() error) (err error) {
	if err := pos.Apply(mov); err != nil {
		return fmt.Errorf("%w: apply %s in %s: %v", ErrCollaborator, mov, pos.FEN(), err)
	}

	defer func() {
		if undoErr := pos.Undo(); undoErr != nil && err == nil {
			err = fmt.Errorf("%w: undo %s: %v", ErrCollaborator, mov, undoErr)
		}
	}()

	return fn()
}

func improves(score, best int, maximizing bool) bool {
	if maximizing {
		return score > best
	}

	return score < best
}
