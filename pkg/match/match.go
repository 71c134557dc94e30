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

// Package match plays the automated player against itself at two search
// depths, to measure what the extra depth is worth.
package match

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"laptudirm.com/x/sparring/pkg/game"
	"laptudirm.com/x/sparring/pkg/rules"
	"laptudirm.com/x/sparring/pkg/search"
)

// Adjudication is the reason given for games cut short at the ply limit.
const Adjudication = "Adjudication"

// Config configures a match between two players.
type Config struct {
	// Search depths of player 1 and player 2.
	Depths [2]int

	// Games is rounded up to a whole number of colour swapped pairs.
	Games       int
	Concurrency int
	MaxPlies    int

	Book *Book
}

// Game is a single game of a match.
type Game struct {
	Number int
	FEN    string

	Depths [2]int

	// White is the index of the player playing White.
	White int
}

// GameResult is a played Game and its Result for player 1.
type GameResult struct {
	*Game

	Result  Result
	Outcome game.Outcome
	Moves   []rules.Move
}

func (result GameResult) String() string {
	return fmt.Sprintf(
		"Game #%d: depth %d vs depth %d: %s (%s)",
		result.Number, result.Depths[0], result.Depths[1],
		result.Result, result.Outcome,
	)
}

// Play plays the game to its end or the ply limit.
func (g *Game) Play(ctx context.Context, maxPlies int) (GameResult, error) {
	pos, err := rules.NewChess(g.FEN)
	if err != nil {
		return GameResult{}, err
	}

	// depths and searchers indexed by side
	var depths [rules.SideN]int
	depths[rules.White] = g.Depths[g.White]
	depths[rules.Black] = g.Depths[1^g.White]

	searchers := [rules.SideN]*search.Searcher{search.New(), search.New()}

	result := GameResult{Game: g}
	for ply := 0; ply < maxPlies; ply++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if result.Outcome = game.OutcomeOf(pos); result.Outcome.Kind != game.None {
			break
		}

		side := pos.SideToMove()
		best, err := searchers[side].SelectMove(pos, depths[side])
		if err != nil {
			return result, err
		}

		if err := pos.Apply(best.Move); err != nil {
			return result, fmt.Errorf("%w: %v", search.ErrCollaborator, err)
		}

		result.Moves = append(result.Moves, best.Move)
	}

	if result.Outcome.Kind == game.None {
		result.Outcome = game.OutcomeOf(pos)
	}

	switch result.Outcome.Kind {
	case game.None:
		result.Outcome = game.Outcome{Kind: game.Draw, Reason: Adjudication}
		result.Result = Draw
	case game.Draw:
		result.Result = Draw
	case game.Win:
		loser := g.White
		if result.Outcome.Winner == rules.White {
			loser ^= 1
		}
		result.Result = GameLostBy[loser]
	}

	return result, nil
}

// Run plays the configured match, reporting every finished game. Games
// are played in colour swapped pairs from the book's positions.
func Run(ctx context.Context, config Config, report func(GameResult)) (Tally, error) {
	var tally Tally

	book := config.Book
	if book == nil {
		var err error
		if book, err = NewBook(""); err != nil {
			return tally, err
		}
	}

	logrus.Infof(
		"match: depth %d vs depth %d, %d games, concurrency %d",
		config.Depths[0], config.Depths[1], config.Games, config.Concurrency,
	)

	g, ctx := errgroup.WithContext(ctx)

	games := make(chan *Game)
	results := make(chan GameResult)

	g.Go(func() error {
		defer close(games)

		number := 0
		for pair := 0; pair < (config.Games+1)/2; pair++ {
			fen := book.Next()
			for white := 0; white < 2; white++ {
				number++
				job := &Game{
					Number: number,
					FEN:    fen,
					Depths: config.Depths,
					White:  white,
				}

				select {
				case <-ctx.Done():
					return ctx.Err()
				case games <- job:
				}
			}
		}

		return nil
	})

	var wg sync.WaitGroup
	for i := 0; i < max(config.Concurrency, 1); i++ {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			for job := range games {
				logrus.Debugf("match: starting game #%d from %s", job.Number, job.FEN)
				result, err := job.Play(ctx, config.MaxPlies)
				if err != nil {
					return fmt.Errorf("game #%d: %w", job.Number, err)
				}

				select {
				case <-ctx.Done():
					return ctx.Err()
				case results <- result:
				}
			}

			return nil
		})
	}

	g.Go(func() error {
		wg.Wait()
		close(results)
		return nil
	})

	for result := range results {
		tally.Add(result.Result)
		if report != nil {
			report(result)
		}
	}

	return tally, g.Wait()
}
