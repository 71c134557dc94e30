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

// Package game implements the controller of a game between a human and
// the automated player. The controller owns the game session: it decides
// whose turn it is from the position, validates and commits the human's
// moves, and schedules the automated player's replies.
package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"laptudirm.com/x/sparring/pkg/rules"
	"laptudirm.com/x/sparring/pkg/search"
)

var (
	// ErrIllegalMove is returned when the human submits a move which is
	// not legal in the current position. It is rules.ErrIllegalMove.
	ErrIllegalMove = rules.ErrIllegalMove

	ErrNoGame         = errors.New("no game in progress, choose a side first")
	ErrAlreadyStarted = errors.New("game already started, reset it first")
	ErrGameOver       = errors.New("game is over")
	ErrNotYourTurn    = errors.New("not your turn")
)

// State is the state of a Controller.
type State uint8

const (
	AwaitingSideSelection State = iota
	InProgress
	Terminal
)

func (state State) String() string {
	switch state {
	case AwaitingSideSelection:
		return "awaiting side selection"
	case InProgress:
		return "in progress"
	case Terminal:
		return "terminal"
	default:
		return "?"
	}
}

// Session is the state of a single game.
type Session struct {
	Position rules.Position

	Human rules.Side

	Terminal bool
	Outcome  Outcome
}

// Config configures a Controller. Zero fields are given their defaults.
type Config struct {
	// Depth of the automated player's search.
	Depth int

	// Delay before the automated player moves.
	Delay time.Duration

	// StartFEN is the position new games start from.
	StartFEN string

	// NewPosition creates positions from FEN strings.
	NewPosition func(string) (rules.Position, error)
}

// Controller drives a game between a human and the automated player.
// A Controller is not safe for concurrent use.
type Controller struct {
	config    Config
	scheduler Scheduler
	searcher  *search.Searcher

	session *Session
	history []rules.Move

	selected    rules.Square
	hasSelected bool

	lastErr error

	// generation identifies the current session, so that automated moves
	// scheduled before a reset are not played in the next game.
	generation int
	pending    bool
}

// New creates a new Controller which hands automated moves to the given
// Scheduler. A nil Scheduler is replaced by a new Queue.
func New(config Config, scheduler Scheduler) *Controller {
	if config.Depth <= 0 {
		config.Depth = search.DefaultDepth
	}

	if config.StartFEN == "" {
		config.StartFEN = rules.StartFEN
	}

	if config.NewPosition == nil {
		config.NewPosition = rules.NewPosition
	}

	if scheduler == nil {
		scheduler = &Queue{}
	}

	return &Controller{
		config:    config,
		scheduler: scheduler,
		searcher:  search.New(),
	}
}

// ChooseSide starts a new game with the human playing the given side and
// the automated player the other one.
func (c *Controller) ChooseSide(side rules.Side) error {
	if c.session != nil {
		return c.fail(ErrAlreadyStarted)
	}

	pos, err := c.config.NewPosition(c.config.StartFEN)
	if err != nil {
		return c.fail(fmt.Errorf("new game: %w", err))
	}

	c.session = &Session{Position: pos, Human: side}
	c.lastErr = nil

	logrus.Debugf("game: human plays %s from %s", side, pos.FEN())
	c.afterCommit()
	return nil
}

// Select selects the human's piece on the given square, whose legal
// targets are then reported by Targets.
func (c *Controller) Select(sq rules.Square) error {
	if err := c.humanToMove(); err != nil {
		return c.fail(err)
	}

	if !c.owns(sq) {
		c.clearSelection()
		return c.fail(fmt.Errorf("%w: no %s piece on %s", ErrIllegalMove, c.session.Human, sq))
	}

	c.selected, c.hasSelected = sq, true
	c.lastErr = nil
	return nil
}

// Click handles the human clicking a square: their own pieces are
// selected, any other square is the target of a move of the selected
// piece. Clicks without a selection are ignored.
func (c *Controller) Click(sq rules.Square) error {
	if err := c.humanToMove(); err != nil {
		return c.fail(err)
	}

	switch {
	case c.owns(sq):
		return c.Select(sq)
	case c.hasSelected:
		return c.SubmitHumanMove(c.selected, sq)
	default:
		return nil
	}
}

// SubmitHumanMove plays the human's move from one square to another.
// Pawns reaching the last rank are promoted to queens. Illegal moves are
// rejected with ErrIllegalMove and leave the position unchanged.
func (c *Controller) SubmitHumanMove(from, to rules.Square) error {
	if err := c.humanToMove(); err != nil {
		return c.fail(err)
	}

	c.clearSelection()

	if !c.owns(from) {
		return c.fail(fmt.Errorf("%w: no %s piece on %s", ErrIllegalMove, c.session.Human, from))
	}

	mov, found := moveTo(c.session.Position.LegalMovesFrom(from), to)
	if !found {
		return c.fail(fmt.Errorf("%w: %s%s", ErrIllegalMove, from, to))
	}

	if err := c.commit(mov); err != nil {
		return c.fail(err)
	}

	c.lastErr = nil
	return nil
}

// PlayAutomated searches for and plays the automated player's move. It is
// normally run by the Scheduler. Rules engine failures are returned as is.
func (c *Controller) PlayAutomated() error {
	if err := c.turnOf(c.AutomatedSide()); err != nil {
		return err
	}

	c.pending = false

	result, err := c.searcher.SelectMove(c.session.Position, c.config.Depth)
	if err != nil {
		return err
	}

	if !result.Found {
		return fmt.Errorf("automated move: no move found in %s", c.session.Position.FEN())
	}

	logrus.Debugf("game: automated %s plays %s", c.AutomatedSide(), result)
	if err := c.commit(result.Move); err != nil {
		return fmt.Errorf("%w: %v", search.ErrCollaborator, err)
	}

	return nil
}

// Reset abandons the current game, if any.
func (c *Controller) Reset() {
	c.session = nil
	c.history = nil
	c.lastErr = nil
	c.pending = false
	c.generation++
	c.clearSelection()

	logrus.Debug("game: reset")
}

// State returns the current state of the Controller.
func (c *Controller) State() State {
	switch {
	case c.session == nil:
		return AwaitingSideSelection
	case c.session.Terminal:
		return Terminal
	default:
		return InProgress
	}
}

// CurrentPosition returns the position of the current game, nil if there
// is none. The position must not be modified.
func (c *Controller) CurrentPosition() rules.Position {
	if c.session == nil {
		return nil
	}

	return c.session.Position
}

// TerminalOutcome returns the outcome of the current game, which has Kind
// None if the game hasn't ended.
func (c *Controller) TerminalOutcome() Outcome {
	if c.session == nil {
		return Outcome{}
	}

	return c.session.Outcome
}

// LastError returns the error of the last rejected command, nil if the
// last command succeeded.
func (c *Controller) LastError() error {
	return c.lastErr
}

// HumanSide returns the human's side, valid only while a game exists.
func (c *Controller) HumanSide() rules.Side {
	if c.session == nil {
		return rules.White
	}

	return c.session.Human
}

// AutomatedSide returns the automated player's side.
func (c *Controller) AutomatedSide() rules.Side {
	return c.HumanSide().Other()
}

// Selected returns the square of the selected piece, if any.
func (c *Controller) Selected() (rules.Square, bool) {
	return c.selected, c.hasSelected
}

// Targets returns the squares the selected piece can move to.
func (c *Controller) Targets() []rules.Square {
	if !c.hasSelected || c.session == nil {
		return nil
	}

	var targets []rules.Square
	for _, mov := range c.session.Position.LegalMovesFrom(c.selected) {
		if mov.Promotion == rules.NoPiece || mov.Promotion == rules.Queen {
			targets = append(targets, mov.To)
		}
	}

	return targets
}

// History returns the moves played in the current game.
func (c *Controller) History() []rules.Move {
	return append([]rules.Move(nil), c.history...)
}

// commit plays the given move on the session's position.
func (c *Controller) commit(mov rules.Move) error {
	if err := c.session.Position.Apply(mov); err != nil {
		return err
	}

	c.history = append(c.history, mov)
	logrus.Debugf("game: committed %s, %s", mov, c.session.Position.FEN())

	c.afterCommit()
	return nil
}

// afterCommit adjudicates the position and, if the automated player is to
// move, schedules its move.
func (c *Controller) afterCommit() {
	pos := c.session.Position

	if outcome := OutcomeOf(pos); outcome.Kind != None {
		c.session.Terminal = true
		c.session.Outcome = outcome
		logrus.Infof("game: %s (%s)", outcome, outcome.Score())
		return
	}

	if pos.SideToMove() != c.AutomatedSide() || c.pending {
		return
	}

	c.pending = true
	generation := c.generation
	c.scheduler.Schedule(c.config.Delay, func() error {
		if generation != c.generation || !c.pending {
			return nil
		}

		return c.PlayAutomated()
	})
}

// turnOf checks that a game is in progress with the given side to move.
func (c *Controller) turnOf(side rules.Side) error {
	switch c.State() {
	case AwaitingSideSelection:
		return ErrNoGame
	case Terminal:
		return ErrGameOver
	}

	if c.session.Position.SideToMove() != side {
		return ErrNotYourTurn
	}

	return nil
}

func (c *Controller) humanToMove() error {
	return c.turnOf(c.HumanSide())
}

// owns reports whether the human has a piece on the given square.
func (c *Controller) owns(sq rules.Square) bool {
	occupant := c.session.Position.Occupancy()[sq]
	return occupant.Type != rules.NoPiece && occupant.Side == c.session.Human
}

func (c *Controller) clearSelection() {
	c.selected, c.hasSelected = 0, false
}

// fail records a rejected command's error for the presentation layer.
func (c *Controller) fail(err error) error {
	c.lastErr = err
	return err
}

// moveTo finds the move to the given square, preferring queen promotions.
func moveTo(moves []rules.Move, to rules.Square) (rules.Move, bool) {
	for _, mov := range moves {
		if mov.To == to && (mov.Promotion == rules.NoPiece || mov.Promotion == rules.Queen) {
			return mov, true
		}
	}

	return rules.Move{}, false
}
