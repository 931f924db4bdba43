// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package tictactoe implements tic-tac-toe as one linear suspendable
// routine: Play prompts for each move in turn order and completes with
// the outcome. Invalid moves are not errors; the routine re-prompts
// with the Rejected flag set.
package tictactoe

// Size is the width and height of the (square) board.
const Size = 3

// Player identifies a piece owner. The zero value marks a vacant cell.
type Player uint8

const (
	PlayerNone Player = iota
	PlayerX
	PlayerO
)

func (p Player) String() string {
	switch p {
	case PlayerX:
		return "X"
	case PlayerO:
		return "O"
	}
	return ""
}

// Next returns the player who moves after p. X moves first.
func (p Player) Next() Player {
	switch p {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	}
	return p
}

// Pos is a validated board position.
type Pos struct {
	Col, Row int
}

func (p Pos) index() int {
	return p.Row*Size + p.Col
}

// Move is raw driver input for one turn. Coordinates are unchecked;
// an out-of-range or occupied target triggers a re-prompt.
type Move struct {
	Col, Row int
}

func (m Move) pos() (Pos, bool) {
	if m.Col < 0 || m.Col >= Size || m.Row < 0 || m.Row >= Size {
		return Pos{}, false
	}
	return Pos{Col: m.Col, Row: m.Row}, true
}

// Board stores cells in row-major order.
type Board [Size * Size]Player

// At returns the owner of the cell at p.
func (b Board) At(p Pos) Player {
	return b[p.index()]
}

func (b Board) full() bool {
	for _, cell := range b {
		if cell == PlayerNone {
			return false
		}
	}
	return true
}

// lines enumerates every straight line on the board: rows, columns,
// and both diagonals.
var lines = [8][3]Pos{
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// winner scans all lines for a single owner.
func (b Board) winner() (Player, [3]Pos, bool) {
	for _, line := range lines {
		owner := b.At(line[0])
		if owner != PlayerNone && b.At(line[1]) == owner && b.At(line[2]) == owner {
			return owner, line, true
		}
	}
	return PlayerNone, [3]Pos{}, false
}

// Prompt is the session event: a request for the given player's move.
// Rejected reports that the previous attempt was invalid. The board
// copy lets a driver render without touching the host state.
type Prompt struct {
	Player   Player
	Rejected bool
	Board    Board
}

// Outcome is the session result: a win with its line, or a draw.
// Winner is PlayerNone when Draw is set.
type Outcome struct {
	Winner Player
	Line   [3]Pos
	Draw   bool
	Board  Board
}

// Game is the hosted match state. Drivers render from snapshots of it
// between turns; the routine mutates it through the host.
type Game struct {
	Turn  Player
	Board Board

	// Outcome is set once the match is decided.
	Outcome *Outcome

	// Rejections counts invalid attempts, maintained by the event hook.
	Rejections int
}

// NewGame returns the initial match state with X to move.
func NewGame() Game {
	return Game{Turn: PlayerX}
}

// HandleEvent observes every emitted prompt before the driver does.
func (g *Game) HandleEvent(ev Prompt) {
	if ev.Rejected {
		g.Rejections++
	}
}

// takeTurn claims pos for the current player and passes the turn.
// Returns false if the cell is occupied; the turn does not pass.
func (g *Game) takeTurn(p Pos) bool {
	if g.Board[p.index()] != PlayerNone {
		return false
	}
	g.Board[p.index()] = g.Turn
	g.Turn = g.Turn.Next()
	return true
}

// checkOutcome reports whether the match is decided.
func (g *Game) checkOutcome() (Outcome, bool) {
	if owner, line, ok := g.Board.winner(); ok {
		return Outcome{Winner: owner, Line: line, Board: g.Board}, true
	}
	if g.Board.full() {
		return Outcome{Draw: true, Board: g.Board}, true
	}
	return Outcome{}, false
}
