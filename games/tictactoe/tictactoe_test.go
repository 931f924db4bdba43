// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tictactoe_test

import (
	"errors"
	"testing"

	"code.hybscloud.com/turn"
	"code.hybscloud.com/turn/games/tictactoe"
)

func open(t *testing.T) (*turn.Host[tictactoe.Game], *turn.Session[tictactoe.Prompt, tictactoe.Move, tictactoe.Outcome]) {
	t.Helper()
	h := turn.NewHost(tictactoe.NewGame())
	s, err := turn.Start[tictactoe.Prompt, tictactoe.Move](h, tictactoe.Play)
	if err != nil {
		t.Fatalf("Start error: %v", err)
	}
	return h, s
}

// playMoves drives a match through the scripted moves and returns the
// prompts observed along the way plus the outcome.
func playMoves(t *testing.T, moves []tictactoe.Move) (*turn.Host[tictactoe.Game], []tictactoe.Prompt, tictactoe.Outcome) {
	t.Helper()
	h, s := open(t)
	var prompts []tictactoe.Prompt
	for i := 0; ; i++ {
		cur := s.Current()
		if out, ok := cur.GetRight(); ok {
			return h, prompts, out
		}
		prompt, _ := cur.GetLeft()
		prompts = append(prompts, prompt)
		if i >= len(moves) {
			t.Fatalf("script exhausted after %d moves, still prompting %v", len(moves), prompt.Player)
		}
		if _, err := s.Resume(moves[i]); err != nil {
			t.Fatalf("Resume error: %v", err)
		}
	}
}

func TestOpeningPrompt(t *testing.T) {
	_, s := open(t)
	defer s.Close()

	prompt, ok := s.Current().GetLeft()
	if !ok {
		t.Fatal("expected a pending prompt on a fresh match")
	}
	if prompt.Player != tictactoe.PlayerX {
		t.Fatalf("first prompt for %v, want X", prompt.Player)
	}
	if prompt.Rejected {
		t.Fatal("first prompt marked rejected")
	}
	for i, cell := range prompt.Board {
		if cell != tictactoe.PlayerNone {
			t.Fatalf("fresh board cell %d is %v", i, cell)
		}
	}
}

func TestTurnAlternation(t *testing.T) {
	_, s := open(t)
	defer s.Close()

	if _, err := s.Resume(tictactoe.Move{Col: 0, Row: 0}); err != nil {
		t.Fatalf("Resume error: %v", err)
	}
	prompt, _ := s.Current().GetLeft()
	if prompt.Player != tictactoe.PlayerO {
		t.Fatalf("second prompt for %v, want O", prompt.Player)
	}
	if got := prompt.Board.At(tictactoe.Pos{Col: 0, Row: 0}); got != tictactoe.PlayerX {
		t.Fatalf("claimed cell owner got %v, want X", got)
	}
}

func TestRejectOccupied(t *testing.T) {
	_, s := open(t)
	defer s.Close()

	s.Resume(tictactoe.Move{Col: 0, Row: 0})
	s.Resume(tictactoe.Move{Col: 0, Row: 0})

	prompt, _ := s.Current().GetLeft()
	if !prompt.Rejected {
		t.Fatal("occupied cell accepted")
	}
	if prompt.Player != tictactoe.PlayerO {
		t.Fatalf("turn passed on rejection: prompt for %v, want O", prompt.Player)
	}
}

func TestRejectOutOfRange(t *testing.T) {
	_, s := open(t)
	defer s.Close()

	s.Resume(tictactoe.Move{Col: 3, Row: 0})
	prompt, _ := s.Current().GetLeft()
	if !prompt.Rejected {
		t.Fatal("out-of-range move accepted")
	}
	if prompt.Player != tictactoe.PlayerX {
		t.Fatalf("turn passed on rejection: prompt for %v, want X", prompt.Player)
	}

	s.Resume(tictactoe.Move{Col: -1, Row: 2})
	if prompt, _ = s.Current().GetLeft(); !prompt.Rejected {
		t.Fatal("negative move accepted")
	}
}

func TestWinRow(t *testing.T) {
	_, prompts, out := playMoves(t, []tictactoe.Move{
		{Col: 0, Row: 0}, {Col: 0, Row: 1},
		{Col: 1, Row: 0}, {Col: 1, Row: 1},
		{Col: 2, Row: 0},
	})

	if out.Winner != tictactoe.PlayerX || out.Draw {
		t.Fatalf("outcome got %+v, want X win", out)
	}
	wantLine := [3]tictactoe.Pos{{Col: 0, Row: 0}, {Col: 1, Row: 0}, {Col: 2, Row: 0}}
	if out.Line != wantLine {
		t.Fatalf("line got %v, want %v", out.Line, wantLine)
	}
	want := []tictactoe.Player{
		tictactoe.PlayerX, tictactoe.PlayerO, tictactoe.PlayerX,
		tictactoe.PlayerO, tictactoe.PlayerX,
	}
	for i, prompt := range prompts {
		if prompt.Player != want[i] {
			t.Fatalf("prompt %d for %v, want %v", i, prompt.Player, want[i])
		}
		if prompt.Rejected {
			t.Fatalf("prompt %d marked rejected", i)
		}
	}
}

func TestWinColumn(t *testing.T) {
	_, _, out := playMoves(t, []tictactoe.Move{
		{Col: 0, Row: 0}, {Col: 1, Row: 0},
		{Col: 0, Row: 1}, {Col: 1, Row: 1},
		{Col: 0, Row: 2},
	})

	if out.Winner != tictactoe.PlayerX {
		t.Fatalf("winner got %v, want X", out.Winner)
	}
	wantLine := [3]tictactoe.Pos{{Col: 0, Row: 0}, {Col: 0, Row: 1}, {Col: 0, Row: 2}}
	if out.Line != wantLine {
		t.Fatalf("line got %v, want %v", out.Line, wantLine)
	}
}

func TestWinDiagonal(t *testing.T) {
	_, _, out := playMoves(t, []tictactoe.Move{
		{Col: 0, Row: 0}, {Col: 1, Row: 0},
		{Col: 1, Row: 1}, {Col: 2, Row: 0},
		{Col: 2, Row: 2},
	})

	if out.Winner != tictactoe.PlayerX {
		t.Fatalf("winner got %v, want X", out.Winner)
	}
	wantLine := [3]tictactoe.Pos{{Col: 0, Row: 0}, {Col: 1, Row: 1}, {Col: 2, Row: 2}}
	if out.Line != wantLine {
		t.Fatalf("line got %v, want %v", out.Line, wantLine)
	}
}

func TestOpponentWin(t *testing.T) {
	_, _, out := playMoves(t, []tictactoe.Move{
		{Col: 0, Row: 0}, {Col: 0, Row: 1},
		{Col: 1, Row: 0}, {Col: 1, Row: 1},
		{Col: 0, Row: 2}, {Col: 2, Row: 1},
	})

	if out.Winner != tictactoe.PlayerO {
		t.Fatalf("winner got %v, want O", out.Winner)
	}
	wantLine := [3]tictactoe.Pos{{Col: 0, Row: 1}, {Col: 1, Row: 1}, {Col: 2, Row: 1}}
	if out.Line != wantLine {
		t.Fatalf("line got %v, want %v", out.Line, wantLine)
	}
}

func TestDraw(t *testing.T) {
	h, prompts, out := playMoves(t, []tictactoe.Move{
		{Col: 0, Row: 0}, {Col: 1, Row: 0},
		{Col: 2, Row: 0}, {Col: 1, Row: 1},
		{Col: 0, Row: 1}, {Col: 2, Row: 1},
		{Col: 2, Row: 2}, {Col: 0, Row: 2},
		{Col: 1, Row: 2},
	})

	if !out.Draw || out.Winner != tictactoe.PlayerNone {
		t.Fatalf("outcome got %+v, want draw", out)
	}
	if len(prompts) != 9 {
		t.Fatalf("prompt count got %d, want 9", len(prompts))
	}
	snap := h.Snapshot()
	if snap.Outcome == nil || !snap.Outcome.Draw {
		t.Fatalf("hosted outcome got %+v, want draw", snap.Outcome)
	}
}

func TestHostedOutcomeRecorded(t *testing.T) {
	h, _, out := playMoves(t, []tictactoe.Move{
		{Col: 0, Row: 0}, {Col: 1, Row: 0},
		{Col: 0, Row: 1}, {Col: 1, Row: 1},
		{Col: 0, Row: 2},
	})

	snap := h.Snapshot()
	if snap.Outcome == nil {
		t.Fatal("hosted outcome not recorded")
	}
	if snap.Outcome.Winner != out.Winner || snap.Outcome.Line != out.Line {
		t.Fatalf("hosted outcome %+v does not match session outcome %+v", *snap.Outcome, out)
	}
	if got := snap.Board.At(tictactoe.Pos{Col: 0, Row: 2}); got != tictactoe.PlayerX {
		t.Fatalf("final board cell got %v, want X", got)
	}
}

func TestRejectionHook(t *testing.T) {
	h, s := open(t)
	defer s.Close()

	s.Resume(tictactoe.Move{Col: 0, Row: 0})
	s.Resume(tictactoe.Move{Col: 0, Row: 0})
	s.Resume(tictactoe.Move{Col: 7, Row: 7})

	if got := h.Snapshot().Rejections; got != 2 {
		t.Fatalf("rejection tally got %d, want 2", got)
	}
}

func TestMoveAfterGameOver(t *testing.T) {
	_, s := open(t)
	moves := []tictactoe.Move{
		{Col: 0, Row: 0}, {Col: 0, Row: 1},
		{Col: 1, Row: 0}, {Col: 1, Row: 1},
		{Col: 2, Row: 0},
	}
	for _, m := range moves {
		if _, err := s.Resume(m); err != nil {
			t.Fatalf("Resume error: %v", err)
		}
	}
	if !s.Done() {
		t.Fatal("match not done after winning move")
	}
	if _, err := s.Resume(tictactoe.Move{Col: 2, Row: 2}); !errors.Is(err, turn.ErrCompleted) {
		t.Fatalf("post-game Resume error got %v, want ErrCompleted", err)
	}
}
