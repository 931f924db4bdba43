// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package arena

import (
	"encoding/json"

	"code.hybscloud.com/turn/games/tictactoe"
)

// Wire message ids. Hello opens a match, then the server alternates
// state pushes and move prompts until the outcome terminates the
// stream. The client only ever sends moves.
const (
	MsgHello   = 1
	MsgState   = 2
	MsgPrompt  = 3
	MsgMove    = 4
	MsgOutcome = 5
	MsgError   = 6
)

// Frame is the wire envelope: message id plus message-specific body.
type Frame struct {
	T    int             `json:"t"`
	Data json.RawMessage `json:"data,omitempty"`
}

type HelloBody struct {
	Match string `json:"match"`
}

type StateBody struct {
	Turn  string    `json:"turn"`
	Board [9]string `json:"board"`
}

type PromptBody struct {
	Player   string `json:"player"`
	Rejected bool   `json:"rejected"`
}

type MoveBody struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

type WirePos struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

type OutcomeBody struct {
	Winner string    `json:"winner,omitempty"`
	Draw   bool      `json:"draw,omitempty"`
	Line   []WirePos `json:"line,omitempty"`
	Board  [9]string `json:"board"`
}

type ErrorBody struct {
	Reason string `json:"reason"`
}

func newFrame(t int, body any) (Frame, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return Frame{}, err
	}
	return Frame{T: t, Data: data}, nil
}

// encodeBoard renders cells as "X"/"O" with "" for vacancies.
func encodeBoard(b tictactoe.Board) [9]string {
	var cells [9]string
	for i, cell := range b {
		cells[i] = cell.String()
	}
	return cells
}

func outcomeBody(out tictactoe.Outcome) OutcomeBody {
	body := OutcomeBody{
		Winner: out.Winner.String(),
		Draw:   out.Draw,
		Board:  encodeBoard(out.Board),
	}
	if !out.Draw {
		for _, pos := range out.Line {
			body.Line = append(body.Line, WirePos{Col: pos.Col, Row: pos.Row})
		}
	}
	return body
}
