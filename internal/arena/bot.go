// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package arena

import "code.hybscloud.com/turn/games/tictactoe"

// botMove answers for the house player: the first vacant cell in
// row-major order. Deterministic, so a match replays identically from
// the same client moves.
func botMove(b tictactoe.Board) tictactoe.Move {
	for i, cell := range b {
		if cell == tictactoe.PlayerNone {
			return tictactoe.Move{Col: i % tictactoe.Size, Row: i / tictactoe.Size}
		}
	}
	return tictactoe.Move{}
}
