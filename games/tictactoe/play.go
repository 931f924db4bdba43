// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tictactoe

import (
	"code.hybscloud.com/kont"
	"code.hybscloud.com/turn"
)

// Play is the whole match as one routine. Each round emits a Prompt
// for the current player and receives a Move; invalid moves loop back
// into a rejected re-prompt without passing the turn. The routine
// completes with the Outcome, which it also records on the hosted
// state for drivers that render after the fact.
//
// Open a match with turn.Start:
//
//	h := turn.NewHost(tictactoe.NewGame())
//	s, err := turn.Start[tictactoe.Prompt, tictactoe.Move](h, tictactoe.Play)
func Play(h *turn.Host[Game]) kont.Eff[Outcome] {
	return turn.Loop(false, func(rejected bool) kont.Eff[kont.Either[bool, Outcome]] {
		var prompt Prompt
		h.View(func(g *Game) {
			prompt = Prompt{Player: g.Turn, Rejected: rejected, Board: g.Board}
		})
		return turn.EmitBind(prompt, func(m Move) kont.Eff[kont.Either[bool, Outcome]] {
			pos, ok := m.pos()
			if !ok {
				return kont.Pure(kont.Left[bool, Outcome](true))
			}
			taken := false
			var done *Outcome
			h.Update(func(g *Game) {
				if taken = g.takeTurn(pos); !taken {
					return
				}
				if out, over := g.checkOutcome(); over {
					g.Outcome = &out
					done = &out
				}
			})
			if !taken {
				return kont.Pure(kont.Left[bool, Outcome](true))
			}
			if done != nil {
				return kont.Pure(kont.Right[bool, Outcome](*done))
			}
			return kont.Pure(kont.Left[bool, Outcome](false))
		})
	})
}
