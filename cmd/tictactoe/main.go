// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command tictactoe plays a hotseat match in the terminal. It is a
// plain driver: render the hosted state between turns, read a move,
// resume the session, report the outcome.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"code.hybscloud.com/turn"
	"code.hybscloud.com/turn/games/tictactoe"
)

func main() {
	h := turn.NewHost(tictactoe.NewGame())
	s, err := turn.Start[tictactoe.Prompt, tictactoe.Move](h, tictactoe.Play)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to start match:", err)
		os.Exit(1)
	}

	in := bufio.NewScanner(os.Stdin)
	for {
		cur := s.Current()
		if out, ok := cur.GetRight(); ok {
			fmt.Print(render(h.Snapshot()))
			if out.Draw {
				fmt.Println("Cat's game.")
			} else {
				fmt.Printf("%v wins!\n", out.Winner)
			}
			return
		}

		prompt, _ := cur.GetLeft()
		fmt.Print(render(h.Snapshot()))
		if prompt.Rejected {
			fmt.Println("Invalid move, try again.")
		}
		fmt.Printf("%v to move (col row): ", prompt.Player)

		if !in.Scan() {
			s.Close()
			fmt.Println("\nMatch abandoned.")
			return
		}
		var m tictactoe.Move
		if _, err := fmt.Sscanf(strings.TrimSpace(in.Text()), "%d %d", &m.Col, &m.Row); err != nil {
			fmt.Println("Enter two numbers, e.g. 0 2.")
			continue
		}
		if _, err := s.Resume(m); err != nil {
			fmt.Fprintln(os.Stderr, "resume failed:", err)
			return
		}
	}
}

func render(g tictactoe.Game) string {
	var sb strings.Builder
	sb.WriteString("\n")
	for row := 0; row < tictactoe.Size; row++ {
		if row > 0 {
			sb.WriteString("---+---+---\n")
		}
		for col := 0; col < tictactoe.Size; col++ {
			mark := g.Board.At(tictactoe.Pos{Col: col, Row: row}).String()
			if mark == "" {
				mark = "."
			}
			if col > 0 {
				sb.WriteString("|")
			}
			fmt.Fprintf(&sb, " %s ", mark)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	return sb.String()
}
