// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package arena serves tictactoe matches over WebSocket. Each
// connection hosts one session driven through a relay: the client
// answers prompts for X, the house bot answers for O, and the outcome
// terminates the stream.
package arena

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"code.hybscloud.com/iox"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"code.hybscloud.com/turn"
	"code.hybscloud.com/turn/games/tictactoe"
)

type matchRelay = turn.Relay[tictactoe.Prompt, tictactoe.Move, tictactoe.Outcome]

// Server accepts game connections and a metrics scrape endpoint.
type Server struct {
	cfg      *Config
	log      *zap.SugaredLogger
	metrics  *Metrics
	upgrader websocket.Upgrader
}

func NewServer(cfg *Config, log *zap.SugaredLogger) *Server {
	return &Server{
		cfg:     cfg,
		log:     log,
		metrics: NewMetrics("turnserver"),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// Serve listens for game connections on cfg.Listen and serves the
// Prometheus endpoint on cfg.MetricsListen. Blocks until the game
// listener fails.
func (sv *Server) Serve() error {
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", sv.metrics.Handler())
		if err := http.ListenAndServe(sv.cfg.MetricsListen, mux); err != nil {
			sv.log.Errorf("metrics listener failed: %v", err)
		}
	}()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", sv.handleWebSocket)
	sv.log.Infof("arena listening on %s", sv.cfg.Listen)
	return http.ListenAndServe(sv.cfg.Listen, mux)
}

func (sv *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := sv.upgrader.Upgrade(w, r, nil)
	if err != nil {
		sv.log.Infof("failed to upgrade connection: %v", err)
		return
	}
	sv.playMatch(conn)
}

// playMatch runs one connection-bound match to its end. Three
// goroutines share the work along the relay's ownership rule: this
// one polls events and offers inputs (driver side), one pumps the
// session (serving side), one parses client frames into moves.
func (sv *Server) playMatch(conn *websocket.Conn) {
	matchID := uuid.New().String()
	log := sv.log.With("match", matchID)

	if sv.cfg.ReadLimit > 0 {
		conn.SetReadLimit(sv.cfg.ReadLimit)
	}

	h := turn.NewHost(tictactoe.NewGame())
	s, err := turn.Start[tictactoe.Prompt, tictactoe.Move](h, tictactoe.Play)
	if err != nil {
		log.Errorf("failed to start match session: %v", err)
		conn.Close()
		return
	}
	relay := turn.NewRelay(s)

	log.Infof("new match from %s, session serial %d", conn.RemoteAddr(), relay.Serial())
	sv.metrics.ActiveMatches.Inc()
	started := time.Now()

	w := &wsWriter{conn: conn}
	moves := make(chan tictactoe.Move, 1)

	served := make(chan error, 1)
	go func() {
		err := relay.Serve()
		s.Close()
		served <- err
	}()
	go sv.readMoves(conn, w, moves, log)

	result := sv.driveMatch(relay, w, moves, matchID)

	relay.Hangup()
	conn.Close()
	<-served

	sv.metrics.ActiveMatches.Dec()
	sv.metrics.FinishedMatches.WithLabelValues(result).Inc()
	sv.metrics.MatchDuration.Observe(time.Since(started).Seconds())
	log.Infof("match finished: %s", result)
}

// driveMatch owns the relay's driver side. Each polled prompt becomes
// a state push; X prompts additionally ask the client for a move, O
// prompts are answered by the bot. Returns the result label for
// metrics: "x", "o", "draw", or "abandoned".
func (sv *Server) driveMatch(relay *matchRelay, w *wsWriter, moves <-chan tictactoe.Move, matchID string) string {
	if err := w.send(MsgHello, HelloBody{Match: matchID}); err != nil {
		return "abandoned"
	}

	var bo iox.Backoff
	for {
		cur, err := relay.Poll()
		if err != nil {
			if !iox.IsWouldBlock(err) {
				return "abandoned"
			}
			bo.Wait()
			continue
		}
		bo.Reset()

		if out, ok := cur.GetRight(); ok {
			w.send(MsgOutcome, outcomeBody(out))
			switch {
			case out.Draw:
				return "draw"
			case out.Winner == tictactoe.PlayerO:
				return "o"
			default:
				return "x"
			}
		}

		prompt, _ := cur.GetLeft()
		if err := w.send(MsgState, StateBody{Turn: prompt.Player.String(), Board: encodeBoard(prompt.Board)}); err != nil {
			return "abandoned"
		}

		var m tictactoe.Move
		if prompt.Player == tictactoe.PlayerX {
			if err := w.send(MsgPrompt, PromptBody{Player: prompt.Player.String(), Rejected: prompt.Rejected}); err != nil {
				return "abandoned"
			}
			var ok bool
			if m, ok = <-moves; !ok {
				return "abandoned"
			}
			sv.metrics.Moves.Inc()
		} else {
			m = botMove(prompt.Board)
		}

		if err := sv.offer(relay, m); err != nil {
			return "abandoned"
		}
	}
}

func (sv *Server) offer(relay *matchRelay, m tictactoe.Move) error {
	var bo iox.Backoff
	for {
		err := relay.Offer(m)
		if err == nil {
			return nil
		}
		if !iox.IsWouldBlock(err) {
			return err
		}
		bo.Wait()
	}
}

// readMoves parses client frames until the connection drops. Only move
// frames feed the match; a move nobody asked for is bounced back with
// an error frame rather than queued.
func (sv *Server) readMoves(conn *websocket.Conn, w *wsWriter, moves chan<- tictactoe.Move, log *zap.SugaredLogger) {
	defer close(moves)
	for {
		var frame Frame
		if err := conn.ReadJSON(&frame); err != nil {
			log.Infof("connection closed: %v", err)
			return
		}
		switch frame.T {
		case MsgMove:
			var body MoveBody
			if err := json.Unmarshal(frame.Data, &body); err != nil {
				w.send(MsgError, ErrorBody{Reason: "malformed move"})
				continue
			}
			select {
			case moves <- tictactoe.Move{Col: body.Col, Row: body.Row}:
			default:
				w.send(MsgError, ErrorBody{Reason: "move not awaited"})
			}
		default:
			w.send(MsgError, ErrorBody{Reason: "unexpected message"})
		}
	}
}

// wsWriter serializes frame writes; the reader and the driver both
// talk to the peer.
type wsWriter struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (w *wsWriter) send(t int, body any) error {
	frame, err := newFrame(t, body)
	if err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.conn.WriteJSON(frame)
}
