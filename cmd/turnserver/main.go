// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command turnserver runs the WebSocket tictactoe arena.
package main

import (
	"go.uber.org/zap"

	"code.hybscloud.com/turn/internal/arena"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize zap logger: " + err.Error())
	}
	defer logger.Sync()
	log := logger.Sugar()

	cfg, err := arena.LoadConfig(".")
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	srv := arena.NewServer(cfg, log)
	log.Infof("starting turn server on %s", cfg.Listen)
	if err := srv.Serve(); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
