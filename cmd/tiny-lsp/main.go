// SPDX-License-Identifier: Apache-2.0
package main

import (
	"flag"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	"github.com/tliron/glsp/server"

	"tinyscript/internal/config"
	"tinyscript/internal/lsp"
)

var log = commonlog.GetLogger("tiny.lsp.main")

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	logPath := flag.String("log", "", "write logs to this file instead of stderr")
	flag.Parse()

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		commonlog.Configure(1, nil)
		log.Errorf("%s", err)
		os.Exit(1)
	}

	// stdout carries the protocol, so logs go to stderr or a file
	var path *string
	if *logPath != "" {
		path = logPath
	}
	commonlog.Configure(max(cfg.Verbosity, 1), path)

	tinyHandler := lsp.NewTinyHandler()
	handler := tinyHandler.Handler()

	// debug=false keeps glsp from logging every message
	s := server.NewServer(&handler, lsp.Name, false)

	log.Infof("starting %s language server %s", lsp.Name, lsp.Version)
	if err := s.RunStdio(); err != nil {
		log.Errorf("language server stopped: %s", err)
		os.Exit(1)
	}
}
