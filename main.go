// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"os"
	"os/user"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"tinyscript/internal/config"
	"tinyscript/repl"
)

func main() {
	cfg, err := config.LoadOrDefault(os.Getenv("TINY_CONFIG"))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	commonlog.Configure(cfg.Verbosity, nil)

	name := "there"
	if currentUser, err := user.Current(); err == nil {
		name = currentUser.Username
	}

	fmt.Printf("Welcome to the Tiny REPL, %s! Type :quit to leave.\n", name)
	if err := repl.New(cfg.REPL, os.Stdout).Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
