package main

import (
	"os"
	"runtime/debug"

	"github.com/mezonai/mina-connector/cmd"
	"github.com/mezonai/mina-connector/logx"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			_ = logx.Errorf("CONNECTOR CRASHED: %v\n%s", r, debug.Stack())
			os.Exit(1)
		}
	}()

	cmd.Execute()
}
