package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
)

// Version indicates the current build version.
var Version = "dev"

func main() {
	root := newRootCmd()

	if err := fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(Version),
		fang.WithNotifySignal(os.Interrupt, os.Kill),
	); err != nil {
		os.Exit(1)
	}
}
