package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/pfrederiksen/elcap-firsts/internal/cli"
)

var version = "dev"

func main() {
	cli.Version = version
	root := cli.NewRootCmd()

	if err := fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt, os.Kill),
	); err != nil {
		os.Exit(1)
	}
}
