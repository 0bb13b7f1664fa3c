package main

import (
	"os"

	"github.com/arthur-debert/slinky/cmd/slinky"
	"github.com/arthur-debert/slinky/pkg/config"
	"github.com/arthur-debert/slinky/pkg/output"
)

func main() {
	cmd := slinky.NewLnCmd()
	if err := cmd.Execute(); err != nil {
		output.New(os.Stdout, os.Stderr, output.Options{Color: config.ColorAuto}).Error(err)
		os.Exit(1)
	}
}
