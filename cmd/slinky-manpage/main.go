package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/slinky/cmd/slinky"
)

func main() {
	rootCmd := slinky.NewRootCmd()

	err := doc.GenMan(rootCmd, slinky.ManHeader(), os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
