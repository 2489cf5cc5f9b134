package main

import (
	"fmt"
	"os"

	"github.com/FiQCI/qflip/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "qflip: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
