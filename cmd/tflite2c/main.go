/*
PURPOSE:
  Entry point for the tflite2c application.
  Runs the CLI and exits with its status code.

IMPLEMENTATION RULES:
  - Keep main() minimal. All logic belongs in internal/ packages.

USAGE:
  go build -ldflags "-X github.com/daryltucker/tflite2c/internal/cli.version=v1.0.0" -o tflite2c ./cmd/tflite2c
  ./tflite2c [command] [flags]

RELATED FILES:
  - internal/cli/root.go - The actual root command definition.
*/

package main

import (
	"os"

	"github.com/daryltucker/tflite2c/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:], os.Stdout, os.Stderr))
}
