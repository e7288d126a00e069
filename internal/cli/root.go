/*
PURPOSE:
  Defines the root Cobra command for the tflite2c CLI.
  Handles global flags, logger/style setup and exit codes.

REQUIREMENTS:
  User-specified:
  - Provide a CLI interface.
  - Support global flags like --config and --verbose.

  Implementation-discovered:
  - Commands are built per invocation (newRootCmd) so tests and
    testscript can run the CLI repeatedly in one process.

ARCHITECTURE INTEGRATION:
  - Called by: cmd/tflite2c/main.go
  - Calls: Child commands (convert, batch, list, header, version)

ERROR HANDLING:
  - Run returns an exit code; errors are printed once as "tflite2c: <err>".
  - errExit signals a command already reported its own failure.

IMPLEMENTATION RULES:
  - Use `PersistentFlags()` for flags available to all subcommands.
  - Keep Run logic in subcommands.

USAGE:
  os.Exit(cli.Run(os.Args[1:], os.Stdout, os.Stderr))

SELF-HEALING INSTRUCTIONS:
  - If adding new global flags, add them to newRootCmd().

RELATED FILES:
  - cmd/tflite2c/main.go

MAINTENANCE:
  - Update when adding global configuration options.
*/

package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/daryltucker/tflite2c/internal/config"
	"github.com/daryltucker/tflite2c/internal/output"
	"github.com/daryltucker/tflite2c/internal/style"
	"github.com/spf13/cobra"
)

// Version metadata injected via ldflags.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// errExit is returned by RunE functions that already wrote their error.
var errExit = errors.New("exit")

// Run executes the tflite2c CLI with the given args and returns the exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	if args == nil {
		args = []string{}
	}
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		if !errors.Is(err, errExit) {
			fmt.Fprintf(stderr, "tflite2c: %v\n", err)
			if hint := hintFor(err); hint != "" {
				fmt.Fprintf(stderr, "hint: %s\n", hint)
			}
		}
		return 1
	}
	return 0
}

// globals are the persistent flags shared by every subcommand.
type globals struct {
	cfgFile string
	color   string
	verbose bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	g := &globals{}
	root := &cobra.Command{
		Use:   "tflite2c",
		Short: "Convert TensorFlow Lite models into C++ sources for embedded keyword spotting",
		Long: `tflite2c embeds a .tflite model in a C++ source file as an aligned byte array,
together with the accessors (frame shift, frame length, MFCC count, recording
window) the keyword-spotting runtime reads at start-up.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.PersistentFlags().StringVar(&g.cfgFile, "config", "", "config file (default is ./tflite2c.yaml, then $XDG_CONFIG_HOME/tflite2c/config.yaml)")
	root.PersistentFlags().StringVar(&g.color, "color", "auto", "Color output: always, auto, never")
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "Enable verbose logging")
	root.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		switch g.color {
		case "always", "auto", "never":
			style.SetColorMode(g.color, stdout)
			return nil
		default:
			return fmt.Errorf("invalid --color value %q: must be always, auto, or never", g.color)
		}
	}

	root.AddCommand(
		newConvertCmd(g, stdout, stderr),
		newBatchCmd(g, stdout, stderr),
		newListCmd(g, stdout),
		newHeaderCmd(g, stdout),
		newVersionCmd(stdout),
	)
	return root
}

// load reads the config file and installs the logger for this invocation.
// Verbose output goes to stdout; otherwise only warnings reach stderr.
func (g *globals) load(stdout, stderr io.Writer) (*config.Config, error) {
	cfg, err := config.Load(g.cfgFile)
	if err != nil {
		return nil, err
	}
	if g.verbose {
		cfg.Verbose = true
	}
	if cfg.Verbose {
		output.SetLogger(output.NewLogger(stdout, true))
	} else {
		output.SetLogger(output.NewLogger(stderr, false))
	}
	return cfg, nil
}
