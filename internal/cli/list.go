package cli

import (
	"fmt"
	"io"

	"github.com/daryltucker/tflite2c/internal/codegen"
	"github.com/spf13/cobra"
)

func newListCmd(g *globals, stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured models and the files they generate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.load(stdout, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			jobs := cfg.Jobs()
			if len(jobs) == 0 {
				fmt.Fprintln(stdout, "No models configured.")
				return nil
			}
			for _, j := range jobs {
				fmt.Fprintf(stdout, "- %s -> %s\n", j.TFLitePath, codegen.OutputPath(cfg.OutputDir, j.Metadata, cfg.Extension))
			}
			return nil
		},
	}
}
