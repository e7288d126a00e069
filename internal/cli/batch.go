package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/daryltucker/tflite2c/internal/engine"
	"github.com/daryltucker/tflite2c/internal/style"
	"github.com/spf13/cobra"
)

func newBatchCmd(g *globals, stdout, stderr io.Writer) *cobra.Command {
	var outputDir string
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Convert every model listed in the config file",
		Long: `Converts each entry of the config file's 'models:' list in order, filling unset
fields from 'defaults:'. A model that fails to convert is reported and the batch
continues. Results are written to {output_dir}/{report}.csv and {report}.jsonl.`,
		Example: `  # tflite2c.yaml
  output_dir: generated
  defaults:
    model_architecture: ds_cnn
    inference_type: int8
    window_stride_ms: 20
    window_size_ms: 40
    dct_coefficient_count: 10
    clip_duration_ms: 1000
  models:
    - {model_id: "0", model_name: kws_s, tflite_path: models/ds_cnn_s.tflite}
    - {model_id: "1", model_name: kws_m, tflite_path: models/ds_cnn_m.tflite}

  tflite2c batch --config tflite2c.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.load(stdout, stderr)
			if err != nil {
				return err
			}
			if outputDir != "" {
				cfg.OutputDir = outputDir
			}

			results, err := engine.Run(cmd.Context(), cfg)
			for _, r := range results {
				if r.Error != "" {
					fmt.Fprintln(stdout, style.Fail(fmt.Sprintf("%s_%s: %s", r.ModelID, r.ModelName, r.Error)))
					continue
				}
				fmt.Fprintln(stdout, style.OK(fmt.Sprintf("%s %s", r.OutputPath, style.Dim.Render(fmt.Sprintf("(%d bytes)", r.Bytes)))))
			}
			if errors.Is(err, engine.ErrJobsFailed) {
				fmt.Fprintf(stderr, "tflite2c: %v\n", err)
				return errExit
			}
			return err
		},
	}
	cmd.Flags().StringVarP(&outputDir, "output_dir", "o", "", "Output directory (overrides config)")
	return cmd
}
