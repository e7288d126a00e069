/*
PURPOSE:
  Defines the 'convert' subcommand.
  Converts one .tflite model into a C++ source file.

REQUIREMENTS:
  User-specified:
  - Required: model id/name/architecture, inference type, output dir,
    window stride/size, DCT coefficient count, clip duration, tflite path.
  - Optional --verbose progress lines.

  Implementation-discovered:
  - Need to load config first; its `defaults:` block can supply any
    parameter, flags override it.
  - Everything is checked before the output file is touched.

ARCHITECTURE INTEGRATION:
  - Calls: internal/codegen.Generate
  - Uses: internal/config

ERROR HANDLING:
  - Missing/invalid parameters wrap config.ErrInvalid.
  - IO errors are returned as-is (already wrapped with the path).

IMPLEMENTATION RULES:
  - Logic: Load Config -> Override -> Validate -> Convert.

USAGE:
  tflite2c convert --model_id 0 --model_name kws ... --tflite_path ds_cnn.tflite

SELF-HEALING INSTRUCTIONS:
  - Check flag names match the yaml tags in internal/model and internal/config.

RELATED FILES:
  - internal/cli/root.go

MAINTENANCE:
  - Update when adding new generation parameters.
*/

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/daryltucker/tflite2c/internal/codegen"
	"github.com/daryltucker/tflite2c/internal/config"
	"github.com/daryltucker/tflite2c/internal/style"
	"github.com/spf13/cobra"
)

type convertFlags struct {
	job       config.Job
	outputDir string
	arrayName string
	extension string
}

func newConvertCmd(g *globals, stdout, stderr io.Writer) *cobra.Command {
	f := &convertFlags{}
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a TFLite model to a C++ source file",
		Long: `Writes {output_dir}/{model_id}_{model_name}_{model_architecture}_{inference_type}.cc
containing the model as a 16-byte aligned array plus PrintModelConfig() and the
GetModelPointer/GetModelLen/GetFrameShiftMs/GetFrameLenMs/GetNumMfccCoeffs/GetRecordingWin
accessors.

Any parameter may instead come from the config file: 'output_dir' at the top
level, everything else in its 'defaults:' block. Flags always win over the config,
including an explicit 0 or "".
The output file is replaced atomically; a failed conversion leaves no file behind.`,
		Example: `  tflite2c convert --model_id 0 --model_name kws --model_architecture ds_cnn \
    --inference_type int8 --output_dir ./generated \
    --window_stride_ms 20 --window_size_ms 40 --dct_coefficient_count 10 \
    --clip_duration_ms 1000 --tflite_path ds_cnn_s.tflite`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// 1. Load Config
			cfg, err := g.load(stdout, stderr)
			if err != nil {
				return err
			}

			// 2. Overrides. Flags given on the command line win over
			// config defaults, including an explicit zero or empty value.
			for _, name := range jobFlags {
				if cmd.Flags().Changed(name) {
					f.job.SetExplicit(name)
				}
			}
			job := cfg.Job(f.job)
			if err := requireParams(cmd, cfg, job); err != nil {
				return err
			}
			if cmd.Flags().Changed("output_dir") {
				cfg.OutputDir = f.outputDir
			}
			if cmd.Flags().Changed("array_name") {
				cfg.ArrayName = f.arrayName
			}
			if cmd.Flags().Changed("extension") {
				cfg.Extension = strings.TrimPrefix(f.extension, ".")
			}
			cfg.Models = nil
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := job.Validate(); err != nil {
				return err
			}

			// 3. Execution
			path, stats, err := codegen.Generate(cmd.Context(), job.Metadata, job.TFLitePath, cfg.OutputDir, cfg.Options())
			if err != nil {
				return err
			}
			fmt.Fprintln(stdout, style.OK(fmt.Sprintf("%s %s", path, style.Dim.Render(fmt.Sprintf("(%d bytes)", stats.Bytes)))))
			return nil
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.job.ID, "model_id", "", "Model identifier")
	fl.StringVar(&f.job.Name, "model_name", "", "Model name")
	fl.StringVar(&f.job.Architecture, "model_architecture", "", "Model architecture")
	fl.StringVar(&f.job.InferenceType, "inference_type", "", "Inference type (e.g. int8, fp32)")
	fl.StringVar(&f.outputDir, "output_dir", "", "Output directory for the C++ file")
	fl.IntVar(&f.job.WindowStrideMs, "window_stride_ms", 0, "Frame shift in milliseconds")
	fl.IntVar(&f.job.WindowSizeMs, "window_size_ms", 0, "Frame length in milliseconds")
	fl.IntVar(&f.job.DCTCoefficientCount, "dct_coefficient_count", 0, "Number of MFCC coefficients")
	fl.IntVar(&f.job.ClipDurationMs, "clip_duration_ms", 0, "Total clip duration in milliseconds")
	fl.StringVar(&f.job.TFLitePath, "tflite_path", "", "Path to the TFLite model file")
	fl.StringVar(&f.arrayName, "array_name", "", "Name of the generated byte array (default g_kwsModel)")
	fl.StringVar(&f.extension, "extension", "", "Extension of the generated file (default cc)")
	return cmd
}

// requireParams rejects a convert call where a required parameter came
// neither from a flag nor from the config file. output_dir only counts as
// supplied when a loaded config file names it; the "." fallback does not.
func requireParams(cmd *cobra.Command, cfg *config.Config, job config.Job) error {
	supplied := map[string]bool{
		"model_id":              job.ID != "",
		"model_name":            job.Name != "",
		"model_architecture":    job.Architecture != "",
		"inference_type":        job.InferenceType != "",
		"output_dir":            cfg.OutputDirSet(),
		"window_stride_ms":      job.WindowStrideMs != 0,
		"window_size_ms":        job.WindowSizeMs != 0,
		"dct_coefficient_count": job.DCTCoefficientCount != 0,
		"clip_duration_ms":      job.ClipDurationMs != 0,
		"tflite_path":           job.TFLitePath != "",
	}
	var missing []string
	for _, name := range requiredFlags {
		if !supplied[name] && !cmd.Flags().Changed(name) {
			missing = append(missing, "--"+name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required parameters: %s", config.ErrInvalid, strings.Join(missing, ", "))
	}
	return nil
}

// jobFlags are the flags that map onto config.Job keys.
var jobFlags = []string{
	"model_id", "model_name", "model_architecture", "inference_type",
	"window_stride_ms", "window_size_ms", "dct_coefficient_count", "clip_duration_ms",
	"tflite_path",
}

var requiredFlags = []string{
	"model_id", "model_name", "model_architecture", "inference_type", "output_dir",
	"window_stride_ms", "window_size_ms", "dct_coefficient_count", "clip_duration_ms",
	"tflite_path",
}
