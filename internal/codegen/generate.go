package codegen

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/daryltucker/tflite2c/internal/model"
	"github.com/daryltucker/tflite2c/internal/output"
)

// ErrZeroStride is returned when the recording window cannot be derived.
var ErrZeroStride = errors.New("window_stride_ms must be non-zero")

// OutputPath derives {dir}/{id}_{name}_{architecture}_{inference_type}.{ext}.
func OutputPath(dir string, meta model.Metadata, ext string) string {
	if ext == "" {
		ext = DefaultExtension
	}
	return filepath.Join(dir, meta.BaseName()+"."+ext)
}

// Generate converts the model at modelPath into a source file under outputDir
// and returns the written path. The output directory is created if needed.
// The file is rendered to a temporary sibling and renamed into place, so a
// failure never leaves a partial file at the target path.
func Generate(ctx context.Context, meta model.Metadata, modelPath, outputDir string, opts Options) (string, Stats, error) {
	opts = opts.withDefaults()
	if meta.WindowStrideMs == 0 {
		return "", Stats{}, ErrZeroStride
	}
	if err := ctx.Err(); err != nil {
		return "", Stats{}, err
	}

	outPath := OutputPath(outputDir, meta, opts.Extension)
	output.Logger.Info("Converting TFLite model to C array", "output", outPath)

	in, err := os.Open(modelPath)
	if err != nil {
		return "", Stats{}, fmt.Errorf("failed to open model %s: %w", modelPath, err)
	}
	defer in.Close()

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", Stats{}, fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}

	tmp, err := os.CreateTemp(outputDir, "."+meta.BaseName()+".*.tmp")
	if err != nil {
		return "", Stats{}, fmt.Errorf("failed to create output file in %s: %w", outputDir, err)
	}
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	bw := bufio.NewWriter(tmp)
	stats, err := Render(bw, meta, in, opts)
	if err != nil {
		return "", stats, fmt.Errorf("failed to convert %s: %w", modelPath, err)
	}
	output.Logger.Debug("TFLite data written", "tflite_path", modelPath, "bytes", stats.Bytes)

	if err := bw.Flush(); err != nil {
		return "", stats, fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	if err := tmp.Chmod(0644); err != nil {
		return "", stats, fmt.Errorf("failed to set mode on %s: %w", outPath, err)
	}
	if err := tmp.Close(); err != nil {
		return "", stats, fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	if err := os.Rename(tmp.Name(), outPath); err != nil {
		return "", stats, fmt.Errorf("failed to replace %s: %w", outPath, err)
	}
	committed = true

	output.Logger.Info("Conversion to C array completed", "output", outPath, "bytes", stats.Bytes)
	return outPath, stats, nil
}
