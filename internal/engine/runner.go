/*
PURPOSE:
  High-level runner that orchestrates batch conversion.
  Loops through configured models and converts each one.

REQUIREMENTS:
  User-specified:
  - Convert every model listed in the config file.
  - Log results to CSV/JSON.

  Implementation-discovered:
  - One bad model must not block the rest of the batch.
  - Needs to report progress to CLI.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli
  - Uses: internal/codegen, internal/config, internal/output

ERROR HANDLING:
  - Logs per-model errors but continues (resilience).
  - Returns ErrJobsFailed at the end when any model failed.

IMPLEMENTATION RULES:
  - Validate everything before converting anything.
  - Convert in declared order.

USAGE:
  results, err := engine.Run(ctx, cfg)

SELF-HEALING INSTRUCTIONS:
  - None.

RELATED FILES:
  - internal/codegen/generate.go

MAINTENANCE:
  - Update iteration logic if parallelism is introduced.
*/

package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/daryltucker/tflite2c/internal/codegen"
	"github.com/daryltucker/tflite2c/internal/config"
	"github.com/daryltucker/tflite2c/internal/model"
	"github.com/daryltucker/tflite2c/internal/output"
)

// ErrJobsFailed is returned when at least one model in a batch failed.
var ErrJobsFailed = errors.New("one or more models failed to convert")

// ErrNoJobs is returned for a config without models.
var ErrNoJobs = errors.New("config lists no models")

// Run converts every model in cfg and writes the batch reports.
func Run(ctx context.Context, cfg *config.Config) ([]model.Result, error) {
	jobs := cfg.Jobs()
	if len(jobs) == 0 {
		return nil, ErrNoJobs
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Ensure output directory exists
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", cfg.OutputDir, err)
	}

	// Setup Outputs
	csvPath := filepath.Join(cfg.OutputDir, cfg.Report+".csv")
	csvWriter, err := output.NewCSVWriter(csvPath)
	if err != nil {
		return nil, fmt.Errorf("failed to init CSV writer at %s: %w", csvPath, err)
	}
	defer csvWriter.Close()

	jsonPath := filepath.Join(cfg.OutputDir, cfg.Report+".jsonl")
	jsonWriter, err := output.NewJSONWriter(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("failed to init JSON writer at %s: %w", jsonPath, err)
	}
	defer jsonWriter.Close()

	results := make([]model.Result, 0, len(jobs))
	failed := 0
	for i, job := range jobs {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		output.Logger.Info("Converting model", "index", i, "model_id", job.ID, "model_name", job.Name, "tflite_path", job.TFLitePath)
		res := Convert(ctx, job, cfg.OutputDir, cfg.Options())
		if res.Error != "" {
			failed++
			output.Logger.Error("Conversion failed", "model_id", job.ID, "model_name", job.Name, "error", res.Error)
		}

		if err := csvWriter.Write(res); err != nil {
			output.Logger.Error("Failed to write result to CSV", "error", err)
		}
		if err := jsonWriter.Write(res); err != nil {
			output.Logger.Error("Failed to write result to JSON", "error", err)
		}
		results = append(results, res)
	}

	output.Logger.Info("Batch complete", "models", len(jobs), "failed", failed, "reported", jsonWriter.Rows(), "csv", csvPath, "json", jsonPath)
	if failed > 0 {
		return results, fmt.Errorf("%w: %d of %d", ErrJobsFailed, failed, len(jobs))
	}
	return results, nil
}

// Convert runs a single job and captures its outcome as a Result.
func Convert(ctx context.Context, job config.Job, outputDir string, opts codegen.Options) model.Result {
	res := model.Result{
		ModelID:       job.ID,
		ModelName:     job.Name,
		Architecture:  job.Architecture,
		InferenceType: job.InferenceType,
		ModelPath:     job.TFLitePath,
		Timestamp:     time.Now(),
	}

	start := time.Now()
	path, stats, err := codegen.Generate(ctx, job.Metadata, job.TFLitePath, outputDir, opts)
	res.Duration = time.Since(start)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	res.OutputPath = path
	res.Bytes = stats.Bytes
	res.SHA256 = stats.SHA256
	res.RecordingWindow = stats.RecordingWindow
	return res
}
