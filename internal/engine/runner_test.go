package engine

import (
	"bufio"
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/daryltucker/tflite2c/internal/config"
	"github.com/daryltucker/tflite2c/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	small := filepath.Join(dir, "small.tflite")
	require.NoError(t, os.WriteFile(small, []byte{0x1c, 0, 0, 0, 'T', 'F', 'L', '3'}, 0644))
	large := filepath.Join(dir, "large.tflite")
	require.NoError(t, os.WriteFile(large, make([]byte, 100), 0644))

	cfg := config.DefaultConfig()
	cfg.OutputDir = filepath.Join(dir, "out")
	cfg.Defaults = config.Job{Metadata: model.Metadata{
		Architecture:        "ds_cnn",
		InferenceType:       "int8",
		WindowStrideMs:      20,
		WindowSizeMs:        40,
		DCTCoefficientCount: 10,
		ClipDurationMs:      1000,
	}}
	cfg.Models = []config.Job{
		{Metadata: model.Metadata{ID: "0", Name: "kws_s"}, TFLitePath: small},
		{Metadata: model.Metadata{ID: "1", Name: "kws_l", WindowStrideMs: 40}, TFLitePath: large},
	}
	return cfg
}

func readJSONL(t *testing.T, path string) []model.Result {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var out []model.Result
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var r model.Result
		require.NoError(t, json.Unmarshal(sc.Bytes(), &r))
		out = append(out, r)
	}
	require.NoError(t, sc.Err())
	return out
}

func TestRun(t *testing.T) {
	cfg := testConfig(t)

	results, err := Run(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, filepath.Join(cfg.OutputDir, "0_kws_s_ds_cnn_int8.cc"), results[0].OutputPath)
	assert.Equal(t, int64(8), results[0].Bytes)
	assert.Equal(t, 49, results[0].RecordingWindow)
	assert.Equal(t, int64(100), results[1].Bytes)
	assert.Equal(t, 24, results[1].RecordingWindow)

	for _, r := range results {
		assert.Empty(t, r.Error)
		assert.FileExists(t, r.OutputPath)
	}

	reported := readJSONL(t, filepath.Join(cfg.OutputDir, "conversion_report.jsonl"))
	require.Len(t, reported, 2)
	assert.Equal(t, results[1].SHA256, reported[1].SHA256)

	f, err := os.Open(filepath.Join(cfg.OutputDir, "conversion_report.csv"))
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "model_id", rows[0][0])
	assert.Equal(t, "kws_l", rows[2][1])
}

func TestRun_ContinuesAfterFailure(t *testing.T) {
	cfg := testConfig(t)
	cfg.Models[0].TFLitePath = filepath.Join(t.TempDir(), "missing.tflite")

	results, err := Run(context.Background(), cfg)
	require.ErrorIs(t, err, ErrJobsFailed)
	require.Len(t, results, 2)

	assert.NotEmpty(t, results[0].Error)
	assert.Empty(t, results[0].OutputPath)
	assert.Empty(t, results[1].Error)
	assert.FileExists(t, results[1].OutputPath)

	reported := readJSONL(t, filepath.Join(cfg.OutputDir, "conversion_report.jsonl"))
	require.Len(t, reported, 2)
	assert.Equal(t, results[0].Error, reported[0].Error)
}

func TestRun_InvalidConfigConvertsNothing(t *testing.T) {
	cfg := testConfig(t)
	cfg.Models[1].WindowStrideMs = 0
	cfg.Defaults.WindowStrideMs = 0

	_, err := Run(context.Background(), cfg)
	require.ErrorIs(t, err, config.ErrInvalid)

	_, statErr := os.Stat(cfg.OutputDir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRun_NoJobs(t *testing.T) {
	_, err := Run(context.Background(), config.DefaultConfig())
	assert.ErrorIs(t, err, ErrNoJobs)
}

func TestRun_Canceled(t *testing.T) {
	cfg := testConfig(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := Run(ctx, cfg)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, results)
}
