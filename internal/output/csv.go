/*
PURPOSE:
  Writes conversion results to a CSV file.
  Flushes after every row so an interrupted batch keeps what it finished.

REQUIREMENTS:
  User-specified:
  - One row per converted model in a batch.

  Implementation-discovered:
  - Overwrite on each batch; a report describes exactly one run.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine
  - Consumes: internal/model.Result

ERROR HANDLING:
  - Returns error on file creation or write failure.

IMPLEMENTATION RULES:
  - Use encoding/csv.
  - Flush() after every write.

USAGE:
  w, err := output.NewCSVWriter("conversion_report.csv")
  w.Write(result)
  w.Close()

SELF-HEALING INSTRUCTIONS:
  - If CSV format changes, update header and record conversion.

RELATED FILES:
  - internal/model/types.go

MAINTENANCE:
  - Update Write() mapping when Result struct changes.
*/

package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/daryltucker/tflite2c/internal/model"
)

// CSVHeader is the first row of every CSV report.
var CSVHeader = []string{
	"model_id", "model_name", "model_architecture", "inference_type",
	"tflite_path", "output_path", "bytes", "sha256", "recording_window",
	"timestamp", "duration_s", "error",
}

// CSVWriter handles writing results to a CSV file.
type CSVWriter struct {
	file   *os.File
	writer *csv.Writer
	mu     sync.Mutex
}

// NewCSVWriter creates a new CSVWriter.
// It overwrites the file if it exists.
func NewCSVWriter(path string) (*CSVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	w := csv.NewWriter(f)
	if err := w.Write(CSVHeader); err != nil {
		f.Close()
		return nil, err
	}
	w.Flush()

	return &CSVWriter{
		file:   f,
		writer: w,
	}, nil
}

// Write writes a single result to the CSV file.
func (cw *CSVWriter) Write(r model.Result) error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	record := []string{
		r.ModelID,
		r.ModelName,
		r.Architecture,
		r.InferenceType,
		r.ModelPath,
		r.OutputPath,
		strconv.FormatInt(r.Bytes, 10),
		r.SHA256,
		strconv.Itoa(r.RecordingWindow),
		r.Timestamp.Format(time.RFC3339),
		fmt.Sprintf("%.4f", r.Duration.Seconds()),
		r.Error,
	}

	if err := cw.writer.Write(record); err != nil {
		return err
	}
	cw.writer.Flush()
	return cw.writer.Error()
}

// Close closes the underlying file.
func (cw *CSVWriter) Close() error {
	cw.writer.Flush()
	return cw.file.Close()
}
