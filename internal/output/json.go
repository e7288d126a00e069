/*
PURPOSE:
  Writes conversion results to a JSON Lines file (NDJSON).
  Optimized for machine parsing (jq, CI artifact checks).

REQUIREMENTS:
  User-specified:
  - JSON report of every batch conversion.

  Implementation-discovered:
  - JSON Lines survives an interrupted batch; a single array would not.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine
  - Consumes: internal/model.Result

ERROR HANDLING:
  - Returns error on file creation or write failure.

IMPLEMENTATION RULES:
  - Use encoding/json; one line per result.

USAGE:
  w, err := output.NewJSONWriter("conversion_report.jsonl")
  w.Write(result)
  w.Close()

SELF-HEALING INSTRUCTIONS:
  - None specific.

RELATED FILES:
  - internal/model/types.go

MAINTENANCE:
  - Update if we switch to plain JSON array (not recommended for streaming).
*/

package output

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/daryltucker/tflite2c/internal/model"
)

// JSONWriter handles writing results to a JSON Lines file.
type JSONWriter struct {
	file *os.File
	rows int
	mu   sync.Mutex
}

// NewJSONWriter creates a new JSONWriter, truncating any existing file.
func NewJSONWriter(path string) (*JSONWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &JSONWriter{file: f}, nil
}

// Write writes a single result as a JSON line.
func (jw *JSONWriter) Write(r model.Result) error {
	jw.mu.Lock()
	defer jw.mu.Unlock()

	line, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode result for %s: %w", r.ModelPath, err)
	}
	if _, err := jw.file.Write(append(line, '\n')); err != nil {
		return err
	}
	jw.rows++
	return nil
}

// Rows reports how many results have been written.
func (jw *JSONWriter) Rows() int {
	jw.mu.Lock()
	defer jw.mu.Unlock()
	return jw.rows
}

// Close closes the underlying file.
func (jw *JSONWriter) Close() error {
	return jw.file.Close()
}
