/*
PURPOSE:
  Defines the core data structures used throughout tflite2c.
  Metadata describes the keyword-spotting model being converted,
  Result records the outcome of one conversion.

REQUIREMENTS:
  User-specified:
  - Model id, name, architecture, inference type.
  - Window stride/size, DCT coefficient count, clip duration (all ms/ints).
  - Banner fields must print in a fixed order.

  Implementation-discovered:
  - Field order is an observable contract of the generated source,
    so it is a slice, never a map.
  - Need YAML tags for batch config files and JSON tags for reports.

ARCHITECTURE INTEGRATION:
  - Used by: internal/codegen, internal/config, internal/engine, internal/output
  - Shared across boundaries.

ERROR HANDLING:
  - None (pure data structs). Validation lives in internal/config.

IMPLEMENTATION RULES:
  - Keep structs simple and public.
  - RecordingWindow uses floor division.

USAGE:
  meta := model.Metadata{ID: "kws", Name: "ds_cnn", ...}
  for _, f := range meta.Fields() { ... }

SELF-HEALING INSTRUCTIONS:
  - If a new banner field is needed, add it to Metadata AND Fields().

RELATED FILES:
  - internal/codegen/source.go
  - internal/output/csv.go

MAINTENANCE:
  - Update when the embedded runtime needs new accessors.
*/

package model

import (
	"strconv"
	"time"
)

// Metadata describes the model being converted. Every field ends up in the
// generated source, either in the config banner or behind an accessor.
type Metadata struct {
	ID                  string `yaml:"model_id" json:"model_id"`
	Name                string `yaml:"model_name" json:"model_name"`
	Architecture        string `yaml:"model_architecture" json:"model_architecture"`
	InferenceType       string `yaml:"inference_type" json:"inference_type"`
	WindowStrideMs      int    `yaml:"window_stride_ms" json:"window_stride_ms"`
	WindowSizeMs        int    `yaml:"window_size_ms" json:"window_size_ms"`
	DCTCoefficientCount int    `yaml:"dct_coefficient_count" json:"dct_coefficient_count"`
	ClipDurationMs      int    `yaml:"clip_duration_ms" json:"clip_duration_ms"`
}

// Field is one key/value line of the configuration banner.
type Field struct {
	Key   string
	Value string
}

// Fields returns the banner fields in their fixed print order.
func (m Metadata) Fields() []Field {
	return []Field{
		{"model_id", m.ID},
		{"model_name", m.Name},
		{"model_architecture", m.Architecture},
		{"inference_type", m.InferenceType},
		{"window_stride_ms", strconv.Itoa(m.WindowStrideMs)},
		{"window_size_ms", strconv.Itoa(m.WindowSizeMs)},
		{"dct_coefficient_count", strconv.Itoa(m.DCTCoefficientCount)},
		{"clip_duration_ms", strconv.Itoa(m.ClipDurationMs)},
	}
}

// RecordingWindow returns floor(ClipDurationMs / WindowStrideMs) - 1.
// It panics on a zero stride; callers validate first.
func (m Metadata) RecordingWindow() int {
	q := m.ClipDurationMs / m.WindowStrideMs
	// Go truncates toward zero; step down when the signs differ and there is a remainder.
	if (m.ClipDurationMs%m.WindowStrideMs != 0) && ((m.ClipDurationMs < 0) != (m.WindowStrideMs < 0)) {
		q--
	}
	return q - 1
}

// BaseName is the output file stem: {id}_{name}_{architecture}_{inference_type}.
func (m Metadata) BaseName() string {
	return m.ID + "_" + m.Name + "_" + m.Architecture + "_" + m.InferenceType
}

// Result represents the outcome of a single conversion.
type Result struct {
	ModelID         string        `json:"model_id"`
	ModelName       string        `json:"model_name"`
	Architecture    string        `json:"model_architecture"`
	InferenceType   string        `json:"inference_type"`
	ModelPath       string        `json:"tflite_path"`
	OutputPath      string        `json:"output_path"`
	Bytes           int64         `json:"bytes"`
	SHA256          string        `json:"sha256,omitempty"`
	RecordingWindow int           `json:"recording_window"`
	Timestamp       time.Time     `json:"timestamp"`
	Duration        time.Duration `json:"duration"`
	Error           string        `json:"error,omitempty"` // If the conversion failed
}
