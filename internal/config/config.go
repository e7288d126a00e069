/*
PURPOSE:
  Defines the configuration structure and loading logic for tflite2c.
  A config file holds shared defaults and, for `batch`, a list of models.

REQUIREMENTS:
  User-specified:
  - Every convert parameter can be passed as a flag.
  - Required parameters are rejected before any output is written.

  Implementation-discovered:
  - Teams convert the same model family at several sizes; a YAML file with
    shared defaults saves repeating window/MFCC settings per model.
  - window_stride_ms == 0 makes the recording window undefined; reject it here.

ARCHITECTURE INTEGRATION:
  - Used by: internal/cli, internal/engine
  - Dependencies: gopkg.in/yaml.v3, internal/xdg

ERROR HANDLING:
  - Returns explicit error if config file is invalid.
  - Missing default config files fall back to DefaultConfig().
  - Validation errors wrap ErrInvalid.

IMPLEMENTATION RULES:
  - Config struct tags use the same snake_case names as the CLI flags.

USAGE:
  cfg, err := config.Load("tflite2c.yaml")
  job := cfg.Job(cfg.Defaults)

SELF-HEALING INSTRUCTIONS:
  - If new fields are needed, add to Config struct and update DefaultConfig().

RELATED FILES:
  - internal/cli/root.go
  - internal/model/types.go

MAINTENANCE:
  - Update when adding new generation options.
*/

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/daryltucker/tflite2c/internal/codegen"
	"github.com/daryltucker/tflite2c/internal/model"
	"github.com/daryltucker/tflite2c/internal/xdg"
	"gopkg.in/yaml.v3"
)

// ErrInvalid marks parameters rejected at the boundary.
var ErrInvalid = errors.New("invalid parameters")

// DefaultFiles are searched, in order, when no --config is given.
var DefaultFiles = []string{"tflite2c.yaml", "tflite2c.yml"}

// Job is one model to convert.
type Job struct {
	model.Metadata `yaml:",inline"`
	TFLitePath     string `yaml:"tflite_path"`

	// explicit holds the keys given in the config file or on the command
	// line. Explicit values are never replaced by defaults, even when zero.
	explicit map[string]bool
}

// jobFields decodes a Job without recursing into UnmarshalYAML.
type jobFields Job

// UnmarshalYAML decodes a job and records which keys the file set.
func (j *Job) UnmarshalYAML(node *yaml.Node) error {
	if err := node.Decode((*jobFields)(j)); err != nil {
		return err
	}
	if node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		j.SetExplicit(node.Content[i].Value)
	}
	return nil
}

// SetExplicit marks key (a yaml/flag name such as "window_stride_ms") as
// supplied, so Config.Job keeps its value.
func (j *Job) SetExplicit(key string) {
	if j.explicit == nil {
		j.explicit = make(map[string]bool)
	}
	j.explicit[key] = true
}

// IsExplicit reports whether key was supplied for this job.
func (j Job) IsExplicit(key string) bool {
	return j.explicit[key]
}

// Config represents the full configuration for tflite2c.
type Config struct {
	OutputDir string `yaml:"output_dir"`
	Extension string `yaml:"extension"`
	ArrayName string `yaml:"array_name"`
	Verbose   bool   `yaml:"verbose"`
	// Report is the base name of the batch CSV/JSONL reports.
	Report string `yaml:"report"`
	// Defaults fills unset fields of every job and of `convert`.
	Defaults Job   `yaml:"defaults"`
	Models   []Job `yaml:"models"`

	outputDirSet bool
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		OutputDir: ".",
		Extension: codegen.DefaultExtension,
		ArrayName: codegen.DefaultArrayName,
		Report:    "conversion_report",
	}
}

// Load reads configuration from a file.
// If path is specified, it attempts to load that file.
// If path is empty, it searches DefaultFiles and then the XDG config file.
// If no file found, returns default config.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	var data []byte
	var err error

	if path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		found := false
		for _, name := range append(DefaultFiles, xdg.ConfigFile()) {
			data, err = os.ReadFile(name)
			if err == nil {
				path = name
				found = true
				break
			}
		}
		if !found {
			return cfg, nil
		}
	}

	cfg.OutputDir = ""
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	cfg.outputDirSet = cfg.OutputDir != ""
	cfg.applyBaseDefaults()

	return cfg, nil
}

// OutputDirSet reports whether a loaded config file named output_dir, as
// opposed to it falling back to ".".
func (c *Config) OutputDirSet() bool {
	return c.outputDirSet
}

// applyBaseDefaults restores defaults a config file blanked out.
func (c *Config) applyBaseDefaults() {
	d := DefaultConfig()
	if c.OutputDir == "" {
		c.OutputDir = d.OutputDir
	}
	if c.Extension == "" {
		c.Extension = d.Extension
	}
	c.Extension = strings.TrimPrefix(c.Extension, ".")
	if c.ArrayName == "" {
		c.ArrayName = d.ArrayName
	}
	if c.Report == "" {
		c.Report = d.Report
	}
}

// Job returns j with every unset field filled from c.Defaults. A field is
// unset when it is zero and was not marked explicit.
func (c *Config) Job(j Job) Job {
	d := c.Defaults
	fillString(&j.ID, d.ID, j.IsExplicit("model_id"))
	fillString(&j.Name, d.Name, j.IsExplicit("model_name"))
	fillString(&j.Architecture, d.Architecture, j.IsExplicit("model_architecture"))
	fillString(&j.InferenceType, d.InferenceType, j.IsExplicit("inference_type"))
	fillString(&j.TFLitePath, d.TFLitePath, j.IsExplicit("tflite_path"))
	fillInt(&j.WindowStrideMs, d.WindowStrideMs, j.IsExplicit("window_stride_ms"))
	fillInt(&j.WindowSizeMs, d.WindowSizeMs, j.IsExplicit("window_size_ms"))
	fillInt(&j.DCTCoefficientCount, d.DCTCoefficientCount, j.IsExplicit("dct_coefficient_count"))
	fillInt(&j.ClipDurationMs, d.ClipDurationMs, j.IsExplicit("clip_duration_ms"))
	return j
}

// Jobs returns every configured model with defaults applied.
func (c *Config) Jobs() []Job {
	jobs := make([]Job, 0, len(c.Models))
	for _, m := range c.Models {
		jobs = append(jobs, c.Job(m))
	}
	return jobs
}

// Options returns the code generation options selected by c.
func (c *Config) Options() codegen.Options {
	return codegen.Options{ArrayName: c.ArrayName, Extension: c.Extension}
}

// Validate checks the generation options and every job.
func (c *Config) Validate() error {
	if c.OutputDir == "" {
		return fmt.Errorf("%w: output_dir is required", ErrInvalid)
	}
	if !isCIdent(c.ArrayName) {
		return fmt.Errorf("%w: array_name %q is not a C identifier", ErrInvalid, c.ArrayName)
	}
	for i, j := range c.Jobs() {
		if err := j.Validate(); err != nil {
			return fmt.Errorf("models[%d]: %w", i, err)
		}
	}
	return nil
}

// Validate reports the first missing or unusable parameter.
func (j Job) Validate() error {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"model_id", j.ID},
		{"model_name", j.Name},
		{"model_architecture", j.Architecture},
		{"inference_type", j.InferenceType},
		{"tflite_path", j.TFLitePath},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalid, strings.Join(missing, ", "))
	}
	for _, s := range []string{j.ID, j.Name, j.Architecture, j.InferenceType} {
		if strings.ContainsAny(s, `/\`) {
			return fmt.Errorf("%w: %q cannot be used in a file name", ErrInvalid, s)
		}
	}
	if j.WindowStrideMs == 0 {
		return fmt.Errorf("%w: %v", ErrInvalid, codegen.ErrZeroStride)
	}
	return nil
}

func fillString(dst *string, def string, explicit bool) {
	if !explicit && *dst == "" {
		*dst = def
	}
}

func fillInt(dst *int, def int, explicit bool) {
	if !explicit && *dst == 0 {
		*dst = def
	}
}

func isCIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
