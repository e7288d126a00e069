package cli

import (
	"errors"
	"os"

	"github.com/daryltucker/tflite2c/internal/config"
	"github.com/daryltucker/tflite2c/internal/engine"
)

// hintFor returns a recovery hint for errors users can fix themselves.
func hintFor(err error) string {
	switch {
	case errors.Is(err, config.ErrInvalid):
		return "Run 'tflite2c convert --help' for the required parameters."
	case errors.Is(err, engine.ErrNoJobs):
		return "Add a 'models:' list to the config file, or use 'tflite2c convert'."
	case errors.Is(err, os.ErrNotExist):
		return "Check that the path exists and is readable."
	case errors.Is(err, os.ErrPermission):
		return "Check that the output directory is writable."
	}
	return ""
}
