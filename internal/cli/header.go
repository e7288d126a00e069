package cli

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/daryltucker/tflite2c/internal/assets"
	"github.com/daryltucker/tflite2c/internal/output"
	"github.com/daryltucker/tflite2c/internal/style"
	"github.com/spf13/cobra"
)

func newHeaderCmd(g *globals, stdout io.Writer) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "header [dir]",
		Short: "Write the BufAttributes.h header the generated sources include",
		Long: `Writes the default BufAttributes.h (defining ALIGNMENT_ATTRIBUTE) into dir,
or into the configured output directory. Existing headers are kept unless --force
is given, since most targets ship their own.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.load(stdout, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			targetDir := cfg.OutputDir
			if len(args) == 1 {
				targetDir = args[0]
			}

			if err := os.MkdirAll(targetDir, 0755); err != nil {
				return fmt.Errorf("failed to create target directory %s: %w", targetDir, err)
			}

			entries, err := fs.ReadDir(assets.Headers, assets.HeadersDir)
			if err != nil {
				return fmt.Errorf("failed to read embedded headers: %w", err)
			}

			for _, entry := range entries {
				if entry.IsDir() {
					continue
				}
				targetPath := filepath.Join(targetDir, entry.Name())
				if _, err := os.Stat(targetPath); err == nil && !force {
					output.Logger.Warn("Header exists, keeping it (use --force to replace)", "path", targetPath)
					continue
				}

				content, err := fs.ReadFile(assets.Headers, assets.HeadersDir+"/"+entry.Name())
				if err != nil {
					return fmt.Errorf("failed to read embedded header %s: %w", entry.Name(), err)
				}
				if err := os.WriteFile(targetPath, content, 0644); err != nil {
					return fmt.Errorf("failed to write %s: %w", targetPath, err)
				}
				output.Logger.Info("Installed header", "path", targetPath)
				fmt.Fprintln(stdout, style.OK(targetPath))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing headers")
	return cmd
}
