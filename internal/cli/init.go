package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

const defaultConfigFile = appName + ".yaml"

// InitConfig captures the options for the init command.
type InitConfig struct {
	OutputPath string
	Force      bool
}

var initRunner = runInit

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Scaffold a sample sdkdocs configuration file",
		Long:  "Scaffold a commented sdkdocs configuration file that documents available options.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := cmd.Flags().GetString("out")
			if err != nil {
				return err
			}
			force, err := cmd.Flags().GetBool("force")
			if err != nil {
				return err
			}
			return initRunner(cmd.Context(), &InitConfig{OutputPath: out, Force: force}, cmd.OutOrStdout())
		},
	}

	cmd.Flags().String("out", defaultConfigFile, "Where to write the sample config file")
	cmd.Flags().Bool("force", false, "Overwrite the target file if it already exists")

	return cmd
}

func runInit(_ context.Context, cfg *InitConfig, stdout io.Writer) error {
	out := strings.TrimSpace(cfg.OutputPath)
	if out == "" {
		out = defaultConfigFile
	}
	absPath, err := filepath.Abs(out)
	if err != nil {
		return fmt.Errorf("init: resolve output path: %w", err)
	}

	if st, err := os.Stat(absPath); err == nil && !cfg.Force && st.Mode().IsRegular() {
		return newUsageError(fmt.Sprintf("init: %q already exists (use --force to overwrite)", absPath))
	}

	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return newUsageError(fmt.Sprintf("init: cannot create parent directory: %v", err))
	}

	content := strings.TrimSpace(sampleConfigYAML) + "\n"

	tmp := absPath + ".tmp"
	if err := os.WriteFile(tmp, []byte(content), 0o644); err != nil {
		return newUsageError(fmt.Sprintf("init: cannot write temp file: %v\nHint: choose a different --out or check directory permissions.", err))
	}
	if err := os.Rename(tmp, absPath); err != nil {
		_ = os.Remove(tmp)
		return newUsageError(fmt.Sprintf("init: cannot place file at %s: %v", absPath, err))
	}
	fmt.Fprintf(stdout, "Wrote sample config to %s\n", absPath)
	return nil
}

// sampleConfigYAML documents every config key. Each key can also be set
// through the environment as SDKDOCS_<KEY>, e.g. SDKDOCS_DRY_RUN=true.
const sampleConfigYAML = `# sdkdocs configuration (YAML)
# All fields are optional. Environment variables (SDKDOCS_<KEY>) override
# config values, and command-line flags override both.

# Documentation tree holding app/config/specs and docs/examples.
# root: .

# API version family.
# version: 1.4.x

# SDK platforms (comma-separated or list). service and services take one.
# platforms: [client-web, server-nodejs]

# Services to extract (comma-separated or list). export takes every declared
# service when omitted.
# services: [account, databases]

# Output directory for export.
# out: ./docs-data

# Output format (json|yaml).
# format: json

# Maximum number of services export extracts at once.
# concurrency: 4

# Preview planned outputs without writing files.
# dryRun: false

# Overwrite non-empty output directory.
# force: false

# Enable verbose logging.
# verbose: false
`
