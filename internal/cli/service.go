package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mark3labs/sdkdocs/internal/export"
	genspec "github.com/mark3labs/sdkdocs/internal/spec"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	serviceRunner  = runService
	servicesRunner = runServices
)

func newServiceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "service",
		Short: "Print the SDK documentation of one service",
		Long:  "Extract every documented method of a service for one platform and version, with parameters, responses and the example snippet.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			if err := cfg.validate("service", true, true); err != nil {
				return err
			}
			return serviceRunner(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}

	cmd.Flags().String("version", "", "API version family (e.g. 1.4.x)")
	cmd.Flags().String("platform", "", "SDK platform (e.g. client-web, server-nodejs)")
	cmd.Flags().String("service", "", "Service tag (e.g. account)")
	cmd.Flags().String("format", "json", "Output format: json or yaml")

	return cmd
}

func newServicesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "services",
		Short: "List the services a platform's document declares",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			if err := cfg.validate("services", true, false); err != nil {
				return err
			}
			return servicesRunner(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}

	cmd.Flags().String("version", "", "API version family (e.g. 1.4.x)")
	cmd.Flags().String("platform", "", "SDK platform (e.g. client-web, server-nodejs)")
	cmd.Flags().String("format", "json", "Output format: json or yaml")

	return cmd
}

func runService(ctx context.Context, cfg *Config, out io.Writer) error {
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	lib, err := openLibrary(cfg, log)
	if err != nil {
		return err
	}
	res, err := lib.GetService(ctx, cfg.Version, cfg.Platforms[0], cfg.Services[0])
	if err != nil {
		return mapSpecError(err)
	}
	log.Info("extracted service",
		zap.String("service", cfg.Services[0]),
		zap.String("platform", cfg.Platforms[0]),
		zap.Int("methods", len(res.Methods)))
	return writeRendered(out, res, cfg.Format)
}

func runServices(ctx context.Context, cfg *Config, out io.Writer) error {
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	lib, err := openLibrary(cfg, log)
	if err != nil {
		return err
	}
	services, err := lib.ListServices(ctx, cfg.Version, cfg.Platforms[0])
	if err != nil {
		return mapSpecError(err)
	}
	return writeRendered(out, services, cfg.Format)
}

func writeRendered(out io.Writer, v any, format string) error {
	data, err := export.Render(v, format)
	if err != nil {
		return fmt.Errorf("render output: %w", err)
	}
	_, err = out.Write(data)
	return err
}

func newLogger(cfg *Config) (*zap.Logger, error) {
	if !cfg.Verbose {
		return zap.NewNop(), nil
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return log, nil
}

// openLibrary indexes the documentation tree at cfg.Root.
func openLibrary(cfg *Config, log *zap.Logger) (*genspec.Library, error) {
	st, err := os.Stat(cfg.Root)
	if err != nil {
		return nil, newUsageError(fmt.Sprintf("--root %q: %v", cfg.Root, err))
	}
	if !st.IsDir() {
		return nil, newUsageError(fmt.Sprintf("--root %q is not a directory", cfg.Root))
	}
	assets, err := genspec.LoadAssets(os.DirFS(cfg.Root))
	if err != nil {
		return nil, mapSpecError(err)
	}
	log.Debug("indexed assets", zap.String("root", cfg.Root), zap.Strings("specs", assets.Specs()))
	return genspec.New(assets, genspec.WithLogger(log)), nil
}

// mapSpecError turns structured extraction errors into usage errors that
// carry the asset location and JSON pointer. Other errors pass through.
func mapSpecError(err error) error {
	var se *genspec.SpecError
	if !errors.As(err, &se) {
		return err
	}
	msg := se.Message
	if se.Location != "" {
		msg = fmt.Sprintf("%s\nLocation: %s", msg, se.Location)
	}
	if se.JSONPointer != "" {
		msg = fmt.Sprintf("%s\nPointer: %s", msg, se.JSONPointer)
	}
	if errors.Is(se, genspec.ErrSpecNotFound) {
		msg += "\nHint: check that --root points at the documentation checkout and that --version and --platform are correct."
	}
	return newUsageError(msg)
}
