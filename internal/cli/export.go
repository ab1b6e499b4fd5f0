package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/mark3labs/sdkdocs/internal/export"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var exportRunner = runExport

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write SDK documentation pages for many platforms and services",
		Long:  "Extract every requested (platform, service) pair and write one page per pair under <out>/<version>/<platform>/<service>.<format>, plus an index.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			if err := cfg.validate("export", false, false); err != nil {
				return err
			}
			if cfg.Out == "" {
				return newUsageError(fmt.Sprintf("export: --out is required (set via flag, config file, or %s)", envName("out")))
			}
			return exportRunner(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}

	cmd.Flags().String("version", "", "API version family (e.g. 1.4.x)")
	cmd.Flags().StringSlice("platforms", nil, "SDK platforms to export (comma-separated or repeated)")
	cmd.Flags().StringSlice("services", nil, "Services to export; every declared service when omitted")
	cmd.Flags().String("out", "", "Output directory")
	cmd.Flags().String("format", "json", "Output format: json or yaml")
	cmd.Flags().Int("concurrency", 4, "Maximum number of services extracted at once")
	cmd.Flags().Bool("dry-run", false, "Print planned files without writing")
	cmd.Flags().Bool("force", false, "Overwrite a non-empty output directory")

	return cmd
}

type exportJob struct {
	platform string
	service  string
}

func runExport(ctx context.Context, cfg *Config, out io.Writer) error {
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	lib, err := openLibrary(cfg, log)
	if err != nil {
		return err
	}

	var jobs []exportJob
	for _, platform := range cfg.Platforms {
		services := cfg.Services
		if len(services) == 0 {
			declared, err := lib.ListServices(ctx, cfg.Version, platform)
			if err != nil {
				return mapSpecError(err)
			}
			for _, s := range declared {
				services = append(services, s.Name)
			}
		}
		for _, service := range services {
			jobs = append(jobs, exportJob{platform: platform, service: service})
		}
	}
	log.Debug("planned export", zap.Int("jobs", len(jobs)), zap.Int("concurrency", cfg.Concurrency))

	pages := make([]export.Page, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Concurrency)
	for i, job := range jobs {
		g.Go(func() error {
			res, err := lib.GetService(gctx, cfg.Version, job.platform, job.service)
			if err != nil {
				return err
			}
			pages[i] = export.Page{
				Version:  cfg.Version,
				Platform: job.platform,
				Service:  job.service,
				Result:   res,
			}
			log.Debug("extracted service",
				zap.String("platform", job.platform),
				zap.String("service", job.service),
				zap.Int("methods", len(res.Methods)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return mapSpecError(err)
	}

	absOut, err := filepath.Abs(cfg.Out)
	if err != nil {
		return fmt.Errorf("export: resolve output path: %w", err)
	}
	res, err := export.Emit(ctx, pages, export.Options{
		OutDir: absOut,
		Format: cfg.Format,
		Force:  cfg.Force,
		DryRun: cfg.DryRun,
	})
	if err != nil {
		return wrapOutputError(err, absOut)
	}

	paths := make([]string, 0, len(res.Planned))
	for _, p := range res.Planned {
		paths = append(paths, p.RelPath)
	}
	if cfg.DryRun {
		printPlan(out, absOut, paths)
		return nil
	}
	fmt.Fprintf(out, "Exported %d pages to %s\n", len(pages), absOut)
	return nil
}

func printPlan(out io.Writer, outDir string, relPaths []string) {
	fmt.Fprintf(out, "Planned writes to %s (%d files):\n", outDir, len(relPaths))
	for _, p := range relPaths {
		fmt.Fprintf(out, "- %s\n", p)
	}
}

func wrapOutputError(err error, outDir string) error {
	msg := err.Error()
	lower := strings.ToLower(msg)
	if strings.Contains(lower, "permission") || strings.Contains(lower, "read-only") || strings.Contains(lower, "mkdir") || strings.Contains(lower, "rename") || strings.Contains(lower, "output directory") {
		return newUsageError(fmt.Sprintf("output error for %s: %s\nHint: choose a different --out or use --force when appropriate.", outDir, msg))
	}
	return err
}
