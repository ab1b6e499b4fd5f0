package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stoewer/go-strcase"
	"gopkg.in/yaml.v3"
)

const appName = "sdkdocs"

// Config captures all inputs that influence a command after merging
// defaults, config file values, environment variables, and CLI overrides.
type Config struct {
	Root        string
	Version     string
	Platforms   []string
	Services    []string
	Out         string
	Format      string
	ConfigPath  string
	Concurrency int
	DryRun      bool
	Force       bool
	Verbose     bool
}

func defaultConfig() Config {
	return Config{Root: ".", Format: "json", Concurrency: 4}
}

// configKeys are the settable keys, in the spelling used by config files.
// Environment variables use the same keys as SDKDOCS_<UPPER_SNAKE_KEY>.
var configKeys = []string{"root", "version", "platforms", "services", "out", "format", "concurrency", "dryRun", "force", "verbose"}

var lookupEnv = os.LookupEnv

func envName(key string) string {
	return strcase.UpperSnakeCase(appName) + "_" + strcase.UpperSnakeCase(key)
}

func resolveConfig(cmd *cobra.Command) (*Config, error) {
	cfg := defaultConfig()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	configPath = strings.TrimSpace(configPath)
	if configPath != "" {
		cfg.ConfigPath = configPath
		if err := applyConfigFromFile(&cfg, configPath); err != nil {
			return nil, err
		}
	}

	if err := applyConfigFromEnv(&cfg); err != nil {
		return nil, err
	}

	if err := applyFlagOverrides(cmd.Flags(), &cfg); err != nil {
		return nil, err
	}

	cfg.normalize()
	return &cfg, nil
}

func applyFlagOverrides(flags *pflag.FlagSet, cfg *Config) error {
	for _, name := range []string{"root", "version", "out", "format"} {
		if !flags.Changed(name) {
			continue
		}
		value, err := flags.GetString(name)
		if err != nil {
			return err
		}
		switch name {
		case "root":
			cfg.Root = value
		case "version":
			cfg.Version = value
		case "out":
			cfg.Out = value
		case "format":
			cfg.Format = value
		}
	}
	// The single-valued spellings belong to the service commands, the list
	// spellings to export.
	if flags.Changed("platform") {
		value, err := flags.GetString("platform")
		if err != nil {
			return err
		}
		cfg.Platforms = []string{value}
	}
	if flags.Changed("platforms") {
		value, err := flags.GetStringSlice("platforms")
		if err != nil {
			return err
		}
		cfg.Platforms = value
	}
	if flags.Changed("service") {
		value, err := flags.GetString("service")
		if err != nil {
			return err
		}
		cfg.Services = []string{value}
	}
	if flags.Changed("services") {
		value, err := flags.GetStringSlice("services")
		if err != nil {
			return err
		}
		cfg.Services = value
	}
	if flags.Changed("concurrency") {
		value, err := flags.GetInt("concurrency")
		if err != nil {
			return err
		}
		cfg.Concurrency = value
	}
	for _, name := range []string{"dry-run", "force", "verbose"} {
		if !flags.Changed(name) {
			continue
		}
		value, err := flags.GetBool(name)
		if err != nil {
			return err
		}
		switch name {
		case "dry-run":
			cfg.DryRun = value
		case "force":
			cfg.Force = value
		case "verbose":
			cfg.Verbose = value
		}
	}
	return nil
}

func (c *Config) normalize() {
	c.Root = strings.TrimSpace(c.Root)
	c.Version = strings.TrimSpace(c.Version)
	c.Out = strings.TrimSpace(c.Out)
	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
	c.Platforms = sanitizeList(c.Platforms)
	c.Services = sanitizeList(c.Services)
}

func (c *Config) validate(command string, singlePlatform, singleService bool) error {
	if c.Root == "" {
		return newUsageError(fmt.Sprintf("%s: --root is required (set via flag, config file, or %s)", command, envName("root")))
	}
	if c.Version == "" {
		return newUsageError(fmt.Sprintf("%s: --version is required (set via flag, config file, or %s)", command, envName("version")))
	}
	switch {
	case len(c.Platforms) == 0:
		return newUsageError(fmt.Sprintf("%s: a platform is required", command))
	case singlePlatform && len(c.Platforms) > 1:
		return newUsageError(fmt.Sprintf("%s: exactly one platform expected, got %s", command, strings.Join(c.Platforms, ", ")))
	}
	if singleService && len(c.Services) != 1 {
		return newUsageError(fmt.Sprintf("%s: exactly one --service is required", command))
	}
	switch c.Format {
	case "", "json", "yaml":
		if c.Format == "" {
			c.Format = "json"
		}
	default:
		return newUsageError(fmt.Sprintf("%s: unsupported --format %q (allowed: json, yaml)", command, c.Format))
	}
	if c.Concurrency < 1 {
		return newUsageError(fmt.Sprintf("%s: --concurrency must be at least 1, got %d", command, c.Concurrency))
	}
	return nil
}

func sanitizeList(items []string) []string {
	if len(items) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(items))
	result := make([]string, 0, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		result = append(result, trimmed)
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

func applyConfigFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return newUsageError(fmt.Sprintf("read config file %q: %v", path, err))
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return newUsageError(fmt.Sprintf("parse config file %q: %v", path, err))
	}

	for key, value := range raw {
		known, err := applyConfigValue(cfg, key, value)
		if err != nil {
			return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
		}
		if !known {
			return newUsageError(fmt.Sprintf("config file %q: unknown field %q", path, key))
		}
	}
	return nil
}

func applyConfigFromEnv(cfg *Config) error {
	for _, key := range configKeys {
		name := envName(key)
		value, ok := lookupEnv(name)
		if !ok {
			continue
		}
		if _, err := applyConfigValue(cfg, key, value); err != nil {
			return newUsageError(fmt.Sprintf("environment %s: %v", name, err))
		}
	}
	return nil
}

// applyConfigValue sets the field named key. It reports false for keys it
// does not know.
func applyConfigValue(cfg *Config, key string, value any) (bool, error) {
	var err error
	switch normalizeKey(key) {
	case "root":
		cfg.Root, err = valueAsString(value)
	case "version":
		cfg.Version, err = valueAsString(value)
	case "platform", "platforms":
		cfg.Platforms, err = valueAsStringSlice(value)
	case "service", "services":
		cfg.Services, err = valueAsStringSlice(value)
	case "out":
		cfg.Out, err = valueAsString(value)
	case "format":
		cfg.Format, err = valueAsString(value)
	case "concurrency":
		cfg.Concurrency, err = valueAsInt(value)
	case "dryrun":
		cfg.DryRun, err = valueAsBool(value)
	case "force":
		cfg.Force, err = valueAsBool(value)
	case "verbose":
		cfg.Verbose, err = valueAsBool(value)
	default:
		return false, nil
	}
	return true, err
}

func normalizeKey(raw string) string {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	lowered = strings.ReplaceAll(lowered, "-", "")
	lowered = strings.ReplaceAll(lowered, "_", "")
	return lowered
}

func valueAsString(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val), nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("expected string, got %T", v)
	}
}

func valueAsStringSlice(v any) ([]string, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case string:
		if strings.TrimSpace(val) == "" {
			return nil, nil
		}
		return splitAndTrim(val), nil
	case []any:
		items := make([]string, 0, len(val))
		for idx, elem := range val {
			str, err := valueAsString(elem)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", idx, err)
			}
			if str != "" {
				items = append(items, str)
			}
		}
		return items, nil
	default:
		return nil, fmt.Errorf("expected string or list, got %T", v)
	}
}

func valueAsBool(v any) (bool, error) {
	switch val := v.(type) {
	case bool:
		return val, nil
	case string:
		trimmed := strings.ToLower(strings.TrimSpace(val))
		switch trimmed {
		case "true", "t", "1", "yes", "y":
			return true, nil
		case "false", "f", "0", "no", "n":
			return false, nil
		case "":
			return false, nil
		default:
			return false, fmt.Errorf("invalid boolean value %q", val)
		}
	case nil:
		return false, nil
	default:
		return false, fmt.Errorf("expected boolean, got %T", v)
	}
}

func valueAsInt(v any) (int, error) {
	switch val := v.(type) {
	case int:
		return val, nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return 0, fmt.Errorf("invalid integer value %q", val)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("expected integer, got %T", v)
	}
}

func splitAndTrim(csv string) []string {
	parts := strings.Split(csv, ",")
	cleaned := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return cleaned
}
