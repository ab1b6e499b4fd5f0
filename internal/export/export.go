package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	genspec "github.com/mark3labs/sdkdocs/internal/spec"
	"gopkg.in/yaml.v3"
)

const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// indexFile lists every exported page; it sits at the root of OutDir.
const indexFile = "index"

// Options controls how extracted services are written.
type Options struct {
	OutDir string // required; target directory
	Format string // json|yaml; defaults to json
	Force  bool   // overwrite a non-empty directory
	DryRun bool   // don't write, only plan
}

// Page is one extracted service for one platform and version.
type Page struct {
	Version  string
	Platform string
	Service  string
	Result   *genspec.ServiceResult
}

// PlannedFile describes a file the exporter intends to write.
type PlannedFile struct {
	RelPath string
	Size    int
	Mode    os.FileMode
}

// Result returns the planned files.
type Result struct {
	Planned []PlannedFile
}

type indexEntry struct {
	Version  string `json:"version" yaml:"version"`
	Platform string `json:"platform" yaml:"platform"`
	Service  string `json:"service" yaml:"service"`
	File     string `json:"file" yaml:"file"`
	Methods  int    `json:"methods" yaml:"methods"`
}

// Emit renders pages under <version>/<platform>/<service>.<ext> plus an index.
func Emit(ctx context.Context, pages []Page, opts Options) (*Result, error) {
	if strings.TrimSpace(opts.OutDir) == "" {
		return nil, fmt.Errorf("export: OutDir is required")
	}
	format := strings.ToLower(strings.TrimSpace(opts.Format))
	switch format {
	case "":
		format = FormatJSON
	case FormatJSON, FormatYAML:
	default:
		return nil, fmt.Errorf("export: unsupported format %q (allowed: json, yaml)", opts.Format)
	}

	files := map[string][]byte{}
	index := make([]indexEntry, 0, len(pages))
	for _, p := range pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if p.Result == nil {
			return nil, fmt.Errorf("export: nil result for %s/%s/%s", p.Version, p.Platform, p.Service)
		}
		rel := PagePath(p, format)
		if _, dup := files[rel]; dup {
			return nil, fmt.Errorf("export: duplicate page %s", rel)
		}
		data, err := Render(p.Result, format)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", rel, err)
		}
		files[rel] = data
		index = append(index, indexEntry{
			Version:  p.Version,
			Platform: p.Platform,
			Service:  p.Service,
			File:     rel,
			Methods:  len(p.Result.Methods),
		})
	}
	sort.Slice(index, func(i, j int) bool { return index[i].File < index[j].File })
	data, err := Render(index, format)
	if err != nil {
		return nil, fmt.Errorf("render index: %w", err)
	}
	files[indexFile+"."+format] = data

	// Plan in deterministic order
	rels := make([]string, 0, len(files))
	for p := range files {
		rels = append(rels, p)
	}
	sort.Strings(rels)

	planned := make([]PlannedFile, 0, len(rels))
	for _, rel := range rels {
		planned = append(planned, PlannedFile{RelPath: rel, Size: len(files[rel]), Mode: 0o644})
	}

	if !opts.DryRun {
		if err := writeFiles(opts.OutDir, files, opts.Force); err != nil {
			return nil, err
		}
	}

	return &Result{Planned: planned}, nil
}

// PagePath returns the slash-separated path a page is written to.
func PagePath(p Page, format string) string {
	return path.Join(sanitizeSegment(p.Version), sanitizeSegment(p.Platform), sanitizeSegment(p.Service)+"."+format)
}

// Render encodes v as indented JSON, or YAML when format is FormatYAML.
func Render(v any, format string) ([]byte, error) {
	if format == FormatYAML {
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func writeFiles(outDir string, files map[string][]byte, force bool) error {
	abs, err := filepath.Abs(outDir)
	if err != nil {
		return fmt.Errorf("resolve out dir: %w", err)
	}
	// Pre-flight: if directory exists and not empty and not force, error.
	if st, err := os.Stat(abs); err == nil && st.IsDir() && !force {
		entries, rerr := os.ReadDir(abs)
		if rerr == nil && len(entries) > 0 {
			return fmt.Errorf("export: output directory %q is not empty (use --force to overwrite)", abs)
		}
	}
	for rel, content := range files {
		p := filepath.Join(abs, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return fmt.Errorf("mkdir: %w", err)
		}
		// atomic write via temp file + rename
		tmp := p + ".tmp-" + time.Now().Format("20060102150405")
		if err := os.WriteFile(tmp, content, 0o644); err != nil {
			return fmt.Errorf("write temp %s: %w", rel, err)
		}
		if err := os.Rename(tmp, p); err != nil {
			_ = os.Remove(tmp)
			return fmt.Errorf("rename %s: %w", rel, err)
		}
	}
	return nil
}

// sanitizeSegment keeps a path segment inside OutDir.
func sanitizeSegment(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	if s == "" || s == "." || s == ".." {
		return "_"
	}
	return s
}
