package spec

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"sort"
	"strings"
)

// SupportedVersions are the version families with example snippets.
var SupportedVersions = []string{"0.15.x", "1.0.x", "1.1.x", "1.2.x", "1.3.x", "1.4.x"}

var specFileRe = regexp.MustCompile(`^open-api3-.+-(client|server|console)\.json$`)

// Assets indexes the spec documents and example snippets available under a
// documentation source tree. It is immutable once built and safe for
// concurrent use.
type Assets struct {
	fsys     fs.FS
	specs    map[string]struct{}
	examples map[string]*Bundle
}

// Bundle is the set of snippet files available for one version family.
type Bundle struct {
	fsys  fs.FS
	files map[string]struct{}
}

// LoadAssets walks fsys once and records every spec and snippet path. A tree
// missing either directory is not an error; lookups simply miss.
func LoadAssets(fsys fs.FS) (*Assets, error) {
	if fsys == nil {
		return nil, &SpecError{Code: InputError, Message: "assets: nil filesystem"}
	}
	a := &Assets{
		fsys:     fsys,
		specs:    make(map[string]struct{}),
		examples: make(map[string]*Bundle, len(SupportedVersions)),
	}

	entries, err := fs.ReadDir(fsys, specsDir)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, &SpecError{Code: InputError, Message: fmt.Sprintf("assets: read %s: %v", specsDir, err), Location: specsDir, Cause: err}
	}
	for _, e := range entries {
		if e.IsDir() || !specFileRe.MatchString(e.Name()) {
			continue
		}
		a.specs[path.Join(specsDir, e.Name())] = struct{}{}
	}

	for _, version := range SupportedVersions {
		root := path.Join(examplesDir, version)
		b := &Bundle{fsys: fsys, files: make(map[string]struct{})}
		err := fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.HasSuffix(p, ".md") {
				return nil
			}
			b.files[p] = struct{}{}
			return nil
		})
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, &SpecError{Code: InputError, Message: fmt.Sprintf("assets: walk %s: %v", root, err), Location: root, Cause: err}
		}
		a.examples[version] = b
	}
	return a, nil
}

// HasSpec reports whether a spec document exists at p.
func (a *Assets) HasSpec(p string) bool {
	_, ok := a.specs[p]
	return ok
}

// Specs returns the indexed spec paths in sorted order.
func (a *Assets) Specs() []string {
	out := make([]string, 0, len(a.specs))
	for p := range a.specs {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func (a *Assets) readSpec(p string) ([]byte, error) {
	if !a.HasSpec(p) {
		return nil, &SpecError{Code: NotFoundError, Message: fmt.Sprintf("spec: no document at %s", p), Location: p, Cause: ErrSpecNotFound}
	}
	raw, err := fs.ReadFile(a.fsys, p)
	if err != nil {
		return nil, &SpecError{Code: InputError, Message: fmt.Sprintf("spec: read %s: %v", p, err), Location: p, Cause: err}
	}
	return raw, nil
}

// Examples returns the snippet bundle for version. Unsupported versions have
// no bundle.
func (a *Assets) Examples(version string) (*Bundle, bool) {
	b, ok := a.examples[version]
	return b, ok
}

// Has reports whether the bundle contains a snippet at p.
func (b *Bundle) Has(p string) bool {
	if b == nil {
		return false
	}
	_, ok := b.files[p]
	return ok
}

// Len returns the number of snippets in the bundle.
func (b *Bundle) Len() int {
	if b == nil {
		return 0
	}
	return len(b.files)
}

// Read returns the raw text of the snippet at p.
func (b *Bundle) Read(p string) (string, error) {
	if !b.Has(p) {
		return "", &SpecError{Code: NotFoundError, Message: fmt.Sprintf("example: no snippet at %s", p), Location: p, Cause: fs.ErrNotExist}
	}
	raw, err := fs.ReadFile(b.fsys, p)
	if err != nil {
		return "", &SpecError{Code: InputError, Message: fmt.Sprintf("example: read %s: %v", p, err), Location: p, Cause: err}
	}
	return string(raw), nil
}
