package spec

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"go.uber.org/zap"
)

// Document is a parsed OpenAPI v3 document together with the declaration
// order of its objects.
type Document struct {
	*openapi3.T
	order *keyOrder
}

// NewDocument wraps an in-memory document. Without raw text there is no
// declaration order, so collections come out in sorted key order.
func NewDocument(t *openapi3.T) *Document {
	return &Document{T: t}
}

// ParseDocument decodes raw OpenAPI v3 JSON without validating it or
// resolving references. A $ref keeps its pointer and a nil value; operations
// resolve what they use through components when they are extracted.
func ParseDocument(raw []byte) (*Document, error) {
	order, err := parseKeyOrder(raw)
	if err != nil {
		return nil, err
	}
	var t openapi3.T
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, err
	}
	return &Document{T: &t, order: order}, nil
}

// Settings configures a Library.
type Settings struct {
	Logger *zap.Logger
}

// DefaultSettings returns recommended defaults.
func DefaultSettings() Settings {
	return Settings{Logger: zap.NewNop()}
}

// Option mutates Settings.
type Option func(*Settings)

func WithLogger(l *zap.Logger) Option {
	return func(s *Settings) {
		if l != nil {
			s.Logger = l
		}
	}
}

// Library extracts SDK method documentation from an asset tree.
type Library struct {
	assets *Assets
	log    *zap.Logger
}

func New(assets *Assets, opts ...Option) *Library {
	settings := DefaultSettings()
	for _, opt := range opts {
		opt(&settings)
	}
	return &Library{assets: assets, log: settings.Logger}
}

// GetAPI loads the spec document that serves platform at version. Client and
// server platforms read their own audience document, everything else reads
// the console one.
func (l *Library) GetAPI(ctx context.Context, version, platform string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(version) == "" {
		return nil, &SpecError{Code: InputError, Message: "spec: version is empty"}
	}
	p := SpecPath(version, platform)
	raw, err := l.assets.readSpec(p)
	if err != nil {
		return nil, err
	}
	doc, err := ParseDocument(raw)
	if err != nil {
		return nil, &SpecError{Code: ParseError, Message: fmt.Sprintf("spec: %v", err), Location: p, Cause: err}
	}
	l.log.Debug("loaded spec", zap.String("path", p), zap.Int("paths", len(doc.Paths)))
	return doc, nil
}
