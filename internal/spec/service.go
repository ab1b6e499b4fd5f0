package spec

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/getkin/kin-openapi/openapi3"
	"go.uber.org/zap"
)

const appwriteExtension = "x-appwrite"

// Operation is one HTTP verb bound to one path of a Document.
type Operation struct {
	*openapi3.Operation
	Method HttpMethod
	Path   string
	doc    *Document
}

// pointer returns the segments leading to the operation in the raw document.
func (o *Operation) pointer(segs ...string) []string {
	return append([]string{"paths", o.Path, string(o.Method)}, segs...)
}

// Operations returns the operations tagged with service, in path declaration
// order and then GET, POST, PUT, PATCH, DELETE within a path.
func (d *Document) Operations(service string) []*Operation {
	if d == nil || d.T == nil {
		return nil
	}
	var out []*Operation
	for _, p := range orderedKeys(d.Paths, d.order.keys("paths")) {
		item := d.Paths[p]
		if item == nil {
			continue
		}
		for _, m := range Methods {
			op := operationFor(item, m)
			if op == nil || !slices.Contains(op.Tags, service) {
				continue
			}
			out = append(out, &Operation{Operation: op, Method: m, Path: p, doc: d})
		}
	}
	return out
}

func operationFor(item *openapi3.PathItem, m HttpMethod) *openapi3.Operation {
	switch m {
	case GET:
		return item.Get
	case POST:
		return item.Post
	case PUT:
		return item.Put
	case PATCH:
		return item.Patch
	case DELETE:
		return item.Delete
	default:
		return nil
	}
}

// Meta decodes the x-appwrite vendor block. It returns nil when the operation
// carries none.
func (o *Operation) Meta() (*AppwriteMeta, error) {
	raw, ok := o.Extensions[appwriteExtension]
	if !ok || raw == nil {
		return nil, nil
	}
	// Extension values may arrive decoded or as raw JSON depending on how the
	// document was built; a round trip covers both.
	data, ok := raw.(json.RawMessage)
	if !ok {
		var err error
		if data, err = json.Marshal(raw); err != nil {
			return nil, err
		}
	}
	var meta AppwriteMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// Tag returns the service tag named name, matched exactly.
func (d *Document) Tag(name string) *openapi3.Tag {
	if d == nil || d.T == nil {
		return nil
	}
	for _, t := range d.Tags {
		if t != nil && t.Name == name {
			return t
		}
	}
	return nil
}

// ListServices returns the service tags declared by the document for
// platform at version.
func (l *Library) ListServices(ctx context.Context, version, platform string) ([]Service, error) {
	api, err := l.GetAPI(ctx, version, platform)
	if err != nil {
		return nil, err
	}
	out := make([]Service, 0, len(api.Tags))
	for _, t := range api.Tags {
		if t == nil {
			continue
		}
		out = append(out, Service{Name: t.Name, Description: t.Description})
	}
	return out, nil
}

// GetService assembles the documentation of every method tagged with service
// that has an example snippet for platform at version.
func (l *Library) GetService(ctx context.Context, version, platform, service string) (*ServiceResult, error) {
	api, err := l.GetAPI(ctx, version, platform)
	if err != nil {
		return nil, err
	}

	data := &ServiceResult{Methods: []SDKMethod{}}
	if tag := api.Tag(service); tag != nil {
		data.Service = Service{Name: tag.Name, Description: tag.Description}
	}

	examples, ok := l.assets.Examples(version)
	if !ok {
		l.log.Debug("no examples for version", zap.String("version", version))
		return data, nil
	}

	log := l.log.With(zap.String("version", version), zap.String("platform", platform), zap.String("service", service))
	for _, op := range api.Operations(service) {
		parameters := GetParameters(op)
		responses, err := GetResponses(op)
		if err != nil {
			return nil, err
		}

		meta, err := op.Meta()
		if err != nil {
			return nil, &SpecError{
				Code:        ParseError,
				Message:     fmt.Sprintf("spec: decode %s of %s %s: %v", appwriteExtension, op.Method, op.Path, err),
				Location:    SpecPath(version, platform),
				JSONPointer: "#/paths/" + escapePointer(op.Path) + "/" + string(op.Method),
				Cause:       err,
			}
		}
		if meta == nil || meta.Demo == "" {
			log.Debug("skipping method without demo", zap.String("path", op.Path), zap.String("method", string(op.Method)))
			continue
		}

		path := ExamplePath(version, platform, meta.Demo)
		if !examples.Has(path) {
			log.Debug("skipping method without example", zap.String("method", meta.Method), zap.String("example", path))
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		demo, err := examples.Read(path)
		if err != nil {
			return nil, err
		}

		data.Methods = append(data.Methods, SDKMethod{
			ID:          meta.Method,
			Title:       op.Summary,
			Description: op.Description,
			Demo:        demo,
			Method:      op.Method,
			Path:        op.Path,
			Parameters:  parameters,
			Responses:   responses,
			Meta:        meta,
		})
	}
	return data, nil
}
