package spec

import (
	"encoding/json"
	"slices"
)

const (
	jsonContentType  = "application/json"
	exampleExtension = "x-example"
)

// GetParameters normalizes the inputs of op. GET operations read their
// declared parameters; every other verb reads the properties of its JSON
// request body schema. Missing pieces yield an empty list.
func GetParameters(op *Operation) []Parameter {
	parameters := []Parameter{}
	if op == nil || op.Operation == nil {
		return parameters
	}

	if op.Method == GET {
		for _, ref := range op.Parameters {
			p, _ := op.doc.parameterAt(ref, nil)
			if p == nil {
				continue
			}
			param := Parameter{
				Name:        p.Name,
				Description: p.Description,
				Required:    p.Required,
			}
			if schema, _ := op.doc.schemaAt(p.Schema, nil); schema != nil {
				param.Type = schema.Type
				param.Example = schema.Example
			}
			parameters = append(parameters, param)
		}
		return parameters
	}

	body, at := op.doc.requestBodyAt(op.RequestBody, op.pointer("requestBody"))
	if body == nil {
		return parameters
	}
	media := body.Content[jsonContentType]
	if media == nil {
		return parameters
	}
	schema, at := op.doc.schemaAt(media.Schema, extend(at, "content", jsonContentType, "schema"))
	if schema == nil {
		return parameters
	}
	order := op.doc.keyOrder().keys(extend(at, "properties")...)

	for _, key := range orderedKeys(schema.Properties, order) {
		param := Parameter{
			Name:     key,
			Required: slices.Contains(schema.Required, key),
			Example:  "",
		}
		if prop, _ := op.doc.schemaAt(schema.Properties[key], nil); prop != nil {
			param.Description = prop.Description
			param.Type = prop.Type
			if ex, ok := extensionValue(prop.Extensions, exampleExtension); ok {
				param.Example = ex
			}
		}
		parameters = append(parameters, param)
	}
	return parameters
}

// extend appends segs to a copy of base. A nil base stays nil, so an
// unresolved location never turns into a lookup from the document root.
func extend(base []string, segs ...string) []string {
	if base == nil {
		return nil
	}
	return append(slices.Clip(base), segs...)
}

func (d *Document) keyOrder() *keyOrder {
	if d == nil {
		return nil
	}
	return d.order
}

// extensionValue returns a decoded vendor extension value.
func extensionValue(ext map[string]any, name string) (any, bool) {
	raw, ok := ext[name]
	if !ok || raw == nil {
		return nil, false
	}
	if msg, ok := raw.(json.RawMessage); ok {
		var v any
		if err := json.Unmarshal(msg, &v); err != nil {
			return nil, false
		}
		return v, v != nil
	}
	return raw, true
}
