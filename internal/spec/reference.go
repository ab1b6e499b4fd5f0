package spec

import (
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// GetSchema returns the component schema registered under id.
func GetSchema(id string, api *Document) (*openapi3.Schema, error) {
	if c := api.components(); c != nil {
		if schema, _ := api.schemaAt(c.Schemas[id], nil); schema != nil {
			return schema, nil
		}
	}
	return nil, &SpecError{
		Code:        ReferenceError,
		Message:     fmt.Sprintf("%v: %s", ErrSchemaNotFound, id),
		JSONPointer: "#/components/schemas/" + id,
		Cause:       ErrSchemaNotFound,
	}
}

// GetIDFromReference returns the trailing segment of ref's $ref pointer.
func GetIDFromReference(ref *openapi3.SchemaRef) (string, error) {
	var pointer string
	if ref != nil {
		pointer = ref.Ref
	}
	id := pointer[strings.LastIndex(pointer, "/")+1:]
	if id == "" {
		return "", &SpecError{
			Code:        ReferenceError,
			Message:     fmt.Sprintf("%v: %q", ErrInvalidReference, pointer),
			JSONPointer: pointer,
			Cause:       ErrInvalidReference,
		}
	}
	return id, nil
}

// ResolveReference looks up the component schema ref points at.
func ResolveReference(ref *openapi3.SchemaRef, api *Document) (*openapi3.Schema, error) {
	id, err := GetIDFromReference(ref)
	if err != nil {
		return nil, err
	}
	return GetSchema(id, api)
}

// maxRefDepth bounds alias chains between components.
const maxRefDepth = 16

func (d *Document) components() *openapi3.Components {
	if d == nil || d.T == nil {
		return nil
	}
	return d.Components
}

// followRef resolves a local reference into the components table named kind.
// It returns the value together with the document location it is declared
// at, or at itself for inline values. A reference that does not resolve
// yields nil.
func followRef[V any](ref string, value *V, at []string, kind string, table func(id string) (string, *V, bool)) (*V, []string) {
	for depth := 0; depth < maxRefDepth; depth++ {
		if value != nil {
			if segs := pointerSegments(ref); segs != nil {
				at = segs
			}
			return value, at
		}
		segs := pointerSegments(ref)
		if len(segs) != 3 || segs[0] != "components" || segs[1] != kind {
			return nil, nil
		}
		next, v, ok := table(segs[2])
		if !ok {
			return nil, nil
		}
		ref, value, at = next, v, segs
	}
	return nil, nil
}

func (d *Document) schemaAt(ref *openapi3.SchemaRef, at []string) (*openapi3.Schema, []string) {
	if ref == nil {
		return nil, nil
	}
	return followRef(ref.Ref, ref.Value, at, "schemas", func(id string) (string, *openapi3.Schema, bool) {
		c := d.components()
		if c == nil || c.Schemas[id] == nil {
			return "", nil, false
		}
		return c.Schemas[id].Ref, c.Schemas[id].Value, true
	})
}

func (d *Document) parameterAt(ref *openapi3.ParameterRef, at []string) (*openapi3.Parameter, []string) {
	if ref == nil {
		return nil, nil
	}
	return followRef(ref.Ref, ref.Value, at, "parameters", func(id string) (string, *openapi3.Parameter, bool) {
		c := d.components()
		if c == nil || c.Parameters[id] == nil {
			return "", nil, false
		}
		return c.Parameters[id].Ref, c.Parameters[id].Value, true
	})
}

func (d *Document) requestBodyAt(ref *openapi3.RequestBodyRef, at []string) (*openapi3.RequestBody, []string) {
	if ref == nil {
		return nil, nil
	}
	return followRef(ref.Ref, ref.Value, at, "requestBodies", func(id string) (string, *openapi3.RequestBody, bool) {
		c := d.components()
		if c == nil || c.RequestBodies[id] == nil {
			return "", nil, false
		}
		return c.RequestBodies[id].Ref, c.RequestBodies[id].Value, true
	})
}

func (d *Document) responseAt(ref *openapi3.ResponseRef, at []string) (*openapi3.Response, []string) {
	if ref == nil {
		return nil, nil
	}
	return followRef(ref.Ref, ref.Value, at, "responses", func(id string) (string, *openapi3.Response, bool) {
		c := d.components()
		if c == nil || c.Responses[id] == nil {
			return "", nil, false
		}
		return c.Responses[id].Ref, c.Responses[id].Value, true
	})
}
