package spec

import (
	"strconv"

	"github.com/getkin/kin-openapi/openapi3"
)

const noContentCode = "204"

// GetResponses normalizes the declared responses of op in declaration order.
// A 204 never carries models; a oneOf schema yields one model per member.
func GetResponses(op *Operation) ([]Response, error) {
	responses := []Response{}
	if op == nil || op.Operation == nil {
		return responses, nil
	}

	for _, code := range orderedKeys(op.Responses, op.doc.keyOrder().keys(op.pointer("responses")...)) {
		response, at := op.doc.responseAt(op.Responses[code], op.pointer("responses", code))
		if response == nil {
			continue
		}
		status, _ := strconv.Atoi(code)
		r := Response{Code: status, Models: []Model{}}

		if len(response.Content) > 0 {
			types := orderedKeys(response.Content, op.doc.keyOrder().keys(extend(at, "content")...))
			r.ContentType = types[0]
		}

		if code != noContentCode {
			models, err := responseModels(response.Content[jsonContentType], op.doc)
			if err != nil {
				return nil, err
			}
			r.Models = append(r.Models, models...)
		}
		responses = append(responses, r)
	}
	return responses, nil
}

func responseModels(media *openapi3.MediaType, api *Document) ([]Model, error) {
	if media == nil || media.Schema == nil {
		return nil, nil
	}
	schemas := media.Schema
	if schemas.Ref == "" && schemas.Value != nil && len(schemas.Value.OneOf) > 0 {
		models := make([]Model, 0, len(schemas.Value.OneOf))
		for _, member := range schemas.Value.OneOf {
			m, err := modelFor(member, api)
			if err != nil {
				return nil, err
			}
			models = append(models, m)
		}
		return models, nil
	}
	m, err := modelFor(schemas, api)
	if err != nil {
		return nil, err
	}
	return []Model{m}, nil
}

func modelFor(ref *openapi3.SchemaRef, api *Document) (Model, error) {
	id, err := GetIDFromReference(ref)
	if err != nil {
		return Model{}, err
	}
	schema, err := GetSchema(id, api)
	if err != nil {
		return Model{}, err
	}
	return Model{ID: id, Name: schema.Description}, nil
}
