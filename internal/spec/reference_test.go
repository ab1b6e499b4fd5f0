package spec

import (
	"errors"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetIDFromReference(t *testing.T) {
	t.Parallel()
	cases := []struct {
		ref     *openapi3.SchemaRef
		want    string
		wantErr bool
	}{
		{ref: &openapi3.SchemaRef{Ref: "#/components/schemas/user"}, want: "user"},
		{ref: &openapi3.SchemaRef{Ref: "user"}, want: "user"},
		{ref: &openapi3.SchemaRef{Ref: "#/components/schemas/"}, wantErr: true},
		{ref: &openapi3.SchemaRef{}, wantErr: true},
		{ref: nil, wantErr: true},
	}
	for _, tc := range cases {
		got, err := GetIDFromReference(tc.ref)
		if tc.wantErr {
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidReference))
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}
}

func TestResolveReference(t *testing.T) {
	t.Parallel()
	api := testDocument()

	schema, err := ResolveReference(&openapi3.SchemaRef{Ref: "#/components/schemas/A"}, api)
	require.NoError(t, err)
	assert.Equal(t, "Model A", schema.Description)

	_, err = ResolveReference(&openapi3.SchemaRef{Ref: "#/components/schemas/Missing"}, api)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSchemaNotFound))
	var se *SpecError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, ReferenceError, se.Code)
	assert.Equal(t, "#/components/schemas/Missing", se.JSONPointer)

	_, err = ResolveReference(&openapi3.SchemaRef{Ref: "#/components/schemas/"}, api)
	assert.True(t, errors.Is(err, ErrInvalidReference))
}

func TestGetSchema(t *testing.T) {
	t.Parallel()

	schema, err := GetSchema("B", testDocument())
	require.NoError(t, err)
	assert.Equal(t, "Model B", schema.Description)

	_, err = GetSchema("A", NewDocument(&openapi3.T{}))
	assert.True(t, errors.Is(err, ErrSchemaNotFound))

	_, err = GetSchema("A", nil)
	assert.True(t, errors.Is(err, ErrSchemaNotFound))
}
