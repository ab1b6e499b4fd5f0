package spec

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAssets_IndexesSpecs(t *testing.T) {
	t.Parallel()
	assets, err := LoadAssets(fixtureFS())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"app/config/specs/open-api3-0.14.x-client.json",
		"app/config/specs/open-api3-1.3.x-client.json",
		"app/config/specs/open-api3-1.4.x-client.json",
		"app/config/specs/open-api3-1.4.x-console.json",
	}, assets.Specs())
	assert.False(t, assets.HasSpec("app/config/specs/open-api3-latest.json"))
}

func TestLoadAssets_Examples(t *testing.T) {
	t.Parallel()
	assets, err := LoadAssets(fixtureFS())
	require.NoError(t, err)

	b, ok := assets.Examples("1.4.x")
	require.True(t, ok)
	assert.Equal(t, 8, b.Len())
	assert.True(t, b.Has("docs/examples/1.4.x/client-web/examples/account/get.md"))
	assert.False(t, b.Has("docs/examples/1.4.x/client-web/examples/account/notes.txt"))
	assert.False(t, b.Has("docs/examples/1.0.x/client-web/examples/account/get.md"))

	text, err := b.Read("docs/examples/1.4.x/client-web/examples/account/get.md")
	require.NoError(t, err)
	assert.Equal(t, "const user = await account.get();", text)

	_, err = b.Read("docs/examples/1.4.x/client-web/examples/account/missing.md")
	var se *SpecError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, NotFoundError, se.Code)

	empty, ok := assets.Examples("1.2.x")
	require.True(t, ok)
	assert.Zero(t, empty.Len())

	_, ok = assets.Examples("2.0.x")
	assert.False(t, ok)
}

func TestLoadAssets_EmptyTree(t *testing.T) {
	t.Parallel()
	assets, err := LoadAssets(fstest.MapFS{})
	require.NoError(t, err)
	assert.Empty(t, assets.Specs())

	_, err = New(assets).GetAPI(context.Background(), "1.4.x", PlatformClientWeb)
	assert.True(t, errors.Is(err, ErrSpecNotFound))
}

func TestLoadAssets_NilFS(t *testing.T) {
	t.Parallel()
	_, err := LoadAssets(nil)
	var se *SpecError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, InputError, se.Code)
}

func TestNilBundle(t *testing.T) {
	t.Parallel()
	var b *Bundle
	assert.False(t, b.Has("x.md"))
	assert.Zero(t, b.Len())
	_, err := b.Read("x.md")
	assert.Error(t, err)
}
