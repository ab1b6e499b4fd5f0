package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

const testClientSpec = `{
  "openapi": "3.0.0",
  "info": {"title": "Appwrite", "version": "1.4.0"},
  "tags": [
    {"name": "account", "description": "Manage the current user."},
    {"name": "avatars", "description": "Generate images."}
  ],
  "paths": {
    "/account": {
      "get": {
        "summary": "Get account",
        "tags": ["account"],
        "responses": {"200": {"description": "User", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/user"}}}}},
        "x-appwrite": {"method": "get", "weight": 9, "demo": "account/get.md"}
      },
      "delete": {
        "summary": "Delete account",
        "tags": ["account"],
        "responses": {"204": {"description": "No Content"}},
        "x-appwrite": {"method": "delete", "demo": "account/delete.md"}
      }
    },
    "/avatars/initials": {
      "get": {
        "summary": "Get user initials",
        "tags": ["avatars"],
        "parameters": [{"name": "name", "in": "query", "schema": {"type": "string", "example": "[NAME]"}}],
        "responses": {"200": {"description": "Image", "content": {"image/png": {}}}},
        "x-appwrite": {"method": "getInitials", "demo": "avatars/get-initials.md"}
      }
    }
  },
  "components": {
    "schemas": {
      "user": {"description": "User", "type": "object"}
    }
  }
}`

// writeAssetTree lays out a documentation tree with a 1.4.x client spec and
// client-web snippets. account/delete has no snippet.
func writeAssetTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"app/config/specs/open-api3-1.4.x-client.json":                    testClientSpec,
		"docs/examples/1.4.x/client-web/examples/account/get.md":          "const user = await account.get();",
		"docs/examples/1.4.x/client-web/examples/avatars/get-initials.md": "const result = avatars.getInitials();",
	}
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
	return root
}

// stubEnv replaces the environment seen by config resolution. Tests calling
// it must not run in parallel.
func stubEnv(t *testing.T, env map[string]string) {
	t.Helper()
	prev := lookupEnv
	lookupEnv = func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
	t.Cleanup(func() { lookupEnv = prev })
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "sdkdocs.yaml")
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return p
}

func equalStringSlices(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
