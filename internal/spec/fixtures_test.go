package spec

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

// clientSpec declares /account/sessions before /account and lists verbs out
// of order so tests can tell declaration order from sorted order.
const clientSpec = `{
  "openapi": "3.0.0",
  "info": {"title": "Appwrite", "version": "1.4.0"},
  "tags": [
    {"name": "account", "description": "The Account service allows you to authenticate and manage a user account."},
    {"name": "avatars", "description": "The Avatars service aims to help you complete everyday tasks."},
    {"name": "locale", "description": "The Locale service allows you to customize your app."}
  ],
  "paths": {
    "/account/sessions": {
      "delete": {
        "summary": "Delete sessions",
        "description": "Delete all sessions from the user account.",
        "tags": ["account"],
        "responses": {
          "204": {
            "description": "No Content",
            "content": {"application/json": {"schema": {"$ref": "#/components/schemas/user"}}}
          }
        },
        "x-appwrite": {"method": "deleteSessions", "weight": 12, "demo": "account/delete-sessions.md", "scope": "account", "platforms": ["client"]}
      },
      "get": {
        "summary": "List sessions",
        "description": "Get the list of active sessions.",
        "tags": ["account"],
        "parameters": [
          {"name": "limit", "in": "query", "required": true, "schema": {"type": "integer", "example": 25}},
          {"name": "cursor", "in": "query", "description": "Cursor for pagination.", "schema": {"type": "string"}}
        ],
        "responses": {
          "200": {
            "description": "Sessions",
            "content": {"application/json": {"schema": {"oneOf": [
              {"$ref": "#/components/schemas/sessionList"},
              {"$ref": "#/components/schemas/session"}
            ]}}}
          }
        },
        "x-appwrite": {"method": "listSessions", "weight": 11, "demo": "account/list-sessions.md", "rate-limit": 10, "rate-time": 3600, "rate-key": "url:{url},ip:{ip}"}
      }
    },
    "/account": {
      "patch": {
        "summary": "Update name",
        "tags": ["account"],
        "requestBody": {"content": {"application/json": {"schema": {"type": "object", "properties": {"name": {"type": "string"}}}}}},
        "responses": {"200": {"description": "User", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/user"}}}}},
        "x-appwrite": {"method": "updateName", "demo": "account/update-name.md"}
      },
      "post": {
        "summary": "Create account",
        "description": "Use this endpoint to allow a new user to register.",
        "tags": ["account"],
        "requestBody": {
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "properties": {
                  "userId": {"type": "string", "description": "User ID.", "x-example": "[USER_ID]"},
                  "email": {"type": "string", "description": "User email.", "x-example": "a@b.com"},
                  "password": {"type": "string", "description": "User password."},
                  "name": {"type": "string", "x-example": "[NAME]"}
                },
                "required": ["userId", "email", "password"]
              }
            }
          }
        },
        "responses": {"201": {"description": "User", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/user"}}}}},
        "x-appwrite": {"method": "create", "weight": 7, "demo": "account/create.md", "cookies": true}
      },
      "get": {
        "summary": "Get account",
        "description": "Get the currently logged in user.",
        "tags": ["account"],
        "responses": {
          "200": {"description": "User", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/user"}}}},
          "401": {"description": "Unauthorized"}
        },
        "x-appwrite": {"method": "get", "weight": 9, "demo": "account/get.md"}
      }
    },
    "/avatars/initials": {
      "get": {
        "summary": "Get user initials",
        "tags": ["avatars"],
        "responses": {"200": {"description": "Image", "content": {"image/png": {}}}},
        "x-appwrite": {"method": "getInitials", "demo": "avatars/get-initials.md"}
      }
    }
  },
  "components": {
    "schemas": {
      "user": {"description": "User", "type": "object", "properties": {"$id": {"type": "string"}}},
      "session": {"description": "Session", "type": "object"},
      "sessionList": {"description": "Sessions List", "type": "object"}
    }
  }
}`

func fixtureFS() fstest.MapFS {
	md := func(s string) *fstest.MapFile { return &fstest.MapFile{Data: []byte(s)} }
	return fstest.MapFS{
		"app/config/specs/open-api3-1.4.x-client.json":  md(clientSpec),
		"app/config/specs/open-api3-1.4.x-console.json": md(clientSpec),
		"app/config/specs/open-api3-0.14.x-client.json": md(clientSpec),
		"app/config/specs/open-api3-1.3.x-client.json":  md("{not json"),
		"app/config/specs/open-api3-latest.json":        md("{}"),
		"app/config/specs/README.md":                    md("# specs"),

		"docs/examples/1.4.x/client-web/examples/account/list-sessions.md":   md("const sessions = await account.listSessions();"),
		"docs/examples/1.4.x/client-web/examples/account/delete-sessions.md": md("await account.deleteSessions();"),
		"docs/examples/1.4.x/client-web/examples/account/get.md":             md("const user = await account.get();"),
		"docs/examples/1.4.x/client-web/examples/account/create.md":          md("await account.create('[USER_ID]', 'a@b.com', 'password');"),
		"docs/examples/1.4.x/client-web/examples/avatars/get-initials.md":    md("avatars.getInitials();"),
		"docs/examples/1.4.x/client-web/examples/account/notes.txt":          md("ignored"),
		"docs/examples/1.4.x/client-android/kotlin/account/get.md":           md("val user = account.get()"),
		"docs/examples/1.4.x/client-android/java/account/create.md":          md("account.create(\"[USER_ID]\", ...);"),
		"docs/examples/1.4.x/console-web/examples/account/get.md":            md("const user = await sdk.account.get();"),
		"docs/examples/1.0.x/client-web/examples/account/get.md":             md("account.get();"),
	}
}

func newFixtureLibrary(t *testing.T) *Library {
	t.Helper()
	assets, err := LoadAssets(fixtureFS())
	require.NoError(t, err)
	return New(assets)
}

func loadFixtureDoc(t *testing.T) *Document {
	t.Helper()
	doc, err := ParseDocument([]byte(clientSpec))
	require.NoError(t, err)
	return doc
}

func methodIDs(methods []SDKMethod) []string {
	out := make([]string, 0, len(methods))
	for _, m := range methods {
		out = append(out, m.ID)
	}
	return out
}
