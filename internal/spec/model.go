package spec

// Documentation model produced for the docs website. Field names follow the
// JSON consumed by the site templates.

type HttpMethod string

const (
	GET    HttpMethod = "get"
	POST   HttpMethod = "post"
	PUT    HttpMethod = "put"
	PATCH  HttpMethod = "patch"
	DELETE HttpMethod = "delete"
)

// Methods lists the supported verbs in emission order.
var Methods = []HttpMethod{GET, POST, PUT, PATCH, DELETE}

type ServiceResult struct {
	Service Service     `json:"service" yaml:"service"`
	Methods []SDKMethod `json:"methods" yaml:"methods"`
}

type Service struct {
	Name        string `json:"name,omitempty" yaml:"name,omitempty"`
	Description string `json:"description" yaml:"description"`
}

type SDKMethod struct {
	ID          string        `json:"id" yaml:"id"`
	Title       string        `json:"title" yaml:"title"`
	Description string        `json:"description" yaml:"description"`
	Demo        string        `json:"demo" yaml:"demo"`
	Method      HttpMethod    `json:"method" yaml:"method"`
	Path        string        `json:"path" yaml:"path"`
	Parameters  []Parameter   `json:"parameters" yaml:"parameters"`
	Responses   []Response    `json:"responses" yaml:"responses"`
	Meta        *AppwriteMeta `json:"meta,omitempty" yaml:"meta,omitempty"`
}

type Parameter struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Required    bool   `json:"required" yaml:"required"`
	Type        string `json:"type" yaml:"type"`
	// Example is whatever the document carries: a string for body
	// properties, any JSON value for query parameters. It may be nil.
	Example any `json:"example" yaml:"example"`
}

type Response struct {
	Code        int     `json:"code" yaml:"code"`
	ContentType string  `json:"contentType,omitempty" yaml:"contentType,omitempty"`
	Models      []Model `json:"models" yaml:"models"`
}

type Model struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// AppwriteMeta is the decoded x-appwrite vendor extension of an operation.
type AppwriteMeta struct {
	Method    string   `json:"method" yaml:"method"`
	Weight    int      `json:"weight,omitempty" yaml:"weight,omitempty"`
	Cookies   bool     `json:"cookies,omitempty" yaml:"cookies,omitempty"`
	Type      string   `json:"type,omitempty" yaml:"type,omitempty"`
	Demo      string   `json:"demo" yaml:"demo"`
	Edit      string   `json:"edit,omitempty" yaml:"edit,omitempty"`
	RateLimit int      `json:"rate-limit,omitempty" yaml:"rate-limit,omitempty"`
	RateTime  int      `json:"rate-time,omitempty" yaml:"rate-time,omitempty"`
	RateKey   any      `json:"rate-key,omitempty" yaml:"rate-key,omitempty"`
	Scope     any      `json:"scope,omitempty" yaml:"scope,omitempty"`
	Platforms []string `json:"platforms,omitempty" yaml:"platforms,omitempty"`
	Packaging bool     `json:"packaging,omitempty" yaml:"packaging,omitempty"`
}
