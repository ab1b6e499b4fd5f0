package spec

import "errors"

var (
	ErrSpecNotFound     = errors.New("spec not found")
	ErrInvalidReference = errors.New("invalid reference")
	ErrSchemaNotFound   = errors.New("schema doesn't exist")
)

// ErrorCode categorizes extraction errors for clearer handling and messaging.
type ErrorCode string

const (
	InputError     ErrorCode = "InputError"
	NotFoundError  ErrorCode = "NotFoundError"
	ParseError     ErrorCode = "ParseError"
	ReferenceError ErrorCode = "ReferenceError"
)

// SpecError is a structured error with optional location and JSON Pointer.
type SpecError struct {
	Code        ErrorCode
	Message     string
	Location    string // asset path
	JSONPointer string // e.g. "#/components/schemas/user"
	Cause       error
}

func (e *SpecError) Error() string { return e.Message }
func (e *SpecError) Unwrap() error { return e.Cause }
