package types

// ErrorKind categorizes expected operation failures so callers can relay
// them without interpreting free-form messages.
type ErrorKind string

const (
	ErrNotFound         ErrorKind = "not_found"
	ErrInvalidArgument  ErrorKind = "invalid_argument"
	ErrPermissionDenied ErrorKind = "permission_denied"
	ErrAlreadyExists    ErrorKind = "already_exists"
	ErrProtected        ErrorKind = "protected"
	ErrNotEmpty         ErrorKind = "not_empty"
	ErrUnsupported      ErrorKind = "unsupported"
	ErrInternal         ErrorKind = "internal"
)

// Failure describes an expected failure in a structured way.
type Failure struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
	Path    string    `json:"path,omitempty"`
}

// Result represents a tool execution result. Expected failures are
// reported through Error with Success=false; hard Go errors are reserved
// for internal faults.
type Result struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *Failure               `json:"error,omitempty"`
}
