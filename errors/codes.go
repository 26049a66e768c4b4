package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

const (
	// ErrCodeConfiguration indicates a target or driver is declared incorrectly.
	ErrCodeConfiguration ErrorCode = "CONFIGURATION_ERROR"
	// ErrCodeBackend indicates a backend call failed.
	ErrCodeBackend ErrorCode = "BACKEND_ERROR"
	// ErrCodeInvalidFixture indicates a fixture payload has the wrong shape for its target.
	ErrCodeInvalidFixture ErrorCode = "INVALID_FIXTURE"
)
