package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Configuration errors (never retryable; raised before any network I/O)
const (
	// ErrCodeInvalidProxy indicates a proxy was requested over a value that
	// is not a callable remote reference.
	ErrCodeInvalidProxy ErrorCode = "INVALID_PROXY"
	// ErrCodeInvalidConfig indicates invalid construction or tuning arguments.
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
	// ErrCodeAttrDenied indicates access to an attribute outside a
	// restricted view's allowlist.
	ErrCodeAttrDenied ErrorCode = "ATTR_DENIED"
)

// Transport/serving errors
const (
	// ErrCodeConnectionFailed indicates an unrecoverable transport failure.
	ErrCodeConnectionFailed ErrorCode = "CONNECTION_FAILED"
	// ErrCodeServingStopped indicates the background serving worker has
	// reached its terminal state.
	ErrCodeServingStopped ErrorCode = "SERVING_STOPPED"
	// ErrCodeTimeout indicates a pending result expired before delivery.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
)

// Remote errors
const (
	// ErrCodeRemote indicates an error propagated from the remote side of a
	// call; it is passed through to the caller uninterpreted.
	ErrCodeRemote ErrorCode = "REMOTE_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeConnectionFailed: true,
	ErrCodeTimeout:          true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
