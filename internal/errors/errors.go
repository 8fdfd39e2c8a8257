// Package errors provides standardized error types for the deploygen CLI.
//
// Two error families exist:
//
// PlanError covers per-descriptor and operational failures. It carries a
// Code categorizing the error, the application name involved (if any), and
// an optional wrapped cause. Validation failures use the dedicated codes
// ErrCodeInvalidDomain, ErrCodeInvalidPath, ErrCodeInvalidPort,
// ErrCodeInvalidStaticRoot and ErrCodeInvalidKind.
//
// ConflictError is set-wide: it is returned by plan resolution when two or
// more descriptors cannot both be satisfied, and carries the complete list
// of detected conflicts so a caller can fix everything in one pass.
//
// # Usage
//
// Creating errors:
//
//	return errors.Validation(errors.ErrCodeInvalidDomain, "domain cannot be empty")
//	return errors.Wrap(errors.ErrCodeManifest, "failed to parse manifest", err)
//
// Checking errors:
//
//	var conflicts *errors.ConflictError
//	if errors.As(err, &conflicts) {
//	    for _, c := range conflicts.Conflicts { ... }
//	}
//
//	if errors.Is(err, errors.ErrRootRequired) { ... }
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode categorizes errors for programmatic handling.
type ErrorCode string

// Error codes for different error categories.
const (
	ErrCodeInvalidDomain     ErrorCode = "INVALID_DOMAIN"      // Domain syntax invalid
	ErrCodeInvalidPath       ErrorCode = "INVALID_PATH"        // Path prefix invalid
	ErrCodeInvalidPort       ErrorCode = "INVALID_PORT"        // Backend port out of range
	ErrCodeInvalidStaticRoot ErrorCode = "INVALID_STATIC_ROOT" // Static root missing
	ErrCodeInvalidKind       ErrorCode = "INVALID_KIND"        // Unknown backend kind
	ErrCodeManifest          ErrorCode = "MANIFEST"            // Manifest load/parse error
	ErrCodeConfig            ErrorCode = "CONFIG"              // Tool configuration error
	ErrCodeRender            ErrorCode = "RENDER"              // Template rendering error
	ErrCodeDriver            ErrorCode = "DRIVER"              // Web server driver error
	ErrCodePermission        ErrorCode = "PERMISSION"          // Permission denied
	ErrCodeSSL               ErrorCode = "SSL"                 // Certificate tooling error
	ErrCodeInternal          ErrorCode = "INTERNAL"            // Internal/unexpected error
)

// PlanError represents a structured error with context about the operation.
type PlanError struct {
	Code    ErrorCode // Error category
	Message string    // Human-readable message
	App     string    // Application name (if applicable)
	Err     error     // Underlying error (if any)
}

// Error implements the error interface.
func (e *PlanError) Error() string {
	if e.App != "" && e.Err != nil {
		return fmt.Sprintf("app %s: %s: %v", e.App, e.Message, e.Err)
	}
	if e.App != "" {
		return fmt.Sprintf("app %s: %s", e.App, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for error chain traversal.
func (e *PlanError) Unwrap() error {
	return e.Err
}

// Is reports whether target matches this error.
// Comparison is based on error code.
func (e *PlanError) Is(target error) bool {
	t, ok := target.(*PlanError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// ConflictKind identifies the way two descriptors collide.
type ConflictKind string

// Conflict kinds.
const (
	ConflictDuplicateRoute ConflictKind = "duplicate-route" // Same domain+path claimed twice
	ConflictPortCollision  ConflictKind = "port-collision"  // Same local port claimed twice
	ConflictDuplicateName  ConflictKind = "duplicate-name"  // Same app name used twice
)

// Conflict records one pair of descriptors that cannot both be satisfied.
// IndexA and IndexB are positions in the descriptor set handed to Resolve,
// with IndexA < IndexB.
type Conflict struct {
	Kind   ConflictKind `json:"kind"`
	IndexA int          `json:"index_a"`
	IndexB int          `json:"index_b"`
	Domain string       `json:"domain,omitempty"`
	Path   string       `json:"path,omitempty"`
	Port   int          `json:"port,omitempty"`
	Name   string       `json:"name,omitempty"`
}

// String returns a human-readable description of the conflict.
func (c Conflict) String() string {
	switch c.Kind {
	case ConflictDuplicateRoute:
		return fmt.Sprintf("duplicate route %s%s (apps #%d and #%d)", c.Domain, c.Path, c.IndexA, c.IndexB)
	case ConflictPortCollision:
		return fmt.Sprintf("port %d claimed twice (apps #%d and #%d)", c.Port, c.IndexA, c.IndexB)
	case ConflictDuplicateName:
		return fmt.Sprintf("app name %q used twice (apps #%d and #%d)", c.Name, c.IndexA, c.IndexB)
	default:
		return fmt.Sprintf("conflict between apps #%d and #%d", c.IndexA, c.IndexB)
	}
}

// ConflictError is returned by plan resolution when the descriptor set
// contains conflicting bindings. It always carries the complete report.
type ConflictError struct {
	Conflicts []Conflict
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	if len(e.Conflicts) == 1 {
		return "1 conflict: " + e.Conflicts[0].String()
	}
	descs := make([]string, len(e.Conflicts))
	for i, c := range e.Conflicts {
		descs[i] = c.String()
	}
	return fmt.Sprintf("%d conflicts: %s", len(e.Conflicts), strings.Join(descs, "; "))
}

// Sentinel errors for common error scenarios.
// Use these with errors.Is() for error checking.
var (
	// ErrInvalidDomain indicates the domain name is not valid.
	ErrInvalidDomain = &PlanError{Code: ErrCodeInvalidDomain, Message: "invalid domain"}

	// ErrInvalidPath indicates the path prefix is not valid.
	ErrInvalidPath = &PlanError{Code: ErrCodeInvalidPath, Message: "invalid path prefix"}

	// ErrInvalidPort indicates the backend port is out of range.
	ErrInvalidPort = &PlanError{Code: ErrCodeInvalidPort, Message: "invalid port"}

	// ErrInvalidStaticRoot indicates a static backend without a root directory.
	ErrInvalidStaticRoot = &PlanError{Code: ErrCodeInvalidStaticRoot, Message: "invalid static root"}

	// ErrInvalidKind indicates an unknown backend kind.
	ErrInvalidKind = &PlanError{Code: ErrCodeInvalidKind, Message: "invalid backend kind"}

	// ErrManifestInvalid indicates the manifest could not be loaded or parsed.
	ErrManifestInvalid = &PlanError{Code: ErrCodeManifest, Message: "invalid manifest"}

	// ErrDriverNotFound indicates the specified driver is not available.
	ErrDriverNotFound = &PlanError{Code: ErrCodeDriver, Message: "driver not found"}

	// ErrRootRequired indicates root privileges are required.
	ErrRootRequired = &PlanError{Code: ErrCodePermission, Message: "root privileges required"}

	// ErrSSLNotInstalled indicates certbot is not installed.
	ErrSSLNotInstalled = &PlanError{Code: ErrCodeSSL, Message: "certbot not installed"}
)

// Validation creates a validation error with the given code and message.
func Validation(code ErrorCode, msg string) error {
	return &PlanError{
		Code:    code,
		Message: msg,
	}
}

// ValidationApp creates a validation error carrying the application name.
func ValidationApp(code ErrorCode, app, msg string) error {
	return &PlanError{
		Code:    code,
		Message: msg,
		App:     app,
	}
}

// Wrap creates an error with the specified code, message, and underlying error.
func Wrap(code ErrorCode, msg string, err error) error {
	return &PlanError{
		Code:    code,
		Message: msg,
		Err:     err,
	}
}

// Is reports whether any error in err's chain matches target.
// This is a re-export of errors.Is for convenience.
var Is = errors.Is

// As finds the first error in err's chain that matches target.
// This is a re-export of errors.As for convenience.
var As = errors.As
