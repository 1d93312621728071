package oaserrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrDiscovery indicates a scope could not be scanned.
	ErrDiscovery = errors.New("discovery error")

	// ErrDuplicateComponent indicates a component naming collision within one kind.
	ErrDuplicateComponent = errors.New("duplicate component")

	// ErrConflictingOperation indicates two handlers claim the same operation.
	ErrConflictingOperation = errors.New("conflicting operation")

	// ErrUnresolvedReference indicates a reference to a missing component.
	ErrUnresolvedReference = errors.New("unresolved reference")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// DiscoveryError represents a failure to scan a search scope.
// A missing configured scope usually means misconfiguration, so it is
// surfaced instead of being skipped.
type DiscoveryError struct {
	// Scope is the scope identifier (usually a directory or file path)
	Scope string
	// Kind is the marker kind being discovered (may be empty)
	Kind string
	// Location is the file or declaration inside the scope (may be empty)
	Location string
	// Message describes the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *DiscoveryError) Error() string {
	msg := "discovery error"
	if e.Kind != "" {
		msg += " for " + e.Kind
	}
	if e.Scope != "" {
		msg += " in scope " + e.Scope
	}
	if e.Location != "" {
		msg += " at " + e.Location
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *DiscoveryError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *DiscoveryError) Is(target error) bool {
	return target == ErrDiscovery
}

// DuplicateComponentError represents two distinct declarations of the same
// component kind that map to the same component name.
type DuplicateComponentError struct {
	// Kind is the component kind (e.g., "schemas", "responses")
	Kind string
	// Name is the colliding component name
	Name string
	// First is the location of the declaration that claimed the name first
	First string
	// Second is the location of the colliding declaration
	Second string
}

// Error returns a human-readable error message.
func (e *DuplicateComponentError) Error() string {
	msg := "duplicate component"
	if e.Kind != "" {
		msg += " in " + e.Kind
	}
	if e.Name != "" {
		msg += fmt.Sprintf(" %q", e.Name)
	}
	if e.First != "" || e.Second != "" {
		msg += fmt.Sprintf(": declared by %s and %s", e.First, e.Second)
	}
	return msg
}

// Unwrap returns nil as DuplicateComponentError has no underlying cause.
func (e *DuplicateComponentError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *DuplicateComponentError) Is(target error) bool {
	return target == ErrDuplicateComponent
}

// ConflictingOperationError represents two distinct handlers registered for
// the same method and path template, or two operations sharing an operationId.
type ConflictingOperationError struct {
	// Method is the HTTP method
	Method string
	// Path is the path template
	Path string
	// OperationID is set when the conflict is a duplicate operationId
	OperationID string
	// First is the handler that claimed the operation first
	First string
	// Second is the conflicting handler
	Second string
}

// Error returns a human-readable error message.
func (e *ConflictingOperationError) Error() string {
	msg := "conflicting operation"
	if e.Method != "" && e.Path != "" {
		msg += " " + e.Method + " " + e.Path
	} else if e.Path != "" {
		msg += " " + e.Path
	}
	if e.OperationID != "" {
		msg += fmt.Sprintf(" [operationId: %s]", e.OperationID)
	}
	if e.First != "" || e.Second != "" {
		msg += fmt.Sprintf(": claimed by %s and %s", e.First, e.Second)
	}
	return msg
}

// Unwrap returns nil as ConflictingOperationError has no underlying cause.
func (e *ConflictingOperationError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *ConflictingOperationError) Is(target error) bool {
	return target == ErrConflictingOperation
}

// UnresolvedReferenceError represents a reference whose target component
// does not exist in its component table.
type UnresolvedReferenceError struct {
	// Ref is the reference string (e.g., "#/components/schemas/Pet")
	Ref string
	// Kind is the component kind the reference points into
	Kind string
	// Name is the missing component name
	Name string
	// Location identifies the referencing operation or document path
	// (e.g., "GET /users/{id}" or "paths./users/{id}.get.responses.200")
	Location string
	// Field is the referencing field (e.g., "requestBody", "responses.200")
	Field string
}

// Error returns a human-readable error message.
func (e *UnresolvedReferenceError) Error() string {
	msg := "unresolved reference"
	if e.Location != "" {
		msg += " at " + e.Location
	}
	if e.Field != "" {
		msg += " field " + e.Field
	}
	switch {
	case e.Ref != "":
		msg += ": " + e.Ref
	case e.Kind != "" && e.Name != "":
		msg += fmt.Sprintf(": %s %q", e.Kind, e.Name)
	case e.Name != "":
		msg += fmt.Sprintf(": %q", e.Name)
	}
	return msg
}

// Unwrap returns nil as UnresolvedReferenceError has no underlying cause.
func (e *UnresolvedReferenceError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *UnresolvedReferenceError) Is(target error) bool {
	return target == ErrUnresolvedReference
}

// ConfigError represents an invalid configuration or input.
// This includes invalid options, missing required inputs, and conflicting settings.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
