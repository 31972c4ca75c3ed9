package api

import (
	"errors"
	"fmt"
)

// ErrorKind represents the category of a failed client operation.
type ErrorKind string

const (
	ErrorKindFetch           ErrorKind = "fetch"
	ErrorKindEdit            ErrorKind = "edit"
	ErrorKindUpdate          ErrorKind = "update"
	ErrorKindCreate          ErrorKind = "create"
	ErrorKindSet             ErrorKind = "set"
	ErrorKindDelete          ErrorKind = "delete"
	ErrorKindInvalidArgument ErrorKind = "invalid_argument"
)

// CallError represents a failed operation against the platform API. Kind
// names the operation category, Resource the entity being acted on, and
// ServerMessage carries a server-supplied error string when the response
// included one.
//
// Validation failures use ErrorKindInvalidArgument and are produced before
// any request is issued; they never carry a network cause. All other kinds
// cover both transport failures and application-level rejections (non-200
// status or a failed success indicator) without distinction.
type CallError struct {
	Kind          ErrorKind `json:"kind"`
	Resource      string    `json:"resource,omitempty"`
	ServerMessage string    `json:"message,omitempty"`
}

// Error implements the error interface.
func (e *CallError) Error() string {
	switch {
	case e.Kind == ErrorKindInvalidArgument:
		return fmt.Sprintf("invalid argument: %s", e.ServerMessage)
	case e.ServerMessage != "":
		return fmt.Sprintf("cannot %s %s: %s", e.Kind, e.Resource, e.ServerMessage)
	default:
		return fmt.Sprintf("cannot %s %s", e.Kind, e.Resource)
	}
}

// KindOf returns the kind of err when it is, or wraps, a *CallError, and ""
// otherwise.
func KindOf(err error) ErrorKind {
	var ce *CallError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return ""
}

// NewFetchError creates a CallError for a failed fetch of the named resource.
func NewFetchError(resource string) *CallError {
	return &CallError{Kind: ErrorKindFetch, Resource: resource}
}

// NewEditError creates a CallError for a failed edit. serverMessage may be
// empty when the server supplied no error text.
func NewEditError(resource, serverMessage string) *CallError {
	return &CallError{Kind: ErrorKindEdit, Resource: resource, ServerMessage: serverMessage}
}

// NewUpdateError creates a CallError for a failed settings update.
func NewUpdateError(resource string) *CallError {
	return &CallError{Kind: ErrorKindUpdate, Resource: resource}
}

// NewCreateError creates a CallError for a failed creation. serverMessage may
// be empty when the server supplied no error text.
func NewCreateError(resource, serverMessage string) *CallError {
	return &CallError{Kind: ErrorKindCreate, Resource: resource, ServerMessage: serverMessage}
}

// NewSetError creates a CallError for a failed set/unset operation.
func NewSetError(resource string) *CallError {
	return &CallError{Kind: ErrorKindSet, Resource: resource}
}

// NewDeleteError creates a CallError for a failed deletion. serverMessage may
// be empty when the server supplied no error text.
func NewDeleteError(resource, serverMessage string) *CallError {
	return &CallError{Kind: ErrorKindDelete, Resource: resource, ServerMessage: serverMessage}
}

// NewInvalidArgumentError creates a CallError for an argument rejected before
// any request was issued.
func NewInvalidArgumentError(message string) *CallError {
	return &CallError{Kind: ErrorKindInvalidArgument, ServerMessage: message}
}

// AsSetError maps an error from an inner operation into a set CallError for
// the named resource. Validation failures pass through unchanged so callers
// can still tell a rejected argument from a failed call; every other error
// becomes a set error. A nil err maps to nil.
func AsSetError(resource string, err error) *CallError {
	if err == nil {
		return nil
	}
	if KindOf(err) == ErrorKindInvalidArgument {
		var ce *CallError
		errors.As(err, &ce)
		return ce
	}
	return NewSetError(resource)
}
