package types

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a domain failure independently of transport codes.
// The HTTP boundary maps kinds to status codes.
type ErrorKind string

const (
	KindNotFound            ErrorKind = "not_found"
	KindValidation          ErrorKind = "validation"
	KindAlreadyExists       ErrorKind = "already_exists"
	KindInvalidRelationship ErrorKind = "invalid_relationship"
	KindAuthentication      ErrorKind = "authentication"
)

// DomainError is the error type raised by the service layer.
type DomainError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
	Details []string  `json:"details,omitempty"`
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NotFound reports a missing user/work/rating/shelf.
func NotFound(format string, args ...interface{}) *DomainError {
	return &DomainError{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Validation reports malformed or out-of-range input. Each violated rule
// goes in the detail list.
func Validation(message string, details ...string) *DomainError {
	return &DomainError{Kind: KindValidation, Message: message, Details: details}
}

// AlreadyExists reports a duplicate username, email or shelf name.
func AlreadyExists(format string, args ...interface{}) *DomainError {
	return &DomainError{Kind: KindAlreadyExists, Message: fmt.Sprintf(format, args...)}
}

// InvalidRelationship reports a bad follow-graph mutation (self-follow,
// duplicate follow, unfollow of a missing edge).
func InvalidRelationship(format string, args ...interface{}) *DomainError {
	return &DomainError{Kind: KindInvalidRelationship, Message: fmt.Sprintf(format, args...)}
}

// AuthenticationFailed reports an unknown identifier or wrong credential.
func AuthenticationFailed(message string) *DomainError {
	return &DomainError{Kind: KindAuthentication, Message: message}
}

// KindOf extracts the ErrorKind from err, or "" if err is not a DomainError.
func KindOf(err error) ErrorKind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}
