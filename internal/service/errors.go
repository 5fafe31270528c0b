// Package service contains the orchestration layer: for each entity kind it
// sequences validation, authorization, the external geocoding/upload calls
// and the final store write, failing closed at the first error.  The store
// write is always the last step, so a failure anywhere earlier leaves the
// database untouched.
package service

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError reports one or more problems with the submitted fields,
// including place text the geocoder could not resolve.  Handlers translate
// it into an HTTP 400 response carrying every message, not just the first.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Errors, ", ")
}

// ErrUnauthenticated is returned when no caller identity was resolved.
// Handlers translate it into an HTTP 401 response.
var ErrUnauthenticated = errors.New("unauthenticated")

// ErrForbidden is returned when the caller's identity does not match the
// record's owner.  Handlers translate it into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// Dependency names used in DependencyError.
const (
	DepGeocoder = "geocoder"
	DepStorage  = "storage"
	DepStore    = "store"
)

// DependencyError wraps a failure of one of the external collaborators
// (geocoder, object storage, record store).  Handlers translate it into an
// HTTP 500 response.  There are no retries: a single failed attempt aborts
// the whole operation and the caller decides whether to resubmit.
type DependencyError struct {
	Dependency string // which collaborator failed
	Err        error  // the underlying failure
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s failure: %v", e.Dependency, e.Err)
}

func (e *DependencyError) Unwrap() error { return e.Err }

// depErr is a small constructor to keep the call sites short.
func depErr(dependency string, err error) *DependencyError {
	return &DependencyError{Dependency: dependency, Err: err}
}
