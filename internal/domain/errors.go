package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures at a collaborator boundary.
type ErrorKind int

const (
	// KindTransport covers network errors and unreadable responses.
	KindTransport ErrorKind = iota + 1
	// KindStatus is a non-success HTTP status other than rate limiting.
	KindStatus
	// KindRateLimit is an explicit throttling response.
	KindRateLimit
	// KindMalformed is a response that does not have the expected shape.
	KindMalformed
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindStatus:
		return "status"
	case KindRateLimit:
		return "rate_limit"
	case KindMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// CollaboratorError is returned by the search and completion adapters.
type CollaboratorError struct {
	Collaborator string
	Kind         ErrorKind
	StatusCode   int
	Err          error
}

func (e *CollaboratorError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s error (status %d): %v", e.Collaborator, e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s %s error: %v", e.Collaborator, e.Kind, e.Err)
}

func (e *CollaboratorError) Unwrap() error {
	return e.Err
}

// NewCollaboratorError wraps err with a collaborator name and kind.
func NewCollaboratorError(collaborator string, kind ErrorKind, err error) *CollaboratorError {
	return &CollaboratorError{Collaborator: collaborator, Kind: kind, Err: err}
}

// KindOf reports the kind of the first CollaboratorError in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var ce *CollaboratorError
	if errors.As(err, &ce) {
		return ce.Kind, true
	}
	return 0, false
}
