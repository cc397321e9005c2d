package services

import "net/http"

type ErrorKind int

const (
	ErrNotFound ErrorKind = iota
	ErrForbidden
	ErrInvalidState
	ErrInvalidArgument
)

// ClaimError carries the rejection kind so the controller can pick the right
// HTTP status without string matching.
type ClaimError struct {
	Kind    ErrorKind
	Message string
	// Available holds the listing's current quantity when an over-claim is
	// rejected, so the client can show what is still claimable.
	Available int
}

func (e *ClaimError) Error() string {
	return e.Message
}

func (e *ClaimError) Status() int {
	switch e.Kind {
	case ErrNotFound:
		return http.StatusNotFound
	case ErrForbidden:
		return http.StatusForbidden
	default:
		return http.StatusBadRequest
	}
}

func notFound(msg string) *ClaimError {
	return &ClaimError{Kind: ErrNotFound, Message: msg}
}

func forbidden(msg string) *ClaimError {
	return &ClaimError{Kind: ErrForbidden, Message: msg}
}

func invalidState(msg string) *ClaimError {
	return &ClaimError{Kind: ErrInvalidState, Message: msg}
}

func invalidArgument(msg string) *ClaimError {
	return &ClaimError{Kind: ErrInvalidArgument, Message: msg}
}
