package service

import "errors"

var (
	// ErrUnauthenticated means no caller identity was supplied.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrInternal hides store failures from callers; the cause is logged server-side.
	ErrInternal = errors.New("internal error")

	ErrIDRequired    = errors.New("id is required")
	ErrNotFound      = errors.New("document not found")
	ErrReaderNil     = errors.New("reader is nil")
	ErrInvalidStatus = errors.New("verification status is required")
)
