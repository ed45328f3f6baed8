package domain

import "errors"

var (
	ErrNotFound                  = errors.New("resource not found")
	ErrUnauthorized              = errors.New("unauthorized")
	ErrForbidden                 = errors.New("forbidden")
	ErrInvalidToken              = errors.New("invalid token")
	ErrItemNotFound              = errors.New("item not found")
	ErrItemNotRendered           = errors.New("item has not been rendered yet")
	ErrEmptyFragment             = errors.New("fragment has no content")
	ErrFragmentTooLarge          = errors.New("fragment exceeds maximum allowed size")
	ErrUnknownResponseIdentifier = errors.New("answer references an unknown response identifier")
	ErrEmptyResponse             = errors.New("response contains no answers")
	ErrInvalidExportFormat       = errors.New("unsupported export format")
	ErrSnapshotFailed            = errors.New("snapshot upload to storage failed")
)
