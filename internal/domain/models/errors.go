package models

import "errors"

// Error taxonomy shared by all services. Handlers map these to transport
// statuses; services never wrap one taxonomy member in another.
var (
	ErrUnauthorized           = errors.New("actor is not allowed to perform this operation")
	ErrValidation             = errors.New("validation failed")
	ErrNotFound               = errors.New("record not found")
	ErrInvalidState           = errors.New("posting is not in a state that allows this transition")
	ErrNoResumeOnFile         = errors.New("no active resume artifact for session")
	ErrInvalidPolicy          = errors.New("unknown matching policy")
	ErrUnsupportedMediaType   = errors.New("unsupported resume file type")
	ErrPayloadTooLarge        = errors.New("resume file exceeds size limit")
	ErrUpstreamUnavailable    = errors.New("scoring engine unavailable")
	ErrNoReconcilableMatches  = errors.New("no engine results map to catalog postings")
)
