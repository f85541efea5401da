package entities

import "errors"

// Domain errors
var (
	ErrUnknownMeetingType = errors.New("unknown meeting type")
	ErrInvalidTransition  = errors.New("invalid decision transition")
	ErrContractNotFound   = errors.New("template contract not found")
)
