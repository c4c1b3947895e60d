package events

import "errors"

var (
	ErrEmptyKey   = errors.New("events: empty message key")
	ErrMarshal    = errors.New("events: failed to marshal event")
	ErrPublish    = errors.New("events: failed to publish event")
	ErrNoBrokers  = errors.New("events: at least one broker is required")
	ErrEmptyTopic = errors.New("events: topic cannot be empty")
)
