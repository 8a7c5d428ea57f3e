package webhookpubsub

import "errors"

var (
	// ErrUnknownTopic ...
	ErrUnknownTopic = errors.New("unknown topic")
	// ErrInvalidEndpoint ...
	ErrInvalidEndpoint = errors.New("webhook endpoint must be a valid URI")
)
