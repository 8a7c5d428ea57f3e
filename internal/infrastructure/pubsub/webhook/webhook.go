package webhookpubsub

import (
	"encoding/json"
	"net/url"

	"github.com/google/uuid"
)

// Webhook is a single subscription: an endpoint notified with a POST
// request whenever its topic is published. A non-empty secret makes the
// notification carry a JWT signed with it, so the receiver can
// authenticate the sender.
type Webhook struct {
	ID       string `json:"id"`
	Topic    string `json:"topic"`
	Endpoint string `json:"endpoint"`
	Secret   string `json:"secret"`
}

// NewWebhook returns a webhook with a fresh random id.
func NewWebhook(topic, endpoint, secret string) (*Webhook, error) {
	if !isKnownTopic(topic) {
		return nil, ErrUnknownTopic
	}
	if _, err := url.ParseRequestURI(endpoint); err != nil {
		return nil, ErrInvalidEndpoint
	}
	return &Webhook{
		ID:       uuid.NewString(),
		Topic:    topic,
		Endpoint: endpoint,
		Secret:   secret,
	}, nil
}

// NewWebhookFromBytes ...
func NewWebhookFromBytes(buf []byte) (*Webhook, error) {
	hook := &Webhook{}
	if err := json.Unmarshal(buf, hook); err != nil {
		return nil, err
	}
	return hook, nil
}

// IsSecured returns whether notifications are signed.
func (h *Webhook) IsSecured() bool {
	return len(h.Secret) > 0
}

// Serialize ...
func (h *Webhook) Serialize() []byte {
	b, _ := json.Marshal(*h)
	return b
}

// subscription adapts a webhook to the ports.Subscription surface without
// leaking the secret.
type subscription struct {
	hook *Webhook
}

func (s subscription) Topic() string    { return s.hook.Topic }
func (s subscription) ID() string       { return s.hook.ID }
func (s subscription) NotifyAt() string { return s.hook.Endpoint }
