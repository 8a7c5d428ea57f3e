package ports

// Subscription holds the info of a client subscribed for a topic.
type Subscription interface {
	Topic() string
	ID() string
	NotifyAt() string
}

// SecurePubSub defines the methods of the pubsub service the application
// notifies ledger events through. Payload authenticity is the service's
// concern, subscribers typically get messages signed with their secret.
type SecurePubSub interface {
	// Subscribe adds a new subscription for the requested topic and
	// returns its id.
	Subscribe(topic, endpoint, secret string) (string, error)
	// Unsubscribe removes the subscription with the given id for a topic.
	Unsubscribe(topic, id string) error
	// ListSubscriptionsForTopic returns all subscriptions for a topic.
	ListSubscriptionsForTopic(topic string) []Subscription
	// Publish delivers the message to all clients subscribed for the
	// topic.
	Publish(topic string, message string) error
}
