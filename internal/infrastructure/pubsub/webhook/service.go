package webhookpubsub

import (
	"bytes"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/sony/gobreaker"
	"golang.org/x/sync/errgroup"

	"github.com/tally-network/tally-daemon/internal/core/application"
	"github.com/tally-network/tally-daemon/internal/core/ports"
	"github.com/tally-network/tally-daemon/pkg/circuitbreaker"
)

// AnyTopic subscribes a webhook to every published topic.
const AnyTopic = "*"

var knownTopics = map[string]struct{}{
	application.TopicTransactionApplied: {},
	application.TopicCoinbaseApplied:    {},
	AnyTopic:                            {},
}

func isKnownTopic(topic string) bool {
	_, ok := knownTopics[topic]
	return ok
}

type webhookService struct {
	httpClient *http.Client
	cb         *gobreaker.CircuitBreaker

	lock  *sync.RWMutex
	hooks map[string]map[string]*Webhook
}

// NewWebhookPubSubService returns a pubsub service notifying ledger events
// to subscribed webhook endpoints. Requests go through a circuit breaker
// so a dead endpoint does not slow every publication down.
func NewWebhookPubSubService() ports.SecurePubSub {
	return &webhookService{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		cb:         circuitbreaker.NewCircuitBreaker("webhook"),
		lock:       &sync.RWMutex{},
		hooks:      make(map[string]map[string]*Webhook),
	}
}

func (ws *webhookService) Subscribe(topic, endpoint, secret string) (string, error) {
	hook, err := NewWebhook(topic, endpoint, secret)
	if err != nil {
		return "", err
	}

	ws.lock.Lock()
	defer ws.lock.Unlock()

	if ws.hooks[topic] == nil {
		ws.hooks[topic] = make(map[string]*Webhook)
	}
	ws.hooks[topic][hook.ID] = hook
	return hook.ID, nil
}

func (ws *webhookService) Unsubscribe(topic, id string) error {
	ws.lock.Lock()
	defer ws.lock.Unlock()

	hooks, ok := ws.hooks[topic]
	if !ok {
		return ErrUnknownTopic
	}
	delete(hooks, id)
	return nil
}

func (ws *webhookService) ListSubscriptionsForTopic(topic string) []ports.Subscription {
	ws.lock.RLock()
	defer ws.lock.RUnlock()

	subs := make([]ports.Subscription, 0, len(ws.hooks[topic]))
	for _, hook := range ws.hooks[topic] {
		subs = append(subs, subscription{hook})
	}
	return subs
}

// Publish makes a POST request to every webhook endpoint registered for
// the topic, plus those subscribed to every topic. Endpoints are invoked
// concurrently, the first failure is reported once all attempts finished.
func (ws *webhookService) Publish(topic string, message string) error {
	if !isKnownTopic(topic) {
		return ErrUnknownTopic
	}

	ws.lock.RLock()
	hooks := make([]*Webhook, 0)
	for _, hook := range ws.hooks[topic] {
		hooks = append(hooks, hook)
	}
	if topic != AnyTopic {
		for _, hook := range ws.hooks[AnyTopic] {
			hooks = append(hooks, hook)
		}
	}
	ws.lock.RUnlock()

	eg := &errgroup.Group{}
	for i := range hooks {
		hook := hooks[i]
		eg.Go(func() error { return ws.doRequest(hook, message) })
	}
	return eg.Wait()
}

func (ws *webhookService) doRequest(hook *Webhook, payload string) error {
	_, err := ws.cb.Execute(func() (interface{}, error) {
		req, err := http.NewRequest(
			http.MethodPost, hook.Endpoint, bytes.NewBufferString(payload),
		)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		if hook.IsSecured() {
			token := jwt.New(jwt.SigningMethodHS256)
			tokenString, _ := token.SignedString([]byte(hook.Secret))
			req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", tokenString))
		}

		resp, err := ws.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("endpoint %s: status %d", hook.Endpoint, resp.StatusCode)
		}
		return nil, nil
	})
	return err
}
