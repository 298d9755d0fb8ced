package webhooks

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/PKwhiting/shopify-go/pkg/errors"
)

// Event is one decoded webhook delivery.
type Event struct {
	Topic      string
	Raw        []byte
	Data       map[string]interface{}
	ReceivedAt time.Time
	Verified   bool
}

// Handler processes one Event. Handlers run outside the registry lock,
// so they may register or unregister freely.
type Handler func(Event) error

// Registration identifies one registered handler so it can be removed
// later. Func values aren't comparable; the pointer is the identity.
type Registration struct {
	topic   string
	handler Handler
}

// Topic returns the topic this registration is attached to.
func (r *Registration) Topic() string { return r.topic }

// HandlerError records one handler that failed during a dispatch.
type HandlerError struct {
	Index int // position in the snapshot taken for this dispatch
	Err   error
}

// Result reports the outcome of one Dispatch call.
type Result struct {
	Topic           string
	Processed       bool
	Verified        bool
	HandlersInvoked int
	HandlerErrors   []HandlerError
	Err             error
}

// Dispatcher is a thread-safe topic → handlers registry. Any number of
// goroutines may register, unregister and dispatch concurrently.
type Dispatcher struct {
	mu       sync.Mutex
	handlers map[string][]*Registration
}

// NewDispatcher creates an empty Dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[string][]*Registration)}
}

// Register attaches a handler to a topic and returns its registration.
func (d *Dispatcher) Register(topic string, handler Handler) (*Registration, error) {
	if topic == "" {
		return nil, errors.WrapError(
			errors.ErrValidation, errors.ErrWebhook, "topic must not be empty",
		)
	}
	if handler == nil {
		return nil, errors.WrapError(
			errors.ErrValidation, errors.ErrWebhook, "handler must not be nil",
		)
	}

	reg := &Registration{topic: topic, handler: handler}
	d.mu.Lock()
	d.handlers[topic] = append(d.handlers[topic], reg)
	d.mu.Unlock()
	return reg, nil
}

// Unregister removes a registration. Topics left with no handlers are
// pruned immediately so the registry doesn't grow without bound.
func (d *Dispatcher) Unregister(reg *Registration) bool {
	if reg == nil {
		return false
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	regs := d.handlers[reg.topic]
	for i, candidate := range regs {
		if candidate == reg {
			regs = append(regs[:i], regs[i+1:]...)
			if len(regs) == 0 {
				delete(d.handlers, reg.topic)
			} else {
				d.handlers[reg.topic] = regs
			}
			return true
		}
	}
	return false
}

// Topics returns the topics that currently have handlers.
func (d *Dispatcher) Topics() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	topics := make([]string, 0, len(d.handlers))
	for topic := range d.handlers {
		topics = append(topics, topic)
	}
	return topics
}

// HandlerCount returns how many handlers a topic has.
func (d *Dispatcher) HandlerCount(topic string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.handlers[topic])
}

// Dispatch verifies, decodes and delivers one webhook.
//
// Verification happens before anything else; a bad signature invokes
// no handler and touches no state. The handler set is snapshotted
// under the lock and invoked outside it, so a slow or reentrant
// handler can't block other topics and can't corrupt the iteration. A
// handler that fails or panics is recorded and the rest still run.
func (d *Dispatcher) Dispatch(topic string, payload []byte, signature, secret string) Result {
	result := Result{Topic: topic}

	if !VerifySignature(payload, signature, secret) {
		result.Err = errors.WrapError(
			errors.ErrValidation, errors.ErrWebhook, "signature verification failed",
		)
		return result
	}
	result.Verified = true

	var data map[string]interface{}
	if err := json.Unmarshal(payload, &data); err != nil {
		result.Err = errors.WrapError(err, errors.ErrWebhook, "invalid JSON payload")
		return result
	}

	event := Event{
		Topic:      topic,
		Raw:        payload,
		Data:       data,
		ReceivedAt: time.Now().UTC(),
		Verified:   true,
	}

	// Point-in-time copy; handlers run without the lock.
	d.mu.Lock()
	snapshot := make([]*Registration, len(d.handlers[topic]))
	copy(snapshot, d.handlers[topic])
	d.mu.Unlock()

	for i, reg := range snapshot {
		if err := invoke(reg.handler, event); err != nil {
			result.HandlerErrors = append(result.HandlerErrors, HandlerError{Index: i, Err: err})
		}
		result.HandlersInvoked++
	}

	// No handlers for a known topic is a no-op success.
	result.Processed = true
	return result
}

// invoke runs one handler, converting a panic into an error so a
// misbehaving handler can't take down the dispatch loop.
func invoke(handler Handler, event Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return handler(event)
}
