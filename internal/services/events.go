package services

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Publisher sends a message with a routing key. *rabbitmq.Client satisfies it.
type Publisher interface {
	Publish(routingKey string, body []byte) error
}

// Record event actions.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// RecordEvent describes a change to a stored record.
type RecordEvent struct {
	EventID  string    `json:"event_id"`
	Entity   string    `json:"entity"`
	Action   string    `json:"action"`
	RecordID uint      `json:"record_id"`
	At       time.Time `json:"at"`
}

// RoutingKey is "<entity>.<action>", e.g. "product.created".
func (e RecordEvent) RoutingKey() string {
	return e.Entity + "." + e.Action
}

// Notifier publishes record events. A nil Notifier, or one without a
// publisher, drops events.
type Notifier struct {
	pub Publisher
}

// NewNotifier creates a Notifier that publishes through pub.
func NewNotifier(pub Publisher) *Notifier {
	return &Notifier{pub: pub}
}

// Notify publishes an event. Failures are logged and never returned, so a
// broker outage cannot fail a write that already happened.
func (n *Notifier) Notify(entity, action string, id uint) {
	if n == nil || n.pub == nil {
		return
	}
	ev := RecordEvent{
		EventID:  uuid.New().String(),
		Entity:   entity,
		Action:   action,
		RecordID: id,
		At:       time.Now().UTC(),
	}
	body, err := json.Marshal(ev)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal record event")
		return
	}
	if err := n.pub.Publish(ev.RoutingKey(), body); err != nil {
		log.Warn().Err(err).Str("routing_key", ev.RoutingKey()).Uint("record_id", id).Msg("Failed to publish record event")
		return
	}
	log.Debug().Str("routing_key", ev.RoutingKey()).Uint("record_id", id).Msg("Published record event")
}
