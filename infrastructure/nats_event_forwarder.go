package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"helix/events"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// SourceService identifies this process in event envelopes
const SourceService = "helix"

// MessagePublisher sends raw messages to a subject
type MessagePublisher interface {
	Publish(ctx context.Context, subject string, data []byte) error
}

// EventEnvelope wraps every forwarded event
type EventEnvelope struct {
	EventID   string          `json:"eventId"`
	EventType string          `json:"eventType"`
	Timestamp time.Time       `json:"timestamp"`
	Source    string          `json:"source"`
	GuildID   string          `json:"guildId"`
	Payload   json.RawMessage `json:"payload"`
}

// EventForwarder republishes committed bus events to NATS
type EventForwarder struct {
	publisher     MessagePublisher
	subjectMapper *EventSubjectMapper
	now           func() time.Time
}

// NewEventForwarder creates a forwarder that publishes through publisher
func NewEventForwarder(publisher MessagePublisher, subjectMapper *EventSubjectMapper) *EventForwarder {
	return &EventForwarder{
		publisher:     publisher,
		subjectMapper: subjectMapper,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// Register subscribes the forwarder to every event on bus
func (f *EventForwarder) Register(bus *events.Bus) {
	bus.SubscribeAll(func(ctx context.Context, event events.Event) {
		if err := f.Forward(ctx, event); err != nil {
			log.WithFields(log.Fields{
				"eventType": event.Type(),
				"guild_id":  event.Guild(),
				"error":     err,
			}).Error("Failed to forward event to NATS")
		}
	})
}

// Forward wraps event in an envelope and publishes it to the event's subject
func (f *EventForwarder) Forward(ctx context.Context, event events.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	envelope := EventEnvelope{
		EventID:   uuid.New().String(),
		EventType: string(event.Type()),
		Timestamp: f.now(),
		Source:    SourceService,
		GuildID:   event.Guild(),
		Payload:   payload,
	}

	data, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to marshal event envelope: %w", err)
	}

	subject := f.subjectMapper.MapEventToSubject(event.Type())
	if err := f.publisher.Publish(ctx, subject, data); err != nil {
		return fmt.Errorf("failed to publish %s: %w", event.Type(), err)
	}

	log.WithFields(log.Fields{
		"eventType": event.Type(),
		"subject":   subject,
		"eventId":   envelope.EventID,
	}).Debug("Forwarded event to NATS")
	return nil
}
