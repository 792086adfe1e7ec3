package infrastructure

import (
	"fmt"

	"helix/events"
)

// SubjectPrefix starts every subject this service publishes to
const SubjectPrefix = "league"

var eventSubjects = map[events.EventType]string{
	events.EventTypeGuildConfigCreated: SubjectPrefix + ".config.created",
	events.EventTypeGuildConfigUpdated: SubjectPrefix + ".config.updated",
	events.EventTypeTeamAdded:          SubjectPrefix + ".teams.added",
	events.EventTypeTeamRemoved:        SubjectPrefix + ".teams.removed",
	events.EventTypeRingRoleAdded:      SubjectPrefix + ".ringroles.added",
	events.EventTypeRingRoleRemoved:    SubjectPrefix + ".ringroles.removed",
}

// EventSubjectMapper handles mapping between domain events and NATS subjects
type EventSubjectMapper struct{}

// NewEventSubjectMapper creates a new event subject mapper
func NewEventSubjectMapper() *EventSubjectMapper {
	return &EventSubjectMapper{}
}

// MapEventToSubject converts an event type to its NATS subject
func (m *EventSubjectMapper) MapEventToSubject(eventType events.EventType) string {
	if subject, ok := eventSubjects[eventType]; ok {
		return subject
	}
	return fmt.Sprintf("%s.unknown.%s", SubjectPrefix, eventType)
}

// MapSubjectToEventType converts a NATS subject back to an event type
func (m *EventSubjectMapper) MapSubjectToEventType(subject string) (events.EventType, bool) {
	for eventType, s := range eventSubjects {
		if s == subject {
			return eventType, true
		}
	}
	return "", false
}

// GetAllSubjects returns all subjects this service publishes to, in event type order
func (m *EventSubjectMapper) GetAllSubjects() []string {
	types := events.AllEventTypes()
	subjects := make([]string, 0, len(types))
	for _, eventType := range types {
		subjects = append(subjects, m.MapEventToSubject(eventType))
	}
	return subjects
}
