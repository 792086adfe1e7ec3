package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"helix/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockMessagePublisher struct {
	mock.Mock
}

func (m *mockMessagePublisher) Publish(ctx context.Context, subject string, data []byte) error {
	args := m.Called(ctx, subject, data)
	return args.Error(0)
}

func TestEventSubjectMapper(t *testing.T) {
	mapper := NewEventSubjectMapper()

	tests := []struct {
		eventType events.EventType
		subject   string
	}{
		{events.EventTypeGuildConfigCreated, "league.config.created"},
		{events.EventTypeGuildConfigUpdated, "league.config.updated"},
		{events.EventTypeTeamAdded, "league.teams.added"},
		{events.EventTypeTeamRemoved, "league.teams.removed"},
		{events.EventTypeRingRoleAdded, "league.ringroles.added"},
		{events.EventTypeRingRoleRemoved, "league.ringroles.removed"},
	}

	for _, tt := range tests {
		t.Run(string(tt.eventType), func(t *testing.T) {
			assert.Equal(t, tt.subject, mapper.MapEventToSubject(tt.eventType))

			eventType, ok := mapper.MapSubjectToEventType(tt.subject)
			assert.True(t, ok)
			assert.Equal(t, tt.eventType, eventType)
		})
	}

	assert.Equal(t, "league.unknown.mystery", mapper.MapEventToSubject("mystery"))
	_, ok := mapper.MapSubjectToEventType("league.unknown.mystery")
	assert.False(t, ok)
	assert.Len(t, mapper.GetAllSubjects(), len(events.AllEventTypes()))
}

func TestEventForwarder_Forward(t *testing.T) {
	ctx := context.Background()
	publisher := new(mockMessagePublisher)
	forwarder := NewEventForwarder(publisher, NewEventSubjectMapper())
	fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	forwarder.now = func() time.Time { return fixed }

	var sent []byte
	publisher.On("Publish", ctx, "league.teams.added", mock.Anything).
		Run(func(args mock.Arguments) { sent = args.Get(2).([]byte) }).
		Return(nil).Once()

	err := forwarder.Forward(ctx, events.TeamAddedEvent{GuildID: "G1", RoleID: "R1", Emoji: "🐺"})
	require.NoError(t, err)
	publisher.AssertExpectations(t)

	var envelope EventEnvelope
	require.NoError(t, json.Unmarshal(sent, &envelope))
	assert.Equal(t, "team_added", envelope.EventType)
	assert.Equal(t, SourceService, envelope.Source)
	assert.Equal(t, "G1", envelope.GuildID)
	assert.True(t, fixed.Equal(envelope.Timestamp))
	_, err = uuid.Parse(envelope.EventID)
	assert.NoError(t, err)
	assert.JSONEq(t, `{"guildId":"G1","roleId":"R1","emoji":"🐺"}`, string(envelope.Payload))
}

func TestEventForwarder_PublishError(t *testing.T) {
	ctx := context.Background()
	publisher := new(mockMessagePublisher)
	forwarder := NewEventForwarder(publisher, NewEventSubjectMapper())

	publisher.On("Publish", ctx, "league.ringroles.removed", mock.Anything).Return(errors.New("no responders"))

	err := forwarder.Forward(ctx, events.RingRoleRemovedEvent{GuildID: "G1", RoleID: "S1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no responders")
}

func TestEventForwarder_RegisterForwardsBusEvents(t *testing.T) {
	bus := events.NewBus()
	publisher := new(mockMessagePublisher)
	forwarder := NewEventForwarder(publisher, NewEventSubjectMapper())
	forwarder.Register(bus)

	done := make(chan struct{})
	publisher.On("Publish", mock.Anything, "league.config.created", mock.Anything).
		Run(func(mock.Arguments) { close(done) }).
		Return(nil).Once()

	bus.Emit(context.Background(), events.GuildConfigCreatedEvent{GuildID: "G1"})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("event was not forwarded")
	}
}
