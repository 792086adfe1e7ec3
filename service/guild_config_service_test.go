package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"helix/events"
	"helix/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGuildConfigService_EnsureGuildConfig_Existing(t *testing.T) {
	ctx := context.Background()

	mockUoW := NewMockUnitOfWork()
	mockFactory := new(MockUnitOfWorkFactory)
	service := NewGuildConfigService(mockFactory)

	stored := json.RawMessage(`{"rosterCap":12,"channels":{"logs":"555"},"roles":{"commissioner":"777"}}`)

	mockFactory.On("CreateForGuild", "guild-1").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockUoW.GuildConfigs.On("Get", ctx, "guild-1").Return(stored, true, nil)

	cfg, err := service.EnsureGuildConfig(ctx, "guild-1")

	require.NoError(t, err)
	assert.Equal(t, "guild-1", cfg.GuildID)
	require.NotNil(t, cfg.RosterCap)
	assert.Equal(t, 12, *cfg.RosterCap)

	id, ok := cfg.Role(models.RoleCommissioner)
	assert.True(t, ok)
	assert.Equal(t, "777", id)

	// keys missing from storage are filled in as unset
	_, ok = cfg.Role(models.RoleReferee)
	assert.False(t, ok)
	assert.Contains(t, cfg.Roles, models.RoleReferee)

	mockFactory.AssertExpectations(t)
	mockUoW.AssertAllExpectations(t)
	mockUoW.GuildConfigs.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything)
	mockUoW.Events.AssertNotCalled(t, "Publish", mock.Anything)
}

func TestGuildConfigService_EnsureGuildConfig_New(t *testing.T) {
	ctx := context.Background()

	mockUoW := NewMockUnitOfWork()
	mockFactory := new(MockUnitOfWorkFactory)
	service := NewGuildConfigService(mockFactory)

	mockFactory.On("CreateForGuild", "guild-1").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockUoW.GuildConfigs.On("Get", ctx, "guild-1").Return(nil, false, nil)
	mockUoW.GuildConfigs.On("Put", ctx, "guild-1", mock.MatchedBy(func(value json.RawMessage) bool {
		var stored struct {
			RosterCap *int               `json:"rosterCap"`
			Channels  map[string]*string `json:"channels"`
			Roles     map[string]*string `json:"roles"`
		}
		if err := json.Unmarshal(value, &stored); err != nil {
			return false
		}
		return stored.RosterCap == nil &&
			len(stored.Roles) == len(models.RoleKeys()) &&
			len(stored.Channels) == len(models.ChannelKeys())
	})).Return(nil).Once()
	mockUoW.Events.On("Publish", events.GuildConfigCreatedEvent{GuildID: "guild-1"}).Once()

	cfg, err := service.EnsureGuildConfig(ctx, "guild-1")

	require.NoError(t, err)
	assert.Nil(t, cfg.RosterCap)
	for _, key := range models.RoleKeys() {
		assert.Contains(t, cfg.Roles, key)
		assert.Nil(t, cfg.Roles[key])
	}
	for _, key := range models.ChannelKeys() {
		assert.Contains(t, cfg.Channels, key)
		assert.Nil(t, cfg.Channels[key])
	}

	mockFactory.AssertExpectations(t)
	mockUoW.AssertAllExpectations(t)
}

func TestGuildConfigService_EnsureGuildConfig_InvalidGuildID(t *testing.T) {
	mockFactory := new(MockUnitOfWorkFactory)
	service := NewGuildConfigService(mockFactory)

	_, err := service.EnsureGuildConfig(context.Background(), "  ")

	assert.ErrorIs(t, err, models.ErrInvalidGuildID)
	mockFactory.AssertNotCalled(t, "CreateForGuild", mock.Anything)
}

func TestGuildConfigService_EnsureGuildConfig_BeginFails(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mockUoW := NewMockUnitOfWork()
	mockFactory := new(MockUnitOfWorkFactory)
	service := NewGuildConfigService(mockFactory)

	mockFactory.On("CreateForGuild", "guild-1").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(context.Canceled)

	_, err := service.EnsureGuildConfig(ctx, "guild-1")

	assert.ErrorIs(t, err, context.Canceled)
	mockUoW.AssertNotCalled(t, "Commit")
	mockUoW.AssertNotCalled(t, "Rollback")
}

func TestGuildConfigService_UpdateGuildConfig_MergesAndPublishes(t *testing.T) {
	ctx := context.Background()

	mockUoW := NewMockUnitOfWork()
	mockFactory := new(MockUnitOfWorkFactory)
	service := NewGuildConfigService(mockFactory)

	stored := json.RawMessage(`{"rosterCap":null,"channels":{"logs":"555"},"roles":{"referee":"111","commissioner":"222"}}`)

	mockFactory.On("CreateForGuild", "guild-1").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockUoW.GuildConfigs.On("Get", ctx, "guild-1").Return(stored, true, nil)
	mockUoW.GuildConfigs.On("Put", ctx, "guild-1", mock.AnythingOfType("json.RawMessage")).Return(nil).Once()
	mockUoW.Events.On("Publish", events.GuildConfigUpdatedEvent{
		GuildID:  "guild-1",
		RoleKeys: []string{"commissioner", "head coach"},
	}).Once()

	cfg, err := service.UpdateGuildConfig(ctx, "guild-1", models.GuildConfigUpdate{
		Roles: map[models.RoleKey]*string{
			models.RoleHeadCoach:    models.StringPtr("333"),
			models.RoleCommissioner: nil,
		},
	})

	require.NoError(t, err)

	id, ok := cfg.Role(models.RoleHeadCoach)
	assert.True(t, ok)
	assert.Equal(t, "333", id)

	id, ok = cfg.Role(models.RoleReferee)
	assert.True(t, ok, "untouched keys survive a partial update")
	assert.Equal(t, "111", id)

	_, ok = cfg.Role(models.RoleCommissioner)
	assert.False(t, ok, "a key mapped to nil is cleared")

	channel, ok := cfg.Channel(models.ChannelLogs)
	assert.True(t, ok)
	assert.Equal(t, "555", channel)

	mockFactory.AssertExpectations(t)
	mockUoW.AssertAllExpectations(t)
}

func TestGuildConfigService_UpdateGuildConfig_InvalidRosterCap(t *testing.T) {
	mockFactory := new(MockUnitOfWorkFactory)
	service := NewGuildConfigService(mockFactory)

	for _, rosterCap := range []int{0, -3} {
		_, err := service.UpdateGuildConfig(context.Background(), "guild-1", models.GuildConfigUpdate{
			RosterCap: models.IntPtr(rosterCap),
		})
		assert.ErrorIs(t, err, models.ErrInvalidRosterCap)
	}

	mockFactory.AssertNotCalled(t, "CreateForGuild", mock.Anything)
}

func TestGuildConfigService_UpdateGuildConfig_PutFails(t *testing.T) {
	ctx := context.Background()

	mockUoW := NewMockUnitOfWork()
	mockFactory := new(MockUnitOfWorkFactory)
	service := NewGuildConfigService(mockFactory)
	diskErr := errors.New("disk full")

	mockFactory.On("CreateForGuild", "guild-1").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockUoW.GuildConfigs.On("Get", ctx, "guild-1").Return(nil, false, nil)
	mockUoW.GuildConfigs.On("Put", ctx, "guild-1", mock.Anything).Return(diskErr)

	_, err := service.UpdateGuildConfig(ctx, "guild-1", models.GuildConfigUpdate{RosterCap: models.IntPtr(10)})

	require.Error(t, err)
	assert.ErrorIs(t, err, diskErr)
	mockUoW.AssertNotCalled(t, "Commit")
	mockUoW.Events.AssertNotCalled(t, "Publish", mock.Anything)
}

func TestGuildConfigService_UpdateGuildConfig_CorruptEntry(t *testing.T) {
	ctx := context.Background()

	mockUoW := NewMockUnitOfWork()
	mockFactory := new(MockUnitOfWorkFactory)
	service := NewGuildConfigService(mockFactory)

	mockFactory.On("CreateForGuild", "guild-1").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockUoW.GuildConfigs.On("Get", ctx, "guild-1").Return(json.RawMessage(`{"roles":`), true, nil)

	_, err := service.UpdateGuildConfig(ctx, "guild-1", models.GuildConfigUpdate{RosterCap: models.IntPtr(10)})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "guild-1")
	mockUoW.GuildConfigs.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything)
}

func TestGuildConfigService_SaveConfig_UsesExclusiveUnit(t *testing.T) {
	ctx := context.Background()

	mockUoW := NewMockUnitOfWork()
	mockFactory := new(MockUnitOfWorkFactory)
	service := NewGuildConfigService(mockFactory)

	mockFactory.On("CreateExclusive").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockUoW.GuildConfigs.On("Save", ctx, mock.MatchedBy(func(doc models.Document) bool {
		_, hasA := doc["a"]
		_, hasNil := doc["nil"]
		return len(doc) == 1 && hasA && !hasNil
	})).Return(nil).Once()

	err := service.SaveConfig(ctx, models.ConfigDocument{
		"a":   models.NewGuildConfig("a"),
		"nil": nil,
	})

	require.NoError(t, err)
	mockFactory.AssertExpectations(t)
	mockUoW.AssertAllExpectations(t)
}
