package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeGuildTeams(t *testing.T) {
	teams, err := DecodeGuildTeams("g1", []byte(`{"teams":[{"roleId":"R1","emoji":"🐺","name":"Wolves"},{"roleId":"R2","emoji":"🦅"}]}`))
	require.NoError(t, err)
	assert.Equal(t, []Team{
		{RoleID: "R1", Emoji: "🐺", Name: "Wolves"},
		{RoleID: "R2", Emoji: "🦅"},
	}, teams.Teams)

	empty, err := DecodeGuildTeams("g1", []byte(`{}`))
	require.NoError(t, err)
	assert.NotNil(t, empty.Teams)
	assert.Empty(t, empty.Teams)
}

func TestDecodeGuildTeams_RejectsInvalidEntries(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{"legacy role field", `{"teams":[{"role":"R9","emoji":"x"}]}`, ErrInvalidTeam},
		{"missing emoji", `{"teams":[{"roleId":"R1"}]}`, ErrInvalidTeam},
		{"repeated role", `{"teams":[{"roleId":"R1","emoji":"a"},{"roleId":"R1","emoji":"b"}]}`, ErrDuplicateTeam},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			teams, err := DecodeGuildTeams("g1", []byte(tt.data))
			assert.Nil(t, teams)
			assert.ErrorIs(t, err, ErrCorruptDocument)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDecodeGuildTeams_Malformed(t *testing.T) {
	_, err := DecodeGuildTeams("g1", []byte(`{"teams":`))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrCorruptDocument)
}
