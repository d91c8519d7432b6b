package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeamID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    TeamID
		wantErr bool
	}{
		{name: "string", in: `"5"`, want: "5"},
		{name: "number", in: `9`, want: "9"},
		{name: "uuid-like string", in: `"a1b2"`, want: "a1b2"},
		{name: "null", in: `null`, want: ""},
		{name: "bool is rejected", in: `true`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id TeamID
			err := json.Unmarshal([]byte(tt.in), &id)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestTeamID_MarshalsAsString(t *testing.T) {
	b, err := json.Marshal(NewAssignments("5", "9"))
	require.NoError(t, err)
	assert.JSONEq(t, `[{"position":1,"id":"5"},{"position":2,"id":"9"}]`, string(b))
}

func TestPosition_UnmarshalJSON(t *testing.T) {
	var slots []MatchTeamSlot
	err := json.Unmarshal([]byte(`[
		{"position": 1, "team_id": 3, "team_name": "Blue"},
		{"position": "2", "team_id": "4", "team_name": "Orange"}
	]`), &slots)
	require.NoError(t, err)

	require.Len(t, slots, 2)
	assert.Equal(t, PositionHome, slots[0].Position)
	assert.Equal(t, TeamID("3"), slots[0].TeamID)
	assert.Equal(t, PositionAway, slots[1].Position)
	assert.Equal(t, TeamID("4"), slots[1].TeamID)

	var p Position
	assert.Error(t, json.Unmarshal([]byte(`"home"`), &p))
}

func TestPosition_UnmarshalJSON_Loose(t *testing.T) {
	tests := []struct {
		in      string
		want    Position
		wantErr bool
	}{
		{in: `1`, want: PositionHome},
		{in: `1.0`, want: PositionHome},
		{in: `"2.0"`, want: PositionAway},
		{in: `"2"`, want: PositionAway},
		{in: `null`, want: 0},
		{in: `1.5`, wantErr: true},
		{in: `"1e400"`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var p Position
			err := json.Unmarshal([]byte(tt.in), &p)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, p)
		})
	}
}

func TestSlotAt(t *testing.T) {
	slots := []MatchTeamSlot{
		{Position: PositionAway, TeamID: "9", TeamName: "Away"},
	}

	s, ok := SlotAt(slots, PositionAway)
	assert.True(t, ok)
	assert.Equal(t, TeamID("9"), s.TeamID)

	_, ok = SlotAt(slots, PositionHome)
	assert.False(t, ok)

	_, ok = SlotAt(nil, PositionHome)
	assert.False(t, ok)
}

func TestValidateAssignments(t *testing.T) {
	tests := []struct {
		name    string
		in      []SlotAssignment
		wantErr bool
	}{
		{name: "both positions", in: NewAssignments("1", "2")},
		{name: "single position", in: []SlotAssignment{{Position: 2, ID: "7"}}},
		{name: "same team twice is allowed", in: NewAssignments("1", "1")},
		{name: "empty", in: nil, wantErr: true},
		{name: "position 3", in: []SlotAssignment{{Position: 3, ID: "1"}}, wantErr: true},
		{name: "position 0", in: []SlotAssignment{{Position: 0, ID: "1"}}, wantErr: true},
		{name: "duplicated", in: []SlotAssignment{{Position: 1, ID: "1"}, {Position: 1, ID: "2"}}, wantErr: true},
		{name: "missing id", in: []SlotAssignment{{Position: 1, ID: ""}}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAssignments(tt.in)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidSlots), "got %v", err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
