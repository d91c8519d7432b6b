package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/jose-valero/match-scoreboard/internal/domain"
)

type StoreSuite struct {
	suite.Suite
	ctx   context.Context
	store *Store
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

// cada test arranca con una base :memory: nueva y migrada
func (s *StoreSuite) SetupTest() {
	s.ctx = context.Background()

	db, err := Open(s.ctx, DriverSQLite, ":memory:")
	s.Require().NoError(err)
	s.T().Cleanup(func() { _ = db.Close() })
	s.Require().NoError(Migrate(db))

	s.store = NewStore(db)
	for _, t := range []domain.Team{
		{ID: "10", Name: "Orange"},
		{ID: "20", Name: "Blue"},
		{ID: "30", Name: "Green"},
	} {
		s.Require().NoError(s.store.UpsertTeam(s.ctx, t))
	}
}

func (s *StoreSuite) TestListTeams_OrderedByName() {
	teams, err := s.store.ListTeams(s.ctx)
	s.Require().NoError(err)

	s.Equal([]domain.Team{
		{ID: "20", Name: "Blue"},
		{ID: "30", Name: "Green"},
		{ID: "10", Name: "Orange"},
	}, teams)
}

func (s *StoreSuite) TestUpsertTeam_Renames() {
	s.Require().NoError(s.store.UpsertTeam(s.ctx, domain.Team{ID: "10", Name: "Amber"}))

	teams, err := s.store.ListTeams(s.ctx)
	s.Require().NoError(err)
	s.Len(teams, 3)
	s.Equal("Amber", teams[0].Name)
}

func (s *StoreSuite) TestMatchSlots_EmptyUntilSaved() {
	slots, err := s.store.MatchSlots(s.ctx)
	s.Require().NoError(err)
	s.NotNil(slots)
	s.Empty(slots)
}

func (s *StoreSuite) TestReplaceMatchSlots() {
	s.Require().NoError(s.store.ReplaceMatchSlots(s.ctx, domain.NewAssignments("10", "20")))
	s.Require().NoError(s.store.ReplaceMatchSlots(s.ctx, domain.NewAssignments("30", "10")))

	slots, err := s.store.MatchSlots(s.ctx)
	s.Require().NoError(err)
	s.Equal([]domain.MatchTeamSlot{
		{Position: domain.PositionHome, TeamID: "30", TeamName: "Green"},
		{Position: domain.PositionAway, TeamID: "10", TeamName: "Orange"},
	}, slots)
}

func (s *StoreSuite) TestReplaceMatchSlots_SameTeamBothSlots() {
	s.Require().NoError(s.store.ReplaceMatchSlots(s.ctx, domain.NewAssignments("20", "20")))

	slots, err := s.store.MatchSlots(s.ctx)
	s.Require().NoError(err)
	s.Len(slots, 2)
}

func (s *StoreSuite) TestReplaceMatchSlots_UnknownTeamWritesNothing() {
	s.Require().NoError(s.store.ReplaceMatchSlots(s.ctx, domain.NewAssignments("10", "20")))

	err := s.store.ReplaceMatchSlots(s.ctx, domain.NewAssignments("30", "99"))
	s.ErrorIs(err, ErrUnknownTeam)

	slots, err := s.store.MatchSlots(s.ctx)
	s.Require().NoError(err)
	s.Equal(domain.TeamID("10"), slots[0].TeamID)
	s.Equal(domain.TeamID("20"), slots[1].TeamID)
}

func (s *StoreSuite) TestReplaceMatchSlots_Invalid() {
	err := s.store.ReplaceMatchSlots(s.ctx, []domain.SlotAssignment{{Position: 3, ID: "10"}})
	s.ErrorIs(err, domain.ErrInvalidSlots)
}

func (s *StoreSuite) TestPlayerScores_Normalized() {
	for _, st := range []domain.PlayerStats{
		{TeamID: "10", PlayerName: "OLPiX", Goals: 2, Shots: 5, Assists: 1, Saves: 4, Demos: 0, Score: 300},
		{TeamID: "20", PlayerName: "Shaolon", Goals: 4, Shots: 10, Assists: 0, Saves: 2, Demos: 0, Score: 500},
	} {
		s.Require().NoError(s.store.UpsertPlayerStats(s.ctx, st))
	}

	scores, err := s.store.PlayerScores(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(scores, 2)

	top := scores[0]
	s.Equal("Shaolon", top.PlayerName)
	s.Equal("Blue", top.TeamName)
	s.Equal([]float64{100, 100, 0, 50, 0}, top.Parameters())

	s.Equal("OLPiX", scores[1].PlayerName)
	s.Equal([]float64{50, 50, 100, 100, 0}, scores[1].Parameters())
}

func (s *StoreSuite) TestUpsertPlayerStats_Overwrites() {
	st := domain.PlayerStats{TeamID: "10", PlayerName: "Burn", Goals: 1, Score: 10}
	s.Require().NoError(s.store.UpsertPlayerStats(s.ctx, st))
	st.Goals, st.Score = 3, 30
	s.Require().NoError(s.store.UpsertPlayerStats(s.ctx, st))

	stats, err := s.store.PlayerStats(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(stats, 1)
	s.Equal(float64(3), stats[0].Goals)
	s.Equal(float64(30), stats[0].Score)
}

func (s *StoreSuite) TestUpsertPlayerStats_UnknownTeam() {
	err := s.store.UpsertPlayerStats(s.ctx, domain.PlayerStats{TeamID: "404", PlayerName: "ghost"})
	s.ErrorIs(err, ErrUnknownTeam)
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), "mysql", "whatever")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mysql")
}
