package service

import (
	"context"

	"github.com/jose-valero/match-scoreboard/internal/adapters/scoresapi"
	"github.com/jose-valero/match-scoreboard/internal/domain"
)

// Lo implementa internal/adapters/scoresapi.Client
type ScoresAPI interface {
	ListTeams(ctx context.Context) (scoresapi.TeamsResponse, error)
	GetStreamingMatch(ctx context.Context) (scoresapi.StreamingMatchResponse, error)
	SaveStreamingMatch(ctx context.Context, slots []domain.SlotAssignment) (scoresapi.SaveResponse, error)
	ListScores(ctx context.Context) (scoresapi.ScoresResponse, error)
}

// Lo implementa internal/adapters/discord.Announcer (opcional)
type Announcer interface {
	AnnounceMatch(ctx context.Context, home, away domain.Team) error
}

// Lo implementa internal/adapters/ballchasing.Client
type ReplaySource interface {
	ReplayGroups(ctx context.Context, groupID string) ([]domain.ReplayGroup, error)
}

// Lo implementa internal/adapters/toornament.Client (opcional)
type TournamentSource interface {
	Tournament(ctx context.Context, tournamentID string) ([]domain.TournamentTeam, []domain.TournamentMatch, error)
}

// Lo implementa internal/infra/storage.Store
type ImportStore interface {
	ReplaceTournament(ctx context.Context, teams []domain.TournamentTeam, matches []domain.TournamentMatch) error
	ReplaceReplayStats(ctx context.Context, groups []domain.ReplayGroup) (domain.ReplayImportResult, error)
	AppendTaskStatus(ctx context.Context, taskID, status string) error
	TaskStatuses(ctx context.Context, taskID string) ([]domain.ImportTask, error)
}
