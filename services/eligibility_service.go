package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sump-exe/Sports-Game-Management/models"
	"github.com/sump-exe/Sports-Game-Management/repositories"
	"github.com/sump-exe/Sports-Game-Management/season"
)

const playInBracketSize = 10 // seeds 1..10 are ranked, 7..10 enter the bracket

// PlayInPair is a bracket pairing that still needs to be played.
type PlayInPair struct {
	Slot  string              `json:"slot"` // "A": 7v8, "B": 9v10, "C": loser(A) v winner(B)
	Team1 models.TeamStanding `json:"team1"`
	Team2 models.TeamStanding `json:"team2"`
}

// PlayInState is the resolved position of the play-in bracket for a season.
type PlayInState struct {
	SeasonStartYear int                   `json:"season_start_year"`
	Pending         []PlayInPair          `json:"pending"`
	Qualified       []models.TeamStanding `json:"qualified"`
	Note            string                `json:"note,omitempty"`
}

// EligibilityService derives play-in pairings and playoff/finals
// qualification from regular-season rankings.
type EligibilityService interface {
	// ComputeRanks ranks roster-complete teams over the regular season
	// that started the year before seasonStartYear (play-in for the season
	// labeled Y settles the regular season that began in Y-1). Returns nil
	// when fewer than ten teams are ranked.
	ComputeRanks(ctx context.Context, seasonStartYear int) ([]models.TeamStanding, error)

	// ResolvePlayInPairs walks the three bracket games against finalized
	// results inside the Play-in window and reports what is still pending
	// and who has qualified.
	ResolvePlayInPairs(ctx context.Context, seasonStartYear int) (*PlayInState, error)

	// ValidOpponents lists the legal opponents for a team that appears in
	// a pending play-in pair.
	ValidOpponents(ctx context.Context, teamName string, seasonStartYear int) ([]models.TeamStanding, error)

	// PlayoffCandidates returns seeds 7-10 of the ranking; a simplified
	// slice rule kept alongside the bracket, which stays authoritative.
	PlayoffCandidates(ctx context.Context, seasonStartYear int) ([]models.TeamStanding, error)

	// FinalsCandidates returns the top 8 of the ranking.
	FinalsCandidates(ctx context.Context, seasonStartYear int) ([]models.TeamStanding, error)
}

type eligibilityService struct {
	standings StandingsService
	gameRepo  repositories.GameRepository
}

func NewEligibilityService(standings StandingsService, gameRepo repositories.GameRepository) EligibilityService {
	return &eligibilityService{
		standings: standings,
		gameRepo:  gameRepo,
	}
}

func (s *eligibilityService) ComputeRanks(ctx context.Context, seasonStartYear int) ([]models.TeamStanding, error) {
	// Seeds come from the Regular Season phase only, so that play-in and
	// playoff results never alter the seeding they were derived from.
	from, to, _ := season.PhaseRange(season.PhaseRegular, seasonStartYear-1)
	ranks, err := s.standings.WindowStandings(ctx, from, to, true)
	if err != nil {
		return nil, err
	}
	if len(ranks) < playInBracketSize {
		return nil, nil
	}
	return ranks, nil
}

func (s *eligibilityService) ResolvePlayInPairs(ctx context.Context, seasonStartYear int) (*PlayInState, error) {
	state := &PlayInState{
		SeasonStartYear: seasonStartYear,
		Pending:         []PlayInPair{},
		Qualified:       []models.TeamStanding{},
	}

	ranks, err := s.ComputeRanks(ctx, seasonStartYear)
	if err != nil {
		return nil, err
	}
	if ranks == nil {
		state.Note = "not enough teams"
		return state, nil
	}

	// Seeds 7..10 (0-indexed 6..9). The regular season anchored at Y-1
	// ends in April of Y, so its play-in window is anchored at Y.
	seed7, seed8, seed9, seed10 := ranks[6], ranks[7], ranks[8], ranks[9]
	windowStart, windowEnd, _ := season.PhaseRange(season.PhasePlayIn, seasonStartYear)

	var gameA, gameB *models.Game
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var lookupErr error
		gameA, lookupErr = s.findPlayed(gCtx, seed7, seed8, windowStart, windowEnd)
		return lookupErr
	})
	g.Go(func() error {
		var lookupErr error
		gameB, lookupErr = s.findPlayed(gCtx, seed9, seed10, windowStart, windowEnd)
		return lookupErr
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var loserA, winnerB *models.TeamStanding

	if gameA == nil {
		state.Pending = append(state.Pending, PlayInPair{Slot: "A", Team1: seed7, Team2: seed8})
	} else {
		winner, loser := splitResult(gameA, seed7, seed8)
		// Winner of A takes bracket seed 7 outright.
		state.Qualified = append(state.Qualified, winner)
		loserA = &loser
	}

	if gameB == nil {
		state.Pending = append(state.Pending, PlayInPair{Slot: "B", Team1: seed9, Team2: seed10})
	} else {
		winner, _ := splitResult(gameB, seed9, seed10)
		winnerB = &winner
	}

	// Game C only exists once both A and B are settled.
	if loserA != nil && winnerB != nil {
		gameC, err := s.findPlayed(ctx, *loserA, *winnerB, windowStart, windowEnd)
		if err != nil {
			return nil, err
		}
		if gameC == nil {
			state.Pending = append(state.Pending, PlayInPair{Slot: "C", Team1: *loserA, Team2: *winnerB})
		} else {
			winner, _ := splitResult(gameC, *loserA, *winnerB)
			// Winner of C takes bracket seed 8; everyone else is out.
			state.Qualified = append(state.Qualified, winner)
		}
	}

	if len(state.Pending) == 0 {
		state.Note = "no pending matches"
	}
	return state, nil
}

func (s *eligibilityService) ValidOpponents(ctx context.Context, teamName string, seasonStartYear int) ([]models.TeamStanding, error) {
	state, err := s.ResolvePlayInPairs(ctx, seasonStartYear)
	if err != nil {
		return nil, err
	}

	opponents := make([]models.TeamStanding, 0, 1)
	for _, pair := range state.Pending {
		switch teamName {
		case pair.Team1.TeamName:
			opponents = append(opponents, pair.Team2)
		case pair.Team2.TeamName:
			opponents = append(opponents, pair.Team1)
		}
	}
	return opponents, nil
}

func (s *eligibilityService) PlayoffCandidates(ctx context.Context, seasonStartYear int) ([]models.TeamStanding, error) {
	ranks, err := s.ComputeRanks(ctx, seasonStartYear)
	if err != nil || ranks == nil {
		return nil, err
	}
	return ranks[6:10], nil
}

func (s *eligibilityService) FinalsCandidates(ctx context.Context, seasonStartYear int) ([]models.TeamStanding, error) {
	ranks, err := s.ComputeRanks(ctx, seasonStartYear)
	if err != nil || ranks == nil {
		return nil, err
	}
	return ranks[:8], nil
}

// findPlayed returns the finalized game between the two teams inside the
// window, nil when it has not been played yet. A finalized tie cannot
// advance the bracket and is treated as unplayed.
func (s *eligibilityService) findPlayed(ctx context.Context, a, b models.TeamStanding, from, to time.Time) (*models.Game, error) {
	game, err := s.gameRepo.FindFinalizedBetween(ctx, a.TeamID, b.TeamID, from, to)
	if err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("resolving play-in game %s vs %s: %w", a.TeamName, b.TeamName, err)
	}
	if game.WinnerID == nil {
		return nil, nil
	}
	return game, nil
}

func splitResult(game *models.Game, t1, t2 models.TeamStanding) (winner, loser models.TeamStanding) {
	if game.WinnerID != nil && *game.WinnerID == t2.TeamID {
		return t2, t1
	}
	return t1, t2
}
