package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sump-exe/Sports-Game-Management/models"
	"github.com/sump-exe/Sports-Game-Management/repositories"
	"github.com/sump-exe/Sports-Game-Management/season"
)

// StandingsService computes ranked team records for a season window.
type StandingsService interface {
	// SeasonStandings ranks teams by their finalized results inside the
	// season window anchored at startYear. With requireCompleteRoster set,
	// teams whose roster is smaller than the configured required size are
	// excluded entirely; display-only callers leave it unset.
	SeasonStandings(ctx context.Context, startYear int, requireCompleteRoster bool) ([]models.TeamStanding, error)

	// WindowStandings is SeasonStandings over an arbitrary date window.
	// Eligibility seeds come from the Regular Season phase alone so that
	// play-in results never feed back into the seeding.
	WindowStandings(ctx context.Context, from, to time.Time, requireCompleteRoster bool) ([]models.TeamStanding, error)

	// SeasonStartYears lists season-start years that have at least one
	// scheduled game inside their window, newest first.
	SeasonStartYears(ctx context.Context) ([]int, error)
}

type standingsService struct {
	teamRepo           repositories.TeamRepository
	gameRepo           repositories.GameRepository
	requiredRosterSize int
}

func NewStandingsService(
	teamRepo repositories.TeamRepository,
	gameRepo repositories.GameRepository,
	requiredRosterSize int,
) StandingsService {
	return &standingsService{
		teamRepo:           teamRepo,
		gameRepo:           gameRepo,
		requiredRosterSize: requiredRosterSize,
	}
}

func (s *standingsService) SeasonStandings(ctx context.Context, startYear int, requireCompleteRoster bool) ([]models.TeamStanding, error) {
	from, to := season.SeasonWindow(startYear)
	return s.WindowStandings(ctx, from, to, requireCompleteRoster)
}

func (s *standingsService) WindowStandings(ctx context.Context, from, to time.Time, requireCompleteRoster bool) ([]models.TeamStanding, error) {
	games, err := s.gameRepo.ListByDateRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load games between %s and %s: %w",
			from.Format("2006-01-02"), to.Format("2006-01-02"), err)
	}

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load teams: %w", err)
	}

	eligible := make(map[int]*models.Team, len(teams))
	for _, team := range teams {
		if requireCompleteRoster && team.PlayerCount < s.requiredRosterSize {
			continue
		}
		eligible[team.ID] = team
	}

	// Teams appear only once they have a game, of any status, inside the
	// window. Wins and losses come exclusively from finalized games with a
	// recorded winner; a finalized tie counts as neither.
	records := make(map[int]*models.TeamStanding)
	record := func(teamID int) *models.TeamStanding {
		if st, ok := records[teamID]; ok {
			return st
		}
		team, ok := eligible[teamID]
		if !ok {
			return nil
		}
		st := &models.TeamStanding{TeamID: team.ID, TeamName: team.Name}
		records[teamID] = st
		return st
	}

	for _, game := range games {
		for _, teamID := range []int{game.Team1ID, game.Team2ID} {
			st := record(teamID)
			if st == nil || !game.IsFinal {
				continue
			}
			st.PointsScored += game.ScoreFor(teamID)
			if game.WinnerID == nil {
				continue
			}
			if *game.WinnerID == teamID {
				st.Wins++
			} else {
				st.Losses++
			}
		}
	}

	standings := make([]models.TeamStanding, 0, len(records))
	for _, st := range records {
		standings = append(standings, *st)
	}

	sort.SliceStable(standings, func(i, j int) bool {
		if standings[i].Wins != standings[j].Wins {
			return standings[i].Wins > standings[j].Wins
		}
		if standings[i].PointsScored != standings[j].PointsScored {
			return standings[i].PointsScored > standings[j].PointsScored
		}
		ni := strings.ToLower(standings[i].TeamName)
		nj := strings.ToLower(standings[j].TeamName)
		if ni != nj {
			return ni < nj
		}
		return standings[i].TeamName < standings[j].TeamName
	})

	for i := range standings {
		standings[i].Rank = i + 1
	}

	return standings, nil
}

func (s *standingsService) SeasonStartYears(ctx context.Context) ([]int, error) {
	minDate, maxDate, ok, err := s.gameRepo.DateBounds(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load game date bounds: %w", err)
	}
	if !ok {
		return []int{}, nil
	}

	// Windows cross calendar years, so the season that contains the
	// earliest game may have started the year before it.
	years := make([]int, 0)
	for y := minDate.Year() - 1; y <= maxDate.Year(); y++ {
		from, to := season.SeasonWindow(y)
		exists, err := s.gameRepo.ExistsInRange(ctx, from, to)
		if err != nil {
			return nil, fmt.Errorf("failed to probe season %d: %w", y, err)
		}
		if exists {
			years = append(years, y)
		}
	}

	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years, nil
}
