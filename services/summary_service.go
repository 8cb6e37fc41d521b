package services

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/sump-exe/Sports-Game-Management/models"
	"github.com/sump-exe/Sports-Game-Management/season"
)

// SeasonSummary aggregates everything a season dashboard needs in one
// response.
type SeasonSummary struct {
	SeasonStartYear int                   `json:"season_start_year"`
	Label           string                `json:"label"`
	WindowStart     string                `json:"window_start"`
	WindowEnd       string                `json:"window_end"`
	Standings       []models.TeamStanding `json:"standings"`
	MVP             *models.MVP           `json:"mvp,omitempty"`
	PlayIn          *PlayInState          `json:"play_in"`
}

type SummaryService interface {
	SeasonSummary(ctx context.Context, seasonStartYear int) (*SeasonSummary, error)
}

type summaryService struct {
	standings   StandingsService
	eligibility EligibilityService
	mvps        MVPService
}

func NewSummaryService(standings StandingsService, eligibility EligibilityService, mvps MVPService) SummaryService {
	return &summaryService{
		standings:   standings,
		eligibility: eligibility,
		mvps:        mvps,
	}
}

func (s *summaryService) SeasonSummary(ctx context.Context, seasonStartYear int) (*SeasonSummary, error) {
	windowStart, windowEnd := season.SeasonWindow(seasonStartYear)
	summary := &SeasonSummary{
		SeasonStartYear: seasonStartYear,
		Label:           season.Label(seasonStartYear),
		WindowStart:     windowStart.Format(dateLayout),
		WindowEnd:       windowEnd.Format(dateLayout),
	}

	// The three sections are independent reads, fetched concurrently.
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		standings, err := s.standings.SeasonStandings(gCtx, seasonStartYear, false)
		if err != nil {
			return err
		}
		summary.Standings = standings
		return nil
	})
	g.Go(func() error {
		// The play-in settling this regular season is anchored a year later.
		state, err := s.eligibility.ResolvePlayInPairs(gCtx, seasonStartYear+1)
		if err != nil {
			return err
		}
		summary.PlayIn = state
		return nil
	})
	g.Go(func() error {
		mvp, err := s.mvps.GetMVP(gCtx, seasonStartYear)
		if err != nil {
			if errors.Is(err, ErrMVPNotFound) {
				return nil
			}
			return err
		}
		summary.MVP = mvp
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summary, nil
}
