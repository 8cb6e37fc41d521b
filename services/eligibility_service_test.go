package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sump-exe/Sports-Game-Management/models"
)

// newLeagueFixture builds ten roster-complete teams with strictly ordered
// records in the regular season that starts in 2024: Team 01 wins every
// game, Team 10 loses every game. The play-in settling that season is
// anchored at 2025.
func newLeagueFixture(t *testing.T) (*fakeStore, EligibilityService, []*models.Team) {
	t.Helper()
	store := newFakeStore()
	venue := store.seedVenue("Main Arena")

	teams := make([]*models.Team, 10)
	for i := range teams {
		teams[i] = store.seedTeam(fmt.Sprintf("Team %02d", i+1), 12)
	}

	day := date(2024, time.November, 1)
	for i := 0; i < len(teams); i++ {
		for j := i + 1; j < len(teams); j++ {
			g := store.seedGame(teams[i], teams[j], venue, day, "18:00", "20:00")
			store.finalizeGame(g, 100, 90)
			day = day.AddDate(0, 0, 1)
		}
	}

	standings := NewStandingsService(store.teamRepo(), store.gameRepo(), 12)
	svc := NewEligibilityService(standings, store.gameRepo())
	return store, svc, teams
}

func playInDay(offset int) time.Time {
	return date(2025, time.April, 17+offset)
}

func TestComputeRanksOrdersBySeasonRecord(t *testing.T) {
	_, svc, teams := newLeagueFixture(t)

	ranks, err := svc.ComputeRanks(context.Background(), 2025)
	require.NoError(t, err)
	require.Len(t, ranks, 10)

	for i, team := range teams {
		assert.Equal(t, team.Name, ranks[i].TeamName)
		assert.Equal(t, 9-i, ranks[i].Wins)
		assert.Equal(t, i+1, ranks[i].Rank)
	}
}

func TestComputeRanksRequiresTenTeams(t *testing.T) {
	store := newFakeStore()
	venue := store.seedVenue("Arena")
	a := store.seedTeam("Alpha", 12)
	b := store.seedTeam("Beta", 12)
	g := store.seedGame(a, b, venue, date(2024, time.November, 1), "18:00", "20:00")
	store.finalizeGame(g, 90, 80)

	standings := NewStandingsService(store.teamRepo(), store.gameRepo(), 12)
	svc := NewEligibilityService(standings, store.gameRepo())

	ranks, err := svc.ComputeRanks(context.Background(), 2025)
	require.NoError(t, err)
	assert.Nil(t, ranks)

	state, err := svc.ResolvePlayInPairs(context.Background(), 2025)
	require.NoError(t, err)
	assert.Equal(t, "not enough teams", state.Note)
	assert.Empty(t, state.Pending)
	assert.Empty(t, state.Qualified)
}

func TestResolvePlayInPairsNothingPlayed(t *testing.T) {
	_, svc, teams := newLeagueFixture(t)

	state, err := svc.ResolvePlayInPairs(context.Background(), 2025)
	require.NoError(t, err)

	require.Len(t, state.Pending, 2)
	assert.Empty(t, state.Qualified)

	assert.Equal(t, "A", state.Pending[0].Slot)
	assert.Equal(t, teams[6].Name, state.Pending[0].Team1.TeamName)
	assert.Equal(t, teams[7].Name, state.Pending[0].Team2.TeamName)

	assert.Equal(t, "B", state.Pending[1].Slot)
	assert.Equal(t, teams[8].Name, state.Pending[1].Team1.TeamName)
	assert.Equal(t, teams[9].Name, state.Pending[1].Team2.TeamName)
}

func TestResolvePlayInPairsGameCAppearsAfterAAndB(t *testing.T) {
	store, svc, teams := newLeagueFixture(t)
	venue := store.venues[1]

	// Game A: seed 7 beats seed 8.
	gameA := store.seedGame(teams[6], teams[7], venue, playInDay(0), "18:00", "20:00")
	store.finalizeGame(gameA, 88, 80)
	// Game B: seed 9 beats seed 10.
	gameB := store.seedGame(teams[8], teams[9], venue, playInDay(1), "18:00", "20:00")
	store.finalizeGame(gameB, 77, 70)

	state, err := svc.ResolvePlayInPairs(context.Background(), 2025)
	require.NoError(t, err)

	// Winner of A is already through; C pairs loser(A) with winner(B).
	require.Len(t, state.Qualified, 1)
	assert.Equal(t, teams[6].Name, state.Qualified[0].TeamName)

	require.Len(t, state.Pending, 1)
	assert.Equal(t, "C", state.Pending[0].Slot)
	assert.Equal(t, teams[7].Name, state.Pending[0].Team1.TeamName)
	assert.Equal(t, teams[8].Name, state.Pending[0].Team2.TeamName)
}

func TestResolvePlayInPairsFullyResolved(t *testing.T) {
	store, svc, teams := newLeagueFixture(t)
	venue := store.venues[1]

	gameA := store.seedGame(teams[6], teams[7], venue, playInDay(0), "18:00", "20:00")
	store.finalizeGame(gameA, 88, 80)
	gameB := store.seedGame(teams[8], teams[9], venue, playInDay(1), "18:00", "20:00")
	store.finalizeGame(gameB, 77, 70)
	// Game C: winner of B knocks out loser of A.
	gameC := store.seedGame(teams[7], teams[8], venue, playInDay(3), "18:00", "20:00")
	store.finalizeGame(gameC, 60, 65)

	state, err := svc.ResolvePlayInPairs(context.Background(), 2025)
	require.NoError(t, err)

	assert.Empty(t, state.Pending)
	assert.Equal(t, "no pending matches", state.Note)
	require.Len(t, state.Qualified, 2)
	assert.Equal(t, teams[6].Name, state.Qualified[0].TeamName)
	assert.Equal(t, teams[8].Name, state.Qualified[1].TeamName)
}

func TestResolvePlayInIgnoresGamesOutsideWindow(t *testing.T) {
	store, svc, teams := newLeagueFixture(t)
	venue := store.venues[1]

	// Played in May, outside Play-in (Apr 17-24): does not count.
	late := store.seedGame(teams[6], teams[7], venue, date(2025, time.May, 2), "18:00", "20:00")
	store.finalizeGame(late, 88, 80)

	state, err := svc.ResolvePlayInPairs(context.Background(), 2025)
	require.NoError(t, err)
	assert.Len(t, state.Pending, 2)
	assert.Empty(t, state.Qualified)
}

func TestResolvePlayInTreatsTieAsUnplayed(t *testing.T) {
	store, svc, teams := newLeagueFixture(t)
	venue := store.venues[1]

	tie := store.seedGame(teams[6], teams[7], venue, playInDay(0), "18:00", "20:00")
	store.finalizeGame(tie, 80, 80)

	state, err := svc.ResolvePlayInPairs(context.Background(), 2025)
	require.NoError(t, err)
	require.Len(t, state.Pending, 2)
	assert.Equal(t, "A", state.Pending[0].Slot)
}

func TestValidOpponents(t *testing.T) {
	store, svc, teams := newLeagueFixture(t)
	venue := store.venues[1]

	gameA := store.seedGame(teams[6], teams[7], venue, playInDay(0), "18:00", "20:00")
	store.finalizeGame(gameA, 88, 80)
	gameB := store.seedGame(teams[8], teams[9], venue, playInDay(1), "18:00", "20:00")
	store.finalizeGame(gameB, 77, 70)

	opponents, err := svc.ValidOpponents(context.Background(), teams[7].Name, 2025)
	require.NoError(t, err)
	require.Len(t, opponents, 1)
	assert.Equal(t, teams[8].Name, opponents[0].TeamName)

	// A team not in any pending pair has no legal opponents.
	opponents, err = svc.ValidOpponents(context.Background(), teams[0].Name, 2025)
	require.NoError(t, err)
	assert.Empty(t, opponents)
}

func TestPlayoffAndFinalsCandidates(t *testing.T) {
	_, svc, teams := newLeagueFixture(t)

	playoff, err := svc.PlayoffCandidates(context.Background(), 2025)
	require.NoError(t, err)
	require.Len(t, playoff, 4)
	for i, st := range playoff {
		assert.Equal(t, teams[6+i].Name, st.TeamName)
	}

	finals, err := svc.FinalsCandidates(context.Background(), 2025)
	require.NoError(t, err)
	require.Len(t, finals, 8)
	assert.Equal(t, teams[0].Name, finals[0].TeamName)
	assert.Equal(t, teams[7].Name, finals[7].TeamName)
}
