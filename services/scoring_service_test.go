package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sump-exe/Sports-Game-Management/models"
)

type scoringFixture struct {
	store    *fakeStore
	notifier *fakeNotifier
	svc      ScoringService
	game     *models.Game
	sharks   *models.Team
	bears    *models.Team
}

func newScoringFixture(t *testing.T) *scoringFixture {
	t.Helper()
	store := newFakeStore()
	sharks := store.seedTeam("Sharks", 12)
	bears := store.seedTeam("Bears", 12)
	venue := store.seedVenue("Main Arena")
	game := store.seedGame(sharks, bears, venue, date(2024, time.November, 15), "18:00", "20:00")

	notifier := &fakeNotifier{}
	svc := NewScoringService(store.gameRepo(), store.playerRepo(), store.teamRepo(), store.statRepo(), notifier, testLogger())
	return &scoringFixture{
		store:    store,
		notifier: notifier,
		svc:      svc,
		game:     game,
		sharks:   sharks,
		bears:    bears,
	}
}

func (f *scoringFixture) playerOf(team *models.Team) *models.Player {
	for _, p := range f.store.players {
		if p.TeamID == team.ID {
			return p
		}
	}
	return nil
}

func TestAddPointsUpdatesLedgerAndScores(t *testing.T) {
	f := newScoringFixture(t)
	shark := f.playerOf(f.sharks)
	bear := f.playerOf(f.bears)

	update, err := f.svc.AddPoints(context.Background(), f.game.ID, shark.ID, 3, false)
	require.NoError(t, err)
	assert.Equal(t, 3, update.PlayerPoints)
	assert.Equal(t, 3, update.Team1Score)
	assert.Equal(t, 0, update.Team2Score)

	update, err = f.svc.AddPoints(context.Background(), f.game.ID, bear.ID, 2, false)
	require.NoError(t, err)
	assert.Equal(t, 2, update.PlayerPoints)
	assert.Equal(t, 3, update.Team1Score)
	assert.Equal(t, 2, update.Team2Score)

	// career totals follow the ledger
	assert.Equal(t, 3, f.store.players[shark.ID].CareerPoints)
	assert.Equal(t, 3, f.store.teams[f.sharks.ID].CareerPoints)

	// every accepted change is pushed to the game room
	require.Len(t, f.notifier.rooms, 2)
	assert.Equal(t, "game_1", f.notifier.rooms[0])
}

func TestAddPointsRejectsNonPositive(t *testing.T) {
	f := newScoringFixture(t)
	shark := f.playerOf(f.sharks)

	_, err := f.svc.AddPoints(context.Background(), f.game.ID, shark.ID, 0, false)
	assert.ErrorIs(t, err, ErrNonPositivePoints)

	_, err = f.svc.AddPoints(context.Background(), f.game.ID, shark.ID, -5, false)
	assert.ErrorIs(t, err, ErrNonPositivePoints)
}

func TestAddPointsSubtractCannotGoNegative(t *testing.T) {
	f := newScoringFixture(t)
	shark := f.playerOf(f.sharks)

	_, err := f.svc.AddPoints(context.Background(), f.game.ID, shark.ID, 2, false)
	require.NoError(t, err)

	_, err = f.svc.AddPoints(context.Background(), f.game.ID, shark.ID, 5, true)
	require.ErrorIs(t, err, ErrNegativeStat)

	update, err := f.svc.AddPoints(context.Background(), f.game.ID, shark.ID, 2, true)
	require.NoError(t, err)
	assert.Equal(t, 0, update.PlayerPoints)
	assert.Equal(t, 0, update.Team1Score)
	assert.Equal(t, 0, f.store.players[shark.ID].CareerPoints)
}

func TestAddPointsRejectsPlayerNotOnGame(t *testing.T) {
	f := newScoringFixture(t)
	wolves := f.store.seedTeam("Wolves", 12)
	outsider := f.playerOf(wolves)

	_, err := f.svc.AddPoints(context.Background(), f.game.ID, outsider.ID, 2, false)
	assert.ErrorIs(t, err, ErrPlayerNotOnGame)
}

func TestAddPointsRejectsFinalGame(t *testing.T) {
	f := newScoringFixture(t)
	shark := f.playerOf(f.sharks)
	f.store.finalizeGame(f.store.games[f.game.ID], 50, 40)

	_, err := f.svc.AddPoints(context.Background(), f.game.ID, shark.ID, 2, false)
	assert.ErrorIs(t, err, ErrGameAlreadyFinal)
}

func TestEndGamePicksWinnerFromLedger(t *testing.T) {
	f := newScoringFixture(t)
	shark := f.playerOf(f.sharks)
	bear := f.playerOf(f.bears)

	_, err := f.svc.AddPoints(context.Background(), f.game.ID, shark.ID, 10, false)
	require.NoError(t, err)
	_, err = f.svc.AddPoints(context.Background(), f.game.ID, bear.ID, 7, false)
	require.NoError(t, err)

	result, err := f.svc.EndGame(context.Background(), f.game.ID)
	require.NoError(t, err)

	assert.False(t, result.AlreadyEnded)
	assert.Equal(t, 10, result.Team1Score)
	assert.Equal(t, 7, result.Team2Score)
	require.NotNil(t, result.WinnerID)
	assert.Equal(t, f.sharks.ID, *result.WinnerID)
	assert.Equal(t, "Sharks", result.WinnerName)
	assert.Equal(t, 1, f.store.teams[f.sharks.ID].Wins)
	assert.Equal(t, 0, f.store.teams[f.bears.ID].Wins)
}

func TestEndGameTieHasNoWinner(t *testing.T) {
	f := newScoringFixture(t)
	shark := f.playerOf(f.sharks)
	bear := f.playerOf(f.bears)

	_, err := f.svc.AddPoints(context.Background(), f.game.ID, shark.ID, 8, false)
	require.NoError(t, err)
	_, err = f.svc.AddPoints(context.Background(), f.game.ID, bear.ID, 8, false)
	require.NoError(t, err)

	result, err := f.svc.EndGame(context.Background(), f.game.ID)
	require.NoError(t, err)

	assert.Nil(t, result.WinnerID)
	assert.Empty(t, result.WinnerName)
	assert.Equal(t, 0, f.store.teams[f.sharks.ID].Wins)
	assert.Equal(t, 0, f.store.teams[f.bears.ID].Wins)
}

func TestEndGameIsIdempotent(t *testing.T) {
	f := newScoringFixture(t)
	shark := f.playerOf(f.sharks)

	_, err := f.svc.AddPoints(context.Background(), f.game.ID, shark.ID, 5, false)
	require.NoError(t, err)

	first, err := f.svc.EndGame(context.Background(), f.game.ID)
	require.NoError(t, err)
	require.False(t, first.AlreadyEnded)

	second, err := f.svc.EndGame(context.Background(), f.game.ID)
	require.NoError(t, err)
	assert.True(t, second.AlreadyEnded)
	assert.Equal(t, first.Team1Score, second.Team1Score)
	assert.Equal(t, first.WinnerID, second.WinnerID)

	// no double win credit
	assert.Equal(t, 1, f.store.teams[f.sharks.ID].Wins)
}

func TestEndGameScoreIsRecomputedFromLedger(t *testing.T) {
	f := newScoringFixture(t)
	shark := f.playerOf(f.sharks)

	_, err := f.svc.AddPoints(context.Background(), f.game.ID, shark.ID, 5, false)
	require.NoError(t, err)

	// A drifted running total on the game row must not survive EndGame.
	f.store.games[f.game.ID].Team1Score = 99

	result, err := f.svc.EndGame(context.Background(), f.game.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, result.Team1Score)
	assert.Equal(t, 5, f.store.games[f.game.ID].Team1Score)
}
