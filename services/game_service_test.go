package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sump-exe/Sports-Game-Management/models"
	"github.com/sump-exe/Sports-Game-Management/season"
)

func newGameFixture(t *testing.T) (*fakeStore, GameService, *models.Game) {
	t.Helper()
	store := newFakeStore()
	sharks := store.seedTeam("Sharks", 12)
	bears := store.seedTeam("Bears", 12)
	venue := store.seedVenue("Main Arena")
	game := store.seedGame(sharks, bears, venue, date(2024, time.November, 15), "18:00", "20:00")

	svc := NewGameService(store.gameRepo(), store.venueRepo(), store.statRepo(), testLogger())
	return store, svc, game
}

func TestGetGameAnnotatesPhase(t *testing.T) {
	_, svc, game := newGameFixture(t)

	got, err := svc.GetGame(context.Background(), game.ID)
	require.NoError(t, err)
	assert.Equal(t, string(season.PhaseRegular), got.Phase)
	assert.Equal(t, models.GameStatusScheduled, got.Status())
}

func TestListGamesByPhase(t *testing.T) {
	store, svc, _ := newGameFixture(t)
	sharks := store.teams[1]
	bears := store.teams[2]
	venue := store.venues[1]
	store.seedGame(sharks, bears, venue, date(2025, time.April, 20), "18:00", "20:00")

	regular, err := svc.ListGamesByPhase(context.Background(), season.PhaseRegular, 2024)
	require.NoError(t, err)
	require.Len(t, regular, 1)
	assert.Equal(t, string(season.PhaseRegular), regular[0].Phase)

	playIn, err := svc.ListGamesByPhase(context.Background(), season.PhasePlayIn, 2025)
	require.NoError(t, err)
	require.Len(t, playIn, 1)
	assert.Equal(t, string(season.PhasePlayIn), playIn[0].Phase)

	_, err = svc.ListGamesByPhase(context.Background(), season.Phase("Preseason Cup"), 2024)
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestRescheduleChecksConflicts(t *testing.T) {
	store, svc, game := newGameFixture(t)
	wolves := store.seedTeam("Wolves", 12)
	lions := store.seedTeam("Lions", 12)
	store.seedGame(wolves, lions, store.venues[1], date(2024, time.November, 16), "18:00", "20:00")

	// Moving onto the occupied slot collides at the venue.
	_, err := svc.Reschedule(context.Background(), game.ID, RescheduleInput{Date: "2024-11-16", Start: "19:00", End: "21:00"})
	assert.ErrorIs(t, err, ErrTimeOverlap)

	moved, err := svc.Reschedule(context.Background(), game.ID, RescheduleInput{Date: "2024-11-16", Start: "20:00", End: "22:00"})
	require.NoError(t, err)
	assert.Equal(t, "20:00", moved.StartTime)
	assert.Equal(t, "2024-11-16", moved.Date.Format("2006-01-02"))
}

func TestRescheduleRejectsFinalGame(t *testing.T) {
	store, svc, game := newGameFixture(t)
	store.finalizeGame(store.games[game.ID], 80, 70)

	_, err := svc.Reschedule(context.Background(), game.ID, RescheduleInput{Start: "19:00", End: "21:00"})
	assert.ErrorIs(t, err, ErrGameAlreadyFinal)

	err = svc.DeleteGame(context.Background(), game.ID)
	assert.ErrorIs(t, err, ErrGameAlreadyFinal)
}

func TestRescheduleValidatesTimes(t *testing.T) {
	_, svc, game := newGameFixture(t)

	_, err := svc.Reschedule(context.Background(), game.ID, RescheduleInput{Start: "21:00"})
	assert.ErrorIs(t, err, ErrEndNotAfterStart)
}

func TestDeleteGame(t *testing.T) {
	store, svc, game := newGameFixture(t)

	require.NoError(t, svc.DeleteGame(context.Background(), game.ID))
	assert.Empty(t, store.games)

	err := svc.DeleteGame(context.Background(), game.ID)
	assert.ErrorIs(t, err, ErrGameNotFound)
}
