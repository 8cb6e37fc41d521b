package season

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPhaseRange_SameYear(t *testing.T) {
	start, end, ok := PhaseRange(PhasePlayIn, 2025)
	require.True(t, ok)
	assert.Equal(t, day(2025, time.April, 17), start)
	assert.Equal(t, day(2025, time.April, 24), end)
}

func TestPhaseRange_RegularSeasonCrossesYear(t *testing.T) {
	start, end, ok := PhaseRange(PhaseRegular, 2024)
	require.True(t, ok)
	assert.Equal(t, day(2024, time.October, 17), start)
	assert.Equal(t, day(2025, time.April, 16), end)
}

func TestPhaseRange_UnknownPhase(t *testing.T) {
	_, _, ok := PhaseRange(Phase("Mid-season"), 2024)
	assert.False(t, ok)
}

func TestResolvePhase_CrossYearBothSides(t *testing.T) {
	// Regular Season 2024 runs Oct 17 2024 through Apr 16 2025.
	assert.Equal(t, PhaseRegular, ResolvePhase(day(2024, time.December, 31)))
	assert.Equal(t, PhaseRegular, ResolvePhase(day(2025, time.January, 1)))
	assert.Equal(t, PhaseRegular, ResolvePhase(day(2025, time.January, 15)))
}

func TestResolvePhase_Boundaries(t *testing.T) {
	// Boundaries are inclusive on both ends.
	assert.Equal(t, PhaseRegular, ResolvePhase(day(2024, time.October, 17)))
	assert.Equal(t, PhaseRegular, ResolvePhase(day(2025, time.April, 16)))
	assert.Equal(t, PhasePlayIn, ResolvePhase(day(2025, time.April, 17)))
	assert.Equal(t, PhaseFinals, ResolvePhase(day(2025, time.June, 24)))
	assert.Equal(t, PhaseOffSeason, ResolvePhase(day(2025, time.June, 25)))
}

// Every day of the year must resolve to some phase: the table tiles the
// year with no gaps.
func TestResolvePhase_TilesFullYear(t *testing.T) {
	d := day(2024, time.September, 25)
	stop := day(2026, time.September, 25)
	for d.Before(stop) {
		phase := ResolvePhase(d)
		require.NotEmpty(t, phase, "no phase for %s", d.Format("2006-01-02"))
		d = d.AddDate(0, 0, 1)
	}
}

func TestSeasonWindow(t *testing.T) {
	start, end := SeasonWindow(2024)
	assert.Equal(t, day(2024, time.September, 25), start)
	assert.Equal(t, day(2025, time.September, 24), end)
}

func TestLabel_UsesEndYear(t *testing.T) {
	assert.Equal(t, "Season 2025", Label(2024))
}

func TestIsDateWithinPhase_DeclaredYearTolerance(t *testing.T) {
	// January 2025 sits in the Regular Season anchored at 2024; both ways
	// of declaring that year are accepted.
	ok, _ := IsDateWithinPhase(day(2025, time.January, 15), PhaseRegular, 2024)
	assert.True(t, ok)
	ok, _ = IsDateWithinPhase(day(2025, time.January, 15), PhaseRegular, 2025)
	assert.True(t, ok)
}

func TestIsDateWithinPhase_RejectsWithWindows(t *testing.T) {
	ok, reason := IsDateWithinPhase(day(2025, time.August, 1), PhaseRegular, 2025)
	assert.False(t, ok)
	assert.Contains(t, reason, "2025-10-17 to 2026-04-16")
	assert.Contains(t, reason, "2024-10-17 to 2025-04-16")
}

func TestIsDateWithinPhase_UnknownPhase(t *testing.T) {
	ok, reason := IsDateWithinPhase(day(2025, time.August, 1), Phase("Mid-season"), 2025)
	assert.False(t, ok)
	assert.Contains(t, reason, "unknown season phase")
}
