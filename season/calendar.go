// Package season maps calendar dates onto the recurring six-phase season
// cycle and builds the season-year windows used for standings and booking
// validation.
package season

import (
	"fmt"
	"time"
)

type Phase string

const (
	PhasePreSeason Phase = "Pre-season"
	PhaseRegular   Phase = "Regular Season"
	PhasePlayIn    Phase = "Play-in"
	PhasePlayoff   Phase = "Playoff"
	PhaseFinals    Phase = "Finals"
	PhaseOffSeason Phase = "Off-season"
)

type monthDay struct {
	month time.Month
	day   int
}

type phaseWindow struct {
	start monthDay
	end   monthDay
}

// Fixed policy table. The six phases tile the full year; Regular Season is
// the only phase whose end sorts before its start and therefore crosses
// into the next calendar year.
var phaseTable = map[Phase]phaseWindow{
	PhasePreSeason: {monthDay{time.September, 25}, monthDay{time.October, 16}},
	PhaseRegular:   {monthDay{time.October, 17}, monthDay{time.April, 16}},
	PhasePlayIn:    {monthDay{time.April, 17}, monthDay{time.April, 24}},
	PhasePlayoff:   {monthDay{time.April, 25}, monthDay{time.June, 8}},
	PhaseFinals:    {monthDay{time.June, 9}, monthDay{time.June, 24}},
	PhaseOffSeason: {monthDay{time.June, 25}, monthDay{time.September, 24}},
}

// Phases lists all phases in calendar order within a season year.
var Phases = []Phase{
	PhasePreSeason,
	PhaseRegular,
	PhasePlayIn,
	PhasePlayoff,
	PhaseFinals,
	PhaseOffSeason,
}

func Valid(phase Phase) bool {
	_, ok := phaseTable[phase]
	return ok
}

func (md monthDay) before(other monthDay) bool {
	if md.month != other.month {
		return md.month < other.month
	}
	return md.day < other.day
}

func date(year int, md monthDay) time.Time {
	return time.Date(year, md.month, md.day, 0, 0, 0, 0, time.UTC)
}

// Normalize truncates t to a UTC calendar date so boundary comparisons
// are independent of clock time and location.
func Normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// PhaseRange returns the inclusive [start, end] dates of phase anchored at
// anchorYear. When the end month/day sorts before the start, the end date
// falls in anchorYear+1. ok is false for an unknown phase.
func PhaseRange(phase Phase, anchorYear int) (start, end time.Time, ok bool) {
	w, ok := phaseTable[phase]
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	start = date(anchorYear, w.start)
	if w.end.before(w.start) {
		end = date(anchorYear+1, w.end)
	} else {
		end = date(anchorYear, w.end)
	}
	return start, end, true
}

func contains(d, start, end time.Time) bool {
	return !d.Before(start) && !d.After(end)
}

// ResolvePhase returns the phase containing date, trying each phase
// anchored at date's year and then at the previous year (so a March date
// lands in the Regular Season that started the previous October). Returns
// "" when no phase matches; callers must handle that even though the
// table tiles the whole year.
func ResolvePhase(d time.Time) Phase {
	d = Normalize(d)
	for _, phase := range Phases {
		for _, anchor := range []int{d.Year(), d.Year() - 1} {
			start, end, _ := PhaseRange(phase, anchor)
			if contains(d, start, end) {
				return phase
			}
		}
	}
	return ""
}

// SeasonWindow returns the full season-year envelope for a season-start
// year: Pre-season(startYear) through Off-season(startYear+1).
func SeasonWindow(startYear int) (start, end time.Time) {
	start, _, _ = PhaseRange(PhasePreSeason, startYear)
	_, end, _ = PhaseRange(PhaseOffSeason, startYear+1)
	return start, end
}

// Label is the human-facing season name; by convention it uses the year
// the season window ends in.
func Label(startYear int) string {
	_, end := SeasonWindow(startYear)
	return fmt.Sprintf("Season %d", end.Year())
}

// IsDateWithinPhase reports whether d falls into phase anchored at
// declaredYear or declaredYear-1. The tolerance covers the ambiguity of
// whether a user-supplied year means the phase-start year or the phase's
// nominal calendar year. On failure the returned reason lists the
// window(s) that would have been accepted.
func IsDateWithinPhase(d time.Time, phase Phase, declaredYear int) (bool, string) {
	if !Valid(phase) {
		return false, fmt.Sprintf("unknown season phase %q", phase)
	}
	d = Normalize(d)

	windows := make([]string, 0, 2)
	for _, anchor := range []int{declaredYear, declaredYear - 1} {
		start, end, _ := PhaseRange(phase, anchor)
		if contains(d, start, end) {
			return true, ""
		}
		windows = append(windows, fmt.Sprintf("%s to %s",
			start.Format("2006-01-02"), end.Format("2006-01-02")))
	}

	return false, fmt.Sprintf("date %s is outside %s %d; accepted windows: %s or %s",
		d.Format("2006-01-02"), phase, declaredYear, windows[0], windows[1])
}
