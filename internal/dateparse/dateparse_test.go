package dateparse

import (
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

func fixedNow(s string) func() time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return t }
}

func TestResolveISOWithUTCTag(t *testing.T) {
	r := &Resolver{}

	got, ok := r.Resolve("2025-06-05 12:30 (UTC)")

	assert.Equal(t, true, ok)
	assert.Equal(t, time.Date(2025, 6, 5, 12, 30, 0, 0, time.UTC), got)
}

func TestResolveDottedUsesZoneOffsetAtInstant(t *testing.T) {
	kyiv, err := time.LoadLocation("Europe/Kyiv")
	assert.Equal(t, nil, err)
	r := &Resolver{Loc: kyiv}

	// Summer: Kyiv is UTC+3.
	summer, ok := r.Resolve("05.06.2025 12:00")
	assert.Equal(t, true, ok)
	assert.Equal(t, time.Date(2025, 6, 5, 9, 0, 0, 0, time.UTC), summer)

	// Winter: Kyiv is UTC+2.
	winter, ok := r.Resolve("05.12.2025 12:00")
	assert.Equal(t, true, ok)
	assert.Equal(t, time.Date(2025, 12, 5, 10, 0, 0, 0, time.UTC), winter)
}

func TestResolveDateOnlyMidnightInSourceZone(t *testing.T) {
	kyiv, err := time.LoadLocation("Europe/Kyiv")
	assert.Equal(t, nil, err)
	r := &Resolver{Loc: kyiv}

	got, ok := r.Resolve("05.06.2025")

	assert.Equal(t, true, ok)
	// Kyiv midnight, not UTC midnight.
	assert.Equal(t, time.Date(2025, 6, 4, 21, 0, 0, 0, time.UTC), got)
}

func TestResolveMonthNameWithYearAndTime(t *testing.T) {
	r := &Resolver{}

	got, ok := r.Resolve("June 5, 2025, 14:00")

	assert.Equal(t, true, ok)
	assert.Equal(t, time.Date(2025, 6, 5, 14, 0, 0, 0, time.UTC), got)
}

func TestGuessYearRecentPastStaysInCycle(t *testing.T) {
	r := &Resolver{Now: fixedNow("2025-01-10T00:00:00Z")}

	got, ok := r.Resolve("Dec 1")

	assert.Equal(t, true, ok)
	assert.Equal(t, 2024, got.Year())
	assert.Equal(t, time.December, got.Month())
	assert.Equal(t, 1, got.Day())
}

func TestGuessYearUpcomingUsesCurrentYear(t *testing.T) {
	r := &Resolver{Now: fixedNow("2025-01-10T00:00:00Z")}

	got, ok := r.Resolve("Feb 1")

	assert.Equal(t, true, ok)
	assert.Equal(t, 2025, got.Year())
	assert.Equal(t, time.February, got.Month())
}

func TestGuessYearStaleRollsForward(t *testing.T) {
	r := &Resolver{Now: fixedNow("2025-08-10T00:00:00Z")}

	got, ok := r.Resolve("Jan 5")

	assert.Equal(t, true, ok)
	assert.Equal(t, 2026, got.Year())
}

func TestResolveUnparseable(t *testing.T) {
	r := &Resolver{}

	for _, s := range []string{"", "soon", "TBA", "99.99.2025", "2025-13-40 10:00"} {
		_, ok := r.Resolve(s)
		assert.Equal(t, false, ok)
	}
}
