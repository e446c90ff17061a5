package dateparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Resolver converts loosely formatted announcement dates into UTC instants.
// Loc is the wall-clock zone for forms that carry no zone of their own
// (dotted dates, date-only forms); nil means UTC. Now is injectable so the
// year-guess rule is testable.
type Resolver struct {
	Loc *time.Location
	Now func() time.Time
}

var (
	reISO = regexp.MustCompile(`(\d{4})-(\d{2})-(\d{2})(?:[ T](\d{1,2}):(\d{2}))?(?:\s*\(?UTC\)?)?`)

	reDotted = regexp.MustCompile(`(\d{1,2})\.(\d{1,2})\.(\d{4})(?:\s+(\d{1,2}):(\d{2}))?`)

	reMonthName = regexp.MustCompile(`(?i)\b(January|February|March|April|May|June|July|August|September|October|November|December|Jan|Feb|Mar|Apr|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\.?\s+(\d{1,2})(?:st|nd|rd|th)?(?:,?\s*(\d{4}))?(?:,?\s+(\d{1,2}):(\d{2}))?(?:\s*\(?UTC\)?)?`)
)

var months = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may": time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sep": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

func (r *Resolver) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

func (r *Resolver) loc() *time.Location {
	if r.Loc != nil {
		return r.Loc
	}
	return time.UTC
}

// Resolve parses the first recognizable date in s and returns it as a UTC
// instant. ok is false when nothing parseable is found; callers drop the
// draft in that case rather than guessing.
func (r *Resolver) Resolve(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	if m := reISO.FindStringSubmatch(s); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		if !validDate(year, month, day) {
			return time.Time{}, false
		}
		hh, mm, hasTime := clock(m[4], m[5])
		// ISO forms are published UTC-tagged; date-only still falls back to
		// the source zone's midnight.
		if hasTime {
			return time.Date(year, time.Month(month), day, hh, mm, 0, 0, time.UTC), true
		}
		return time.Date(year, time.Month(month), day, 0, 0, 0, 0, r.loc()).UTC(), true
	}

	if m := reDotted.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if !validDate(year, month, day) {
			return time.Time{}, false
		}
		hh, mm, _ := clock(m[4], m[5])
		// Dotted dates carry the channel's wall clock; the zone's offset at
		// that instant (summer or winter) applies, not a fixed constant.
		return time.Date(year, time.Month(month), day, hh, mm, 0, 0, r.loc()).UTC(), true
	}

	if m := reMonthName.FindStringSubmatch(s); m != nil {
		month, ok := months[strings.ToLower(m[1])]
		if !ok {
			return time.Time{}, false
		}
		day, _ := strconv.Atoi(m[2])
		if day < 1 || day > 31 {
			return time.Time{}, false
		}
		hh, mm, _ := clock(m[4], m[5])
		if m[3] != "" {
			year, _ := strconv.Atoi(m[3])
			return time.Date(year, month, day, hh, mm, 0, 0, r.loc()).UTC(), true
		}
		return r.guessYear(month, day, hh, mm).UTC(), true
	}

	return time.Time{}, false
}

// guessYear picks the year for a bare "Month Day": the current year unless
// that lands more than six months in the past (then next year), or more
// than six months ahead while last year's date is still within six months
// past (then last year). "Dec 1" seen in early January stays in the cycle
// that just ended.
func (r *Resolver) guessYear(month time.Month, day, hh, mm int) time.Time {
	now := r.now()
	cand := time.Date(now.Year(), month, day, hh, mm, 0, 0, r.loc())
	stale := now.AddDate(0, -6, 0)
	if cand.Before(stale) {
		return cand.AddDate(1, 0, 0)
	}
	if cand.After(now.AddDate(0, 6, 0)) {
		prev := cand.AddDate(-1, 0, 0)
		if !prev.Before(stale) {
			return prev
		}
	}
	return cand
}

func clock(h, m string) (int, int, bool) {
	if h == "" {
		return 0, 0, false
	}
	hh, _ := strconv.Atoi(h)
	mm, _ := strconv.Atoi(m)
	if hh > 23 || mm > 59 {
		return 0, 0, false
	}
	return hh, mm, true
}

func validDate(year, month, day int) bool {
	return year >= 2000 && year <= 2100 && month >= 1 && month <= 12 && day >= 1 && day <= 31
}
