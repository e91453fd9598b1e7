package nlp

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"advisordesk/models"
)

var weekdayTokens = map[string]time.Weekday{
	"sunday": time.Sunday, "sun": time.Sunday,
	"monday": time.Monday, "mon": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday, "tues": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday, "thurs": time.Thursday,
	"friday": time.Friday, "fri": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday,
}

var monthTokens = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may":  time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sept": time.September, "sep": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

// Dayparts resolve to representative times inside the booking window.
// "afternoon" is listed before "noon" so the longer token wins.
var dayparts = []struct {
	token   string
	minutes int
}{
	{"afternoon", 14 * 60},
	{"morning", 10 * 60},
	{"midday", 12 * 60},
	{"noon", 12 * 60},
	{"evening", 17 * 60},
}

const monthAlt = `(january|jan|february|feb|march|mar|april|apr|may|june|jun|july|jul|august|aug|september|sept|sep|october|oct|november|nov|december|dec)`

var (
	dayMonthRe = regexp.MustCompile(`\b(\d{1,2})(?:st|nd|rd|th)?\s*(?:of\s+)?` + monthAlt + `\b`)
	monthDayRe = regexp.MustCompile(`\b` + monthAlt + `\s*(\d{1,2})(?:st|nd|rd|th)?\b`)
	clockRe    = regexp.MustCompile(`\b(at\s+)?(\d{1,2})(?::(\d{2}))?\s*(am|pm)?\b`)
	wordRe     = regexp.MustCompile(`[a-z]+`)
)

// ExtractDateTime parses a free-text date/time preference relative to ref,
// in ref's location. Accepted shapes include "Friday, 10am", "10 Feb",
// "Feb 10 2:30pm" and "tomorrow afternoon". Ambiguous years resolve to the
// nearest future occurrence. Past instants and days beyond horizonDays
// return typed reasons, never panics or plain failures.
func ExtractDateTime(text string, ref time.Time, horizonDays int) (*models.TimePreference, error) {
	loc := ref.Location()
	lowered := strings.ToLower(strings.TrimSpace(text))
	if lowered == "" {
		return nil, NewExtractError(ReasonUnparseable, "empty datetime phrase")
	}

	refDay := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, loc)

	var day time.Time
	dayFound := false

	// Explicit date first: "10 feb" / "feb 10". An explicit date overrides
	// any weekday also present in the phrase.
	if m := dayMonthRe.FindStringSubmatchIndex(lowered); m != nil {
		d, _ := strconv.Atoi(lowered[m[2]:m[3]])
		month := monthTokens[lowered[m[4]:m[5]]]
		if d >= 1 && d <= 31 {
			day = nearestFutureDate(refDay, month, d, loc)
			dayFound = !day.IsZero()
			lowered = lowered[:m[0]] + lowered[m[1]:]
		}
	} else if m := monthDayRe.FindStringSubmatchIndex(lowered); m != nil {
		month := monthTokens[lowered[m[2]:m[3]]]
		d, _ := strconv.Atoi(lowered[m[4]:m[5]])
		if d >= 1 && d <= 31 {
			day = nearestFutureDate(refDay, month, d, loc)
			dayFound = !day.IsZero()
			lowered = lowered[:m[0]] + lowered[m[1]:]
		}
	}

	// Relative day words.
	if !dayFound {
		switch {
		case strings.Contains(lowered, "day after tomorrow"):
			day = refDay.AddDate(0, 0, 2)
			dayFound = true
			lowered = strings.Replace(lowered, "day after tomorrow", "", 1)
		case strings.Contains(lowered, "tomorrow"):
			day = refDay.AddDate(0, 0, 1)
			dayFound = true
			lowered = strings.Replace(lowered, "tomorrow", "", 1)
		case strings.Contains(lowered, "today"):
			day = refDay
			dayFound = true
			lowered = strings.Replace(lowered, "today", "", 1)
		}
	}

	// Weekday names.
	wantWeekday := time.Weekday(-1)
	if !dayFound {
		for _, w := range wordRe.FindAllString(lowered, -1) {
			if wd, ok := weekdayTokens[w]; ok {
				wantWeekday = wd
				break
			}
		}
	}

	// Daypart or explicit clock time.
	minutes := -1
	for _, dp := range dayparts {
		if strings.Contains(lowered, dp.token) {
			minutes = dp.minutes
			break
		}
	}
	if minutes < 0 {
		for _, m := range clockRe.FindAllStringSubmatch(lowered, -1) {
			// A bare number is not a time. It needs an am/pm suffix, a
			// minutes component or a leading "at", otherwise counts and
			// document names ("form 16") would read as clock times.
			if m[1] == "" && m[3] == "" && m[4] == "" {
				continue
			}
			h, _ := strconv.Atoi(m[2])
			mm := 0
			if m[3] != "" {
				mm, _ = strconv.Atoi(m[3])
			}
			switch m[4] {
			case "pm":
				if h < 12 {
					h += 12
				}
			case "am":
				if h == 12 {
					h = 0
				}
			}
			if h <= 23 && mm <= 59 {
				minutes = h*60 + mm
				break
			}
		}
	}
	hasTime := minutes >= 0

	// Resolve a weekday to its next occurrence. Today counts only when an
	// explicit time later today was given.
	if wantWeekday >= 0 {
		delta := (int(wantWeekday) - int(refDay.Weekday()) + 7) % 7
		if delta == 0 {
			sameDay := refDay.Add(time.Duration(minutes) * time.Minute)
			if !hasTime || !sameDay.After(ref) {
				delta = 7
			}
		}
		day = refDay.AddDate(0, 0, delta)
		dayFound = true
	}

	// A bare time means the nearest future day at that time.
	if !dayFound && hasTime {
		day = refDay
		if !day.Add(time.Duration(minutes) * time.Minute).After(ref) {
			day = day.AddDate(0, 0, 1)
		}
		dayFound = true
	}

	if !dayFound {
		return nil, NewExtractError(ReasonUnparseable, "no date, weekday or time found")
	}

	pref := &models.TimePreference{
		Day:       day,
		Minutes:   minutes,
		HasTime:   hasTime,
		RawPhrase: text,
	}

	if hasTime {
		if !pref.Instant().After(ref) {
			return nil, NewExtractError(ReasonPastTime, "requested time is in the past")
		}
	} else if day.Before(refDay) {
		return nil, NewExtractError(ReasonPastTime, "requested day is in the past")
	}
	if day.After(refDay.AddDate(0, 0, horizonDays)) {
		return nil, NewExtractError(ReasonBeyondHorizon, "requested day is beyond the booking horizon")
	}

	return pref, nil
}

// nearestFutureDate picks the next occurrence of month/day on or after ref's day.
func nearestFutureDate(refDay time.Time, month time.Month, d int, loc *time.Location) time.Time {
	for _, year := range []int{refDay.Year(), refDay.Year() + 1} {
		candidate := time.Date(year, month, d, 0, 0, 0, 0, loc)
		if candidate.Month() != month || candidate.Day() != d {
			continue // e.g. 31 Feb rolled over
		}
		if !candidate.Before(refDay) {
			return candidate
		}
	}
	return time.Time{}
}
