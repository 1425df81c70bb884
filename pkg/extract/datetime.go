package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

var (
	segmentSplit = regexp.MustCompile(`[.!?]+\s+|\n+`)
	// "10 mag. 2026" must stay in one segment, the dot of an abbreviated month is not a sentence end
	abbrMonthYearRe = regexp.MustCompile(`(?i)\b(gen|feb|mar|apr|mag|giu|lug|ago|set|ott|nov|dic)\.\s+(\d{4})\b`)
	cueRe        = regexp.MustCompile(`\b(?:` + strings.Join(schedulingCues, "|") + `)\b`)

	dayPart   = `(\d{1,2})[°º]?`
	monthPart = `(` + monthPattern + `)\b\.?`
	yearPart  = `(?:\s+(\d{4})\b)?`

	// textual patterns in priority order, groups are day, month name, optional year
	textDatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(?:` + dayNamePattern + `)\s+` + dayPart + `\s+` + monthPart + yearPart),
		regexp.MustCompile(`\b(?:il|dal|per il)\s+` + dayPart + `\s+` + monthPart + yearPart),
		regexp.MustCompile(`\b` + dayPart + `\s+` + monthPart + `\s+(\d{4})\b`),
	}
	numericDateRe = regexp.MustCompile(`\b(\d{1,2})[/.\-](\d{1,2})[/.\-](\d{4})\b`)
	anyNumericRe  = regexp.MustCompile(`\b\d{1,2}[/.\-]\d{1,2}[/.\-]\d{2,4}\b`)

	// time patterns in priority order, groups are hours and optional minutes
	timePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\bore\s*(\d{1,2})(?:[:.](\d{2}))?\b`),
		regexp.MustCompile(`\bh\.\s*(\d{1,2})(?:[:.](\d{2}))?\b`),
		regexp.MustCompile(`\b(\d{1,2})[:.](\d{2})\b`),
		regexp.MustCompile(`\b(?:alle|dalle)\s+(?:ore\s+)?(\d{1,2})(?:[:.](\d{2}))?\b`),
	}
)

// DateTime is the temporal part of an event, empty fields mean unknown
type DateTime struct {
	Date string // YYYY-MM-DD
	Time string // HH:MM
}

// DateConfig configures DateExtractor
type DateConfig struct {
	Now          func() time.Time // processing clock, time.Now if nil
	Location     *time.Location   // timezone of dates found in text, Europe/Rome or UTC if nil
	PastMonths   int              // how far back a date may be, 3 if zero
	FutureMonths int              // how far ahead a date may be, 12 if zero
}

// DateExtractor finds event dates and times in Italian text
type DateExtractor struct {
	now          func() time.Time
	loc          *time.Location
	pastMonths   int
	futureMonths int
}

// NewDateExtractor makes a DateExtractor with defaults applied to zero config fields
func NewDateExtractor(cfg DateConfig) *DateExtractor {
	res := &DateExtractor{now: cfg.Now, loc: cfg.Location, pastMonths: cfg.PastMonths, futureMonths: cfg.FutureMonths}
	if res.now == nil {
		res.now = time.Now
	}
	if res.loc == nil {
		loc, err := time.LoadLocation("Europe/Rome")
		if err != nil {
			loc = time.UTC
		}
		res.loc = loc
	}
	if res.pastMonths <= 0 {
		res.pastMonths = 3
	}
	if res.futureMonths <= 0 {
		res.futureMonths = 12
	}
	return res
}

// Extract returns the event date and time found in raw text
func (e *DateExtractor) Extract(raw string) DateTime {
	return e.extract(NewTextContext(raw))
}

func (e *DateExtractor) extract(tc TextContext) DateTime {
	return DateTime{Date: e.findDate(tc), Time: findTime(tc.Normalized)}
}

// findDate tries cue-flagged segments first, then the rest, then a numeric scan of the whole text.
// A rejected candidate never stops the search.
func (e *DateExtractor) findDate(tc TextContext) string {
	if tc.Normalized == "" {
		return ""
	}
	today := e.today()
	var flagged, unflagged []string
	raw := abbrMonthYearRe.ReplaceAllString(tc.Raw, "$1 $2")
	for _, seg := range segmentSplit.Split(raw, -1) {
		norm := Normalize(seg)
		if norm == "" {
			continue
		}
		if cueRe.MatchString(norm) {
			flagged = append(flagged, norm)
			continue
		}
		unflagged = append(unflagged, norm)
	}

	for _, seg := range append(flagged, unflagged...) {
		if d, ok := e.dateInSegment(seg, today); ok {
			return d.Format(dateLayout)
		}
	}

	if d, ok := e.numericDate(tc.Normalized, today); ok {
		return d.Format(dateLayout)
	}
	return ""
}

func (e *DateExtractor) dateInSegment(seg string, today time.Time) (time.Time, bool) {
	for _, re := range textDatePatterns {
		for _, m := range re.FindAllStringSubmatch(seg, -1) {
			day, _ := strconv.Atoi(m[1])
			month := monthNumbers[m[2]]
			if m[3] == "" {
				if d, ok := e.resolveYearless(day, month, today); ok {
					return d, true
				}
				continue
			}
			year, _ := strconv.Atoi(m[3])
			if d, ok := e.resolve(day, month, year, today); ok {
				return d, true
			}
		}
	}
	return e.numericDate(seg, today)
}

func (e *DateExtractor) numericDate(text string, today time.Time) (time.Time, bool) {
	for _, m := range numericDateRe.FindAllStringSubmatch(text, -1) {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if d, ok := e.resolve(day, month, year, today); ok {
			return d, true
		}
	}
	return time.Time{}, false
}

// resolveYearless assumes the current year, moving to the next one when the date is already too old
func (e *DateExtractor) resolveYearless(day, month int, today time.Time) (time.Time, bool) {
	if d, ok := e.resolve(day, month, today.Year(), today); ok {
		return d, true
	}
	return e.resolve(day, month, today.Year()+1, today)
}

// resolve builds a calendar-valid date inside the plausibility window, invalid dates are never normalized
func (e *DateExtractor) resolve(day, month, year int, today time.Time) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, e.loc)
	if d.Day() != day || int(d.Month()) != month || d.Year() != year {
		return time.Time{}, false
	}
	if d.Before(today.AddDate(0, -e.pastMonths, 0)) || d.After(today.AddDate(0, e.futureMonths, 0)) {
		return time.Time{}, false
	}
	return d, true
}

func (e *DateExtractor) today() time.Time {
	now := e.now().In(e.loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, e.loc)
}

// findTime scans normalized text for the first valid time, numeric dates are blanked first
// so "10.05.2025" never reads as 10:05
func findTime(normalized string) string {
	if normalized == "" {
		return ""
	}
	text := anyNumericRe.ReplaceAllString(normalized, " ")
	for _, re := range timePatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			hours, _ := strconv.Atoi(m[1])
			minutes := 0
			if m[2] != "" {
				minutes, _ = strconv.Atoi(m[2])
			}
			if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
				continue
			}
			return fmt.Sprintf("%02d:%02d", hours, minutes)
		}
	}
	return ""
}
