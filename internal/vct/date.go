package vct

import (
	"regexp"
	"strings"
	"time"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// wibLayouts are the time-text shapes the match card extractor produces,
// after WIB markers and commas are stripped.
var wibLayouts = []string{
	"3:04 pm Jan 2",
	"3:04pm Jan 2",
	"Jan 2 3:04 pm",
	"Jan 2 3:04pm",
	"3:04 pm Jan 2 2006",
	"Jan 2 2006 3:04 pm",
	"Jan 2",
}

// ParseWIBTime parses loosely formatted match time text like
// "11:00 pm WIB, Jan 20" into a wall-clock time. The returned value carries
// no location; callers attach the WIB zone before converting.
//
// Returns the zero time when the text is empty, a placeholder, or does not
// parse; an unresolvable time is not an error. When the source text carries
// no year the parser defaults it, so any implausible year is overwritten
// with defaultYear.
func ParseWIBTime(raw string, defaultYear int) time.Time {
	if raw == "" || raw == "-" {
		return time.Time{}
	}

	s := strings.ReplaceAll(raw, "WIB,", "")
	s = strings.ReplaceAll(s, "WIB", "")
	s = strings.ReplaceAll(s, ",", " ")
	s = whitespaceRe.ReplaceAllString(strings.TrimSpace(s), " ")
	s = normalizeTimeTokens(s)

	for _, layout := range wibLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		if t.Year() < 2020 {
			t = time.Date(defaultYear, t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC)
		}
		return t
	}

	return time.Time{}
}

// normalizeTimeTokens lowercases meridiem markers and title-cases month
// abbreviations so the layout cascade only needs one casing of each.
func normalizeTimeTokens(s string) string {
	tokens := strings.Split(s, " ")
	for i, tok := range tokens {
		switch low := strings.ToLower(tok); low {
		case "am", "pm":
			tokens[i] = low
		case "jan", "feb", "mar", "apr", "may", "jun", "jul", "aug", "sep", "oct", "nov", "dec":
			tokens[i] = strings.ToUpper(low[:1]) + low[1:]
		default:
			if len(tok) > 2 {
				if suffix := strings.ToLower(tok[len(tok)-2:]); suffix == "am" || suffix == "pm" {
					tokens[i] = tok[:len(tok)-2] + suffix
				}
			}
		}
	}
	return strings.Join(tokens, " ")
}
