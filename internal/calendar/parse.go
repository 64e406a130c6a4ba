package calendar

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// ErrMalformed indicates a file that does not parse as an ICS calendar.
// Append and update modes abort rather than guess at a broken document.
var ErrMalformed = errors.New("malformed calendar file")

// icsTimeLayouts covers the datetime forms found in the wild: UTC-suffixed,
// floating local, and all-day dates.
var icsTimeLayouts = []string{
	"20060102T150405Z",
	"20060102T150405",
	"20060102",
}

// Parse reads an ICS document. Properties this tool does not manage are kept
// verbatim on their event so a later rewrite round-trips them.
func Parse(r io.Reader) (*Calendar, error) {
	lines, err := unfold(r)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 || lines[0] != "BEGIN:VCALENDAR" {
		return nil, fmt.Errorf("%w: missing BEGIN:VCALENDAR", ErrMalformed)
	}

	cal := &Calendar{}
	var evt *Event

	for _, line := range lines[1:] {
		name, value := splitProperty(line)

		switch {
		case line == "BEGIN:VEVENT":
			if evt != nil {
				return nil, fmt.Errorf("%w: nested VEVENT", ErrMalformed)
			}
			evt = &Event{}
		case line == "END:VEVENT":
			if evt == nil {
				return nil, fmt.Errorf("%w: END:VEVENT without BEGIN", ErrMalformed)
			}
			cal.Events = append(cal.Events, evt)
			evt = nil
		case line == "END:VCALENDAR":
			if evt != nil {
				return nil, fmt.Errorf("%w: unterminated VEVENT", ErrMalformed)
			}
			return cal, nil
		case evt != nil:
			applyEventProperty(evt, line, name, value)
		default:
			applyCalendarProperty(cal, line, name, value)
		}
	}

	return nil, fmt.Errorf("%w: missing END:VCALENDAR", ErrMalformed)
}

// ReadFile parses the calendar file at path.
func ReadFile(path string) (*Calendar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening calendar: %w", err)
	}
	defer f.Close()

	cal, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cal, nil
}

// unfold reads physical lines and joins RFC 5545 continuation lines (lines
// starting with a space or tab) onto their predecessor.
func unfold(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		if (line[0] == ' ' || line[0] == '\t') && len(lines) > 0 {
			lines[len(lines)-1] += line[1:]
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading calendar: %w", err)
	}
	return lines, nil
}

// splitProperty separates a content line into its property name (parameters
// stripped, uppercased) and raw value.
func splitProperty(line string) (name, value string) {
	colon := strings.Index(line, ":")
	if colon < 0 {
		return "", ""
	}
	name = line[:colon]
	value = line[colon+1:]
	if semi := strings.Index(name, ";"); semi >= 0 {
		name = name[:semi]
	}
	return strings.ToUpper(name), value
}

func applyCalendarProperty(cal *Calendar, line, name, value string) {
	switch name {
	case "PRODID":
		cal.ProdID = value
	case "X-WR-CALNAME":
		cal.Name = unescapeICS(value)
	case "VERSION", "CALSCALE", "METHOD", "X-WR-TIMEZONE":
		// Rewritten on output.
	default:
		cal.extra = append(cal.extra, line)
	}
}

func applyEventProperty(evt *Event, line, name, value string) {
	switch name {
	case "UID":
		evt.UID = value
	case "SUMMARY":
		evt.Summary = unescapeICS(value)
	case "DESCRIPTION":
		evt.Description = unescapeICS(value)
	case "URL":
		evt.URL = value
	case "STATUS":
		evt.Status = value
	case "DTSTART":
		if t, ok := parseICSTime(value); ok {
			evt.Start = t
		} else {
			evt.extra = append(evt.extra, line)
		}
	case "DTEND":
		if t, ok := parseICSTime(value); ok {
			evt.End = t
		} else {
			evt.extra = append(evt.extra, line)
		}
	case "DTSTAMP":
		if t, ok := parseICSTime(value); ok {
			evt.Stamp = t
		} else {
			evt.extra = append(evt.extra, line)
		}
	default:
		evt.extra = append(evt.extra, line)
	}
}

// parseICSTime parses an ICS datetime value as UTC. Floating times and
// all-day dates are treated as UTC, matching the generated calendars' fixed
// X-WR-TIMEZONE.
func parseICSTime(value string) (time.Time, bool) {
	for _, layout := range icsTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
