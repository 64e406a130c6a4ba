package calendar

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pfrederiksen/vct-calendar/internal/vct"
)

const (
	// ProdID identifies calendars produced by this tool.
	ProdID = "-//VCT 2026 Calendar//vlr.gg//EN"

	// CalendarName is the display name embedded in generated calendars.
	CalendarName = "Valorant Champions Tour"

	// EventDuration is the fixed scheduled length of a match entry.
	EventDuration = 2 * time.Hour

	StatusConfirmed = "CONFIRMED"
	StatusTentative = "TENTATIVE"
)

// Event is a single VEVENT. Start, End, and Stamp are UTC. Properties this
// tool does not manage are preserved verbatim in extra so foreign calendars
// survive a read-modify-write cycle.
type Event struct {
	UID         string
	Summary     string
	Description string
	URL         string
	Status      string
	Start       time.Time
	End         time.Time
	Stamp       time.Time

	extra []string
}

// Calendar is an ICS document as a list of events plus calendar-level
// headers.
type Calendar struct {
	ProdID string
	Name   string
	Events []*Event

	extra []string
}

// New creates an empty calendar with the VCT headers.
func New() *Calendar {
	return &Calendar{
		ProdID: ProdID,
		Name:   CalendarName,
	}
}

// FromMatch converts a match record to a calendar event. Returns nil when
// the match has no resolved start time; such records cannot be scheduled.
func FromMatch(m *vct.Match) *Event {
	if !m.HasStart() {
		return nil
	}

	start := m.StartUTC()
	status := StatusTentative
	if m.Confirmed() {
		status = StatusConfirmed
	}

	return &Event{
		UID:         m.UID(),
		Summary:     m.Summary(),
		Description: fmt.Sprintf("Watch: %s", m.URL),
		URL:         m.URL,
		Status:      status,
		Start:       start,
		End:         start.Add(EventDuration),
		Stamp:       time.Now().UTC(),
	}
}

// Find returns the event with the given UID, or nil.
func (c *Calendar) Find(uid string) *Event {
	for _, evt := range c.Events {
		if evt.UID == uid {
			return evt
		}
	}
	return nil
}

// UIDs returns the set of event UIDs present in the calendar.
func (c *Calendar) UIDs() map[string]bool {
	uids := make(map[string]bool, len(c.Events))
	for _, evt := range c.Events {
		if evt.UID != "" {
			uids[evt.UID] = true
		}
	}
	return uids
}

// Bytes serializes the calendar as RFC 5545 text with CRLF line endings.
func (c *Calendar) Bytes() []byte {
	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString(fmt.Sprintf("PRODID:%s\r\n", c.ProdID))
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")
	if c.Name != "" {
		ics.WriteString(fmt.Sprintf("X-WR-CALNAME:%s\r\n", escapeICS(c.Name)))
	}
	ics.WriteString("X-WR-TIMEZONE:UTC\r\n")
	for _, line := range c.extra {
		ics.WriteString(line + "\r\n")
	}

	for _, evt := range c.Events {
		writeEvent(&ics, evt)
	}

	ics.WriteString("END:VCALENDAR\r\n")
	return []byte(ics.String())
}

func writeEvent(ics *strings.Builder, evt *Event) {
	ics.WriteString("BEGIN:VEVENT\r\n")
	ics.WriteString(fmt.Sprintf("UID:%s\r\n", evt.UID))
	if !evt.Stamp.IsZero() {
		ics.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", formatICSTime(evt.Stamp)))
	}
	if !evt.Start.IsZero() {
		ics.WriteString(fmt.Sprintf("DTSTART:%s\r\n", formatICSTime(evt.Start)))
	}
	if !evt.End.IsZero() {
		ics.WriteString(fmt.Sprintf("DTEND:%s\r\n", formatICSTime(evt.End)))
	}
	if evt.Summary != "" {
		ics.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICS(evt.Summary)))
	}
	if evt.Description != "" {
		ics.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeICS(evt.Description)))
	}
	if evt.URL != "" {
		ics.WriteString(fmt.Sprintf("URL:%s\r\n", evt.URL))
	}
	if evt.Status != "" {
		ics.WriteString(fmt.Sprintf("STATUS:%s\r\n", evt.Status))
	}
	for _, line := range evt.extra {
		ics.WriteString(line + "\r\n")
	}
	ics.WriteString("END:VEVENT\r\n")
}

// WriteFile writes the serialized calendar to path, replacing any existing
// file.
func (c *Calendar) WriteFile(path string) error {
	if err := os.WriteFile(path, c.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing calendar: %w", err)
	}
	return nil
}

// formatICSTime formats a time.Time as an iCalendar UTC datetime string
func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// escapeICS escapes special characters according to RFC 5545
func escapeICS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}

// unescapeICS reverses escapeICS.
func unescapeICS(s string) string {
	var out strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			out.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'n', 'N':
			out.WriteByte('\n')
		default:
			out.WriteByte(s[i])
		}
	}
	return out.String()
}
