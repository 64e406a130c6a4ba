package vct

import (
	"fmt"
	"time"
)

// Tournament represents one bracketed competition discovered on a stage
// listing page.
type Tournament struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Slug   string `json:"slug"`
	Region string `json:"region,omitempty"`
	Dates  string `json:"dates,omitempty"`
	URL    string `json:"url"`
}

// Match represents a single match scraped from a tournament page.
//
// Score1/Score2 hold the raw digit strings and are empty when no score was
// parsed; both are set or neither is meaningful for display. StartWIB is the
// zero time when no date/time text could be resolved, in which case the match
// is kept but cannot be scheduled.
type Match struct {
	ID        string    `json:"id"`
	EventName string    `json:"event_name"`
	Phase     string    `json:"phase"`
	Team1     string    `json:"team1"`
	Team2     string    `json:"team2"`
	Score1    string    `json:"score1,omitempty"`
	Score2    string    `json:"score2,omitempty"`
	StartWIB  time.Time `json:"start_wib,omitempty"`
	RawTime   string    `json:"raw_time,omitempty"`
	URL       string    `json:"url"`
}

// TBD is the placeholder team name used when extraction cannot resolve one.
const TBD = "TBD"

// WIB is the fixed source-region timezone; all times on vlr.gg match cards
// are expressed in it.
var WIB = time.FixedZone("WIB", 7*60*60)

// UID returns the deterministic calendar identifier for the match. It is
// stable across runs because the numeric match id is stable on vlr.gg.
func (m *Match) UID() string {
	return fmt.Sprintf("match-%s@vlr.gg", m.ID)
}

// Summary returns the human-readable calendar summary line.
func (m *Match) Summary() string {
	return fmt.Sprintf("%s - %s vs %s (%s)", m.EventName, m.Team1, m.Team2, m.Phase)
}

// Confirmed reports whether the match has a final score on both sides.
func (m *Match) Confirmed() bool {
	return m.Score1 != "" && m.Score2 != ""
}

// HasStart reports whether a start time was resolved for the match.
func (m *Match) HasStart() bool {
	return !m.StartWIB.IsZero()
}

// StartUTC returns the match start interpreted as WIB wall-clock time and
// converted to UTC. Only meaningful when HasStart is true.
func (m *Match) StartUTC() time.Time {
	t := m.StartWIB
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, WIB).UTC()
}
