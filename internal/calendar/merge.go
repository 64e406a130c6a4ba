package calendar

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pfrederiksen/vct-calendar/internal/vct"
)

// Generate builds a fresh calendar from a match list. Matches without a
// resolved start time are skipped. Returns the calendar and the number of
// events added.
func Generate(matches []*vct.Match) (*Calendar, int) {
	cal := New()
	added := 0
	for _, m := range matches {
		if evt := FromMatch(m); evt != nil {
			cal.Events = append(cal.Events, evt)
			added++
		}
	}
	return cal, added
}

// Append adds events for matches whose UID is not already present. Matches
// without a start time are skipped, so appending the same list twice is a
// no-op the second time. Returns the number of events added.
func (c *Calendar) Append(matches []*vct.Match) int {
	existing := c.UIDs()
	added := 0
	for _, m := range matches {
		if existing[m.UID()] {
			continue
		}
		evt := FromMatch(m)
		if evt == nil {
			continue
		}
		c.Events = append(c.Events, evt)
		existing[evt.UID] = true
		added++
	}
	return added
}

// UpdateStats summarizes an Update pass.
type UpdateStats struct {
	Updated       int
	Unchanged     int
	SkippedNew    int
	SkippedNoTime int
}

// UpdateChange records the field-level changes applied to one event.
type UpdateChange struct {
	UID     string
	Details []string
}

// Update rewrites the summary, start, end, status, and stamp of events whose
// UID matches an incoming record. Records with UIDs absent from the calendar
// are skipped (update never invents entries), as are records without a
// resolved start time. The event set of the calendar is never altered.
func (c *Calendar) Update(matches []*vct.Match) (UpdateStats, []UpdateChange) {
	var stats UpdateStats
	var changes []UpdateChange

	for _, m := range matches {
		existing := c.Find(m.UID())
		if existing == nil {
			stats.SkippedNew++
			continue
		}

		fresh := FromMatch(m)
		if fresh == nil {
			stats.SkippedNoTime++
			continue
		}

		var details []string
		if existing.Summary != fresh.Summary {
			details = append(details, fmt.Sprintf("summary: %q -> %q", existing.Summary, fresh.Summary))
		}
		if !existing.Start.Equal(fresh.Start) {
			details = append(details, fmt.Sprintf("time: %s -> %s",
				existing.Start.Format(time.RFC3339), fresh.Start.Format(time.RFC3339)))
		}
		if existing.Status != fresh.Status {
			details = append(details, fmt.Sprintf("status: %s -> %s", existing.Status, fresh.Status))
		}

		if len(details) == 0 {
			stats.Unchanged++
			continue
		}

		existing.Summary = fresh.Summary
		existing.Start = fresh.Start
		existing.End = fresh.End
		existing.Status = fresh.Status
		existing.Stamp = time.Now().UTC()

		stats.Updated++
		changes = append(changes, UpdateChange{UID: existing.UID, Details: details})
	}

	return stats, changes
}

// stageKeywords maps summary substrings to stage keys, checked in order.
var stageKeywords = []struct {
	Keyword string
	Key     string
}{
	{"Kickoff", "kickoff"},
	{"Masters", "masters"},
	{"Stage 1", "stage1"},
	{"Stage 2", "stage2"},
	{"Champions", "champions"},
}

// StageFromSummary infers the stage key from an event summary, or "" when no
// stage keyword appears.
func StageFromSummary(summary string) string {
	for _, s := range stageKeywords {
		if strings.Contains(summary, s.Keyword) {
			return s.Key
		}
	}
	return ""
}

// Stages returns the sorted set of stage keys present in the calendar,
// inferred from event summaries.
func (c *Calendar) Stages() []string {
	return c.stages(func(*Event) bool { return true })
}

// UpcomingStages returns the sorted set of stage keys that still have at
// least one event ending at or after now. Events without an end time fall
// back to their start time; events with neither are ignored.
func (c *Calendar) UpcomingStages(now time.Time) []string {
	return c.stages(func(evt *Event) bool {
		end := evt.End
		if end.IsZero() {
			end = evt.Start
		}
		return !end.IsZero() && !end.Before(now)
	})
}

func (c *Calendar) stages(include func(*Event) bool) []string {
	set := make(map[string]bool)
	for _, evt := range c.Events {
		stage := StageFromSummary(evt.Summary)
		if stage == "" || !include(evt) {
			continue
		}
		set[stage] = true
	}

	stages := make([]string, 0, len(set))
	for s := range set {
		stages = append(stages, s)
	}
	sort.Strings(stages)
	return stages
}
