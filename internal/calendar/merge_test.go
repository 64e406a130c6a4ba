package calendar

import (
	"bytes"
	"testing"
	"time"

	"github.com/pfrederiksen/vct-calendar/internal/vct"
)

func testMatches() []*vct.Match {
	scheduled := testMatch()

	unscheduled := testMatch()
	unscheduled.ID = "123458"
	unscheduled.StartWIB = time.Time{}
	unscheduled.Score1, unscheduled.Score2 = "", ""

	upcoming := testMatch()
	upcoming.ID = "123459"
	upcoming.EventName = "VCT 2026 Champions"
	upcoming.Score1, upcoming.Score2 = "", ""
	upcoming.StartWIB = time.Date(2026, time.September, 10, 20, 0, 0, 0, time.UTC)

	return []*vct.Match{scheduled, unscheduled, upcoming}
}

// Generating then re-reading preserves exactly the UIDs of matches with a
// resolvable start time.
func TestGenerateDropsUnscheduled(t *testing.T) {
	matches := testMatches()

	cal, added := Generate(matches)
	if added != 2 {
		t.Fatalf("expected 2 events added, got %d", added)
	}

	parsed, err := Parse(bytes.NewReader(cal.Bytes()))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	uids := parsed.UIDs()
	if !uids["match-123456@vlr.gg"] || !uids["match-123459@vlr.gg"] {
		t.Errorf("expected scheduled matches in calendar, got %v", uids)
	}
	if uids["match-123458@vlr.gg"] {
		t.Error("match without a start time should not be rendered")
	}
}

func TestAppendIdempotent(t *testing.T) {
	matches := testMatches()

	cal, _ := Generate(matches)
	once := string(cal.Bytes())

	if added := cal.Append(matches); added != 0 {
		t.Errorf("second append added %d events, expected 0", added)
	}
	twice := string(cal.Bytes())

	if once != twice {
		t.Error("appending the same match list twice should not change the document")
	}
}

func TestAppendOnlyNewUIDs(t *testing.T) {
	matches := testMatches()
	cal, _ := Generate(matches[:1])

	extra := testMatch()
	extra.ID = "777777"
	added := cal.Append([]*vct.Match{matches[0], extra})

	if added != 1 {
		t.Fatalf("expected 1 event added, got %d", added)
	}
	if !cal.UIDs()["match-777777@vlr.gg"] {
		t.Error("new match should have been appended")
	}
	if len(cal.Events) != 2 {
		t.Errorf("expected 2 events, got %d", len(cal.Events))
	}
}

func TestUpdateRewritesFields(t *testing.T) {
	matches := testMatches()
	cal, _ := Generate(matches)

	changed := testMatch()
	changed.Team2 = "Sentinels"
	changed.StartWIB = changed.StartWIB.Add(2 * time.Hour)

	stats, changes := cal.Update([]*vct.Match{changed})

	if stats.Updated != 1 {
		t.Fatalf("expected 1 update, got %+v", stats)
	}
	if len(changes) != 1 || changes[0].UID != "match-123456@vlr.gg" {
		t.Fatalf("unexpected change list: %+v", changes)
	}

	evt := cal.Find("match-123456@vlr.gg")
	if evt == nil {
		t.Fatal("event disappeared")
	}
	if evt.Summary != changed.Summary() {
		t.Errorf("summary = %q, expected %q", evt.Summary, changed.Summary())
	}
	wantStart := changed.StartUTC()
	if !evt.Start.Equal(wantStart) {
		t.Errorf("start = %v, expected %v", evt.Start, wantStart)
	}
	if !evt.End.Equal(wantStart.Add(EventDuration)) {
		t.Errorf("end = %v, expected start plus fixed duration", evt.End)
	}
}

// Update never adds events and never touches UIDs absent from the incoming
// match list.
func TestUpdateNeverChangesUIDSet(t *testing.T) {
	matches := testMatches()
	cal, _ := Generate(matches)
	before := cal.UIDs()

	novel := testMatch()
	novel.ID = "888888"

	stats, _ := cal.Update([]*vct.Match{novel})
	if stats.SkippedNew != 1 {
		t.Errorf("expected novel match to be skipped, got %+v", stats)
	}

	after := cal.UIDs()
	if len(after) != len(before) {
		t.Fatalf("UID set changed: before %v, after %v", before, after)
	}
	for uid := range before {
		if !after[uid] {
			t.Errorf("UID %s missing after update", uid)
		}
	}
}

func TestUpdateSkipsWithoutStart(t *testing.T) {
	cal, _ := Generate(testMatches())

	timeless := testMatch()
	timeless.StartWIB = time.Time{}

	stats, _ := cal.Update([]*vct.Match{timeless})
	if stats.SkippedNoTime != 1 {
		t.Errorf("expected match without start to be skipped, got %+v", stats)
	}

	evt := cal.Find("match-123456@vlr.gg")
	if evt.Start.IsZero() {
		t.Error("existing event start should be untouched")
	}
}

func TestUpdateUnchanged(t *testing.T) {
	matches := testMatches()
	cal, _ := Generate(matches)

	stats, changes := cal.Update(matches[:1])
	if stats.Unchanged != 1 || stats.Updated != 0 {
		t.Errorf("expected unchanged, got %+v", stats)
	}
	if len(changes) != 0 {
		t.Errorf("expected no change records, got %+v", changes)
	}
}

func TestStageFromSummary(t *testing.T) {
	tests := []struct {
		summary  string
		expected string
	}{
		{"VCT 2026 Americas Kickoff - LOUD vs NRG (Grand Final)", "kickoff"},
		{"Masters Jakarta - DRX vs T1 (Upper Round 1)", "masters"},
		{"VCT 2026 Stage 1 EMEA - FNC vs TH (Match)", "stage1"},
		{"VCT 2026 Stage 2 Pacific - PRX vs T1 (Match)", "stage2"},
		{"VCT 2026 Champions - EDG vs LOUD (Grand Final)", "champions"},
		{"Some unrelated event", ""},
	}

	for _, tt := range tests {
		t.Run(tt.summary, func(t *testing.T) {
			if got := StageFromSummary(tt.summary); got != tt.expected {
				t.Errorf("StageFromSummary(%q) = %q, expected %q", tt.summary, got, tt.expected)
			}
		})
	}
}

func TestStages(t *testing.T) {
	cal, _ := Generate(testMatches())

	stages := cal.Stages()
	if len(stages) != 2 || stages[0] != "champions" || stages[1] != "kickoff" {
		t.Errorf("stages = %v, expected [champions kickoff]", stages)
	}
}

func TestUpcomingStages(t *testing.T) {
	cal, _ := Generate(testMatches())

	// Between the kickoff match (Jan) and the champions match (Sep).
	now := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	stages := cal.UpcomingStages(now)
	if len(stages) != 1 || stages[0] != "champions" {
		t.Errorf("upcoming stages = %v, expected [champions]", stages)
	}

	// Before everything both stages are upcoming.
	early := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	stages = cal.UpcomingStages(early)
	if len(stages) != 2 {
		t.Errorf("upcoming stages = %v, expected both", stages)
	}
}
