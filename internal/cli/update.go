package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pfrederiksen/vct-calendar/internal/calendar"
	"github.com/pfrederiksen/vct-calendar/internal/config"
	"github.com/pfrederiksen/vct-calendar/internal/vct"
	"github.com/spf13/cobra"
)

var (
	flagInput        string
	flagUpdateOutput string
	flagStages       []string
	flagUpcomingOnly bool
)

func newUpdateCmd() *cobra.Command {
	cfg := config.Default()

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Refresh events already present in a calendar file",
		Long: `Re-scrapes the stages present in an existing calendar and rewrites the
summary, time, and status of events whose UID matches a scraped match. New
matches are never added; use generate --append for that.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(cfg)
		},
	}

	cmd.Flags().StringVar(&flagInput, "input", "vct-2026.ics", "Input ICS file to update")
	cmd.Flags().StringVar(&flagUpdateOutput, "output", "", "Output file path (default: same as input)")
	cmd.Flags().StringArrayVar(&flagStages, "stage", nil,
		"Stage(s) to update; may be repeated. Defaults to auto-detecting stages from the calendar")
	cmd.Flags().BoolVar(&flagUpcomingOnly, "upcoming-only", false,
		"When auto-detecting, only consider stages that still have upcoming events")

	return cmd
}

func runUpdate(cfg config.Config) error {
	output := flagUpdateOutput
	if output == "" {
		output = flagInput
	}

	if _, err := os.Stat(flagInput); err != nil {
		return fmt.Errorf("%s not found, run generate first", flagInput)
	}

	fmt.Printf("Loading existing calendar from %s...\n", flagInput)
	cal, err := calendar.ReadFile(flagInput)
	if err != nil {
		return err
	}
	fmt.Printf("Found %d existing events\n", len(cal.Events))

	stages := flagStages
	if len(stages) == 0 {
		if flagUpcomingOnly {
			stages = cal.UpcomingStages(time.Now().UTC())
		} else {
			stages = cal.Stages()
		}
		fmt.Printf("Auto-detected stages: %s\n", strings.Join(stages, ", "))
	}
	for _, stage := range stages {
		if _, err := cfg.Stage(stage); err != nil {
			return err
		}
	}

	fmt.Printf("\nScraping latest data from vlr.gg...\n")
	var matches []*vct.Match
	for _, stage := range stages {
		fmt.Printf("  Fetching %s...\n", stage)
		stageMatches, err := scrapeStage(cfg, stage)
		if err != nil {
			return err
		}
		matches = append(matches, stageMatches...)
	}
	fmt.Printf("Found %d total matches from vlr.gg\n", len(matches))

	stats, changes := cal.Update(matches)
	for _, change := range changes {
		fmt.Printf("  Updated %s: %s\n", change.UID, strings.Join(change.Details, ", "))
	}

	if err := cal.WriteFile(output); err != nil {
		return err
	}

	fmt.Printf("\nUpdate complete:\n")
	fmt.Printf("  - Updated: %d\n", stats.Updated)
	fmt.Printf("  - Unchanged: %d\n", stats.Unchanged)
	fmt.Printf("  - Skipped (new events): %d\n", stats.SkippedNew)
	fmt.Printf("  - Skipped (no time): %d\n", stats.SkippedNoTime)
	fmt.Printf("\nSaved to %s\n", output)

	return nil
}
