package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pfrederiksen/vct-calendar/internal/calendar"
	"github.com/pfrederiksen/vct-calendar/internal/config"
	"github.com/pfrederiksen/vct-calendar/internal/scraper"
	"github.com/pfrederiksen/vct-calendar/internal/vct"
	"github.com/spf13/cobra"
)

var (
	flagStage     string
	flagOutput    string
	flagAppend    bool
	flagSaveStage bool
)

func newGenerateCmd() *cobra.Command {
	cfg := config.Default()

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Scrape a stage and generate (or extend) the calendar file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cfg)
		},
	}

	cmd.Flags().StringVar(&flagStage, "stage", "kickoff",
		fmt.Sprintf("Stage to generate calendar for (one of: %s)", strings.Join(cfg.StageKeys(), ", ")))
	cmd.Flags().StringVar(&flagOutput, "output", "vct-2026.ics", "Output file path")
	cmd.Flags().BoolVar(&flagAppend, "append", false, "Append new events to an existing calendar instead of overwriting")
	cmd.Flags().BoolVar(&flagSaveStage, "save-stage", false, "Also save an individual stage calendar to the calendars/ folder")

	return cmd
}

func runGenerate(cfg config.Config) error {
	if _, err := cfg.Stage(flagStage); err != nil {
		return err
	}

	fmt.Printf("Scraping VCT %d %s matches from vlr.gg...\n", cfg.DefaultYear, flagStage)

	matches, err := scrapeStage(cfg, flagStage)
	if err != nil {
		return err
	}

	fmt.Printf("\nTotal matches found: %d\n", len(matches))
	printMatchPreview(matches, 5)

	if flagSaveStage {
		if err := os.MkdirAll("calendars", 0o755); err != nil {
			return fmt.Errorf("creating calendars directory: %w", err)
		}
		stagePath := filepath.Join("calendars", flagStage+".ics")
		stageCal, added := calendar.Generate(matches)
		if err := stageCal.WriteFile(stagePath); err != nil {
			return err
		}
		fmt.Printf("\nSaved stage calendar %s with %d events\n", stagePath, added)
	}

	fmt.Printf("\nGenerating ICS calendar...\n")
	if flagAppend {
		if _, err := os.Stat(flagOutput); err == nil {
			return appendToCalendar(matches, flagOutput)
		}
	}

	cal, added := calendar.Generate(matches)
	if err := cal.WriteFile(flagOutput); err != nil {
		return err
	}
	fmt.Printf("Created %s with %d events\n", flagOutput, added)

	return nil
}

func appendToCalendar(matches []*vct.Match, path string) error {
	cal, err := calendar.ReadFile(path)
	if err != nil {
		return err
	}

	added := cal.Append(matches)
	if err := cal.WriteFile(path); err != nil {
		return err
	}
	fmt.Printf("Appended %d new events to %s\n", added, path)

	return nil
}

// scrapeStage runs a full stage scrape with per-tournament progress output.
func scrapeStage(cfg config.Config, stage string) ([]*vct.Match, error) {
	s := scraper.New(cfg)
	return s.ScrapeStage(stage, func(t vct.Tournament, matches int) {
		fmt.Printf("  Scraped %s: %d matches\n", t.Name, matches)
	})
}

// printMatchPreview prints up to limit match summaries and a count of the
// remainder.
func printMatchPreview(matches []*vct.Match, limit int) {
	for i, m := range matches {
		if i == limit {
			fmt.Printf("  ... and %d more\n", len(matches)-limit)
			return
		}
		when := m.RawTime
		if when == "" {
			when = "time TBD"
		}
		fmt.Printf("  - %s @ %s\n", m.Summary(), when)
	}
}
