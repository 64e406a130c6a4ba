package scraper

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/vct-calendar/internal/logger"
	"github.com/pfrederiksen/vct-calendar/internal/vct"
)

// regions is the fixed set of VCT region labels, matched case-insensitively
// against tournament names. First match wins.
var regions = []string{"Americas", "EMEA", "Pacific", "China"}

// Tournaments fetches the listing page for a stage and extracts all
// tournament references, excluding configured regions. Output is in
// first-seen page order with duplicate event ids collapsed to the first
// occurrence.
func (s *Scraper) Tournaments(stageKey string) ([]vct.Tournament, error) {
	stage, err := s.cfg.Stage(stageKey)
	if err != nil {
		return nil, err
	}

	listURL := fmt.Sprintf("%s/vct/?region=all&stage=%d", s.cfg.BaseURL, stage.ID)
	doc, err := s.fetch(listURL)
	if err != nil {
		return nil, err
	}

	return s.parseTournaments(doc), nil
}

// parseTournaments extracts tournament references from a stage listing page.
func (s *Scraper) parseTournaments(doc *goquery.Document) []vct.Tournament {
	var tournaments []vct.Tournament
	seen := make(map[string]bool)

	doc.Find(`a[href^="/event/"]`).Each(func(i int, link *goquery.Selection) {
		href, _ := link.Attr("href")
		if !strings.HasPrefix(href, "/event/") {
			return
		}

		// "/event/<id>/<slug>/..." needs at least the id segment.
		parts := strings.Split(href, "/")
		if len(parts) < 3 {
			return
		}

		eventID := parts[2]
		slug := ""
		if len(parts) > 3 {
			slug = parts[3]
		}

		name := TournamentName(slug)
		if name == "" {
			return
		}

		region := inferRegion(name)
		if s.cfg.RegionExcluded(region) {
			logger.Debug("excluding tournament by region", logger.Fields{
				"name":   name,
				"region": region,
			})
			return
		}

		dates := ""
		if datesEl := link.Find(".event-item-desc-item-value, div:nth-child(3)").First(); datesEl.Length() > 0 {
			dates = strings.TrimSpace(datesEl.Text())
		}

		if seen[eventID] {
			return
		}
		seen[eventID] = true

		tournaments = append(tournaments, vct.Tournament{
			ID:     eventID,
			Name:   name,
			Slug:   slug,
			Region: region,
			Dates:  dates,
			URL:    s.absURL(href),
		})
	})

	return tournaments
}

// TournamentName derives a display name from a URL slug, fixing the casing
// of known acronyms. Returns "" for an empty slug.
func TournamentName(slug string) string {
	if slug == "" {
		return ""
	}
	words := strings.Split(slug, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	name := strings.Join(words, " ")
	name = strings.ReplaceAll(name, "Vct", "VCT")
	name = strings.ReplaceAll(name, "Emea", "EMEA")
	return name
}

// inferRegion returns the first region label found in the tournament name,
// or "" when none match.
func inferRegion(name string) string {
	lower := strings.ToLower(name)
	for _, r := range regions {
		if strings.Contains(lower, strings.ToLower(r)) {
			return r
		}
	}
	return ""
}
