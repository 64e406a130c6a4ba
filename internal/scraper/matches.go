package scraper

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/vct-calendar/internal/logger"
	"github.com/pfrederiksen/vct-calendar/internal/vct"
	"golang.org/x/net/html"
)

// bracketRounds maps vlr.gg match-URL suffix codes to phase labels. Checked
// in order against the lowercased href.
var bracketRounds = []struct {
	Suffix string
	Phase  string
}{
	{"-ur1", "Upper Round 1"},
	{"-ur2", "Upper Round 2"},
	{"-ur3", "Upper Round 3"},
	{"-ubf", "Upper Final"},
	{"-mr1", "Middle Round 1"},
	{"-mr2", "Middle Round 2"},
	{"-mr3", "Middle Round 3"},
	{"-mr4", "Middle Round 4"},
	{"-mbf", "Middle Final"},
	{"-lr1", "Lower Round 1"},
	{"-lr2", "Lower Round 2"},
	{"-lr3", "Lower Round 3"},
	{"-lr4", "Lower Round 4"},
	{"-lr5", "Lower Round 5"},
	{"-lbf", "Lower Final"},
	{"-gf", "Grand Final"},
}

var (
	matchIDRe      = regexp.MustCompile(`/(\d{5,7})/`)
	matchPathRe    = regexp.MustCompile(`^/\d{5,7}/`)
	phaseKeywordRe = regexp.MustCompile(`(?i)(Upper|Lower|Middle|Round|Final)`)

	// Time-of-day text with an explicit WIB marker: "11:00 pm WIB, Jan 20".
	wibTimeRe = regexp.MustCompile(`(?i)(\d{1,2}:\d{2}\s*[ap]m\s*WIB,?\s*\w+\s*\d{1,2})`)
	// Compact event-card text: "Mar 1 ... 12:00 am".
	compactTimeRe = regexp.MustCompile(`(?i)\b((?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\s+\d{1,2})\b.*?\b(\d{1,2}:\d{2}\s*[ap]m)\b`)

	// Token filters for the generic team-name fallback.
	timeOfDayRe     = regexp.MustCompile(`(?i)^[\d:\s]+[ap]m$`)
	monthPrefixRe   = regexp.MustCompile(`^(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\b`)
	roundKeywordRe  = regexp.MustCompile(`(?i)^(Round|Upper|Lower|Middle|Grand|Final|Bo\d+)$`)
	trailingScoreRe = regexp.MustCompile(`^(.*\S)\s(\d)$`)
	digitsRe        = regexp.MustCompile(`^\d+$`)
)

// roundSuffixSelector matches anchors whose href ends in any bracket-round
// suffix code.
var roundSuffixSelector = func() string {
	parts := make([]string, 0, len(bracketRounds))
	for _, r := range bracketRounds {
		parts = append(parts, `a[href*="/"][href$="`+r.Suffix+`"]`)
	}
	return strings.Join(parts, ", ")
}()

// anchorStrategies locates candidate match anchors on a tournament page.
// vlr.gg has shipped at least two markup generations for the same logical
// content; the strategies are tried in order and the first one yielding any
// anchors wins, so either generation parses without per-stage configuration.
var anchorStrategies = []struct {
	Name string
	Find func(doc *goquery.Document) *goquery.Selection
}{
	{"round-suffix", func(doc *goquery.Document) *goquery.Selection {
		return doc.Find(roundSuffixSelector)
	}},
	{"match-class", func(doc *goquery.Document) *goquery.Selection {
		return doc.Find(`a[href^="/"][class*="match"]`)
	}},
	{"bracket-container", func(doc *goquery.Document) *goquery.Selection {
		container := doc.Find(".event-bracket, .bracket").First()
		if container.Length() == 0 {
			return container
		}
		return container.Find("a[href]")
	}},
	{"numeric-path", func(doc *goquery.Document) *goquery.Selection {
		return doc.Find(`a[href^="/"]`).FilterFunction(func(i int, sel *goquery.Selection) bool {
			href, _ := sel.Attr("href")
			return matchPathRe.MatchString(href)
		})
	}},
}

// Matches fetches a tournament page and extracts all match records from it.
func (s *Scraper) Matches(t vct.Tournament) ([]*vct.Match, error) {
	doc, err := s.fetch(t.URL)
	if err != nil {
		return nil, err
	}
	return s.parseMatches(doc, t), nil
}

// parseMatches extracts match records from a tournament page. Anchors without
// a numeric match id are skipped; every other anchor yields a record, with
// unresolved fields taking their documented defaults. Duplicate match ids
// collapse to the first occurrence.
func (s *Scraper) parseMatches(doc *goquery.Document, t vct.Tournament) []*vct.Match {
	var links *goquery.Selection
	for _, strategy := range anchorStrategies {
		found := strategy.Find(doc)
		if found != nil && found.Length() > 0 {
			logger.Debug("match anchors located", logger.Fields{
				"tournament": t.Name,
				"strategy":   strategy.Name,
				"count":      found.Length(),
			})
			links = found
			break
		}
	}
	if links == nil {
		return nil
	}

	var matches []*vct.Match
	seen := make(map[string]bool)

	// currentPhase carries the most recent bracket heading across anchors so
	// anchors without a URL suffix inherit the phase of their section.
	currentPhase := ""

	links.Each(func(i int, link *goquery.Selection) {
		href, _ := link.Attr("href")

		idMatch := matchIDRe.FindStringSubmatch(href)
		if idMatch == nil {
			return
		}
		matchID := idMatch[1]

		if heading := precedingPhaseHeading(link); heading != "" {
			currentPhase = heading
		}

		phase := phaseFromURL(href)
		if phase == "" {
			phase = currentPhase
		}
		if phase == "" {
			phase = "Match"
		}

		team1, team2, score1, score2 := extractTeams(link)

		rawTime := extractTimeText(flattenText(link))
		start := vct.ParseWIBTime(rawTime, s.cfg.DefaultYear)

		if seen[matchID] {
			return
		}
		seen[matchID] = true

		matches = append(matches, &vct.Match{
			ID:        matchID,
			EventName: t.Name,
			Phase:     phase,
			Team1:     team1,
			Team2:     team2,
			Score1:    score1,
			Score2:    score2,
			StartWIB:  start,
			RawTime:   rawTime,
			URL:       s.absURL(href),
		})
	})

	return matches
}

// phaseFromURL maps a bracket-round URL suffix to its phase label, or ""
// when the href carries no known suffix.
func phaseFromURL(href string) string {
	lower := strings.ToLower(href)
	for _, r := range bracketRounds {
		if strings.Contains(lower, r.Suffix) {
			return r.Phase
		}
	}
	return ""
}

// precedingPhaseHeading looks for a short heading with bracket-phase keywords
// preceding the anchor's round container, walking outward through enclosing
// elements. Returns "" when the anchor is not inside a round container or no
// heading is found.
func precedingPhaseHeading(link *goquery.Selection) string {
	container := link.Closest(`[class*="round"]`)
	if container.Length() == 0 {
		return ""
	}

	for node := container.Nodes[0]; node != nil; node = node.Parent {
		// Nearest preceding sibling first.
		for prev := node.PrevSibling; prev != nil; prev = prev.PrevSibling {
			text := strings.Join(nodeTextParts(prev), " ")
			if text != "" && len(text) <= 40 && phaseKeywordRe.MatchString(text) {
				return text
			}
		}
		if node.Type == html.ElementNode && node.Data == "body" {
			break
		}
	}
	return ""
}

// extractTeams reads team names and optional scores from a match anchor,
// trying the bracket-card format, then the sidebar list format, then a
// generic text-split fallback. Unresolved names default to TBD; a single
// resolved name assigns to team one only.
func extractTeams(link *goquery.Selection) (team1, team2, score1, score2 string) {
	// Main bracket card format (e.g. Masters event page).
	var bracketNames []string
	link.Find(".team-name div").Each(func(i int, el *goquery.Selection) {
		if text := strings.TrimSpace(el.Text()); text != "" {
			bracketNames = append(bracketNames, text)
		}
	})
	if len(bracketNames) >= 2 {
		team1, team2 = bracketNames[0], bracketNames[1]
		if left := strings.TrimSpace(link.Find(".score-left").First().Text()); digitsRe.MatchString(left) {
			score1 = left
		}
		if right := strings.TrimSpace(link.Find(".score-right").First().Text()); digitsRe.MatchString(right) {
			score2 = right
		}
		return team1, team2, score1, score2
	}

	// Sidebar/upcoming list format. No scores in this markup.
	var sidebarNames []string
	link.Find(".event-sidebar-matches-team .name span").Each(func(i int, el *goquery.Selection) {
		if text := strings.TrimSpace(el.Text()); text != "" {
			sidebarNames = append(sidebarNames, text)
		}
	})
	if len(sidebarNames) >= 2 {
		return sidebarNames[0], sidebarNames[1], "", ""
	}

	return extractTeamsGeneric(textParts(link))
}

// extractTeamsGeneric splits an anchor's flattened text into tokens and takes
// the first two that plausibly name teams, discarding times of day, month
// prefixes, round-type keywords, and placeholder markers. A token with a
// trailing single digit ("LOUD 2") is treated as a team name plus its score.
func extractTeamsGeneric(parts []string) (team1, team2, score1, score2 string) {
	team1, team2 = vct.TBD, vct.TBD

	var candidates []string
	for _, part := range parts {
		if timeOfDayRe.MatchString(part) {
			continue
		}
		if monthPrefixRe.MatchString(part) {
			continue
		}
		if roundKeywordRe.MatchString(part) {
			continue
		}
		if part == "-" || part == "WIB" {
			continue
		}
		if len(part) > 1 && !digitsRe.MatchString(part) {
			candidates = append(candidates, part)
		}
	}

	pick := func(token string) (string, string) {
		if m := trailingScoreRe.FindStringSubmatch(token); m != nil {
			return m[1], m[2]
		}
		return token, ""
	}

	if len(candidates) >= 1 {
		team1, score1 = pick(candidates[0])
	}
	if len(candidates) >= 2 {
		team2, score2 = pick(candidates[1])
	}
	return team1, team2, score1, score2
}

// extractTimeText pulls the date/time substring out of a match card's text.
// The explicit WIB-annotated form wins; otherwise the compact event-card form
// is reordered to match it ("Mar 1 ... 12:00 am" -> "12:00 am Mar 1").
func extractTimeText(text string) string {
	if text == "" {
		return ""
	}

	if m := wibTimeRe.FindStringSubmatch(text); m != nil {
		return m[1]
	}

	compact := strings.Join(strings.Fields(text), " ")
	if m := compactTimeRe.FindStringSubmatch(compact); m != nil {
		return m[2] + " " + m[1]
	}

	return ""
}

// textParts collects the trimmed, non-empty text nodes under a selection in
// document order.
func textParts(sel *goquery.Selection) []string {
	var parts []string
	for _, n := range sel.Nodes {
		parts = append(parts, nodeTextParts(n)...)
	}
	return parts
}

// nodeTextParts collects the trimmed, non-empty text nodes under one node.
func nodeTextParts(n *html.Node) []string {
	var parts []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				parts = append(parts, text)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return parts
}

// flattenText joins a selection's text nodes with single spaces.
func flattenText(sel *goquery.Selection) string {
	return strings.Join(textParts(sel), " ")
}
