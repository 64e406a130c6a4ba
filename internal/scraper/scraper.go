package scraper

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/vct-calendar/internal/config"
	"github.com/pfrederiksen/vct-calendar/internal/logger"
	"github.com/pfrederiksen/vct-calendar/internal/vct"
)

const Timeout = 30 * time.Second

// FetchError reports a non-success HTTP response. Fetches get exactly one
// attempt; a FetchError aborts the run for the invoking command.
type FetchError struct {
	URL        string
	StatusCode int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("unexpected status code %d fetching %s", e.StatusCode, e.URL)
}

// Scraper fetches and parses VCT tournament data from vlr.gg. All fetching is
// strictly sequential; a fixed delay follows every request to respect the
// site's informal rate tolerance.
type Scraper struct {
	client *http.Client
	cfg    config.Config
}

// New creates a new Scraper instance using the given configuration.
func New(cfg config.Config) *Scraper {
	return &Scraper{
		client: &http.Client{
			Timeout: Timeout,
		},
		cfg: cfg,
	}
}

// fetch performs one GET request and parses the response body. The configured
// delay is observed after the request returns regardless of outcome.
func (s *Scraper) fetch(pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequest("GET", pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", s.cfg.UserAgent)

	logger.Debug("fetching page", logger.Fields{"url": pageURL})

	resp, err := s.client.Do(req)
	time.Sleep(s.cfg.RequestDelay)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: pageURL, StatusCode: resp.StatusCode}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return doc, nil
}

// absURL resolves a scraped href against the configured base URL.
func (s *Scraper) absURL(href string) string {
	base, err := url.Parse(s.cfg.BaseURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

// ProgressFunc receives per-tournament progress during a stage scrape.
type ProgressFunc func(t vct.Tournament, matches int)

// ScrapeStage fetches the tournament directory for a stage and then every
// tournament page in first-seen order, concatenating all match records. The
// optional progress callback is invoked once per tournament with the number
// of matches extracted from it.
func (s *Scraper) ScrapeStage(stageKey string, progress ProgressFunc) ([]*vct.Match, error) {
	tournaments, err := s.Tournaments(stageKey)
	if err != nil {
		return nil, err
	}

	var all []*vct.Match
	for _, t := range tournaments {
		matches, err := s.Matches(t)
		if err != nil {
			return nil, fmt.Errorf("scraping %s: %w", t.Name, err)
		}
		if progress != nil {
			progress(t, len(matches))
		}
		all = append(all, matches...)
	}

	return all, nil
}
