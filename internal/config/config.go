package config

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// ErrUnknownStage is returned when a stage key is not in the configuration.
var ErrUnknownStage = errors.New("unknown stage")

// Stage describes one phase of the VCT season on vlr.gg.
type Stage struct {
	ID     int
	Name   string
	Active bool
}

// Config holds the fixed scrape configuration. It is built once and passed
// into the scraper; nothing in this package is mutated after Default returns.
type Config struct {
	BaseURL         string
	UserAgent       string
	RequestDelay    time.Duration
	Stages          map[string]Stage
	ExcludedRegions []string
	DefaultYear     int
}

// Default returns the configuration for the VCT 2026 season.
func Default() Config {
	return Config{
		BaseURL:      "https://www.vlr.gg",
		UserAgent:    "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		RequestDelay: time.Second,
		Stages: map[string]Stage{
			"kickoff":   {ID: 45, Name: "Kickoff", Active: true},
			"masters":   {ID: 46, Name: "Masters"},
			"stage1":    {ID: 1, Name: "Stage 1"},
			"stage2":    {ID: 16, Name: "Stage 2"},
			"champions": {ID: 47, Name: "Champions"},
		},
		ExcludedRegions: nil, // include all regions (Americas, EMEA, Pacific, China)
		DefaultYear:     2026,
	}
}

// Stage looks up a stage by key.
func (c Config) Stage(key string) (Stage, error) {
	s, ok := c.Stages[key]
	if !ok {
		return Stage{}, fmt.Errorf("%w: %s", ErrUnknownStage, key)
	}
	return s, nil
}

// StageKeys returns all configured stage keys in sorted order.
func (c Config) StageKeys() []string {
	keys := make([]string, 0, len(c.Stages))
	for k := range c.Stages {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// RegionExcluded reports whether a region is in the exclusion list.
func (c Config) RegionExcluded(region string) bool {
	for _, r := range c.ExcludedRegions {
		if r == region {
			return true
		}
	}
	return false
}
