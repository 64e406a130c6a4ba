// Package config holds the fixed scrape configuration for vlr.gg: the
// stage-to-category-id mapping, request headers, the mandatory post-fetch
// delay, and the region exclusion list. The configuration is an immutable
// value handed to the scraper rather than ambient global state.
package config
