// Package scraper provides HTTP fetching and HTML parsing for VCT tournament
// data on vlr.gg.
//
// The scraper fetches one page at a time with a mandatory delay after every
// request and extracts tournament references from stage listing pages and
// match records from tournament pages. vlr.gg does not keep its markup
// stable, so anchor location, team extraction, and time-text extraction are
// each implemented as an ordered cascade of strategies where the first one
// producing a result wins.
package scraper
