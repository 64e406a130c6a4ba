// Package vct provides the domain types for VCT tournaments and matches
// scraped from vlr.gg. Each match derives a deterministic calendar UID from
// the site's stable numeric match id, enabling duplicate detection across
// runs. The package also owns normalization of the WIB-annotated date/time
// text found on match cards.
package vct
