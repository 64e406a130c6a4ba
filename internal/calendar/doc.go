// Package calendar reads and writes iCalendar (.ics) documents for VCT
// matches. Events are keyed by the match UID, which makes three merge modes
// possible: generating a fresh document, appending only events whose UID is
// not already present, and updating fields of events whose UID already
// exists. Properties the tool does not manage are preserved across a
// read-modify-write cycle.
package calendar
