// Package cli implements the command-line interface for vct-calendar.
//
// The cli package provides the Cobra-based CLI with two subcommands:
// generate, which scrapes a stage and writes or extends an ICS file, and
// update, which refreshes events already present in one. It coordinates the
// scraper, config, and calendar packages and prints progress and summary
// counts to stdout.
package cli
