package cli

import (
	"os"

	"github.com/pfrederiksen/vct-calendar/internal/logger"
	"github.com/spf13/cobra"
)

var flagVerbose bool

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vct-calendar",
		Short: "Generate and maintain a VCT match calendar from vlr.gg",
		Long: `Scrapes VCT tournament matches from vlr.gg and renders them into an
iCalendar (.ics) file. The generate command builds or extends a calendar;
the update command refreshes times, scores, and status of events already in
one without adding new entries.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagVerbose {
				logger.SetDefault(logger.New(logger.LevelDebug, os.Stderr))
			}
		},
	}

	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose diagnostic logging")

	cmd.AddCommand(newGenerateCmd())
	cmd.AddCommand(newUpdateCmd())

	return cmd
}
