package cmd

import (
	"fmt"
	"strconv"

	"scene-toolkit/core/timefmt"

	"github.com/spf13/cobra"
)

var patternFlag string

// timeCmd represents the time command
var timeCmd = &cobra.Command{
	Use:   "time <milliseconds>",
	Short: "Format a millisecond duration",
	Long:  `Renders a duration with a clock pattern such as HH:MM:SS, MM:SS or MM:SS.MS.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ms, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", args[0], err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), timefmt.Format(ms, patternFlag))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(timeCmd)
	timeCmd.Flags().StringVarP(&patternFlag, "pattern", "p", timefmt.HHMMSS, "Clock pattern")
}
