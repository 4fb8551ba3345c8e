package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/signalnine/cohstats/internal/runner"
)

func newValidateCmd() *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "validate [results-dir]",
		Short: "Scan a results tree without writing a table",
		Long: "Scan every run directory, report runs without a report file and runs whose report " +
			"has no recognised metric. With --strict either condition is an error.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if len(args) > 0 {
				cfg.Results.Dir = args[0]
			}
			col, err := runner.Collect(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			fmt.Printf("%d run(s) scanned, %d column(s), %d dynamic metric(s)\n",
				len(col.Records), len(col.Table.Columns), col.Names.Len())
			for _, r := range col.Skipped {
				fmt.Printf("  missing report: %s\n", r.Name)
			}
			for _, name := range col.Empty {
				fmt.Printf("  no metrics:     %s\n", name)
			}
			if strict && (len(col.Skipped) > 0 || len(col.Empty) > 0) {
				return fmt.Errorf("%d run(s) without a report, %d with no metrics", len(col.Skipped), len(col.Empty))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "fail on missing reports or reports without metrics")
	return cmd
}
