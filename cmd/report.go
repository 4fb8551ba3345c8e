package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/signalnine/cohstats/internal/report"
	"github.com/signalnine/cohstats/internal/table"
)

func newReportCmd() *cobra.Command {
	opts := &report.Opts{}
	cmd := &cobra.Command{
		Use:   "report [table]",
		Short: "Summarize a metric from a written table",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			path := cfg.Output.Path
			if len(args) > 0 {
				path = args[0]
			}
			tbl, err := table.ReadFile(path, cfg.Delim())
			if err != nil {
				return err
			}
			return report.Generate(tbl, opts, os.Stdout)
		},
	}
	cmd.Flags().StringVar(&opts.Metric, "metric", "simTicks", "metric column to summarize")
	cmd.Flags().StringSliceVar(&opts.GroupBy, "group-by", report.DefaultGroupBy, "columns to group runs by")
	cmd.Flags().StringVar(&opts.Format, "format", "table", "output format (table, markdown, json)")
	return cmd
}
