package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/signalnine/cohstats/internal/chart"
	"github.com/signalnine/cohstats/internal/table"
)

func newChartCmd() *cobra.Command {
	var metric, out string
	cmd := &cobra.Command{
		Use:   "chart [table]",
		Short: "Render a bar chart of one metric per run",
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
			if out == "" {
				out = metric + ".png"
			}
			if err := chart.Render(tbl, metric, out); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVar(&metric, "metric", "simTicks", "metric column to plot")
	cmd.Flags().StringVar(&out, "out", "", "output image path (default <metric>.png)")
	return cmd
}
