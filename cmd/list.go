package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/signalnine/cohstats/internal/result"
	"github.com/signalnine/cohstats/internal/runid"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [results-dir]",
		Short: "List run directories and their decoded parameters",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			root := cfg.Results.Dir
			if len(args) > 0 {
				root = args[0]
			}
			runs, err := result.Discover(root, cfg.Results.ReportFiles)
			if err != nil {
				return err
			}
			dec := runid.NewDecoder(cfg.Modes)
			tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "RUN\tPROTOCOL\tMODE\tRPW\tCORES\tREPORT")
			for _, r := range runs {
				id := dec.Decode(r.Name)
				report := "-"
				if r.HasReport() {
					report = r.Report
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
					r.Name, dash(id.Protocol), dash(id.Mode), dash(id.RPW), dash(id.Cores), report)
			}
			return tw.Flush()
		},
	}
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
