package cmd

import (
	"fmt"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/signalnine/cohstats/internal/config"
	"github.com/signalnine/cohstats/internal/publish"
	"github.com/signalnine/cohstats/internal/runner"
)

var (
	flagResults   string
	flagOutput    string
	flagFormat    string
	flagDelimiter string
	flagParallel  int
	flagUpload    string
)

func newCollectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Scan run directories and write the aggregated table",
		RunE:  runCollect,
	}
	cmd.Flags().StringVar(&flagResults, "results", "", "results root directory (overrides config)")
	cmd.Flags().StringVar(&flagOutput, "output", "", "output table path (overrides config)")
	cmd.Flags().StringVar(&flagFormat, "format", "csv", "output format (csv, markdown, json)")
	cmd.Flags().StringVar(&flagDelimiter, "delimiter", "", `field delimiter for csv output, e.g. ";" or "\t"`)
	cmd.Flags().IntVar(&flagParallel, "parallel", 0, "runs scanned concurrently (overrides config)")
	cmd.Flags().StringVar(&flagUpload, "upload", "", "also upload the table to gs://bucket/object")
	return cmd
}

func runCollect(cmd *cobra.Command, args []string) error {
	cfg, err := collectConfig()
	if err != nil {
		return err
	}

	col, err := runner.Collect(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	if err := col.Table.WriteFile(cfg.Output.Path, flagFormat, cfg.Delim()); err != nil {
		log.WithFields(log.Fields{"path": cfg.Output.Path, "err": err}).Error("writing table failed")
		return err
	}
	fmt.Printf("wrote %s: %d rows, %d columns\n", cfg.Output.Path, len(col.Table.Rows), len(col.Table.Columns))
	if len(col.Skipped) > 0 {
		fmt.Printf("  skipped %d run(s) without a report\n", len(col.Skipped))
	}

	if cfg.Upload.URL == "" {
		return nil
	}
	loc, err := publish.ParseURL(cfg.Upload.URL, filepath.Base(cfg.Output.Path))
	if err != nil {
		return err
	}
	gcs, err := publish.NewGCS(cmd.Context())
	if err != nil {
		return err
	}
	defer gcs.Close()
	if err := publish.UploadFile(cmd.Context(), gcs, cfg.Output.Path, loc); err != nil {
		return err
	}
	fmt.Printf("uploaded %s\n", loc)
	return nil
}

func collectConfig() (*config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if flagResults != "" {
		cfg.Results.Dir = flagResults
	}
	if flagOutput != "" {
		cfg.Output.Path = flagOutput
	}
	if flagDelimiter != "" {
		cfg.Output.Delimiter = flagDelimiter
	}
	if flagParallel > 0 {
		cfg.Parallel = flagParallel
	}
	if flagUpload != "" {
		cfg.Upload.URL = flagUpload
	}
	switch flagFormat {
	case "csv", "markdown", "json":
	default:
		return nil, fmt.Errorf("unknown format %q", flagFormat)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	return cfg, nil
}
