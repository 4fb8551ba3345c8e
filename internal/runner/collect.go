package runner

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/signalnine/cohstats/internal/config"
	"github.com/signalnine/cohstats/internal/result"
	"github.com/signalnine/cohstats/internal/runid"
	"github.com/signalnine/cohstats/internal/schema"
	"github.com/signalnine/cohstats/internal/stats"
	"github.com/signalnine/cohstats/internal/table"
)

// Collection is the outcome of scanning a results tree.
type Collection struct {
	Records []table.Record
	Skipped []result.Run // run directories without a report
	Empty   []string     // runs whose report had no recognised metric
	Names   *schema.NameSet
	Table   *table.Table
}

// Collect scans every run under cfg.Results.Dir and builds the table. Runs
// are scanned first (in parallel when cfg.Parallel > 1) and the column set is
// frozen only after the last run has been observed, so a metric first seen
// in the final run still gets a column.
func Collect(ctx context.Context, cfg *config.Config) (*Collection, error) {
	runs, err := result.Discover(cfg.Results.Dir, cfg.Results.ReportFiles)
	if err != nil {
		return nil, err
	}

	var scannable []result.Run
	col := &Collection{}
	for _, r := range runs {
		if !r.HasReport() {
			log.WithFields(log.Fields{"run": r.Name, "dir": r.Dir}).Warn("no report file, skipping")
			col.Skipped = append(col.Skipped, r)
			continue
		}
		scannable = append(scannable, r)
	}

	dec := runid.NewDecoder(cfg.Modes)
	ext := stats.NewExtractor(cfg.Metrics.Fixed, cfg.Metrics.DynamicPrefix)

	col.Records = make([]table.Record, len(scannable))
	jobs := make([]Job, len(scannable))
	for i, r := range scannable {
		i, r := i, r
		jobs[i] = func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			col.Records[i] = ScanRun(r, dec, ext)
			log.WithFields(log.Fields{"run": r.Name, "metrics": len(col.Records[i].Metrics)}).Debug("scanned run")
			return nil
		}
	}
	if err := FirstError(RunPool(cfg.Parallel, jobs)); err != nil {
		return nil, fmt.Errorf("scanning runs: %w", err)
	}

	fixed := cfg.FixedColumns()
	col.Names = schema.NewNameSet(fixed)
	for _, rec := range col.Records {
		if len(rec.Metrics) == 0 {
			col.Empty = append(col.Empty, rec.Run)
		}
		col.Names.Observe(rec.Metrics)
	}
	col.Table = table.Build(schema.Columns(fixed, col.Names), col.Records)
	return col, nil
}
