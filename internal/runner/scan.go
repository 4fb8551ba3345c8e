package runner

import (
	"github.com/signalnine/cohstats/internal/result"
	"github.com/signalnine/cohstats/internal/runid"
	"github.com/signalnine/cohstats/internal/stats"
	"github.com/signalnine/cohstats/internal/table"
)

// ScanRun decodes the run's directory name and extracts its report. It
// touches no shared state, so runs may be scanned concurrently.
func ScanRun(run result.Run, dec *runid.Decoder, ext *stats.Extractor) table.Record {
	return table.Record{
		Run:     run.Name,
		ID:      dec.Decode(run.Name),
		Metrics: ext.ExtractFile(run.Report),
	}
}
