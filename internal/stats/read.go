package stats

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	log "github.com/sirupsen/logrus"
)

// ReadReport returns the text of a report file, decompressing .gz and .zst
// files by extension.
func ReadReport(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening report: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	switch filepath.Ext(path) {
	case ".gz":
		gz, err := gzip.NewReader(f)
		if err != nil {
			return "", fmt.Errorf("decoding gzip report: %w", err)
		}
		defer gz.Close()
		r = gz
	case ".zst":
		dec, err := zstd.NewReader(f)
		if err != nil {
			return "", fmt.Errorf("decoding zstd report: %w", err)
		}
		defer dec.Close()
		r = dec
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading report: %w", err)
	}
	return string(data), nil
}

// ExtractFile reads and scans one report. An unreadable report is logged and
// yields an empty mapping so one bad run does not stop the rest.
func (e *Extractor) ExtractFile(path string) map[string]string {
	text, err := ReadReport(path)
	if err != nil {
		log.WithFields(log.Fields{"path": path, "err": err}).Warn("unreadable report, treating as empty")
		return map[string]string{}
	}
	return e.Extract(text)
}
