// Package table assembles per-run records into a rectangular table and
// serializes it.
package table

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/signalnine/cohstats/internal/runid"
)

// Record is one scanned run: its directory name, decoded identifier and
// extracted metrics.
type Record struct {
	Run     string
	ID      runid.ID
	Metrics map[string]string
}

// Table is an ordered header plus rows. Every row has len(Columns) cells.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Build lays out records against a frozen column list, in record order.
// Cells a record does not provide are the empty string.
func Build(columns []string, records []Record) *Table {
	t := &Table{
		Columns: append([]string(nil), columns...),
		Rows:    make([][]string, 0, len(records)),
	}
	for _, rec := range records {
		row := make([]string, len(columns))
		for i, col := range columns {
			row[i] = cell(rec, col)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func cell(rec Record, col string) string {
	switch col {
	case "Protocol":
		return rec.ID.Protocol
	case "Reads Per Write":
		return rec.ID.Mode
	case "RPW":
		return rec.ID.RPW
	case "Cores":
		return rec.ID.Cores
	}
	return rec.Metrics[col]
}

// Index returns the position of the named column, or -1.
func (t *Table) Index(column string) int {
	for i, c := range t.Columns {
		if c == column {
			return i
		}
	}
	return -1
}

// Write emits a header row followed by every row, delimited by delim.
func (t *Table) Write(w io.Writer, delim rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = delim
	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("writing rows: %w", err)
	}
	return nil
}

// WriteMarkdown renders the table as a GitHub-flavoured markdown table.
func (t *Table) WriteMarkdown(w io.Writer) error {
	esc := strings.NewReplacer("|", `\|`, "\n", " ")
	line := func(cells []string) string {
		out := make([]string, len(cells))
		for i, c := range cells {
			out[i] = esc.Replace(c)
		}
		return "| " + strings.Join(out, " | ") + " |"
	}
	if _, err := fmt.Fprintln(w, line(t.Columns)); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "|"+strings.Repeat("---|", len(t.Columns))); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if _, err := fmt.Fprintln(w, line(row)); err != nil {
			return err
		}
	}
	return nil
}

func (t *Table) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(t)
}

// WriteFile writes the table to path through a temporary file in the same
// directory that is renamed into place only after a complete write. On
// failure the temporary file is removed and path is left untouched.
func (t *Table) WriteFile(path, format string, delim rune) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp output: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	switch format {
	case "markdown":
		err = t.WriteMarkdown(tmp)
	case "json":
		err = t.WriteJSON(tmp)
	default:
		err = t.Write(tmp, delim)
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("syncing %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("setting mode on %s: %w", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("renaming into %s: %w", path, err)
	}
	return nil
}

// ReadFile loads a delimited table previously written by WriteFile.
func ReadFile(path string, delim rune) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening table: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.Comma = delim
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing table %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("table %s has no header", path)
	}
	return &Table{Columns: records[0], Rows: records[1:]}, nil
}
