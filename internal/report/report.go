package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/montanaflynn/stats"

	"github.com/signalnine/cohstats/internal/table"
)

// DefaultGroupBy groups runs by protocol and sharing mode.
var DefaultGroupBy = []string{"Protocol", "Reads Per Write"}

type Opts struct {
	Metric  string
	GroupBy []string
	Format  string // table, markdown or json
}

// GroupSummary describes one metric over the runs sharing a group key.
type GroupSummary struct {
	Group  []string `json:"group"`
	Metric string   `json:"metric"`
	Runs   int      `json:"runs"`
	Count  int      `json:"count"`
	Mean   float64  `json:"mean"`
	Median float64  `json:"median"`
	StdDev float64  `json:"stddev"`
	Min    float64  `json:"min"`
	Max    float64  `json:"max"`
}

// Generate summarizes a table and renders the result to w.
func Generate(tbl *table.Table, opts *Opts, w io.Writer) error {
	groupBy := opts.GroupBy
	if len(groupBy) == 0 {
		groupBy = DefaultGroupBy
	}
	summaries, err := Summarize(tbl, opts.Metric, groupBy)
	if err != nil {
		return err
	}

	switch opts.Format {
	case "markdown":
		return writeMarkdown(groupBy, summaries, w)
	case "json":
		return writeJSON(summaries, w)
	default:
		return writeTable(groupBy, summaries, w)
	}
}

// Summarize groups rows by the groupBy columns and computes statistics of the
// metric column. Empty and non-numeric cells are not counted; groups with no
// numeric value are left out.
func Summarize(tbl *table.Table, metric string, groupBy []string) ([]GroupSummary, error) {
	mi := tbl.Index(metric)
	if mi < 0 {
		return nil, fmt.Errorf("metric column %q not in table", metric)
	}
	gi := make([]int, len(groupBy))
	for i, g := range groupBy {
		if gi[i] = tbl.Index(g); gi[i] < 0 {
			return nil, fmt.Errorf("group column %q not in table", g)
		}
	}

	type accum struct {
		key    []string
		runs   int
		values stats.Float64Data
	}
	byKey := map[string]*accum{}

	for _, row := range tbl.Rows {
		key := make([]string, len(gi))
		for i, idx := range gi {
			key[i] = row[idx]
		}
		k := strings.Join(key, "\x00")
		a, ok := byKey[k]
		if !ok {
			a = &accum{key: key}
			byKey[k] = a
		}
		a.runs++
		v, err := strconv.ParseFloat(strings.TrimSpace(row[mi]), 64)
		if err != nil {
			continue
		}
		a.values = append(a.values, v)
	}

	var summaries []GroupSummary
	for _, a := range byKey {
		if len(a.values) == 0 {
			continue
		}
		s := GroupSummary{Group: a.key, Metric: metric, Runs: a.runs, Count: len(a.values)}
		// The inputs are non-empty, so these cannot fail.
		s.Mean, _ = a.values.Mean()
		s.Median, _ = a.values.Median()
		s.StdDev, _ = a.values.StandardDeviation()
		s.Min, _ = a.values.Min()
		s.Max, _ = a.values.Max()
		summaries = append(summaries, s)
	}
	sort.Slice(summaries, func(i, j int) bool {
		return strings.Join(summaries[i].Group, "\x00") < strings.Join(summaries[j].Group, "\x00")
	})
	return summaries, nil
}

func writeTable(groupBy []string, summaries []GroupSummary, w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	header := make([]string, len(groupBy))
	for i, g := range groupBy {
		header[i] = strings.ToUpper(g)
	}
	fmt.Fprintln(tw, strings.Join(header, "\t")+"\tRUNS\tN\tMEAN\tMEDIAN\tSTDDEV\tMIN\tMAX")
	fmt.Fprintln(tw, strings.Repeat("-", 80))
	for _, s := range summaries {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.2f\t%.2f\t%.2f\t%.0f\t%.0f\n",
			strings.Join(displayGroup(s.Group), "\t"), s.Runs, s.Count, s.Mean, s.Median, s.StdDev, s.Min, s.Max)
	}
	return tw.Flush()
}

func writeMarkdown(groupBy []string, summaries []GroupSummary, w io.Writer) error {
	fmt.Fprintln(w, "| "+strings.Join(groupBy, " | ")+" | Runs | N | Mean | Median | StdDev | Min | Max |")
	fmt.Fprintln(w, "|"+strings.Repeat("---|", len(groupBy)+7))
	for _, s := range summaries {
		fmt.Fprintf(w, "| %s | %d | %d | %.2f | %.2f | %.2f | %.0f | %.0f |\n",
			strings.Join(displayGroup(s.Group), " | "), s.Runs, s.Count, s.Mean, s.Median, s.StdDev, s.Min, s.Max)
	}
	return nil
}

func writeJSON(summaries []GroupSummary, w io.Writer) error {
	if summaries == nil {
		summaries = []GroupSummary{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(summaries)
}

func displayGroup(group []string) []string {
	out := make([]string, len(group))
	for i, g := range group {
		if g == "" {
			g = "-"
		}
		out[i] = g
	}
	return out
}
