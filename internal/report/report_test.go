package report_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signalnine/cohstats/internal/report"
	"github.com/signalnine/cohstats/internal/table"
)

func sampleTable() *table.Table {
	return &table.Table{
		Columns: []string{"Protocol", "Reads Per Write", "RPW", "Cores", "simTicks", "Data"},
		Rows: [][]string{
			{"MESI", "Max Sharing", "1", "4", "100", "10"},
			{"MESI", "Max Sharing", "2", "4", "300", ""},
			{"MESI", "No Sharing", "1", "4", "50", "5"},
			{"MOESI", "Max Sharing", "1", "4", "", "7"},
			{"MOESI", "Max Sharing", "2", "4", "n/a", "8"},
		},
	}
}

func TestSummarize(t *testing.T) {
	got, err := report.Summarize(sampleTable(), "simTicks", report.DefaultGroupBy)
	require.NoError(t, err)
	require.Len(t, got, 2, "MOESI has no numeric simTicks and is left out")

	assert.Equal(t, []string{"MESI", "Max Sharing"}, got[0].Group)
	assert.Equal(t, 2, got[0].Runs)
	assert.Equal(t, 2, got[0].Count)
	assert.InDelta(t, 200.0, got[0].Mean, 1e-9)
	assert.InDelta(t, 200.0, got[0].Median, 1e-9)
	assert.InDelta(t, 100.0, got[0].StdDev, 1e-9)
	assert.Equal(t, 100.0, got[0].Min)
	assert.Equal(t, 300.0, got[0].Max)

	assert.Equal(t, []string{"MESI", "No Sharing"}, got[1].Group)
	assert.Equal(t, 1, got[1].Count)
}

func TestSummarizeCustomGroup(t *testing.T) {
	got, err := report.Summarize(sampleTable(), "Data", []string{"RPW"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, []string{"1"}, got[0].Group)
	assert.Equal(t, 3, got[0].Count)
	assert.InDelta(t, 22.0/3.0, got[0].Mean, 1e-9)
	assert.Equal(t, []string{"2"}, got[1].Group)
	assert.Equal(t, 2, got[1].Runs)
	assert.Equal(t, 1, got[1].Count)
}

func TestSummarizeUnknownColumns(t *testing.T) {
	_, err := report.Summarize(sampleTable(), "Nope", report.DefaultGroupBy)
	assert.Error(t, err)
	_, err = report.Summarize(sampleTable(), "simTicks", []string{"Nope"})
	assert.Error(t, err)
}

func TestGenerateTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.Generate(sampleTable(), &report.Opts{Metric: "simTicks"}, &buf))
	out := buf.String()
	assert.Contains(t, out, "PROTOCOL")
	assert.Contains(t, out, "MESI")
	assert.Contains(t, out, "No Sharing")
	assert.NotContains(t, out, "MOESI")
}

func TestGenerateMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.Generate(sampleTable(), &report.Opts{Metric: "Data", Format: "markdown"}, &buf))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "| Protocol | Reads Per Write | Runs | N | Mean | Median | StdDev | Min | Max |", lines[0])
}

func TestGenerateJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.Generate(sampleTable(), &report.Opts{Metric: "Data", Format: "json"}, &buf))
	var got []report.GroupSummary
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 3)
	assert.Equal(t, "Data", got[0].Metric)
}

func TestGenerateJSONEmpty(t *testing.T) {
	tbl := &table.Table{Columns: []string{"Protocol", "Reads Per Write", "simTicks"}}
	var buf bytes.Buffer
	require.NoError(t, report.Generate(tbl, &report.Opts{Metric: "simTicks", Format: "json"}, &buf))
	assert.Equal(t, "[]\n", buf.String())
}
