package table_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signalnine/cohstats/internal/runid"
	"github.com/signalnine/cohstats/internal/table"
)

var columns = []string{
	"Protocol", "Reads Per Write", "RPW", "Cores",
	"simTicks", "L1 Cache Hits", "L1 Cache Misses",
	"Ack", "Data",
}

func records() []table.Record {
	return []table.Record{
		{
			Run:     "MESI_8c_hot_rpw4",
			ID:      runid.ID{Protocol: "MESI", Cores: "8", Mode: "Max Sharing", RPW: "4"},
			Metrics: map[string]string{"simTicks": "100", "Data": "64"},
		},
		{
			Run:     "MOESI_4c_padded",
			ID:      runid.ID{Protocol: "MOESI", Cores: "4", Mode: "No Sharing"},
			Metrics: map[string]string{"simTicks": "200", "L1 Cache Misses": "7", "Ack": "8"},
		},
	}
}

func TestBuild(t *testing.T) {
	tbl := table.Build(columns, records())

	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, []string{"MESI", "Max Sharing", "4", "8", "100", "", "", "", "64"}, tbl.Rows[0])
	assert.Equal(t, []string{"MOESI", "No Sharing", "", "4", "200", "", "7", "8", ""}, tbl.Rows[1])
	for i, row := range tbl.Rows {
		assert.Len(t, row, len(tbl.Columns), "row %d", i)
	}
}

func TestBuildCopiesColumns(t *testing.T) {
	cols := append([]string(nil), columns...)
	tbl := table.Build(cols, nil)
	cols[0] = "changed"
	assert.Equal(t, "Protocol", tbl.Columns[0])
	assert.Empty(t, tbl.Rows)
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, table.Build(columns, records()).Write(&buf, ','))

	want := strings.Join([]string{
		"Protocol,Reads Per Write,RPW,Cores,simTicks,L1 Cache Hits,L1 Cache Misses,Ack,Data",
		"MESI,Max Sharing,4,8,100,,,,64",
		"MOESI,No Sharing,,4,200,,7,8,",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestWriteTab(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, table.Build(columns, records()[:1]).Write(&buf, '\t'))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "MESI\tMax Sharing\t4\t8\t100\t\t\t\t64", lines[1])
}

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, table.Build(columns, records()).WriteMarkdown(&buf))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "| Protocol | Reads Per Write |"))
	assert.Equal(t, "|"+strings.Repeat("---|", len(columns)), lines[1])
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, table.Build(columns, records()).WriteJSON(&buf))
	var got table.Table
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, columns, got.Columns)
	assert.Equal(t, "MOESI", got.Rows[1][0])
}

func TestWriteFileAndRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.csv")
	tbl := table.Build(columns, records())
	require.NoError(t, tbl.WriteFile(path, "csv", ','))

	got, err := table.ReadFile(path, ',')
	require.NoError(t, err)
	assert.Equal(t, tbl, got)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestWriteFileReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.csv")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))
	require.NoError(t, table.Build(columns, records()).WriteFile(path, "csv", ','))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Protocol,"))
}

func TestWriteFileMissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no", "such", "dir", "stats.csv")
	err := table.Build(columns, records()).WriteFile(path, "csv", ',')
	assert.Error(t, err)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestWriteFileLeavesNoTempOnFailure(t *testing.T) {
	dir := t.TempDir()
	// A directory at the destination makes the final rename fail.
	dest := filepath.Join(dir, "stats.csv")
	require.NoError(t, os.Mkdir(dest, 0o755))

	err := table.Build(columns, records()).WriteFile(dest, "csv", ',')
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "stats.csv", entries[0].Name())
	assert.True(t, entries[0].IsDir())
}

func TestReadFileErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := table.ReadFile(filepath.Join(dir, "missing.csv"), ',')
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty.csv")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	_, err = table.ReadFile(empty, ',')
	assert.Error(t, err)

	ragged := filepath.Join(dir, "ragged.csv")
	require.NoError(t, os.WriteFile(ragged, []byte("a,b\n1\n"), 0o644))
	_, err = table.ReadFile(ragged, ',')
	assert.Error(t, err)
}

func TestIndex(t *testing.T) {
	tbl := table.Build(columns, nil)
	assert.Equal(t, 4, tbl.Index("simTicks"))
	assert.Equal(t, -1, tbl.Index("nope"))
}
