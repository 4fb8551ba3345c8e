package result

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// ErrNoResults is returned when the results root is missing or not a directory.
var ErrNoResults = errors.New("results directory not found")

// Run is one candidate run directory under the results root.
type Run struct {
	Name   string // directory name, which encodes the run identifier
	Dir    string
	Report string // path of the report file, empty when none was found
}

// HasReport reports whether a report file was found for the run.
func (r Run) HasReport() bool { return r.Report != "" }

// Discover lists the subdirectories of root in name order and locates each
// one's report among reportNames, first match wins. Plain files in root are
// ignored.
func Discover(root string, reportNames []string) ([]Run, error) {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNoResults, root)
		}
		return nil, fmt.Errorf("reading results dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrNoResults, root)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("reading results dir: %w", err)
	}
	var runs []Run
	for _, e := range entries {
		dir := filepath.Join(root, e.Name())
		if !isDir(e, dir) {
			continue
		}
		report, _ := FindReport(dir, reportNames)
		runs = append(runs, Run{Name: e.Name(), Dir: dir, Report: report})
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].Name < runs[j].Name })
	return runs, nil
}

// FindReport returns the first of names that exists as a regular file in dir.
func FindReport(dir string, names []string) (string, bool) {
	for _, name := range names {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path, true
		}
	}
	return "", false
}

// isDir follows symlinks so linked run directories are included.
func isDir(e os.DirEntry, path string) bool {
	if e.IsDir() {
		return true
	}
	if e.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
