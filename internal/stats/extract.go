// Package stats pulls performance counters out of simulator report text.
package stats

import (
	"regexp"

	"github.com/signalnine/cohstats/internal/config"
)

type fixedRule struct {
	column string
	re     *regexp.Regexp
}

// Extractor scans report text for a fixed set of labelled counters plus an
// open-ended family of counters sharing a dotted prefix.
type Extractor struct {
	fixed   []fixedRule
	dynamic *regexp.Regexp
}

// NewExtractor compiles the label patterns once. Labels and prefix are
// matched literally.
func NewExtractor(fixed []config.FixedMetric, dynamicPrefix string) *Extractor {
	e := &Extractor{}
	for _, m := range fixed {
		e.fixed = append(e.fixed, fixedRule{
			column: m.Column,
			re:     regexp.MustCompile(regexp.QuoteMeta(m.Label) + `\s+(\d+)`),
		})
	}
	e.dynamic = regexp.MustCompile(regexp.QuoteMeta(dynamicPrefix) + `\.(\S+)\s+(\d+)`)
	return e
}

// Extract returns metric name -> literal digit string. A fixed metric is keyed
// by its column name and takes the first occurrence of its label; a missing
// label leaves the key out. Every dynamic occurrence is keyed by the name
// after the prefix; a later duplicate overwrites an earlier one.
func (e *Extractor) Extract(text string) map[string]string {
	metrics := make(map[string]string)
	for _, f := range e.fixed {
		if m := f.re.FindStringSubmatch(text); m != nil {
			metrics[f.column] = m[1]
		}
	}
	for _, m := range e.dynamic.FindAllStringSubmatch(text, -1) {
		metrics[m[1]] = m[2]
	}
	return metrics
}
