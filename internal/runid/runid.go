// Package runid decodes experiment parameters from a run directory name such
// as MESI_8c_hot_rpw4.
package runid

import (
	"regexp"
	"strings"
)

// ID holds the experiment parameters encoded in a run directory name. Fields
// that no token matched are empty.
type ID struct {
	Protocol string
	Cores    string
	Mode     string
	RPW      string
}

// A rule inspects the tokens of a name and reports the field value it found.
type rule func(tokens []string) (string, bool)

var (
	coresToken = regexp.MustCompile(`^([0-9]+)c$`)
	rpwToken   = regexp.MustCompile(`^rpw([0-9]+)$`)
)

// Decoder turns run directory names into IDs. It is safe for concurrent use.
type Decoder struct {
	protocol []rule
	cores    []rule
	mode     []rule
	rpw      []rule
}

// NewDecoder returns a Decoder that translates mode tokens through modes
// (token -> display label).
func NewDecoder(modes map[string]string) *Decoder {
	table := make(map[string]string, len(modes))
	for k, v := range modes {
		table[k] = v
	}
	return &Decoder{
		protocol: []rule{firstToken},
		cores:    []rule{submatch(coresToken)},
		mode:     []rule{lookup(table)},
		rpw:      []rule{submatch(rpwToken)},
	}
}

// Decode splits name on underscores and applies each field's rules. It never
// fails; the same name always decodes to the same ID.
func (d *Decoder) Decode(name string) ID {
	tokens := strings.Split(name, "_")
	return ID{
		Protocol: apply(d.protocol, tokens),
		Cores:    apply(d.cores, tokens),
		Mode:     apply(d.mode, tokens),
		RPW:      apply(d.rpw, tokens),
	}
}

func apply(rules []rule, tokens []string) string {
	for _, r := range rules {
		if v, ok := r(tokens); ok {
			return v
		}
	}
	return ""
}

func firstToken(tokens []string) (string, bool) {
	if len(tokens) == 0 {
		return "", false
	}
	return tokens[0], true
}

// submatch returns the first capture group of the first token matching re.
func submatch(re *regexp.Regexp) rule {
	return func(tokens []string) (string, bool) {
		for _, tok := range tokens {
			if m := re.FindStringSubmatch(tok); m != nil {
				return m[1], true
			}
		}
		return "", false
	}
}

func lookup(table map[string]string) rule {
	return func(tokens []string) (string, bool) {
		for _, tok := range tokens {
			if label, ok := table[tok]; ok {
				return label, true
			}
		}
		return "", false
	}
}
