package pins

import (
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
)

// State is the value of a pin.
type State int

const (
	Negative State = iota
	Affirmative
)

func (s State) String() string {
	if s == Affirmative {
		return "si"
	}
	return "no"
}

// Well-known pin names with dedicated condition rules.
const (
	DeploySuccess      = "deploy_success"
	DeploySuccessAlias = "deploySuccess"
	NoDelete           = "n"
	AlwaysDelete       = "p"
)

// ParseState converts a textual pin value into a State.
func ParseState(raw string) (State, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "si", "sí", "yes", "true", "affirmative", "on", "1":
		return Affirmative, nil
	case "no", "false", "negative", "off", "0":
		return Negative, nil
	}
	return Negative, errors.Newf("invalid pin state %q", raw)
}

// Table maps pin names to their states. It is read-only during a run.
type Table map[string]State

// Defaults returns the demonstration table the tool ships with.
func Defaults() Table {
	return Table{
		DeploySuccess: Negative,
		NoDelete:      Affirmative,
		AlwaysDelete:  Negative,
	}
}

// Canonical maps alternate spellings of a pin name onto the stored name.
func Canonical(name string) string {
	if name == DeploySuccessAlias {
		return DeploySuccess
	}
	return name
}

// Lookup returns the state of name under either spelling. Tables built by
// this package only hold canonical names; the alias key is consulted for
// literal tables that were never normalized.
func (t Table) Lookup(name string) (State, bool) {
	name = Canonical(name)
	if s, ok := t[name]; ok {
		return s, true
	}
	if name == DeploySuccess {
		s, ok := t[DeploySuccessAlias]
		return s, ok
	}
	return Negative, false
}

// Names returns pin names in sorted order.
func (t Table) Names() []string {
	names := make([]string, 0, len(t))
	for n := range t {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Merge returns a new table with the entries of each overlay applied in
// order. Keys are canonicalized, so an overlay written with one spelling
// replaces a base entry written with the other.
func (t Table) Merge(overlays ...Table) Table {
	out := make(Table, len(t))
	out.apply(t)
	for _, o := range overlays {
		out.apply(o)
	}
	return out
}

func (t Table) apply(src Table) {
	// When src holds both spellings the canonical entry wins.
	if v, ok := src[DeploySuccessAlias]; ok {
		t[DeploySuccess] = v
	}
	for k, v := range src {
		if k != DeploySuccessAlias {
			t[k] = v
		}
	}
}

// ParseAssignments builds a table from name=value strings such as the values
// of repeated --pin flags.
func ParseAssignments(assignments []string) (Table, error) {
	t := make(Table, len(assignments))
	for _, a := range assignments {
		name, raw, ok := strings.Cut(a, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, errors.Newf("invalid pin assignment %q: expected name=value", a)
		}
		s, err := ParseState(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "pin %q", name)
		}
		t[Canonical(name)] = s
	}
	return t, nil
}
