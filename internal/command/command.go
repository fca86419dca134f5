package command

import "fmt"

// Command is a parsed statement: *Create or *Delete.
type Command interface {
	// SourceLine is the 1-based line number in the script.
	SourceLine() int
	String() string
}

// Create makes a file or directory under the output root. Underscores in Name
// are path separators.
type Create struct {
	Line        int
	Name        string
	Extension   string // without the leading dot; empty for none
	IsDirectory bool
}

func (c *Create) SourceLine() int { return c.Line }

func (c *Create) String() string {
	s := fmt.Sprintf("create %q", c.Name)
	if c.Extension != "" {
		s += " ." + c.Extension
	}
	if c.IsDirectory {
		s += " (dir)"
	}
	return s
}

// TargetKind selects how a delete target is resolved.
type TargetKind int

const (
	// ByName resolves under the output root with '_' as separator.
	ByName TargetKind = iota
	// ByPath is used verbatim, joined to the root only when relative.
	ByPath
)

// Target is the selector of a delete statement.
type Target struct {
	Kind  TargetKind
	Value string
}

func (t Target) String() string {
	if t.Kind == ByPath {
		return fmt.Sprintf("file=%q", t.Value)
	}
	return fmt.Sprintf("Name=%q", t.Value)
}

// Scope says what a delete removes relative to its target.
type Scope int

const (
	// ScopeSingle removes the target when it is a regular file.
	ScopeSingle Scope = iota
	// ScopeAll removes the target recursively, file or directory.
	ScopeAll
	// ScopeList removes the listed files next to the target.
	ScopeList
)

func (s Scope) String() string {
	switch s {
	case ScopeAll:
		return "all"
	case ScopeList:
		return "list"
	default:
		return "single"
	}
}

// Delete removes a path, optionally gated on a pin.
type Delete struct {
	Line      int
	Target    Target
	Scope     Scope
	Files     []string // ScopeList only
	Condition string   // pin name; empty for unconditional
}

func (d *Delete) SourceLine() int { return d.Line }

func (d *Delete) String() string {
	s := "delete " + d.Target.String()
	switch d.Scope {
	case ScopeAll:
		s += " %all"
	case ScopeList:
		s += fmt.Sprintf(" %v", d.Files)
	}
	if d.Condition != "" {
		s += fmt.Sprintf(" if %q", d.Condition)
	}
	return s
}

// Diagnostic reports a script line that was not understood.
type Diagnostic struct {
	Line    int
	Text    string
	Message string
}
