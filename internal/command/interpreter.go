package command

import (
	"path/filepath"
	"strings"

	"github.com/aio-labs/aio/internal/pins"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Status is the outcome of a single command.
type Status string

const (
	StatusApplied   Status = "applied"
	StatusUnchanged Status = "unchanged" // directory already existed
	StatusSkipped   Status = "skipped"   // condition not met
	StatusMissing   Status = "missing"   // delete target not found
	StatusFailed    Status = "failed"
)

// Outcome records what happened to one command. A list delete produces one
// outcome per listed file.
type Outcome struct {
	Command Command
	Status  Status
	Path    string
	Message string
}

// Report collects outcomes in execution order.
type Report struct {
	Outcomes []Outcome
}

// Count returns the number of outcomes with status s.
func (r *Report) Count(s Status) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == s {
			n++
		}
	}
	return n
}

func (r *Report) add(o Outcome) { r.Outcomes = append(r.Outcomes, o) }

// Interpreter applies commands below an output root.
type Interpreter struct {
	fs   afero.Fs
	root string
	log  *zap.Logger
}

// NewInterpreter returns an interpreter writing to fs under root.
func NewInterpreter(fs afero.Fs, root string, log *zap.Logger) *Interpreter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Interpreter{fs: fs, root: root, log: log}
}

// Execute applies cmds in order. Failures are reported, never returned.
func (in *Interpreter) Execute(cmds []Command, table pins.Table) *Report {
	r := &Report{}
	for _, cmd := range cmds {
		switch c := cmd.(type) {
		case *Create:
			in.create(c, r)
		case *Delete:
			in.delete(c, table, r)
		}
	}
	return r
}

// namePath converts an underscore-separated name into a relative path.
func namePath(name string) string {
	return strings.ReplaceAll(name, "_", string(filepath.Separator))
}

func (in *Interpreter) create(c *Create, r *Report) {
	target := filepath.Join(in.root, namePath(c.Name))

	if c.IsDirectory {
		if ok, _ := afero.DirExists(in.fs, target); ok {
			in.log.Info("directory already exists", zap.String("path", target))
			r.add(Outcome{Command: c, Status: StatusUnchanged, Path: target})
			return
		}
		if err := in.fs.MkdirAll(target, 0755); err != nil {
			in.fail(c, target, err, r)
			return
		}
		in.log.Info("directory created", zap.String("path", target))
		r.add(Outcome{Command: c, Status: StatusApplied, Path: target})
		return
	}

	if c.Extension != "" {
		target += "." + c.Extension
	}
	if err := in.fs.MkdirAll(filepath.Dir(target), 0755); err != nil {
		in.fail(c, target, err, r)
		return
	}
	header := "# File created by aio: " + filepath.Base(target) + "\n"
	if err := afero.WriteFile(in.fs, target, []byte(header), 0644); err != nil {
		in.fail(c, target, err, r)
		return
	}
	in.log.Info("file created", zap.String("path", target))
	r.add(Outcome{Command: c, Status: StatusApplied, Path: target})
}

// targetPath resolves a delete selector against the output root.
func (in *Interpreter) targetPath(t Target) string {
	if t.Kind == ByPath {
		if filepath.IsAbs(t.Value) {
			return t.Value
		}
		return filepath.Join(in.root, t.Value)
	}
	return filepath.Join(in.root, namePath(t.Value))
}

func (in *Interpreter) delete(d *Delete, table pins.Table, r *Report) {
	target := in.targetPath(d.Target)

	dec := Evaluate(d.Condition, table)
	if dec.UnknownPin {
		in.log.Warn("pin not found in pin table; assuming condition is true",
			zap.String("pin", d.Condition), zap.String("path", target))
	}
	if !dec.Proceed {
		in.log.Info("condition not met; delete skipped",
			zap.String("pin", d.Condition),
			zap.Stringer("state", dec.State),
			zap.String("rule", dec.Rule),
			zap.String("path", target))
		r.add(Outcome{Command: d, Status: StatusSkipped, Path: target, Message: "condition " + d.Condition + " not met"})
		return
	}

	switch d.Scope {
	case ScopeAll:
		info, err := in.fs.Stat(target)
		if err != nil {
			in.missing(d, target, r)
			return
		}
		if info.IsDir() {
			err = in.fs.RemoveAll(target)
		} else {
			err = in.fs.Remove(target)
		}
		if err != nil {
			in.fail(d, target, err, r)
			return
		}
		in.log.Info("deleted", zap.String("path", target), zap.Bool("recursive", info.IsDir()))
		r.add(Outcome{Command: d, Status: StatusApplied, Path: target})

	case ScopeList:
		parent := filepath.Dir(target)
		for _, f := range d.Files {
			in.removeFile(d, filepath.Join(parent, namePath(f)), r)
		}

	default:
		in.removeFile(d, target, r)
	}
}

// removeFile deletes path only when it is a regular file.
func (in *Interpreter) removeFile(d *Delete, path string, r *Report) {
	info, err := in.fs.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		in.missing(d, path, r)
		return
	}
	if err := in.fs.Remove(path); err != nil {
		in.fail(d, path, err, r)
		return
	}
	in.log.Info("file deleted", zap.String("path", path))
	r.add(Outcome{Command: d, Status: StatusApplied, Path: path})
}

func (in *Interpreter) missing(cmd Command, path string, r *Report) {
	in.log.Warn("delete target not found", zap.String("path", path), zap.Int("line", cmd.SourceLine()))
	r.add(Outcome{Command: cmd, Status: StatusMissing, Path: path, Message: "not found"})
}

func (in *Interpreter) fail(cmd Command, path string, err error, r *Report) {
	in.log.Warn("command failed", zap.String("path", path), zap.Int("line", cmd.SourceLine()), zap.Error(err))
	r.add(Outcome{Command: cmd, Status: StatusFailed, Path: path, Message: err.Error()})
}
