package command

import (
	"strings"
)

var (
	createDirectives = []string{"create", "crea"}
	createObjects    = []string{"entry", "file"}
	extensionFlags   = []string{"extension", "extencion"}
	directoryFlags   = []string{"notExtension", "Not_extencion"}
	deleteDirectives = []string{"delete", "borra"}
	conditionFlags   = []string{"condition", "con"}
)

func oneOf(s string, options []string) bool {
	for _, o := range options {
		if s == o {
			return true
		}
	}
	return false
}

// Parse reads a command script. Lines that match no statement are returned as
// diagnostics; they never stop parsing.
func Parse(script string) ([]Command, []Diagnostic) {
	var (
		cmds  []Command
		diags []Diagnostic
	)
	for i, raw := range strings.Split(script, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		body := stripComment(line)
		if body == "" {
			continue
		}
		p := &parser{toks: lex(body)}
		dp := &parser{toks: p.toks}
		var cmd Command
		if c, ok := p.create(); ok {
			c.Line = i + 1
			cmd = c
		} else if d, ok := dp.delete(); ok {
			d.Line = i + 1
			cmd = d
		}
		if cmd == nil {
			msg := "unrecognized or malformed command"
			if dp.problem != "" {
				msg = dp.problem
			}
			diags = append(diags, Diagnostic{Line: i + 1, Text: line, Message: msg})
			continue
		}
		cmds = append(cmds, cmd)
	}
	return cmds, diags
}

type parser struct {
	toks []token
	pos  int
	// problem describes why a recognized statement was rejected.
	problem string
}

func (p *parser) peek() (token, bool) {
	if p.pos >= len(p.toks) {
		return token{}, false
	}
	return p.toks[p.pos], true
}

// accept consumes the next token if it has the given kind and, when options
// is non-empty, one of the given texts.
func (p *parser) accept(kind tokenKind, options ...string) (token, bool) {
	t, ok := p.peek()
	if !ok || t.kind != kind {
		return token{}, false
	}
	if len(options) > 0 && !oneOf(t.text, options) {
		return token{}, false
	}
	p.pos++
	return t, true
}

// field parses `Key = "value"` for one of keys and returns the key and value.
func (p *parser) field(keys ...string) (string, string, bool) {
	k, ok := p.accept(tokWord, keys...)
	if !ok {
		return "", "", false
	}
	if _, ok := p.accept(tokEquals); !ok {
		return "", "", false
	}
	v, ok := p.accept(tokString)
	if !ok || v.text == "" {
		return "", "", false
	}
	return k.text, v.text, true
}

func (p *parser) create() (*Create, bool) {
	if _, ok := p.accept(tokDollar, createDirectives...); !ok {
		return nil, false
	}
	if _, ok := p.accept(tokEquals); !ok {
		return nil, false
	}
	if _, ok := p.accept(tokWord, createObjects...); !ok {
		return nil, false
	}
	_, name, ok := p.field("Name")
	if !ok {
		return nil, false
	}
	c := &Create{Name: name}

	if t, ok := p.peek(); ok && t.kind == tokPercent {
		if ext, ok := p.extension(t.text); ok {
			c.Extension = ext
		}
	}
	if _, ok := p.accept(tokPercent, directoryFlags...); ok {
		c.IsDirectory = true
	}
	p.accept(tokComma)
	return c, true
}

// extension handles both "%extension .js" and "%extension.js".
func (p *parser) extension(flag string) (string, bool) {
	for _, f := range extensionFlags {
		if flag == f {
			save := p.pos
			p.pos++
			if w, ok := p.accept(tokWord); ok && strings.HasPrefix(w.text, ".") && len(w.text) > 1 {
				return w.text[1:], true
			}
			p.pos = save
			return "", false
		}
		if rest, ok := strings.CutPrefix(flag, f+"."); ok && rest != "" {
			p.pos++
			return rest, true
		}
	}
	return "", false
}

func (p *parser) delete() (*Delete, bool) {
	if _, ok := p.accept(tokPercent, deleteDirectives...); !ok {
		return nil, false
	}
	if _, ok := p.accept(tokEquals); !ok {
		return nil, false
	}
	key, value, ok := p.field("Name", "file")
	if !ok {
		return nil, false
	}
	d := &Delete{Target: Target{Kind: ByName, Value: value}}
	if key == "file" {
		d.Target.Kind = ByPath
	}

	if _, ok := p.accept(tokPercent, "all"); ok {
		d.Scope = ScopeAll
	}
	if t, ok := p.peek(); ok && t.kind == tokPercent && t.text != "" {
		p.pos++
		if d.Scope != ScopeAll {
			d.Scope = ScopeList
			d.Files = splitList(t.text)
		}
	}
	if flag, ok := p.accept(tokAmp, conditionFlags...); ok {
		pin, ok := p.accept(tokString)
		if !ok || strings.Trim(pin.text, `"`) == "" {
			p.problem = "&" + flag.text + " must be followed by a quoted pin name"
			return nil, false
		}
		d.Condition = strings.Trim(pin.text, `"`)
	}
	p.accept(tokComma)
	return d, true
}

func splitList(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
