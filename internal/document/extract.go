package document

import "strings"

// Document is the full text of one input unit. Name is the source file's base
// name without extension and is used to derive per-document output names.
type Document struct {
	Name string
	Text string
}

// Block is one captured section of a document.
type Block struct {
	Kind Kind
	Text string
}

// Blocks holds the raw captures of every kind, in document order.
type Blocks map[Kind][]string

// First returns the first capture of k.
func (b Blocks) First(k Kind) (string, bool) {
	c := b[k]
	if len(c) == 0 {
		return "", false
	}
	return c[0], true
}

// All returns every capture of k. The result is never nil.
func (b Blocks) All(k Kind) []string {
	if c := b[k]; c != nil {
		return c
	}
	return []string{}
}

// Has reports whether at least one k block was captured.
func (b Blocks) Has(k Kind) bool {
	return len(b[k]) > 0
}

// Extract scans text for every known kind.
func Extract(text string) Blocks {
	out := make(Blocks, len(Kinds))
	for _, k := range Kinds {
		out[k] = Scan(text, tags[k])
	}
	return out
}

// Scan returns the inner text of every non-overlapping tag pair in text. An
// opening tag without a later closing tag captures nothing and ends the scan.
func Scan(text string, tag Tag) []string {
	captures := []string{}
	pos := 0
	for pos < len(text) {
		open := strings.Index(text[pos:], tag.Open)
		if open < 0 {
			break
		}
		start := pos + open + len(tag.Open)
		end := strings.Index(text[start:], tag.Close)
		if end < 0 {
			break
		}
		captures = append(captures, text[start:start+end])
		pos = start + end + len(tag.Close)
	}
	return captures
}

// Sequence flattens b into a list of blocks ordered by kind, then position.
func (b Blocks) Sequence() []Block {
	var out []Block
	for _, k := range Kinds {
		for _, text := range b[k] {
			out = append(out, Block{Kind: k, Text: text})
		}
	}
	return out
}
