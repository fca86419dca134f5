package command

import "strings"

type tokenKind int

const (
	tokWord    tokenKind = iota // bare word: Name, entry, .js
	tokString                   // "quoted" (no escapes)
	tokEquals                   // =
	tokComma                    // ,
	tokDollar                   // $word
	tokPercent                  // %word, may contain commas
	tokAmp                      // &word
)

type token struct {
	kind tokenKind
	text string
}

// stripComment removes everything from the first '#'. Quotes are not
// considered: the command language has no escaping rules.
func stripComment(line string) string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	return strings.TrimSpace(line)
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

// lex splits a single comment-free line into tokens. An unterminated string
// runs to the end of the line.
func lex(line string) []token {
	var toks []token
	i := 0
	for i < len(line) {
		c := line[i]
		switch {
		case isSpace(c):
			i++
		case c == '"':
			end := strings.IndexByte(line[i+1:], '"')
			if end < 0 {
				toks = append(toks, token{tokString, line[i+1:]})
				return toks
			}
			toks = append(toks, token{tokString, line[i+1 : i+1+end]})
			i += end + 2
		case c == '=':
			toks = append(toks, token{tokEquals, "="})
			i++
		case c == ',':
			toks = append(toks, token{tokComma, ","})
			i++
		case c == '$' || c == '&':
			j := scan(line, i+1, "=\",%&$")
			kind := tokDollar
			if c == '&' {
				kind = tokAmp
			}
			toks = append(toks, token{kind, line[i+1 : j]})
			i = j
		case c == '%':
			// Commas belong to the word so that %a.txt,b.txt stays one list.
			j := scan(line, i+1, "=\"%&$")
			word := strings.TrimRight(line[i+1:j], ",")
			toks = append(toks, token{tokPercent, word})
			if word != line[i+1:j] {
				toks = append(toks, token{tokComma, ","})
			}
			i = j
		default:
			j := scan(line, i, "=\",%&$")
			toks = append(toks, token{tokWord, line[i:j]})
			i = j
		}
	}
	return toks
}

// scan returns the index of the first space or stop byte at or after i.
func scan(line string, i int, stops string) int {
	for i < len(line) && !isSpace(line[i]) && strings.IndexByte(stops, line[i]) < 0 {
		i++
	}
	return i
}
