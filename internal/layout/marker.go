package layout

import (
	"path"
	"strings"
)

// markerStyle is the comment syntax of an inline file marker.
type markerStyle struct {
	open  string
	close string
}

var (
	slashMarker = markerStyle{open: "//"}
	dashMarker  = markerStyle{open: "--"}
	xmlMarker   = markerStyle{open: "<!--", close: "-->"}
)

// match returns the path of a "<open> File: <path> <close>" line.
func (s markerStyle) match(line string) (string, bool) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(line), s.open)
	if !ok {
		return "", false
	}
	if s.close != "" {
		if rest, ok = strings.CutSuffix(rest, s.close); !ok {
			return "", false
		}
	}
	rest, ok = strings.CutPrefix(strings.TrimSpace(rest), "File:")
	if !ok {
		return "", false
	}
	p := strings.TrimSpace(rest)
	return p, p != ""
}

// section is the content following one marker.
type section struct {
	path    string
	content string
}

// splitMarkers cuts text at marker lines. preamble is the text before the
// first marker; found is false when no marker matched.
func splitMarkers(text string, styles ...markerStyle) (sections []section, preamble string, found bool) {
	var (
		cur   *section
		lines []string
	)
	flush := func() {
		body := strings.Join(lines, "\n")
		if cur == nil {
			preamble = body
		} else {
			cur.content = body
			sections = append(sections, *cur)
		}
		lines = nil
	}

	for _, line := range strings.Split(text, "\n") {
		var (
			p       string
			matched bool
		)
		for _, s := range styles {
			if p, matched = s.match(line); matched {
				break
			}
		}
		if !matched {
			lines = append(lines, line)
			continue
		}
		flush()
		cur = &section{path: p}
		found = true
	}
	flush()
	return sections, preamble, found
}

// cleanMarkerPath normalizes a marker path relative to the output root,
// dropping a leading solution directory. It returns the project folder (the
// first segment, empty for root-level files) and the full relative path.
func cleanMarkerPath(raw, solutionDir string) (folder, rel string, ok bool) {
	p := strings.ReplaceAll(strings.TrimSpace(raw), `\`, "/")
	p = strings.TrimPrefix(p, "./")
	p = strings.TrimLeft(p, "/")
	if solutionDir != "" {
		p = strings.TrimPrefix(p, strings.Trim(solutionDir, "/")+"/")
	}
	p = path.Clean(p)
	if p == "." || p == ".." || strings.HasPrefix(p, "../") {
		return "", "", false
	}
	folder, _, _ = strings.Cut(p, "/")
	if folder == p {
		folder = ""
	}
	return folder, p, true
}
