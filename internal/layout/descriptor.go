package layout

import (
	"encoding/xml"
	"strings"

	"github.com/cockroachdb/errors"
)

// OutputType is the kind of artifact a project descriptor builds.
type OutputType int

const (
	OutputUnknown OutputType = iota
	OutputGUIExecutable
	OutputConsoleExecutable
	OutputLibrary
)

func (o OutputType) String() string {
	switch o {
	case OutputGUIExecutable:
		return "executable-gui"
	case OutputConsoleExecutable:
		return "executable-console"
	case OutputLibrary:
		return "library"
	default:
		return "unknown"
	}
}

func parseOutputType(s string) OutputType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "winexe":
		return OutputGUIExecutable
	case "exe":
		return OutputConsoleExecutable
	case "library":
		return OutputLibrary
	default:
		return OutputUnknown
	}
}

// Descriptor is the structural metadata of one project fragment.
type Descriptor struct {
	Ordinal        int    // position among all fragments of the document
	Text           string // raw fragment text
	SDKHint        string
	RootNamespaces []string
	AssemblyNames  []string
	OutputType     OutputType
	ParseErr       error // non-nil when Text is not well-formed
}

// NameHints returns candidate identifiers in search priority order.
func (d *Descriptor) NameHints() []string {
	hints := make([]string, 0, len(d.RootNamespaces)+len(d.AssemblyNames))
	hints = append(hints, d.RootNamespaces...)
	return append(hints, d.AssemblyNames...)
}

type projectXML struct {
	XMLName        xml.Name           `xml:"Project"`
	SDK            string             `xml:"Sdk,attr"`
	PropertyGroups []propertyGroupXML `xml:"PropertyGroup"`
}

type propertyGroupXML struct {
	RootNamespace []string `xml:"RootNamespace"`
	AssemblyName  []string `xml:"AssemblyName"`
	OutputType    []string `xml:"OutputType"`
}

const (
	projectOpen  = "<Project"
	projectClose = "</Project>"
)

// SplitFragments returns the <Project>...</Project> spans of a descriptor
// block. An XML prolog or comment preamble before the first span stays on
// that span. dropped reports other non-blank text that was discarded. A block
// without any <Project marker is returned whole.
func SplitFragments(block string) (frags []string, dropped bool) {
	rest := block
	lead := ""
	for {
		start := indexProjectOpen(rest)
		if start < 0 {
			break
		}
		if len(frags) == 0 {
			lead = strings.TrimSpace(rest[:start])
		} else if strings.TrimSpace(rest[:start]) != "" {
			dropped = true
		}
		rest = rest[start:]
		end := strings.Index(rest, projectClose)
		if end < 0 {
			frags = append(frags, rest)
			rest = ""
			break
		}
		end += len(projectClose)
		frags = append(frags, rest[:end])
		rest = rest[end:]
	}
	if len(frags) == 0 {
		if strings.TrimSpace(block) != "" {
			frags = append(frags, block)
		}
		return frags, false
	}
	if strings.TrimSpace(rest) != "" {
		dropped = true
	}
	if lead != "" {
		if strings.HasPrefix(lead, "<?xml") || strings.HasPrefix(lead, "<!--") {
			frags[0] = lead + "\n" + frags[0]
		} else {
			dropped = true
		}
	}
	return frags, dropped
}

// indexProjectOpen finds "<Project" followed by a tag boundary, so that
// <ProjectReference> and <ProjectGuid> are not mistaken for fragment starts.
func indexProjectOpen(s string) int {
	offset := 0
	for {
		i := strings.Index(s[offset:], projectOpen)
		if i < 0 {
			return -1
		}
		i += offset
		next := i + len(projectOpen)
		if next >= len(s) {
			return i
		}
		switch s[next] {
		case ' ', '\t', '\r', '\n', '>', '/':
			return i
		}
		offset = next
	}
}

// ParseDescriptor reads the hints of one fragment. A structural parse failure
// is recorded in ParseErr; the SDK hint is still read from the opening tag.
func ParseDescriptor(ordinal int, fragment string) *Descriptor {
	d := &Descriptor{
		Ordinal: ordinal,
		Text:    fragment,
		SDKHint: sdkAttr(fragment),
	}

	var p projectXML
	if err := xml.Unmarshal([]byte(fragment), &p); err != nil {
		d.ParseErr = errors.Wrapf(err, "parsing project fragment %d", ordinal)
		return d
	}
	if p.SDK != "" {
		d.SDKHint = p.SDK
	}
	for _, g := range p.PropertyGroups {
		d.RootNamespaces = appendNonEmpty(d.RootNamespaces, g.RootNamespace)
		d.AssemblyNames = appendNonEmpty(d.AssemblyNames, g.AssemblyName)
		if d.OutputType == OutputUnknown {
			for _, o := range g.OutputType {
				if t := parseOutputType(o); t != OutputUnknown {
					d.OutputType = t
					break
				}
			}
		}
	}
	return d
}

func appendNonEmpty(dst, src []string) []string {
	for _, s := range src {
		if s = strings.TrimSpace(s); s != "" {
			dst = append(dst, s)
		}
	}
	return dst
}

// sdkAttr extracts Sdk="..." from the opening <Project> tag.
func sdkAttr(fragment string) string {
	start := indexProjectOpen(fragment)
	if start < 0 {
		return ""
	}
	tag := fragment[start:]
	if end := strings.IndexByte(tag, '>'); end >= 0 {
		tag = tag[:end]
	}
	i := strings.Index(tag, "Sdk")
	if i < 0 {
		return ""
	}
	rest := strings.TrimLeft(tag[i+len("Sdk"):], " \t\r\n")
	rest, ok := strings.CutPrefix(rest, "=")
	if !ok {
		return ""
	}
	rest = strings.TrimLeft(rest, " \t\r\n")
	if rest == "" || (rest[0] != '"' && rest[0] != '\'') {
		return ""
	}
	quote := rest[0]
	end := strings.IndexByte(rest[1:], quote)
	if end < 0 {
		return ""
	}
	return rest[1 : 1+end]
}
