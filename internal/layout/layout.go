package layout

import (
	"fmt"
	"path"
	"strings"

	"github.com/aio-labs/aio/internal/document"
)

// FileEntry is one file staged for writing. Path is slash-separated and
// relative to the output root.
type FileEntry struct {
	Path    string
	Content string
	Kind    document.Kind
}

// Project is a resolved descriptor fragment.
type Project struct {
	Descriptor *Descriptor
	Name       string
	Source     NameSource
}

// Folder is the output directory of the project, relative to the root.
func (p *Project) Folder() string { return p.Name }

// Layout is the resolved output of a document.
type Layout struct {
	Projects []*Project
	Entries  []FileEntry
	Warnings []string
}

// Options tune path derivation.
type Options struct {
	// DocName is the document base name used for DSL and solution files.
	DocName string
	// SolutionDir is stripped from the front of marker paths.
	SolutionDir string
}

// companion describes how a source block kind is split and where it goes
// when it carries no markers. firstOnly kinds ignore repeated blocks.
type companion struct {
	kind      document.Kind
	styles    []markerStyle
	firstOnly bool
	fallback  func(*Layout) string
}

var companions = []companion{
	{document.KindNet, []markerStyle{slashMarker}, false, func(l *Layout) string {
		return path.Join(l.folderFor(APIProjectName, isWeb, isConsole), "Program.cs")
	}},
	{document.KindRust, []markerStyle{slashMarker}, false, func(*Layout) string { return "BusinessLogic/src/lib.rs" }},
	{document.KindGo, []markerStyle{slashMarker}, false, func(*Layout) string { return "GoService/main.go" }},
	{document.KindXAML, []markerStyle{xmlMarker}, true, func(l *Layout) string {
		return path.Join(l.folderFor(DesktopAppName, isGUI), "MainWindow.xaml")
	}},
	{document.KindRuntimeConfig, []markerStyle{xmlMarker}, true, runtimeConfigPath},
	{document.KindSQL, []markerStyle{dashMarker}, true, func(*Layout) string { return "Database/schema.sql" }},
	{document.KindLua, []markerStyle{slashMarker, dashMarker}, true, func(l *Layout) string {
		return path.Join(l.folderFor(APIProjectName, isWeb), "config.lua")
	}},
}

// texts returns the blocks of c's kind that contribute entries.
func (c companion) texts(blocks document.Blocks) []string {
	if !c.firstOnly {
		return blocks.All(c.kind)
	}
	if text, ok := blocks.First(c.kind); ok {
		return []string{text}
	}
	return nil
}

// Resolve computes the project set and file entries for blocks.
func Resolve(blocks document.Blocks, opts Options) *Layout {
	l := &Layout{}
	l.addFixed(blocks, opts.DocName)
	l.addProjects(blocks)
	for _, c := range companions {
		for _, text := range c.texts(blocks) {
			l.addCompanion(c, text, opts.SolutionDir)
		}
	}
	l.checkDuplicates()
	return l
}

func (l *Layout) add(p, content string, kind document.Kind) {
	l.Entries = append(l.Entries, FileEntry{Path: p, Content: content, Kind: kind})
}

func (l *Layout) warnf(format string, args ...interface{}) {
	l.Warnings = append(l.Warnings, fmt.Sprintf(format, args...))
}

// addFixed stages the blocks that map to fixed names. Only the first
// occurrence of each kind is used.
func (l *Layout) addFixed(blocks document.Blocks, docName string) {
	fixed := []struct {
		kind document.Kind
		path string
	}{
		{document.KindMarkup, IndexFile},
		{document.KindStylesheet, StylesheetFile},
		{document.KindScript, ScriptFile},
		{document.KindEsp, "logic_" + docName + ".esp"},
		{document.KindIng, "logic_" + docName + ".ing"},
		{document.KindPattern, "patterns_" + docName + ".pat"},
		{document.KindSolution, docName + ".sln"},
	}
	for _, f := range fixed {
		if text, ok := blocks.First(f.kind); ok {
			l.add(f.path, text, f.kind)
		}
	}
}

// Root web file names.
const (
	IndexFile      = "index.html"
	StylesheetFile = "style.css"
	ScriptFile     = "script.js"
)

func (l *Layout) addProjects(blocks document.Blocks) {
	ordinal := 0
	for _, block := range blocks.All(document.KindProject) {
		frags, dropped := SplitFragments(block)
		if dropped {
			l.warnf("project block: text outside <Project> elements was dropped")
		}
		for _, frag := range frags {
			d := ParseDescriptor(ordinal, frag)
			ordinal++
			if d.ParseErr != nil {
				l.warnf("project fragment %d is not well-formed; using positional name: %v", d.Ordinal, d.ParseErr)
			}
			name, src := ResolveName(d)
			p := &Project{Descriptor: d, Name: name, Source: src}
			l.Projects = append(l.Projects, p)
			l.add(path.Join(p.Folder(), name+".csproj"), frag, document.KindProject)
		}
	}
}

func (l *Layout) addCompanion(c companion, text, solutionDir string) {
	sections, preamble, found := splitMarkers(text, c.styles...)
	if !found {
		if strings.TrimSpace(text) != "" {
			l.add(c.fallback(l), text, c.kind)
		}
		return
	}
	if strings.TrimSpace(preamble) != "" {
		l.warnf("%s block: text before the first file marker was dropped", c.kind)
	}
	for _, s := range sections {
		_, rel, ok := cleanMarkerPath(s.path, solutionDir)
		if !ok {
			l.warnf("%s block: invalid file marker path %q", c.kind, s.path)
			continue
		}
		l.add(rel, s.content, c.kind)
	}
}

func (l *Layout) checkDuplicates() {
	seen := make(map[string]bool, len(l.Entries))
	for _, e := range l.Entries {
		if seen[e.Path] {
			l.warnf("%s is produced more than once; the last entry wins", e.Path)
		}
		seen[e.Path] = true
	}
}

func isGUI(p *Project) bool     { return p.Descriptor.OutputType == OutputGUIExecutable }
func isConsole(p *Project) bool { return p.Descriptor.OutputType == OutputConsoleExecutable }
func isWeb(p *Project) bool {
	return strings.Contains(strings.ToLower(p.Descriptor.SDKHint), "web") || p.Name == APIProjectName
}

// folderFor returns the folder of the first project matching a predicate, in
// predicate order, or fallback.
func (l *Layout) folderFor(fallback string, preds ...func(*Project) bool) string {
	for _, pred := range preds {
		for _, p := range l.Projects {
			if pred(p) {
				return p.Folder()
			}
		}
	}
	return fallback
}

func runtimeConfigPath(l *Layout) string {
	if f := l.folderFor("", isGUI); f != "" {
		return path.Join(f, "App.config")
	}
	if f := l.folderFor("", isWeb); f != "" {
		return path.Join(f, "Web.config")
	}
	return path.Join(DesktopAppName, "App.config")
}
