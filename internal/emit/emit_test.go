package emit

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/aio-labs/aio/internal/command"
	"github.com/aio-labs/aio/internal/document"
	"github.com/aio-labs/aio/internal/layout"
	"github.com/aio-labs/aio/internal/meta"
	"github.com/aio-labs/aio/internal/pins"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const base = "/work"

func readFile(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

func assertContains(t *testing.T, content, substr string) {
	t.Helper()
	if !strings.Contains(content, substr) {
		t.Errorf("expected content to contain %q, got:\n%s", substr, content)
	}
}

func TestOutputRoot(t *testing.T) {
	tests := []struct {
		meta string
		want string
	}{
		{``, filepath.Join(base, "build")},
		{`output_dir="out"`, filepath.Join(base, "out")},
		{`output_dir="site/dist"`, filepath.Join(base, "site", "dist")},
		{`output_dir=""`, filepath.Join(base, "build")},
		{`output_dir="/abs/path"`, filepath.FromSlash("/abs/path")},
	}
	for _, tt := range tests {
		if got := OutputRoot(base, meta.ParseBody(tt.meta)); got != tt.want {
			t.Errorf("OutputRoot(%q) = %q, want %q", tt.meta, got, tt.want)
		}
	}
}

func TestRenderIndex(t *testing.T) {
	page, err := RenderIndex(Page{Title: "Demo", Stylesheet: "style.css", Script: "script.js", Body: "<p>Hi</p>"})
	if err != nil {
		t.Fatalf("RenderIndex() error: %v", err)
	}
	want := "<!DOCTYPE html>\n<html>\n<head>\n<title>Demo</title>\n" +
		"<link rel='stylesheet' href='style.css'>\n</head>\n<body>\n<p>Hi</p>\n" +
		"<script src='script.js'></script>\n</body>\n</html>"
	if page != want {
		t.Errorf("RenderIndex() =\n%s\nwant\n%s", page, want)
	}
}

func TestEmit_IndexWrapperWithoutStylesheetBlock(t *testing.T) {
	fs := afero.NewMemMapFs()
	text := `<video><p>Hi</p></video><meta>output_dir="out"</meta>`
	blocks := document.Extract(text)
	metaBlock, _ := blocks.First(document.KindMeta)
	plan := &Plan{
		DocName:   "site",
		Config:    meta.Parse(text),
		Entries:   layout.Resolve(blocks, layout.Options{DocName: "site"}).Entries,
		MetaBlock: metaBlock,
		HasMeta:   true,
	}

	res, err := New(fs, nil, nil).Emit(base, plan, pins.Defaults())
	if err != nil {
		t.Fatalf("Emit() error: %v", err)
	}
	if res.Root != filepath.Join(base, "out") {
		t.Errorf("Root = %q", res.Root)
	}

	index := readFile(t, fs, filepath.Join(base, "out", "index.html"))
	assertContains(t, index, "<title>Aio Project</title>")
	assertContains(t, index, "<link rel='stylesheet' href='style.css'>")
	assertContains(t, index, "<body>\n<p>Hi</p>\n")
	assertContains(t, index, "<script src='script.js'></script>")

	if ok, _ := afero.Exists(fs, filepath.Join(base, "out", "style.css")); ok {
		t.Error("style.css must not be written without a stylesheet block")
	}
	if got := readFile(t, fs, filepath.Join(base, "out", "config_site.meta")); got != `output_dir="out"` {
		t.Errorf("sidecar = %q", got)
	}
}

func TestEmit_TrimsEntriesAndCreatesParents(t *testing.T) {
	fs := afero.NewMemMapFs()
	plan := &Plan{
		DocName: "doc",
		Config:  meta.ParseBody(`project_name="Shop"`),
		Entries: []layout.FileEntry{
			{Path: "ApiProject/Controllers/A.cs", Content: "\n  class A {}\n\n", Kind: document.KindNet},
			{Path: "style.css", Content: " body{} ", Kind: document.KindStylesheet},
		},
	}

	res, err := New(fs, nil, nil).Emit(base, plan, nil)
	if err != nil {
		t.Fatalf("Emit() error: %v", err)
	}
	if got := readFile(t, fs, filepath.Join(base, "build", "ApiProject", "Controllers", "A.cs")); got != "class A {}" {
		t.Errorf("A.cs = %q", got)
	}
	if got := readFile(t, fs, filepath.Join(base, "build", "style.css")); got != "body{}" {
		t.Errorf("style.css = %q", got)
	}
	if len(res.Written) != 2 || len(res.Failed) != 0 {
		t.Errorf("Written = %v, Failed = %v", res.Written, res.Failed)
	}
	if res.Sidecar != "" {
		t.Errorf("no sidecar expected without a metadata block, got %q", res.Sidecar)
	}
}

func TestEmit_CommandsRunAfterEntries(t *testing.T) {
	fs := afero.NewMemMapFs()
	cmds, diags := command.Parse(`
$create=entry Name="assets_logo" %notExtension
$create=entry Name="assets_logo" %notExtension
%delete=Name="script.js" %all
`)
	if len(diags) != 0 {
		t.Fatalf("diagnostics: %v", diags)
	}
	plan := &Plan{
		Config: meta.ParseBody(`output_dir="out"`),
		Entries: []layout.FileEntry{
			{Path: "script.js", Content: "run()", Kind: document.KindScript},
		},
		Commands: cmds,
	}

	core, logs := observer.New(zap.InfoLevel)
	res, err := New(fs, zap.New(core), nil).Emit(base, plan, pins.Defaults())
	if err != nil {
		t.Fatalf("Emit() error: %v", err)
	}

	if ok, _ := afero.DirExists(fs, filepath.Join(base, "out", "assets", "logo")); !ok {
		t.Error("assets/logo directory not created")
	}
	if ok, _ := afero.Exists(fs, filepath.Join(base, "out", "script.js")); ok {
		t.Error("script.js should have been deleted after being written")
	}
	if res.Report.Count(command.StatusFailed) != 0 {
		t.Errorf("failed outcomes: %+v", res.Report.Outcomes)
	}
	if logs.FilterMessage("directory already exists").Len() != 1 {
		t.Error("second create should log that the directory exists")
	}
}

func TestEmit_EntryFailureDoesNotStopDocument(t *testing.T) {
	fs := afero.NewOsFs()
	dir := t.TempDir()
	// A regular file where a directory is needed makes the first entry fail.
	if err := fs.MkdirAll(filepath.Join(dir, "build"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := afero.WriteFile(fs, filepath.Join(dir, "build", "Blocked"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	plan := &Plan{
		Config: meta.NewConfig(),
		Entries: []layout.FileEntry{
			{Path: "Blocked/Program.cs", Content: "x"},
			{Path: "ok.txt", Content: "y"},
		},
	}

	res, err := New(fs, nil, nil).Emit(dir, plan, nil)
	if err != nil {
		t.Fatalf("Emit() error: %v", err)
	}
	if len(res.Failed) != 1 || res.Failed[0] != "Blocked/Program.cs" {
		t.Errorf("Failed = %v", res.Failed)
	}
	if len(res.Written) != 1 || res.Written[0] != "ok.txt" {
		t.Errorf("Written = %v", res.Written)
	}
}
