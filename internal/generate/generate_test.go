package generate

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aio-labs/aio/internal/document"
	"github.com/aio-labs/aio/internal/emit"
	"github.com/aio-labs/aio/internal/logging"
	"github.com/aio-labs/aio/internal/meta"
	"github.com/aio-labs/aio/internal/metrics"
	"github.com/aio-labs/aio/internal/pins"
	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const base = "/work"

const siteDoc = `
<meta>
project_name="Shop",
output_dir="out",
version="1.2.0",
targets=["web", "api"]
</meta>
<video><h1>Shop</h1></video>
<cs>h1 { color: red; }</cs>
<tp>console.log("hi")</tp>
<csproj>
<Project Sdk="Microsoft.NET.Sdk"><PropertyGroup><OutputType>WinExe</OutputType></PropertyGroup></Project>
<Project Sdk="Microsoft.NET.Sdk.Web"><PropertyGroup><RootNamespace>Shop.Api</RootNamespace></PropertyGroup></Project>
<Project Sdk="Microsoft.NET.Sdk"></Project>
</csproj>
<net>
// File: vs_solution/Shop.Api/Program.cs
var app = WebApplication.Create();
</net>
<crea>
$create=entry Name="assets_img" %notExtension
$create=entry Name="notes" %extension .txt
%delete=file="script.js" &condition "deploySuccess"
</crea>
`

func newGenerator(t *testing.T, opts Options) (*Generator, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	if opts.BaseDir == "" {
		opts.BaseDir = base
	}
	return New(fs, opts, nil), fs
}

func readFile(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

func exists(fs afero.Fs, path string) bool {
	ok, _ := afero.Exists(fs, path)
	return ok
}

func TestProcess_FullDocument(t *testing.T) {
	g, fs := newGenerator(t, Options{})
	res, err := g.Process(context.Background(), document.Document{Name: "shop", Text: siteDoc})
	if err != nil {
		t.Fatalf("Process() error: %v", err)
	}

	out := filepath.Join(base, "out")
	if res.OutputRoot != out {
		t.Errorf("OutputRoot = %q, want %q", res.OutputRoot, out)
	}
	for _, p := range []string{
		"index.html",
		"style.css",
		"DesktopApp/DesktopApp.csproj",
		"Shop.Api/Shop.Api.csproj",
		"BusinessLogic/BusinessLogic.csproj",
		"Shop.Api/Program.cs",
		"assets/img",
		"notes.txt",
		"config_shop.meta",
	} {
		if !exists(fs, filepath.Join(out, filepath.FromSlash(p))) {
			t.Errorf("%s not written", p)
		}
	}
	if !strings.Contains(readFile(t, fs, filepath.Join(out, "index.html")), "<title>Shop</title>") {
		t.Error("index.html title does not use project_name")
	}
	// deploy_success defaults to negative, so the delete is skipped.
	if !exists(fs, filepath.Join(out, "script.js")) {
		t.Error("script.js deleted although deploySuccess is negative")
	}
	if len(res.Commands) != 3 {
		t.Errorf("Commands = %d, want 3", len(res.Commands))
	}
	if len(res.Warnings) != 0 {
		t.Errorf("Warnings = %v", res.Warnings)
	}
}

func TestProcess_AffirmativePinDeletes(t *testing.T) {
	table := pins.Defaults().Merge(pins.Table{pins.DeploySuccess: pins.Affirmative})
	g, fs := newGenerator(t, Options{Pins: table})
	if _, err := g.Process(context.Background(), document.Document{Name: "shop", Text: siteDoc}); err != nil {
		t.Fatalf("Process() error: %v", err)
	}
	if exists(fs, filepath.Join(base, "out", "script.js")) {
		t.Error("script.js kept although deploySuccess is affirmative")
	}
}

func TestProcess_SidecarIsIdempotent(t *testing.T) {
	g, fs := newGenerator(t, Options{})
	if _, err := g.Process(context.Background(), document.Document{Name: "shop", Text: siteDoc}); err != nil {
		t.Fatalf("Process() error: %v", err)
	}

	sidecar := readFile(t, fs, filepath.Join(base, "out", emit.SidecarName("shop")))
	original := meta.Parse(siteDoc)
	reparsed := meta.ParseBody(sidecar)
	if !original.Equal(reparsed) {
		t.Errorf("sidecar parses to %v, want %v", reparsed.ToMap(), original.ToMap())
	}
	if items := reparsed.List("targets"); len(items) != 2 || items[1] != "api" {
		t.Errorf("targets = %v", items)
	}
}

func TestProcess_NoMetaUsesDefaults(t *testing.T) {
	g, fs := newGenerator(t, Options{})
	res, err := g.Process(context.Background(), document.Document{Name: "bare", Text: "<video>x</video>"})
	if err != nil {
		t.Fatalf("Process() error: %v", err)
	}
	if res.OutputRoot != filepath.Join(base, "build") {
		t.Errorf("OutputRoot = %q", res.OutputRoot)
	}
	if exists(fs, filepath.Join(base, "build", "config_bare.meta")) {
		t.Error("sidecar written without a metadata block")
	}
	if !strings.Contains(readFile(t, fs, filepath.Join(base, "build", "index.html")), "<title>Aio Project</title>") {
		t.Error("default title not used")
	}
}

func TestProcess_Compatibility(t *testing.T) {
	tests := []struct {
		name         string
		meta         string
		tool         string
		wantErr      bool
		wantWarnings int
	}{
		{"satisfied", `aio_version=">= 1.0, < 2.0"`, "1.4.0", false, 0},
		{"v prefix", `aio_version="^1.2"`, "v1.3.0", false, 0},
		{"unsatisfied", `aio_version=">= 2.0"`, "1.4.0", true, 0},
		{"dev build skips check", `aio_version=">= 9.0"`, "dev", false, 0},
		{"bad constraint", `aio_version="whatever"`, "1.0.0", false, 1},
		{"bad document version", `version="one"`, "1.0.0", false, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _ := newGenerator(t, Options{ToolVersion: tt.tool})
			res, err := g.Process(context.Background(), document.Document{Name: "c", Text: "<meta>" + tt.meta + "</meta>"})
			if tt.wantErr {
				if !errors.Is(err, ErrIncompatible) {
					t.Fatalf("error = %v, want ErrIncompatible", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(res.Warnings) != tt.wantWarnings {
				t.Errorf("Warnings = %v, want %d", res.Warnings, tt.wantWarnings)
			}
		})
	}
}

func TestPlan_DoesNotTouchFilesystem(t *testing.T) {
	g, fs := newGenerator(t, Options{})
	res, plan, err := g.Plan(context.Background(), document.Document{Name: "shop", Text: siteDoc})
	if err != nil {
		t.Fatalf("Plan() error: %v", err)
	}
	if exists(fs, base) {
		t.Error("Plan() created the output directory")
	}
	if len(plan.Entries) != len(res.Files) || !plan.HasMeta {
		t.Errorf("plan = %+v", plan)
	}
	if len(res.Projects) != 3 || res.Projects[2].Name != "BusinessLogic" {
		t.Errorf("projects = %+v", res.Projects)
	}
	counts := map[document.Kind]int{}
	for _, b := range res.Blocks {
		counts[b.Kind]++
	}
	if counts[document.KindMeta] != 1 || counts[document.KindProject] == 0 {
		t.Errorf("blocks = %v", counts)
	}
}

func TestPlan_UnrecognizedCommandsBecomeWarnings(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	ctx := logging.WithLogger(context.Background(), zap.New(core))
	g, _ := newGenerator(t, Options{})

	res, _, err := g.Plan(ctx, document.Document{Name: "d", Text: "<crea>\nfrobnicate everything\n</crea>"})
	if err != nil {
		t.Fatalf("Plan() error: %v", err)
	}
	if len(res.Commands) != 0 || len(res.Warnings) != 1 {
		t.Errorf("Commands = %v, Warnings = %v", res.Commands, res.Warnings)
	}
	if logs.FilterMessage("unrecognized command").Len() != 1 {
		t.Error("unrecognized command not logged")
	}
}

func TestProcessFile_Missing(t *testing.T) {
	g, _ := newGenerator(t, Options{})
	_, err := g.ProcessFile(context.Background(), "/nowhere/site.aio")
	if !errors.Is(err, ErrInputMissing) {
		t.Fatalf("error = %v, want ErrInputMissing", err)
	}
}

func TestRun_ContinuesPastFailures(t *testing.T) {
	fs := afero.NewMemMapFs()
	rec := metrics.New()
	g := New(fs, Options{BaseDir: base}, rec)

	good := "/docs/good.aio"
	if err := afero.WriteFile(fs, good, []byte(`<meta>output_dir="good"</meta><video>ok</video>`), 0o644); err != nil {
		t.Fatal(err)
	}
	bad := "/docs/bad.aio"
	if err := afero.WriteFile(fs, bad, []byte(`<meta>aio_version="< 0.1"</meta>`), 0o644); err != nil {
		t.Fatal(err)
	}
	g.opts.ToolVersion = "1.0.0"

	sum, err := g.Run(context.Background(), []string{"/docs/missing.aio", bad, good})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if len(sum.Results) != 1 || sum.Results[0].Document != "good" {
		t.Errorf("Results = %+v", sum.Results)
	}
	if len(sum.Failed) != 2 {
		t.Errorf("Failed = %v", sum.Failed)
	}
	if !exists(fs, filepath.Join(base, "good", "index.html")) {
		t.Error("good document not emitted")
	}
}

func TestRun_Cancelled(t *testing.T) {
	g, _ := newGenerator(t, Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := g.Run(ctx, []string{"/a.aio"}); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestDocName(t *testing.T) {
	if got := DocName("/x/y/site.aio"); got != "site" {
		t.Errorf("DocName() = %q", got)
	}
}
