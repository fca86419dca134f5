package generate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aio-labs/aio/internal/command"
	"github.com/aio-labs/aio/internal/document"
	"github.com/aio-labs/aio/internal/emit"
	"github.com/aio-labs/aio/internal/layout"
	"github.com/aio-labs/aio/internal/logging"
	"github.com/aio-labs/aio/internal/meta"
	"github.com/aio-labs/aio/internal/metrics"
	"github.com/aio-labs/aio/internal/pins"
	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// ErrInputMissing marks documents that could not be read.
var ErrInputMissing = errors.New("input document missing")

// Extension is the file extension of aio documents.
const Extension = ".aio"

// Options configure a Generator.
type Options struct {
	// BaseDir is the directory output_dir is resolved against. Empty means
	// the working directory.
	BaseDir string
	// Pins is the pin table consulted by conditional deletes.
	Pins pins.Table
	// ToolVersion is checked against aio_version constraints.
	ToolVersion string
}

// Result is the outcome of one document.
type Result struct {
	Document   string
	OutputRoot string
	Config     *meta.Config
	Blocks     []document.Block
	Projects   []*layout.Project
	Files      []layout.FileEntry
	Commands   []command.Command
	Warnings   []string
	Emitted    *emit.Result
}

// Summary is the outcome of a Run.
type Summary struct {
	Results []*Result
	Failed  map[string]error
}

// Generator processes documents against a filesystem.
type Generator struct {
	fs      afero.Fs
	opts    Options
	metrics *metrics.Recorder
}

// New returns a generator writing to fs. rec may be nil.
func New(fs afero.Fs, opts Options, rec *metrics.Recorder) *Generator {
	if opts.BaseDir == "" {
		opts.BaseDir = "."
	}
	if opts.Pins == nil {
		opts.Pins = pins.Defaults()
	}
	return &Generator{fs: fs, opts: opts, metrics: rec}
}

// Plan resolves doc without touching the filesystem.
func (g *Generator) Plan(ctx context.Context, doc document.Document) (*Result, *emit.Plan, error) {
	log := logging.FromContext(ctx).With(zap.String("document", doc.Name))

	blocks := document.Extract(doc.Text)
	cfg := meta.Parse(doc.Text)

	compatWarnings, err := checkCompatibility(cfg, g.opts.ToolVersion)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "document %s", doc.Name)
	}

	l := layout.Resolve(blocks, layout.Options{
		DocName:     doc.Name,
		SolutionDir: cfg.String(meta.KeySolutionDir, meta.DefaultSolutionDir),
	})

	res := &Result{
		Document:   doc.Name,
		OutputRoot: emit.OutputRoot(g.opts.BaseDir, cfg),
		Config:     cfg,
		Blocks:     blocks.Sequence(),
		Projects:   l.Projects,
		Files:      l.Entries,
	}
	res.Warnings = append(res.Warnings, compatWarnings...)
	res.Warnings = append(res.Warnings, l.Warnings...)
	for _, w := range res.Warnings {
		log.Warn(w)
	}

	for _, script := range blocks.All(document.KindCommands) {
		cmds, diags := command.Parse(script)
		for _, d := range diags {
			log.Warn("unrecognized command", zap.Int("line", d.Line), zap.String("text", d.Text))
			res.Warnings = append(res.Warnings, fmt.Sprintf("command line %d: %s: %q", d.Line, d.Message, d.Text))
		}
		res.Commands = append(res.Commands, cmds...)
	}

	for _, b := range res.Blocks {
		log.Debug("captured block", zap.String("kind", string(b.Kind)), zap.Int("bytes", len(b.Text)))
	}
	for _, p := range l.Projects {
		log.Debug("resolved project",
			zap.Int("ordinal", p.Descriptor.Ordinal),
			zap.String("name", p.Name),
			zap.Stringer("source", p.Source))
	}

	metaBlock, hasMeta := blocks.First(document.KindMeta)
	plan := &emit.Plan{
		DocName:   doc.Name,
		Config:    cfg,
		Entries:   l.Entries,
		Commands:  res.Commands,
		MetaBlock: metaBlock,
		HasMeta:   hasMeta,
	}
	return res, plan, nil
}

// Process resolves and emits doc.
func (g *Generator) Process(ctx context.Context, doc document.Document) (*Result, error) {
	start := time.Now()
	res, err := g.process(ctx, doc)
	if err != nil {
		g.metrics.RecordDocument(metrics.DocumentFailed, time.Since(start))
		return nil, err
	}
	g.metrics.RecordDocument(metrics.DocumentProcessed, time.Since(start))
	g.metrics.RecordWarnings(len(res.Warnings))
	return res, nil
}

func (g *Generator) process(ctx context.Context, doc document.Document) (*Result, error) {
	res, plan, err := g.Plan(ctx, doc)
	if err != nil {
		return nil, err
	}
	log := logging.FromContext(ctx).With(zap.String("document", doc.Name))
	em := emit.New(g.fs, log, g.metrics)
	out, err := em.Emit(g.opts.BaseDir, plan, g.opts.Pins)
	if err != nil {
		return nil, errors.Wrapf(err, "document %s", doc.Name)
	}
	res.Emitted = out
	res.OutputRoot = out.Root
	log.Info("document processed",
		zap.String("root", out.Root),
		zap.Int("files", len(out.Written)),
		zap.Int("failed", len(out.Failed)),
		zap.Int("commands", len(res.Commands)),
		zap.Int("warnings", len(res.Warnings)))
	return res, nil
}

// ReadDocument loads the document at path. The name is the file's base name
// without extension.
func ReadDocument(fs afero.Fs, path string) (document.Document, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return document.Document{}, errors.Mark(errors.Wrapf(err, "reading %s", path), ErrInputMissing)
		}
		return document.Document{}, errors.Wrapf(err, "reading %s", path)
	}
	return document.Document{Name: DocName(path), Text: string(data)}, nil
}

// DocName is the base name of path without its extension.
func DocName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ProcessFile reads and processes the document at path.
func (g *Generator) ProcessFile(ctx context.Context, path string) (*Result, error) {
	doc, err := ReadDocument(g.fs, path)
	if err != nil {
		g.metrics.RecordDocument(metrics.DocumentFailed, 0)
		return nil, err
	}
	return g.Process(ctx, doc)
}

// Run processes paths in order. A failing document is logged and recorded
// in the summary; the run continues. Only cancellation of ctx stops early.
func (g *Generator) Run(ctx context.Context, paths []string) (*Summary, error) {
	log := logging.FromContext(ctx)
	sum := &Summary{Failed: make(map[string]error)}
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return sum, errors.Wrap(err, "run cancelled")
		}
		res, err := g.ProcessFile(ctx, p)
		if err != nil {
			log.Error("skipping document", zap.String("path", p), zap.Error(err))
			sum.Failed[p] = err
			continue
		}
		sum.Results = append(sum.Results, res)
	}
	return sum, nil
}
