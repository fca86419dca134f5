package emit

import (
	"bytes"
	"embed"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"text/template"

	"github.com/aio-labs/aio/internal/command"
	"github.com/aio-labs/aio/internal/layout"
	"github.com/aio-labs/aio/internal/meta"
	"github.com/aio-labs/aio/internal/metrics"
	"github.com/aio-labs/aio/internal/pins"
	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

//go:embed templates
var templateFS embed.FS

var (
	pageOnce sync.Once
	pageTmpl *template.Template
	pageErr  error
)

func pageTemplate() (*template.Template, error) {
	pageOnce.Do(func() {
		pageTmpl, pageErr = template.ParseFS(templateFS, "templates/index.html.tmpl")
	})
	return pageTmpl, pageErr
}

// Page holds the html wrapper variables.
type Page struct {
	Title      string
	Stylesheet string
	Script     string
	Body       string
}

// RenderIndex wraps body in the html page template.
func RenderIndex(p Page) (string, error) {
	tmpl, err := pageTemplate()
	if err != nil {
		return "", errors.Wrap(err, "parsing page template")
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, p); err != nil {
		return "", errors.Wrap(err, "rendering page template")
	}
	return buf.String(), nil
}

// Plan is everything the emitter needs for one document.
type Plan struct {
	DocName  string
	Config   *meta.Config
	Entries  []layout.FileEntry
	Commands []command.Command
	// MetaBlock is the raw metadata block; HasMeta is false when the
	// document had none and no sidecar is written.
	MetaBlock string
	HasMeta   bool
}

// Result describes what was written.
type Result struct {
	Root    string
	Written []string
	Failed  []string
	Sidecar string
	Report  *command.Report
}

// Emitter writes plans to a filesystem.
type Emitter struct {
	fs      afero.Fs
	log     *zap.Logger
	metrics *metrics.Recorder
}

// New returns an emitter over fs. log and rec may be nil.
func New(fs afero.Fs, log *zap.Logger, rec *metrics.Recorder) *Emitter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Emitter{fs: fs, log: log, metrics: rec}
}

// OutputRoot resolves the output_dir of cfg against base.
func OutputRoot(base string, cfg *meta.Config) string {
	dir := cfg.String(meta.KeyOutputDir, meta.DefaultOutputDir)
	if strings.TrimSpace(dir) == "" {
		dir = meta.DefaultOutputDir
	}
	dir = filepath.FromSlash(dir)
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	return filepath.Join(base, dir)
}

// Emit writes p below base. Only a failure to create the output root is
// returned; per-entry failures are logged and listed in Result.Failed.
func (e *Emitter) Emit(base string, p *Plan, table pins.Table) (*Result, error) {
	cfg := p.Config
	if cfg == nil {
		cfg = meta.NewConfig()
	}
	root := OutputRoot(base, cfg)
	if err := e.fs.MkdirAll(root, 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating output directory %s", root)
	}
	log := e.log.With(zap.String("root", root))
	res := &Result{Root: root}

	for _, entry := range p.Entries {
		target := filepath.Join(root, filepath.FromSlash(entry.Path))
		if err := e.writeEntry(target, entry, cfg); err != nil {
			log.Warn("writing file entry failed", zap.String("path", entry.Path), zap.Error(err))
			res.Failed = append(res.Failed, entry.Path)
			e.metrics.RecordFile(metrics.FileFailed)
			continue
		}
		log.Debug("wrote file entry", zap.String("path", entry.Path), zap.String("kind", string(entry.Kind)))
		res.Written = append(res.Written, entry.Path)
		e.metrics.RecordFile(metrics.FileWritten)
	}

	res.Report = command.NewInterpreter(e.fs, root, log).Execute(p.Commands, table)
	for _, o := range res.Report.Outcomes {
		e.metrics.RecordCommand(verb(o.Command), string(o.Status))
	}

	if p.HasMeta {
		sidecar := filepath.Join(root, SidecarName(p.DocName))
		if err := afero.WriteFile(e.fs, sidecar, []byte(strings.TrimSpace(p.MetaBlock)), 0o644); err != nil {
			log.Warn("writing metadata sidecar failed", zap.String("path", sidecar), zap.Error(err))
		} else {
			res.Sidecar = sidecar
		}
	}
	return res, nil
}

// SidecarName is the file the raw metadata block of doc is saved to.
func SidecarName(doc string) string {
	return "config_" + doc + ".meta"
}

func (e *Emitter) writeEntry(target string, entry layout.FileEntry, cfg *meta.Config) error {
	content := strings.TrimSpace(entry.Content)
	if entry.Path == layout.IndexFile {
		page, err := RenderIndex(Page{
			Title:      cfg.String(meta.KeyProjectName, meta.DefaultProjectName),
			Stylesheet: path.Base(layout.StylesheetFile),
			Script:     path.Base(layout.ScriptFile),
			Body:       content,
		})
		if err != nil {
			return err
		}
		content = page
	}
	if err := e.fs.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return errors.Wrap(err, "creating parent directory")
	}
	return afero.WriteFile(e.fs, target, []byte(content), 0o644)
}

func verb(c command.Command) string {
	switch c.(type) {
	case *command.Create:
		return "create"
	case *command.Delete:
		return "delete"
	default:
		return "unknown"
	}
}
