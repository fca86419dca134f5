package cli

import (
	"github.com/aio-labs/aio/internal/command"
	"github.com/aio-labs/aio/internal/config"
	"github.com/aio-labs/aio/internal/generate"
	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"
)

var (
	parsePinsFile string
	parsePinFlags []string
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Show what a document would generate",
	Long: `Resolve a .aio document without writing anything: the metadata, the
captured blocks, the inferred projects, the file entries and the command
script are printed as YAML.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().StringVar(&parsePinsFile, "pins", "", "Pin table file (.yaml, .yml or .hcl)")
	parseCmd.Flags().StringArrayVar(&parsePinFlags, "pin", nil, "Pin assignment name=value (can be specified multiple times)")
	rootCmd.AddCommand(parseCmd)
}

type parseProject struct {
	Ordinal int    `yaml:"ordinal"`
	Name    string `yaml:"name"`
	Source  string `yaml:"source"`
}

type parseBlock struct {
	Kind  string `yaml:"kind"`
	Bytes int    `yaml:"bytes"`
}

type parseFile struct {
	Path  string `yaml:"path"`
	Kind  string `yaml:"kind"`
	Bytes int    `yaml:"bytes"`
}

type parseCommand struct {
	Line    int    `yaml:"line"`
	Command string `yaml:"command"`
	// Decision is what the pin table would do with a delete.
	Decision string `yaml:"decision,omitempty"`
}

type parseOutput struct {
	Document   string                 `yaml:"document"`
	OutputRoot string                 `yaml:"output_root"`
	Config     map[string]interface{} `yaml:"config"`
	Blocks     []parseBlock           `yaml:"blocks,omitempty"`
	Projects   []parseProject         `yaml:"projects,omitempty"`
	Files      []parseFile            `yaml:"files"`
	Commands   []parseCommand         `yaml:"commands,omitempty"`
	Warnings   []string               `yaml:"warnings,omitempty"`
}

func runParse(cmd *cobra.Command, args []string) error {
	table, err := loadPinTable(parsePinsFile, parsePinFlags)
	if err != nil {
		return errors.Wrap(err, "loading pin table")
	}

	fs := afero.NewOsFs()
	doc, err := generate.ReadDocument(fs, args[0])
	if err != nil {
		return err
	}
	g := generate.New(fs, generate.Options{
		BaseDir:     config.Get(config.KeyOutputBase),
		Pins:        table,
		ToolVersion: buildVersion,
	}, nil)
	res, _, err := g.Plan(cmd.Context(), doc)
	if err != nil {
		return err
	}

	out := parseOutput{
		Document:   res.Document,
		OutputRoot: res.OutputRoot,
		Config:     res.Config.ToMap(),
		Warnings:   res.Warnings,
	}
	for _, b := range res.Blocks {
		out.Blocks = append(out.Blocks, parseBlock{Kind: string(b.Kind), Bytes: len(b.Text)})
	}
	for _, p := range res.Projects {
		out.Projects = append(out.Projects, parseProject{
			Ordinal: p.Descriptor.Ordinal,
			Name:    p.Name,
			Source:  p.Source.String(),
		})
	}
	for _, f := range res.Files {
		out.Files = append(out.Files, parseFile{Path: f.Path, Kind: string(f.Kind), Bytes: len(f.Content)})
	}
	for _, c := range res.Commands {
		pc := parseCommand{Line: c.SourceLine(), Command: c.String()}
		if d, ok := c.(*command.Delete); ok {
			pc.Decision = "delete"
			dec := command.Evaluate(d.Condition, table)
			switch {
			case !dec.Proceed:
				pc.Decision = "skip (" + dec.Rule + ")"
			case dec.UnknownPin:
				pc.Decision = "delete (unknown pin)"
			}
		}
		out.Commands = append(out.Commands, pc)
	}

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return errors.Wrap(err, "encoding parse result")
	}
	return enc.Close()
}
