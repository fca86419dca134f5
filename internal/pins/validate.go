package pins

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/pins.schema.json
var schemaBytes []byte

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

// ValidationResult contains the outcome of validating a raw pin table.
type ValidationResult struct {
	Valid  bool
	Issues []ValidationIssue
}

// ValidationIssue is one schema violation.
type ValidationIssue struct {
	Path    string // e.g. "/deploy_success"
	Message string
	Keyword string
}

func (r *ValidationResult) Error() string {
	msgs := make([]string, 0, len(r.Issues))
	for _, issue := range r.Issues {
		if issue.Path != "" {
			msgs = append(msgs, issue.Path+": "+issue.Message)
		} else {
			msgs = append(msgs, issue.Message)
		}
	}
	return "invalid pin table: " + strings.Join(msgs, "; ")
}

func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = errors.Wrap(err, "unmarshaling schema JSON")
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("pins.schema.json", doc); err != nil {
			compileErr = errors.Wrap(err, "adding schema resource")
			return
		}
		compiledSchema, compileErr = c.Compile("pins.schema.json")
		if compileErr != nil {
			compileErr = errors.Wrap(compileErr, "compiling schema")
		}
	})
	return compiledSchema, compileErr
}

// Validate checks a decoded pin document against the embedded schema. String
// values are compared case-insensitively.
func Validate(raw map[string]interface{}) (*ValidationResult, error) {
	schema, err := getSchema()
	if err != nil {
		return nil, errors.Wrap(err, "loading schema")
	}

	normalized := make(map[string]interface{}, len(raw))
	for k, v := range raw {
		if s, ok := v.(string); ok {
			v = strings.ToLower(strings.TrimSpace(s))
		}
		normalized[k] = v
	}

	jsonData, err := json.Marshal(normalized)
	if err != nil {
		return nil, errors.Wrap(err, "converting to JSON")
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
	if err != nil {
		return nil, errors.Wrap(err, "preparing JSON for validation")
	}

	err = schema.Validate(inst)
	if err == nil {
		return &ValidationResult{Valid: true}, nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return nil, errors.Wrap(err, "unexpected validation error type")
	}

	var issues []ValidationIssue
	collectIssues(ve, &issues)
	if len(issues) == 0 {
		issues = []ValidationIssue{{Message: ve.Error()}}
	}
	return &ValidationResult{Issues: dedupe(issues)}, nil
}

// collectIssues walks the error tree and keeps leaf errors that name a keyword.
func collectIssues(ve *jsonschema.ValidationError, issues *[]ValidationIssue) {
	if len(ve.Causes) > 0 {
		for _, cause := range ve.Causes {
			collectIssues(cause, issues)
		}
		return
	}

	path := ""
	if len(ve.InstanceLocation) > 0 {
		path = "/" + strings.Join(ve.InstanceLocation, "/")
	}
	keyword, msg := "", ""
	if ve.ErrorKind != nil {
		if kw := ve.ErrorKind.KeywordPath(); len(kw) > 0 {
			keyword = kw[len(kw)-1]
		}
		msg = ve.ErrorKind.LocalizedString(printer)
	}
	if keyword == "" || keyword == "oneOf" || keyword == "$ref" {
		return
	}
	*issues = append(*issues, ValidationIssue{Path: path, Message: msg, Keyword: keyword})
}

func dedupe(issues []ValidationIssue) []ValidationIssue {
	seen := make(map[string]bool)
	var out []ValidationIssue
	for _, issue := range issues {
		key := issue.Path + "|" + issue.Keyword + "|" + issue.Message
		if !seen[key] {
			seen[key] = true
			out = append(out, issue)
		}
	}
	return out
}
