package pins

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"go.yaml.in/yaml/v3"
)

// LoadFile reads a pin table from a .yaml/.yml or .hcl file.
func LoadFile(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading pin file %s", path)
	}

	var raw map[string]interface{}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		raw, err = decodeYAML(data)
	case ".hcl":
		raw, err = decodeHCL(data, path)
	default:
		return nil, errors.Newf("unsupported pin file extension %q (want .yaml, .yml or .hcl)", ext)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "parsing pin file %s", path)
	}
	return FromRaw(raw)
}

// FromRaw validates a decoded pin document and converts it into a Table.
func FromRaw(raw map[string]interface{}) (Table, error) {
	result, err := Validate(raw)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return nil, result
	}

	t := make(Table, len(raw))
	for name, v := range raw {
		switch val := v.(type) {
		case bool:
			if val {
				t[name] = Affirmative
			} else {
				t[name] = Negative
			}
		case string:
			s, err := ParseState(val)
			if err != nil {
				return nil, errors.Wrapf(err, "pin %q", name)
			}
			t[name] = s
		default:
			return nil, errors.Newf("pin %q: unsupported value type %T", name, v)
		}
	}
	return t.Merge(), nil
}

func decodeYAML(data []byte) (map[string]interface{}, error) {
	raw := map[string]interface{}{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "unmarshaling YAML")
	}
	return raw, nil
}

// decodeHCL reads top-level attributes only, e.g. `deploy_success = "si"`.
func decodeHCL(data []byte, filename string) (map[string]interface{}, error) {
	f, diags := hclparse.NewParser().ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, diags
	}
	attrs, diags := f.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}

	raw := make(map[string]interface{}, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, diags
		}
		if val.IsNull() || !val.IsKnown() {
			return nil, errors.Newf("pin %q has no value", name)
		}
		switch val.Type() {
		case cty.String:
			raw[name] = val.AsString()
		case cty.Bool:
			raw[name] = val.True()
		case cty.Number:
			f, _ := val.AsBigFloat().Float64()
			raw[name] = f
		default:
			return nil, errors.Newf("pin %q: unsupported value type %s", name, val.Type().FriendlyName())
		}
	}
	return raw, nil
}
