package meta

import "strings"

// Encode renders cfg as a metadata block body, one key per line. Parsing the
// result with ParseBody yields a Config equal to cfg.
func Encode(cfg *Config) string {
	var b strings.Builder
	for i, k := range cfg.keys {
		v := cfg.values[k]
		b.WriteString(k)
		b.WriteString("=")
		if v.IsList() {
			quoted := make([]string, len(v.list))
			for j, item := range v.list {
				quoted[j] = `"` + item + `"`
			}
			b.WriteString("[" + strings.Join(quoted, ", ") + "]")
		} else {
			b.WriteString(`"` + v.scalar + `"`)
		}
		if i < len(cfg.keys)-1 {
			b.WriteString(",\n")
		}
	}
	return b.String()
}
