package document

// Kind identifies one of the fixed block types an .aio document may contain.
type Kind string

// Block kinds, named after the sub-language they carry.
const (
	KindMarkup        Kind = "markup"
	KindStylesheet    Kind = "stylesheet"
	KindScript        Kind = "script"
	KindEsp           Kind = "esp"
	KindIng           Kind = "ing"
	KindNet           Kind = "net"
	KindLua           Kind = "lua"
	KindPattern       Kind = "pattern"
	KindRust          Kind = "rust"
	KindGo            Kind = "go"
	KindSQL           Kind = "sql"
	KindMeta          Kind = "meta"
	KindCommands      Kind = "commands"
	KindSolution      Kind = "solution"
	KindXAML          Kind = "xaml"
	KindRuntimeConfig Kind = "runtime-config"
	KindProject       Kind = "project"
)

// Tag is the literal open/close pair for a block kind.
type Tag struct {
	Open  string
	Close string
}

// angle returns the <name>...</name> pair.
func angle(name string) Tag {
	return Tag{Open: "<" + name + ">", Close: "</" + name + ">"}
}

// paren returns the (name)...(/name) pair.
func paren(name string) Tag {
	return Tag{Open: "(" + name + ")", Close: "(/" + name + ")"}
}

// tags maps every kind to its delimiters. Kinds is the iteration order.
var tags = map[Kind]Tag{
	KindMarkup:        angle("video"),
	KindStylesheet:    angle("cs"),
	KindScript:        angle("tp"),
	KindEsp:           paren("esp"),
	KindIng:           angle("ING"),
	KindNet:           angle("net"),
	KindLua:           angle("lua"),
	KindPattern:       paren("pat"),
	KindRust:          angle("rs"),
	KindGo:            angle("go"),
	KindSQL:           angle("sql"),
	KindMeta:          angle("meta"),
	KindCommands:      angle("crea"),
	KindSolution:      angle("sln"),
	KindXAML:          angle("xaml"),
	KindRuntimeConfig: angle("config"),
	KindProject:       angle("csproj"),
}

// Kinds lists all recognized kinds in a stable order.
var Kinds = []Kind{
	KindMarkup,
	KindStylesheet,
	KindScript,
	KindEsp,
	KindIng,
	KindNet,
	KindLua,
	KindPattern,
	KindRust,
	KindGo,
	KindSQL,
	KindMeta,
	KindCommands,
	KindSolution,
	KindXAML,
	KindRuntimeConfig,
	KindProject,
}

// TagFor returns the delimiters for k.
func TagFor(k Kind) (Tag, bool) {
	t, ok := tags[k]
	return t, ok
}
