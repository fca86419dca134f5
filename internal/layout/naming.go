package layout

import (
	"fmt"
	"strings"
)

// Project names inferred when a descriptor carries no explicit identifier.
const (
	DesktopAppName    = "DesktopApp"
	ConsoleAppName    = "ConsoleApp"
	BusinessLogicName = "BusinessLogic"
	APIProjectName    = "ApiProject"
	TestsProjectName  = "Tests"
)

// positionalOrdinal is the fragment that falls back to BusinessLogicName.
const positionalOrdinal = 2

// NameSource records which rule produced a project name.
type NameSource int

const (
	FromRootNamespace NameSource = iota + 1
	FromAssemblyName
	FromOutputType
	FromSDKHint
	FromPosition
	FromOrdinal
)

func (s NameSource) String() string {
	switch s {
	case FromRootNamespace:
		return "root-namespace"
	case FromAssemblyName:
		return "assembly-name"
	case FromOutputType:
		return "output-type"
	case FromSDKHint:
		return "sdk-hint"
	case FromPosition:
		return "position"
	case FromOrdinal:
		return "ordinal"
	default:
		return "unknown"
	}
}

// ResolveName applies the naming precedence to d; the first rule that yields
// a name wins. A descriptor that failed to parse only sees the positional
// rules.
func ResolveName(d *Descriptor) (string, NameSource) {
	if d.ParseErr == nil {
		if len(d.RootNamespaces) > 0 {
			return d.RootNamespaces[0], FromRootNamespace
		}
		if len(d.AssemblyNames) > 0 {
			return d.AssemblyNames[0], FromAssemblyName
		}
		switch d.OutputType {
		case OutputGUIExecutable:
			return DesktopAppName, FromOutputType
		case OutputConsoleExecutable:
			return ConsoleAppName, FromOutputType
		case OutputLibrary:
			return BusinessLogicName, FromOutputType
		}
		sdk := strings.ToLower(d.SDKHint)
		switch {
		case strings.Contains(sdk, "web"):
			return APIProjectName, FromSDKHint
		case strings.Contains(sdk, "test"):
			return TestsProjectName, FromSDKHint
		}
	}
	if d.Ordinal == positionalOrdinal {
		return BusinessLogicName, FromPosition
	}
	return fmt.Sprintf("UnnamedProject_%d", d.Ordinal), FromOrdinal
}
