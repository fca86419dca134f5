// Package pins holds the named two-valued signals consulted by conditional
// delete commands. A Table is built once per run, from a YAML or HCL file,
// from name=value assignments, or from the built-in defaults, and is passed
// explicitly to the command interpreter.
package pins
