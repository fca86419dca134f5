// Package layout turns the blocks of a document into file entries relative to
// the output root. Web and DSL blocks map to fixed names; project descriptors
// (<csproj>) are split into fragments and named by a fixed precedence of
// structural hints; companion source blocks are split on inline
// "File: <folder>/<path>" marker comments and placed in project folders.
package layout
