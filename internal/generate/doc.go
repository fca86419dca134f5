// Package generate runs the document pipeline: extraction, metadata, layout
// resolution, command parsing, compatibility checks and emission. Documents
// are processed one at a time and a failing document never stops the run.
package generate
