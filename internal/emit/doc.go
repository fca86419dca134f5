// Package emit writes a resolved document to disk: file entries first, then
// the document's file commands, then the metadata sidecar.
package emit
