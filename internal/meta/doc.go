// Package meta parses the <meta> block of an .aio document into an ordered
// key/value configuration. Values are either scalars or bracketed lists.
// Malformed segments are skipped, never reported as errors.
package meta
