// Package cli defines the Cobra command tree for the aio CLI. Each file in
// this package registers one top-level command with the root command.
// Commands only handle flags and output; the work happens in internal
// packages.
package cli
