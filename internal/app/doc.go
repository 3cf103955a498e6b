// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the primary execution lifecycle, decoupled
// from any specific entrypoint like a CLI.
//
// A run builds one model (from an instance file, from its geometry only, or
// empty), optionally flattens it, answers schema queries, publishes it and
// finally hands it to the interactive shell.
package app
