// Package cli provides common utilities for the soundlab command-line tool.
//
// This package includes:
//   - Configuration management (named analysis profiles)
//   - Output formatting (YAML, JSON, msgpack, table) with jq queries
//   - Request file loading (YAML/JSON)
//
// Configuration is stored in the ~/.soundlab/<app>/ directory and holds
// multiple profiles, similar to kubectl contexts.
//
// Example usage:
//
//	cfg, err := cli.LoadConfig("soundlab")
//
//	// Resolve the active profile
//	p, err := cfg.ResolveProfile("")
//
//	// Output result
//	cli.Output(result, cli.OutputOptions{
//	    Format: cli.FormatJSON,
//	    Query:  ".frames | length",
//	})
package cli
