// Package main provides the soundlab CLI tool.
//
// Usage:
//
//	soundlab [flags] <command> [args]
//
// Commands:
//
//	mfcc        - MFCC feature extraction
//	similarity  - Speaker similarity from MFCC summaries
//	ctc         - CTC greedy decoding, trace generation and quiz
//	metrics     - WER/CER scoring
//	g2p         - Korean grapheme-to-phoneme conversion
//	config      - Configuration management
//
// Configuration:
//
//	The CLI stores configuration in ~/.soundlab/soundlab/
//	Use 'soundlab config' commands to manage profiles.
package main

import (
	"os"

	"github.com/haivivi/soundlab/cmd/soundlab/commands"
	"github.com/haivivi/soundlab/pkg/cli"
)

func main() {
	if err := commands.Execute(); err != nil {
		cli.PrintError("%v", err)
		os.Exit(1)
	}
}
