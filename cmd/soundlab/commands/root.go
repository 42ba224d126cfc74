package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/haivivi/soundlab/pkg/cli"
)

const appName = "soundlab"

var (
	// Global flags
	cfgFile      string
	profileName  string
	outputFile   string
	inputFile    string
	outputFormat string
	outputJSON   bool
	query        string
	verbose      bool

	// Global configuration
	globalConfig *cli.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "soundlab",
	Short: "Speech signal and text processing toolkit",
	Long: `soundlab - speech processing building blocks on the command line.

This tool covers:
  - MFCC feature extraction (FFT, mel filter bank, DCT)
  - Speaker similarity from MFCC summaries
  - CTC greedy decoding with step-by-step traces
  - WER/CER scoring with edit breakdowns
  - Rule-based Korean G2P and number normalization

Configuration is stored in ~/.soundlab/soundlab/ and supports multiple
analysis profiles, similar to kubectl's context management.

Examples:
  # Extract MFCCs from a recording
  soundlab mfcc extract hello.wav --format table

  # Decode a CTC trace
  soundlab ctc decode "ε-H-H-ε-E-L-ε-L-O"

  # Score a transcript
  soundlab metrics "the weather is good" "the weather is great"

  # Pipe JSON into jq, or query in place
  soundlab mfcc summarize hello.wav -q '.mfcc_mean[0]'
`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Command returns the root cobra command for mounting into a parent CLI.
func Command() *cobra.Command {
	return rootCmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global persistent flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "", "", "config file (default is ~/.soundlab/soundlab/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&profileName, "profile", "p", "", "profile name to use")
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "output file (default: stdout)")
	rootCmd.PersistentFlags().StringVarP(&inputFile, "file", "f", "", "input request file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "", "output format: yaml, json, table, raw, msgpack")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "output as JSON (for piping)")
	rootCmd.PersistentFlags().StringVarP(&query, "query", "q", "", "jq expression applied to the result")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Add subcommands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(mfccCmd)
	rootCmd.AddCommand(similarityCmd)
	rootCmd.AddCommand(ctcCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(g2pCmd)
}

func initConfig() {
	// Configure slog based on verbose flag
	logLevel := slog.LevelWarn
	if verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})))

	var err error
	globalConfig, err = cli.LoadConfigWithPath(appName, cfgFile)
	if err != nil {
		// Analysis commands work without a config file.
		fmt.Fprintf(os.Stderr, "Warning: %s config: %v\n", appName, err)
	}
}

// getConfig returns the global configuration
func getConfig() (*cli.Config, error) {
	if globalConfig == nil {
		return nil, fmt.Errorf("configuration not initialized")
	}
	return globalConfig, nil
}

// getProfile returns the profile to use. Without a config, a named profile
// or a current profile, the empty profile is returned.
func getProfile() (*cli.Profile, error) {
	if globalConfig == nil {
		if profileName != "" {
			return nil, fmt.Errorf("profile %q requested but configuration failed to load", profileName)
		}
		return &cli.Profile{}, nil
	}
	return globalConfig.ResolveProfile(profileName)
}

// resolveFormat picks the output format: --json, then --format, then the
// profile default, then YAML.
func resolveFormat() (cli.OutputFormat, error) {
	if outputJSON {
		return cli.FormatJSON, nil
	}
	if outputFormat != "" {
		f := cli.OutputFormat(outputFormat)
		if !f.Valid() {
			return "", fmt.Errorf("unsupported output format: %s", outputFormat)
		}
		return f, nil
	}
	p, err := getProfile()
	if err != nil {
		return "", err
	}
	if p.Output != "" {
		return p.Output, nil
	}
	return cli.FormatYAML, nil
}

// outputResult outputs the result using cli package
func outputResult(result any) error {
	format, err := resolveFormat()
	if err != nil {
		return err
	}
	return cli.Output(result, cli.OutputOptions{
		Format: format,
		File:   outputFile,
		Query:  query,
	})
}

// printVerbose prints verbose output if enabled
func printVerbose(format string, args ...any) {
	cli.PrintVerbose(verbose, format, args...)
}
