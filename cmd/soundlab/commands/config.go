package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/haivivi/soundlab/pkg/audio/mfcc"
	"github.com/haivivi/soundlab/pkg/cli"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
	Long: `Manage SoundLab CLI configuration.

Configuration is stored in ~/.soundlab/soundlab/config.yaml.
Profiles hold analysis defaults (sample rate, MFCC parameters, output
format, G2P rule file). Select one per command with -p or set a default
with use-profile.`,
}

var configAddProfileCmd = &cobra.Command{
	Use:   "add-profile <name>",
	Short: "Add or replace a profile",
	Long: `Add a profile with analysis defaults.

Examples:
  soundlab config add-profile asr --sample-rate 16000 --coeffs 20
  soundlab config add-profile phone --raw-rate 8000 --output-format table
  soundlab config add-profile ko --g2p-rules ~/rules.yaml --extra note=korean`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		sampleRate, err := cmd.Flags().GetInt("sample-rate")
		if err != nil {
			return fmt.Errorf("failed to read 'sample-rate' flag: %w", err)
		}
		rawRate, err := cmd.Flags().GetInt("raw-rate")
		if err != nil {
			return fmt.Errorf("failed to read 'raw-rate' flag: %w", err)
		}
		format, err := cmd.Flags().GetString("output-format")
		if err != nil {
			return fmt.Errorf("failed to read 'output-format' flag: %w", err)
		}
		rules, err := cmd.Flags().GetString("g2p-rules")
		if err != nil {
			return fmt.Errorf("failed to read 'g2p-rules' flag: %w", err)
		}
		extra, err := cmd.Flags().GetStringToString("extra")
		if err != nil {
			return fmt.Errorf("failed to read 'extra' flag: %w", err)
		}
		opts, err := mfccOptions(cmd, &cli.Profile{})
		if err != nil {
			return err
		}

		p := &cli.Profile{
			Name:       name,
			SampleRate: sampleRate,
			RawRate:    rawRate,
			Output:     cli.OutputFormat(format),
			G2PRules:   rules,
		}
		for k, v := range extra {
			p.SetExtra(k, v)
		}
		if opts != (mfcc.Options{}) {
			p.MFCC = &cli.MFCCSettings{
				FrameSize:     opts.FrameSize,
				HopSize:       opts.HopSize,
				NumMelFilters: opts.NumMelFilters,
				NumMFCCCoeffs: opts.NumMFCCCoeffs,
				PreEmphasis:   opts.PreEmphasis,
				LowFreq:       opts.LowFreq,
				HighFreq:      opts.HighFreq,
			}
		}

		cfg, err := getConfig()
		if err != nil {
			return err
		}
		if err := cfg.AddProfile(name, p); err != nil {
			return err
		}
		cli.PrintSuccess("Profile '%s' saved to %s", name, cfg.Path())
		return nil
	},
}

var configDeleteProfileCmd = &cobra.Command{
	Use:   "delete-profile <name>",
	Short: "Delete a profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		cfg, err := getConfig()
		if err != nil {
			return err
		}
		wasCurrent := cfg.CurrentProfile == name
		if err := cfg.DeleteProfile(name); err != nil {
			return err
		}
		cli.PrintSuccess("Profile '%s' deleted", name)
		if wasCurrent {
			cli.PrintWarning("No profile is active now; use 'soundlab config use-profile' to pick one")
		}
		return nil
	},
}

var configUseProfileCmd = &cobra.Command{
	Use:   "use-profile <name>",
	Short: "Set the default profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		cfg, err := getConfig()
		if err != nil {
			return err
		}
		if err := cfg.UseProfile(name); err != nil {
			return err
		}
		cli.PrintSuccess("Switched to profile '%s'", name)
		return nil
	},
}

var configGetProfileCmd = &cobra.Command{
	Use:   "get-profile",
	Short: "Show the current profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := getConfig()
		if err != nil {
			return err
		}
		if cfg.CurrentProfile == "" {
			cli.PrintInfo("No current profile set")
		} else {
			fmt.Println(cfg.CurrentProfile)
		}
		return nil
	},
}

var configListProfilesCmd = &cobra.Command{
	Use:   "list-profiles",
	Short: "List all profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := getConfig()
		if err != nil {
			return err
		}
		names := cfg.ListProfiles()
		if len(names) == 0 {
			cli.PrintInfo("No profiles configured")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "CURRENT\tNAME\tRATE\tOUTPUT\tG2P RULES")
		for _, name := range names {
			p := cfg.Profiles[name]
			marker := ""
			if name == cfg.CurrentProfile {
				marker = "*"
			}
			rate := "-"
			if p.SampleRate > 0 {
				rate = fmt.Sprint(p.SampleRate)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", marker, name, rate, orDash(string(p.Output)), orDash(p.G2PRules))
		}
		return w.Flush()
	},
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

var configViewCmd = &cobra.Command{
	Use:   "view",
	Short: "View full configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := getConfig()
		if err != nil {
			return err
		}
		return outputResult(cfg)
	},
}

func init() {
	configAddProfileCmd.Flags().Int("sample-rate", 0, "resample audio to this rate before analysis")
	configAddProfileCmd.Flags().Int("raw-rate", 0, "sample rate of headerless .pcm files")
	configAddProfileCmd.Flags().String("output-format", "", "default output format")
	configAddProfileCmd.Flags().String("g2p-rules", "", "custom G2P rule table")
	configAddProfileCmd.Flags().StringToString("extra", nil, "free-form settings (key=value,...)")
	addMFCCFlags(configAddProfileCmd)

	configCmd.AddCommand(configAddProfileCmd)
	configCmd.AddCommand(configDeleteProfileCmd)
	configCmd.AddCommand(configUseProfileCmd)
	configCmd.AddCommand(configGetProfileCmd)
	configCmd.AddCommand(configListProfilesCmd)
	configCmd.AddCommand(configViewCmd)
}
