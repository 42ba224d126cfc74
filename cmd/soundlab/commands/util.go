package commands

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/haivivi/soundlab/pkg/audio/mfcc"
	"github.com/haivivi/soundlab/pkg/audio/pcm"
	"github.com/haivivi/soundlab/pkg/audio/resampler"
	"github.com/haivivi/soundlab/pkg/cli"
)

// addAudioFlags registers the flags shared by commands that read audio.
func addAudioFlags(cmd *cobra.Command) {
	cmd.Flags().Int("rate", 0, "sample rate of headerless .pcm/.raw input (default 16000)")
	cmd.Flags().Int("resample", 0, "resample input to this rate before analysis")
}

// addMFCCFlags registers the extraction option flags.
func addMFCCFlags(cmd *cobra.Command) {
	cmd.Flags().Int("frame-size", 0, "samples per frame (default 512)")
	cmd.Flags().Int("hop-size", 0, "samples between frames (default 256)")
	cmd.Flags().Int("mel-filters", 0, "number of mel filters (default 26)")
	cmd.Flags().Int("coeffs", 0, "number of MFCC coefficients (default 13)")
	cmd.Flags().Float64("pre-emphasis", 0, "pre-emphasis coefficient (default 0.97, negative disables)")
	cmd.Flags().Float64("low-freq", 0, "lowest filter edge in Hz")
	cmd.Flags().Float64("high-freq", 0, "highest filter edge in Hz (default rate/2)")
}

// mfccOptions merges profile settings with command-line flags. Flags that
// were set explicitly win.
func mfccOptions(cmd *cobra.Command, p *cli.Profile) (mfcc.Options, error) {
	var opts mfcc.Options
	if s := p.MFCC; s != nil {
		opts = mfcc.Options{
			FrameSize:     s.FrameSize,
			HopSize:       s.HopSize,
			NumMelFilters: s.NumMelFilters,
			NumMFCCCoeffs: s.NumMFCCCoeffs,
			PreEmphasis:   s.PreEmphasis,
			LowFreq:       s.LowFreq,
			HighFreq:      s.HighFreq,
		}
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{"frame-size", &opts.FrameSize},
		{"hop-size", &opts.HopSize},
		{"mel-filters", &opts.NumMelFilters},
		{"coeffs", &opts.NumMFCCCoeffs},
	}
	for _, f := range ints {
		if !cmd.Flags().Changed(f.name) {
			continue
		}
		v, err := cmd.Flags().GetInt(f.name)
		if err != nil {
			return opts, fmt.Errorf("failed to read '%s' flag: %w", f.name, err)
		}
		*f.dst = v
	}

	floats := []struct {
		name string
		dst  *float64
	}{
		{"pre-emphasis", &opts.PreEmphasis},
		{"low-freq", &opts.LowFreq},
		{"high-freq", &opts.HighFreq},
	}
	for _, f := range floats {
		if !cmd.Flags().Changed(f.name) {
			continue
		}
		v, err := cmd.Flags().GetFloat64(f.name)
		if err != nil {
			return opts, fmt.Errorf("failed to read '%s' flag: %w", f.name, err)
		}
		*f.dst = v
	}
	return opts, nil
}

// audioLoader decodes files and brings them to the target sample rate.
type audioLoader struct {
	rawFormat pcm.Format
	target    int
}

func newAudioLoader(cmd *cobra.Command, p *cli.Profile) (*audioLoader, error) {
	rawRate, err := cmd.Flags().GetInt("rate")
	if err != nil {
		return nil, fmt.Errorf("failed to read 'rate' flag: %w", err)
	}
	if rawRate == 0 {
		rawRate = p.RawRate
	}
	if rawRate == 0 {
		rawRate = 16000
	}
	rawFormat, err := pcm.FormatForRate(rawRate)
	if err != nil {
		return nil, err
	}

	target, err := cmd.Flags().GetInt("resample")
	if err != nil {
		return nil, fmt.Errorf("failed to read 'resample' flag: %w", err)
	}
	if target == 0 {
		target = p.SampleRate
	}
	return &audioLoader{rawFormat: rawFormat, target: target}, nil
}

func (l *audioLoader) load(path string) (*pcm.Buffer, error) {
	if verbose {
		if fi, err := os.Stat(path); err == nil {
			printVerbose("%s: %s", path, cli.FormatBytes(fi.Size()))
		}
	}
	buf, err := pcm.Load(path, l.rawFormat)
	if err != nil {
		return nil, err
	}
	printVerbose("%s: %d samples at %s (%s)", path, buf.Len(), cli.FormatHz(buf.SampleRate),
		cli.FormatDuration(buf.Duration()))

	if l.target > 0 && l.target != buf.SampleRate {
		printVerbose("%s: resampling %s -> %s", path, cli.FormatHz(buf.SampleRate), cli.FormatHz(l.target))
		buf, err = resampler.Buffer(buf, l.target)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return buf, nil
}

// formatFloat renders a value for table output.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
