package commands

import (
	"context"
	"fmt"
	"runtime"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/haivivi/soundlab/pkg/audio/mfcc"
	"github.com/haivivi/soundlab/pkg/cli"
)

var mfccCmd = &cobra.Command{
	Use:   "mfcc",
	Short: "MFCC feature extraction",
	Long: `Mel-frequency cepstral coefficient extraction.

Input files may be .wav (PCM or float), .mp3, or headerless 16-bit
little-endian .pcm/.raw (use --rate to set its sample rate).

Examples:
  soundlab mfcc extract hello.wav
  soundlab mfcc extract a.wav b.wav --frame-size 400 --hop-size 160 --json
  soundlab mfcc summarize hello.wav -o hello.summary.yaml
  soundlab mfcc filterbank --rate 16000 --filters 26`,
}

// extractReport is the output of mfcc extract for one file.
type extractReport struct {
	File     string       `json:"file" yaml:"file" msgpack:"file"`
	Duration string       `json:"duration" yaml:"duration" msgpack:"duration"`
	Result   *mfcc.Result `json:"result" yaml:"result" msgpack:"result"`

	rows int
}

func (r *extractReport) Tables() []cli.Table {
	res := r.Result
	summary := cli.Table{
		Title:   r.File,
		Headers: []string{"field", "value"},
		Rows: [][]string{
			{"duration", r.Duration},
			{"sample_rate", strconv.Itoa(res.SampleRate)},
			{"fft_size", strconv.Itoa(res.FFTSize)},
			{"frames", strconv.Itoa(res.NumFrames())},
		},
	}

	frames := cli.Table{Title: "frames", Headers: []string{"#", "energy", "zcr", "c0", "c1", "c2", "c3"}}
	for i, f := range res.Frames {
		if i >= r.rows {
			frames.Rows = append(frames.Rows, []string{"…", fmt.Sprintf("%d more", res.NumFrames()-r.rows)})
			break
		}
		row := []string{strconv.Itoa(i), formatFloat(f.Energy), formatFloat(f.ZeroCrossingRate)}
		for c := 0; c < 4 && c < len(f.MFCC); c++ {
			row = append(row, formatFloat(f.MFCC[c]))
		}
		frames.Rows = append(frames.Rows, row)
	}
	return []cli.Table{summary, frames}
}

// summaryReport is the output of mfcc summarize for one file.
type summaryReport struct {
	File string `json:"file" yaml:"file" msgpack:"file"`
	mfcc.VoiceFeatures `yaml:",inline" msgpack:",inline"`
}

func (r *summaryReport) Tables() []cli.Table {
	t := cli.Table{
		Title:   r.File,
		Headers: []string{"coeff", "mean", "std"},
	}
	for i := range r.MFCCMean {
		t.Rows = append(t.Rows, []string{"c" + strconv.Itoa(i), formatFloat(r.MFCCMean[i]), formatFloat(r.MFCCStd[i])})
	}
	stats := cli.Table{
		Title:   "summary",
		Headers: []string{"field", "value"},
		Rows: [][]string{
			{"frames", strconv.Itoa(r.NumFrames)},
			{"avg_energy", formatFloat(r.AvgEnergy)},
			{"avg_zcr", formatFloat(r.AvgZCR)},
			{"avg_pitch", formatFloat(r.AvgPitch)},
		},
	}
	return []cli.Table{stats, t}
}

// reportList renders several reports as one table output.
type reportList[T cli.Tabler] []T

func (l reportList[T]) Tables() []cli.Table {
	var out []cli.Table
	for _, r := range l {
		out = append(out, r.Tables()...)
	}
	return out
}

// analyzeFiles runs fn over paths concurrently and keeps the input order.
func analyzeFiles[T any](ctx context.Context, paths []string, fn func(path string) (T, error)) ([]T, error) {
	out := make([]T, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			v, err := fn(path)
			if err != nil {
				return err
			}
			out[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// extractFiles decodes each file and runs MFCC extraction on it.
func extractFiles(cmd *cobra.Command, paths []string, applyCMVN bool) ([]*extractReport, error) {
	p, err := getProfile()
	if err != nil {
		return nil, err
	}
	opts, err := mfccOptions(cmd, p)
	if err != nil {
		return nil, err
	}
	loader, err := newAudioLoader(cmd, p)
	if err != nil {
		return nil, err
	}
	return analyzeFiles(cmd.Context(), paths, func(path string) (*extractReport, error) {
		buf, err := loader.load(path)
		if err != nil {
			return nil, err
		}
		res, err := mfcc.ExtractMFCC(buf.Samples, buf.SampleRate, opts)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if applyCMVN {
			mfcc.CMVN(res.MFCCMatrix())
		}
		printVerbose("%s: %d frames", path, res.NumFrames())
		return &extractReport{
			File:     path,
			Duration: cli.FormatDuration(buf.Duration()),
			Result:   res,
		}, nil
	})
}

var mfccExtractCmd = &cobra.Command{
	Use:   "extract <file>...",
	Short: "Extract per-frame MFCCs",
	Long: `Extract per-frame MFCC vectors, mel energies, energy and zero-crossing
rate. Several files are processed in parallel.

Examples:
  soundlab mfcc extract hello.wav
  soundlab mfcc extract hello.wav --cmvn --format table --rows 10
  soundlab mfcc extract voice.pcm --rate 24000 --resample 16000 --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		applyCMVN, err := cmd.Flags().GetBool("cmvn")
		if err != nil {
			return fmt.Errorf("failed to read 'cmvn' flag: %w", err)
		}
		reports, err := extractFiles(cmd, args, applyCMVN)
		if err != nil {
			return err
		}
		rows, err := cmd.Flags().GetInt("rows")
		if err != nil {
			return fmt.Errorf("failed to read 'rows' flag: %w", err)
		}
		for _, r := range reports {
			r.rows = rows
		}
		if len(reports) == 1 {
			return outputResult(reports[0])
		}
		return outputResult(reportList[*extractReport](reports))
	},
}

var mfccSummarizeCmd = &cobra.Command{
	Use:   "summarize <file>...",
	Short: "Summarize MFCCs into a voice feature vector",
	Long: `Compute per-coefficient mean and standard deviation, average energy,
zero-crossing rate and a rough pitch value. The output can be saved and
later passed to 'soundlab similarity'.

Note: avg_pitch is a placeholder derived from the first cepstral
coefficient, not a pitch detector.

Examples:
  soundlab mfcc summarize alice.wav -o alice.yaml
  soundlab mfcc summarize alice.wav --format msgpack -o alice.msgpack`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reports, err := extractFiles(cmd, args, false)
		if err != nil {
			return err
		}
		out := make([]*summaryReport, len(reports))
		for i, r := range reports {
			out[i] = &summaryReport{File: r.File, VoiceFeatures: mfcc.Summarize(r.Result)}
		}
		if len(out) == 1 {
			return outputResult(out[0])
		}
		return outputResult(reportList[*summaryReport](out))
	},
}

// filterBankReport describes the extent of each mel filter.
type filterBankReport struct {
	SampleRate int            `json:"sample_rate" yaml:"sample_rate" msgpack:"sample_rate"`
	FFTSize    int            `json:"fft_size" yaml:"fft_size" msgpack:"fft_size"`
	Filters    []filterExtent `json:"filters" yaml:"filters" msgpack:"filters"`
	Weights    [][]float64    `json:"weights,omitempty" yaml:"weights,omitempty" msgpack:"weights,omitempty"`
}

type filterExtent struct {
	Index     int     `json:"index" yaml:"index" msgpack:"index"`
	StartBin  int     `json:"start_bin" yaml:"start_bin" msgpack:"start_bin"`
	PeakBin   int     `json:"peak_bin" yaml:"peak_bin" msgpack:"peak_bin"`
	EndBin    int     `json:"end_bin" yaml:"end_bin" msgpack:"end_bin"`
	PeakHz    float64 `json:"peak_hz" yaml:"peak_hz" msgpack:"peak_hz"`
	NonZero   int     `json:"non_zero" yaml:"non_zero" msgpack:"non_zero"`
	PeakValue float64 `json:"peak_value" yaml:"peak_value" msgpack:"peak_value"`
}

func (r *filterBankReport) Tables() []cli.Table {
	t := cli.Table{
		Title:   fmt.Sprintf("mel filter bank (%d Hz, fft %d)", r.SampleRate, r.FFTSize),
		Headers: []string{"#", "start", "peak", "end", "peak_hz", "weight"},
	}
	for _, f := range r.Filters {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(f.Index),
			strconv.Itoa(f.StartBin),
			strconv.Itoa(f.PeakBin),
			strconv.Itoa(f.EndBin),
			strconv.FormatFloat(f.PeakHz, 'f', 1, 64),
			formatFloat(f.PeakValue),
		})
	}
	return []cli.Table{t}
}

func describeFilterBank(fb mfcc.FilterBank, fftSize, sampleRate int) []filterExtent {
	out := make([]filterExtent, 0, fb.NumFilters())
	for i, row := range fb {
		ext := filterExtent{Index: i, StartBin: -1, EndBin: -1, PeakBin: -1}
		for k, w := range row {
			if w <= 0 {
				continue
			}
			if ext.StartBin < 0 {
				ext.StartBin = k
			}
			ext.EndBin = k
			ext.NonZero++
			if w > ext.PeakValue {
				ext.PeakValue = w
				ext.PeakBin = k
			}
		}
		if ext.PeakBin >= 0 {
			ext.PeakHz = float64(ext.PeakBin) * float64(sampleRate) / float64(fftSize)
		}
		out = append(out, ext)
	}
	return out
}

var mfccFilterBankCmd = &cobra.Command{
	Use:   "filterbank",
	Short: "Show the mel filter bank layout",
	Long: `Build a triangular mel filter bank and print where each filter sits in
the FFT spectrum. Filters squeezed into a single bin are reported with
zero weight rather than failing.

Examples:
  soundlab mfcc filterbank --rate 16000 --fft-size 512 --filters 26
  soundlab mfcc filterbank --filters 40 --fft-size 16 --format table
  soundlab mfcc filterbank --weights --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rate, err := cmd.Flags().GetInt("rate")
		if err != nil {
			return fmt.Errorf("failed to read 'rate' flag: %w", err)
		}
		fftSize, err := cmd.Flags().GetInt("fft-size")
		if err != nil {
			return fmt.Errorf("failed to read 'fft-size' flag: %w", err)
		}
		filters, err := cmd.Flags().GetInt("filters")
		if err != nil {
			return fmt.Errorf("failed to read 'filters' flag: %w", err)
		}
		low, err := cmd.Flags().GetFloat64("low-freq")
		if err != nil {
			return fmt.Errorf("failed to read 'low-freq' flag: %w", err)
		}
		high, err := cmd.Flags().GetFloat64("high-freq")
		if err != nil {
			return fmt.Errorf("failed to read 'high-freq' flag: %w", err)
		}
		withWeights, err := cmd.Flags().GetBool("weights")
		if err != nil {
			return fmt.Errorf("failed to read 'weights' flag: %w", err)
		}

		fb := mfcc.BuildFilterBank(filters, fftSize, rate, low, high)
		if fb == nil {
			return fmt.Errorf("%w: %d filters, fft size %d, rate %d", mfcc.ErrInvalidOptions, filters, fftSize, rate)
		}
		report := &filterBankReport{
			SampleRate: rate,
			FFTSize:    fftSize,
			Filters:    describeFilterBank(fb, fftSize, rate),
		}
		if withWeights {
			report.Weights = fb
		}
		return outputResult(report)
	},
}

func init() {
	for _, c := range []*cobra.Command{mfccExtractCmd, mfccSummarizeCmd} {
		addAudioFlags(c)
		addMFCCFlags(c)
	}
	mfccExtractCmd.Flags().Bool("cmvn", false, "apply cepstral mean and variance normalization")
	mfccExtractCmd.Flags().Int("rows", 20, "maximum frames shown in table output")

	mfccFilterBankCmd.Flags().Int("rate", 16000, "sample rate in Hz")
	mfccFilterBankCmd.Flags().Int("fft-size", 512, "FFT size")
	mfccFilterBankCmd.Flags().Int("filters", 26, "number of mel filters")
	mfccFilterBankCmd.Flags().Float64("low-freq", 0, "lowest filter edge in Hz")
	mfccFilterBankCmd.Flags().Float64("high-freq", 0, "highest filter edge in Hz (default rate/2)")
	mfccFilterBankCmd.Flags().Bool("weights", false, "include the full weight matrix")

	mfccCmd.AddCommand(mfccExtractCmd)
	mfccCmd.AddCommand(mfccSummarizeCmd)
	mfccCmd.AddCommand(mfccFilterBankCmd)
}
