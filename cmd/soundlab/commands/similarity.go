package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/haivivi/soundlab/pkg/audio/mfcc"
	"github.com/haivivi/soundlab/pkg/cli"
)

type similarityReport struct {
	A          string  `json:"a" yaml:"a" msgpack:"a"`
	B          string  `json:"b" yaml:"b" msgpack:"b"`
	Similarity float64 `json:"similarity" yaml:"similarity" msgpack:"similarity"`
	Percentage string  `json:"percentage" yaml:"percentage" msgpack:"percentage"`
}

func (r *similarityReport) Tables() []cli.Table {
	return []cli.Table{{
		Title:   "speaker similarity",
		Headers: []string{"a", "b", "cosine", "percent"},
		Rows:    [][]string{{r.A, r.B, formatFloat(r.Similarity), r.Percentage}},
	}}
}

func (r *similarityReport) String() string {
	return formatFloat(r.Similarity)
}

// isSummaryFile reports whether path holds a saved summary rather than audio.
func isSummaryFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json", ".msgpack", ".mp":
		return true
	}
	return false
}

// loadSummary reads a summary written by 'mfcc summarize' in YAML, JSON or
// msgpack.
func loadSummary(path string) (mfcc.VoiceFeatures, error) {
	var vf mfcc.VoiceFeatures
	if err := cli.LoadRequest(path, &vf); err != nil {
		return mfcc.VoiceFeatures{}, fmt.Errorf("%s: %w", path, err)
	}
	if len(vf.MFCCMean) == 0 {
		return mfcc.VoiceFeatures{}, fmt.Errorf("%s: no mfcc_mean in summary", path)
	}
	return vf, nil
}

var similarityCmd = &cobra.Command{
	Use:   "similarity <a> <b>",
	Short: "Compare two voices by MFCC summary",
	Long: `Cosine similarity between the MFCC mean vectors of two recordings.

Each argument is an audio file or a summary saved by 'soundlab mfcc
summarize' (.yaml, .json or .msgpack). The result lies in [-1, 1]; it is 0
when the vectors differ in length or one of them is all zeros.

Examples:
  soundlab similarity alice1.wav alice2.wav
  soundlab similarity alice.yaml unknown.wav --format raw`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var audio []string
		for _, a := range args {
			if !isSummaryFile(a) {
				audio = append(audio, a)
			}
		}

		extracted := map[string]mfcc.VoiceFeatures{}
		if len(audio) > 0 {
			reports, err := extractFiles(cmd, audio, false)
			if err != nil {
				return err
			}
			for _, r := range reports {
				extracted[r.File] = mfcc.Summarize(r.Result)
			}
		}

		features := make([]mfcc.VoiceFeatures, 2)
		for i, a := range args {
			if vf, ok := extracted[a]; ok {
				features[i] = vf
				continue
			}
			vf, err := loadSummary(a)
			if err != nil {
				return err
			}
			features[i] = vf
		}

		sim := mfcc.Similarity(features[0], features[1])
		return outputResult(&similarityReport{
			A:          args[0],
			B:          args[1],
			Similarity: sim,
			Percentage: fmt.Sprintf("%.2f%%", sim*100),
		})
	},
}

func init() {
	addAudioFlags(similarityCmd)
	addMFCCFlags(similarityCmd)
}
