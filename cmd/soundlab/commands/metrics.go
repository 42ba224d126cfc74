package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/haivivi/soundlab/pkg/cli"
	"github.com/haivivi/soundlab/pkg/metrics"
)

var metricsCmd = &cobra.Command{
	Use:   "metrics [reference] [hypothesis]",
	Short: "Word and character error rates",
	Long: `Compute WER and CER between a reference and a hypothesis transcript.

WER counts word edits, CER counts character edits with whitespace removed.
Both are (S + D + I) / N where N is the reference length. The displayed value
is clamped to 1, the raw value is not.

A batch of pairs can be read from a YAML or JSON file with -f ("-" reads
stdin):

  pairs:
    - reference: 나는 학교에 간다
      hypothesis: 나는 학교 간다

Examples:
  soundlab metrics "the cat sat on" "the cat sit on"
  soundlab metrics -f pairs.yaml --format table
  soundlab metrics --examples`,
	Args: cobra.MaximumNArgs(2),
	RunE: runMetrics,
}

type metricsPair struct {
	Reference  string `json:"reference" yaml:"reference"`
	Hypothesis string `json:"hypothesis" yaml:"hypothesis"`
	Name       string `json:"name,omitempty" yaml:"name,omitempty"`
}

type metricsRequest struct {
	Pairs []metricsPair `json:"pairs" yaml:"pairs"`
}

type metricsReport struct {
	Name string `json:"name,omitempty" yaml:"name,omitempty" msgpack:"name,omitempty"`
	metrics.Report `yaml:",inline" msgpack:",inline"`
}

func (r *metricsReport) Tables() []cli.Table {
	title := "Error rates"
	if r.Name != "" {
		title = r.Name
	}
	row := func(label string, m metrics.Result) []string {
		ops := m.Operations
		return []string{label, m.Percentage,
			fmt.Sprint(ops.Substitutions), fmt.Sprint(ops.Deletions), fmt.Sprint(ops.Insertions),
			fmt.Sprint(m.ReferenceLength), m.Formula}
	}
	return []cli.Table{
		{
			Title:   title,
			Headers: []string{"field", "value"},
			Rows: [][]string{
				{"reference", r.Reference},
				{"hypothesis", r.Hypothesis},
				{"similarity", formatFloat(r.Similarity)},
			},
		},
		{
			Headers: []string{"metric", "rate", "S", "D", "I", "N", "formula"},
			Rows:    [][]string{row("WER", r.WER), row("CER", r.CER)},
		},
	}
}

func runMetrics(cmd *cobra.Command, args []string) error {
	examples, err := cmd.Flags().GetBool("examples")
	if err != nil {
		return fmt.Errorf("failed to read 'examples' flag: %w", err)
	}

	var pairs []metricsPair
	switch {
	case examples:
		for _, ex := range metrics.Examples {
			pairs = append(pairs, metricsPair{Name: ex.Name, Reference: ex.Reference, Hypothesis: ex.Hypothesis})
		}
	case inputFile != "":
		var req metricsRequest
		if err := cli.LoadRequest(inputFile, &req); err != nil {
			return err
		}
		if len(req.Pairs) == 0 {
			return fmt.Errorf("no pairs in %s", inputFile)
		}
		pairs = req.Pairs
	case len(args) == 2:
		pairs = []metricsPair{{Reference: args[0], Hypothesis: args[1]}}
	default:
		return fmt.Errorf("need <reference> <hypothesis>, -f <file> or --examples")
	}

	reports := make([]*metricsReport, len(pairs))
	for i, p := range pairs {
		reports[i] = &metricsReport{Name: p.Name, Report: metrics.Calculate(p.Reference, p.Hypothesis)}
		printVerbose("%d: WER %s, CER %s", i, reports[i].WER.Percentage, reports[i].CER.Percentage)
	}
	if len(reports) == 1 && !examples && inputFile == "" {
		return outputResult(reports[0])
	}
	return outputResult(reportList[*metricsReport](reports))
}

func init() {
	metricsCmd.Flags().Bool("examples", false, "score the built-in example pairs")
}
