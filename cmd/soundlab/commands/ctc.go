package commands

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/spf13/cobra"

	"github.com/haivivi/soundlab/pkg/cli"
	"github.com/haivivi/soundlab/pkg/ctc"
)

var ctcCmd = &cobra.Command{
	Use:   "ctc",
	Short: "CTC greedy decoding",
	Long: `Connectionist Temporal Classification decoding, step by step.

A trace is a list of per-frame labels. Separate labels with "-", "," or
whitespace (checked in that order), or give a plain word to split it into
characters. "ε", "-" and "blank" are blank labels.

Examples:
  soundlab ctc decode "ε,H,H,ε,E,ε,L,L,ε,L,O"
  soundlab ctc generate HELLO --seed 42
  soundlab ctc quiz --difficulty hard`,
}

type decodeReport struct {
	Input  []string   `json:"input" yaml:"input" msgpack:"input"`
	Steps  []ctc.Step `json:"steps" yaml:"steps" msgpack:"steps"`
	Output string     `json:"output" yaml:"output" msgpack:"output"`
}

func newDecodeReport(input []string) *decodeReport {
	return &decodeReport{
		Input:  input,
		Steps:  ctc.DecodeWithSteps(input),
		Output: ctc.Decode(input),
	}
}

func (r *decodeReport) String() string { return r.Output }

func (r *decodeReport) Tables() []cli.Table {
	t := cli.Table{
		Title:   "CTC decode",
		Headers: []string{"step", "title", "sequence"},
	}
	for _, s := range r.Steps {
		t.Rows = append(t.Rows, []string{fmt.Sprint(s.Index), s.Title, strings.Join(s.Sequence, " ")})
	}
	t.Rows = append(t.Rows, []string{"", "output", r.Output})
	return []cli.Table{t}
}

var ctcDecodeCmd = &cobra.Command{
	Use:   "decode <trace>...",
	Short: "Decode a CTC trace",
	Long: `Collapse consecutive duplicates, then remove blanks.

Arguments are joined with spaces before parsing, so both of these work:
  soundlab ctc decode ε H H E L ε L O
  soundlab ctc decode "ε-H-H-E-L-ε-L-O"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := ctc.ParseInput(strings.Join(args, " "))
		printVerbose("Parsed %d labels", len(input))
		return outputResult(newDecodeReport(input))
	},
}

// seededRand returns a generator seeded from --seed, or nil for a random
// seed.
func seededRand(cmd *cobra.Command) (*rand.Rand, error) {
	if !cmd.Flags().Changed("seed") {
		return nil, nil
	}
	seed, err := cmd.Flags().GetUint64("seed")
	if err != nil {
		return nil, fmt.Errorf("failed to read 'seed' flag: %w", err)
	}
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef)), nil
}

var ctcGenerateCmd = &cobra.Command{
	Use:   "generate <word>",
	Short: "Generate a noisy CTC trace for a word",
	Long: `Generate a plausible CTC trace: each character may be preceded by a
blank and is repeated one to three times, and the trace ends with a blank.
The trace always decodes back to the word.

Examples:
  soundlab ctc generate HELLO
  soundlab ctc generate HELLO --seed 7 --format table`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rng, err := seededRand(cmd)
		if err != nil {
			return err
		}
		return outputResult(newDecodeReport(ctc.GenerateRandom(args[0], rng)))
	},
}

type quizReport struct {
	Difficulty ctc.Difficulty `json:"difficulty" yaml:"difficulty" msgpack:"difficulty"`
	Input      []string       `json:"input" yaml:"input" msgpack:"input"`
	Hint       string         `json:"hint" yaml:"hint" msgpack:"hint"`
	Answer     string         `json:"answer,omitempty" yaml:"answer,omitempty" msgpack:"answer,omitempty"`
	Guess      string         `json:"guess,omitempty" yaml:"guess,omitempty" msgpack:"guess,omitempty"`
	Correct    *bool          `json:"correct,omitempty" yaml:"correct,omitempty" msgpack:"correct,omitempty"`
}

func (r *quizReport) Tables() []cli.Table {
	t := cli.Table{
		Title:   "CTC quiz (" + string(r.Difficulty) + ")",
		Headers: []string{"field", "value"},
		Rows: [][]string{
			{"trace", strings.Join(r.Input, " ")},
			{"hint", r.Hint},
		},
	}
	if r.Guess != "" {
		t.Rows = append(t.Rows, []string{"guess", r.Guess})
	}
	if r.Correct != nil {
		t.Rows = append(t.Rows, []string{"correct", fmt.Sprint(*r.Correct)})
	}
	if r.Answer != "" {
		t.Rows = append(t.Rows, []string{"answer", r.Answer})
	}
	return []cli.Table{t}
}

var ctcQuizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Practice decoding on a random word",
	Long: `Print a random CTC trace to decode by hand. Pass --answer to check a
guess; the same --seed reproduces the same quiz.

Examples:
  soundlab ctc quiz --difficulty medium --seed 3
  soundlab ctc quiz --difficulty medium --seed 3 --answer APPLE`,
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := cmd.Flags().GetString("difficulty")
		if err != nil {
			return fmt.Errorf("failed to read 'difficulty' flag: %w", err)
		}
		d, err := ctc.ParseDifficulty(level)
		if err != nil {
			return err
		}
		rng, err := seededRand(cmd)
		if err != nil {
			return err
		}
		guess, err := cmd.Flags().GetString("answer")
		if err != nil {
			return fmt.Errorf("failed to read 'answer' flag: %w", err)
		}
		reveal, err := cmd.Flags().GetBool("reveal")
		if err != nil {
			return fmt.Errorf("failed to read 'reveal' flag: %w", err)
		}

		q, err := ctc.GenerateQuiz(d, rng)
		if err != nil {
			return err
		}
		report := &quizReport{Difficulty: q.Difficulty, Input: q.Input, Hint: q.Hint}
		if guess != "" {
			ok := q.Check(guess)
			report.Guess = guess
			report.Correct = &ok
			reveal = true
		}
		if reveal {
			report.Answer = q.Answer
		}
		return outputResult(report)
	},
}

func init() {
	for _, c := range []*cobra.Command{ctcGenerateCmd, ctcQuizCmd} {
		c.Flags().Uint64("seed", 0, "random seed (default: time based)")
	}
	ctcQuizCmd.Flags().String("difficulty", "easy", "easy, medium or hard")
	ctcQuizCmd.Flags().String("answer", "", "check this answer")
	ctcQuizCmd.Flags().Bool("reveal", false, "show the answer")

	ctcCmd.AddCommand(ctcDecodeCmd)
	ctcCmd.AddCommand(ctcGenerateCmd)
	ctcCmd.AddCommand(ctcQuizCmd)
}
