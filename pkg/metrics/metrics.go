// Package metrics scores speech recognition output against a reference
// transcript.
//
// Both metrics use the same formula over different units:
//
//	rate = (S + D + I) / N
//
// where S, D and I are the substitutions, deletions and insertions of the
// minimum edit alignment and N is the reference length. WER counts
// whitespace-separated words. CER counts characters with all whitespace
// removed, which is the fairer measure for agglutinative languages such as
// Korean where one wrong particle changes a whole word.
package metrics

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/antzucaro/matchr"
)

// Result is one error-rate measurement.
type Result struct {
	// Value is the error rate clamped to [0, 1].
	Value float64 `json:"value" yaml:"value" msgpack:"value"`
	// RawValue is the unclamped rate; insertions can push it above 1.
	RawValue        float64    `json:"raw_value" yaml:"raw_value" msgpack:"raw_value"`
	Percentage      string     `json:"percentage" yaml:"percentage" msgpack:"percentage"`
	Distance        int        `json:"distance" yaml:"distance" msgpack:"distance"`
	ReferenceLength int        `json:"reference_length" yaml:"reference_length" msgpack:"reference_length"`
	Operations      Operations `json:"operations" yaml:"operations" msgpack:"operations"`
	Formula         string     `json:"formula" yaml:"formula" msgpack:"formula"`
}

// Words splits s on runs of whitespace.
func Words(s string) []string {
	return strings.Fields(s)
}

// Chars returns the runes of s with every whitespace rune removed.
func Chars(s string) []rune {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if !unicode.IsSpace(r) {
			out = append(out, r)
		}
	}
	return out
}

// WER returns the word error rate of hypothesis against reference.
func WER(reference, hypothesis string) Result {
	return rate(Words(reference), Words(hypothesis))
}

// CER returns the character error rate of hypothesis against reference.
func CER(reference, hypothesis string) Result {
	return rate(Chars(reference), Chars(hypothesis))
}

func rate[T comparable](ref, hyp []T) Result {
	if len(ref) == 0 {
		n := len(hyp)
		value := 0.0
		if n > 0 {
			value = 1
		}
		return Result{
			Value:      value,
			RawValue:   value,
			Percentage: percentage(value),
			Distance:   n,
			Operations: Operations{Insertions: n},
			Formula:    fmt.Sprintf("(0 + 0 + %d) / 0", n),
		}
	}

	a := Levenshtein(ref, hyp)
	raw := float64(a.Distance) / float64(len(ref))
	value := min(raw, 1)
	return Result{
		Value:           value,
		RawValue:        raw,
		Percentage:      percentage(value),
		Distance:        a.Distance,
		ReferenceLength: len(ref),
		Operations:      a.Operations,
		Formula: fmt.Sprintf("(%d + %d + %d) / %d",
			a.Operations.Substitutions, a.Operations.Deletions, a.Operations.Insertions, len(ref)),
	}
}

func percentage(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100)
}

// Report combines both error rates for one reference/hypothesis pair.
type Report struct {
	Reference  string `json:"reference" yaml:"reference" msgpack:"reference"`
	Hypothesis string `json:"hypothesis" yaml:"hypothesis" msgpack:"hypothesis"`
	WER        Result `json:"wer" yaml:"wer" msgpack:"wer"`
	CER        Result `json:"cer" yaml:"cer" msgpack:"cer"`

	// Similarity is the Jaro-Winkler similarity of the whitespace-free
	// strings, in [0, 1]. It is informational and not an error rate.
	Similarity float64 `json:"similarity" yaml:"similarity" msgpack:"similarity"`
}

// Calculate computes WER, CER and string similarity for one pair.
func Calculate(reference, hypothesis string) Report {
	ref, hyp := string(Chars(reference)), string(Chars(hypothesis))
	sim := 0.0
	switch {
	case ref == hyp:
		sim = 1
	case ref != "" && hyp != "":
		sim = matchr.JaroWinkler(ref, hyp, false)
	}
	return Report{
		Reference:  reference,
		Hypothesis: hypothesis,
		WER:        WER(reference, hypothesis),
		CER:        CER(reference, hypothesis),
		Similarity: sim,
	}
}
