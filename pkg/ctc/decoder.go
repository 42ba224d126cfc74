// Package ctc simulates greedy Connectionist Temporal Classification
// decoding for teaching.
//
// A CTC acoustic model emits one label per frame, including a blank label
// between characters. Greedy decoding turns that frame sequence into text in
// two passes:
//
//	ε H H ε E ε L L ε L O      raw frame labels
//	ε H ε E ε L ε L O          collapse consecutive duplicates
//	H E L L O                  remove blanks
//
// DecodeWithSteps returns every intermediate sequence so a caller can show
// the process step by step.
package ctc

import (
	"strings"
	"unicode"
)

// Blank is the canonical blank label.
const Blank = "ε"

// IsBlank reports whether tok is a blank label. "ε", "-" and "blank" (any
// case) are all accepted, so a literal "-" symbol cannot be decoded.
func IsBlank(tok string) bool {
	return tok == Blank || tok == "-" || strings.EqualFold(tok, "blank")
}

// Step is one stage of a decode trace.
type Step struct {
	Index       int      `json:"step" yaml:"step" msgpack:"step"`
	Title       string   `json:"title" yaml:"title" msgpack:"title"`
	Description string   `json:"description" yaml:"description" msgpack:"description"`
	Sequence    []string `json:"sequence" yaml:"sequence" msgpack:"sequence"`
	Highlighted []int    `json:"highlighted" yaml:"highlighted" msgpack:"highlighted"`
}

// DecodeWithSteps decodes input and returns the three-step trace: the raw
// input, the run-length collapsed sequence, and the sequence with blanks
// removed. Every step owns its slices; input is not modified.
func DecodeWithSteps(input []string) []Step {
	raw := make([]string, len(input))
	copy(raw, input)

	collapsed := make([]string, 0, len(input))
	collapsedHL := make([]int, 0, len(input))
	for i, tok := range input {
		if i > 0 && tok == input[i-1] {
			continue
		}
		collapsed = append(collapsed, tok)
		collapsedHL = append(collapsedHL, len(collapsed)-1)
	}

	final := make([]string, 0, len(collapsed))
	finalHL := make([]int, 0, len(collapsed))
	for _, tok := range collapsed {
		if IsBlank(tok) {
			continue
		}
		final = append(final, tok)
		finalHL = append(finalHL, len(final)-1)
	}

	return []Step{
		{
			Index:       0,
			Title:       "Raw CTC Output",
			Description: "Labels emitted by the model, one per frame.",
			Sequence:    raw,
			Highlighted: []int{},
		},
		{
			Index:       1,
			Title:       "Collapse Consecutive Duplicates",
			Description: "Runs of the same label merge into one (e.g. HH -> H).",
			Sequence:    collapsed,
			Highlighted: collapsedHL,
		},
		{
			Index:       2,
			Title:       "Remove Blanks (ε)",
			Description: "Blank labels (ε) are dropped, leaving the final output.",
			Sequence:    final,
			Highlighted: finalHL,
		},
	}
}

// Decode returns the decoded labels concatenated without a separator.
func Decode(input []string) string {
	steps := DecodeWithSteps(input)
	return strings.Join(steps[len(steps)-1].Sequence, "")
}

// DecodeSpaced returns the decoded labels separated by single spaces.
func DecodeSpaced(input []string) string {
	steps := DecodeWithSteps(input)
	return strings.Join(steps[len(steps)-1].Sequence, " ")
}

// ParseInput splits text into labels. The first delimiter present, in the
// order "-", ",", whitespace, is used; text without any delimiter is split
// into runes. Tokens are trimmed and empty ones dropped.
//
// Because "-" takes priority, "ε-H-E" parses to [ε H E] and the dashes never
// appear as blank labels themselves.
func ParseInput(text string) []string {
	var parts []string
	switch {
	case strings.Contains(text, "-"):
		parts = strings.Split(text, "-")
	case strings.Contains(text, ","):
		parts = strings.Split(text, ",")
	case strings.ContainsFunc(text, unicode.IsSpace):
		parts = strings.Fields(text)
	default:
		parts = make([]string, 0, len(text))
		for _, r := range text {
			parts = append(parts, string(r))
		}
	}

	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
