package g2p

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"gopkg.in/yaml.v3"
)

// ErrInvalidRule is returned by LoadRules for a malformed rule table.
var ErrInvalidRule = errors.New("g2p: invalid rule")

// Category groups rules by the phonological process they demonstrate.
type Category string

const (
	Palatalization Category = "palatalization" // 구개음화
	Fortition      Category = "fortition"      // 경음화
	Nasalization   Category = "nasalization"   // 비음화
	Liaison        Category = "liaison"        // 연음
	HDeletion      Category = "h-deletion"     // ㅎ탈락
	Aspiration     Category = "aspiration"     // 격음화
)

// Categories returns every category in display order.
func Categories() []Category {
	return []Category{Palatalization, Fortition, Nasalization, Liaison, HDeletion, Aspiration}
}

// Label is the display name of a category.
type Label struct {
	Ko string `json:"ko" yaml:"ko" msgpack:"ko"`
	En string `json:"en" yaml:"en" msgpack:"en"`
}

var categoryLabels = map[Category]Label{
	Palatalization: {Ko: "구개음화", En: "Palatalization"},
	Fortition:      {Ko: "경음화", En: "Fortition"},
	Nasalization:   {Ko: "비음화", En: "Nasalization"},
	Liaison:        {Ko: "연음", En: "Liaison"},
	HDeletion:      {Ko: "ㅎ탈락", En: "H-deletion"},
	Aspiration:     {Ko: "격음화", En: "Aspiration"},
}

// CategoryLabel returns the Korean and English names of c. The second result
// is false for an unknown category.
func CategoryLabel(c Category) (Label, bool) {
	l, ok := categoryLabels[c]
	return l, ok
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Rule rewrites a spelled form into its pronunciation.
type Rule struct {
	ID          string   `json:"id" yaml:"id" msgpack:"id"`
	Input       string   `json:"input" yaml:"input" msgpack:"input"`
	Output      string   `json:"output" yaml:"output" msgpack:"output"`
	Name        string   `json:"name" yaml:"name" msgpack:"name"`
	NameKo      string   `json:"name_ko" yaml:"name_ko" msgpack:"name_ko"`
	Description string   `json:"description" yaml:"description" msgpack:"description"`
	Category    Category `json:"category" yaml:"category" msgpack:"category"`
}

// RuleSet is the document layout of a rule table file.
type RuleSet struct {
	Rules []Rule `json:"rules" yaml:"rules"`
}

//go:embed rules.yaml
var defaultRulesYAML []byte

// LoadRules parses a YAML (or JSON) rule table. Rules keep their file order.
func LoadRules(r io.Reader) ([]Rule, error) {
	var set RuleSet
	if err := yaml.NewDecoder(r).Decode(&set); err != nil {
		if errors.Is(err, io.EOF) {
			return []Rule{}, nil
		}
		return nil, fmt.Errorf("g2p: parse rules: %w", err)
	}
	if err := ValidateRules(set.Rules); err != nil {
		return nil, err
	}
	slog.Debug("g2p rules loaded", "count", len(set.Rules))
	if set.Rules == nil {
		set.Rules = []Rule{}
	}
	return set.Rules, nil
}

// ValidateRules checks that every rule has an input, an output and a known
// category, and that IDs are unique.
func ValidateRules(rules []Rule) error {
	seen := make(map[string]bool, len(rules))
	for i, r := range rules {
		switch {
		case r.Input == "":
			return fmt.Errorf("%w: rule %d (%s) has empty input", ErrInvalidRule, i, r.ID)
		case r.Output == "":
			return fmt.Errorf("%w: rule %d (%s) has empty output", ErrInvalidRule, i, r.ID)
		case !r.Category.Valid():
			return fmt.Errorf("%w: rule %d (%s) has unknown category %q", ErrInvalidRule, i, r.ID, r.Category)
		}
		if r.ID != "" {
			if seen[r.ID] {
				return fmt.Errorf("%w: duplicate id %q", ErrInvalidRule, r.ID)
			}
			seen[r.ID] = true
		}
	}
	return nil
}

var defaultEngine = sync.OnceValue(func() *Engine {
	rules, err := LoadRules(bytes.NewReader(defaultRulesYAML))
	if err != nil {
		panic(fmt.Sprintf("g2p: embedded rules: %v", err))
	}
	return New(rules)
})
