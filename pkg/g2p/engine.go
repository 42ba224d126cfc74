// Package g2p converts Korean spelling to an approximate pronunciation with
// a fixed, ordered table of whole-word rewrite rules.
//
// Each rule is a literal substitution such as 같이 → 가치 (palatalization).
// Conversion applies every rule in table order to the running result, so an
// earlier rule can create or destroy a match for a later one. Inputs also
// match inside longer words. This is a demonstration engine for the
// phonological processes it lists, not a general G2P system.
package g2p

import (
	"math/rand/v2"
	"strings"
	"time"
)

// Result is the outcome of Convert.
type Result struct {
	Input   string `json:"input" yaml:"input" msgpack:"input"`
	Result  string `json:"result" yaml:"result" msgpack:"result"`
	Matched []Rule `json:"matched" yaml:"matched" msgpack:"matched"`
}

// Engine applies an ordered rule table. It is immutable and safe for
// concurrent use.
type Engine struct {
	rules []Rule
}

// New creates an Engine over a copy of rules. Rules are applied in slice
// order.
func New(rules []Rule) *Engine {
	return &Engine{rules: append([]Rule(nil), rules...)}
}

// Default returns the engine over the built-in rule table.
func Default() *Engine {
	return defaultEngine()
}

// Convert applies the default engine to text.
func Convert(text string) Result {
	return Default().Convert(text)
}

// Convert rewrites text rule by rule. Every rule whose input occurs in the
// running result replaces all occurrences and is recorded in Matched. Text
// that matches nothing is returned unchanged with an empty Matched list.
func (e *Engine) Convert(text string) Result {
	res := Result{Input: text, Result: text, Matched: []Rule{}}
	for _, r := range e.rules {
		if !strings.Contains(res.Result, r.Input) {
			continue
		}
		res.Result = strings.ReplaceAll(res.Result, r.Input, r.Output)
		res.Matched = append(res.Matched, r)
	}
	return res
}

// Rules returns a copy of the rule table.
func (e *Engine) Rules() []Rule {
	return append([]Rule(nil), e.rules...)
}

// Len returns the number of rules.
func (e *Engine) Len() int { return len(e.rules) }

// Lookup returns the rule with the given ID.
func (e *Engine) Lookup(id string) (Rule, bool) {
	for _, r := range e.rules {
		if r.ID == id {
			return r, true
		}
	}
	return Rule{}, false
}

// ByCategory groups the rules by category. Every known category is present
// in the map, possibly with an empty list.
func (e *Engine) ByCategory() map[Category][]Rule {
	grouped := make(map[Category][]Rule, len(categoryLabels))
	for _, c := range Categories() {
		grouped[c] = []Rule{}
	}
	for _, r := range e.rules {
		grouped[r.Category] = append(grouped[r.Category], r)
	}
	return grouped
}

// Random returns a uniformly chosen rule. It returns false for an empty
// table. rng may be nil.
func (e *Engine) Random(rng *rand.Rand) (Rule, bool) {
	return pick(e.rules, rng)
}

// RandomByCategory returns a uniformly chosen rule of category c. It returns
// false when no rule has that category. rng may be nil.
func (e *Engine) RandomByCategory(c Category, rng *rand.Rand) (Rule, bool) {
	var rules []Rule
	for _, r := range e.rules {
		if r.Category == c {
			rules = append(rules, r)
		}
	}
	return pick(rules, rng)
}

func pick(rules []Rule, rng *rand.Rand) (Rule, bool) {
	if len(rules) == 0 {
		return Rule{}, false
	}
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
	}
	return rules[rng.IntN(len(rules))], true
}
