package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/haivivi/soundlab/pkg/cli"
	"github.com/haivivi/soundlab/pkg/g2p"
)

var g2pCmd = &cobra.Command{
	Use:   "g2p",
	Short: "Korean grapheme-to-phoneme rules",
	Long: `Convert Korean spelling to pronunciation with an ordered table of
rewrite rules covering palatalization, fortition, nasalization, liaison,
h-deletion and aspiration.

The built-in table can be replaced with --rules or the profile's g2p_rules
setting (YAML or JSON with a top-level "rules" list).

Examples:
  soundlab g2p convert "학교에 같이 갑니다"
  soundlab g2p convert --normalize "3월 15일"
  soundlab g2p rules --category nasalization --format table
  soundlab g2p random --seed 1`,
}

// loadEngine returns the engine for --rules, the profile's rule file or the
// built-in table, in that order.
func loadEngine(cmd *cobra.Command) (*g2p.Engine, error) {
	path, err := cmd.Flags().GetString("rules")
	if err != nil {
		return nil, fmt.Errorf("failed to read 'rules' flag: %w", err)
	}
	if path == "" {
		p, err := getProfile()
		if err != nil {
			return nil, err
		}
		path = p.G2PRules
	}
	if path == "" {
		return g2p.Default(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open rules: %w", err)
	}
	defer f.Close()
	rules, err := g2p.LoadRules(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	printVerbose("Loaded %d rules from %s", len(rules), path)
	return g2p.New(rules), nil
}

type convertReport struct {
	Normalized string `json:"normalized,omitempty" yaml:"normalized,omitempty" msgpack:"normalized,omitempty"`
	g2p.Result `yaml:",inline" msgpack:",inline"`
}

func (r *convertReport) String() string { return r.Result.Result }

func (r *convertReport) Tables() []cli.Table {
	summary := cli.Table{
		Title:   "G2P",
		Headers: []string{"field", "value"},
		Rows:    [][]string{{"input", r.Input}},
	}
	if r.Normalized != "" {
		summary.Rows = append(summary.Rows, []string{"normalized", r.Normalized})
	}
	summary.Rows = append(summary.Rows, []string{"result", r.Result.Result})
	return []cli.Table{summary, rulesTable("Applied rules", r.Matched)}
}

func rulesTable(title string, rules []g2p.Rule) cli.Table {
	t := cli.Table{
		Title:   title,
		Headers: []string{"id", "rule", "category", "name"},
	}
	for _, r := range rules {
		cat := string(r.Category)
		if l, ok := g2p.CategoryLabel(r.Category); ok {
			cat = l.Ko + " " + l.En
		}
		t.Rows = append(t.Rows, []string{r.ID, r.Input + " → " + r.Output, cat, r.NameKo})
	}
	return t
}

var g2pConvertCmd = &cobra.Command{
	Use:   "convert <text>...",
	Short: "Convert spelling to pronunciation",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		normalize, err := cmd.Flags().GetBool("normalize")
		if err != nil {
			return fmt.Errorf("failed to read 'normalize' flag: %w", err)
		}
		engine, err := loadEngine(cmd)
		if err != nil {
			return err
		}

		text := strings.Join(args, " ")
		report := &convertReport{}
		if normalize {
			report.Normalized = g2p.Normalize(text)
			report.Result = engine.Convert(report.Normalized)
			report.Input = text
		} else {
			report.Result = engine.Convert(text)
		}
		return outputResult(report)
	},
}

type rulesReport struct {
	Categories []categoryRules `json:"categories" yaml:"categories" msgpack:"categories"`
}

type categoryRules struct {
	Category g2p.Category `json:"category" yaml:"category" msgpack:"category"`
	Label    g2p.Label    `json:"label" yaml:"label" msgpack:"label"`
	Rules    []g2p.Rule   `json:"rules" yaml:"rules" msgpack:"rules"`
}

func (r *rulesReport) Tables() []cli.Table {
	out := make([]cli.Table, 0, len(r.Categories))
	for _, c := range r.Categories {
		out = append(out, rulesTable(fmt.Sprintf("%s (%s) · %d", c.Label.Ko, c.Label.En, len(c.Rules)), c.Rules))
	}
	return out
}

var g2pRulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List rules grouped by category",
	RunE: func(cmd *cobra.Command, args []string) error {
		only, err := cmd.Flags().GetString("category")
		if err != nil {
			return fmt.Errorf("failed to read 'category' flag: %w", err)
		}
		if only != "" && !g2p.Category(only).Valid() {
			return fmt.Errorf("unknown category %q", only)
		}
		engine, err := loadEngine(cmd)
		if err != nil {
			return err
		}

		grouped := engine.ByCategory()
		report := &rulesReport{}
		for _, c := range g2p.Categories() {
			if only != "" && c != g2p.Category(only) {
				continue
			}
			label, _ := g2p.CategoryLabel(c)
			report.Categories = append(report.Categories, categoryRules{Category: c, Label: label, Rules: grouped[c]})
		}
		return outputResult(report)
	},
}

type normalizeReport struct {
	Input  string `json:"input" yaml:"input" msgpack:"input"`
	Result string `json:"result" yaml:"result" msgpack:"result"`
}

func (r *normalizeReport) String() string { return r.Result }

var g2pNormalizeCmd = &cobra.Command{
	Use:   "normalize <text>...",
	Short: "Spell out numbers in Sino-Korean",
	Long: `Replace years, months, days, hours, minutes, won amounts, kilometres
and bare numbers with their Sino-Korean readings, for example "2024년 3월"
becomes "이천이십사년 삼월" and "₩50,000" becomes "오만원".`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args, " ")
		return outputResult(&normalizeReport{Input: text, Result: g2p.Normalize(text)})
	},
}

var g2pRandomCmd = &cobra.Command{
	Use:   "random",
	Short: "Show a random rule for practice",
	RunE: func(cmd *cobra.Command, args []string) error {
		only, err := cmd.Flags().GetString("category")
		if err != nil {
			return fmt.Errorf("failed to read 'category' flag: %w", err)
		}
		rng, err := seededRand(cmd)
		if err != nil {
			return err
		}
		engine, err := loadEngine(cmd)
		if err != nil {
			return err
		}

		var (
			rule g2p.Rule
			ok   bool
		)
		if only != "" {
			rule, ok = engine.RandomByCategory(g2p.Category(only), rng)
		} else {
			rule, ok = engine.Random(rng)
		}
		if !ok {
			return fmt.Errorf("no rules to choose from")
		}
		return outputResult(&rule)
	},
}

func init() {
	for _, c := range []*cobra.Command{g2pConvertCmd, g2pRulesCmd, g2pRandomCmd} {
		c.Flags().String("rules", "", "rule table file (YAML or JSON)")
	}
	g2pConvertCmd.Flags().Bool("normalize", false, "spell out numbers before converting")
	g2pRulesCmd.Flags().String("category", "", "only list this category")
	g2pRandomCmd.Flags().String("category", "", "only pick from this category")
	g2pRandomCmd.Flags().Uint64("seed", 0, "random seed (default: time based)")

	g2pCmd.AddCommand(g2pConvertCmd)
	g2pCmd.AddCommand(g2pRulesCmd)
	g2pCmd.AddCommand(g2pNormalizeCmd)
	g2pCmd.AddCommand(g2pRandomCmd)
}
