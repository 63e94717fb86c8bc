package services

import (
	"errors"
	"fmt"
	"sort"

	"github.com/kendall-kelly/coffee-shop-api/models"
)

// ErrRuleNotFound is returned by Resolve when no rule covers the selected flavor profile.
// It is an expected outcome, not a failure of the engine.
var ErrRuleNotFound = errors.New("no recipe configured for this flavor profile")

// RuleKey identifies a rule by the customer's selection
type RuleKey struct {
	Main models.FlavorMain
	Sub  models.FlavorSub
}

// Rule maps a flavor profile to the bean and recipe the barista should use
type Rule struct {
	Main   models.FlavorMain `json:"flavor_main"`
	Sub    models.FlavorSub  `json:"flavor_sub"`
	Bean   models.Bean       `json:"bean"`
	Recipe models.Recipe     `json:"recipe"`
}

// Key returns the lookup key of the rule
func (r Rule) Key() RuleKey {
	return RuleKey{Main: r.Main, Sub: r.Sub}
}

// Recommendation is the preparation instruction for one flavor profile
type Recommendation struct {
	Bean   models.Bean   `json:"bean"`
	Recipe models.Recipe `json:"recipe"`
}

// BeanLabel returns the display label of the bean
func (r Recommendation) BeanLabel() string {
	return r.Bean.Label()
}

// RecipeLabel returns the display label of the recipe
func (r Recommendation) RecipeLabel() string {
	return r.Recipe.Label()
}

// RuleTableError represents an integrity violation found while building a rule table
type RuleTableError struct {
	Code    string
	Rule    Rule
	Message string
}

func (e *RuleTableError) Error() string {
	return e.Message
}

// RuleTable is an immutable, validated set of rules. It holds no other state,
// so a single table can serve every session.
type RuleTable struct {
	rules map[RuleKey]Recommendation
}

// DefaultRules returns the shop's house rules
func DefaultRules() []Rule {
	return []Rule{
		{Main: models.FlavorBrightFresh, Sub: models.SubLemonOrange, Bean: models.BeanEthiopia, Recipe: models.RecipeLightBody},
		{Main: models.FlavorBrightFresh, Sub: models.SubTropicalChocolate, Bean: models.BeanMaeChanTai, Recipe: models.RecipeBalanced},
		{Main: models.FlavorSweetBalanced, Sub: models.SubNectarinePeach, Bean: models.BeanEthiopia, Recipe: models.RecipeBalanced},
		{Main: models.FlavorBoldSmooth, Sub: models.SubRipeMango, Bean: models.BeanMaeChanTai, Recipe: models.RecipeFullBody},
	}
}

// NewRuleTable validates rules and builds a lookup table from them.
// Unknown codes, a sub that does not belong to its main, and duplicate
// selections are all rejected.
func NewRuleTable(rules ...Rule) (*RuleTable, error) {
	table := &RuleTable{rules: make(map[RuleKey]Recommendation, len(rules))}

	for _, rule := range rules {
		if err := validateRule(rule); err != nil {
			return nil, err
		}

		key := rule.Key()
		if _, exists := table.rules[key]; exists {
			return nil, &RuleTableError{
				Code:    "DUPLICATE_RULE",
				Rule:    rule,
				Message: fmt.Sprintf("duplicate rule for flavor profile %s/%s", rule.Main, rule.Sub),
			}
		}
		table.rules[key] = Recommendation{Bean: rule.Bean, Recipe: rule.Recipe}
	}

	return table, nil
}

// MustNewRuleTable is like NewRuleTable but panics on an invalid table
func MustNewRuleTable(rules ...Rule) *RuleTable {
	table, err := NewRuleTable(rules...)
	if err != nil {
		panic(fmt.Sprintf("invalid rule table: %v", err))
	}
	return table
}

func validateRule(rule Rule) error {
	invalid := func(message string) error {
		return &RuleTableError{Code: "INVALID_RULE", Rule: rule, Message: message}
	}

	switch {
	case !rule.Main.Valid():
		return invalid(fmt.Sprintf("unknown flavor main %q", rule.Main))
	case !rule.Sub.Valid():
		return invalid(fmt.Sprintf("unknown flavor sub %q", rule.Sub))
	case !rule.Main.HasSub(rule.Sub):
		return invalid(fmt.Sprintf("flavor sub %q is not part of flavor main %q", rule.Sub, rule.Main))
	case !rule.Bean.Valid():
		return invalid(fmt.Sprintf("unknown bean %q", rule.Bean))
	case !rule.Recipe.Valid():
		return invalid(fmt.Sprintf("unknown recipe %q", rule.Recipe))
	}
	return nil
}

// Resolve looks up the preparation instruction for a flavor profile.
// Matching is exact; there is no fallback rule. When nothing matches the
// returned error satisfies errors.Is(err, ErrRuleNotFound).
func (t *RuleTable) Resolve(main models.FlavorMain, sub models.FlavorSub) (Recommendation, error) {
	rec, ok := t.rules[RuleKey{Main: main, Sub: sub}]
	if !ok {
		return Recommendation{}, fmt.Errorf("%w: %s/%s", ErrRuleNotFound, main, sub)
	}
	return rec, nil
}

// Covers reports whether a rule exists for the flavor profile
func (t *RuleTable) Covers(main models.FlavorMain, sub models.FlavorSub) bool {
	_, ok := t.rules[RuleKey{Main: main, Sub: sub}]
	return ok
}

// Len returns the number of rules
func (t *RuleTable) Len() int {
	return len(t.rules)
}

// Rules returns every rule sorted by main then sub
func (t *RuleTable) Rules() []Rule {
	rules := make([]Rule, 0, len(t.rules))
	for key, rec := range t.rules {
		rules = append(rules, Rule{Main: key.Main, Sub: key.Sub, Bean: rec.Bean, Recipe: rec.Recipe})
	}
	sort.Slice(rules, func(i, j int) bool {
		if rules[i].Main != rules[j].Main {
			return rules[i].Main < rules[j].Main
		}
		return rules[i].Sub < rules[j].Sub
	})
	return rules
}
