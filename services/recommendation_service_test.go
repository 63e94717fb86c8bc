package services

import (
	"errors"
	"testing"

	"github.com/kendall-kelly/coffee-shop-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveConfiguredRules(t *testing.T) {
	table := MustNewRuleTable(DefaultRules()...)

	tests := []struct {
		name   string
		main   models.FlavorMain
		sub    models.FlavorSub
		bean   models.Bean
		recipe models.Recipe
	}{
		{"bright lemon", "A", "1", "ETH", "50"},
		{"bright tropical", "A", "4", "MCT", "60"},
		{"sweet nectarine", "B", "2", "ETH", "60"},
		{"bold mango", "C", "6", "MCT", "70"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := table.Resolve(tt.main, tt.sub)
			require.NoError(t, err)
			assert.Equal(t, tt.bean, rec.Bean)
			assert.Equal(t, tt.recipe, rec.Recipe)
			assert.Equal(t, tt.bean.Label(), rec.BeanLabel())
			assert.Equal(t, tt.recipe.Label(), rec.RecipeLabel())
		})
	}
}

func TestResolveEveryRuleInTable(t *testing.T) {
	table := MustNewRuleTable(DefaultRules()...)

	for _, rule := range DefaultRules() {
		rec, err := table.Resolve(rule.Main, rule.Sub)
		require.NoError(t, err)
		assert.Equal(t, Recommendation{Bean: rule.Bean, Recipe: rule.Recipe}, rec)
	}
}

func TestResolveMissingRule(t *testing.T) {
	table := MustNewRuleTable(DefaultRules()...)

	tests := []struct {
		main models.FlavorMain
		sub  models.FlavorSub
	}{
		{"B", "5"},
		{"C", "3"},
	}

	for _, tt := range tests {
		t.Run(string(tt.main)+"/"+string(tt.sub), func(t *testing.T) {
			rec, err := table.Resolve(tt.main, tt.sub)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrRuleNotFound), "Missing rule should match ErrRuleNotFound")
			assert.Equal(t, Recommendation{}, rec)
		})
	}
}

func TestResolveEveryValidPair(t *testing.T) {
	table := MustNewRuleTable(DefaultRules()...)
	configured := map[RuleKey]bool{}
	for _, rule := range DefaultRules() {
		configured[rule.Key()] = true
	}

	for _, main := range models.FlavorMains() {
		for _, sub := range main.Subs() {
			_, err := table.Resolve(main, sub)
			if configured[RuleKey{Main: main, Sub: sub}] {
				assert.NoError(t, err, "%s/%s", main, sub)
			} else {
				assert.ErrorIs(t, err, ErrRuleNotFound, "%s/%s", main, sub)
			}
			assert.Equal(t, configured[RuleKey{Main: main, Sub: sub}], table.Covers(main, sub))
		}
	}
}

func TestResolveIsExactMatch(t *testing.T) {
	table := MustNewRuleTable(DefaultRules()...)

	// A pair that never appears in the taxonomy gets no fallback
	_, err := table.Resolve("B", "1")
	assert.ErrorIs(t, err, ErrRuleNotFound)

	_, err = table.Resolve("a", "1")
	assert.ErrorIs(t, err, ErrRuleNotFound, "Codes are not normalized")
}

func TestResolveIsIdempotent(t *testing.T) {
	table := MustNewRuleTable(DefaultRules()...)

	first, err := table.Resolve("A", "4")
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := table.Resolve("A", "4")
		require.NoError(t, err)
		assert.Equal(t, first, again)

		_, err = table.Resolve("B", "5")
		assert.ErrorIs(t, err, ErrRuleNotFound)
	}
	assert.Equal(t, len(DefaultRules()), table.Len(), "Resolve must not change the table")
}

func TestNewRuleTableRejectsBadRules(t *testing.T) {
	tests := []struct {
		name     string
		rules    []Rule
		wantCode string
	}{
		{
			name: "duplicate selection",
			rules: []Rule{
				{Main: "A", Sub: "1", Bean: "ETH", Recipe: "50"},
				{Main: "A", Sub: "1", Bean: "MCT", Recipe: "70"},
			},
			wantCode: "DUPLICATE_RULE",
		},
		{
			name:     "sub from another main",
			rules:    []Rule{{Main: "A", Sub: "2", Bean: "ETH", Recipe: "50"}},
			wantCode: "INVALID_RULE",
		},
		{
			name:     "unknown main",
			rules:    []Rule{{Main: "D", Sub: "1", Bean: "ETH", Recipe: "50"}},
			wantCode: "INVALID_RULE",
		},
		{
			name:     "unknown sub",
			rules:    []Rule{{Main: "A", Sub: "9", Bean: "ETH", Recipe: "50"}},
			wantCode: "INVALID_RULE",
		},
		{
			name:     "unknown bean",
			rules:    []Rule{{Main: "A", Sub: "1", Bean: "KEN", Recipe: "50"}},
			wantCode: "INVALID_RULE",
		},
		{
			name:     "unknown recipe",
			rules:    []Rule{{Main: "A", Sub: "1", Bean: "ETH", Recipe: "80"}},
			wantCode: "INVALID_RULE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := NewRuleTable(tt.rules...)
			require.Error(t, err)
			assert.Nil(t, table)

			var tableErr *RuleTableError
			require.True(t, errors.As(err, &tableErr), "Error should be a *RuleTableError")
			assert.Equal(t, tt.wantCode, tableErr.Code)
		})
	}
}

func TestMustNewRuleTablePanicsOnDuplicate(t *testing.T) {
	assert.Panics(t, func() {
		MustNewRuleTable(
			Rule{Main: "C", Sub: "6", Bean: "MCT", Recipe: "70"},
			Rule{Main: "C", Sub: "6", Bean: "MCT", Recipe: "70"},
		)
	})
}

func TestEmptyRuleTable(t *testing.T) {
	table, err := NewRuleTable()
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())

	_, err = table.Resolve("A", "1")
	assert.ErrorIs(t, err, ErrRuleNotFound)
}

func TestRulesSorted(t *testing.T) {
	table := MustNewRuleTable(
		Rule{Main: "C", Sub: "6", Bean: "MCT", Recipe: "70"},
		Rule{Main: "A", Sub: "4", Bean: "MCT", Recipe: "60"},
		Rule{Main: "A", Sub: "1", Bean: "ETH", Recipe: "50"},
	)

	rules := table.Rules()
	require.Len(t, rules, 3)
	assert.Equal(t, RuleKey{Main: "A", Sub: "1"}, rules[0].Key())
	assert.Equal(t, RuleKey{Main: "A", Sub: "4"}, rules[1].Key())
	assert.Equal(t, RuleKey{Main: "C", Sub: "6"}, rules[2].Key())
}
