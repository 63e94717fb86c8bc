package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/coffee-shop-api/models"
	"github.com/kendall-kelly/coffee-shop-api/services"
	"github.com/kendall-kelly/coffee-shop-api/utils"
)

// MenuSub is one aroma profile offered under a flavor main
type MenuSub struct {
	Code    models.FlavorSub `json:"code"`
	Label   string           `json:"label"`
	HasRule bool             `json:"has_rule"`
}

// MenuMain is one flavor main with the aroma profiles it offers
type MenuMain struct {
	Code  models.FlavorMain `json:"code"`
	Label string            `json:"label"`
	Subs  []MenuSub         `json:"subs"`
}

// RuleResponse is a rule with its codes resolved to display labels
type RuleResponse struct {
	services.Rule
	MainLabel   string `json:"flavor_main_label"`
	SubLabel    string `json:"flavor_sub_label"`
	BeanLabel   string `json:"bean_label"`
	RecipeLabel string `json:"recipe_label"`
}

// RecommendationResponse is the result of a lookup without placing an order
type RecommendationResponse struct {
	FlavorMain  models.FlavorMain `json:"flavor_main"`
	FlavorSub   models.FlavorSub  `json:"flavor_sub"`
	Bean        models.Bean       `json:"bean"`
	Recipe      models.Recipe     `json:"recipe"`
	BeanLabel   string            `json:"bean_label"`
	RecipeLabel string            `json:"recipe_label"`
}

// MenuController serves the taxonomy and the rule table
type MenuController struct {
	rules *services.RuleTable
}

// NewMenuController creates a menu controller over rules
func NewMenuController(rules *services.RuleTable) *MenuController {
	return &MenuController{rules: rules}
}

// BuildMenu lists every flavor main and its subs in display order
func BuildMenu(rules *services.RuleTable) []MenuMain {
	mains := models.FlavorMains()
	menu := make([]MenuMain, 0, len(mains))
	for _, main := range mains {
		entry := MenuMain{Code: main, Label: main.Label()}
		for _, sub := range main.Subs() {
			entry.Subs = append(entry.Subs, MenuSub{
				Code:    sub,
				Label:   sub.Label(),
				HasRule: rules.Covers(main, sub),
			})
		}
		menu = append(menu, entry)
	}
	return menu
}

// GetMenu handles GET /api/v1/menu
func (mc *MenuController) GetMenu(c *gin.Context) {
	utils.RespondSuccess(c, http.StatusOK, BuildMenu(mc.rules))
}

// ListRules handles GET /api/v1/rules
func (mc *MenuController) ListRules(c *gin.Context) {
	rules := mc.rules.Rules()
	response := make([]RuleResponse, 0, len(rules))
	for _, rule := range rules {
		response = append(response, RuleResponse{
			Rule:        rule,
			MainLabel:   rule.Main.Label(),
			SubLabel:    rule.Sub.Label(),
			BeanLabel:   rule.Bean.Label(),
			RecipeLabel: rule.Recipe.Label(),
		})
	}
	utils.RespondSuccess(c, http.StatusOK, response)
}

// GetRecommendation handles GET /api/v1/recommendations?main=&sub= - looks up
// the recipe for a flavor profile without placing an order
func (mc *MenuController) GetRecommendation(c *gin.Context) {
	var req SelectionRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.RespondValidationError(c, http.StatusBadRequest, err)
		return
	}

	main, sub, err := parseSelection(req)
	if err != nil {
		utils.RespondValidationError(c, http.StatusBadRequest, err)
		return
	}

	rec, err := mc.rules.Resolve(main, sub)
	if errors.Is(err, services.ErrRuleNotFound) {
		utils.RespondError(c, http.StatusNotFound, "RULE_NOT_FOUND", "No recipe is configured for this flavor profile yet")
		return
	}
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to resolve recommendation")
		return
	}

	utils.RespondSuccess(c, http.StatusOK, RecommendationResponse{
		FlavorMain:  main,
		FlavorSub:   sub,
		Bean:        rec.Bean,
		Recipe:      rec.Recipe,
		BeanLabel:   rec.BeanLabel(),
		RecipeLabel: rec.RecipeLabel(),
	})
}
