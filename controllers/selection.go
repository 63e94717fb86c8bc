package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/coffee-shop-api/middleware"
	"github.com/kendall-kelly/coffee-shop-api/models"
	"github.com/kendall-kelly/coffee-shop-api/utils"
)

// SelectionRequest is the customer's flavor profile as submitted by a client
type SelectionRequest struct {
	Main string `json:"main" form:"main" binding:"required"`
	Sub  string `json:"sub" form:"sub" binding:"required"`
}

// parseSelection converts raw codes into taxonomy values and checks that the
// sub belongs to the main. The rule table never sees an invalid pair.
func parseSelection(req SelectionRequest) (models.FlavorMain, models.FlavorSub, error) {
	main, err := models.ParseFlavorMain(req.Main)
	if err != nil {
		return "", "", err
	}
	sub, err := models.ParseFlavorSub(req.Sub)
	if err != nil {
		return "", "", err
	}
	if !main.HasSub(sub) {
		return "", "", fmt.Errorf("flavor sub %q is not offered under flavor main %q", sub, main)
	}
	return main, sub, nil
}

// requireSession returns the session ID or writes an error response
func requireSession(c *gin.Context) (string, bool) {
	sessionID, err := middleware.GetSessionID(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "SESSION_REQUIRED", "Could not determine the current session")
		return "", false
	}
	return sessionID, true
}
