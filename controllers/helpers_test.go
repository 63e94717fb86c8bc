package controllers

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/coffee-shop-api/config"
	"github.com/kendall-kelly/coffee-shop-api/middleware"
	"github.com/kendall-kelly/coffee-shop-api/services"
	"github.com/kendall-kelly/coffee-shop-api/views"
	"github.com/stretchr/testify/require"
)

func setupTestRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	tmpl, err := views.Load()
	require.NoError(t, err)
	router.SetHTMLTemplate(tmpl)
	return router
}

func testConfig() *config.Config {
	return &config.Config{
		GoEnv:             "test",
		SessionCookieName: "coffee_session",
		SessionMaxAge:     3600,
	}
}

func newTestOrderService() *services.OrderService {
	return services.NewOrderService(services.MustNewRuleTable(services.DefaultRules()...), services.NewMemoryOrderStore())
}

// mockSessionMiddleware places a fixed session in the context the same way
// the real Session middleware does
func mockSessionMiddleware(sessionID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sessionID != "" {
			c.Set(middleware.SessionIDKey, sessionID)
		}
		c.Next()
	}
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response), "Response should be valid JSON")
	return response
}
