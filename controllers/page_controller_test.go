package controllers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/kendall-kelly/coffee-shop-api/models"
	"github.com/kendall-kelly/coffee-shop-api/services"
	"github.com/stretchr/testify/assert"
)

func submitForm(router http.Handler, form url.Values) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodPost, "/order", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestShowPage(t *testing.T) {
	tests := []struct {
		name          string
		query         string
		checkResponse func(t *testing.T, body string)
	}{
		{
			name:  "defaults to the first main and sub",
			query: "",
			checkResponse: func(t *testing.T, body string) {
				assert.Contains(t, body, `value="A" checked`)
				assert.Contains(t, body, `value="1" checked`)
				assert.Contains(t, body, `value="4"`)
				assert.NotContains(t, body, `value="2"`)
			},
		},
		{
			name:  "lists the subs of the chosen main",
			query: "?main=C",
			checkResponse: func(t *testing.T, body string) {
				assert.Contains(t, body, `value="C" checked`)
				assert.Contains(t, body, `value="3" checked`)
				assert.Contains(t, body, `value="6"`)
				assert.NotContains(t, body, `value="1"`)
			},
		},
		{
			name:  "keeps a preselected sub",
			query: "?main=B&sub=5",
			checkResponse: func(t *testing.T, body string) {
				assert.Contains(t, body, `value="5" checked`)
				assert.Contains(t, body, models.SubFloralBlackTea.Label())
			},
		},
		{
			name:  "ignores a sub from another main",
			query: "?main=B&sub=6",
			checkResponse: func(t *testing.T, body string) {
				assert.Contains(t, body, `value="2" checked`)
			},
		},
		{
			name:  "barista waits and owner sees zero",
			query: "",
			checkResponse: func(t *testing.T, body string) {
				assert.Contains(t, body, "รอออเดอร์จากลูกค้า…")
				assert.Contains(t, body, "<b>0 แก้ว</b>")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupTestRouter(t)
			pc := NewPageController(newTestOrderService())
			router.GET("/", mockSessionMiddleware(testSessionID), pc.ShowPage)

			req, _ := http.NewRequest(http.MethodGet, "/"+tt.query, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
			tt.checkResponse(t, w.Body.String())
		})
	}
}

func TestSubmitOrder(t *testing.T) {
	router := setupTestRouter(t)
	pc := NewPageController(newTestOrderService())
	router.POST("/order", mockSessionMiddleware(testSessionID), pc.SubmitOrder)

	t.Run("sends the order to the barista", func(t *testing.T) {
		w := submitForm(router, url.Values{"main": {"A"}, "sub": {"4"}})

		assert.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "notice-success")
		assert.Contains(t, body, noticeOrderSent)
		assert.Contains(t, body, models.BeanMaeChanTai.Label())
		assert.Contains(t, body, models.RecipeBalanced.Label())
		assert.Contains(t, body, "<b>1 แก้ว</b>")
		assert.NotContains(t, body, "รอออเดอร์จากลูกค้า…")
	})

	t.Run("warns when no recipe fits", func(t *testing.T) {
		w := submitForm(router, url.Values{"main": {"C"}, "sub": {"3"}})

		assert.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "notice-warning")
		assert.Contains(t, body, noticeNoRecipe)
		// the previous order is still the latest
		assert.Contains(t, body, models.RecipeBalanced.Label())
		assert.Contains(t, body, "<b>1 แก้ว</b>")
	})

	t.Run("rejects a mismatched selection", func(t *testing.T) {
		w := submitForm(router, url.Values{"main": {"A"}, "sub": {"6"}})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, noticeBadSelection)
		assert.Contains(t, body, `value="A" checked`)
		assert.Contains(t, body, "<b>1 แก้ว</b>")
	})

	t.Run("rejects a missing field", func(t *testing.T) {
		w := submitForm(router, url.Values{"main": {"B"}})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), noticeBadSelection)
		assert.Contains(t, w.Body.String(), `value="B" checked`)
	})
}

func TestSubmitOrder_StoreFailure(t *testing.T) {
	router := setupTestRouter(t)
	orders := services.NewOrderService(services.MustNewRuleTable(services.DefaultRules()...), brokenStore{})
	pc := NewPageController(orders)
	router.POST("/order", mockSessionMiddleware(testSessionID), pc.SubmitOrder)

	w := submitForm(router, url.Values{"main": {"A"}, "sub": {"1"}})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), noticeStoreFailure)
}

func TestSelectionOrDefault(t *testing.T) {
	tests := []struct {
		main, sub    string
		expectedMain models.FlavorMain
		expectedSub  models.FlavorSub
	}{
		{"", "", models.FlavorBrightFresh, models.SubLemonOrange},
		{"B", "", models.FlavorSweetBalanced, models.SubNectarinePeach},
		{"C", "6", models.FlavorBoldSmooth, models.SubRipeMango},
		{"C", "1", models.FlavorBoldSmooth, models.SubBerryBergamot},
		{"X", "4", models.FlavorBrightFresh, models.SubTropicalChocolate},
	}

	for _, tt := range tests {
		main, sub := selectionOrDefault(tt.main, tt.sub)
		assert.Equal(t, tt.expectedMain, main, "main for %q/%q", tt.main, tt.sub)
		assert.Equal(t, tt.expectedSub, sub, "sub for %q/%q", tt.main, tt.sub)
	}
}
