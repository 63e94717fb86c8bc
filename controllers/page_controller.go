package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/coffee-shop-api/logging"
	"github.com/kendall-kelly/coffee-shop-api/middleware"
	"github.com/kendall-kelly/coffee-shop-api/models"
	"github.com/kendall-kelly/coffee-shop-api/services"
)

const (
	noticeOrderSent    = "ส่งออเดอร์เรียบร้อย ☕"
	noticeNoRecipe     = "ยังไม่มีสูตรที่เหมาะสม"
	noticeBadSelection = "กรุณาเลือกรสชาติและกลิ่นรสให้ถูกต้อง"
	noticeStoreFailure = "ส่งออเดอร์ไม่สำเร็จ กรุณาลองใหม่"
)

// Notice is the advisory shown under the order button
type Notice struct {
	Kind string // success, warning
	Text string
}

// PageOption is one radio button on the page
type PageOption struct {
	Code     string
	Label    string
	Selected bool
}

// PageSelection is the currently selected option
type PageSelection struct {
	Code  string
	Label string
}

// PageData is everything the shop page renders
type PageData struct {
	Mains        []PageOption
	Subs         []PageOption
	SelectedMain PageSelection
	SelectedSub  PageSelection
	Notice       *Notice
	Latest       *models.Order
	Count        int
}

// PageController renders the single shop page: customer form, barista view and owner view
type PageController struct {
	orders *services.OrderService
}

// NewPageController creates a page controller
func NewPageController(orders *services.OrderService) *PageController {
	return &PageController{orders: orders}
}

// ShowPage handles GET / - main and sub may be preselected through the query string
func (pc *PageController) ShowPage(c *gin.Context) {
	main, sub := selectionOrDefault(c.Query("main"), c.Query("sub"))
	pc.render(c, http.StatusOK, main, sub, nil)
}

// SubmitOrder handles POST /order - the form's "send to barista" button
func (pc *PageController) SubmitOrder(c *gin.Context) {
	sessionID, ok := requireSession(c)
	if !ok {
		return
	}

	var req SelectionRequest
	if err := c.ShouldBind(&req); err != nil {
		main, sub := selectionOrDefault(c.PostForm("main"), c.PostForm("sub"))
		pc.render(c, http.StatusBadRequest, main, sub, &Notice{Kind: "warning", Text: noticeBadSelection})
		return
	}

	main, sub, err := parseSelection(req)
	if err != nil {
		main, sub := selectionOrDefault(req.Main, req.Sub)
		pc.render(c, http.StatusBadRequest, main, sub, &Notice{Kind: "warning", Text: noticeBadSelection})
		return
	}

	notice := &Notice{Kind: "success", Text: noticeOrderSent}
	status := http.StatusOK
	if _, err := pc.orders.Submit(c.Request.Context(), sessionID, main, sub); err != nil {
		if errors.Is(err, services.ErrRuleNotFound) {
			notice = &Notice{Kind: "warning", Text: noticeNoRecipe}
		} else {
			logging.Error().Err(err).Str("session_id", sessionID).Msg("Failed to submit order from page")
			notice = &Notice{Kind: "warning", Text: noticeStoreFailure}
			status = http.StatusInternalServerError
		}
	}

	pc.render(c, status, main, sub, notice)
}

func (pc *PageController) render(c *gin.Context, status int, main models.FlavorMain, sub models.FlavorSub, notice *Notice) {
	data := PageData{
		SelectedMain: PageSelection{Code: string(main), Label: main.Label()},
		SelectedSub:  PageSelection{Code: string(sub), Label: sub.Label()},
		Notice:       notice,
	}
	for _, m := range models.FlavorMains() {
		data.Mains = append(data.Mains, PageOption{Code: string(m), Label: m.Label(), Selected: m == main})
	}
	for _, s := range main.Subs() {
		data.Subs = append(data.Subs, PageOption{Code: string(s), Label: s.Label(), Selected: s == sub})
	}

	if sessionID, err := middleware.GetSessionID(c); err == nil {
		summary, err := pc.orders.Summary(c.Request.Context(), sessionID)
		if err != nil {
			logging.Error().Err(err).Str("session_id", sessionID).Msg("Failed to load order summary for page")
		} else {
			data.Latest = summary.Latest
			data.Count = summary.Count
		}
	}

	c.HTML(status, "index.tmpl", data)
}

// selectionOrDefault falls back to the first main, and to the first sub of
// the chosen main, when the raw codes are missing or do not fit together
func selectionOrDefault(mainCode, subCode string) (models.FlavorMain, models.FlavorSub) {
	main, err := models.ParseFlavorMain(mainCode)
	if err != nil {
		main = models.FlavorMains()[0]
	}
	sub, err := models.ParseFlavorSub(subCode)
	if err != nil || !main.HasSub(sub) {
		sub = main.Subs()[0]
	}
	return main, sub
}
