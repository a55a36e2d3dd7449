// internal/pages/ratesheet/handler.go
package ratesheet

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mortgage-dashboard/internal/common/logger"
	"mortgage-dashboard/internal/common/session"
	"mortgage-dashboard/internal/models"
)

type Handler struct {
	logger logger.Logger
}

func NewHandler(log logger.Logger) *Handler {
	return &Handler{
		logger: log.WithFields(map[string]interface{}{"page": PageName}),
	}
}

type rateSheetView struct {
	Title     string
	ActiveNav string
	User      models.User
	Entries   []RateEntry
}

// Show renders the static rate sheet.
func (h *Handler) Show(c *gin.Context) {
	rec, ok := session.FromContext(c)
	if !ok {
		c.Redirect(http.StatusFound, "/auth")
		return
	}

	c.HTML(http.StatusOK, "rate_sheet.tmpl", rateSheetView{
		Title:     "Rate Sheet",
		ActiveNav: PageName,
		User:      rec.User,
		Entries:   Entries(),
	})
}
