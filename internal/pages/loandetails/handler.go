// internal/pages/loandetails/handler.go
package loandetails

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "mortgage-dashboard/internal/common/errors"
	"mortgage-dashboard/internal/common/logger"
	"mortgage-dashboard/internal/common/session"
	"mortgage-dashboard/internal/models"
)

type Handler struct {
	config       *Config
	service      *Service
	errorHandler *apperrors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, service *Service, errorHandler *apperrors.ErrorHandler, log logger.Logger) *Handler {
	return &Handler{
		config:       config,
		service:      service,
		errorHandler: errorHandler,
		logger:       log.WithFields(map[string]interface{}{"page": PageName}),
	}
}

// detailView is the template payload for the loan detail screen.
type detailView struct {
	Title          string
	ActiveNav      string
	User           models.User
	LoanID         string
	Loan           *models.Application
	TotalIncome    string
	Categories     []string
	Documents      []models.UploadedDocument
	Recommendation string
	UploadError    string
	Error          string
}

// Show renders the loan detail screen. A missing loan_id renders the error
// state locally without touching the API.
func (h *Handler) Show(c *gin.Context) {
	rec, ok := session.FromContext(c)
	if !ok {
		c.Redirect(http.StatusFound, "/auth")
		return
	}

	view := detailView{
		Title:      "Loan Details",
		ActiveNav:  "applications",
		User:       rec.User,
		LoanID:     c.Query("loan_id"),
		Categories: models.AllCategories,
	}

	if view.LoanID == "" {
		view.Error = apperrors.UserMessage(apperrors.NewMissingLoanIDError())
		c.HTML(http.StatusBadRequest, "loan_details.tmpl", view)
		return
	}

	loan, err := h.service.Detail(c.Request.Context(), rec.Token, view.LoanID)
	if err != nil {
		if h.errorHandler.HandleRequestError(c, PageName, err) {
			return
		}
		view.Error = apperrors.UserMessage(err)
		c.HTML(apperrors.HTTPStatus(err), "loan_details.tmpl", view)
		return
	}

	view.Loan = loan
	view.TotalIncome = models.FormatCurrency(h.service.TotalIncome(loan.Borrowers))
	view.Documents = h.service.UploadedDocuments(view.LoanID)

	// Best effort: show the last generated recommendation without re-running
	// the model. The page still renders when none exists yet.
	if text, err := h.service.StoredRecommendation(c.Request.Context(), rec.Token, view.LoanID); err == nil {
		view.Recommendation = text
	} else if apperrors.HTTPStatus(err) != http.StatusNotFound {
		h.logger.Warn("stored recommendation unavailable", map[string]interface{}{
			"loan_id": view.LoanID,
			"error":   err.Error(),
		})
	}

	c.HTML(http.StatusOK, "loan_details.tmpl", view)
}

// Recommendation serves the page's async recommendation fetch as JSON, so
// the detail view stays interactive while the LLM call runs.
func (h *Handler) Recommendation(c *gin.Context) {
	rec, ok := session.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	text, err := h.service.Recommendation(c.Request.Context(), rec.Token, c.Param("id"))
	if err != nil {
		if apperrors.IsUnauthorized(err) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": apperrors.UserMessage(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"llm_recommendation": text})
}

// Upload handles a borrower document submit. Success redirects back to the
// detail page for a full reload; failure re-renders with the alert shown.
func (h *Handler) Upload(c *gin.Context) {
	rec, ok := session.FromContext(c)
	if !ok {
		c.Redirect(http.StatusFound, "/auth")
		return
	}

	loanID := c.Param("id")
	req, err := h.parseUpload(c, loanID)
	if err == nil {
		borrowerName := c.PostForm("borrower_name")
		err = h.service.Upload(c.Request.Context(), rec.Token, req, borrowerName)
	}

	if err == nil {
		c.Redirect(http.StatusSeeOther, "/loan-details?loan_id="+loanID)
		return
	}

	if h.errorHandler.HandleRequestError(c, PageName, err) {
		return
	}
	h.renderUploadError(c, rec, loanID, err)
}

func (h *Handler) parseUpload(c *gin.Context, loanID string) (*UploadRequest, error) {
	req := &UploadRequest{
		LoanID:     loanID,
		BorrowerID: c.PostForm("borrower_id"),
		Category:   c.PostForm("category"),
	}

	header, err := c.FormFile("file")
	if err != nil {
		return nil, apperrors.NewUploadRejectedError("no file selected")
	}

	if h.config.MaxFileSizeMB > 0 && header.Size > int64(h.config.MaxFileSizeMB)<<20 {
		return nil, apperrors.NewUploadRejectedError(
			fmt.Sprintf("file exceeds the %d MB limit", h.config.MaxFileSizeMB))
	}
	if !h.allowedExtension(header.Filename) {
		return nil, apperrors.NewUploadRejectedError(
			fmt.Sprintf("file type %q is not accepted", filepath.Ext(header.Filename)))
	}

	f, err := header.Open()
	if err != nil {
		return nil, apperrors.NewUploadRejectedError(err.Error())
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, apperrors.NewUploadRejectedError(err.Error())
	}

	req.FileName = header.Filename
	req.Content = content
	return req, nil
}

func (h *Handler) allowedExtension(name string) bool {
	if len(h.config.AllowedExtensions) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, allowed := range h.config.AllowedExtensions {
		if ext == strings.ToLower(allowed) {
			return true
		}
	}
	return false
}

func (h *Handler) renderUploadError(c *gin.Context, rec *session.Record, loanID string, uploadErr error) {
	view := detailView{
		Title:       "Loan Details",
		ActiveNav:   "applications",
		User:        rec.User,
		LoanID:      loanID,
		Categories:  models.AllCategories,
		UploadError: apperrors.UserMessage(uploadErr),
	}

	if loan, err := h.service.Detail(c.Request.Context(), rec.Token, loanID); err == nil {
		view.Loan = loan
		view.TotalIncome = models.FormatCurrency(h.service.TotalIncome(loan.Borrowers))
		view.Documents = h.service.UploadedDocuments(loanID)
	}

	c.HTML(apperrors.HTTPStatus(uploadErr), "loan_details.tmpl", view)
}
