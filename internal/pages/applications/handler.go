// internal/pages/applications/handler.go
package applications

import (
	"errors"
	"io"
	"net/http"

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

// listView is the template payload for the pipeline screen.
type listView struct {
	Title      string
	ActiveNav  string
	User       models.User
	Rows       []Row
	Statuses   []string
	Filter     string
	Query      string
	Form       LoanForm
	FormError  string
	ShowDialog bool
	Error      string
}

// ShowList renders the pipeline table with the status filter and borrower
// search applied.
func (h *Handler) ShowList(c *gin.Context) {
	rec, ok := session.FromContext(c)
	if !ok {
		c.Redirect(http.StatusFound, "/auth")
		return
	}

	view := listView{
		Title:     "Loan Pipeline",
		ActiveNav: PageName,
		User:      rec.User,
		Statuses:  models.AllStatuses,
		Filter:    c.DefaultQuery("filter", StatusFilterAll),
		Query:     c.Query("q"),
		Form:      DefaultLoanForm(),
	}

	apps, err := h.service.List(c.Request.Context(), rec.Token)
	if err != nil {
		if h.errorHandler.HandleRequestError(c, PageName, err) {
			return
		}
		view.Error = apperrors.UserMessage(err)
		c.HTML(apperrors.HTTPStatus(err), "applications.tmpl", view)
		return
	}

	view.Rows = FilterRows(DeriveRows(apps), view.Filter, view.Query)
	c.HTML(http.StatusOK, "applications.tmpl", view)
}

// Create handles the new-application dialog submit. Success reloads the
// pipeline; failure re-renders the dialog with the input intact.
func (h *Handler) Create(c *gin.Context) {
	rec, ok := session.FromContext(c)
	if !ok {
		c.Redirect(http.StatusFound, "/auth")
		return
	}

	form, files, err := h.parseForm(c)
	if err != nil {
		h.renderFormError(c, rec.User, form, err)
		return
	}

	err = h.service.Create(c.Request.Context(), rec.Token, form, files)
	if err == nil || errors.Is(err, apperrors.ErrDuplicateSubmission) {
		c.Redirect(http.StatusSeeOther, "/applications")
		return
	}

	if h.errorHandler.HandleRequestError(c, PageName, err) {
		return
	}
	h.renderFormError(c, rec.User, form, err)
}

func (h *Handler) parseForm(c *gin.Context) (*LoanForm, []UploadedFile, error) {
	form := &LoanForm{
		PropertyPrice:      c.PostForm("property_price"),
		LoanAmount:         c.PostForm("loan_amount"),
		DownPayment:        c.PostForm("loan_down_payment"),
		LoanType:           c.DefaultPostForm("loan_type", models.LoanTypeConventional),
		LoanTerm:           c.DefaultPostForm("loan_term", models.LoanTerm30),
		LoanPurpose:        c.DefaultPostForm("loan_purpose", models.LoanPurposePurchase),
		InterestPreference: c.DefaultPostForm("loan_interest_preference", models.InterestPreferenceFixed),
		SubmissionKey:      c.PostForm("submission_key"),
	}

	firstNames := c.PostFormArray("borrower_firstname")
	lastNames := c.PostFormArray("borrower_lastname")
	phones := c.PostFormArray("borrower_phone")
	emails := c.PostFormArray("borrower_email")
	maritals := c.PostFormArray("borrower_marital_status")

	for i := range firstNames {
		b := BorrowerForm{FirstName: firstNames[i]}
		if i < len(lastNames) {
			b.LastName = lastNames[i]
		}
		if i < len(phones) {
			b.Phone = phones[i]
		}
		if i < len(emails) {
			b.Email = emails[i]
		}
		if i < len(maritals) {
			b.MaritalStatus = maritals[i]
		}
		form.Borrowers = append(form.Borrowers, b)
	}
	if len(form.Borrowers) == 0 {
		form.Borrowers = []BorrowerForm{{}}
	}

	multipartForm, err := c.MultipartForm()
	if err != nil {
		// No files attached is fine; the dialog allows submitting without them.
		return form, nil, nil
	}

	var files []UploadedFile
	for _, header := range multipartForm.File["files"] {
		f, err := header.Open()
		if err != nil {
			return form, nil, apperrors.NewUploadRejectedError(err.Error())
		}
		content, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return form, nil, apperrors.NewUploadRejectedError(err.Error())
		}
		files = append(files, UploadedFile{Name: header.Filename, Content: content})
	}
	return form, files, nil
}

// renderFormError re-renders the pipeline with the dialog open and the
// submitted values preserved. The response status follows the error, so a
// backend failure is not reported as a client mistake.
func (h *Handler) renderFormError(c *gin.Context, user models.User, form *LoanForm, err error) {
	rec, _ := session.FromContext(c)

	view := listView{
		Title:      "Loan Pipeline",
		ActiveNav:  PageName,
		User:       user,
		Statuses:   models.AllStatuses,
		Filter:     StatusFilterAll,
		FormError:  apperrors.UserMessage(err),
		ShowDialog: true,
	}
	if form != nil {
		view.Form = *form
	} else {
		view.Form = DefaultLoanForm()
	}

	// Best effort: keep the table populated behind the dialog.
	if rec != nil {
		if apps, err := h.service.List(c.Request.Context(), rec.Token); err == nil {
			view.Rows = DeriveRows(apps)
		}
	}

	c.HTML(apperrors.HTTPStatus(err), "applications.tmpl", view)
}
