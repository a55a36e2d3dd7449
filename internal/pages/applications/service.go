// internal/pages/applications/service.go
package applications

import (
	"context"
	"net/http"

	"mortgage-dashboard/internal/common/backend"
	apperrors "mortgage-dashboard/internal/common/errors"
	"mortgage-dashboard/internal/common/logger"
	"mortgage-dashboard/internal/common/session"
	"mortgage-dashboard/internal/models"
)

type Service struct {
	config   *Config
	client   *backend.Client
	sessions *session.Store
	logger   logger.Logger
}

func NewService(config *Config, client *backend.Client, sessions *session.Store, log logger.Logger) *Service {
	return &Service{
		config:   config,
		client:   client,
		sessions: sessions,
		logger:   log.WithFields(map[string]interface{}{"page": PageName}),
	}
}

// List fetches the signed-in officer's loan applications.
func (s *Service) List(ctx context.Context, token string) ([]models.Application, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	var resp models.ApplicationListResponse
	if err := s.client.GetJSON(ctx, "/api/applications", token, &resp); err != nil {
		return nil, err
	}

	s.logger.Debug("loaded applications", map[string]interface{}{
		"count": len(resp.Applications),
	})
	return resp.Applications, nil
}

// Create validates the dialog input and submits the new application. The
// submission key is claimed before the API call, so a rapid double-submit
// results in exactly one POST.
func (s *Service) Create(ctx context.Context, token string, form *LoanForm, files []UploadedFile) error {
	if err := ValidateLoanForm(form); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	if form.SubmissionKey != "" {
		claimed, err := s.sessions.ClaimSubmission(ctx, form.SubmissionKey, s.config.SubmissionTTL)
		if err != nil {
			return err
		}
		if !claimed {
			s.logger.Warn("duplicate submission dropped", map[string]interface{}{
				"submission_key": form.SubmissionKey,
			})
			return apperrors.NewDuplicateSubmissionError(form.SubmissionKey)
		}
	}

	borrowersJSON, err := form.BorrowersJSON()
	if err != nil {
		return err
	}

	payload := backend.NewForm().
		Set("property_price", form.PropertyPrice).
		Set("loan_amount", form.LoanAmount).
		Set("loan_down_payment", form.DownPayment).
		Set("loan_type", form.LoanType).
		Set("loan_term", form.LoanTerm).
		Set("loan_purpose", form.LoanPurpose).
		Set("loan_interest_preference", form.InterestPreference).
		Set("borrowers", borrowersJSON)

	for _, file := range files {
		payload.AddFile("files", file.Name, file.Content)
	}

	if err := s.client.SubmitForm(ctx, http.MethodPost, "/api/applications", token, payload, nil); err != nil {
		return err
	}

	s.logger.Info("application created", map[string]interface{}{
		"loan_amount": form.LoanAmount,
		"borrowers":   len(form.Borrowers),
	})
	return nil
}
