// internal/pages/loandetails/service.go
package loandetails

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"mortgage-dashboard/internal/common/backend"
	apperrors "mortgage-dashboard/internal/common/errors"
	"mortgage-dashboard/internal/common/logger"
	"mortgage-dashboard/internal/common/metrics"
	"mortgage-dashboard/internal/models"
)

// categoryEndpoints routes each document category to its parsing endpoint.
var categoryEndpoints = map[string]string{
	models.CategoryIncome: "/api/borrower/read-income",
	models.CategoryAsset:  "/api/borrower/read-asset",
	models.CategoryCredit: "/api/borrower/read-credit-report",
}

type Service struct {
	config *Config
	client *backend.Client
	logger logger.Logger

	// Transient upload log for the documents table. The API owns the files;
	// this only remembers what was pushed during this process lifetime.
	mu       sync.Mutex
	uploaded map[string][]models.UploadedDocument
}

func NewService(config *Config, client *backend.Client, log logger.Logger) *Service {
	return &Service{
		config:   config,
		client:   client,
		logger:   log.WithFields(map[string]interface{}{"page": PageName}),
		uploaded: make(map[string][]models.UploadedDocument),
	}
}

// Detail fetches one application with its borrowers.
func (s *Service) Detail(ctx context.Context, token, loanID string) (*models.Application, error) {
	if loanID == "" {
		return nil, apperrors.NewMissingLoanIDError()
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	var app models.Application
	if err := s.client.GetJSON(ctx, "/api/applications/"+loanID, token, &app); err != nil {
		return nil, err
	}
	if app.ID == "" {
		app.ID = loanID
	}
	return &app, nil
}

// Recommendation asks the API to generate a fresh underwriting recommendation.
// This is the slow call; the page fires it separately from the detail load.
func (s *Service) Recommendation(ctx context.Context, token, loanID string) (string, error) {
	if loanID == "" {
		return "", apperrors.NewMissingLoanIDError()
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.RecommendationTimeout)
	defer cancel()

	var resp models.RecommendationResponse
	if err := s.client.GetJSON(ctx, "/api/applications/"+loanID+"/new-recommendation", token, &resp); err != nil {
		return "", err
	}
	return resp.LLMRecommendation, nil
}

// StoredRecommendation fetches the last generated recommendation without
// triggering a new run.
func (s *Service) StoredRecommendation(ctx context.Context, token, loanID string) (string, error) {
	if loanID == "" {
		return "", apperrors.NewMissingLoanIDError()
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	var resp models.RecommendationResponse
	if err := s.client.GetJSON(ctx, "/api/applications/"+loanID+"/recommendation", token, &resp); err != nil {
		return "", err
	}
	return resp.LLMRecommendation, nil
}

// Upload pushes one borrower document to the category's parsing endpoint and
// records it for the documents table.
func (s *Service) Upload(ctx context.Context, token string, req *UploadRequest, borrowerName string) error {
	endpoint, ok := categoryEndpoints[req.Category]
	if !ok {
		metrics.DocumentUploads.WithLabelValues(req.Category, "rejected").Inc()
		return apperrors.NewUnknownCategoryError(req.Category)
	}
	if req.BorrowerID == "" {
		metrics.DocumentUploads.WithLabelValues(req.Category, "rejected").Inc()
		return apperrors.NewUploadRejectedError("no borrower selected")
	}
	if len(req.Content) == 0 {
		metrics.DocumentUploads.WithLabelValues(req.Category, "rejected").Inc()
		return apperrors.NewUploadRejectedError("no file selected")
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	payload := backend.NewForm().
		Set("borrower_id", req.BorrowerID).
		AddFile("file", req.FileName, req.Content)

	if err := s.client.SubmitForm(ctx, http.MethodPost, endpoint, token, payload, nil); err != nil {
		metrics.DocumentUploads.WithLabelValues(req.Category, "failed").Inc()
		return err
	}

	metrics.DocumentUploads.WithLabelValues(req.Category, "success").Inc()
	s.recordUpload(req, borrowerName)

	s.logger.Info("document uploaded", map[string]interface{}{
		"loan_id":     req.LoanID,
		"borrower_id": req.BorrowerID,
		"category":    req.Category,
		"file":        req.FileName,
	})
	return nil
}

func (s *Service) recordUpload(req *UploadRequest, borrowerName string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploaded[req.LoanID] = append(s.uploaded[req.LoanID], models.UploadedDocument{
		ID:           uuid.NewString(),
		BorrowerID:   req.BorrowerID,
		BorrowerName: borrowerName,
		Category:     req.Category,
		FileName:     req.FileName,
		UploadedAt:   time.Now().UTC(),
	})
}

// UploadedDocuments returns the documents pushed for a loan, newest last.
func (s *Service) UploadedDocuments(loanID string) []models.UploadedDocument {
	s.mu.Lock()
	defer s.mu.Unlock()
	docs := s.uploaded[loanID]
	out := make([]models.UploadedDocument, len(docs))
	copy(out, docs)
	return out
}

// TotalIncome sums the borrowers' reported income. A malformed value logs a
// warning and contributes zero; one bad borrower must not blank the total.
func (s *Service) TotalIncome(borrowers []models.Borrower) float64 {
	var total float64
	for _, b := range borrowers {
		if b.TotalIncome == "" {
			continue
		}
		amount, err := b.TotalIncome.Parse()
		if err != nil {
			s.logger.Warn("unparseable borrower income", map[string]interface{}{
				"borrower_id": b.ID,
				"value":       b.TotalIncome.String(),
				"error":       err.Error(),
			})
			continue
		}
		total += amount
	}
	return total
}
