// internal/pages/auth/service.go
package auth

import (
	"context"
	"net/http"
	"strings"

	"mortgage-dashboard/internal/common/backend"
	apperrors "mortgage-dashboard/internal/common/errors"
	"mortgage-dashboard/internal/common/logger"
	"mortgage-dashboard/internal/models"
)

type Service struct {
	config *Config
	client *backend.Client
	logger logger.Logger
}

func NewService(config *Config, client *backend.Client, log logger.Logger) *Service {
	return &Service{
		config: config,
		client: client,
		logger: log.WithFields(map[string]interface{}{"page": PageName}),
	}
}

// Login exchanges credentials for the account snapshot and API token.
func (s *Service) Login(ctx context.Context, creds *Credentials) (*models.AuthResponse, error) {
	if err := validateCredentials(creds); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	payload := backend.NewForm().
		Set("username", creds.Username).
		Set("password", creds.Password)

	var resp models.AuthResponse
	if err := s.client.SubmitForm(ctx, http.MethodPost, "/api/user/login", "", payload, &resp); err != nil {
		return nil, err
	}

	s.logger.Info("user signed in", map[string]interface{}{
		"username": resp.User.Username,
	})
	return &resp, nil
}

// Register creates an account. The confirm-password check runs before any
// API call.
func (s *Service) Register(ctx context.Context, creds *Credentials) (*models.AuthResponse, error) {
	if err := validateCredentials(creds); err != nil {
		return nil, err
	}
	if creds.Password != creds.ConfirmPassword {
		return nil, apperrors.NewPasswordMismatchError()
	}

	name := strings.TrimSpace(creds.Name)
	if name == "" {
		name = defaultOfficerName
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	payload := backend.NewForm().
		Set("username", creds.Username).
		Set("password", creds.Password).
		Set("name", name)

	var resp models.AuthResponse
	if err := s.client.SubmitForm(ctx, http.MethodPost, "/api/user", "", payload, &resp); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", map[string]interface{}{
		"username": resp.User.Username,
	})
	return &resp, nil
}

func validateCredentials(creds *Credentials) error {
	if strings.TrimSpace(creds.Username) == "" || creds.Password == "" {
		return apperrors.NewValidationFailedError("please fill in all required fields")
	}
	return nil
}
