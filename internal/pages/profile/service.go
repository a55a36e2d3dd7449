// internal/pages/profile/service.go
package profile

import (
	"context"
	"net/http"
	"strings"

	"mortgage-dashboard/internal/common/backend"
	apperrors "mortgage-dashboard/internal/common/errors"
	"mortgage-dashboard/internal/common/logger"
	"mortgage-dashboard/internal/models"
)

const PageName = "profile"

// Update is the parsed profile form.
type Update struct {
	Name     string
	Password string
}

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

// Update pushes the profile changes and returns the refreshed user snapshot.
// Empty fields are left out so the API keeps their current values.
func (s *Service) Update(ctx context.Context, token string, update *Update) (*models.User, error) {
	name := strings.TrimSpace(update.Name)
	if name == "" && update.Password == "" {
		return nil, apperrors.NewValidationFailedError("nothing to update")
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	payload := backend.NewForm()
	if name != "" {
		payload.Set("name", name)
	}
	if update.Password != "" {
		payload.Set("password", update.Password)
	}

	var resp models.AuthResponse
	if err := s.client.SubmitForm(ctx, http.MethodPut, "/api/user", token, payload, &resp); err != nil {
		return nil, err
	}

	s.logger.Info("profile updated", map[string]interface{}{
		"username": resp.User.Username,
	})
	return &resp.User, nil
}
