// internal/pages/profile/handler.go
package profile

import (
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
	sessions     *session.Store
	errorHandler *apperrors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, service *Service, sessions *session.Store, errorHandler *apperrors.ErrorHandler, log logger.Logger) *Handler {
	return &Handler{
		config:       config,
		service:      service,
		sessions:     sessions,
		errorHandler: errorHandler,
		logger:       log.WithFields(map[string]interface{}{"page": PageName}),
	}
}

type profileView struct {
	Title     string
	ActiveNav string
	User      models.User
	Success   string
	Error     string
}

// Show renders the profile screen from the cached user snapshot.
func (h *Handler) Show(c *gin.Context) {
	rec, ok := session.FromContext(c)
	if !ok {
		c.Redirect(http.StatusFound, "/auth")
		return
	}

	c.HTML(http.StatusOK, "profile.tmpl", profileView{
		Title:     "Your Profile",
		ActiveNav: PageName,
		User:      rec.User,
	})
}

// Submit pushes the profile form and refreshes the cached user snapshot so
// the nav shell shows the new name immediately.
func (h *Handler) Submit(c *gin.Context) {
	rec, ok := session.FromContext(c)
	if !ok {
		c.Redirect(http.StatusFound, "/auth")
		return
	}

	update := &Update{
		Name:     c.PostForm("name"),
		Password: c.PostForm("password"),
	}

	user, err := h.service.Update(c.Request.Context(), rec.Token, update)
	if err != nil {
		if h.errorHandler.HandleRequestError(c, PageName, err) {
			return
		}
		c.HTML(apperrors.HTTPStatus(err), "profile.tmpl", profileView{
			Title:     "Your Profile",
			ActiveNav: PageName,
			User:      rec.User,
			Error:     apperrors.UserMessage(err),
		})
		return
	}

	rec.User = *user
	if err := h.sessions.Update(c.Request.Context(), rec); err != nil {
		h.logger.WithError(err).Warn("failed to refresh cached user", map[string]interface{}{
			"session_id": rec.ID,
		})
	}

	c.HTML(http.StatusOK, "profile.tmpl", profileView{
		Title:     "Your Profile",
		ActiveNav: PageName,
		User:      *user,
		Success:   "Profile updated",
	})
}
