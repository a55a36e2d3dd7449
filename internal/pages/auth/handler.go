// internal/pages/auth/handler.go
package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "mortgage-dashboard/internal/common/errors"
	"mortgage-dashboard/internal/common/logger"
	"mortgage-dashboard/internal/common/session"
	"mortgage-dashboard/internal/models"
)

type Handler struct {
	config   *Config
	service  *Service
	sessions *session.Store
	logger   logger.Logger
}

func NewHandler(config *Config, service *Service, sessions *session.Store, log logger.Logger) *Handler {
	return &Handler{
		config:   config,
		service:  service,
		sessions: sessions,
		logger:   log.WithFields(map[string]interface{}{"page": PageName}),
	}
}

// authView is the template payload for the sign-in/register screen.
type authView struct {
	Title    string
	Mode     string
	Username string
	Name     string
	Error    string
}

// Show renders the auth screen in login or register mode.
func (h *Handler) Show(c *gin.Context) {
	mode := c.DefaultQuery("mode", ModeLogin)
	if mode != ModeRegister {
		mode = ModeLogin
	}
	c.HTML(http.StatusOK, "auth.tmpl", authView{Title: "Sign In", Mode: mode})
}

// Submit handles both form modes. Success caches the user snapshot in the
// session store and lands on the pipeline; failure re-renders with the API's
// error message verbatim.
func (h *Handler) Submit(c *gin.Context) {
	mode := c.DefaultPostForm("mode", ModeLogin)
	creds := &Credentials{
		Username:        c.PostForm("username"),
		Password:        c.PostForm("password"),
		ConfirmPassword: c.PostForm("confirm_password"),
		Name:            c.PostForm("name"),
	}

	var (
		resp *models.AuthResponse
		err  error
	)
	if mode == ModeRegister {
		resp, err = h.service.Register(c.Request.Context(), creds)
	} else {
		resp, err = h.service.Login(c.Request.Context(), creds)
	}
	if err != nil {
		c.HTML(apperrors.HTTPStatus(err), "auth.tmpl", authView{
			Title:    "Sign In",
			Mode:     mode,
			Username: creds.Username,
			Name:     creds.Name,
			Error:    apperrors.UserMessage(err),
		})
		return
	}

	rec, err := h.sessions.Create(c.Request.Context(), resp.Token, resp.User)
	if err != nil {
		h.logger.WithError(err).Error("failed to create session", map[string]interface{}{
			"username": resp.User.Username,
		})
		c.HTML(http.StatusInternalServerError, "auth.tmpl", authView{
			Title: "Sign In",
			Mode:  mode,
			Error: "Could not start your session. Please try again.",
		})
		return
	}

	c.SetCookie(h.config.CookieName, rec.ID, h.config.CookieMaxAge, "/", "", h.config.SecureCookie, true)
	c.Redirect(http.StatusSeeOther, "/applications")
}

// Logout drops the session record and clears the cookie. Also the landing
// spot for any 401 seen elsewhere.
func (h *Handler) Logout(c *gin.Context) {
	if id, err := c.Cookie(h.config.CookieName); err == nil && id != "" {
		if err := h.sessions.Delete(c.Request.Context(), id); err != nil {
			h.logger.WithError(err).Warn("failed to delete session", map[string]interface{}{
				"session_id": id,
			})
		}
	}
	c.SetCookie(h.config.CookieName, "", -1, "/", "", h.config.SecureCookie, true)
	c.Redirect(http.StatusFound, "/auth")
}
