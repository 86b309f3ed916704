package controller

import (
	"crypto/rand"
	"encoding/base64"
	"net/url"
	"time"

	"noter-be/internal/pkg/apperror"
	"noter-be/internal/pkg/logger"
	"noter-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

const oauthStateCookie = "oauth_state"

type IOAuthController interface {
	RegisterRoutes(r fiber.Router)
	Login(ctx *fiber.Ctx) error
	Callback(ctx *fiber.Ctx) error
}

type oauthController struct {
	service   service.IOAuthService
	clientURL string
	logger    logger.ILogger
}

func NewOAuthController(service service.IOAuthService, clientURL string, log logger.ILogger) IOAuthController {
	return &oauthController{
		service:   service,
		clientURL: clientURL,
		logger:    log,
	}
}

func (c *oauthController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth")
	h.Get("/google", c.Login)
	h.Get("/google/callback", c.Callback)
}

func (c *oauthController) Login(ctx *fiber.Ctx) error {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return err
	}
	state := base64.RawURLEncoding.EncodeToString(b)

	ctx.Cookie(&fiber.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Expires:  time.Now().Add(10 * time.Minute),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return ctx.Redirect(c.service.LoginURL(state), fiber.StatusTemporaryRedirect)
}

func (c *oauthController) Callback(ctx *fiber.Ctx) error {
	code := ctx.Query("code")
	if code == "" {
		return apperror.Validation("Missing code")
	}
	if state := ctx.Cookies(oauthStateCookie); state == "" || state != ctx.Query("state") {
		return apperror.Validation("Invalid OAuth state")
	}
	ctx.ClearCookie(oauthStateCookie)

	res, err := c.service.HandleCallback(ctx.UserContext(), code)
	if err != nil {
		return err
	}

	c.logger.Info("OAUTH", "Redirecting to client", map[string]interface{}{
		"user_id": res.User.Id.String(),
	})

	redirectURL := c.clientURL + "/auth/callback?token=" + url.QueryEscape(res.AccessToken)
	return ctx.Redirect(redirectURL, fiber.StatusTemporaryRedirect)
}
