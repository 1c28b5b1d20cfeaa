package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"nexus-dashboard/internal/domain"
	"nexus-dashboard/internal/pkg/appctx"
	"nexus-dashboard/internal/pkg/clock"
	"nexus-dashboard/internal/pkg/i18n"
	"nexus-dashboard/internal/service/auth"
)

const (
	UserContextKey   = "user"
	UserIDContextKey = "user_id"
	AppContextKey    = "app_ctx"
)

// LocaleSource provides the stored language preference; "" means none was chosen.
type LocaleSource interface {
	StoredLanguage() string
}

func AuthRequired(authService auth.Service, locales LocaleSource, clk clock.Clock) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return Unauthorized("Missing authorization header")
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return Unauthorized("Invalid authorization header format")
		}

		claims, err := authService.ValidateAccessToken(parts[1])
		if err != nil {
			return Unauthorized("Invalid or expired token")
		}

		user, err := authService.GetUserByID(c.Context(), claims.UserID)
		if err != nil || user == nil {
			return Unauthorized("User not found")
		}

		c.Locals(UserContextKey, user)
		c.Locals(UserIDContextKey, user.ID)
		c.Locals(AppContextKey, appctx.New(user, resolveLocale(c, locales), clk))

		return c.Next()
	}
}

// resolveLocale prefers ?lang, then the stored preference, then Accept-Language.
func resolveLocale(c *fiber.Ctx, locales LocaleSource) string {
	if l := i18n.Normalize(c.Query("lang")); l != "" {
		return l
	}
	if locales != nil {
		if l := i18n.Normalize(locales.StoredLanguage()); l != "" {
			return l
		}
	}
	if l := i18n.Normalize(c.Get(fiber.HeaderAcceptLanguage)); l != "" {
		return l
	}
	return i18n.DefaultLocale
}

func GetCurrentUser(c *fiber.Ctx) *domain.User {
	user, ok := c.Locals(UserContextKey).(*domain.User)
	if !ok {
		return nil
	}
	return user
}

func GetCurrentUserID(c *fiber.Ctx) string {
	userID, _ := c.Locals(UserIDContextKey).(string)
	return userID
}

func GetAppContext(c *fiber.Ctx) appctx.Context {
	ac, ok := c.Locals(AppContextKey).(appctx.Context)
	if !ok {
		return appctx.New(GetCurrentUser(c), i18n.DefaultLocale, nil)
	}
	return ac
}
