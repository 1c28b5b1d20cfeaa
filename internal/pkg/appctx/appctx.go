package appctx

import (
	"time"

	"nexus-dashboard/internal/domain"
	"nexus-dashboard/internal/pkg/clock"
	"nexus-dashboard/internal/pkg/i18n"
)

// Context carries who is acting, in which language, and what time it is.
type Context struct {
	User   *domain.User
	Locale string
	Clock  clock.Clock
}

func New(user *domain.User, locale string, c clock.Clock) Context {
	if locale == "" {
		locale = i18n.DefaultLocale
	}
	return Context{User: user, Locale: locale, Clock: c}
}

func (c Context) Now() time.Time {
	if c.Clock == nil {
		return time.Now()
	}
	return c.Clock.Now()
}

func (c Context) ActorName() string {
	if c.User == nil {
		return ""
	}
	if c.User.Name != "" {
		return c.User.Name
	}
	return c.User.Username
}

func (c Context) IsAdmin() bool {
	return c.User != nil && c.User.IsAdmin()
}
