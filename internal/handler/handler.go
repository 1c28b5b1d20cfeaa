package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"nexus-dashboard/internal/domain"
	"nexus-dashboard/internal/middleware"
	"nexus-dashboard/internal/service"
	"nexus-dashboard/internal/service/analytics"
)

type Handlers struct {
	Auth         *AuthHandler
	User         *UserHandler
	Project      *ProjectHandler
	Client       *ClientHandler
	Dashboard    *DashboardHandler
	Feed         *FeedHandler
	Notification *NotificationHandler
	Chat         *ChatHandler
	Goal         *GoalHandler
	Backup       *BackupHandler
	Report       *ReportHandler
	Settings     *SettingsHandler
}

func NewHandlers(services *service.Services) *Handlers {
	ws := services.Workspace
	return &Handlers{
		Auth:         NewAuthHandler(services.Auth),
		User:         NewUserHandler(ws),
		Project:      NewProjectHandler(ws),
		Client:       NewClientHandler(ws, services.Media),
		Dashboard:    NewDashboardHandler(services.Dashboard),
		Feed:         NewFeedHandler(ws),
		Notification: NewNotificationHandler(ws),
		Chat:         NewChatHandler(ws),
		Goal:         NewGoalHandler(ws, services.Dashboard),
		Backup:       NewBackupHandler(ws, services.Media),
		Report:       NewReportHandler(ws),
		Settings:     NewSettingsHandler(ws),
	}
}

// publicUser hides the stored password from API responses.
func publicUser(u domain.User) domain.User {
	u.Password = ""
	return u
}

func publicUsers(users []domain.User) []domain.User {
	out := make([]domain.User, 0, len(users))
	for _, u := range users {
		out = append(out, publicUser(u))
	}
	return out
}

// windowQuery reads ?range=&from=&to=. from and to are calendar dates; to covers its whole day.
func windowQuery(c *fiber.Ctx, now time.Time) (analytics.Range, *time.Time, *time.Time, error) {
	r := analytics.Range(c.Query("range", string(analytics.RangeAll)))
	loc := now.Location()

	var from, to *time.Time
	if s := c.Query("from"); s != "" {
		d, err := domain.ParseDate(s)
		if err != nil {
			return "", nil, nil, middleware.BadRequest("Invalid from date")
		}
		t := d.In(loc)
		from = &t
	}
	if s := c.Query("to"); s != "" {
		d, err := domain.ParseDate(s)
		if err != nil {
			return "", nil, nil, middleware.BadRequest("Invalid to date")
		}
		t := d.EndIn(loc)
		to = &t
	}
	return r, from, to, nil
}
