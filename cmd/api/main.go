package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/minio/minio-go/v7"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"nexus-dashboard/internal/config"
	"nexus-dashboard/internal/domain"
	"nexus-dashboard/internal/handler"
	"nexus-dashboard/internal/middleware"
	"nexus-dashboard/internal/pkg/clock"
	"nexus-dashboard/internal/repository"
	"nexus-dashboard/internal/service"
	"nexus-dashboard/internal/service/workspace"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	local, err := config.NewSQLiteDB(cfg)
	if err != nil {
		log.Fatalf("Failed to open local store: %v", err)
	}
	defer local.Close()

	var cloud *sqlx.DB
	if cfg.RemoteMode == config.RemoteModePostgres {
		cloud, err = config.NewPostgresDB(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer cloud.Close()
	}

	redis, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v (dashboard cache disabled)", err)
		redis = nil
	}
	if redis != nil {
		defer redis.Close()
	}

	var minioClient *minio.Client
	minioClient, err = config.NewMinIOClient(cfg)
	if err != nil {
		if !errors.Is(err, config.ErrMinIONotConfigured) {
			log.Printf("Warning: Failed to connect to MinIO: %v (attachments will not work)", err)
		}
		minioClient = nil
	}

	clk := clock.New(cfg.Location())
	repos := repository.NewRepositories(local, cloud)
	services := service.NewServices(repos, redis, minioClient, cfg, clk)

	bootCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	err = services.Workspace.Bootstrap(bootCtx, workspace.SeedAdmin{
		Username: cfg.SeedAdminUsername,
		Password: cfg.SeedAdminPassword,
		Name:     cfg.SeedAdminName,
	})
	cancel()
	if err != nil {
		log.Fatalf("Failed to load workspace: %v", err)
	}

	handlers := handler.NewHandlers(services)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
		BodyLimit:    64 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health" || c.Path() == "/metrics"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Accept-Language, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))
	app.Use(middleware.Metrics())

	setupRoutes(app, handlers, services)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		log.Println("Shutting down server...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	log.Printf("Server starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	services.Persistence.Flush()
	log.Println("Pending syncs flushed")
}

func setupRoutes(app *fiber.App, h *handler.Handlers, s *service.Services) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	v1 := app.Group("/api/v1")
	admin := middleware.RequireRole(domain.RoleAdmin)

	v1.Post("/auth/login", h.Auth.Login)

	protected := v1.Group("", middleware.AuthRequired(s.Auth, s.Workspace, s.Clock))

	auth := protected.Group("/auth")
	auth.Post("/logout", h.Auth.Logout)
	auth.Get("/me", h.Auth.Me)

	users := protected.Group("/users")
	users.Get("/", admin, h.User.List)
	users.Get("/workers", h.User.ListWorkers)
	users.Post("/", admin, h.User.Create)
	users.Delete("/:id", admin, h.User.Delete)
	users.Patch("/:id/status", h.User.SetStatus)

	projects := protected.Group("/projects")
	projects.Get("/", h.Project.List)
	projects.Get("/:projectId", h.Project.Get)
	projects.Post("/", admin, h.Project.Create)
	projects.Put("/:projectId", admin, h.Project.Update)
	projects.Delete("/:projectId", admin, h.Project.Delete)

	clients := projects.Group("/:projectId/clients")
	clients.Get("/:clientId", h.Client.Get)
	clients.Post("/", admin, h.Client.Create)
	clients.Put("/:clientId", admin, h.Client.Update)
	clients.Delete("/:clientId", admin, h.Client.Delete)
	clients.Put("/:clientId/assign", admin, h.Client.Assign)
	clients.Post("/:clientId/reminders", admin, h.Client.AddReminder)
	clients.Patch("/:clientId/reminders/:reminderId/complete", admin, h.Client.CompleteReminder)
	clients.Patch("/:clientId/items/:index/paid", admin, h.Client.TogglePaid)
	clients.Patch("/:clientId/items/:index/status", h.Client.UpdateItemStatus)
	clients.Post("/:clientId/items/:index/attachments", h.Client.UploadAttachment)

	protected.Get("/tasks", h.Client.MyTasks)
	protected.Get("/attachments/url", h.Client.AttachmentURL)

	dashboard := protected.Group("/dashboard", admin)
	dashboard.Get("/stats", h.Dashboard.GetStats)
	dashboard.Get("/overview", h.Dashboard.GetOverview)
	dashboard.Get("/analytics", h.Dashboard.GetAnalytics)
	dashboard.Get("/projects", h.Dashboard.GetProjects)

	feed := protected.Group("/feed")
	feed.Get("/", h.Feed.List)
	feed.Post("/read", h.Feed.MarkRead)

	notifications := protected.Group("/notifications")
	notifications.Get("/", h.Notification.List)
	notifications.Post("/", admin, h.Notification.Send)
	notifications.Patch("/:id/read", h.Notification.MarkAsRead)

	chat := protected.Group("/chat")
	chat.Post("/messages", h.Chat.Send)
	chat.Get("/unread", h.Chat.UnreadCounts)
	chat.Get("/:userId", h.Chat.Conversation)
	chat.Post("/:userId/read", h.Chat.MarkRead)

	goals := protected.Group("/goals")
	goals.Get("/", h.Goal.List)
	goals.Get("/active", h.Goal.Active)
	goals.Post("/", admin, h.Goal.Create)
	goals.Delete("/:id", admin, h.Goal.Delete)

	backup := protected.Group("/backup", admin)
	backup.Get("/export", h.Backup.Export)
	backup.Post("/import", h.Backup.Import)
	backup.Post("/archive", h.Backup.Archive)

	reports := protected.Group("/reports", admin)
	reports.Get("/csv", h.Report.CSV)
	reports.Get("/xlsx", h.Report.XLSX)

	settings := protected.Group("/settings")
	settings.Get("/", h.Settings.Get)
	settings.Put("/language", h.Settings.SetLanguage)
}
