package main

import (
	"errors"
	"strings"

	"github.com/Abraxas-365/hirematch/pkg/errx"
	"github.com/Abraxas-365/hirematch/pkg/logx"
	"github.com/Abraxas-365/hirematch/recruitment/application/applicationapi"
	"github.com/Abraxas-365/hirematch/recruitment/candidate/candidateapi"
	"github.com/Abraxas-365/hirematch/recruitment/job/jobapi"
	"github.com/Abraxas-365/hirematch/recruitment/savedsearch/savedsearchapi"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := cfg.ValidateServer(); err != nil {
			return err
		}

		ctx, stop := signalContext(cmd.Context())
		defer stop()

		logx.Infof("Starting %s API Server...", cfg.Server.AppName)

		container, err := NewContainer(ctx, cfg)
		if err != nil {
			return err
		}
		defer container.Close()

		app := newApp(container)

		// Run server in a goroutine
		errCh := make(chan error, 1)
		go func() {
			logx.Infof("Server listening on port %s", cfg.Server.Port)
			errCh <- app.Listen(":" + cfg.Server.Port)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		logx.Info("Shutting down server...")
		if err := app.Shutdown(); err != nil {
			logx.Errorf("Server forced to shutdown: %v", err)
		}
		logx.Info("Server exited")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// newApp builds the fiber application with every route registered
func newApp(container *Container) *fiber.App {
	cfg := container.Config

	app := fiber.New(fiber.Config{
		AppName:               cfg.Server.AppName,
		DisableStartupMessage: true,
		ErrorHandler:          globalErrorHandler,
		BodyLimit:             int(cfg.Storage.MaxUpload) + 1024*1024,
	})

	// Global Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.Server.CORSOrigins, ", "),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, PATCH, HEAD",
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// Health Check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"db":     container.DB.PingContext(c.Context()) == nil,
			"redis":  container.Redis.Ping(c.Context()).Err() == nil,
		})
	})

	// Metrics
	app.Get("/metrics", adaptor.HTTPHandler(
		promhttp.HandlerFor(container.Metrics.Registry(), promhttp.HandlerOpts{}),
	))

	// --- Recruitment Routes ---

	// Jobs: /api/jobs
	jobapi.RegisterRoutes(app, container.JobHandlers, container.UnifiedAuthMiddleware)

	// Candidates: /api/candidates
	candidateapi.RegisterRoutes(app, container.CandidateHandlers, container.UnifiedAuthMiddleware)

	// Applications: /api/applications
	applicationapi.RegisterRoutes(app, container.ApplicationHandlers, container.UnifiedAuthMiddleware)

	// Saved searches: /api/saved-searches
	savedsearchapi.RegisterRoutes(app, container.SavedSearchHandlers, container.UnifiedAuthMiddleware)

	return app
}

// globalErrorHandler converts internal errors to standard HTTP responses
func globalErrorHandler(c *fiber.Ctx, err error) error {
	// If it's a Fiber error (e.g., 404 handler not found)
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{
			"error": fe.Message,
			"code":  fe.Code,
		})
	}

	// If it's our custom errx.Error
	var e *errx.Error
	if errors.As(err, &e) {
		if e.HTTPStatus >= fiber.StatusInternalServerError {
			logx.Errorw("request failed", "path", c.Path(), "code", e.Code, "error", e)
		}
		return c.Status(e.HTTPStatus).JSON(e.ToHTTPResponse())
	}

	// Default unknown error
	logx.Errorf("Internal Server Error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   "Internal Server Error",
		"type":    "INTERNAL",
		"code":    "INTERNAL_ERROR",
		"message": "An unexpected error occurred",
	})
}
