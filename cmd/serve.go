package cmd

import (
	"database/sql"
	"net"

	"github.com/vibast-solutions/ms-go-directory/app/controller"
	"github.com/vibast-solutions/ms-go-directory/app/middleware"
	"github.com/vibast-solutions/ms-go-directory/app/repository"
	"github.com/vibast-solutions/ms-go-directory/app/service"
	"github.com/vibast-solutions/ms-go-directory/config"

	_ "github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Start the HTTP (Echo) server for the directory API.`,
	Run:   runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	if err := configureLogging(cfg); err != nil {
		logrus.WithError(err).Fatal("Failed to configure logging")
	}

	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logrus.WithError(err).Fatal("Failed to ping database")
	}

	datasets := repository.LoadDatasetStore(cfg.WorkshopsFile, cfg.ManagementChangesFile)
	tenantRepo := repository.NewTenantRepository(db)

	authService := service.NewTenantAuthService(tenantRepo)
	usageService := service.NewUsageService(tenantRepo)
	directoryService := service.NewDirectoryService(datasets)
	mailSender := service.NewMailSender(cfg.Mail)

	startHTTPServer(cfg, authService, usageService, directoryService, mailSender)
}

func configureLogging(cfg *config.Config) error {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logrus.SetLevel(level)

	if cfg.LogFormat == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return nil
}

func startHTTPServer(
	cfg *config.Config,
	authService service.TenantAuthService,
	usageService service.UsageService,
	directoryService service.DirectoryService,
	mailSender service.MailSender,
) {
	e := echo.New()
	defer e.Close()
	e.HideBanner = true

	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogHost:      true,
		LogStatus:    true,
		LogMethod:    true,
		LogRemoteIP:  true,
		LogLatency:   true,
		LogUserAgent: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			fields := logrus.Fields{
				"remote_ip":  v.RemoteIP,
				"host":       v.Host,
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency":    v.Latency.String(),
				"latency_ns": v.Latency.Nanoseconds(),
				"user_agent": v.UserAgent,
			}
			entry := logrus.WithFields(fields)
			if v.Error != nil {
				entry = entry.WithError(v.Error)
			}
			entry.Info("http_request")
			return nil
		},
	}))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())

	directoryController := controller.NewDirectoryController(directoryService, usageService)
	usageController := controller.NewUsageController(usageService)
	contactController := controller.NewContactController(mailSender)
	apiKeyMiddleware := middleware.NewAPIKeyMiddleware(authService, cfg.IsDevelopment())

	v1 := e.Group("/api/v1")
	v1.Use(apiKeyMiddleware.RequireAPIKey)
	v1.GET("/workshops", directoryController.Workshops)
	v1.GET("/management-changes", directoryController.ManagementChanges)
	v1.GET("/usage", usageController.Status)

	e.POST("/api/contact", contactController.Submit)

	httpAddr := net.JoinHostPort(cfg.HTTPHost, cfg.HTTPPort)
	logrus.WithField("addr", httpAddr).Info("Starting HTTP server")
	if err := e.Start(httpAddr); err != nil {
		logrus.WithError(err).Fatal("Failed to start HTTP server")
	}
}
