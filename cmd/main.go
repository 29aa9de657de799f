package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/Betocasasa/projecthub-backend/internal/config"
	"github.com/Betocasasa/projecthub-backend/internal/downdetect"
	attachments_controllers "github.com/Betocasasa/projecthub-backend/internal/features/attachments/controllers"
	attachments_services "github.com/Betocasasa/projecthub-backend/internal/features/attachments/services"
	"github.com/Betocasasa/projecthub-backend/internal/features/audit_logs"
	chat_cleanup "github.com/Betocasasa/projecthub-backend/internal/features/chat/cleanup"
	chat_controllers "github.com/Betocasasa/projecthub-backend/internal/features/chat/controllers"
	chat_gateway "github.com/Betocasasa/projecthub-backend/internal/features/chat/gateway"
	chat_services "github.com/Betocasasa/projecthub-backend/internal/features/chat/services"
	projects_controllers "github.com/Betocasasa/projecthub-backend/internal/features/projects/controllers"
	projects_services "github.com/Betocasasa/projecthub-backend/internal/features/projects/services"
	system_healthcheck "github.com/Betocasasa/projecthub-backend/internal/features/system/healthcheck"
	tasks_controllers "github.com/Betocasasa/projecthub-backend/internal/features/tasks/controllers"
	tasks_services "github.com/Betocasasa/projecthub-backend/internal/features/tasks/services"
	teams_controllers "github.com/Betocasasa/projecthub-backend/internal/features/teams/controllers"
	users_controllers "github.com/Betocasasa/projecthub-backend/internal/features/users/controllers"
	users_middleware "github.com/Betocasasa/projecthub-backend/internal/features/users/middleware"
	users_services "github.com/Betocasasa/projecthub-backend/internal/features/users/services"
	cache_utils "github.com/Betocasasa/projecthub-backend/internal/util/cache"
	env_utils "github.com/Betocasasa/projecthub-backend/internal/util/env"
	"github.com/Betocasasa/projecthub-backend/internal/util/logger"
	_ "github.com/Betocasasa/projecthub-backend/swagger" // swagger docs

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title ProjectHub Backend API
// @version 1.0
// @description API for ProjectHub
// @termsOfService http://swagger.io/terms/

// @host localhost:4005
// @BasePath /api/v1
// @schemes http
func main() {
	log := logger.GetLogger()
	config.StartListeningForShutdownSignal()
	setUpDependencies()

	cache_utils.TestCacheConnection()

	runMigrations(log)

	err := users_services.GetUserService().CreateInitialAdmin()
	if err != nil {
		log.Error("Failed to create initial admin", "error", err)
		os.Exit(1)
	}

	handlePasswordReset(log)

	go generateSwaggerDocs(log)

	gin.SetMode(gin.ReleaseMode)
	ginApp := gin.Default()

	// Add GZIP compression middleware
	ginApp.Use(gzip.Gzip(
		gzip.DefaultCompression,
		// Don't compress already compressed files
		gzip.WithExcludedExtensions(
			[]string{".png", ".gif", ".jpeg", ".jpg", ".ico", ".svg", ".pdf", ".mp4"},
		),
	))

	enableCors(ginApp)
	setUpRoutes(ginApp)
	runBackgroundTasks(log)
	mountFrontend(ginApp)

	startServerWithGracefulShutdown(log, ginApp)
}

func startServerWithGracefulShutdown(log *slog.Logger, app *gin.Engine) {
	host := ""
	if config.GetEnv().EnvMode == env_utils.EnvModeDevelopment {
		// for dev we use localhost to avoid firewall
		// requests on each run for Windows
		host = "127.0.0.1"
	}

	srv := &http.Server{
		Addr:    host + ":4005",
		Handler: app,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("listen:", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info("Shutdown signal received")

	// The context is used to inform the server it has 10 seconds to finish
	// the request it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown:", "error", err)
	}

	log.Info("Server gracefully stopped")
}

func setUpRoutes(r *gin.Engine) {
	v1 := r.Group("/api/v1")

	// Mount Swagger UI
	v1.GET("/docs/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public routes: user auth, system probes and the chat websocket
	// (the websocket authenticates in-band after the upgrade)
	userController := users_controllers.GetUserController()
	userController.RegisterRoutes(v1)
	downdetect.GetDowndetectController().RegisterRoutes(v1)
	system_healthcheck.GetHealthcheckController().RegisterRoutes(v1)
	chat_gateway.GetGatewayController().RegisterRoutes(v1)

	// Setup auth middleware
	userService := users_services.GetUserService()
	authMiddleware := users_middleware.AuthMiddleware(userService)

	// Protected routes
	protected := v1.Group("")
	protected.Use(authMiddleware)

	audit_logs.GetAuditLogController().RegisterRoutes(protected)
	userController.RegisterProtectedRoutes(protected)
	users_controllers.GetSettingsController().RegisterRoutes(protected)
	users_controllers.GetManagementController().RegisterRoutes(protected)
	teams_controllers.GetTeamController().RegisterRoutes(protected)
	teams_controllers.GetMembershipController().RegisterRoutes(protected)
	projects_controllers.GetProjectController().RegisterRoutes(protected)
	tasks_controllers.GetTaskController().RegisterRoutes(protected)
	chat_controllers.GetChatController().RegisterRoutes(protected)
	attachments_controllers.GetAttachmentController().RegisterRoutes(protected)
}

func setUpDependencies() {
	audit_logs.SetupDependencies()
	projects_services.SetupDependencies()
	tasks_services.SetupDependencies()
	chat_services.SetupDependencies()
	chat_gateway.SetupDependencies()
	attachments_services.SetupDependencies()
}

func runBackgroundTasks(log *slog.Logger) {
	log.Info("Preparing to run background tasks...")

	chat_cleanup.GetChatCleanupBackgroundService().StartWorkers()
	attachments_services.GetAttachmentCleanupBackgroundService().StartWorkers()

	log.Info("Background tasks started successfully")
}

// Keep in mind: docs appear after second launch, because Swagger
// is generated into Go files. So if we changed files, we generate
// new docs, but still need to restart the server to see them.
func generateSwaggerDocs(log *slog.Logger) {
	if config.GetEnv().EnvMode == env_utils.EnvModeProduction {
		return
	}

	// Run swag from the current directory instead of parent
	// Use the current directory as the base for swag init
	// This ensures swag can find the files regardless of where the command is run from
	currentDir, err := os.Getwd()
	if err != nil {
		log.Error("Failed to get current directory", "error", err)
		return
	}

	cmd := exec.Command("swag", "init", "-d", currentDir, "-g", "cmd/main.go", "-o", "swagger")

	output, err := cmd.CombinedOutput()
	if err != nil {
		log.Error("Failed to generate Swagger docs", "error", err, "output", string(output))
		return
	}

	log.Info("Swagger documentation generated successfully")
}

func runMigrations(log *slog.Logger) {
	log.Info("Running database migrations...")

	cmd := exec.Command("goose", "-dir", "migrations", "up")
	cmd.Env = append(
		os.Environ(),
		"GOOSE_DRIVER=postgres",
		"GOOSE_DBSTRING="+config.GetEnv().DatabaseDsn,
	)

	cmd.Dir = config.GetEnv().BackendRootPath

	output, err := cmd.CombinedOutput()
	if err != nil {
		log.Error("Failed to run migrations", "error", err, "output", string(output))
		os.Exit(1)
	}

	log.Info("Database migrations completed successfully", "output", string(output))
}

func enableCors(ginApp *gin.Engine) {
	if config.GetEnv().EnvMode == env_utils.EnvModeDevelopment {
		// Setup CORS
		ginApp.Use(cors.New(cors.Config{
			AllowOrigins: []string{"*"},
			AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
			AllowHeaders: []string{
				"Origin",
				"Content-Length",
				"Content-Type",
				"Authorization",
				"Accept",
				"Accept-Language",
				"Accept-Encoding",
				"Access-Control-Request-Method",
				"Access-Control-Request-Headers",
				"Access-Control-Allow-Methods",
				"Access-Control-Allow-Headers",
				"Access-Control-Allow-Origin",
			},
			AllowCredentials: true,
		}))
	}
}

func mountFrontend(ginApp *gin.Engine) {
	staticDir := "./ui/build"
	ginApp.NoRoute(func(c *gin.Context) {
		path := filepath.Join(staticDir, c.Request.URL.Path)

		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			c.File(path)
			return
		}

		c.File(filepath.Join(staticDir, "index.html"))
	})
}

func handlePasswordReset(log *slog.Logger) {
	// Handle password reset if flag is provided
	newPassword := flag.String("new-password", "", "Set a new password for the user")
	email := flag.String("email", "", "Email of the user to reset password")

	flag.Parse()

	if *newPassword == "" {
		return
	}

	log.Info("Found reset password command - reseting password...")

	if *email == "" {
		log.Info("No email provided, please provide an email via --email=\"some@email.com\" flag")
		os.Exit(1)
	}

	resetPassword(*email, *newPassword, log)
}

func resetPassword(email string, newPassword string, log *slog.Logger) {
	log.Info("Resetting password...")

	userService := users_services.GetUserService()
	err := userService.ChangeUserPasswordByEmail(email, newPassword)
	if err != nil {
		log.Error("Failed to reset password", "error", err)
		os.Exit(1)
	}

	log.Info("Password reset successfully")
	os.Exit(0)
}
