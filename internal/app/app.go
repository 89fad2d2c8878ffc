package app

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strconv"
	"time"

	"campusfix/internal/authz"
	"campusfix/internal/config"
	"campusfix/internal/handlers"
	"campusfix/internal/models"
	"campusfix/internal/pdf"
	"campusfix/internal/realtime"
	"campusfix/internal/repositories"
	"campusfix/internal/routes"
	"campusfix/internal/services"
	"campusfix/internal/storage"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	_ "campusfix/docs"
)

// defaultWorkTypes are seeded on first start so the public form always has a
// taxonomy to offer.
var defaultWorkTypes = []string{
	"Electrical",
	"Plumbing",
	"Carpentry",
	"Masonry",
	"Painting",
	"Cleaning",
	"Gardening",
	"Other",
}

func Run() {
	cfg := config.LoadConfig()
	ctx := context.Background()

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("failed to open database: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("failed to close database: %v", err)
		}
	}()
	if err := db.PingContext(ctx); err != nil {
		log.Fatal("database unreachable: ", err)
	}

	// === S3 ===
	s3Store, err := storage.NewS3Store(ctx, cfg.S3.Region, cfg.S3.Bucket, cfg.S3.AccessKey, cfg.S3.SecretKey)
	if err != nil {
		log.Fatal("failed to init S3: ", err)
	}
	if err := s3Store.Ping(ctx); err != nil {
		log.Printf("[app][warn] S3 bucket check failed: %v", err)
	}

	// === Repos ===
	taskRepo := repositories.NewTaskRepository(db)
	workTypeRepo := repositories.NewWorkTypeRepository(db)
	adminRepo := repositories.NewAdminRepository(db)
	userRepo := repositories.NewUserRepository(db)

	// === Services ===
	authService := services.NewAuthService([]byte(cfg.Auth.JWTSecret), time.Duration(cfg.Auth.TokenTTLH)*time.Hour)
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)

	// Telegram is optional; the notifier treats a nil service as "off".
	var tgService *services.TelegramService
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != "" {
		chatID, err := strconv.ParseInt(cfg.Telegram.ChatID, 10, 64)
		if err != nil {
			log.Printf("[app][warn] bad telegram chat_id %q, telegram disabled", cfg.Telegram.ChatID)
		} else {
			tgService = services.NewTelegramService(cfg.Telegram.BotToken, chatID)
		}
	}
	notifier := services.NewNotifier(emailService, tgService, adminRepo)

	taskService := services.NewTaskService(taskRepo, s3Store)
	workTypeService := services.NewWorkTypeService(workTypeRepo)
	adminService := services.NewAdminService(adminRepo)
	reportService := services.NewReportService(taskRepo)

	pdfGen := pdf.NewWorkOrderGenerator()
	hub := realtime.NewHub()

	seed(ctx, workTypeService, userRepo, authService, cfg)

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(authService, userRepo)
	taskHandler := handlers.NewTaskHandler(taskService, workTypeService, s3Store, hub, notifier, pdfGen)
	workTypeHandler := handlers.NewWorkTypeHandler(workTypeService)
	adminHandler := handlers.NewAdminHandler(adminService)
	publicHandler := handlers.NewPublicHandler(taskService, workTypeService, s3Store, notifier)
	reportHandler := handlers.NewReportHandler(reportService)
	wsHandler := handlers.NewWSHandler(hub, cfg.Server.AllowedOrigin)

	// === Gin ===
	router := gin.Default()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware(cfg.Server.AllowedOrigin))

	routes.SetupRoutes(
		router,
		[]byte(cfg.Auth.JWTSecret),
		authHandler,
		taskHandler,
		workTypeHandler,
		adminHandler,
		publicHandler,
		reportHandler,
		wsHandler,
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("server listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("failed to start server: ", err)
	}
}

// seed makes a fresh database usable: the default work types, and a
// superadmin account when no users exist yet.
func seed(ctx context.Context, workTypes services.WorkTypeService, users repositories.UserRepository, auth services.AuthService, cfg *config.Config) {
	if err := workTypes.Seed(ctx, defaultWorkTypes); err != nil {
		log.Printf("[app][warn] work type seed failed: %v", err)
	}

	count, err := users.Count(ctx)
	if err != nil {
		log.Printf("[app][warn] user count failed: %v", err)
		return
	}
	if count > 0 {
		return
	}
	if cfg.Seed.SuperAdminEmail == "" || cfg.Seed.SuperAdminPassword == "" {
		log.Printf("[app][warn] no users and no seed superadmin configured; login will be impossible")
		return
	}

	hash, err := auth.HashPassword(cfg.Seed.SuperAdminPassword)
	if err != nil {
		log.Printf("[app][warn] superadmin seed failed: %v", err)
		return
	}
	if err := users.Store(ctx, newSuperAdmin(cfg.Seed.SuperAdminEmail, hash)); err != nil {
		log.Printf("[app][warn] superadmin seed failed: %v", err)
		return
	}
	log.Printf("[app] seeded superadmin %s", cfg.Seed.SuperAdminEmail)
}

func newSuperAdmin(email, passwordHash string) *models.User {
	return &models.User{
		Name:         "Super Admin",
		Email:        email,
		PasswordHash: passwordHash,
		Role:         authz.RoleSuperAdmin,
	}
}

func corsMiddleware(allowedOrigin string) gin.HandlerFunc {
	if allowedOrigin == "" {
		allowedOrigin = "*"
	}
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
