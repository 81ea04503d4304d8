package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/historin/historin-backend/config"
	"github.com/historin/historin-backend/internal/app/controller"
	"github.com/historin/historin-backend/internal/app/model"
	"github.com/historin/historin-backend/internal/app/repository"
	"github.com/historin/historin-backend/internal/app/service"
	"github.com/historin/historin-backend/internal/db"
	"github.com/historin/historin-backend/internal/middleware"
	"github.com/historin/historin-backend/internal/router"
	"github.com/historin/historin-backend/internal/scheduler"
	"github.com/historin/historin-backend/internal/storage"
	"github.com/historin/historin-backend/pkg/logger"
	"github.com/historin/historin-backend/pkg/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting HISTORIN Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Redis only backs session revocation; the server runs without it.
	if cfg.Redis.Enabled() {
		if err := redis.Init(&cfg.Redis); err != nil {
			logger.Warn("Failed to connect to Redis, session revocation disabled", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			defer redis.Close()
		}
	}

	// Repositories
	adRepo := repository.NewAdRepository(db.GetDB())
	qrCodeRepo := repository.NewQrCodeRepository(db.GetDB())
	qrScanRepo := repository.NewQrScanRepository(db.GetDB())
	questionRepo := repository.NewQuizQuestionRepository(db.GetDB())
	submissionRepo := repository.NewQuizSubmissionRepository(db.GetDB())

	cityRepo := repository.NewCrudRepository[model.City](db.GetDB(), "city")
	streetRepo := repository.NewCrudRepository[model.Street](db.GetDB(), "street")
	authorRepo := repository.NewCrudRepository[model.Author](db.GetDB(), "author")
	workRepo := repository.NewCrudRepository[model.Work](db.GetDB(), "work")
	businessRepo := repository.NewCrudRepository[model.Business](db.GetDB(), "business")
	organizationRepo := repository.NewCrudRepository[model.Organization](db.GetDB(), "organization")
	referenceSiteRepo := repository.NewCrudRepository[model.ReferenceSite](db.GetDB(), "reference site")
	popupAdRepo := repository.NewCrudRepository[model.PopupAd](db.GetDB(), "popup ad")

	// Services
	adService := service.NewAdService(adRepo)
	qrHuntService := service.NewQrHuntService(qrCodeRepo, qrScanRepo)
	quizService := service.NewQuizService(questionRepo, submissionRepo)
	adminAuthService := service.NewAdminAuthService(&cfg.Admin)

	// Controllers
	s3Storage := storage.NewS3Storage(&cfg.S3)
	controllers := router.Controllers{
		Ad:        controller.NewAdController(adService),
		QrHunt:    controller.NewQrHuntController(qrHuntService),
		Quiz:      controller.NewQuizController(quizService),
		AdminAuth: controller.NewAdminAuthController(adminAuthService),
		Upload:    controller.NewUploadController(s3Storage),

		City:          controller.NewResourceController("city", service.NewCatalogService(cityRepo), controller.BindCreateCity, controller.BindPatchCity),
		Street:        controller.NewResourceController("street", service.NewCatalogService(streetRepo), controller.BindCreateStreet, controller.BindPatchStreet),
		Author:        controller.NewResourceController("author", service.NewCatalogService(authorRepo), controller.BindCreateAuthor, controller.BindPatchAuthor),
		Work:          controller.NewResourceController("work", service.NewCatalogService(workRepo), controller.BindCreateWork, controller.BindPatchWork),
		Business:      controller.NewResourceController("business", service.NewCatalogService(businessRepo), controller.BindCreateBusiness, controller.BindPatchBusiness),
		Organization:  controller.NewResourceController("organization", service.NewCatalogService(organizationRepo), controller.BindCreateOrganization, controller.BindPatchOrganization),
		ReferenceSite: controller.NewResourceController("reference site", service.NewCatalogService(referenceSiteRepo), controller.BindCreateReferenceSite, controller.BindPatchReferenceSite),
		PopupAd:       controller.NewResourceController("popup ad", service.NewCatalogService(popupAdRepo), controller.BindCreatePopupAd, controller.BindPatchPopupAd),
	}

	adminAuthMiddleware := middleware.NewAdminAuthMiddleware(adminAuthService)

	adExpiryScheduler := scheduler.NewAdExpiryScheduler(adService)
	if err := adExpiryScheduler.Start(); err != nil {
		logger.Fatal("Failed to start ad expiry scheduler", err)
	}
	defer adExpiryScheduler.Stop()

	r := router.NewRouter(controllers, adminAuthMiddleware, cfg)
	engine := r.Setup()

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
