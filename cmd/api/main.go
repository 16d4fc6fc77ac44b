package main

import (
	"time"

	"taskdeck/pkg/translator"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	dbadapter "taskdeck/internal/adapter/db"
	httpadapter "taskdeck/internal/adapter/http"
	"taskdeck/internal/adapter/http/handlers"
	httpmiddleware "taskdeck/internal/adapter/http/middleware"
	memoryadapter "taskdeck/internal/adapter/memory"
	appservice "taskdeck/internal/app/service"
	"taskdeck/internal/config"
	"taskdeck/internal/core/ports"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	// Make zap available to packages that log through zap.L().
	zap.ReplaceGlobals(logger)
	defer func() {
		if err := logger.Sync(); err != nil {
			zap.L().Debug("failed to sync logger", zap.Error(err))
		}
	}()

	translator.InitTranslator(translator.Config{
		TranslationFolder:  "pkg/translator/translation",
		SupportedLanguages: []string{translator.LanguageFr, translator.LanguageEn},
	})

	cfg := config.LoadConfig()

	var (
		taskRepository    ports.TaskRepository
		historyRepository ports.HistoryRepository
		storage           handlers.StoragePinger
	)

	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		tasks := memoryadapter.NewTaskRepository()
		taskRepository = tasks
		historyRepository = memoryadapter.NewHistoryRepository(tasks)
		storage = memoryadapter.Pinger{}
	default:
		db, err := dbadapter.ConnectDB(cfg)
		if err != nil {
			logger.Fatal("failed to connect to mysql", zap.Error(err))
		}
		defer func() {
			if err := db.Close(); err != nil {
				logger.Warn("failed to close mysql connection", zap.Error(err))
			}
		}()
		taskRepository = dbadapter.NewTaskRepository(db)
		historyRepository = dbadapter.NewHistoryRepository(db)
		storage = db
	}

	taskService := appservice.NewTaskService(taskRepository, historyRepository, time.Now)
	historyService := appservice.NewHistoryService(historyRepository)

	r := gin.New()
	r.Use(gin.Recovery(), httpmiddleware.GinZapMiddleware(logger))
	if len(cfg.TrustedProxies) > 0 {
		if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
			logger.Fatal("invalid trusted proxies", zap.Error(err))
		}
	}

	healthHandler := handlers.NewHealthHandler(storage, cfg.StorageDriver)
	taskHandler := handlers.NewTaskHandler(taskService)
	historyHandler := handlers.NewHistoryHandler(historyService)
	httpadapter.RegisterRoutes(r, healthHandler, taskHandler, historyHandler)

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	addr := ":" + port
	logger.Info("starting server", zap.String("addr", addr), zap.String("storage", cfg.StorageDriver))
	if err := r.Run(addr); err != nil {
		logger.Fatal("could not start server", zap.Error(err))
	}
}
