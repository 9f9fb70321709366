package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/aliskhannn/etymo-roots/internal/config"
	"github.com/aliskhannn/etymo-roots/internal/delivery/telegram"
	"github.com/aliskhannn/etymo-roots/internal/delivery/web"
	"github.com/aliskhannn/etymo-roots/internal/logger"
	"github.com/aliskhannn/etymo-roots/internal/repository"
	"github.com/aliskhannn/etymo-roots/internal/service"
	"github.com/aliskhannn/etymo-roots/internal/storage"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize repositories and services.
	datasetRepo := repository.NewDatasetRepository(cfg.Datasets, cfg.HTTP.StaticDir, cfg.Fetch.Timeout, lg)

	clock := clockwork.NewRealClock()
	quizStorage := storage.NewQuizStorage(clock, cfg.Quiz.SessionIdle)
	quizFactory := service.NewQuizFactory(datasetRepo, service.QuizOptions{
		Clock:        clock,
		AdvanceDelay: cfg.Quiz.AdvanceDelay,
		Logger:       lg,
	})
	tableService := service.NewTableService(datasetRepo, cfg.Table.Layouts, cfg.Table.DefaultLayout, lg)

	scheduler := service.NewScheduler(
		datasetRepo,
		quizStorage,
		cfg.Fetch.RefreshSchedule,
		cfg.Fetch.SweepSchedule,
		lg,
	)
	go func() {
		if err := scheduler.Start(ctx); err != nil {
			lg.Error("scheduler stopped", zap.Error(err))
		}
	}()

	if cfg.Telegram.Enabled {
		go runBot(ctx, cfg, lg, datasetRepo, quizStorage, quizFactory, tableService)
	}

	handler := web.NewHandler(datasetRepo, quizStorage, quizFactory, tableService, web.Options{
		DefaultLang:   cfg.Lang(),
		LoadTimeout:   cfg.Fetch.Timeout,
		SecureCookies: cfg.HTTP.SecureCookies,
	}, lg)
	router := web.SetupRouter(handler, web.RouterOptions{
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		DataDir:        filepath.Join(cfg.HTTP.StaticDir, "data"),
	}, lg)

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		lg.Info("http server started", zap.String("addr", cfg.HTTP.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Error("http server failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	lg.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("http server shutdown failed", zap.Error(err))
	}
}

func runBot(
	ctx context.Context,
	cfg *config.Config,
	lg *zap.Logger,
	datasets *repository.DatasetRepository,
	quizzes *storage.QuizStorage,
	factory *service.QuizFactory,
	tables *service.TableService,
) {
	bot, err := tgbotapi.NewBotAPI(cfg.Telegram.APIToken)
	if err != nil {
		lg.Error("failed to create telegram bot", zap.Error(err))
		return
	}
	bot.Debug = cfg.Telegram.Debug

	// Set commands.
	commands := []tgbotapi.BotCommand{
		{Command: "start", Description: "Start the bot"},
		{Command: "quiz", Description: "Start a quiz (/quiz [dataset])"},
		{Command: "next", Description: "Next question"},
		{Command: "retry", Description: "Reload the dataset"},
		{Command: "table", Description: "Show the roots table (/table [dataset] [layout])"},
		{Command: "lang", Description: "Change language (ja, en, cn)"},
		{Command: "help", Description: "Help"},
	}

	if _, err := bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	lg.Info("authorized on telegram", zap.String("account", bot.Self.UserName))

	handler := telegram.NewHandler(bot, lg, datasets, quizzes, factory, tables, telegram.Options{
		DefaultDataset: cfg.DefaultDataset,
		DefaultLang:    cfg.Lang(),
		LoadTimeout:    cfg.Fetch.Timeout,
	})
	if err := handler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		lg.Error("telegram handler stopped", zap.Error(err))
	}
}
