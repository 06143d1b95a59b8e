package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"habit_reminder_bot/internal/app"
	"habit_reminder_bot/internal/infra/config"
	idb "habit_reminder_bot/internal/infra/database"
	"habit_reminder_bot/internal/infra/logger"
	"habit_reminder_bot/internal/infra/scheduler"
	"habit_reminder_bot/internal/infra/telegram"

	"gopkg.in/telebot.v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("FATAL: Could not load application configuration: %v", err)
	}

	logger.Init(cfg)
	mainLogger := logger.Component("main")
	mainLogger.Infof("Configuration loaded. LogLevel: %s, Environment: %s", cfg.LogLevel, cfg.Environment)

	location := time.Local
	if cfg.Timezone != "" && cfg.Timezone != "Local" {
		location, err = time.LoadLocation(cfg.Timezone)
		if err != nil {
			mainLogger.WithError(err).Fatalf("FATAL: Invalid TIMEZONE %q", cfg.Timezone)
		}
	}

	// Database
	db, err := idb.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		mainLogger.WithError(err).Fatal("FATAL: Could not connect to database")
	}
	defer db.Close()
	mainLogger.Info("Database connection established successfully.")

	if err := idb.RunMigrations(db, cfg.MigrationsPath); err != nil {
		mainLogger.WithError(err).Fatal("FATAL: Could not apply database migrations")
	}
	mainLogger.Info("Database migrations applied.")

	// Repositories
	userRepo := idb.NewPostgresUserRepository(db)
	reminderRepo := idb.NewPostgresReminderRepository(db)
	customRepo := idb.NewPostgresCustomReminderRepository(db)
	mainLogger.Info("Repositories initialized.")

	// Telegram Bot
	pref := telebot.Settings{
		Token:  cfg.TelegramToken,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c telebot.Context) { // Global error handler
			entry := logger.Component("telebot").WithError(err)
			if c != nil && c.Sender() != nil {
				entry = entry.WithField("sender_id", c.Sender().ID)
			}
			entry.Error("Unhandled bot error")
		},
	}
	bot, err := telebot.NewBot(pref)
	if err != nil {
		mainLogger.WithError(err).Fatal("FATAL: Could not create Telegram bot")
	}
	telegramClient := telegram.NewTelebotAdapter(bot)

	// Dispatch job and scheduler
	dispatcher := app.NewReminderDispatcher(
		userRepo,
		customRepo,
		telegramClient,
		logger.Component("dispatcher"),
	)
	engine := scheduler.NewTriggerEngine(location, logger.Component("trigger_engine"))
	reminderScheduler := scheduler.NewReminderScheduler(
		engine,
		dispatcher,
		reminderRepo,
		logger.Component("reminder_scheduler"),
	)

	habitService := app.NewHabitService(userRepo, reminderRepo, customRepo, reminderScheduler)
	mainLogger.Info("Services initialized.")

	// Handlers
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sessions := telegram.NewSessionStore()
	telegram.RegisterBotCommands(ctx, bot, cfg, habitService, sessions, logger.Component("telegram"))
	telegram.RegisterCallbackHandlers(ctx, bot, habitService, sessions, logger.Component("telegram"))
	mainLogger.Info("Bot handlers registered.")

	// Re-arm persisted reminders, then start firing.
	if err := reminderScheduler.Bootstrap(ctx); err != nil {
		mainLogger.WithError(err).Fatal("FATAL: Could not bootstrap reminders from storage")
	}
	engine.Start()

	mainLogger.Info("Application setup complete. Bot is starting...")
	go bot.Start()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	mainLogger.Info("Shutting down application...")
	bot.Stop()
	engine.Stop()
	mainLogger.Info("Application shut down gracefully.")
}
