package telegram

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"habit_reminder_bot/internal/app"
	"habit_reminder_bot/internal/infra/config"
	idb "habit_reminder_bot/internal/infra/database"
	"habit_reminder_bot/internal/templates"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

var timeInputPattern = regexp.MustCompile(`^(?:[01]\d|2[0-3]):[0-5]\d$`)

const welcomeText = `*Здравствуй* 👋

/menu - Выбрать и настроить полезные привычки.
/streak - Все запланированные напоминания и streak.
/facts - Интересные факты о полезных привычках.
/feedback - Оставить отзыв.

Хочешь, буду обращаться к тебе по имени?`

// RegisterBotCommands wires the user-facing commands and the free-text input
// router. Free text is interpreted by the chat's session state: a reminder
// time, a custom reminder label, a display name or feedback.
func RegisterBotCommands(
	ctx context.Context,
	b *telebot.Bot,
	cfg *config.AppConfig,
	habitService *app.HabitService,
	sessions *SessionStore,
	baseLogger *logrus.Entry,
) {
	commandsLogger := baseLogger.WithField("handler_group", "commands")

	b.Handle("/start", func(c telebot.Context) error {
		senderID := c.Sender().ID
		logCtx := commandsLogger.WithField("command", "/start").WithField("sender_id", senderID)
		logCtx.Info("Processing /start command")

		if err := habitService.RegisterUser(ctx, senderID, c.Sender().Username); err != nil {
			logCtx.WithError(err).Error("Failed to register user")
			return c.Send("Произошла ошибка при регистрации. Пожалуйста, попробуй позже.")
		}
		sessions.Reset(senderID)
		return c.Send(welcomeText, &telebot.SendOptions{
			ParseMode:   telebot.ModeMarkdown,
			ReplyMarkup: askNameMenu(),
		})
	})

	b.Handle("/menu", func(c telebot.Context) error {
		sessions.Reset(c.Sender().ID)
		return c.Send("Выбери полезное дело:", CategoryMenu())
	})

	b.Handle("/streak", func(c telebot.Context) error {
		senderID := c.Sender().ID
		logCtx := commandsLogger.WithField("command", "/streak").WithField("sender_id", senderID)

		reminders, err := habitService.ListReminders(ctx, senderID)
		if err != nil {
			logCtx.WithError(err).Error("Failed to list reminders")
			return c.Send("Не получилось загрузить твои напоминания. Попробуй позже.")
		}

		var sb strings.Builder
		sb.WriteString("*Вот твои полезные привычки:*\n\n")
		if len(reminders) == 0 {
			sb.WriteString("У тебя нет запланированных напоминаний:(")
		} else {
			for _, rem := range reminders {
				sb.WriteString(fmt.Sprintf("%s - %02d:%02d - %d дней\n",
					templates.CategoryTitle(rem.Category), rem.Hour, rem.Minute, rem.Streak))
			}
		}
		return c.Send(sb.String(), &telebot.SendOptions{ParseMode: telebot.ModeMarkdown})
	})

	b.Handle("/facts", func(c telebot.Context) error {
		return c.Send("Выбери категорию для получения факта:", FactsMenu())
	})

	b.Handle("/feedback", func(c telebot.Context) error {
		senderID := c.Sender().ID
		sessions.Put(senderID, Session{State: StateAwaitingFeedback})
		return c.Send("Пожалуйста, напиши своё искреннее мнение:")
	})

	b.Handle(telebot.OnText, func(c telebot.Context) error {
		senderID := c.Sender().ID
		text := strings.TrimSpace(c.Text())
		logCtx := commandsLogger.WithField("handler", "text_input").WithField("sender_id", senderID)

		session := sessions.Get(senderID)
		switch session.State {
		case StateAwaitingFeedback:
			sessions.Reset(senderID)
			feedback := fmt.Sprintf("Отзыв от @%s:\n%s", c.Sender().Username, text)
			if _, err := b.Send(&telebot.User{ID: cfg.AdminTelegramID}, feedback); err != nil {
				logCtx.WithError(err).Error("Failed to forward feedback to admin")
			}
			return c.Send("Спасибо за твой отзыв! Мне правда важно мнение человеков)")

		case StateAwaitingName:
			sessions.Reset(senderID)
			if err := habitService.SetDisplayName(ctx, senderID, text); err != nil {
				logCtx.WithError(err).Error("Failed to update display name")
				return c.Send("Не получилось сохранить имя. Попробуй ещё раз позже.")
			}
			return c.Send(fmt.Sprintf("Приятно познакомиться, %s!", text))

		case StateAwaitingCustomText:
			if err := habitService.SetCustomReminderText(ctx, senderID, text); err != nil {
				logCtx.WithError(err).Error("Failed to save custom reminder text")
				return c.Send("Не получилось сохранить напоминание. Попробуй ещё раз позже.")
			}
			session.State = StateAwaitingTime
			sessions.Put(senderID, session)
			return c.Send("Выбери время в формате HH:MM (например, 17:30)", &telebot.SendOptions{
				ReplyMarkup: &telebot.ReplyMarkup{ForceReply: true},
			})

		case StateAwaitingTime:
			if !timeInputPattern.MatchString(text) {
				return c.Send("Неверный формат. Пожалуйста, введи время в формате HH:MM.")
			}
			return handleTimeInput(ctx, c, habitService, sessions, text, logCtx)

		default:
			if timeInputPattern.MatchString(text) {
				return c.Send("Пожалуйста, сначала выбери категорию привычки: /menu")
			}
			return c.Send("Я тебя не понял. Посмотри список команд: /start")
		}
	})
}

// handleTimeInput persists the parsed time for the chat's pending category
// and re-arms the trigger through the habit service.
func handleTimeInput(
	ctx context.Context,
	c telebot.Context,
	habitService *app.HabitService,
	sessions *SessionStore,
	text string,
	logCtx *logrus.Entry,
) error {
	senderID := c.Sender().ID
	session := sessions.Get(senderID)
	category := session.PendingCategory
	if category == "" {
		sessions.Reset(senderID)
		return c.Send("Пожалуйста, выбери категорию привычки: /menu")
	}

	parts := strings.SplitN(text, ":", 2)
	hour, _ := strconv.Atoi(parts[0])
	minute, _ := strconv.Atoi(parts[1])

	_, getErr := habitService.GetReminder(ctx, senderID, category)
	existed := getErr == nil
	if getErr != nil && getErr != idb.ErrReminderNotFound {
		logCtx.WithError(getErr).Error("Failed to check existing reminder")
	}

	if err := habitService.SetReminder(ctx, senderID, category, hour, minute); err != nil {
		logCtx.WithFields(logrus.Fields{
			"category": category,
			"time":     text,
		}).WithError(err).Error("Failed to set reminder")
		return c.Send("Не получилось установить напоминание. Пожалуйста, попробуй ещё раз.")
	}
	sessions.Reset(senderID)

	title := templates.CategoryTitle(category)
	if existed {
		return c.Send(fmt.Sprintf("Твоё время для \"%s\" обновлено на %s.", title, text))
	}
	return c.Send(fmt.Sprintf("Спасибо! Твоё напоминание для \"%s\" установлено на %s.", title, text))
}
