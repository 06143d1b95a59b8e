package telegram

import (
	"context"
	"fmt"
	"strings"

	"habit_reminder_bot/internal/app"
	"habit_reminder_bot/internal/domain/habit"
	idb "habit_reminder_bot/internal/infra/database"
	"habit_reminder_bot/internal/templates"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// RegisterCallbackHandlers wires the inline-button callbacks: habit category
// selection, reminder deletion, done/missed streak updates, facts and the
// name prompt.
func RegisterCallbackHandlers(
	ctx context.Context,
	b *telebot.Bot,
	habitService *app.HabitService,
	sessions *SessionStore,
	baseLogger *logrus.Entry,
) {
	callbackLogger := baseLogger.WithField("handler_group", "callbacks")

	b.Handle(telebot.OnCallback, func(c telebot.Context) error {
		data := strings.TrimPrefix(c.Callback().Data, "\f")
		senderID := c.Sender().ID
		logCtx := callbackLogger.WithFields(logrus.Fields{
			"sender_id": senderID,
			"data":      data,
		})

		if category, err := habit.ParseCategory(data); err == nil {
			return handleCategorySelected(ctx, c, habitService, sessions, category, logCtx)
		}

		switch {
		case data == "no_change":
			sessions.Reset(senderID)
			if err := c.Delete(); err != nil {
				logCtx.WithError(err).Warn("Failed to delete prompt message")
			}
			return c.Respond()

		case data == "yes_name":
			sessions.Put(senderID, Session{State: StateAwaitingName})
			return c.Send("Как мне тебя называть?", &telebot.SendOptions{
				ReplyMarkup: &telebot.ReplyMarkup{ForceReply: true},
			})

		case strings.HasPrefix(data, "fact_"):
			category := habit.Category(strings.TrimPrefix(data, "fact_"))
			return c.Send(templates.RandomFact(category))

		case strings.HasPrefix(data, "delete_"):
			return handleDelete(ctx, c, habitService, sessions, strings.TrimPrefix(data, "delete_"), logCtx)

		case strings.HasPrefix(data, "complete_"):
			return handleComplete(ctx, c, habitService, strings.TrimPrefix(data, "complete_"), logCtx)

		case strings.HasPrefix(data, "miss_"):
			return handleMiss(ctx, c, habitService, strings.TrimPrefix(data, "miss_"), logCtx)
		}

		logCtx.Warn("Unhandled callback data")
		return c.Respond(&telebot.CallbackResponse{Text: "Неизвестное действие."})
	})
}

func handleCategorySelected(
	ctx context.Context,
	c telebot.Context,
	habitService *app.HabitService,
	sessions *SessionStore,
	category habit.Category,
	logCtx *logrus.Entry,
) error {
	senderID := c.Sender().ID

	if category == habit.CategoryCustom {
		sessions.Put(senderID, Session{State: StateAwaitingCustomText, PendingCategory: category})
		return c.Send("О чём тебе напомнить? (например, почистить зубы)", &telebot.SendOptions{
			ReplyMarkup: &telebot.ReplyMarkup{ForceReply: true},
		})
	}

	existing, err := habitService.GetReminder(ctx, senderID, category)
	if err != nil && err != idb.ErrReminderNotFound {
		logCtx.WithError(err).Error("Failed to check existing reminder")
		return c.Send("Произошла ошибка. Пожалуйста, попробуй позже.")
	}

	sessions.Put(senderID, Session{State: StateAwaitingTime, PendingCategory: category})

	if existing != nil {
		title := templates.CategoryTitle(category)
		text := fmt.Sprintf(
			"У тебя уже установлено напоминание для \"%s\" на %02d:%02d.\nХочешь изменить его время? Введи новое время в формате HH:MM.",
			title, existing.Hour, existing.Minute)
		return c.Send(text, &telebot.SendOptions{ReplyMarkup: existingReminderMenu(string(category))})
	}

	return c.Send("Выбери время в формате HH:MM (например, 17:30)", &telebot.SendOptions{
		ReplyMarkup: &telebot.ReplyMarkup{ForceReply: true},
	})
}

func handleDelete(
	ctx context.Context,
	c telebot.Context,
	habitService *app.HabitService,
	sessions *SessionStore,
	rawCategory string,
	logCtx *logrus.Entry,
) error {
	senderID := c.Sender().ID
	category, err := habit.ParseCategory(rawCategory)
	if err != nil {
		logCtx.WithError(err).Warn("Delete callback with unknown category")
		return c.Respond(&telebot.CallbackResponse{Text: "Неизвестная категория."})
	}

	if err := habitService.RemoveReminder(ctx, senderID, category); err != nil {
		logCtx.WithError(err).Error("Failed to remove reminder")
		return c.Send("Не получилось удалить напоминание. Попробуй позже.")
	}
	sessions.Reset(senderID)

	return c.Send(fmt.Sprintf("Твоё напоминание для \"%s\" было удалено.", templates.CategoryTitle(category)))
}

func handleComplete(
	ctx context.Context,
	c telebot.Context,
	habitService *app.HabitService,
	rawCategory string,
	logCtx *logrus.Entry,
) error {
	senderID := c.Sender().ID
	category := habit.Category(rawCategory)

	streak, err := habitService.ConfirmCompletion(ctx, senderID, category)
	if err != nil {
		logCtx.WithError(err).Error("Failed to confirm habit completion")
		return c.Respond(&telebot.CallbackResponse{Text: "Произошла ошибка."})
	}

	// Remove the reminder message so the buttons cannot be pressed twice.
	if err := c.Delete(); err != nil {
		logCtx.WithError(err).Warn("Failed to delete reminder message")
	}

	return c.Send(fmt.Sprintf("Так держать!\n\nТвой streak для \"%s\": %d 🎉",
		templates.CategoryTitle(category), streak))
}

func handleMiss(
	ctx context.Context,
	c telebot.Context,
	habitService *app.HabitService,
	rawCategory string,
	logCtx *logrus.Entry,
) error {
	senderID := c.Sender().ID
	category := habit.Category(rawCategory)

	previous, err := habitService.RecordMiss(ctx, senderID, category)
	if err != nil {
		logCtx.WithError(err).Error("Failed to record habit miss")
		return c.Respond(&telebot.CallbackResponse{Text: "Произошла ошибка."})
	}

	if err := c.Delete(); err != nil {
		logCtx.WithError(err).Warn("Failed to delete reminder message")
	}

	return c.Send(fmt.Sprintf("Твой streak для \"%s\": 0.\n\nА было: %d 😭",
		templates.CategoryTitle(category), previous))
}
