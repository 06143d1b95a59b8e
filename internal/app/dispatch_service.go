package app

import (
	"context"
	"fmt"

	"habit_reminder_bot/internal/domain/habit"
	domainTelegram "habit_reminder_bot/internal/domain/telegram"
	"habit_reminder_bot/internal/domain/user"
	idb "habit_reminder_bot/internal/infra/database"
	"habit_reminder_bot/internal/templates"

	"github.com/sirupsen/logrus"
)

// ReminderDispatcher is the callback body bound to one (user, category) pair.
// The scheduler invokes Dispatch at fire time; a returned error is logged by
// the trigger engine and never affects the next day's fire.
type ReminderDispatcher interface {
	Dispatch(ctx context.Context, userID int64, category habit.Category) error
}

// ReminderDispatcherImpl implements the ReminderDispatcher interface.
type ReminderDispatcherImpl struct {
	userRepo       user.Repository
	customRepo     habit.CustomReminderRepository
	telegramClient domainTelegram.Client
	logger         *logrus.Entry
}

func NewReminderDispatcher(
	ur user.Repository,
	cr habit.CustomReminderRepository,
	tc domainTelegram.Client,
	logger *logrus.Entry,
) *ReminderDispatcherImpl {
	return &ReminderDispatcherImpl{
		userRepo:       ur,
		customRepo:     cr,
		telegramClient: tc,
		logger:         logger,
	}
}

// Dispatch renders and sends one reminder. The display name and the custom
// label are soft lookups: a miss falls back to a placeholder and never fails
// the dispatch. Only a delivery failure is reported to the caller.
func (d *ReminderDispatcherImpl) Dispatch(ctx context.Context, userID int64, category habit.Category) error {
	displayName, err := d.userRepo.GetDisplayName(ctx, userID)
	if err != nil {
		if err != idb.ErrUserNotFound {
			d.logger.WithField("user_id", userID).WithError(err).
				Warn("Display name lookup failed; using placeholder.")
		}
		displayName = ""
	}
	if displayName == "" {
		displayName = templates.FallbackName
	}

	var text string
	if category == habit.CategoryCustom {
		label, err := d.customRepo.GetText(ctx, userID)
		if err != nil && err != idb.ErrCustomTextNotFound {
			d.logger.WithField("user_id", userID).WithError(err).
				Warn("Custom reminder text lookup failed; sending generic reminder.")
		}
		text = templates.RenderCustom(displayName, label)
	} else {
		text = templates.RandomMessage(category, displayName)
	}

	affordances := domainTelegram.ResponseAffordances{
		PositiveTag: "complete_" + string(category),
		NegativeTag: "miss_" + string(category),
	}

	if err := d.telegramClient.SendReminder(userID, text, affordances); err != nil {
		return fmt.Errorf("send reminder to user %d, category %s: %w", userID, category, err)
	}

	d.logger.WithFields(logrus.Fields{
		"user_id":  userID,
		"category": category,
	}).Info("Reminder dispatched.")
	return nil
}
