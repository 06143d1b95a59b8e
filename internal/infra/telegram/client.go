package telegram

import (
	domainTelegram "habit_reminder_bot/internal/domain/telegram"

	"gopkg.in/telebot.v3"
)

// TelebotAdapter implements the domain telegram.Client interface using the
// gopkg.in/telebot.v3 library.
type TelebotAdapter struct {
	bot *telebot.Bot
}

func NewTelebotAdapter(b *telebot.Bot) *TelebotAdapter {
	return &TelebotAdapter{bot: b}
}

// SendMessage sends a text message to the specified recipient.
func (tba *TelebotAdapter) SendMessage(recipientChatID int64, text string, options *telebot.SendOptions) error {
	if options == nil {
		options = &telebot.SendOptions{}
	}

	recipient := &telebot.User{ID: recipientChatID}
	_, err := tba.bot.Send(recipient, text, options)
	return err
}

// SendReminder sends a reminder with ✅/❌ inline buttons whose callback data
// carries the affordance tags.
func (tba *TelebotAdapter) SendReminder(recipientChatID int64, text string, affordances domainTelegram.ResponseAffordances) error {
	markup := &telebot.ReplyMarkup{
		InlineKeyboard: [][]telebot.InlineButton{{
			{Text: "✅", Data: affordances.PositiveTag},
			{Text: "❌", Data: affordances.NegativeTag},
		}},
	}

	recipient := &telebot.User{ID: recipientChatID}
	_, err := tba.bot.Send(recipient, text, &telebot.SendOptions{ReplyMarkup: markup})
	return err
}
