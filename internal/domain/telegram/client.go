package telegram

import "gopkg.in/telebot.v3"

// ResponseAffordances carries the two callback tags attached to a reminder
// message. The tags embed the category string, so the callback handler can
// round-trip a button press back to (user, category).
type ResponseAffordances struct {
	PositiveTag string // e.g. "complete_water"
	NegativeTag string // e.g. "miss_water"
}

// Client defines an interface for sending messages via a Telegram bot.
// This helps in decoupling the application logic from the specific bot library.
type Client interface {
	SendMessage(recipientChatID int64, text string, options *telebot.SendOptions) error
	// SendReminder sends a rendered reminder with done/missed inline buttons.
	SendReminder(recipientChatID int64, text string, affordances ResponseAffordances) error
}
