package telegram

import "gopkg.in/telebot.v3"

// CategoryMenu builds the habit-selection keyboard. Callback data is the raw
// category string.
func CategoryMenu() *telebot.ReplyMarkup {
	return &telebot.ReplyMarkup{
		InlineKeyboard: [][]telebot.InlineButton{
			{
				{Text: "Вода💧", Data: "water"},
				{Text: "Спорт💪", Data: "exercise"},
			},
			{
				{Text: "Сон💤", Data: "sleep"},
				{Text: "Чтение📚", Data: "read"},
			},
			{
				{Text: "Своё напоминание✏️", Data: "custom"},
			},
		},
	}
}

// FactsMenu builds the fact-category keyboard.
func FactsMenu() *telebot.ReplyMarkup {
	return &telebot.ReplyMarkup{
		InlineKeyboard: [][]telebot.InlineButton{
			{
				{Text: "Вода💦", Data: "fact_water"},
				{Text: "Спорт🏆", Data: "fact_exercise"},
			},
			{
				{Text: "Сон😴", Data: "fact_sleep"},
				{Text: "Чтение📖", Data: "fact_read"},
			},
		},
	}
}

// existingReminderMenu offers to keep or delete an already-set reminder.
func existingReminderMenu(category string) *telebot.ReplyMarkup {
	return &telebot.ReplyMarkup{
		InlineKeyboard: [][]telebot.InlineButton{{
			{Text: "Оставить", Data: "no_change"},
			{Text: "Удалить", Data: "delete_" + category},
		}},
	}
}

// askNameMenu is attached to the welcome message.
func askNameMenu() *telebot.ReplyMarkup {
	return &telebot.ReplyMarkup{
		InlineKeyboard: [][]telebot.InlineButton{{
			{Text: "Да, давай!", Data: "yes_name"},
		}},
	}
}
