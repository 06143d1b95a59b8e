// Package templates holds the fixed text pools the bot renders reminders
// and facts from. Everything here is a pure function over its arguments.
package templates

import (
	"fmt"
	"math/rand"

	"habit_reminder_bot/internal/domain/habit"
)

// FallbackName is substituted when the user's display name cannot be resolved.
const FallbackName = "друг"

var messagePools = map[habit.Category][]string{
	habit.CategoryWater: {
		"%s, выпей стакан воды и твоя мама будет жить вечно💦",
		"%s, не забудь выпить воды для здоровья💦",
		"%s, пора пить воду! Гидратация — это важно💦",
	},
	habit.CategoryExercise: {
		"%s, время сделать зарядку!💪",
		"%s, пора размяться и сделать несколько упражнений!💪",
		"%s, не забудь про свою тренировку сегодня!💪",
	},
	habit.CategorySleep: {
		"%s, пора готовиться ко сну💤",
		"%s, не забудь лечь спать сегодня вовремя💤",
		"%s, время для сна! Отдых важен💤",
	},
	habit.CategoryRead: {
		"%s, настало время для твоей любимой книги📚",
		"%s, пора почитать что-нибудь интересное📚",
		"%s, время для чтения! Найди минутку для книги📚",
	},
}

// RandomMessage renders a reminder by picking uniformly at random from the
// category's pool. Unknown categories get a generic fallback instead of an error.
func RandomMessage(category habit.Category, displayName string) string {
	pool, ok := messagePools[category]
	if !ok || len(pool) == 0 {
		return fmt.Sprintf("%s, у тебя есть напоминание.", displayName)
	}
	return fmt.Sprintf(pool[rand.Intn(len(pool))], displayName)
}

// RenderCustom renders the reminder for the custom category, interpolating
// the user-supplied label instead of drawing from a template pool.
func RenderCustom(displayName, label string) string {
	if label == "" {
		return fmt.Sprintf("%s, у тебя есть напоминание.", displayName)
	}
	return fmt.Sprintf("%s, ты просил напомнить: %s", displayName, label)
}
