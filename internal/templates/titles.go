package templates

import "habit_reminder_bot/internal/domain/habit"

var categoryTitles = map[habit.Category]string{
	habit.CategoryWater:    "Вода",
	habit.CategoryExercise: "Спорт",
	habit.CategorySleep:    "Сон",
	habit.CategoryRead:     "Чтение",
	habit.CategoryCustom:   "Своё напоминание",
}

// CategoryTitle returns the user-facing Russian name of a category.
// Unknown categories are shown as-is.
func CategoryTitle(category habit.Category) string {
	if title, ok := categoryTitles[category]; ok {
		return title
	}
	return string(category)
}
