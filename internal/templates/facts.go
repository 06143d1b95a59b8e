package templates

import (
	"math/rand"

	"habit_reminder_bot/internal/domain/habit"
)

var factPools = map[habit.Category][]string{
	habit.CategoryWater: {
		"Питьевая вода помогает поддерживать баланс жидкости в организме.",
		"Вода улучшает работу мозга и концентрацию.",
		"Питьевая вода помогает поддерживать энергию и снижать усталость.",
	},
	habit.CategoryExercise: {
		"Физическая активность укрепляет сердечно-сосудистую систему.",
		"Регулярные тренировки улучшают настроение и снижают стресс.",
		"Упражнения помогают поддерживать здоровый вес.",
	},
	habit.CategorySleep: {
		"Качественный сон улучшает память и концентрацию.",
		"Сон помогает организму восстанавливаться и поддерживать иммунную систему.",
		"Достаточное количество сна снижает риск хронических заболеваний.",
	},
	habit.CategoryRead: {
		"Чтение развивает мышление и улучшает концентрацию.",
		"Регулярное чтение улучшает словарный запас и навыки письма.",
		"Чтение помогает снизить уровень стресса и улучшить сон.",
	},
}

// RandomFact returns a random fact for the category, or a generic note when
// the category has no fact pool.
func RandomFact(category habit.Category) string {
	pool, ok := factPools[category]
	if !ok || len(pool) == 0 {
		return "Нет фактов для этой категории."
	}
	return pool[rand.Intn(len(pool))]
}
