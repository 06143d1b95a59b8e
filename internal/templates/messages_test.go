package templates

import (
	"strings"
	"testing"

	"habit_reminder_bot/internal/domain/habit"
)

func TestRandomMessageContainsName(t *testing.T) {
	t.Parallel()
	for _, category := range []habit.Category{
		habit.CategoryWater,
		habit.CategoryExercise,
		habit.CategorySleep,
		habit.CategoryRead,
	} {
		msg := RandomMessage(category, "Аня")
		if !strings.Contains(msg, "Аня") {
			t.Fatalf("message for %s does not contain the name: %q", category, msg)
		}
	}
}

func TestRandomMessageUnknownCategoryFallsBack(t *testing.T) {
	t.Parallel()
	msg := RandomMessage("juggling", "Аня")
	if !strings.Contains(msg, "Аня") || !strings.Contains(msg, "напоминание") {
		t.Fatalf("unexpected fallback message: %q", msg)
	}
}

func TestRenderCustom(t *testing.T) {
	t.Parallel()
	msg := RenderCustom("Ваня", "почистить зубы")
	if !strings.Contains(msg, "Ваня") || !strings.Contains(msg, "почистить зубы") {
		t.Fatalf("custom message missing name or label: %q", msg)
	}

	// No stored label still produces a usable reminder.
	empty := RenderCustom("Ваня", "")
	if !strings.Contains(empty, "Ваня") {
		t.Fatalf("empty-label message missing name: %q", empty)
	}
}

func TestRandomFact(t *testing.T) {
	t.Parallel()
	if fact := RandomFact(habit.CategoryWater); fact == "" {
		t.Fatal("empty fact for known category")
	}
	if fact := RandomFact(habit.CategoryCustom); !strings.Contains(fact, "Нет фактов") {
		t.Fatalf("unexpected fact for category without a pool: %q", fact)
	}
}

func TestCategoryTitle(t *testing.T) {
	t.Parallel()
	if title := CategoryTitle(habit.CategorySleep); title != "Сон" {
		t.Fatalf("title for sleep = %q", title)
	}
	if title := CategoryTitle("juggling"); title != "juggling" {
		t.Fatalf("unknown category title = %q, want the raw value", title)
	}
}
