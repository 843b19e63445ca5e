package services

import (
	"strings"

	"github.com/FightogFitness/fightogfitness-display/internal/core/domain"
)

// ResolveEvent сводит непостоянную форму вебхука GHL к каноническому событию.
// Для каждого поля - упорядоченная цепочка фоллбеков, выигрывает первое
// непустое значение.
func ResolveEvent(p domain.WebhookPayload) domain.ResolvedEvent {
	return domain.ResolvedEvent{
		ID: firstNonEmpty(
			p.CustomData.AppointmentID.Value(),
			p.Calendar.AppointmentID.Value(),
			p.ContactIDSnake.Value(),
			p.ContactIDCamel.Value(),
		),
		// Времена всегда сначала из calendar
		StartTime: firstNonEmpty(
			p.Calendar.StartTime.Value(),
			p.CustomData.StartTime.Value(),
			p.StartTime.Value(),
		),
		EndTime: firstNonEmpty(
			p.Calendar.EndTime.Value(),
			p.CustomData.EndTime.Value(),
			p.EndTime.Value(),
		),
		ClientName: firstNonEmpty(
			p.CustomData.ClientName.Value(),
			p.FullName.Value(),
			p.Email.Value(),
			p.ContactIDSnake.Value(),
			"Ukendt klient",
		),
		CoachName: firstNonEmpty(
			p.CustomData.CoachName.Value(),
			p.User.FirstName.Value(),
			"Coach",
		),
		Cancelled: isCancelledFlag(p.CustomData.IsCancelled.Value()),
	}
}

// isCancelledFlag нормализует флаг отмены из customData:
// true только для "true", "1" и "yes" без учёта регистра и пробелов
func isCancelledFlag(raw string) bool {
	flag := strings.TrimSpace(strings.ToLower(raw))
	return flag == "true" || flag == "1" || flag == "yes"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
