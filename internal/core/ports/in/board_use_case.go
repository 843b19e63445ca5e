package in

import (
	"context"
	"time"

	"github.com/FightogFitness/fightogfitness-display/internal/core/domain"
)

type BoardUseCase interface {
	// Применение одного события вебхука к хранилищу записей
	IngestEvent(ctx context.Context, payload domain.WebhookPayload) (domain.IngestOutcome, error)

	// Отсортированный список предстоящих тренировок на момент now
	UpcomingAppointments(ctx context.Context, now time.Time) ([]domain.Appointment, error)

	// Все записи без фильтрации (отладочная ручка)
	AllAppointments(ctx context.Context) ([]domain.Appointment, error)

	// Что показывать на экране в момент t: табло или рекламу
	DisplayModeAt(t time.Time) domain.DisplayMode
}
