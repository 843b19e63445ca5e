package out

import (
	"context"
	"time"

	"github.com/FightogFitness/fightogfitness-display/internal/core/domain"
)

type StorePort interface {
	// Upsert вставляет или полностью заменяет запись по её id
	Upsert(ctx context.Context, appt domain.Appointment)

	// MarkCancelled помечает запись отменённой, не трогая остальные поля.
	// Возвращает false, если записи с таким id нет.
	MarkCancelled(ctx context.Context, id string) bool

	Get(ctx context.Context, id string) (domain.Appointment, bool)
	All(ctx context.Context) []domain.Appointment

	// EvictStale удаляет записи, чей endTime строго раньше now, а также
	// записи с нечитаемым endTime. Возвращает число удалённых.
	EvictStale(ctx context.Context, now time.Time) int
}
