package services

import (
	"context"
	"sort"
	"time"

	"github.com/FightogFitness/fightogfitness-display/internal/config"
	"github.com/FightogFitness/fightogfitness-display/internal/core/domain"
	"github.com/FightogFitness/fightogfitness-display/internal/core/ports/out"
	"github.com/FightogFitness/fightogfitness-display/internal/utils"
)

const fallbackAppointmentLength = 30 * time.Minute

type BoardService struct {
	store  out.StorePort
	logger out.LoggerPort
	cfg    *config.Config
}

func NewBoardService(
	store out.StorePort,
	cfg *config.Config,
	logger out.LoggerPort,
) *BoardService {
	return &BoardService{
		store:  store,
		cfg:    cfg,
		logger: logger.WithModule("BoardService"),
	}
}

// IngestEvent применяет одно событие вебхука к хранилищу. Событие без
// распознаваемого appointmentId отбрасывается без изменения хранилища -
// это не ошибка, платформа ретраить не должна.
func (s *BoardService) IngestEvent(ctx context.Context, payload domain.WebhookPayload) (domain.IngestOutcome, error) {
	now := time.Now()
	if evicted := s.store.EvictStale(ctx, now); evicted > 0 {
		s.logger.Debug("appointments.evicted", out.LogFields{
			"count": evicted,
		})
	}

	event := ResolveEvent(payload)

	if event.ID == "" {
		s.logger.Warn("event.rejected.missing_id", out.LogFields{
			"clientName": event.ClientName,
			"cancelled":  event.Cancelled,
		})
		return domain.IngestOutcomeRejected, nil
	}

	if event.Cancelled {
		return s.ingestCancellation(ctx, event, now)
	}

	return s.ingestBooking(ctx, event, now)
}

// Отмена: если запись есть - помечаем отменённой на месте, времена не трогаем.
// Если записи нет, создаём отменённую с реальными или подставными временами,
// чтобы она всё равно попала на табло, пока не протухнет.
func (s *BoardService) ingestCancellation(ctx context.Context, event domain.ResolvedEvent, now time.Time) (domain.IngestOutcome, error) {
	if s.store.MarkCancelled(ctx, event.ID) {
		s.logger.Info("appointment.cancelled", out.LogFields{
			"appointmentId": event.ID,
		})
		return domain.IngestOutcomeCancelled, nil
	}

	startTime, endTime := synthesizeWindow(event, now)
	appt := domain.Appointment{
		ID:              event.ID,
		ClientName:      event.ClientName,
		CoachName:       event.CoachName,
		StartTime:       startTime,
		EndTime:         endTime,
		DurationMinutes: DurationMinutes(startTime, endTime),
		Status:          domain.AppointmentStatusCancelled,
	}
	s.store.Upsert(ctx, appt)

	s.logger.Info("appointment.cancelled.created", out.LogFields{
		"appointmentId": event.ID,
		"startTime":     startTime,
		"endTime":       endTime,
	})
	return domain.IngestOutcomeCancelled, nil
}

// Бронь или обновление: полная замена записи, last write wins.
// Повторная бронь по id отменённой записи реактивирует её.
func (s *BoardService) ingestBooking(ctx context.Context, event domain.ResolvedEvent, now time.Time) (domain.IngestOutcome, error) {
	startTime, endTime := synthesizeWindow(event, now)
	if event.StartTime == "" {
		s.logger.Warn("event.start_time.synthesized", out.LogFields{
			"appointmentId": event.ID,
			"startTime":     startTime,
		})
	}
	if event.EndTime == "" {
		s.logger.Warn("event.end_time.synthesized", out.LogFields{
			"appointmentId": event.ID,
			"endTime":       endTime,
		})
	}

	appt := domain.Appointment{
		ID:              event.ID,
		ClientName:      event.ClientName,
		CoachName:       event.CoachName,
		StartTime:       startTime,
		EndTime:         endTime,
		DurationMinutes: DurationMinutes(startTime, endTime),
		Status:          domain.AppointmentStatusActive,
	}
	s.store.Upsert(ctx, appt)

	s.logger.Info("appointment.upserted", out.LogFields{
		"appointmentId": event.ID,
		"clientName":    appt.ClientName,
		"startTime":     appt.StartTime,
	})
	return domain.IngestOutcomeBooked, nil
}

// synthesizeWindow подставляет now и now+30m вместо отсутствующих времён
func synthesizeWindow(event domain.ResolvedEvent, now time.Time) (string, string) {
	startTime := event.StartTime
	if startTime == "" {
		startTime = now.UTC().Format(time.RFC3339)
	}

	endTime := event.EndTime
	if endTime == "" {
		startAt, err := utils.ParseDate(startTime)
		if err != nil {
			startAt = now
		}
		endTime = startAt.Add(fallbackAppointmentLength).UTC().Format(time.RFC3339)
	}

	return startTime, endTime
}

// UpcomingAppointments возвращает предстоящие записи по возрастанию startTime.
// Запись с endTime == now ещё показывается, с endTime == now-1ms уже нет.
func (s *BoardService) UpcomingAppointments(ctx context.Context, now time.Time) ([]domain.Appointment, error) {
	s.store.EvictStale(ctx, now)

	type upcomingAppointment struct {
		appt    domain.Appointment
		startAt time.Time
	}

	var upcoming []upcomingAppointment
	for _, appt := range s.store.All(ctx) {
		endAt, err := utils.ParseDate(appt.EndTime)
		if err != nil || endAt.Before(now) {
			continue
		}

		// Нечитаемый startTime сортируем в начало как нулевое время
		startAt, _ := utils.ParseDate(appt.StartTime)
		upcoming = append(upcoming, upcomingAppointment{appt: appt, startAt: startAt})
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].startAt.Before(upcoming[j].startAt)
	})

	if max := s.cfg.Board.MaxUpcoming; max > 0 && len(upcoming) > max {
		upcoming = upcoming[:max]
	}

	result := make([]domain.Appointment, 0, len(upcoming))
	for _, u := range upcoming {
		result = append(result, u.appt)
	}

	return result, nil
}

func (s *BoardService) AllAppointments(ctx context.Context) ([]domain.Appointment, error) {
	return s.store.All(ctx), nil
}
