package store

import (
	"context"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/FightogFitness/fightogfitness-display/internal/config"
	"github.com/FightogFitness/fightogfitness-display/internal/core/domain"
	"github.com/FightogFitness/fightogfitness-display/internal/core/ports/out"
	"github.com/FightogFitness/fightogfitness-display/internal/utils"
)

// MemoryStore - единственное хранилище записей. Живёт в памяти процесса и
// теряется при рестарте, это осознанно. LRU ограничивает размер сверху на
// случай мусорных вебхуков, рабочий набор - десятки записей.
type MemoryStore struct {
	cache  *lru.Cache[string, domain.Appointment]
	mu     sync.RWMutex
	logger out.LoggerPort
}

func NewMemoryStore(cfg *config.Config, logger out.LoggerPort) (*MemoryStore, error) {
	cache, err := lru.New[string, domain.Appointment](cfg.Store.Size)
	if err != nil {
		logger.Error("store.init.failed", out.LogFields{
			"error": err.Error(),
			"size":  cfg.Store.Size,
		})
		return nil, err
	}

	return &MemoryStore{
		cache:  cache,
		logger: logger.WithModule("MemoryStore"),
	}, nil
}

func (s *MemoryStore) Upsert(ctx context.Context, appt domain.Appointment) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache.Add(appt.ID, appt)

	s.logger.Debug("store.upsert", out.LogFields{
		"appointmentId": appt.ID,
		"status":        appt.Status,
	})
}

func (s *MemoryStore) MarkCancelled(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	appt, exists := s.cache.Get(id)
	if !exists {
		return false
	}

	// Повторная отмена - no-op, времена и имена не трогаем
	appt.Status = domain.AppointmentStatusCancelled
	s.cache.Add(id, appt)

	return true
}

func (s *MemoryStore) Get(ctx context.Context, id string) (domain.Appointment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.cache.Get(id)
}

func (s *MemoryStore) All(ctx context.Context) []domain.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	appointments := make([]domain.Appointment, 0, s.cache.Len())
	for _, id := range s.cache.Keys() {
		if appt, exists := s.cache.Peek(id); exists {
			appointments = append(appointments, appt)
		}
	}

	return appointments
}

func (s *MemoryStore) EvictStale(ctx context.Context, now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for _, id := range s.cache.Keys() {
		appt, exists := s.cache.Peek(id)
		if !exists {
			continue
		}

		endAt, err := utils.ParseDate(appt.EndTime)
		// Запись с нечитаемым endTime показать всё равно нельзя - удаляем
		if err == nil && !endAt.Before(now) {
			continue
		}

		s.cache.Remove(id)
		evicted++

		s.logger.Debug("store.evict.stale", out.LogFields{
			"appointmentId": id,
			"endTime":       appt.EndTime,
		})
	}

	return evicted
}
