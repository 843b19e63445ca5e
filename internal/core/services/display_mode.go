package services

import (
	"time"

	"github.com/FightogFitness/fightogfitness-display/internal/core/domain"
)

// DisplayModeAt решает, что крутить на экране в момент t.
//
//   - 06:00-22:00:
//   - минуты 0-6 каждого часа - реклама
//   - остальное время - табло
//   - вне окна 06-22 - всегда табло
//
// Чистая функция от локального времени, клиент опрашивает её по таймеру.
func (s *BoardService) DisplayModeAt(t time.Time) domain.DisplayMode {
	hour := t.Hour()
	minute := t.Minute()

	withinOpening := hour >= s.cfg.Board.OpeningHour && hour < s.cfg.Board.ClosingHour
	if withinOpening && minute < s.cfg.Board.AdsMinutes {
		return domain.DisplayModeAds
	}

	return domain.DisplayModeBoard
}
