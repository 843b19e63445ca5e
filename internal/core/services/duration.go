package services

import (
	"math"

	"github.com/FightogFitness/fightogfitness-display/internal/utils"
)

// DurationMinutes считает длительность в минутах с округлением до ближайшей.
// Возвращает nil, если хотя бы одно из времён не парсится. Отрицательная
// длительность не корректируется: порядок start/end не валидируем.
func DurationMinutes(startISO, endISO string) *int {
	start, err := utils.ParseDate(startISO)
	if err != nil {
		return nil
	}

	end, err := utils.ParseDate(endISO)
	if err != nil {
		return nil
	}

	minutes := int(math.Round(end.Sub(start).Minutes()))
	return &minutes
}
