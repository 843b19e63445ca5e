package services

import (
	"testing"
	"time"

	"github.com/FightogFitness/fightogfitness-display/internal/core/domain"
)

func at(hour, minute int) time.Time {
	return time.Date(2030, 1, 1, hour, minute, 0, 0, time.UTC)
}

func TestDisplayModeAt(t *testing.T) {
	svc, _ := newTestService(t)

	cases := []struct {
		hour, minute int
		want         domain.DisplayMode
	}{
		{5, 59, domain.DisplayModeBoard}, // до открытия - всегда табло
		{6, 0, domain.DisplayModeAds},
		{6, 6, domain.DisplayModeAds},
		{6, 7, domain.DisplayModeBoard},
		{13, 3, domain.DisplayModeAds},
		{13, 30, domain.DisplayModeBoard},
		{21, 0, domain.DisplayModeAds},
		{21, 59, domain.DisplayModeBoard},
		{22, 0, domain.DisplayModeBoard}, // после закрытия - всегда табло
		{23, 5, domain.DisplayModeBoard},
		{0, 3, domain.DisplayModeBoard},
	}

	for _, tc := range cases {
		got := svc.DisplayModeAt(at(tc.hour, tc.minute))
		if got != tc.want {
			t.Fatalf("%02d:%02d: expected %q, got %q", tc.hour, tc.minute, tc.want, got)
		}
	}
}
