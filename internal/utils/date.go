package utils

import (
	"fmt"
	"time"
)

// ParseDate парсит дату из строки в формате RFC3339, если не удается, то
// пробует парсить дату со временем, но без таймзоны, и дату без времени.
// GHL шлёт времена с зоной, но легаси-интеграции иногда без неё.
func ParseDate(str string) (time.Time, error) {
	parsedDate, err := time.Parse(time.RFC3339, str)
	if err != nil {
		parsedDate, err = time.ParseInLocation("2006-01-02T15:04:05", str, time.UTC)
		if err != nil {
			// Если не удалось, пробуем как дату без времени
			parsedDate, err = time.ParseInLocation("2006-01-02", str, time.UTC)
			if err != nil {
				return time.Time{}, fmt.Errorf("failed to parse time: %v", err)
			}
		}
	}

	return parsedDate, nil
}
