package domain

import (
	"github.com/FightogFitness/fightogfitness-display/internal/core/json_types"
)

// Формы вебхуков GHL. Форма зависит от workflow, поэтому все поля опциональны:
//
// Workflow 1 (book/update) присылает customData:
//   - appointmentId, clientName, coachName, isCancelled = false
//
// Workflow 2 (cancel) присылает:
//   - appointmentId, isCancelled = true
//
// startTime/endTime обычно лежат в calendar, но встречаются в customData
// и на верхнем уровне (легаси-форма).
type WebhookCustomData struct {
	AppointmentID json_types.String `json:"appointmentId"`
	ClientName    json_types.String `json:"clientName"`
	CoachName     json_types.String `json:"coachName"`
	StartTime     json_types.String `json:"startTime"`
	EndTime       json_types.String `json:"endTime"`
	IsCancelled   json_types.String `json:"isCancelled"`
}

type WebhookCalendar struct {
	AppointmentID json_types.String `json:"appointmentId"`
	StartTime     json_types.String `json:"startTime"`
	EndTime       json_types.String `json:"endTime"`
}

type WebhookUser struct {
	FirstName json_types.String `json:"firstName"`
}

type WebhookPayload struct {
	CustomData WebhookCustomData `json:"customData"`
	Calendar   WebhookCalendar   `json:"calendar"`
	User       WebhookUser       `json:"user"`

	// contact_id и contactId - два написания одного и того же поля
	ContactIDSnake json_types.String `json:"contact_id"`
	ContactIDCamel json_types.String `json:"contactId"`
	FullName       json_types.String `json:"full_name"`
	Email          json_types.String `json:"email"`
	StartTime      json_types.String `json:"startTime"`
	EndTime        json_types.String `json:"endTime"`
}

// ResolvedEvent - канонический вид события после прохода по цепочкам фоллбеков.
type ResolvedEvent struct {
	ID         string
	StartTime  string
	EndTime    string
	ClientName string
	CoachName  string
	Cancelled  bool
}
