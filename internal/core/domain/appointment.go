package domain

type AppointmentStatus string

const (
	AppointmentStatusActive    AppointmentStatus = "active"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// Appointment - запись на персональную тренировку, как её отдаёт API табло.
// Времена храним строками ISO-8601 как они пришли от GHL, парсим лениво.
type Appointment struct {
	ID              string            `json:"id"`
	ClientName      string            `json:"clientName"`
	CoachName       string            `json:"coachName"`
	StartTime       string            `json:"startTime"`
	EndTime         string            `json:"endTime"`
	DurationMinutes *int              `json:"durationMinutes,omitempty"`
	Status          AppointmentStatus `json:"status"`
}

type IngestOutcome string

const (
	IngestOutcomeBooked    IngestOutcome = "booked"
	IngestOutcomeCancelled IngestOutcome = "cancelled"
	IngestOutcomeRejected  IngestOutcome = "rejected"
)
