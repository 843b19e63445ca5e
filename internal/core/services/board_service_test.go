package services

import (
	"context"
	"testing"
	"time"

	"github.com/FightogFitness/fightogfitness-display/internal/adapters/out/store"
	"github.com/FightogFitness/fightogfitness-display/internal/config"
	"github.com/FightogFitness/fightogfitness-display/internal/core/domain"
	"github.com/FightogFitness/fightogfitness-display/internal/core/json_types"
	"github.com/FightogFitness/fightogfitness-display/internal/core/ports/out"
)

type nopLogger struct{}

func (nopLogger) Debug(string, out.LogFields)           {}
func (nopLogger) Info(string, out.LogFields)            {}
func (nopLogger) Warn(string, out.LogFields)            {}
func (nopLogger) Error(string, out.LogFields)           {}
func (l nopLogger) WithFields(out.LogFields) out.LoggerPort { return l }
func (l nopLogger) WithModule(string) out.LoggerPort        { return l }

func newTestService(t *testing.T) (*BoardService, *store.MemoryStore) {
	t.Helper()

	cfg := &config.Config{}
	cfg.Store.Size = 100
	cfg.Board.MaxUpcoming = 20
	cfg.Board.OpeningHour = 6
	cfg.Board.ClosingHour = 22
	cfg.Board.AdsMinutes = 7

	memoryStore, err := store.NewMemoryStore(cfg, nopLogger{})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	return NewBoardService(memoryStore, cfg, nopLogger{}), memoryStore
}

func futureISO(d time.Duration) string {
	return time.Now().Add(d).UTC().Format(time.RFC3339)
}

func bookingPayload(id, start, end string) domain.WebhookPayload {
	p := domain.WebhookPayload{}
	p.CustomData.AppointmentID = json_types.String(id)
	p.CustomData.ClientName = json_types.String("Mia Hansen")
	p.CustomData.CoachName = json_types.String("Lars")
	p.Calendar.StartTime = json_types.String(start)
	p.Calendar.EndTime = json_types.String(end)
	return p
}

func cancelPayload(id string) domain.WebhookPayload {
	p := domain.WebhookPayload{}
	p.CustomData.AppointmentID = json_types.String(id)
	p.CustomData.IsCancelled = json_types.String("true")
	return p
}

func TestIngestEvent_UpsertIdempotence(t *testing.T) {
	svc, memoryStore := newTestService(t)
	ctx := context.Background()

	payload := bookingPayload("a1", futureISO(time.Hour), futureISO(90*time.Minute))

	for i := 0; i < 2; i++ {
		outcome, err := svc.IngestEvent(ctx, payload)
		if err != nil {
			t.Fatalf("ingest failed: %v", err)
		}
		if outcome != domain.IngestOutcomeBooked {
			t.Fatalf("expected booked outcome, got %q", outcome)
		}
	}

	all := memoryStore.All(ctx)
	if len(all) != 1 {
		t.Fatalf("expected 1 record after duplicate events, got %d", len(all))
	}
	appt := all[0]
	if appt.Status != domain.AppointmentStatusActive {
		t.Fatalf("expected active status, got %q", appt.Status)
	}
	if appt.DurationMinutes == nil || *appt.DurationMinutes != 30 {
		t.Fatalf("expected 30 minute duration, got %v", appt.DurationMinutes)
	}
}

func TestIngestEvent_RejectsMissingID(t *testing.T) {
	svc, memoryStore := newTestService(t)
	ctx := context.Background()

	p := domain.WebhookPayload{}
	p.FullName = json_types.String("Jens")

	outcome, err := svc.IngestEvent(ctx, p)
	if err != nil {
		t.Fatalf("reject must not be an error: %v", err)
	}
	if outcome != domain.IngestOutcomeRejected {
		t.Fatalf("expected rejected outcome, got %q", outcome)
	}
	if len(memoryStore.All(ctx)) != 0 {
		t.Fatalf("store must stay unchanged on reject")
	}
}

func TestIngestEvent_CancelKeepsOriginalTimes(t *testing.T) {
	svc, memoryStore := newTestService(t)
	ctx := context.Background()

	start := futureISO(time.Hour)
	end := futureISO(2 * time.Hour)
	if _, err := svc.IngestEvent(ctx, bookingPayload("a1", start, end)); err != nil {
		t.Fatalf("booking failed: %v", err)
	}

	outcome, err := svc.IngestEvent(ctx, cancelPayload("a1"))
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if outcome != domain.IngestOutcomeCancelled {
		t.Fatalf("expected cancelled outcome, got %q", outcome)
	}

	all := memoryStore.All(ctx)
	if len(all) != 1 {
		t.Fatalf("expected single record, got %d", len(all))
	}
	appt := all[0]
	if appt.Status != domain.AppointmentStatusCancelled {
		t.Fatalf("expected cancelled status, got %q", appt.Status)
	}
	if appt.StartTime != start || appt.EndTime != end {
		t.Fatalf("cancel must keep original times, got %q / %q", appt.StartTime, appt.EndTime)
	}
}

func TestIngestEvent_CancelIdempotence(t *testing.T) {
	svc, memoryStore := newTestService(t)
	ctx := context.Background()

	if _, err := svc.IngestEvent(ctx, bookingPayload("a1", futureISO(time.Hour), futureISO(2*time.Hour))); err != nil {
		t.Fatalf("booking failed: %v", err)
	}

	first, _ := svc.IngestEvent(ctx, cancelPayload("a1"))
	before, _ := memoryStore.Get(ctx, "a1")

	second, _ := svc.IngestEvent(ctx, cancelPayload("a1"))
	after, _ := memoryStore.Get(ctx, "a1")

	if first != domain.IngestOutcomeCancelled || second != domain.IngestOutcomeCancelled {
		t.Fatalf("expected cancelled outcomes, got %q / %q", first, second)
	}
	if before != after {
		t.Fatalf("second cancel must be a no-op: %+v != %+v", before, after)
	}
}

func TestIngestEvent_CancelUnknownCreatesDummy(t *testing.T) {
	svc, memoryStore := newTestService(t)
	ctx := context.Background()

	outcome, err := svc.IngestEvent(ctx, cancelPayload("never-seen"))
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if outcome != domain.IngestOutcomeCancelled {
		t.Fatalf("expected cancelled outcome, got %q", outcome)
	}

	appt, exists := memoryStore.Get(ctx, "never-seen")
	if !exists {
		t.Fatalf("expected dummy cancelled record to be created")
	}
	if appt.Status != domain.AppointmentStatusCancelled {
		t.Fatalf("expected cancelled status, got %q", appt.Status)
	}
	if appt.StartTime == "" || appt.EndTime == "" {
		t.Fatalf("expected synthesized time window, got %q / %q", appt.StartTime, appt.EndTime)
	}
	if appt.DurationMinutes == nil || *appt.DurationMinutes != 30 {
		t.Fatalf("expected synthesized 30 minute window, got %v", appt.DurationMinutes)
	}
}

func TestIngestEvent_RebookingReactivatesCancelled(t *testing.T) {
	svc, memoryStore := newTestService(t)
	ctx := context.Background()

	if _, err := svc.IngestEvent(ctx, bookingPayload("a1", futureISO(time.Hour), futureISO(2*time.Hour))); err != nil {
		t.Fatalf("booking failed: %v", err)
	}
	if _, err := svc.IngestEvent(ctx, cancelPayload("a1")); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	newStart := futureISO(3 * time.Hour)
	newEnd := futureISO(4 * time.Hour)
	if _, err := svc.IngestEvent(ctx, bookingPayload("a1", newStart, newEnd)); err != nil {
		t.Fatalf("rebooking failed: %v", err)
	}

	appt, _ := memoryStore.Get(ctx, "a1")
	if appt.Status != domain.AppointmentStatusActive {
		t.Fatalf("expected rebooking to reactivate, got %q", appt.Status)
	}
	if appt.StartTime != newStart {
		t.Fatalf("expected replaced times, got %q", appt.StartTime)
	}
}

func TestIngestEvent_SynthesizesMissingTimes(t *testing.T) {
	svc, memoryStore := newTestService(t)
	ctx := context.Background()

	p := domain.WebhookPayload{}
	p.CustomData.AppointmentID = json_types.String("a1")

	if _, err := svc.IngestEvent(ctx, p); err != nil {
		t.Fatalf("ingest failed: %v", err)
	}

	appt, exists := memoryStore.Get(ctx, "a1")
	if !exists {
		t.Fatalf("expected record with synthesized times")
	}
	if appt.DurationMinutes == nil || *appt.DurationMinutes != 30 {
		t.Fatalf("expected now/now+30m window, got %v", appt.DurationMinutes)
	}
	if appt.Status != domain.AppointmentStatusActive {
		t.Fatalf("expected active status, got %q", appt.Status)
	}
}

func TestUpcomingAppointments_SortedAscending(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	svc.IngestEvent(ctx, bookingPayload("late", futureISO(3*time.Hour), futureISO(4*time.Hour)))
	svc.IngestEvent(ctx, bookingPayload("early", futureISO(time.Hour), futureISO(2*time.Hour)))
	svc.IngestEvent(ctx, bookingPayload("middle", futureISO(2*time.Hour), futureISO(3*time.Hour)))

	upcoming, err := svc.UpcomingAppointments(ctx, time.Now())
	if err != nil {
		t.Fatalf("upcoming failed: %v", err)
	}
	if len(upcoming) != 3 {
		t.Fatalf("expected 3 records, got %d", len(upcoming))
	}
	for i, want := range []string{"early", "middle", "late"} {
		if upcoming[i].ID != want {
			t.Fatalf("position %d: expected %q, got %q", i, want, upcoming[i].ID)
		}
	}
}

func TestUpcomingAppointments_FiltersStale(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	// Закончилась час назад - протухла ещё на инжесте
	svc.IngestEvent(ctx, bookingPayload("stale", futureISO(-2*time.Hour), futureISO(-time.Hour)))
	svc.IngestEvent(ctx, bookingPayload("fresh", futureISO(time.Hour), futureISO(2*time.Hour)))

	upcoming, _ := svc.UpcomingAppointments(ctx, time.Now())
	if len(upcoming) != 1 || upcoming[0].ID != "fresh" {
		t.Fatalf("expected only fresh record, got %+v", upcoming)
	}
}

func TestUpcomingAppointments_CancelledStillVisible(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	svc.IngestEvent(ctx, bookingPayload("a1", futureISO(time.Hour), futureISO(2*time.Hour)))
	svc.IngestEvent(ctx, cancelPayload("a1"))

	upcoming, _ := svc.UpcomingAppointments(ctx, time.Now())
	if len(upcoming) != 1 {
		t.Fatalf("cancelled upcoming record must stay visible, got %d records", len(upcoming))
	}
	if upcoming[0].Status != domain.AppointmentStatusCancelled {
		t.Fatalf("expected cancelled status, got %q", upcoming[0].Status)
	}
}

func TestUpcomingAppointments_CapsList(t *testing.T) {
	svc, _ := newTestService(t)
	svc.cfg.Board.MaxUpcoming = 2
	ctx := context.Background()

	svc.IngestEvent(ctx, bookingPayload("a1", futureISO(time.Hour), futureISO(2*time.Hour)))
	svc.IngestEvent(ctx, bookingPayload("a2", futureISO(2*time.Hour), futureISO(3*time.Hour)))
	svc.IngestEvent(ctx, bookingPayload("a3", futureISO(3*time.Hour), futureISO(4*time.Hour)))

	upcoming, _ := svc.UpcomingAppointments(ctx, time.Now())
	if len(upcoming) != 2 {
		t.Fatalf("expected capped list of 2, got %d", len(upcoming))
	}
	if upcoming[0].ID != "a1" || upcoming[1].ID != "a2" {
		t.Fatalf("cap must keep the earliest records, got %+v", upcoming)
	}
}
