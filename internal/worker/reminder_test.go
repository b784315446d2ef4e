package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/pkg/metrics"
)

var testMetrics = metrics.NewMetrics("reminder_worker_test")

type fakeReminderRepo struct {
	due      []*model.AppointmentReminder
	reminded map[uuid.UUID]bool
}

func newFakeReminderRepo(due ...*model.AppointmentReminder) *fakeReminderRepo {
	return &fakeReminderRepo{due: due, reminded: make(map[uuid.UUID]bool)}
}

func (f *fakeReminderRepo) ListDueReminders(_ context.Context, _ time.Duration) ([]*model.AppointmentReminder, error) {
	var out []*model.AppointmentReminder
	for _, r := range f.due {
		if !f.reminded[r.AppointmentID] {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReminderRepo) MarkReminded(_ context.Context, id uuid.UUID) error {
	f.reminded[id] = true
	return nil
}

func (f *fakeReminderRepo) Book(_ context.Context, _ *model.Appointment, _ *model.Bill) error {
	return nil
}

func (f *fakeReminderRepo) Get(_ context.Context, _ uuid.UUID) (*model.Appointment, error) {
	return nil, nil
}

func (f *fakeReminderRepo) List(_ context.Context, _ *model.AppointmentFilters) ([]*model.Appointment, error) {
	return nil, nil
}

func (f *fakeReminderRepo) Update(_ context.Context, _ *model.Appointment) error { return nil }
func (f *fakeReminderRepo) Reschedule(_ context.Context, _ *model.Appointment) error { return nil }

func (f *fakeReminderRepo) HasOverlap(_ context.Context, _ uuid.UUID, _, _ time.Time, _ *uuid.UUID) (bool, error) {
	return false, nil
}

type flakySender struct {
	failFor map[string]bool
	sent    []string
}

func (s *flakySender) SendBookingConfirmation(_ context.Context, _, _ string, _ *model.Appointment) error {
	return nil
}

func (s *flakySender) SendReminder(_ context.Context, r *model.AppointmentReminder) error {
	if s.failFor[r.PatientEmail] {
		return errors.New("smtp unavailable")
	}
	s.sent = append(s.sent, r.PatientEmail)
	return nil
}

func dueReminder(email string) *model.AppointmentReminder {
	return &model.AppointmentReminder{
		AppointmentID: uuid.New(),
		StartTime:     time.Now().Add(time.Hour),
		EndTime:       time.Now().Add(90 * time.Minute),
		PatientName:   "Alice",
		PatientEmail:  email,
		DoctorName:    "Dr. Chen",
	}
}

func TestTickSendsAndMarks(t *testing.T) {
	repo := newFakeReminderRepo(dueReminder("alice@example.com"), dueReminder("bob@example.com"))
	sender := &flakySender{}

	w := NewReminder(repo, sender, testMetrics, time.Minute, 24*time.Hour, zerolog.Nop())
	w.tick(context.Background())

	assert.ElementsMatch(t, []string{"alice@example.com", "bob@example.com"}, sender.sent)
	assert.Len(t, repo.reminded, 2)

	// A second tick finds nothing left to send.
	sender.sent = nil
	w.tick(context.Background())
	assert.Empty(t, sender.sent)
}

func TestTickRetriesFailedSends(t *testing.T) {
	repo := newFakeReminderRepo(dueReminder("alice@example.com"), dueReminder("bob@example.com"))
	sender := &flakySender{failFor: map[string]bool{"bob@example.com": true}}

	w := NewReminder(repo, sender, testMetrics, time.Minute, 24*time.Hour, zerolog.Nop())
	w.tick(context.Background())

	assert.Equal(t, []string{"alice@example.com"}, sender.sent)
	assert.Len(t, repo.reminded, 1)

	// The failed send stays unmarked and goes out once SMTP recovers.
	sender.failFor = nil
	w.tick(context.Background())
	assert.Contains(t, sender.sent, "bob@example.com")
	assert.Len(t, repo.reminded, 2)
}
