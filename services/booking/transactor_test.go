package booking

import (
	"context"
	"testing"
	"time"

	appointmentRepo "randevio/database/repository/appointment"
	"randevio/models"
	"randevio/services/availability"
)

// Monday 2 March 2026, noon local time.
var testNow = time.Date(2026, 3, 2, 12, 0, 0, 0, time.Local)

type fakeEmployeeRepo struct{}

func (f *fakeEmployeeRepo) GetActive(ctx context.Context, businessID string) ([]models.Employee, error) {
	return []models.Employee{{ID: "emp-1", BusinessID: businessID, Name: "Ayse", IsActive: true}}, nil
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, businessID, employeeID string) (*models.Employee, error) {
	if employeeID != "emp-1" {
		return nil, nil
	}
	return &models.Employee{ID: "emp-1", BusinessID: businessID, Name: "Ayse", IsActive: true}, nil
}

func (f *fakeEmployeeRepo) GetWorkingHours(ctx context.Context, employeeID string, dayOfWeek int) ([]models.WorkingHoursRule, error) {
	// Bookable every day, 09:00-14:00.
	return []models.WorkingHoursRule{{EmployeeID: employeeID, DayOfWeek: dayOfWeek, StartTime: "09:00", EndTime: "14:00"}}, nil
}

type fakeAppointmentRepo struct {
	appointments []models.Appointment
	failInsert   bool
}

func (f *fakeAppointmentRepo) Insert(ctx context.Context, appt *models.Appointment) error {
	if f.failInsert {
		return appointmentRepo.ErrDuplicateSlot
	}
	if appt.ID == "" {
		appt.ID = "appt-" + time.Now().Format("150405.000000000")
	}
	f.appointments = append(f.appointments, *appt)
	return nil
}

func (f *fakeAppointmentRepo) GetByID(ctx context.Context, businessID, id string) (*models.Appointment, error) {
	for i := range f.appointments {
		if f.appointments[i].ID == id && f.appointments[i].BusinessID == businessID {
			return &f.appointments[i], nil
		}
	}
	return nil, nil
}

func (f *fakeAppointmentRepo) FindActiveByEmployeeOnDay(ctx context.Context, businessID, employeeID string, dayStart, dayEnd time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range f.appointments {
		if a.EmployeeID != employeeID || a.Status == models.AppointmentCancelled {
			continue
		}
		if !a.StartsAt.Before(dayStart) && a.StartsAt.Before(dayEnd) {
			out = append(out, a)
		}
	}
	return out, nil
}

func matchesIdentity(a models.Appointment, identity models.Identity) bool {
	if identity.WaUserID != "" && a.WaUserID == identity.WaUserID {
		return true
	}
	for _, cid := range identity.CustomerIDs {
		if a.CustomerID == cid {
			return true
		}
	}
	return false
}

func (f *fakeAppointmentRepo) FindActiveForIdentityOnDay(ctx context.Context, businessID string, identity models.Identity, dayStart, dayEnd time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range f.appointments {
		if a.Status == models.AppointmentCancelled || !matchesIdentity(a, identity) {
			continue
		}
		if !a.StartsAt.Before(dayStart) && a.StartsAt.Before(dayEnd) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) FindUpcomingForIdentity(ctx context.Context, businessID string, identity models.Identity, from time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range f.appointments {
		if a.Status == models.AppointmentCancelled || !matchesIdentity(a, identity) {
			continue
		}
		if a.StartsAt.After(from) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) Cancel(ctx context.Context, id string) error {
	for i := range f.appointments {
		if f.appointments[i].ID == id {
			f.appointments[i].Status = models.AppointmentCancelled
		}
	}
	return nil
}

func (f *fakeAppointmentRepo) SetApproval(ctx context.Context, businessID, id, approvalStatus string, approvedAt *time.Time) (*models.Appointment, error) {
	return nil, nil
}

func (f *fakeAppointmentRepo) ListPending(ctx context.Context, businessID string) ([]models.Appointment, error) {
	return nil, nil
}

type fakeQueueRepo struct {
	entries []models.QueueEntry
}

func (f *fakeQueueRepo) Insert(ctx context.Context, entry *models.QueueEntry) error {
	if entry.ID == "" {
		entry.ID = "q-" + time.Now().Format("150405.000000000")
	}
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeQueueRepo) MaxPosition(ctx context.Context, businessID, queueDate string) (int, error) {
	max := -1
	for _, e := range f.entries {
		if e.QueueDate == queueDate && e.Position > max {
			max = e.Position
		}
	}
	return max, nil
}

func (f *fakeQueueRepo) FindForIdentityOnDate(ctx context.Context, businessID string, identity models.Identity, queueDate string) (*models.QueueEntry, error) {
	for i := range f.entries {
		e := &f.entries[i]
		if e.QueueDate != queueDate || e.Status == models.QueueCancelled {
			continue
		}
		if identity.WaUserID != "" && e.WaUserID == identity.WaUserID {
			return e, nil
		}
		for _, cid := range identity.CustomerIDs {
			if e.CustomerID == cid {
				return e, nil
			}
		}
	}
	return nil, nil
}

func (f *fakeQueueRepo) List(ctx context.Context, businessID, queueDate string) ([]models.QueueEntry, error) {
	return f.entries, nil
}

func (f *fakeQueueRepo) SetStatus(ctx context.Context, businessID, id, status string) (*models.QueueEntry, error) {
	for i := range f.entries {
		if f.entries[i].ID == id {
			f.entries[i].Status = status
			return &f.entries[i], nil
		}
	}
	return nil, nil
}

type fakeBusinessRepo struct {
	settings models.BookingSettings
}

func (f *fakeBusinessRepo) GetByID(ctx context.Context, id string) (*models.Business, error) {
	return &models.Business{ID: id}, nil
}

func (f *fakeBusinessRepo) GetBySlug(ctx context.Context, slug string) (*models.Business, error) {
	return nil, nil
}

func (f *fakeBusinessRepo) GetIntegrationByPhoneNumberID(ctx context.Context, phoneNumberID string) (*models.ChannelIntegration, error) {
	return nil, nil
}

func (f *fakeBusinessRepo) GetBookingSettings(ctx context.Context, businessID string) (*models.BookingSettings, error) {
	s := f.settings
	return &s, nil
}

func (f *fakeBusinessRepo) GetSubscription(ctx context.Context, businessID string) (*models.Subscription, error) {
	return &models.Subscription{BusinessID: businessID, Status: models.SubscriptionActive}, nil
}

type fakeNotifier struct {
	outcomes []models.BookingOutcome
}

func (f *fakeNotifier) PublishBookingOutcome(ctx context.Context, outcome models.BookingOutcome) error {
	f.outcomes = append(f.outcomes, outcome)
	return nil
}

func (f *fakeNotifier) ScheduleAppointmentReminder(ctx context.Context, appt *models.Appointment) error {
	return nil
}

func (f *fakeNotifier) SendAppointmentReminder(ctx context.Context, payload models.ReminderPayload) error {
	return nil
}

func newTestTransactor(appts *fakeAppointmentRepo, queue *fakeQueueRepo, autoApprove bool) (*DefaultTransactor, *fakeNotifier) {
	engine := availability.NewEngine(&fakeEmployeeRepo{}, appts, 30*time.Minute)
	engine.Now = func() time.Time { return testNow }
	notifier := &fakeNotifier{}
	return &DefaultTransactor{
		Appointments: appts,
		Queue:        queue,
		Businesses:   &fakeBusinessRepo{settings: models.BookingSettings{AutoApprove: autoApprove}},
		Availability: engine,
		Notifier:     notifier,
		CancelNotice: 2 * time.Hour,
		Now:          func() time.Time { return testNow },
	}, notifier
}

var waIdentity = models.Identity{PhoneE164: "+905321234567", WaUserID: "wa-1"}

func waRequest() CreateAppointmentRequest {
	return CreateAppointmentRequest{
		BusinessID: "biz-1",
		EmployeeID: "emp-1",
		Date:       "2026-03-03",
		Slot:       "10:00",
		WaUserID:   "wa-1",
		Identity:   waIdentity,
		Channel:    models.ChannelMessenger,
	}
}

func TestCreateAppointmentAutoApprove(t *testing.T) {
	appts := &fakeAppointmentRepo{}
	tx, notifier := newTestTransactor(appts, &fakeQueueRepo{}, true)

	appt, err := tx.CreateAppointment(context.Background(), waRequest())
	if err != nil {
		t.Fatalf("CreateAppointment: %v", err)
	}
	if appt.ApprovalStatus != models.ApprovalApproved || appt.ApprovedAt == nil {
		t.Fatalf("expected auto approval, got %s", appt.ApprovalStatus)
	}
	if appt.Status != models.AppointmentScheduled {
		t.Fatalf("status = %s, want scheduled", appt.Status)
	}
	want := time.Date(2026, 3, 3, 10, 0, 0, 0, time.Local)
	if !appt.StartsAt.Equal(want) {
		t.Fatalf("startsAt = %v, want %v", appt.StartsAt, want)
	}
	if len(notifier.outcomes) != 1 || notifier.outcomes[0].Kind != models.OutcomeAppointment {
		t.Fatalf("expected one appointment outcome, got %+v", notifier.outcomes)
	}
}

func TestCreateAppointmentManualApproval(t *testing.T) {
	tx, _ := newTestTransactor(&fakeAppointmentRepo{}, &fakeQueueRepo{}, false)

	appt, err := tx.CreateAppointment(context.Background(), waRequest())
	if err != nil {
		t.Fatalf("CreateAppointment: %v", err)
	}
	if appt.ApprovalStatus != models.ApprovalPending || appt.ApprovedAt != nil {
		t.Fatalf("expected pending approval, got %s", appt.ApprovalStatus)
	}
}

func TestCreateAppointmentSlotUnavailable(t *testing.T) {
	appts := &fakeAppointmentRepo{appointments: []models.Appointment{{
		ID: "a1", BusinessID: "biz-1", EmployeeID: "emp-1",
		StartsAt: time.Date(2026, 3, 3, 10, 0, 0, 0, time.Local),
		Status:   models.AppointmentScheduled,
	}}}
	tx, _ := newTestTransactor(appts, &fakeQueueRepo{}, true)

	_, err := tx.CreateAppointment(context.Background(), waRequest())
	fault := AsFault(err)
	if fault == nil || fault.Code != FaultSlotUnavailable {
		t.Fatalf("expected slot_unavailable fault, got %v", err)
	}
}

func TestCreateAppointmentSameDayConflictAcrossChannels(t *testing.T) {
	// Earlier web booking by the same phone's customer record.
	appts := &fakeAppointmentRepo{appointments: []models.Appointment{{
		ID: "a1", BusinessID: "biz-1", EmployeeID: "emp-1", CustomerID: "cust-7",
		StartsAt: time.Date(2026, 3, 3, 9, 0, 0, 0, time.Local),
		Status:   models.AppointmentScheduled,
	}}}
	tx, _ := newTestTransactor(appts, &fakeQueueRepo{}, true)

	req := waRequest()
	req.Identity = models.Identity{PhoneE164: "+905321234567", WaUserID: "wa-1", CustomerIDs: []string{"cust-7"}}
	_, err := tx.CreateAppointment(context.Background(), req)
	fault := AsFault(err)
	if fault == nil || fault.Code != FaultExistingSameDay {
		t.Fatalf("expected existing_same_day fault, got %v", err)
	}
}

func TestCreateAppointmentConcurrentDuplicate(t *testing.T) {
	appts := &fakeAppointmentRepo{failInsert: true}
	tx, _ := newTestTransactor(appts, &fakeQueueRepo{}, true)

	_, err := tx.CreateAppointment(context.Background(), waRequest())
	fault := AsFault(err)
	if fault == nil || fault.Code != FaultSlotUnavailable {
		t.Fatalf("expected slot_unavailable on duplicate insert, got %v", err)
	}
}

func TestCreateQueueEntryPositions(t *testing.T) {
	queue := &fakeQueueRepo{}
	tx, notifier := newTestTransactor(&fakeAppointmentRepo{}, queue, true)
	ctx := context.Background()

	first, err := tx.CreateQueueEntry(ctx, CreateQueueEntryRequest{
		BusinessID: "biz-1", WaUserID: "wa-1", Identity: waIdentity, Channel: models.ChannelMessenger,
	})
	if err != nil {
		t.Fatalf("CreateQueueEntry: %v", err)
	}
	if first.Position != 0 || first.Status != models.QueueWaiting {
		t.Fatalf("first entry = %+v, want position 0 waiting", first)
	}

	second, err := tx.CreateQueueEntry(ctx, CreateQueueEntryRequest{
		BusinessID: "biz-1", WaUserID: "wa-2",
		Identity: models.Identity{WaUserID: "wa-2"}, Channel: models.ChannelMessenger,
	})
	if err != nil {
		t.Fatalf("CreateQueueEntry: %v", err)
	}
	if second.Position != 1 {
		t.Fatalf("second position = %d, want 1", second.Position)
	}

	// Cancelled entries keep their number; the next join gets a fresh one.
	if _, err := queue.SetStatus(ctx, "biz-1", second.ID, models.QueueCancelled); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	third, err := tx.CreateQueueEntry(ctx, CreateQueueEntryRequest{
		BusinessID: "biz-1", WaUserID: "wa-3",
		Identity: models.Identity{WaUserID: "wa-3"}, Channel: models.ChannelMessenger,
	})
	if err != nil {
		t.Fatalf("CreateQueueEntry: %v", err)
	}
	if third.Position != 2 {
		t.Fatalf("third position = %d, want 2", third.Position)
	}

	if len(notifier.outcomes) != 3 {
		t.Fatalf("expected 3 queue outcomes, got %d", len(notifier.outcomes))
	}
}

func TestCreateQueueEntryAlreadyQueued(t *testing.T) {
	queue := &fakeQueueRepo{}
	tx, _ := newTestTransactor(&fakeAppointmentRepo{}, queue, true)
	ctx := context.Background()

	req := CreateQueueEntryRequest{
		BusinessID: "biz-1", WaUserID: "wa-1", Identity: waIdentity, Channel: models.ChannelMessenger,
	}
	first, err := tx.CreateQueueEntry(ctx, req)
	if err != nil {
		t.Fatalf("CreateQueueEntry: %v", err)
	}

	again, err := tx.CreateQueueEntry(ctx, req)
	fault := AsFault(err)
	if fault == nil || fault.Code != FaultAlreadyQueued {
		t.Fatalf("expected already_queued fault, got %v", err)
	}
	if again == nil || again.ID != first.ID {
		t.Fatalf("expected existing entry back, got %+v", again)
	}
	if len(queue.entries) != 1 {
		t.Fatalf("expected one stored entry, got %d", len(queue.entries))
	}
}

func TestCancelAppointment(t *testing.T) {
	mine := models.Appointment{
		ID: "a-mine", BusinessID: "biz-1", EmployeeID: "emp-1", WaUserID: "wa-1",
		StartsAt: testNow.Add(5 * time.Hour), Status: models.AppointmentScheduled,
	}
	soon := models.Appointment{
		ID: "a-soon", BusinessID: "biz-1", EmployeeID: "emp-1", WaUserID: "wa-1",
		StartsAt: testNow.Add(90 * time.Minute), Status: models.AppointmentScheduled,
	}
	boundary := models.Appointment{
		ID: "a-boundary", BusinessID: "biz-1", EmployeeID: "emp-1", WaUserID: "wa-1",
		StartsAt: testNow.Add(2 * time.Hour), Status: models.AppointmentScheduled,
	}
	foreign := models.Appointment{
		ID: "a-foreign", BusinessID: "biz-1", EmployeeID: "emp-1", WaUserID: "wa-9",
		StartsAt: testNow.Add(5 * time.Hour), Status: models.AppointmentScheduled,
	}
	done := models.Appointment{
		ID: "a-done", BusinessID: "biz-1", EmployeeID: "emp-1", WaUserID: "wa-1",
		StartsAt: testNow.Add(-3 * time.Hour), Status: models.AppointmentScheduled,
	}
	gone := models.Appointment{
		ID: "a-gone", BusinessID: "biz-1", EmployeeID: "emp-1", WaUserID: "wa-1",
		StartsAt: testNow.Add(5 * time.Hour), Status: models.AppointmentCancelled,
	}

	tests := []struct {
		name     string
		id       string
		wantCode string
	}{
		{"own upcoming cancels", "a-mine", ""},
		{"boundary notice cancels", "a-boundary", ""},
		{"too close", "a-soon", FaultTooClose},
		{"not owned", "a-foreign", FaultNotOwned},
		{"already cancelled", "a-gone", FaultAlreadyCancelled},
		{"in the past", "a-done", FaultPast},
		{"unknown id", "nope", FaultNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appts := &fakeAppointmentRepo{appointments: []models.Appointment{mine, soon, boundary, foreign, done, gone}}
			tx, _ := newTestTransactor(appts, &fakeQueueRepo{}, true)

			err := tx.CancelAppointment(context.Background(), "biz-1", tt.id, waIdentity)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("CancelAppointment: %v", err)
				}
				got, _ := appts.GetByID(context.Background(), "biz-1", tt.id)
				if got.Status != models.AppointmentCancelled {
					t.Fatalf("status = %s, want cancelled", got.Status)
				}
				return
			}
			fault := AsFault(err)
			if fault == nil || fault.Code != tt.wantCode {
				t.Fatalf("expected %s fault, got %v", tt.wantCode, err)
			}
		})
	}
}
