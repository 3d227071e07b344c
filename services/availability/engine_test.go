package availability

import (
	"context"
	"reflect"
	"testing"
	"time"

	"randevio/models"
)

type fakeEmployeeRepo struct {
	employees map[string]models.Employee
	hours     map[int][]models.WorkingHoursRule
}

func (f *fakeEmployeeRepo) GetActive(ctx context.Context, businessID string) ([]models.Employee, error) {
	var out []models.Employee
	for _, e := range f.employees {
		if e.IsActive {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, businessID, employeeID string) (*models.Employee, error) {
	e, ok := f.employees[employeeID]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (f *fakeEmployeeRepo) GetWorkingHours(ctx context.Context, employeeID string, dayOfWeek int) ([]models.WorkingHoursRule, error) {
	return f.hours[dayOfWeek], nil
}

type fakeAppointmentRepo struct {
	appointments []models.Appointment
}

func (f *fakeAppointmentRepo) Insert(ctx context.Context, appt *models.Appointment) error {
	f.appointments = append(f.appointments, *appt)
	return nil
}

func (f *fakeAppointmentRepo) GetByID(ctx context.Context, businessID, id string) (*models.Appointment, error) {
	for i := range f.appointments {
		if f.appointments[i].ID == id {
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

func (f *fakeAppointmentRepo) FindActiveForIdentityOnDay(ctx context.Context, businessID string, identity models.Identity, dayStart, dayEnd time.Time) ([]models.Appointment, error) {
	return nil, nil
}

func (f *fakeAppointmentRepo) FindUpcomingForIdentity(ctx context.Context, businessID string, identity models.Identity, from time.Time) ([]models.Appointment, error) {
	return nil, nil
}

func (f *fakeAppointmentRepo) Cancel(ctx context.Context, id string) error { return nil }

func (f *fakeAppointmentRepo) SetApproval(ctx context.Context, businessID, id, approvalStatus string, approvedAt *time.Time) (*models.Appointment, error) {
	return nil, nil
}

func (f *fakeAppointmentRepo) ListPending(ctx context.Context, businessID string) ([]models.Appointment, error) {
	return nil, nil
}

// Monday 2 March 2026, noon local time.
var testNow = time.Date(2026, 3, 2, 12, 0, 0, 0, time.Local)

func newTestEngine(employees *fakeEmployeeRepo, appointments *fakeAppointmentRepo) *Engine {
	e := NewEngine(employees, appointments, 30*time.Minute)
	e.Now = func() time.Time { return testNow }
	return e
}

func standardStaff() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{
		employees: map[string]models.Employee{
			"emp-1": {ID: "emp-1", BusinessID: "biz-1", Name: "Ayse", IsActive: true},
			"emp-2": {ID: "emp-2", BusinessID: "biz-1", Name: "Mehmet", IsActive: false},
		},
		hours: map[int][]models.WorkingHoursRule{
			// Tuesday with a lunch break.
			2: {{EmployeeID: "emp-1", DayOfWeek: 2, StartTime: "09:00", EndTime: "14:00",
				Breaks: []models.BreakInterval{{Start: "12:00", End: "13:00"}}}},
			// Monday without breaks.
			1: {{EmployeeID: "emp-1", DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00"}},
		},
	}
}

func TestSlotsSkipBreaks(t *testing.T) {
	engine := newTestEngine(standardStaff(), &fakeAppointmentRepo{})

	// Tuesday 3 March: 09:00-14:00 with a 12:00-13:00 break.
	slots, err := engine.Slots(context.Background(), "biz-1", "emp-1", "2026-03-03")
	if err != nil {
		t.Fatalf("Slots: %v", err)
	}
	want := []string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30", "13:00", "13:30"}
	if !reflect.DeepEqual(slots, want) {
		t.Fatalf("Slots = %v, want %v", slots, want)
	}
}

func TestSlotsExcludeTakenStarts(t *testing.T) {
	appointments := &fakeAppointmentRepo{appointments: []models.Appointment{
		{ID: "a1", BusinessID: "biz-1", EmployeeID: "emp-1",
			StartsAt: time.Date(2026, 3, 3, 10, 0, 0, 0, time.Local),
			Status:   models.AppointmentScheduled},
		{ID: "a2", BusinessID: "biz-1", EmployeeID: "emp-1",
			StartsAt: time.Date(2026, 3, 3, 11, 0, 0, 0, time.Local),
			Status:   models.AppointmentCancelled},
	}}
	engine := newTestEngine(standardStaff(), appointments)

	slots, err := engine.Slots(context.Background(), "biz-1", "emp-1", "2026-03-03")
	if err != nil {
		t.Fatalf("Slots: %v", err)
	}
	for _, s := range slots {
		if s == "10:00" {
			t.Fatalf("taken slot 10:00 still offered: %v", slots)
		}
	}
	// The cancelled appointment's start stays bookable.
	found := false
	for _, s := range slots {
		if s == "11:00" {
			found = true
		}
	}
	if !found {
		t.Fatalf("slot 11:00 of a cancelled appointment missing: %v", slots)
	}
}

func TestSlotsTodayDropsElapsedTimes(t *testing.T) {
	engine := newTestEngine(standardStaff(), &fakeAppointmentRepo{})

	// Monday 2 March is "today" at noon; 09:00-17:00 window.
	slots, err := engine.Slots(context.Background(), "biz-1", "emp-1", "2026-03-02")
	if err != nil {
		t.Fatalf("Slots: %v", err)
	}
	if len(slots) == 0 {
		t.Fatalf("expected afternoon slots, got none")
	}
	if slots[0] != "12:30" {
		t.Fatalf("first slot = %s, want 12:30", slots[0])
	}
}

func TestSlotsEmptyCases(t *testing.T) {
	engine := newTestEngine(standardStaff(), &fakeAppointmentRepo{})
	ctx := context.Background()

	tests := []struct {
		name       string
		employeeID string
		date       string
	}{
		{"past date", "emp-1", "2026-03-01"},
		{"unknown employee", "emp-x", "2026-03-03"},
		{"inactive employee", "emp-2", "2026-03-03"},
		{"no working hours that day", "emp-1", "2026-03-04"},
		{"unparseable date", "emp-1", "not-a-date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots, err := engine.Slots(ctx, "biz-1", tt.employeeID, tt.date)
			if err != nil {
				t.Fatalf("Slots: %v", err)
			}
			if len(slots) != 0 {
				t.Fatalf("expected no slots, got %v", slots)
			}
		})
	}
}
