// File: services/availability/engine.go
package availability

import (
	"context"
	"sort"
	"time"

	appointmentRepo "randevio/database/repository/appointment"
	employeeRepo "randevio/database/repository/employee"
	"randevio/models"
	"randevio/utils"
)

// Engine computes the bookable slot starts for one employee and day. It is
// read-only: absent data yields an empty result, never an error.
type Engine struct {
	Employees    employeeRepo.EmployeeRepository
	Appointments appointmentRepo.AppointmentRepository
	SlotDuration time.Duration
	// Now is swappable in tests; defaults to time.Now.
	Now func() time.Time
}

// NewEngine constructs an Engine with the configured slot duration.
func NewEngine(employees employeeRepo.EmployeeRepository, appointments appointmentRepo.AppointmentRepository, slotDuration time.Duration) *Engine {
	return &Engine{
		Employees:    employees,
		Appointments: appointments,
		SlotDuration: slotDuration,
		Now:          time.Now,
	}
}

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// Slots returns the ordered "HH:MM" slot starts still bookable for the
// employee on the given "YYYY-MM-DD" date.
func (e *Engine) Slots(ctx context.Context, businessID, employeeID, dateStr string) ([]string, error) {
	day, dayEnd, err := utils.DayBounds(dateStr)
	if err != nil {
		return nil, nil
	}

	now := e.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if day.Before(today) {
		return nil, nil
	}

	employee, err := e.Employees.GetByID(ctx, businessID, employeeID)
	if err != nil {
		return nil, err
	}
	if employee == nil || !employee.IsActive {
		return nil, nil
	}

	rules, err := e.Employees.GetWorkingHours(ctx, employeeID, int(day.Weekday()))
	if err != nil {
		return nil, err
	}
	if len(rules) == 0 {
		return nil, nil
	}

	slotMinutes := int(e.SlotDuration / time.Minute)
	candidates := map[int]struct{}{}
	for _, rule := range rules {
		start, err := utils.ParseClock(rule.StartTime)
		if err != nil {
			continue
		}
		end, err := utils.ParseClock(rule.EndTime)
		if err != nil || start >= end {
			continue
		}
		for m := start; m+slotMinutes <= end; m += slotMinutes {
			if overlapsBreak(m, m+slotMinutes, rule) {
				continue
			}
			candidates[m] = struct{}{}
		}
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	appts, err := e.Appointments.FindActiveByEmployeeOnDay(ctx, businessID, employeeID, day, dayEnd)
	if err != nil {
		return nil, err
	}
	for _, a := range appts {
		local := a.StartsAt.In(day.Location())
		delete(candidates, local.Hour()*60+local.Minute())
	}

	sameDay := day.Equal(today)
	nowMinutes := now.Hour()*60 + now.Minute()

	result := make([]int, 0, len(candidates))
	for m := range candidates {
		if sameDay && m <= nowMinutes {
			continue
		}
		result = append(result, m)
	}
	sort.Ints(result)

	slots := make([]string, len(result))
	for i, m := range result {
		slots[i] = utils.FormatClock(m)
	}
	return slots, nil
}

// overlapsBreak applies the open-interval test: a slot is excluded when
// slotStart < breakEnd && slotEnd > breakStart. Unparseable breaks are inert.
func overlapsBreak(slotStart, slotEnd int, rule models.WorkingHoursRule) bool {
	for _, b := range rule.Breaks {
		breakStart, err := utils.ParseClock(b.Start)
		if err != nil {
			continue
		}
		breakEnd, err := utils.ParseClock(b.End)
		if err != nil {
			continue
		}
		if slotStart < breakEnd && slotEnd > breakStart {
			return true
		}
	}
	return false
}
