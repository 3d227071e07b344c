// File: services/booking/transactor.go
package booking

import (
	"context"
	"errors"

	appointmentRepo "randevio/database/repository/appointment"
	"randevio/models"
	"randevio/utils"

	"go.uber.org/zap"
)

// CreateAppointment re-validates availability and same-day uniqueness at
// commit time, then persists. The availability re-check closes the gap
// between when slots were last shown and now; the unique index on the
// collection is the backstop for the race that remains.
func (t *DefaultTransactor) CreateAppointment(ctx context.Context, req CreateAppointmentRequest) (*models.Appointment, error) {
	slots, err := t.Availability.Slots(ctx, req.BusinessID, req.EmployeeID, req.Date)
	if err != nil {
		return nil, err
	}
	if !containsSlot(slots, req.Slot) {
		return nil, NewFault(FaultSlotUnavailable, "selected slot is no longer available")
	}

	dayStart, dayEnd, err := utils.DayBounds(req.Date)
	if err != nil {
		return nil, err
	}
	existing, err := t.Appointments.FindActiveForIdentityOnDay(ctx, req.BusinessID, req.Identity, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, NewFault(FaultExistingSameDay, "an appointment already exists for this day")
	}

	settings, err := t.Businesses.GetBookingSettings(ctx, req.BusinessID)
	if err != nil {
		return nil, err
	}

	startsAt, err := utils.CombineDateAndClock(req.Date, req.Slot)
	if err != nil {
		return nil, err
	}

	now := t.now()
	appt := &models.Appointment{
		BusinessID:     req.BusinessID,
		EmployeeID:     req.EmployeeID,
		WaUserID:       req.WaUserID,
		CustomerID:     req.CustomerID,
		StartsAt:       startsAt,
		Status:         models.AppointmentScheduled,
		ApprovalStatus: models.ApprovalPending,
		SourceChannel:  req.Channel,
		RequestedAt:    now,
	}
	if settings.AutoApprove {
		appt.ApprovalStatus = models.ApprovalApproved
		appt.ApprovedAt = &now
	}

	if err := t.Appointments.Insert(ctx, appt); err != nil {
		if errors.Is(err, appointmentRepo.ErrDuplicateSlot) {
			return nil, NewFault(FaultSlotUnavailable, "selected slot was taken concurrently")
		}
		return nil, err
	}

	t.publishOutcome(ctx, models.BookingOutcome{
		Kind:          models.OutcomeAppointment,
		BusinessID:    req.BusinessID,
		Appointment:   appt,
		AutoApproved:  settings.AutoApprove,
		SourceChannel: req.Channel,
	})
	return appt, nil
}

// CreateQueueEntry appends to today's queue. A second join by the same
// identity reports the existing entry through an already_queued fault.
func (t *DefaultTransactor) CreateQueueEntry(ctx context.Context, req CreateQueueEntryRequest) (*models.QueueEntry, error) {
	today := utils.DateString(t.now())

	existing, err := t.Queue.FindForIdentityOnDate(ctx, req.BusinessID, req.Identity, today)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, NewFault(FaultAlreadyQueued, "a queue number already exists for today")
	}

	maxPos, err := t.Queue.MaxPosition(ctx, req.BusinessID, today)
	if err != nil {
		return nil, err
	}

	entry := &models.QueueEntry{
		BusinessID:    req.BusinessID,
		EmployeeID:    req.EmployeeID,
		WaUserID:      req.WaUserID,
		CustomerID:    req.CustomerID,
		QueueDate:     today,
		Position:      maxPos + 1,
		Status:        models.QueueWaiting,
		SourceChannel: req.Channel,
		CreatedAt:     t.now(),
	}
	if err := t.Queue.Insert(ctx, entry); err != nil {
		return nil, err
	}

	t.publishOutcome(ctx, models.BookingOutcome{
		Kind:          models.OutcomeQueue,
		BusinessID:    req.BusinessID,
		QueueEntry:    entry,
		SourceChannel: req.Channel,
	})
	return entry, nil
}

// CancelAppointment cancels one of the identity's own upcoming appointments,
// enforcing the minimum-notice window.
func (t *DefaultTransactor) CancelAppointment(ctx context.Context, businessID, appointmentID string, identity models.Identity) error {
	now := t.now()

	own, err := t.Appointments.FindUpcomingForIdentity(ctx, businessID, identity, now)
	if err != nil {
		return err
	}
	var target *models.Appointment
	for i := range own {
		if own[i].ID == appointmentID {
			target = &own[i]
			break
		}
	}
	if target == nil {
		// Distinguish why the id is not in the caller's active set.
		appt, err := t.Appointments.GetByID(ctx, businessID, appointmentID)
		if err != nil {
			return err
		}
		switch {
		case appt == nil:
			return NewFault(FaultNotFound, "appointment not found")
		case appt.Status == models.AppointmentCancelled:
			return NewFault(FaultAlreadyCancelled, "appointment is already cancelled")
		case appt.StartsAt.Before(now):
			return NewFault(FaultPast, "appointment is in the past")
		default:
			return NewFault(FaultNotOwned, "appointment belongs to someone else")
		}
	}

	if target.StartsAt.Sub(now) < t.CancelNotice {
		return NewFault(FaultTooClose, "appointment starts too soon to cancel")
	}

	return t.Appointments.Cancel(ctx, target.ID)
}

func (t *DefaultTransactor) publishOutcome(ctx context.Context, outcome models.BookingOutcome) {
	if t.Notifier == nil {
		return
	}
	if err := t.Notifier.PublishBookingOutcome(ctx, outcome); err != nil {
		utils.GetLogger().Warn("failed to publish booking outcome",
			zap.String("businessId", outcome.BusinessID), zap.Error(err))
	}
}

func containsSlot(slots []string, slot string) bool {
	for _, s := range slots {
		if s == slot {
			return true
		}
	}
	return false
}
