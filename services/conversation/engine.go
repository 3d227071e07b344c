// File: services/conversation/engine.go
package conversation

import (
	"context"
	"strconv"

	"randevio/models"
	"randevio/services/booking"
	"randevio/utils"

	"github.com/google/uuid"
)

// Handle processes one inbound event and returns the reply. The session row
// is created on first contact, reset on expiry and persisted at the end of
// every turn. State-machine transitions themselves never fail; only storage
// and transactor calls can surface errors.
func (e *DefaultConversationEngine) Handle(ctx context.Context, businessID string, waUser *models.WaUser, in *models.InboundMessage) (*models.Reply, error) {
	now := e.now()

	sess, err := e.Sessions.Get(ctx, businessID, waUser.WaID)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		sess = &models.Session{
			ID:         uuid.NewString(),
			BusinessID: businessID,
			WaID:       waUser.WaID,
			State:      models.StateWelcome,
		}
		if err := e.Sessions.Insert(ctx, sess); err != nil {
			return nil, err
		}
	} else if sess.Expired(now) {
		sess.State = models.StateWelcome
		sess.Context = models.SessionContext{TimedOut: true}
	}

	// DONE and CANCELLED end a turn, not the conversation; the next inbound
	// message restarts from WELCOME before being interpreted.
	if sess.State == models.StateDone || sess.State == models.StateCancelled {
		sess.State = models.StateWelcome
		sess.Context = models.SessionContext{}
	}

	notice := ""
	if sess.Context.TimedOut {
		notice = expiredNotice()
		sess.Context.TimedOut = false
	}

	var reply *models.Reply
	if in.Selection != nil {
		reply, err = e.handleSelection(ctx, sess, waUser, in.Selection, notice)
	} else {
		reply, err = e.handleText(ctx, sess, waUser, in.Text, notice)
	}
	if err != nil {
		return nil, err
	}

	sess.LastMessageAt = now
	sess.ExpiresAt = now.Add(e.SessionTTL)
	if err := e.Sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	return reply, nil
}

// handleText runs the free-text priority dispatcher: the fixed command
// vocabulary wins at any state; unrecognized text re-renders the current
// prompt unchanged.
func (e *DefaultConversationEngine) handleText(ctx context.Context, sess *models.Session, waUser *models.WaUser, text, notice string) (*models.Reply, error) {
	cmd, ok := matchCommand(text)
	if !ok {
		return e.render(ctx, sess, waUser, notice)
	}
	switch cmd {
	case cmdMenu:
		sess.State = models.StateWelcome
		sess.Context = models.SessionContext{}
		return welcomeReply(notice), nil
	case cmdMyAppointments:
		return e.enterMyAppointments(ctx, sess, waUser, notice)
	case cmdBack:
		target, ok := backTarget[sess.State]
		if !ok {
			target = models.StateWelcome
		}
		sess.State = target
		return e.render(ctx, sess, waUser, notice)
	}
	return e.render(ctx, sess, waUser, notice)
}

func (e *DefaultConversationEngine) handleSelection(ctx context.Context, sess *models.Session, waUser *models.WaUser, sel *models.Selection, notice string) (*models.Reply, error) {
	switch sess.State {
	case models.StateWelcome:
		return e.fromWelcome(ctx, sess, waUser, sel, notice)
	case models.StateEmployeeSelect:
		return e.fromEmployeeSelect(ctx, sess, waUser, sel, notice)
	case models.StateDateSelect:
		return e.fromDateSelect(ctx, sess, waUser, sel, notice)
	case models.StateTimeSelect:
		return e.fromTimeSelect(ctx, sess, waUser, sel, notice)
	case models.StateConfirm:
		return e.fromConfirm(ctx, sess, waUser, sel, notice)
	case models.StateQueueConfirm:
		return e.fromQueueConfirm(ctx, sess, waUser, sel, notice)
	case models.StateMyAppointments:
		return e.fromMyAppointments(ctx, sess, waUser, sel, notice)
	case models.StateAppointmentAction:
		return e.fromAppointmentAction(ctx, sess, waUser, sel, notice)
	case models.StateConfirmCancel:
		return e.fromConfirmCancel(ctx, sess, waUser, sel, notice)
	}
	sess.State = models.StateWelcome
	return welcomeReply(notice), nil
}

func (e *DefaultConversationEngine) fromWelcome(ctx context.Context, sess *models.Session, waUser *models.WaUser, sel *models.Selection, notice string) (*models.Reply, error) {
	switch sel.ID {
	case optAppointment:
		sess.Context = models.SessionContext{Intent: models.IntentAppointment}
		sess.State = models.StateEmployeeSelect
		return e.render(ctx, sess, waUser, notice)
	case optQueue:
		settings, err := e.Businesses.GetBookingSettings(ctx, sess.BusinessID)
		if err != nil {
			return nil, err
		}
		sess.Context = models.SessionContext{Intent: models.IntentQueue}
		if settings.QueueRequiresEmployee {
			sess.State = models.StateEmployeeSelect
			return e.render(ctx, sess, waUser, notice)
		}
		sess.State = models.StateQueueConfirm
		return queueConfirmReply(""), nil
	case optMyAppointments:
		return e.enterMyAppointments(ctx, sess, waUser, notice)
	case optCancel:
		sess.State = models.StateCancelled
		sess.Context = models.SessionContext{}
		return goodbyeReply(), nil
	}
	return welcomeReply(notice), nil
}

func (e *DefaultConversationEngine) fromEmployeeSelect(ctx context.Context, sess *models.Session, waUser *models.WaUser, sel *models.Selection, notice string) (*models.Reply, error) {
	employee, err := e.Employees.GetByID(ctx, sess.BusinessID, sel.ID)
	if err != nil {
		return nil, err
	}
	if employee == nil || !employee.IsActive {
		return e.render(ctx, sess, waUser, notice)
	}
	sess.Context.SelectedEmployeeID = employee.ID
	if sess.Context.Intent == models.IntentQueue {
		sess.State = models.StateQueueConfirm
		return queueConfirmReply(employee.FullName()), nil
	}
	sess.State = models.StateDateSelect
	return e.render(ctx, sess, waUser, notice)
}

func (e *DefaultConversationEngine) fromDateSelect(ctx context.Context, sess *models.Session, waUser *models.WaUser, sel *models.Selection, notice string) (*models.Reply, error) {
	// Quick actions offered by the same-day-conflict notice land here.
	switch sel.ID {
	case optMyAppointments:
		return e.enterMyAppointments(ctx, sess, waUser, notice)
	case optOtherDay:
		return e.render(ctx, sess, waUser, notice)
	case optMenu:
		sess.State = models.StateWelcome
		sess.Context = models.SessionContext{}
		return welcomeReply(notice), nil
	}

	offset, err := strconv.Atoi(sel.ID)
	if err != nil || offset < 0 || offset > e.MaxDateOffset {
		return e.render(ctx, sess, waUser, notice)
	}
	sess.Context.SelectedDate = utils.DateString(e.now().AddDate(0, 0, offset))
	sess.State = models.StateTimeSelect
	return e.render(ctx, sess, waUser, notice)
}

func (e *DefaultConversationEngine) fromTimeSelect(ctx context.Context, sess *models.Session, waUser *models.WaUser, sel *models.Selection, notice string) (*models.Reply, error) {
	switch sel.ID {
	case optOtherDay:
		sess.State = models.StateDateSelect
		return e.render(ctx, sess, waUser, notice)
	case optOtherEmployee:
		sess.State = models.StateEmployeeSelect
		return e.render(ctx, sess, waUser, notice)
	case optMenu:
		sess.State = models.StateWelcome
		sess.Context = models.SessionContext{}
		return welcomeReply(notice), nil
	}

	minutes, err := utils.ParseClock(sel.ID)
	if err != nil {
		return e.render(ctx, sess, waUser, notice)
	}
	// Stored zero-padded so the commit-time comparison against availability
	// output is literal.
	sess.Context.SelectedSlot = utils.FormatClock(minutes)
	sess.State = models.StateConfirm
	return e.render(ctx, sess, waUser, notice)
}

func (e *DefaultConversationEngine) fromConfirm(ctx context.Context, sess *models.Session, waUser *models.WaUser, sel *models.Selection, notice string) (*models.Reply, error) {
	switch sel.ID {
	case optConfirm:
		return e.commitAppointment(ctx, sess, waUser)
	case optBackTime, optBack:
		sess.State = models.StateTimeSelect
		return e.render(ctx, sess, waUser, notice)
	case optBackDate:
		sess.State = models.StateDateSelect
		return e.render(ctx, sess, waUser, notice)
	case optBackEmployee:
		sess.State = models.StateEmployeeSelect
		return e.render(ctx, sess, waUser, notice)
	case optCancel:
		sess.State = models.StateCancelled
		sess.Context = models.SessionContext{}
		return goodbyeReply(), nil
	}
	return e.render(ctx, sess, waUser, notice)
}

func (e *DefaultConversationEngine) commitAppointment(ctx context.Context, sess *models.Session, waUser *models.WaUser) (*models.Reply, error) {
	ident, err := e.Resolver.ResolveWaUser(ctx, sess.BusinessID, waUser)
	if err != nil {
		return nil, err
	}

	appt, err := e.Transactor.CreateAppointment(ctx, booking.CreateAppointmentRequest{
		BusinessID: sess.BusinessID,
		EmployeeID: sess.Context.SelectedEmployeeID,
		Date:       sess.Context.SelectedDate,
		Slot:       sess.Context.SelectedSlot,
		WaUserID:   waUser.ID,
		Identity:   ident,
		Channel:    models.ChannelMessenger,
	})
	if err != nil {
		fault := booking.AsFault(err)
		if fault == nil {
			return nil, err
		}
		switch fault.Code {
		case booking.FaultExistingSameDay:
			sess.State = models.StateDateSelect
			return conflictReply("You already have an appointment on " + slotDateNotice(sess.Context.SelectedDate) + "."), nil
		case booking.FaultSlotUnavailable:
			sess.State = models.StateTimeSelect
			return e.render(ctx, sess, waUser, "Sorry, that time was just taken.")
		}
		sess.State = models.StateWelcome
		sess.Context = models.SessionContext{}
		return welcomeReply("Something went wrong with that booking. Let's start over."), nil
	}

	sess.State = models.StateDone
	sess.Context = models.SessionContext{}
	return appointmentBookedReply(appt), nil
}

func (e *DefaultConversationEngine) fromQueueConfirm(ctx context.Context, sess *models.Session, waUser *models.WaUser, sel *models.Selection, notice string) (*models.Reply, error) {
	switch sel.ID {
	case optConfirm:
		ident, err := e.Resolver.ResolveWaUser(ctx, sess.BusinessID, waUser)
		if err != nil {
			return nil, err
		}
		entry, err := e.Transactor.CreateQueueEntry(ctx, booking.CreateQueueEntryRequest{
			BusinessID: sess.BusinessID,
			EmployeeID: sess.Context.SelectedEmployeeID,
			WaUserID:   waUser.ID,
			Identity:   ident,
			Channel:    models.ChannelMessenger,
		})
		already := false
		if err != nil {
			fault := booking.AsFault(err)
			if fault == nil || fault.Code != booking.FaultAlreadyQueued || entry == nil {
				return nil, err
			}
			already = true
		}
		sess.State = models.StateDone
		sess.Context = models.SessionContext{}
		return queueJoinedReply(entry, already), nil
	case optCancel:
		sess.State = models.StateCancelled
		sess.Context = models.SessionContext{}
		return goodbyeReply(), nil
	}
	return e.render(ctx, sess, waUser, notice)
}

func (e *DefaultConversationEngine) fromMyAppointments(ctx context.Context, sess *models.Session, waUser *models.WaUser, sel *models.Selection, notice string) (*models.Reply, error) {
	appts, err := e.upcoming(ctx, sess.BusinessID, waUser)
	if err != nil {
		return nil, err
	}
	for i := range appts {
		if appts[i].ID == sel.ID {
			sess.Context.CancelTargetID = appts[i].ID
			sess.State = models.StateAppointmentAction
			return appointmentActionReply(&appts[i]), nil
		}
	}
	return e.render(ctx, sess, waUser, notice)
}

func (e *DefaultConversationEngine) fromAppointmentAction(ctx context.Context, sess *models.Session, waUser *models.WaUser, sel *models.Selection, notice string) (*models.Reply, error) {
	switch sel.ID {
	case optCancelAppointment:
		sess.State = models.StateConfirmCancel
		return e.render(ctx, sess, waUser, notice)
	case optKeep:
		return e.enterMyAppointments(ctx, sess, waUser, notice)
	case optExit:
		sess.State = models.StateWelcome
		sess.Context = models.SessionContext{}
		return welcomeReply(notice), nil
	}
	return e.render(ctx, sess, waUser, notice)
}

func (e *DefaultConversationEngine) fromConfirmCancel(ctx context.Context, sess *models.Session, waUser *models.WaUser, sel *models.Selection, notice string) (*models.Reply, error) {
	switch sel.ID {
	case optConfirmCancel:
		ident, err := e.Resolver.ResolveWaUser(ctx, sess.BusinessID, waUser)
		if err != nil {
			return nil, err
		}
		err = e.Transactor.CancelAppointment(ctx, sess.BusinessID, sess.Context.CancelTargetID, ident)
		result := cancelResultNotice(err)
		if result == "" {
			return nil, err
		}
		sess.State = models.StateWelcome
		sess.Context = models.SessionContext{}
		return welcomeReply(result), nil
	case optBack:
		sess.State = models.StateAppointmentAction
		return e.render(ctx, sess, waUser, notice)
	}
	return e.render(ctx, sess, waUser, notice)
}

// cancelResultNotice maps a cancellation outcome to the user-facing notice.
// Empty string means the error was fatal and must propagate.
func cancelResultNotice(err error) string {
	if err == nil {
		return "Your appointment was cancelled."
	}
	fault := booking.AsFault(err)
	if fault == nil {
		return ""
	}
	switch fault.Code {
	case booking.FaultTooClose:
		return "That appointment starts too soon to cancel here. Please contact the business directly."
	case booking.FaultAlreadyCancelled:
		return "That appointment was already cancelled."
	case booking.FaultPast:
		return "That appointment is already in the past."
	default:
		return "We couldn't find that appointment."
	}
}

// enterMyAppointments moves to the appointment list, degrading to WELCOME
// when the caller has nothing upcoming.
func (e *DefaultConversationEngine) enterMyAppointments(ctx context.Context, sess *models.Session, waUser *models.WaUser, notice string) (*models.Reply, error) {
	appts, err := e.upcoming(ctx, sess.BusinessID, waUser)
	if err != nil {
		return nil, err
	}
	if len(appts) == 0 {
		sess.State = models.StateWelcome
		return welcomeReply(withNotice(notice, "You have no upcoming appointments.")), nil
	}
	sess.State = models.StateMyAppointments
	return myAppointmentsReply(notice, appts), nil
}

func (e *DefaultConversationEngine) upcoming(ctx context.Context, businessID string, waUser *models.WaUser) ([]models.Appointment, error) {
	ident, err := e.Resolver.ResolveWaUser(ctx, businessID, waUser)
	if err != nil {
		return nil, err
	}
	return e.Appointments.FindUpcomingForIdentity(ctx, businessID, ident, e.now())
}

// render produces the prompt for the session's current state. Used both for
// forward transitions and for re-rendering after unrecognized input.
func (e *DefaultConversationEngine) render(ctx context.Context, sess *models.Session, waUser *models.WaUser, notice string) (*models.Reply, error) {
	switch sess.State {
	case models.StateEmployeeSelect:
		employees, err := e.Employees.GetActive(ctx, sess.BusinessID)
		if err != nil {
			return nil, err
		}
		if len(employees) == 0 {
			sess.State = models.StateWelcome
			sess.Context = models.SessionContext{}
			return welcomeReply(withNotice(notice, "No staff are available for booking right now.")), nil
		}
		return employeesReply(notice, employees), nil

	case models.StateDateSelect:
		return datesReply(notice, e.now(), e.MaxDateOffset), nil

	case models.StateTimeSelect:
		slots, err := e.Availability.Slots(ctx, sess.BusinessID, sess.Context.SelectedEmployeeID, sess.Context.SelectedDate)
		if err != nil {
			return nil, err
		}
		if len(slots) == 0 {
			return noSlotsReply(notice, sess.Context.SelectedDate), nil
		}
		return slotsReply(notice, sess.Context.SelectedDate, slots), nil

	case models.StateConfirm:
		employee, err := e.Employees.GetByID(ctx, sess.BusinessID, sess.Context.SelectedEmployeeID)
		if err != nil {
			return nil, err
		}
		name := ""
		if employee != nil {
			name = employee.FullName()
		}
		return confirmReply(name, sess.Context.SelectedDate, sess.Context.SelectedSlot), nil

	case models.StateQueueConfirm:
		name := ""
		if sess.Context.SelectedEmployeeID != "" {
			employee, err := e.Employees.GetByID(ctx, sess.BusinessID, sess.Context.SelectedEmployeeID)
			if err != nil {
				return nil, err
			}
			if employee != nil {
				name = employee.FullName()
			}
		}
		return queueConfirmReply(name), nil

	case models.StateMyAppointments:
		return e.enterMyAppointments(ctx, sess, waUser, notice)

	case models.StateAppointmentAction, models.StateConfirmCancel:
		appt, err := e.Appointments.GetByID(ctx, sess.BusinessID, sess.Context.CancelTargetID)
		if err != nil {
			return nil, err
		}
		if appt == nil {
			return e.enterMyAppointments(ctx, sess, waUser, notice)
		}
		if sess.State == models.StateConfirmCancel {
			return confirmCancelReply(appt), nil
		}
		return appointmentActionReply(appt), nil
	}

	sess.State = models.StateWelcome
	return welcomeReply(notice), nil
}
