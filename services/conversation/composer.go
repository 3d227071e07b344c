// File: services/conversation/composer.go
package conversation

import (
	"fmt"
	"strconv"
	"time"

	"randevio/models"
	"randevio/utils"
)

// Stable option ids offered by the composer and consumed by the engine.
const (
	optAppointment       = "appointment"
	optQueue             = "queue"
	optMyAppointments    = "my_appointments"
	optCancel            = "cancel"
	optConfirm           = "confirm"
	optBack              = "back"
	optBackEmployee      = "back_employee"
	optBackDate          = "back_date"
	optBackTime          = "back_time"
	optOtherDay          = "other_day"
	optOtherEmployee     = "other_employee"
	optMenu              = "menu"
	optCancelAppointment = "cancel_appointment"
	optKeep              = "keep"
	optExit              = "exit"
	optConfirmCancel     = "confirm_cancel"
)

func withNotice(notice, body string) string {
	if notice == "" {
		return body
	}
	return notice + "\n\n" + body
}

func welcomeReply(notice string) *models.Reply {
	return models.ListReply(
		withNotice(notice, "Welcome! What would you like to do?"),
		"Choose",
		models.ReplySection{Title: "Options", Rows: []models.ReplyOption{
			{ID: optAppointment, Title: "Book an appointment"},
			{ID: optQueue, Title: "Join today's queue"},
			{ID: optMyAppointments, Title: "My appointments"},
			{ID: optCancel, Title: "Exit"},
		}},
	)
}

func employeesReply(notice string, employees []models.Employee) *models.Reply {
	rows := make([]models.ReplyOption, 0, len(employees))
	for _, e := range employees {
		rows = append(rows, models.ReplyOption{ID: e.ID, Title: e.FullName()})
	}
	return models.ListReply(
		withNotice(notice, "Who would you like to book with?"),
		"Staff",
		models.ReplySection{Title: "Available staff", Rows: rows},
	)
}

func datesReply(notice string, now time.Time, maxOffset int) *models.Reply {
	var sections []models.ReplySection
	var rows []models.ReplyOption
	for offset := 0; offset <= maxOffset; offset++ {
		day := now.AddDate(0, 0, offset)
		var title string
		switch offset {
		case 0:
			title = "Today (" + day.Format("02 Jan") + ")"
		case 1:
			title = "Tomorrow (" + day.Format("02 Jan") + ")"
		default:
			title = day.Format("Monday 02 Jan")
		}
		rows = append(rows, models.ReplyOption{ID: strconv.Itoa(offset), Title: title})
		if len(rows) == models.MaxRowsPerSection {
			sections = append(sections, models.ReplySection{Title: "Dates", Rows: rows})
			rows = nil
		}
	}
	if len(rows) > 0 {
		sections = append(sections, models.ReplySection{Title: "Dates", Rows: rows})
	}
	return models.ListReply(withNotice(notice, "Which day works for you?"), "Pick a day", sections...)
}

func slotsReply(notice, dateStr string, slots []string) *models.Reply {
	var sections []models.ReplySection
	var rows []models.ReplyOption
	for _, slot := range slots {
		rows = append(rows, models.ReplyOption{ID: slot, Title: slot})
		if len(rows) == models.MaxRowsPerSection {
			sections = append(sections, models.ReplySection{Title: "Times", Rows: rows})
			rows = nil
		}
	}
	if len(rows) > 0 {
		sections = append(sections, models.ReplySection{Title: "Times", Rows: rows})
	}
	body := fmt.Sprintf("Available times for %s:", dateStr)
	return models.ListReply(withNotice(notice, body), "Pick a time", sections...)
}

func noSlotsReply(notice, dateStr string) *models.Reply {
	body := fmt.Sprintf("No free times left on %s.", dateStr)
	return models.ButtonsReply(
		withNotice(notice, body),
		models.ReplyOption{ID: optOtherDay, Title: "Another day"},
		models.ReplyOption{ID: optOtherEmployee, Title: "Another person"},
		models.ReplyOption{ID: optMenu, Title: "Main menu"},
	)
}

func confirmReply(employeeName, dateStr, slot string) *models.Reply {
	body := fmt.Sprintf("Confirm your appointment:\n%s\n%s at %s", employeeName, dateStr, slot)
	return models.ListReply(
		body,
		"Choose",
		models.ReplySection{Title: "Actions", Rows: []models.ReplyOption{
			{ID: optConfirm, Title: "Confirm"},
			{ID: optBackTime, Title: "Change time"},
			{ID: optBackDate, Title: "Change day"},
			{ID: optBackEmployee, Title: "Change person"},
			{ID: optCancel, Title: "Cancel"},
		}},
	)
}

func queueConfirmReply(employeeName string) *models.Reply {
	body := "Join today's queue?"
	if employeeName != "" {
		body = fmt.Sprintf("Join today's queue for %s?", employeeName)
	}
	return models.ButtonsReply(
		body,
		models.ReplyOption{ID: optConfirm, Title: "Join"},
		models.ReplyOption{ID: optCancel, Title: "Cancel"},
	)
}

func conflictReply(notice string) *models.Reply {
	return models.ButtonsReply(
		withNotice(notice, "What would you like to do instead?"),
		models.ReplyOption{ID: optMyAppointments, Title: "My appointments"},
		models.ReplyOption{ID: optOtherDay, Title: "Another day"},
		models.ReplyOption{ID: optMenu, Title: "Main menu"},
	)
}

func myAppointmentsReply(notice string, appts []models.Appointment) *models.Reply {
	rows := make([]models.ReplyOption, 0, len(appts))
	for _, a := range appts {
		rows = append(rows, models.ReplyOption{
			ID:    a.ID,
			Title: a.DateString() + " " + a.SlotString(),
		})
	}
	return models.ListReply(
		withNotice(notice, "Your upcoming appointments. Pick one to manage it."),
		"Appointments",
		models.ReplySection{Title: "Upcoming", Rows: rows},
	)
}

func appointmentActionReply(appt *models.Appointment) *models.Reply {
	body := fmt.Sprintf("Appointment on %s at %s.", appt.DateString(), appt.SlotString())
	return models.ButtonsReply(
		body,
		models.ReplyOption{ID: optCancelAppointment, Title: "Cancel it"},
		models.ReplyOption{ID: optKeep, Title: "Keep it"},
		models.ReplyOption{ID: optExit, Title: "Main menu"},
	)
}

func confirmCancelReply(appt *models.Appointment) *models.Reply {
	body := fmt.Sprintf("Cancel your appointment on %s at %s?", appt.DateString(), appt.SlotString())
	return models.ButtonsReply(
		body,
		models.ReplyOption{ID: optConfirmCancel, Title: "Yes, cancel"},
		models.ReplyOption{ID: optBack, Title: "Go back"},
	)
}

func appointmentBookedReply(appt *models.Appointment) *models.Reply {
	if appt.ApprovalStatus == models.ApprovalPending {
		return models.TextReply(fmt.Sprintf(
			"Your request for %s at %s was received and is awaiting approval. We'll let you know.",
			appt.DateString(), appt.SlotString()))
	}
	return models.TextReply(fmt.Sprintf(
		"Booked! See you on %s at %s.", appt.DateString(), appt.SlotString()))
}

func queueJoinedReply(entry *models.QueueEntry, already bool) *models.Reply {
	if already {
		return models.TextReply(fmt.Sprintf(
			"You're already in today's queue. Your number is %d.", entry.Position))
	}
	return models.TextReply(fmt.Sprintf(
		"You're in! Your queue number for today is %d.", entry.Position))
}

func goodbyeReply() *models.Reply {
	return models.TextReply("Alright, cancelled. Write anytime to start again.")
}

func expiredNotice() string {
	return "Your previous session expired, so we're starting fresh."
}

// slotDateNotice renders a day for notices, e.g. "28 Aug".
func slotDateNotice(dateStr string) string {
	day, err := utils.ParseDate(dateStr)
	if err != nil {
		return dateStr
	}
	return day.Format("02 Jan")
}
