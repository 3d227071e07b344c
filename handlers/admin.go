// File: handlers/admin.go
package handlers

import (
	"net/http"
	"time"

	appointmentRepo "randevio/database/repository/appointment"
	queueRepo "randevio/database/repository/queue"
	"randevio/models"
	"randevio/services/notification"
	"randevio/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler serves the business portal endpoints. The JWT middleware has
// already resolved the business id into the request context.
type AdminHandler struct {
	Appointments appointmentRepo.AppointmentRepository
	Queue        queueRepo.QueueRepository
	Notifier     notification.NotificationService
}

func adminBusinessID(c *gin.Context) string {
	return c.GetString("businessID")
}

// ListPendingAppointments returns appointments awaiting approval.
func (h *AdminHandler) ListPendingAppointments(c *gin.Context) {
	appts, err := h.Appointments.ListPending(c.Request.Context(), adminBusinessID(c))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "internal", "failed to list pending appointments")
		return
	}
	if appts == nil {
		appts = []models.Appointment{}
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}

// ApproveAppointment marks a pending appointment approved and schedules its
// reminder.
func (h *AdminHandler) ApproveAppointment(c *gin.Context) {
	now := time.Now()
	appt, err := h.Appointments.SetApproval(c.Request.Context(), adminBusinessID(c), c.Param("id"), models.ApprovalApproved, &now)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "internal", "failed to approve appointment")
		return
	}
	if appt == nil {
		utils.JSONError(c, http.StatusNotFound, "not_found", "appointment not found")
		return
	}

	if err := h.Notifier.ScheduleAppointmentReminder(c.Request.Context(), appt); err != nil {
		utils.GetLogger().Warn("failed to schedule reminder",
			zap.String("appointmentId", appt.ID), zap.Error(err))
	}
	c.JSON(http.StatusOK, gin.H{"appointment": appt})
}

// RejectAppointment rejects a pending appointment and cancels it so the slot
// frees up again.
func (h *AdminHandler) RejectAppointment(c *gin.Context) {
	appt, err := h.Appointments.SetApproval(c.Request.Context(), adminBusinessID(c), c.Param("id"), models.ApprovalRejected, nil)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "internal", "failed to reject appointment")
		return
	}
	if appt == nil {
		utils.JSONError(c, http.StatusNotFound, "not_found", "appointment not found")
		return
	}

	if err := h.Appointments.Cancel(c.Request.Context(), appt.ID); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "internal", "failed to release the slot")
		return
	}
	appt.Status = models.AppointmentCancelled
	c.JSON(http.StatusOK, gin.H{"appointment": appt})
}

// ListQueue returns the queue for a date, defaulting to today.
func (h *AdminHandler) ListQueue(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = utils.DateString(time.Now())
	}
	entries, err := h.Queue.List(c.Request.Context(), adminBusinessID(c), date)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "internal", "failed to list queue")
		return
	}
	if entries == nil {
		entries = []models.QueueEntry{}
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "entries": entries})
}

var queueStatusTransitions = map[string]bool{
	models.QueueWaiting:   true,
	models.QueueCalled:    true,
	models.QueueServed:    true,
	models.QueueCancelled: true,
}

type queuePatchInput struct {
	Status string `json:"status"`
}

// UpdateQueueEntry moves a queue entry between statuses. Position never
// changes; numbering is append-only.
func (h *AdminHandler) UpdateQueueEntry(c *gin.Context) {
	var input queuePatchInput
	if err := c.ShouldBindJSON(&input); err != nil || !queueStatusTransitions[input.Status] {
		utils.JSONError(c, http.StatusBadRequest, "invalid_input", "status must be one of waiting, called, served, cancelled")
		return
	}

	entry, err := h.Queue.SetStatus(c.Request.Context(), adminBusinessID(c), c.Param("id"), input.Status)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "internal", "failed to update queue entry")
		return
	}
	if entry == nil {
		utils.JSONError(c, http.StatusNotFound, "not_found", "queue entry not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"entry": entry})
}
