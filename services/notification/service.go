// File: services/notification/service.go
package notification

import (
	"context"
	"encoding/json"
	"time"

	"randevio/config"
	"randevio/models"
	"randevio/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// TypeReminderSend is the asynq task type for appointment reminders.
const TypeReminderSend = "reminder:send"

// DefaultNotificationService implements NotificationService. Actual SMS/email
// delivery belongs to external collaborators; this layer publishes the
// structured events and schedules reminder tasks.
type DefaultNotificationService struct {
	AsynqClient *asynq.Client
}

// NewAsynqClient builds the task queue client from app configuration.
func NewAsynqClient() *asynq.Client {
	return asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
}

func (s *DefaultNotificationService) PublishBookingOutcome(ctx context.Context, outcome models.BookingOutcome) error {
	logger := utils.GetLogger()
	switch outcome.Kind {
	case models.OutcomeAppointment:
		logger.Info("appointment booked",
			zap.String("businessId", outcome.BusinessID),
			zap.String("appointmentId", outcome.Appointment.ID),
			zap.String("channel", outcome.SourceChannel),
			zap.Bool("autoApproved", outcome.AutoApproved))
		if outcome.AutoApproved {
			return s.ScheduleAppointmentReminder(ctx, outcome.Appointment)
		}
	case models.OutcomeQueue:
		logger.Info("queue entry created",
			zap.String("businessId", outcome.BusinessID),
			zap.String("entryId", outcome.QueueEntry.ID),
			zap.Int("position", outcome.QueueEntry.Position),
			zap.String("channel", outcome.SourceChannel))
	}
	return nil
}

// ScheduleAppointmentReminder enqueues a reminder task to fire ahead of the
// appointment start. Appointments starting sooner than the offset get no
// reminder.
func (s *DefaultNotificationService) ScheduleAppointmentReminder(ctx context.Context, appt *models.Appointment) error {
	if s.AsynqClient == nil {
		return nil
	}

	offset := time.Duration(config.AppConfig.ReminderOffsetHours) * time.Hour
	fireAt := appt.StartsAt.Add(-offset)
	if !fireAt.After(time.Now()) {
		return nil
	}

	payload, err := json.Marshal(models.ReminderPayload{
		AppointmentID: appt.ID,
		BusinessID:    appt.BusinessID,
		StartsAt:      appt.StartsAt.Format(time.RFC3339),
		FireDate:      fireAt.Format(time.RFC3339),
	})
	if err != nil {
		return err
	}

	task := asynq.NewTask(TypeReminderSend, payload)
	_, err = s.AsynqClient.EnqueueContext(ctx, task, asynq.ProcessAt(fireAt))
	return err
}

func (s *DefaultNotificationService) SendAppointmentReminder(ctx context.Context, payload models.ReminderPayload) error {
	// Delivery transport (SMS / channel message) is a collaborator; the
	// reminder event is logged as the handoff point.
	utils.GetLogger().Info("appointment reminder due",
		zap.String("businessId", payload.BusinessID),
		zap.String("appointmentId", payload.AppointmentID),
		zap.String("startsAt", payload.StartsAt))
	return nil
}
