package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"randevio/config"
	"randevio/models"
	"randevio/services/notification"

	"github.com/hibiken/asynq"
)

// InitReminderWorker runs the async reminder worker in background.
func InitReminderWorker(notifSvc notification.NotificationService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(notification.TypeReminderSend, handleReminderTask(notifSvc))

	go func() {
		log.Println("[ReminderWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleReminderTask(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderHandler] invalid payload: %v", err)
			return err
		}

		if err := notifSvc.SendAppointmentReminder(ctx, p); err != nil {
			log.Printf("[ReminderHandler] failed to send reminder for %s: %v", p.AppointmentID, err)
			return err
		}
		return nil
	}
}
