package cron

import (
	"time"

	"skillbridge/config"
	"skillbridge/services/tasks"
	"skillbridge/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// RedisOpt is the asynq connection shared by the client and the worker.
func RedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// ReminderWorker runs the asynq server that delivers booking reminders.
type ReminderWorker struct {
	srv *asynq.Server
	mux *asynq.ServeMux
}

func NewReminderWorker(handler *tasks.ReminderHandler) *ReminderWorker {
	logger := utils.GetLogger().Sugar().Named("asynq")
	srv := asynq.NewServer(
		RedisOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
			Logger: logger,
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendReminder, handler.ProcessTask)
	return &ReminderWorker{srv: srv, mux: mux}
}

// Start runs the worker in the background, retrying start-up with backoff.
func (w *ReminderWorker) Start() {
	go func() {
		logger := utils.GetLogger()
		logger.Info("Starting reminder worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := w.srv.Start(w.mux)
			if err == nil {
				return
			}
			logger.Error("Reminder worker failed to start",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Error("Reminder worker disabled after max retry attempts")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
}

// Shutdown waits for in-flight reminders to finish.
func (w *ReminderWorker) Shutdown() {
	w.srv.Shutdown()
}
