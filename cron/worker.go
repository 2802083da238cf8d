package cron

import (
	"context"
	"log"
	"time"

	"autoshop/config"
	intervalRepo "autoshop/database/repository/interval"
	"autoshop/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeTimerSweep = "timer:sweep"

// InitTimerSweepWorker runs the async worker in background. The sweep
// auto-completes employee timers left open past the configured maximum
// shift length, so a forgotten stop never blocks the next timer start
// forever.
func InitTimerSweepWorker(repo intervalRepo.IntervalRepository) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 2,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeTimerSweep, handleTimerSweep(repo))

	go func() {
		log.Println("[TimerSweep] starting async worker...")
		if err := srv.Run(mux); err != nil {
			log.Fatalf("[TimerSweep] failed to start worker: %v", err)
		}
	}()

	scheduler := asynq.NewScheduler(redisOpts, &asynq.SchedulerOpts{})
	if _, err := scheduler.Register("@every 10m", asynq.NewTask(TypeTimerSweep, nil)); err != nil {
		log.Fatalf("[TimerSweep] failed to register sweep schedule: %v", err)
	}
	go func() {
		if err := scheduler.Run(); err != nil {
			log.Fatalf("[TimerSweep] failed to start scheduler: %v", err)
		}
	}()
}

func handleTimerSweep(repo intervalRepo.IntervalRepository) asynq.HandlerFunc {
	return func(ctx context.Context, _ *asynq.Task) error {
		logger := utils.GetLogger()
		maxShift := time.Duration(config.AppConfig.MaxShiftHours) * time.Hour
		cutoff := time.Now().UTC().Add(-maxShift)

		stale, err := repo.ListOpenTimersOlderThan(ctx, cutoff)
		if err != nil {
			logger.Error("timer sweep: listing stale timers failed", zap.Error(err))
			return err
		}

		for _, iv := range stale {
			// Close at start+maxShift, not now: the tail after the cap is
			// not verifiable work.
			end := iv.Start.Add(maxShift)
			if err := repo.Complete(ctx, iv.ID, end); err != nil {
				logger.Error("timer sweep: auto-complete failed",
					zap.String("intervalID", iv.ID), zap.Error(err))
				continue
			}
			logger.Info("timer sweep: auto-completed stale timer",
				zap.String("intervalID", iv.ID),
				zap.String("employeeID", iv.OwnerID),
				zap.Time("closedAt", end))
		}
		return nil
	}
}
