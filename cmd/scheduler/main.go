package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"taskminder/internal/app/deps"
	"taskminder/internal/app/services"
	"taskminder/internal/core/domain/logging"
	"taskminder/internal/scheduler"
	"time"
)

func main() {
	deps, shutdownDeps := deps.InitDeps()
	log := deps.Logger
	defer shutdownDeps()

	services := services.InitServices(deps)

	sched := scheduler.New(log, services.DispatchDueReminders, deps.Config.SchedulerInterval)

	stopCh, closeCh := createChannel()
	defer closeCh()

	log.Info(
		context.Background(),
		"Starting reminder dispatch scheduler.",
		logging.Entry("intervalSeconds", deps.Config.SchedulerInterval.Seconds()),
		logging.Entry("lookaheadMinutes", deps.Config.SchedulerLookahead.Minutes()),
	)
	sched.Start()

	<-stopCh
	log.Info(context.Background(), "Stopping reminder dispatch scheduler.")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()
	if err := sched.Stop(ctx); err != nil {
		log.Error(context.Background(), "Scheduler did not stop in time.", logging.Entry("err", err))
	} else {
		log.Info(context.Background(), "Scheduler stopped.")
	}
}

func createChannel() (chan os.Signal, func()) {
	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	return stopCh, func() {
		close(stopCh)
	}
}
