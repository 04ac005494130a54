package dispatchduereminders

import (
	"context"
	"errors"
	"time"

	e "taskminder/internal/core/domain/errors"
	"taskminder/internal/core/domain/logging"
	"taskminder/internal/core/domain/reminder"
	"taskminder/internal/core/services"
)

// DISPATCH_TIMEOUT bounds a single send plus its sent-state write.
const DISPATCH_TIMEOUT = 30 * time.Second

type Input struct{}

type Result struct {
	SelectedCount int
	SentCount     int
	SkippedCount  int
	FailedCount   int
}

type service struct {
	log                logging.Logger
	reminderRepository reminder.Repository
	dispatcher         reminder.Dispatcher
	lookahead          time.Duration
	now                func() time.Time
}

func New(
	log logging.Logger,
	reminderRepository reminder.Repository,
	dispatcher reminder.Dispatcher,
	lookahead time.Duration,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if reminderRepository == nil {
		panic(e.NewNilArgumentError("reminderRepository"))
	}
	if dispatcher == nil {
		panic(e.NewNilArgumentError("dispatcher"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	if lookahead <= 0 {
		lookahead = reminder.DEFAULT_LOOKAHEAD
	}
	return &service{
		log:                log,
		reminderRepository: reminderRepository,
		dispatcher:         dispatcher,
		lookahead:          lookahead,
		now:                now,
	}
}

// Run performs one tick: select due reminders, dispatch each one, and
// commit the sent state per reminder. A failure of a single reminder
// never aborts the tick; only store-level failures do.
func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	now := s.now()
	due, err := s.reminderRepository.SelectDue(ctx, reminder.SelectDueInput{
		Now:       now,
		Lookahead: s.lookahead,
	})
	if err != nil {
		logging.Error(ctx, s.log, err)
		return result, err
	}

	result.SelectedCount = len(due)
	s.log.Info(
		ctx,
		"Got due reminders for dispatching.",
		logging.Entry("count", len(due)),
		logging.Entry("lookaheadMinutes", s.lookahead.Minutes()),
	)

	for _, rem := range due {
		if ctx.Err() != nil {
			s.log.Info(
				ctx,
				"Dispatching interrupted, reminders left for the next tick.",
				logging.Entry("sentCount", result.SentCount),
			)
			return result, nil
		}

		minutesRemaining := reminder.MinutesUntil(now, rem.At)
		if minutesRemaining < 0 {
			// Clock moved backwards between selection and dispatch.
			result.SkippedCount++
			s.log.Warning(
				ctx,
				"Reminder fire time is in the past, skipped.",
				logging.Entry("reminderID", rem.ID),
				logging.Entry("at", rem.At),
			)
			continue
		}

		s.log.Info(
			ctx,
			"Dispatching reminder.",
			logging.Entry("reminderID", rem.ID),
			logging.Entry("taskID", rem.TaskID),
			logging.Entry("method", rem.Method),
			logging.Entry("minutesRemaining", minutesRemaining),
		)

		// The send and its sent-state write form a pair that must not be
		// torn apart by a stop request: a delivered notification whose
		// MarkSent is refused stays eligible and gets delivered again.
		// The pair runs on its own bounded context; cancellation is
		// honored at the top of the loop instead.
		pairCtx, cancelPair := context.WithTimeout(context.Background(), DISPATCH_TIMEOUT)
		dispatchErr := s.dispatcher.Dispatch(pairCtx, rem)
		var markErr error
		if dispatchErr == nil {
			markErr = s.reminderRepository.MarkSent(pairCtx, rem.ID, now)
		}
		cancelPair()

		if dispatchErr != nil {
			result.FailedCount++
			if errors.Is(dispatchErr, reminder.ErrReminderOrphaned) {
				s.log.Warning(
					ctx,
					"Reminder is orphaned, left unsent.",
					logging.Entry("reminderID", rem.ID),
					logging.Entry("taskID", rem.TaskID),
				)
				continue
			}
			logging.Error(ctx, s.log, dispatchErr, logging.Entry("reminderID", rem.ID))
			continue
		}

		switch {
		case markErr == nil:
			result.SentCount++
		case errors.Is(markErr, reminder.ErrReminderAlreadySent):
			// Another writer won the race, the notification is handled.
			s.log.Info(ctx, "Reminder already marked as sent.", logging.Entry("reminderID", rem.ID))
		case errors.Is(markErr, reminder.ErrReminderDoesNotExist):
			s.log.Info(
				ctx,
				"Reminder deleted concurrently with dispatch.",
				logging.Entry("reminderID", rem.ID),
			)
		default:
			logging.Error(ctx, s.log, markErr, logging.Entry("reminderID", rem.ID))
			return result, markErr
		}
	}

	s.log.Info(
		ctx,
		"Due reminders dispatched.",
		logging.Entry("selected", result.SelectedCount),
		logging.Entry("sent", result.SentCount),
		logging.Entry("skipped", result.SkippedCount),
		logging.Entry("failed", result.FailedCount),
	)
	return result, nil
}
