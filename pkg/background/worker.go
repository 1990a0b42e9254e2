package background

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"

	"dispatch/pkg/logger"

	"github.com/juju/clock"
	"golang.org/x/sync/errgroup"
)

type Worker struct {
	log   workerLogger
	clock clock.Clock
	tasks []Task
	wg    sync.WaitGroup
}

// New прогревает задачи: каждая выполняется один раз синхронно, ошибка или паника
// прогрева возвращается сразу. Затем задачи крутятся в фоне до отмены ctx.
func New(ctx context.Context, log workerLogger, clk clock.Clock, tasks []Task) (*Worker, error) {
	worker := &Worker{
		log:   log.With(logger.NewField("component", "background_worker")),
		clock: clk,
		tasks: tasks,
	}

	initGroup, initCtx := errgroup.WithContext(ctx)
	for _, task := range tasks {
		initGroup.Go(func() error {
			worker.log.Info("task warmup", logger.NewField("task", task.Info()))
			return worker.run(initCtx, task)
		})
	}

	if err := initGroup.Wait(); err != nil {
		return nil, fmt.Errorf("warm up tasks: %w", err)
	}

	for _, task := range tasks {
		worker.wg.Add(1)
		go func() {
			defer worker.wg.Done()
			worker.loop(ctx, task)
		}()
	}

	return worker, nil
}

// Wait ждет остановки всех циклов после отмены ctx.
func (w *Worker) Wait() {
	w.wg.Wait()
}

func (w *Worker) loop(ctx context.Context, task Task) {
	taskLog := w.log.With(logger.NewField("task", task.Info()))

	ttl := task.TTL()
	if ttl <= 0 {
		taskLog.Warn("invalid ttl, periodic run skipped", logger.NewField("ttl", ttl.String()))
		return
	}
	taskLog.Info("periodic run started", logger.NewField("ttl", ttl.String()))

	for {
		select {
		case <-ctx.Done():
			taskLog.Info("periodic run stopped")
			return
		case <-w.clock.After(ttl):
			if err := w.run(ctx, task); err != nil {
				taskLog.Error("task failed", logger.NewField("error", err))
			}
		}
	}
}

// run паника задачи превращается в ошибку.
func (w *Worker) run(ctx context.Context, task Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task %q panicked: %v", task.Info(), r)
			w.log.Error("task panic",
				logger.NewField("task", task.Info()),
				logger.NewField("recover", r),
				logger.NewField("stack", string(debug.Stack())),
			)
		}
	}()

	return task.Do(ctx)
}
