package app

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// IdlePurger очищает брошенные диалоги
type IdlePurger interface {
	PurgeIdle(maxIdle time.Duration) int
}

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	purger        IdlePurger
	idleTimeout   time.Duration
	purgeInterval time.Duration
	logger        *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	// mu связывает проверку stopped с wg.Add, чтобы Add не шёл параллельно Wait
	mu      sync.Mutex
	stopped bool
}

// NewScheduler создаёт новый планировщик
func NewScheduler(purger IdlePurger, idleTimeout, purgeInterval time.Duration, logger *zap.Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		purger:        purger,
		idleTimeout:   idleTimeout,
		purgeInterval: purgeInterval,
		logger:        logger,
		ctx:           ctx,
		cancel:        cancel,
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler")

	if s.purger == nil || s.purgeInterval <= 0 {
		return
	}

	if !s.track() {
		return
	}
	go func() {
		defer s.wg.Done()
		s.runPurgeTask(ctx)
	}()
}

// Stop отменяет отложенные задачи и ждёт завершения запущенных
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.stopped {
		s.stopped = true
		s.logger.Info("Stopping background scheduler")
		s.cancel()
	}
	s.mu.Unlock()

	s.wg.Wait()
}

// track регистрирует горутину, если планировщик ещё не остановлен
func (s *Scheduler) track() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return false
	}
	s.wg.Add(1)
	return true
}

// After выполняет fn один раз через delay.
// После Stop задача не запускается.
func (s *Scheduler) After(delay time.Duration, name string, fn func(ctx context.Context)) {
	if !s.track() {
		s.logger.Debug("Scheduler stopped, task dropped", zap.String("task", name))
		return
	}

	go func() {
		defer s.wg.Done()

		timer := time.NewTimer(delay)
		defer timer.Stop()

		select {
		case <-timer.C:
		case <-s.ctx.Done():
			s.logger.Debug("Delayed task cancelled", zap.String("task", name))
			return
		}

		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("Delayed task panicked",
					zap.String("task", name),
					zap.Any("panic", r))
			}
		}()
		fn(s.ctx)
	}()
}

// runPurgeTask периодически удаляет диалоги без активности
func (s *Scheduler) runPurgeTask(ctx context.Context) {
	ticker := time.NewTicker(s.purgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.purge()
		case <-s.ctx.Done():
			s.logger.Info("State purge task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("State purge task cancelled")
			return
		}
	}
}

func (s *Scheduler) purge() {
	if n := s.purger.PurgeIdle(s.idleTimeout); n > 0 {
		s.logger.Info("Purged idle dialog states",
			zap.Int("count", n),
			zap.Duration("idle_timeout", s.idleTimeout))
	}
}
