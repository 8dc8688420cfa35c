package lock

import (
	"context"
	"hr-payroll-backend/lib/utils/apperror"
	"sync"
	"time"
)

var ErrBusy = apperror.Conflict("операция уже выполняется, повторите позже")

var locks = &namedLocks{slots: map[string]chan struct{}{}}

// namedLocks блокировки по имени, слот с буфером 1 занят пока выполняется код
type namedLocks struct {
	mu    sync.Mutex
	slots map[string]chan struct{}
}

func (l *namedLocks) slot(key string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	slot, ok := l.slots[key]
	if !ok {
		slot = make(chan struct{}, 1)
		l.slots[key] = slot
	}
	return slot
}

func (l *namedLocks) acquire(ctx context.Context, key string, wait time.Duration) (release func(), ok bool) {
	slot := l.slot(key)
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case slot <- struct{}{}:
		return func() { <-slot }, true
	case <-timer.C:
		return nil, false
	case <-ctx.Done():
		return nil, false
	}
}

// Run выполняет safeCode под именованной блокировкой, ожидая её освобождения не дольше wait.
// Если блокировку получить не удалось, возвращается ErrBusy
func Run(ctx context.Context, key string, wait time.Duration, safeCode func() error) error {
	release, ok := locks.acquire(ctx, key, wait)
	if !ok {
		return ErrBusy
	}
	defer release()
	return safeCode()
}
