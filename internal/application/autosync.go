package application

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/growth-partner/internal/domain/apperror"
	"github.com/oksasatya/growth-partner/internal/domain/entity"
)

const (
	DefaultAutoSyncInterval = 5 * time.Minute
	defaultAutoSyncBatch    = 100
)

var ErrAutoSyncRunning = errors.New("auto sync already running")

// AutoSync periodically drains the dirty-user set and writes snapshots.
// It is owned by whoever calls Start; Stop blocks until the loop has exited.
type AutoSync struct {
	svc      *SnapshotService
	interval time.Duration
	batch    int
	logger   *logrus.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewAutoSync(svc *SnapshotService, interval time.Duration, logger *logrus.Logger) *AutoSync {
	if interval <= 0 {
		interval = DefaultAutoSyncInterval
	}
	return &AutoSync{svc: svc, interval: interval, batch: defaultAutoSyncBatch, logger: logger}
}

func (a *AutoSync) Start(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.cancel != nil {
		return ErrAutoSyncRunning
	}
	ctx, cancel := context.WithCancel(ctx)
	a.cancel = cancel
	a.done = make(chan struct{})
	go a.loop(ctx, a.done)
	return nil
}

func (a *AutoSync) Stop() {
	a.mu.Lock()
	cancel, done := a.cancel, a.done
	a.cancel, a.done = nil, nil
	a.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Running reports whether the background loop is active.
func (a *AutoSync) Running() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cancel != nil
}

func (a *AutoSync) loop(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := a.RunOnce(ctx); err != nil && a.logger != nil {
				a.logger.WithError(err).Warn("auto sync pass failed")
			}
		}
	}
}

// RunOnce syncs up to one batch of dirty users and returns how many were
// written. A user that fails to sync is marked dirty again; a user that no
// longer exists is dropped.
func (a *AutoSync) RunOnce(ctx context.Context) (int, error) {
	p, err := a.pass(ctx)
	return p.synced, err
}

// Flush runs passes until the dirty set is empty or only users that keep
// failing are left. Call it after Stop, once nothing marks users dirty.
func (a *AutoSync) Flush(ctx context.Context) (int, error) {
	total := 0
	failing := map[string]struct{}{}
	for {
		p, err := a.pass(ctx)
		total += p.synced
		if err != nil {
			return total, err
		}
		progress := p.popped > len(p.failed)
		for _, id := range p.failed {
			if _, seen := failing[id]; !seen {
				failing[id] = struct{}{}
				progress = true
			}
		}
		if !progress {
			return total, nil
		}
	}
}

type syncPass struct {
	popped, synced int
	failed         []string
}

func (a *AutoSync) pass(ctx context.Context) (syncPass, error) {
	var p syncPass
	if a.svc == nil || a.svc.Dirty == nil {
		return p, nil
	}
	ids, err := a.svc.Dirty.Pop(ctx, a.batch)
	if err != nil {
		return p, err
	}
	p.popped = len(ids)

	for _, raw := range ids {
		id, err := entity.NewUserID(raw)
		if err != nil {
			continue
		}
		if _, err := a.svc.Sync(ctx, id); err != nil {
			if apperror.IsNotFound(err) {
				continue
			}
			p.failed = append(p.failed, raw)
			count(statSnapshotSyncFailures)
			if a.logger != nil {
				a.logger.WithError(err).WithField("user_id", raw).Warn("snapshot sync failed")
			}
			if mErr := a.svc.Dirty.Mark(ctx, raw); mErr != nil && a.logger != nil {
				a.logger.WithError(mErr).WithField("user_id", raw).Warn("snapshot re-mark failed")
			}
			continue
		}
		p.synced++
		count(statSnapshotsSynced)
	}
	if p.synced > 0 && a.logger != nil {
		a.logger.WithField("users", p.synced).Debug("snapshots synced")
	}
	return p, nil
}
