package jobs

import (
	"context"
	"log"
	"sync"
	"time"
)

// reconcileRunner is satisfied by usecases.Reconciler
type reconcileRunner interface {
	Reconcile(ctx context.Context) error
}

// expirySweeper is satisfied by usecases.DepositUsecase
type expirySweeper interface {
	ExpireStale(ctx context.Context) (int, error)
}

// DepositMonitorJob periodically reconciles open deposits against the
// chain explorers and expires stale records.
type DepositMonitorJob struct {
	reconciler reconcileRunner
	sweeper    expirySweeper
	interval   time.Duration
	stop       chan struct{}
	running    sync.Mutex
}

func NewDepositMonitorJob(reconciler reconcileRunner, sweeper expirySweeper, interval time.Duration) *DepositMonitorJob {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &DepositMonitorJob{
		reconciler: reconciler,
		sweeper:    sweeper,
		interval:   interval,
		stop:       make(chan struct{}),
	}
}

func (j *DepositMonitorJob) Start(ctx context.Context) {
	log.Println("🕐 Starting deposit monitor job...")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("⏹️ Deposit monitor job stopped (context cancelled)")
			return
		case <-j.stop:
			log.Println("⏹️ Deposit monitor job stopped")
			return
		case <-ticker.C:
			if !j.tryRun(ctx) {
				log.Println("⏭️ Skipping tick, previous pass still running")
			}
		}
	}
}

func (j *DepositMonitorJob) Stop() {
	close(j.stop)
}

// RunOnce runs a single reconcile plus expiry pass synchronously.
// Returns false when a pass was already in flight.
func (j *DepositMonitorJob) RunOnce(ctx context.Context) bool {
	return j.tryRun(ctx)
}

func (j *DepositMonitorJob) tryRun(ctx context.Context) bool {
	if !j.running.TryLock() {
		return false
	}
	defer j.running.Unlock()

	if err := j.reconciler.Reconcile(ctx); err != nil {
		log.Printf("❌ Reconciliation pass failed: %v", err)
	}

	expired, err := j.sweeper.ExpireStale(ctx)
	if err != nil {
		log.Printf("❌ Expiry sweep failed: %v", err)
		return true
	}
	if expired > 0 {
		log.Printf("✅ Expired %d stale deposits", expired)
	}
	return true
}
