package workerpool

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/talx-hub/gopher-loyalty/internal/model"
	"github.com/talx-hub/gopher-loyalty/internal/model/account"
	"github.com/talx-hub/gopher-loyalty/internal/model/reward"
	"github.com/talx-hub/gopher-loyalty/internal/model/tenant"
)

type PeriodicIssuer interface {
	IssuePeriodic(ctx context.Context, t tenant.Context, accountID int64) ([]reward.Reward, error)
}

type JobSemaphore interface {
	Acquire(ctx context.Context, timeout time.Duration) error
	Release()
}

// Result reports one processed account. Err is set when the account was
// skipped or its issuance failed.
type Result struct {
	Err       error
	AccountID int64
	Issued    int
}

type WorkerPool struct {
	Issuer        PeriodicIssuer
	Sema          JobSemaphore
	WaitGroup     *sync.WaitGroup
	Jobs          <-chan account.Account
	Results       chan<- Result
	Log           *slog.Logger
	OnWorkerStart func()
	Workers       int
}

func New(
	issuer PeriodicIssuer,
	sema JobSemaphore,
	jobs <-chan account.Account,
	results chan<- Result,
	log *slog.Logger,
) *WorkerPool {
	return &WorkerPool{
		Issuer:    issuer,
		Sema:      sema,
		WaitGroup: &sync.WaitGroup{},
		Jobs:      jobs,
		Results:   results,
		Log:       log,
		Workers:   runtime.NumCPU() * model.DefaultWorkerCountMultiplier,
	}
}

// Start launches the workers. They stop when jobs is closed or the returned
// cancel func (or ctx) fires; Wait blocks until all of them have returned.
func (pool *WorkerPool) Start(ctx context.Context) context.CancelFunc {
	workerCtx, workerCancel := context.WithCancel(ctx)
	for range pool.Workers {
		pool.WaitGroup.Add(1)
		go pool.worker(workerCtx)
	}

	return workerCancel
}

func (pool *WorkerPool) Wait() {
	pool.WaitGroup.Wait()
}

func (pool *WorkerPool) worker(ctx context.Context) {
	defer pool.WaitGroup.Done()
	if pool.OnWorkerStart != nil {
		pool.OnWorkerStart()
	}

	for {
		select {
		case <-ctx.Done():
			return
		case acc, ok := <-pool.Jobs:
			if !ok {
				return
			}
			pool.send(ctx, pool.process(ctx, &acc))
		}
	}
}

func (pool *WorkerPool) process(ctx context.Context, acc *account.Account) Result {
	if err := pool.Sema.Acquire(ctx, model.DefaultTimeout); err != nil {
		pool.Log.LogAttrs(ctx, slog.LevelWarn, "sweep job skipped",
			slog.Int64("account_id", acc.ID),
			slog.Any(model.KeyLoggerError, err),
		)
		return Result{AccountID: acc.ID, Err: err}
	}
	defer pool.Sema.Release()

	issued, err := pool.Issuer.IssuePeriodic(ctx, tenant.Context{ID: acc.TenantID}, acc.ID)
	if err != nil {
		pool.Log.LogAttrs(ctx, slog.LevelError, "periodic issuance failed",
			slog.String("tenant", acc.TenantID),
			slog.Int64("account_id", acc.ID),
			slog.Any(model.KeyLoggerError, err),
		)
		return Result{AccountID: acc.ID, Err: err}
	}
	return Result{AccountID: acc.ID, Issued: len(issued)}
}

func (pool *WorkerPool) send(ctx context.Context, res Result) {
	if pool.Results == nil {
		return
	}
	select {
	case <-ctx.Done():
	case pool.Results <- res:
	}
}
