package workerpool

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/talx-hub/gopher-loyalty/internal/model/account"
)

func SetupWorkerPool(t *testing.T,
	issuer PeriodicIssuer,
	sema JobSemaphore,
	jobs chan account.Account,
	workers int,
) (*WorkerPool, chan Result) {
	t.Helper()

	results := make(chan Result)
	return &WorkerPool{
		Issuer:    issuer,
		Sema:      sema,
		WaitGroup: &sync.WaitGroup{},
		Jobs:      jobs,
		Results:   results,
		Log:       slog.Default(),
		Workers:   workers,
	}, results
}

func GenerateJobs(t *testing.T, ctx context.Context, ids []int64) chan account.Account {
	t.Helper()

	jobs := make(chan account.Account, len(ids))

	go func() {
		defer close(jobs)
		for _, id := range ids {
			select {
			case <-ctx.Done():
				return
			case jobs <- account.Account{ID: id, TenantID: "acme"}:
			}
		}
	}()

	return jobs
}

func ListenChannel[T any](t *testing.T, ctx context.Context, dataCh <-chan T,
) []T {
	t.Helper()

	results := make([]T, 0)
	for {
		select {
		case <-ctx.Done():
			return results
		case data, ok := <-dataCh:
			if !ok {
				return results
			}
			results = append(results, data)
		}
	}
}

// RunPool starts the pool, drains its results until every worker has
// returned and gives them back.
func RunPool(t *testing.T, ctx context.Context, pool *WorkerPool, results chan Result) []Result {
	t.Helper()

	var got []Result
	listenDone := make(chan struct{})
	go func() {
		defer close(listenDone)
		got = ListenChannel(t, context.Background(), results)
	}()

	cancel := pool.Start(ctx)
	pool.Wait()
	cancel()
	close(results)
	<-listenDone

	return got
}
