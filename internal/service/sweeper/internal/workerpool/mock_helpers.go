package workerpool

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/talx-hub/gopher-loyalty/internal/model/reward"
	"github.com/talx-hub/gopher-loyalty/internal/model/tenant"
	"github.com/talx-hub/gopher-loyalty/internal/serviceerrs"
	"github.com/talx-hub/gopher-loyalty/internal/service/sweeper/internal/workerpool/mocks"
)

var errIssuer = errors.New("issuer failed")

// ConfigureMockIssuer issues one reward to even account ids, none to odd
// ones, and fails for ids divisible by 5.
func ConfigureMockIssuer(t *testing.T) PeriodicIssuer {
	t.Helper()

	mockIssuer := mocks.NewMockPeriodicIssuer(t)
	mockIssuer.
		EXPECT().
		IssuePeriodic(mock.Anything, mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, tn tenant.Context, accountID int64) ([]reward.Reward, error) {
			if tn.IsZero() {
				return nil, serviceerrs.ErrNotFound
			}
			if accountID%5 == 0 {
				return nil, errIssuer
			}
			if accountID%2 == 0 {
				return []reward.Reward{{AccountID: accountID, Tag: reward.TagBirthday}}, nil
			}
			return nil, nil
		}).
		Maybe()

	return mockIssuer
}

func ConfigureMockAlwaysTimeoutExceedSemaphore(t *testing.T) JobSemaphore {
	t.Helper()

	mockSema := mocks.NewMockJobSemaphore(t)
	mockSema.
		EXPECT().
		Acquire(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, _ time.Duration) error {
			return serviceerrs.ErrSemaphoreTimeoutExceeded
		})

	return mockSema
}
