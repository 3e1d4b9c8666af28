package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"expense-reports/internal/infra/retry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain error", errors.New("boom"), false},
		{"429", &retry.HTTPError{StatusCode: 429}, true},
		{"502", &retry.HTTPError{StatusCode: 502}, true},
		{"404", &retry.HTTPError{StatusCode: 404}, false},
		{"401", &retry.HTTPError{StatusCode: 401}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, retry.IsRetryable(tt.err))
		})
	}
}

func TestParseRetryAfter(t *testing.T) {
	assert.Equal(t, 5*time.Second, retry.ParseRetryAfter("5"))
	assert.Equal(t, time.Duration(0), retry.ParseRetryAfter(""))
	assert.Equal(t, time.Duration(0), retry.ParseRetryAfter("soon"))
	// An HTTP-date in the past yields no wait.
	assert.Equal(t, time.Duration(0), retry.ParseRetryAfter("Mon, 02 Jan 2006 15:04:05 MST"))
}

func TestDo_StopsOnNonRetryable(t *testing.T) {
	calls := 0
	err := retry.Do(context.Background(), retry.Options{MaxRetries: 3, BaseDelay: time.Millisecond}, func() error {
		calls++
		return &retry.HTTPError{StatusCode: 400}
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_RetriesUntilSuccess(t *testing.T) {
	calls := 0
	err := retry.Do(context.Background(), retry.Options{MaxRetries: 3, BaseDelay: time.Millisecond}, func() error {
		calls++
		if calls < 3 {
			return &retry.HTTPError{StatusCode: 503}
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_ExhaustsBudget(t *testing.T) {
	calls := 0
	err := retry.Do(context.Background(), retry.Options{MaxRetries: 2, BaseDelay: time.Millisecond}, func() error {
		calls++
		return &retry.HTTPError{StatusCode: 500}
	})
	require.Error(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_ContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := retry.Do(ctx, retry.Options{MaxRetries: 1}, func() error {
		t.Fatal("fn must not run after cancellation")
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
}
