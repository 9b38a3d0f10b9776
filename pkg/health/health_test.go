package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mvc/pkg/health"
)

func ok(context.Context) error { return nil }

func failing(context.Context) error { return errors.New("connection refused") }

func slow(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestReport(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("no checks is healthy", func(t *testing.T) {
		t.Parallel()

		resp := health.Report(ctx, nil)
		require.Equal(t, health.StatusHealthy, resp.Status)
		require.Empty(t, resp.Checks)
	})

	t.Run("all healthy", func(t *testing.T) {
		t.Parallel()

		resp := health.Report(ctx, health.Checks{"a": ok, "b": ok})
		require.Equal(t, health.StatusHealthy, resp.Status)
		require.Len(t, resp.Checks, 2)
	})

	t.Run("failure is reported per check", func(t *testing.T) {
		t.Parallel()

		resp := health.Report(ctx, health.Checks{"redis": failing, "views": ok})
		require.Equal(t, health.StatusUnhealthy, resp.Status)
		require.Equal(t, "connection refused", resp.Checks["redis"].Error)
		require.Equal(t, health.StatusHealthy, resp.Checks["views"].Status)

		body, err := json.Marshal(resp)
		require.NoError(t, err)
		require.JSONEq(t,
			`{"status":"unhealthy","checks":{"redis":{"status":"unhealthy","error":"connection refused"},"views":{"status":"healthy"}}}`,
			string(body))
	})
}

func TestRun(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	require.NoError(t, health.Run(ctx, nil))
	require.NoError(t, health.Run(ctx, health.Checks{"a": ok}))

	err := health.Run(ctx, health.Checks{"redis": failing, "a": ok})
	require.ErrorIs(t, err, health.ErrCheckFailed)
	require.Contains(t, err.Error(), "redis")

	err = health.Run(ctx, health.Checks{"slow": slow}, health.WithTimeout(10*time.Millisecond))
	require.ErrorIs(t, err, health.ErrCheckTimeout)
}
