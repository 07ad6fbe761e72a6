package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestParallelPartial_KeepsOrderAndErrors(t *testing.T) {
	defer goleak.VerifyNone(t)

	results := ParallelPartial(context.Background(),
		func(context.Context) (string, error) { return "a", nil },
		func(context.Context) (string, error) { return "", errors.New("b failed") },
		func(context.Context) (string, error) { return "c", nil },
	)

	require.Len(t, results, 3)
	assert.Equal(t, "a", results[0].Value)
	assert.EqualError(t, results[1].Err, "b failed")
	assert.Equal(t, "c", results[2].Value)
}

func TestParallelPartial_Empty(t *testing.T) {
	assert.Empty(t, ParallelPartial[int](context.Background()))
}

func TestFanOut_ProcessesEveryItem(t *testing.T) {
	defer goleak.VerifyNone(t)

	var sum atomic.Int64

	err := FanOut(context.Background(), 3, []int{1, 2, 3, 4, 5}, func(_ context.Context, n int) error {
		sum.Add(int64(n))
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, int64(15), sum.Load())
}

func TestFanOut_FirstErrorStops(t *testing.T) {
	defer goleak.VerifyNone(t)

	boom := errors.New("boom")

	err := FanOut(context.Background(), 0, []string{"ok", "bad", "never"}, func(_ context.Context, s string) error {
		if s == "bad" {
			return boom
		}

		return nil
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}
