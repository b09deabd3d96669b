package inmemorystore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/runstore"
)

func TestStore_Defaults(t *testing.T) {
	ctx := context.Background()
	store := New()

	status, err := store.GetStatus(ctx, "Ubuntu")
	require.NoError(t, err)
	assert.Equal(t, runstore.StatusPending, status)

	_, ok, err := store.GetOutcome(ctx, "Ubuntu")
	require.NoError(t, err)
	assert.False(t, ok)

	runErr, err := store.GetError(ctx, "Ubuntu")
	require.NoError(t, err)
	assert.Nil(t, runErr)
}

func TestStore_RecordsState(t *testing.T) {
	ctx := context.Background()
	store := New()
	boom := errors.New("boom")

	require.NoError(t, store.SetStatus(ctx, "Windows", runstore.StatusFailed))
	require.NoError(t, store.SetError(ctx, "Windows", boom))
	require.NoError(t, store.SetStatus(ctx, "Ubuntu", runstore.StatusResolved))
	require.NoError(t, store.SetOutcome(ctx, "Ubuntu", runstore.Outcome{RunID: "run-1"}))

	status, _ := store.GetStatus(ctx, "Windows")
	assert.Equal(t, "failed", status.String())
	runErr, _ := store.GetError(ctx, "Windows")
	assert.ErrorIs(t, runErr, boom)

	outcome, ok, _ := store.GetOutcome(ctx, "Ubuntu")
	require.True(t, ok)
	assert.Equal(t, "run-1", outcome.RunID)

	platforms, err := store.Platforms(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ubuntu", "Windows"}, platforms)
}

func TestStore_ConcurrentWrites(t *testing.T) {
	ctx := context.Background()
	store := New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			platform := fmt.Sprintf("P%02d", i)
			_ = store.SetStatus(ctx, platform, runstore.StatusRunning)
			_ = store.SetStatus(ctx, platform, runstore.StatusResolved)
		}(i)
	}
	wg.Wait()

	platforms, err := store.Platforms(ctx)
	require.NoError(t, err)
	assert.Len(t, platforms, 50)
	assert.Equal(t, "P00", platforms[0])
}
