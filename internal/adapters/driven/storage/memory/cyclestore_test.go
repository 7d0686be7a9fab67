package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ng-youn/runsheet/internal/core/domain"
)

func TestCycleStore_RecordAndRecent(t *testing.T) {
	store := NewCycleStore()
	ctx := context.Background()

	base := time.Now().UTC()
	for i := 0; i < 5; i++ {
		err := store.RecordCycle(ctx, &domain.CycleResult{
			ID:        fmt.Sprintf("cycle-%d", i),
			StartedAt: base.Add(time.Duration(i) * time.Minute),
			EndedAt:   base.Add(time.Duration(i)*time.Minute + 2*time.Second),
			Success:   true,
		})
		require.NoError(t, err)
	}

	recent, err := store.RecentCycles(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "cycle-4", recent[0].ID)
	assert.Equal(t, "cycle-3", recent[1].ID)
}

func TestCycleStore_RecordCycle_InvalidInput(t *testing.T) {
	store := NewCycleStore()
	ctx := context.Background()

	assert.ErrorIs(t, store.RecordCycle(ctx, nil), domain.ErrInvalidInput)
	assert.ErrorIs(t, store.RecordCycle(ctx, &domain.CycleResult{}), domain.ErrInvalidInput)
}

func TestCycleStore_PruneCycles(t *testing.T) {
	store := NewCycleStore()
	ctx := context.Background()

	base := time.Now().UTC()
	for i := 0; i < 6; i++ {
		err := store.RecordCycle(ctx, &domain.CycleResult{
			ID:        fmt.Sprintf("cycle-%d", i),
			StartedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	require.NoError(t, store.PruneCycles(ctx, 3))

	recent, err := store.RecentCycles(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, "cycle-5", recent[0].ID)
	assert.Equal(t, "cycle-3", recent[2].ID)
}

func TestCycleStore_RecentCycles_Empty(t *testing.T) {
	store := NewCycleStore()

	recent, err := store.RecentCycles(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, recent)
}
