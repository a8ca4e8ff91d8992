package ports

import (
	"context"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/adaptor/pkg/domain"
)

// RunStoreContract runs a suite of tests to verify that a RunStore
// implementation adheres to the interface contract.
func RunStoreContract(t *testing.T, store RunStore) {
	t.Helper()
	ctx := context.Background()
	runID := "contract-run-" + time.Now().Format("20060102150405")

	newRun := func(id string, at time.Time) *domain.Run {
		s := domain.NewState()
		s.Configuration = &domain.Configuration{BaseURL: "https://x"}
		s.Data = map[string]any{"id": "p-1"}
		s.References = []any{nil}
		s.Extras = map[string]any{"foo": "bar"}
		return &domain.Run{ID: id, Job: "job.yaml", CreatedAt: at, State: s}
	}

	t.Run("Save and Load", func(t *testing.T) {
		run := newRun(runID, time.Now().UTC().Truncate(time.Millisecond))
		require.NoError(t, store.Save(ctx, run))

		loaded, err := store.Load(ctx, runID)
		require.NoError(t, err)
		assert.Equal(t, runID, loaded.ID)
		assert.Equal(t, "job.yaml", loaded.Job)
		assert.True(t, run.CreatedAt.Equal(loaded.CreatedAt))
		require.NotNil(t, loaded.State)
		assert.Equal(t, "https://x", loaded.State.Configuration.BaseURL)
		assert.Equal(t, map[string]any{"id": "p-1"}, loaded.State.Data)
		assert.Equal(t, []any{nil}, loaded.State.References)
		assert.Equal(t, "bar", loaded.State.Extras["foo"])
	})

	t.Run("Load is isolated from the caller", func(t *testing.T) {
		run := newRun(runID+"-iso", time.Now())
		require.NoError(t, store.Save(ctx, run))
		run.State.Data = "mutated"

		loaded, err := store.Load(ctx, run.ID)
		require.NoError(t, err)
		loaded.State.Extras["foo"] = "changed"

		again, err := store.Load(ctx, run.ID)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"id": "p-1"}, again.State.Data)
		assert.Equal(t, "bar", again.State.Extras["foo"])
		_ = store.Delete(ctx, run.ID)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+runID)
		assert.ErrorIs(t, err, domain.ErrRunNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, newRun(runID, time.Now())))
		require.NoError(t, store.Delete(ctx, runID))

		_, err := store.Load(ctx, runID)
		assert.ErrorIs(t, err, domain.ErrRunNotFound, "Load after Delete should return ErrRunNotFound")
		assert.NoError(t, store.Delete(ctx, runID), "deleting twice is fine")
	})

	t.Run("List", func(t *testing.T) {
		base := time.Now()
		id1 := runID + "-1"
		id2 := runID + "-2"
		require.NoError(t, store.Save(ctx, newRun(id2, base.Add(time.Second))))
		require.NoError(t, store.Save(ctx, newRun(id1, base)))
		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		runs, err := store.List(ctx)
		require.NoError(t, err)

		i1 := slices.Index(runs, id1)
		i2 := slices.Index(runs, id2)
		require.GreaterOrEqual(t, i1, 0)
		require.GreaterOrEqual(t, i2, 0)
		assert.Less(t, i1, i2, "older runs are listed first")
	})
}
