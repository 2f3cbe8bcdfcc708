package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ideagen/ideagen/backend/go-services/internal/ideas"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func sample(id, content string) ideas.SavedIdea {
	return ideas.SavedIdea{ID: id, Title: "Idea " + id, Content: content, Category: "startup"}
}

// exerciseRepository checks the List/Toggle/Delete contract against any backend.
func exerciseRepository(t *testing.T, newRepo func(t *testing.T) Repository) {
	ctx := context.Background()

	t.Run("toggle on then off", func(t *testing.T) {
		r := newRepo(t)
		res, err := r.Toggle(ctx, "s1", sample("1", "X"), t0)
		require.NoError(t, err)
		require.True(t, res.Saved)
		require.Len(t, res.Ideas, 1)
		require.Equal(t, "X", res.Ideas[0].Content)
		require.Equal(t, t0.UnixMilli(), res.Ideas[0].Timestamp)

		res, err = r.Toggle(ctx, "s1", sample("1", "X"), t0.Add(time.Second))
		require.NoError(t, err)
		require.True(t, res.Removed)
		require.Empty(t, res.Ideas)
	})

	t.Run("cap evicts oldest", func(t *testing.T) {
		r := newRepo(t)
		for i := 1; i <= 11; i++ {
			_, err := r.Toggle(ctx, "s1", sample(fmt.Sprint(i), fmt.Sprintf("c%d", i)), t0.Add(time.Duration(i)*time.Second))
			require.NoError(t, err)
		}
		res, err := r.List(ctx, "s1", t0.Add(time.Minute))
		require.NoError(t, err)
		require.Len(t, res.Ideas, 10)
		require.Equal(t, "11", res.Ideas[0].ID)
		require.Equal(t, "2", res.Ideas[9].ID)
	})

	t.Run("ttl boundary", func(t *testing.T) {
		r := newRepo(t)
		_, err := r.Toggle(ctx, "s1", sample("1", "X"), t0)
		require.NoError(t, err)

		res, err := r.List(ctx, "s1", t0.Add(24*time.Hour-time.Millisecond))
		require.NoError(t, err)
		require.Len(t, res.Ideas, 1)

		res, err = r.List(ctx, "s1", t0.Add(24*time.Hour))
		require.NoError(t, err)
		require.Empty(t, res.Ideas)
		require.Equal(t, 1, res.Expired)
	})

	t.Run("sessions are isolated", func(t *testing.T) {
		r := newRepo(t)
		_, err := r.Toggle(ctx, "s1", sample("1", "X"), t0)
		require.NoError(t, err)
		_, err = r.Toggle(ctx, "s2", sample("2", "X"), t0)
		require.NoError(t, err)

		res, err := r.List(ctx, "s1", t0)
		require.NoError(t, err)
		require.Len(t, res.Ideas, 1)
		require.Equal(t, "s1", res.Ideas[0].SessionID)

		res, err = r.List(ctx, "unknown", t0)
		require.NoError(t, err)
		require.NotNil(t, res.Ideas)
		require.Empty(t, res.Ideas)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		r := newRepo(t)
		_, err := r.Toggle(ctx, "s1", sample("1", "X"), t0)
		require.NoError(t, err)
		_, err = r.Toggle(ctx, "s1", sample("2", "Y"), t0.Add(time.Second))
		require.NoError(t, err)

		res, err := r.Delete(ctx, "s1", "missing", t0)
		require.NoError(t, err)
		require.False(t, res.Removed)
		require.Len(t, res.Ideas, 2)

		res, err = r.Delete(ctx, "s2", "1", t0)
		require.NoError(t, err)
		require.False(t, res.Removed)

		res, err = r.Delete(ctx, "s1", "1", t0)
		require.NoError(t, err)
		require.True(t, res.Removed)
		require.Len(t, res.Ideas, 1)
		require.Equal(t, "2", res.Ideas[0].ID)
	})

	t.Run("sweep evicts expired", func(t *testing.T) {
		r := newRepo(t)
		_, err := r.Toggle(ctx, "s1", sample("1", "X"), t0)
		require.NoError(t, err)
		_, err = r.Toggle(ctx, "s2", sample("2", "Y"), t0.Add(time.Hour))
		require.NoError(t, err)
		_, err = r.Toggle(ctx, "s2", sample("3", "Z"), t0.Add(2*time.Hour))
		require.NoError(t, err)

		n, err := r.Sweep(ctx, t0.Add(25*time.Hour))
		require.NoError(t, err)
		require.Equal(t, 2, n)

		res, err := r.List(ctx, "s2", t0.Add(25*time.Hour))
		require.NoError(t, err)
		require.Len(t, res.Ideas, 1)
		require.Equal(t, "3", res.Ideas[0].ID)
	})
}

func TestMemoryRepoContract(t *testing.T) {
	exerciseRepository(t, func(t *testing.T) Repository {
		return NewMemoryRepo(Options{})
	})
}

func TestMemoryRepoEvictsAcrossSessions(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepo(Options{})
	_, err := r.Toggle(ctx, "s1", sample("1", "X"), t0)
	require.NoError(t, err)
	_, err = r.Toggle(ctx, "s2", sample("2", "Y"), t0.Add(12*time.Hour))
	require.NoError(t, err)
	require.Equal(t, 2, r.Len())

	// an operation on s2 erases s1's expired idea too
	_, err = r.List(ctx, "s2", t0.Add(24*time.Hour))
	require.NoError(t, err)
	require.Equal(t, 1, r.Len())
}

func TestMemoryRepoCustomCapacity(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepo(Options{Capacity: 2, TTL: time.Hour})
	for i := 1; i <= 3; i++ {
		_, err := r.Toggle(ctx, "s1", sample(fmt.Sprint(i), fmt.Sprint(i)), t0.Add(time.Duration(i)*time.Second))
		require.NoError(t, err)
	}
	res, err := r.List(ctx, "s1", t0.Add(time.Minute))
	require.NoError(t, err)
	require.Len(t, res.Ideas, 2)

	res, err = r.List(ctx, "s1", t0.Add(time.Hour+time.Minute))
	require.NoError(t, err)
	require.Empty(t, res.Ideas)
}
