package ioresolve_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/gnames/gnlineage/internal/ioresolve"
	"github.com/gnames/gnlineage/pkg/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatches(t *testing.T) {
	for _, n := range []int{0, 1, 5, 99, 100, 101, 250} {
		for _, size := range []int{1, 3, 100} {
			ids := make([]int, n)
			for i := range ids {
				ids[i] = i + 1
			}
			res := ioresolve.Batches(ids, size)
			msg := fmt.Sprintf("n=%d size=%d", n, size)

			assert.Len(t, res, (n+size-1)/size, msg)
			var flat []int
			for _, b := range res {
				assert.NotEmpty(t, b, msg)
				assert.LessOrEqual(t, len(b), size, msg)
				flat = append(flat, b...)
			}
			if n == 0 {
				assert.Empty(t, flat, msg)
				continue
			}
			assert.Equal(t, ids, flat, msg)
		}
	}
	assert.Len(t, ioresolve.Batches([]int{1, 2}, 0), 2, "size below 1 is 1")
}

func TestLineageResolve(t *testing.T) {
	ctx := context.Background()
	store := &memStore[int, string]{}
	svc := &fakeLineages{lineages: map[int]string{
		1: "Bacteria; Pseudomonadota",
		2: "Eukaryota; Metazoa",
		3: "Archaea; Euryarchaeota",
		4: "Eukaryota; Viridiplantae",
		5: "Eukaryota; Fungi",
	}}
	sl := &sleepRecorder{}
	r := ioresolve.NewLineage(store, svc,
		ioresolve.WithBatchSize(2),
		ioresolve.WithDelay(time.Second),
		ioresolve.WithSaveInterval(2),
		ioresolve.WithSleeper(sl.sleep),
	)

	tbl, err := r.Resolve(ctx, []int{1, 2, 3, 2, 4, 5})
	require.NoError(t, err)
	assert.Equal(t, [][]int{{1, 2}, {3, 4}, {5}}, svc.batchCalls)
	assert.Empty(t, svc.itemCalls)
	assert.Len(t, sl.delays, 2)
	assert.Equal(t, []int{4, 5}, store.snapLen,
		"checkpoint after 2 batches and at completion")

	lin, ok := tbl.Get(3)
	assert.True(t, ok)
	assert.Equal(t, "Archaea; Euryarchaeota", lin)

	svc.batchCalls = nil
	_, err = r.Resolve(ctx, []int{5, 4, 3})
	require.NoError(t, err)
	assert.Empty(t, svc.batchCalls, "cached ids issue no calls")
}

func TestLineageFallback(t *testing.T) {
	const a, b, c = 10, 20, 30
	store := &memStore[int, string]{}
	svc := &fakeLineages{
		lineages: map[int]string{a: "lineageA", c: "lineageC"},
		batchErr: errors.New("connection reset"),
		itemErrs: map[int]error{b: errors.New("bad gateway")},
	}
	sl := &sleepRecorder{}
	r := ioresolve.NewLineage(store, svc,
		ioresolve.WithDelay(time.Second),
		ioresolve.WithSleeper(sl.sleep),
	)

	tbl, err := r.Resolve(context.Background(), []int{a, b, c})
	require.NoError(t, err)
	assert.Equal(t, []int{a, b, c}, svc.itemCalls)
	assert.Len(t, sl.delays, 3, "one per fallback request")

	lin, ok := tbl.Get(a)
	assert.True(t, ok)
	assert.Equal(t, "lineageA", lin)
	e, ok := tbl.Entry(b)
	assert.True(t, ok)
	assert.Equal(t, cache.StatusError, e.Status)
	lin, _ = tbl.Get(c)
	assert.Equal(t, "lineageC", lin)
	assert.Equal(t, 3, store.saved.Len())
}

func TestLineageMatching(t *testing.T) {
	lineages := map[int]string{1: "one", 2: "two", 3: "three", 562: "coli"}

	t.Run("reordered records are matched by key", func(t *testing.T) {
		svc := &fakeLineages{lineages: lineages, reverse: true}
		r := ioresolve.NewLineage(&memStore[int, string]{}, svc)
		tbl, err := r.Resolve(context.Background(), []int{1, 2, 3})
		require.NoError(t, err)
		assert.Empty(t, svc.itemCalls)
		for id, want := range map[int]string{1: "one", 2: "two", 3: "three"} {
			lin, _ := tbl.Get(id)
			assert.Equal(t, want, lin)
		}
	})

	t.Run("merged ids are matched by alias", func(t *testing.T) {
		svc := &fakeLineages{lineages: lineages, aliases: map[int]int{1637: 562}}
		r := ioresolve.NewLineage(&memStore[int, string]{}, svc)
		tbl, err := r.Resolve(context.Background(), []int{1, 1637})
		require.NoError(t, err)
		assert.Empty(t, svc.itemCalls)
		lin, ok := tbl.Get(1637)
		assert.True(t, ok)
		assert.Equal(t, "coli", lin)
	})

	t.Run("length mismatch falls back", func(t *testing.T) {
		svc := &fakeLineages{lineages: lineages, drop: true}
		r := ioresolve.NewLineage(&memStore[int, string]{}, svc)
		tbl, err := r.Resolve(context.Background(), []int{1, 2, 42})
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 42}, svc.itemCalls)
		lin, _ := tbl.Get(1)
		assert.Equal(t, "one", lin)
		e, _ := tbl.Entry(42)
		assert.Equal(t, cache.StatusNotFound, e.Status)
	})
}

func TestLineageSaveFailure(t *testing.T) {
	store := &memStore[int, string]{failAt: 1}
	svc := &fakeLineages{lineages: map[int]string{1: "one", 2: "two"}}
	r := ioresolve.NewLineage(store, svc,
		ioresolve.WithBatchSize(1), ioresolve.WithSaveInterval(1))

	_, err := r.Resolve(context.Background(), []int{1, 2})
	assert.ErrorIs(t, err, errSave)
	assert.Len(t, svc.batchCalls, 1)
}
