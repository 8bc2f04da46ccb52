package ioresolve_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gnames/gn"
	"github.com/gnames/gnlineage/internal/ioresolve"
	"github.com/gnames/gnlineage/pkg/cache"
	"github.com/gnames/gnlineage/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type upperCanonizer struct{}

func (upperCanonizer) Canonical(name string) (string, bool) {
	if name == "Homo sapiens Linnaeus, 1758" {
		return "Homo sapiens", true
	}
	return "", false
}

func TestSpeciesResolve(t *testing.T) {
	ctx := context.Background()
	store := &memStore[string, int]{}
	svc := &fakeNames{
		ids:  map[string]int{"Homo sapiens": 9606, "Mus musculus": 10090},
		errs: map[string]error{"Danio rerio": errors.New("timeout")},
	}
	sl := &sleepRecorder{}
	r := ioresolve.NewSpecies(store, svc,
		ioresolve.WithDelay(2*time.Second),
		ioresolve.WithSaveInterval(2),
		ioresolve.WithSleeper(sl.sleep),
	)

	names := []string{
		"Homo sapiens", "Bogus bogus", "Homo sapiens",
		"Mus musculus", "Danio rerio",
	}
	tbl, err := r.Resolve(ctx, names)
	require.NoError(t, err)

	assert.Equal(t,
		[]string{"Homo sapiens", "Bogus bogus", "Mus musculus", "Danio rerio"},
		svc.calls, "one call per distinct name")
	assert.Equal(t, []time.Duration{2 * time.Second, 2 * time.Second,
		2 * time.Second}, sl.delays, "no delay before the first call")
	assert.Equal(t, []int{2, 4}, store.snapLen, "checkpoint every 2 names")

	id, ok := tbl.Get("Homo sapiens")
	assert.True(t, ok)
	assert.Equal(t, 9606, id)
	e, _ := tbl.Entry("Bogus bogus")
	assert.Equal(t, cache.StatusNotFound, e.Status)
	e, _ = tbl.Entry("Danio rerio")
	assert.Equal(t, cache.StatusError, e.Status)

	t.Run("cached names issue no calls", func(t *testing.T) {
		svc.calls = nil
		saves := store.saves
		tbl2, err := r.Resolve(ctx, names)
		require.NoError(t, err)
		assert.Empty(t, svc.calls)
		assert.Equal(t, saves, store.saves)
		assert.Equal(t, tbl, tbl2)
	})

	t.Run("retry errors", func(t *testing.T) {
		svc.calls = nil
		delete(svc.errs, "Danio rerio")
		svc.ids["Danio rerio"] = 7955
		rr := ioresolve.NewSpecies(store, svc,
			ioresolve.WithRetryErrors(true),
			ioresolve.WithSleeper(sl.sleep),
		)
		tbl3, err := rr.Resolve(ctx, names)
		require.NoError(t, err)
		assert.Equal(t, []string{"Danio rerio"}, svc.calls,
			"not found names are not retried")
		id, ok := tbl3.Get("Danio rerio")
		assert.True(t, ok)
		assert.Equal(t, 7955, id)
	})
}

func TestSpeciesRestrict(t *testing.T) {
	store := &memStore[string, int]{}
	svc := &fakeNames{ids: map[string]int{"A a": 1, "B b": 2}}
	r := ioresolve.NewSpecies(store, svc)

	_, err := r.Resolve(context.Background(), []string{"A a", "B b"})
	require.NoError(t, err)
	tbl, err := r.Resolve(context.Background(), []string{"B b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"B b"}, tbl.Keys())
	assert.Equal(t, 2, store.saved.Len())
}

func TestSpeciesCanonical(t *testing.T) {
	store := &memStore[string, int]{}
	svc := &fakeNames{ids: map[string]int{"Homo sapiens": 9606}}
	r := ioresolve.NewSpecies(store, svc,
		ioresolve.WithCanonizer(upperCanonizer{}))

	name := "Homo sapiens Linnaeus, 1758"
	tbl, err := r.Resolve(context.Background(), []string{name, "Pan"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Homo sapiens", "Pan"}, svc.calls)
	id, ok := tbl.Get(name)
	assert.True(t, ok, "cache key is the original name")
	assert.Equal(t, 9606, id)
}

func TestSpeciesSaveFailure(t *testing.T) {
	store := &memStore[string, int]{failAt: 1}
	svc := &fakeNames{ids: map[string]int{"A a": 1}}
	r := ioresolve.NewSpecies(store, svc, ioresolve.WithSaveInterval(1))

	_, err := r.Resolve(context.Background(), []string{"A a", "B b"})
	assert.ErrorIs(t, err, errSave)
	assert.Len(t, svc.calls, 1, "resolution stops at the failed checkpoint")
}

func TestSpeciesCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	store := &memStore[string, int]{}
	svc := &fakeNames{
		ids:    map[string]int{"A a": 1, "B b": 2, "C c": 3},
		cancel: cancel,
	}
	r := ioresolve.NewSpecies(store, svc, ioresolve.WithSaveInterval(10))

	_, err := r.Resolve(ctx, []string{"A a", "B b", "C c"})
	require.Error(t, err)
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(t, errcode.ResolveCancelledError, gnErr.Code)
	assert.ErrorIs(t, gnErr.Err, context.Canceled)

	require.NotNil(t, store.saved, "progress is saved on cancel")
	assert.Equal(t, []string{"A a"}, store.saved.Keys(),
		"interrupted lookup is not cached")
}
