package ioresolve_test

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/gnames/gnlineage/pkg/cache"
	"github.com/gnames/gnlineage/pkg/taxonomy"
)

var errSave = errors.New("disk is full")

// memStore keeps a copy of the last saved table.
type memStore[K comparable, V any] struct {
	saved   *cache.Table[K, V]
	saves   int
	failAt  int
	snapLen []int
}

func (s *memStore[K, V]) Load(_ context.Context) (*cache.Table[K, V], error) {
	res := cache.NewTable[K, V]()
	if s.saved != nil {
		for k, e := range s.saved.All() {
			res.Set(k, e)
		}
	}
	return res, nil
}

func (s *memStore[K, V]) Save(_ context.Context, tbl *cache.Table[K, V]) error {
	s.saves++
	if s.failAt > 0 && s.saves >= s.failAt {
		return errSave
	}
	s.saved = tbl.Restrict(tbl.Keys())
	s.snapLen = append(s.snapLen, tbl.Len())
	return nil
}

func (s *memStore[K, V]) Close() error { return nil }

type fakeNames struct {
	ids    map[string]int
	errs   map[string]error
	calls  []string
	cancel func()
}

func (f *fakeNames) TaxonID(ctx context.Context, name string) (int, error) {
	f.calls = append(f.calls, name)
	if f.cancel != nil && len(f.calls) == 2 {
		f.cancel()
		return 0, ctx.Err()
	}
	if err, ok := f.errs[name]; ok {
		return 0, err
	}
	if id, ok := f.ids[name]; ok {
		return id, nil
	}
	return 0, taxonomy.ErrNotFound
}

type fakeLineages struct {
	lineages   map[int]string
	aliases    map[int]int
	batchErr   error
	reverse    bool
	drop       bool
	itemErrs   map[int]error
	batchCalls [][]int
	itemCalls  []int
}

func (f *fakeLineages) Lineages(_ context.Context, ids []int) ([]taxonomy.Record, error) {
	f.batchCalls = append(f.batchCalls, slices.Clone(ids))
	if f.batchErr != nil {
		return nil, f.batchErr
	}
	var res []taxonomy.Record
	for i, id := range ids {
		if f.drop && i == 0 {
			continue
		}
		rec := taxonomy.Record{TaxonID: id}
		if cur, ok := f.aliases[id]; ok {
			rec.TaxonID = cur
			rec.Aliases = []int{id}
		}
		lin, ok := f.lineages[rec.TaxonID]
		if !ok {
			continue
		}
		rec.Lineage = lin
		res = append(res, rec)
	}
	if f.reverse {
		slices.Reverse(res)
	}
	return res, nil
}

func (f *fakeLineages) Lineage(_ context.Context, id int) (string, error) {
	f.itemCalls = append(f.itemCalls, id)
	if err, ok := f.itemErrs[id]; ok {
		return "", err
	}
	if lin, ok := f.lineages[id]; ok {
		return lin, nil
	}
	return "", taxonomy.ErrNotFound
}

// sleepRecorder collects delays instead of sleeping.
type sleepRecorder struct {
	delays []time.Duration
}

func (s *sleepRecorder) sleep(d time.Duration) {
	s.delays = append(s.delays, d)
}
