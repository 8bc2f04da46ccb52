package iocache

import (
	"fmt"
	"strings"

	"github.com/gnames/gnlineage/pkg/cache"
	"github.com/gnames/gnuuid"
)

// row is the text form of a cache entry shared by all backends.
type row struct {
	key    string
	value  string
	status string
}

func encodeRow[K comparable, V any](
	codec cache.Codec[K, V],
	k K,
	e cache.Entry[V],
) row {
	res := row{
		key:    codec.FormatKey(k),
		status: e.Status.String(),
	}
	if e.Status == cache.StatusResolved {
		res.value = codec.FormatValue(e.Value)
	}
	return res
}

// rowID is a stable UUID v5 identifier of a cache key.
func rowID(key string) string {
	return gnuuid.New(key).String()
}

func decodeRow[K comparable, V any](
	codec cache.Codec[K, V],
	r row,
) (K, cache.Entry[V], error) {
	var e cache.Entry[V]
	k, err := codec.ParseKey(r.key)
	if err != nil {
		return k, e, err
	}

	if r.status == "" {
		e, err = decodeLegacy(codec, r.value)
		return k, e, err
	}

	e.Status, err = cache.ParseStatus(r.status)
	if err != nil {
		return k, e, err
	}
	if e.Status == cache.StatusResolved {
		e.Value, err = codec.ParseValue(r.value)
	}
	return k, e, err
}

// decodeLegacy reads values of caches that have no status column.
// Empty values were failed lookups, "Error: ..." values were
// service errors written as text.
func decodeLegacy[K comparable, V any](
	codec cache.Codec[K, V],
	value string,
) (cache.Entry[V], error) {
	if strings.TrimSpace(value) == "" {
		return cache.NotFound[V](), nil
	}
	if strings.HasPrefix(value, "Error:") {
		return cache.Failed[V](), nil
	}
	v, err := codec.ParseValue(value)
	if err == nil {
		return cache.Resolved(v), nil
	}
	return cache.Entry[V]{}, fmt.Errorf("cannot parse value '%s': %w", value, err)
}
