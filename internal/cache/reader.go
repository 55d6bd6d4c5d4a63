package cache

import (
	"sort"

	"golang.org/x/sync/singleflight"

	"github.com/toyz/entitydoc/internal/entity"
)

// Resolver is anything that resolves entity annotations by class id
type Resolver interface {
	Resolve(classID string) (*entity.EntityAnnotations, error)
}

// Reader memoizes Resolve results per class id. Concurrent lookups of the
// same class share one computation; failures are not cached.
type Reader struct {
	resolver Resolver
	results  *Cache[string, *entity.EntityAnnotations]
	group    singleflight.Group
}

// NewReader wraps resolver with a cache
func NewReader(resolver Resolver) *Reader {
	return &Reader{
		resolver: resolver,
		results:  NewCache[string, *entity.EntityAnnotations](),
	}
}

// Resolve returns the cached result for classID, computing it at most once
// while it stays cached. Callers must treat the result as read-only.
func (r *Reader) Resolve(classID string) (*entity.EntityAnnotations, error) {
	if result, ok := r.results.Get(classID); ok {
		return result, nil
	}

	value, err, _ := r.group.Do(classID, func() (interface{}, error) {
		if result, ok := r.results.Get(classID); ok {
			return result, nil
		}
		result, err := r.resolver.Resolve(classID)
		if err != nil {
			return nil, err
		}
		r.results.Set(classID, result)
		return result, nil
	})
	if err != nil {
		return nil, err
	}
	return value.(*entity.EntityAnnotations), nil
}

// Invalidate drops the cached result for classID
func (r *Reader) Invalidate(classID string) {
	r.results.Delete(classID)
}

// Purge drops every cached result
func (r *Reader) Purge() {
	r.results.Clear()
}

// Len returns the number of cached classes
func (r *Reader) Len() int {
	return r.results.Size()
}

// Classes returns the ids of the cached classes, sorted
func (r *Reader) Classes() []string {
	ids := r.results.Keys()
	sort.Strings(ids)
	return ids
}
