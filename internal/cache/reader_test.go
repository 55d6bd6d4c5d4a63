package cache

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/entitydoc/internal/entity"
	"github.com/toyz/entitydoc/internal/errors"
)

type countingResolver struct {
	calls atomic.Int32
	delay time.Duration
	fail  atomic.Bool
}

func (c *countingResolver) Resolve(classID string) (*entity.EntityAnnotations, error) {
	c.calls.Add(1)
	time.Sleep(c.delay)
	if c.fail.Load() {
		return nil, fmt.Errorf("class %q: %w", classID, errors.ErrClassNotFound)
	}
	return &entity.EntityAnnotations{ClassName: classID}, nil
}

func TestReaderMemoizesResults(t *testing.T) {
	resolver := &countingResolver{}
	reader := NewReader(resolver)

	first, err := reader.Resolve("User")
	require.NoError(t, err)
	second, err := reader.Resolve("User")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int32(1), resolver.calls.Load())
	assert.Equal(t, 1, reader.Len())
}

func TestReaderComputesOncePerClassUnderContention(t *testing.T) {
	resolver := &countingResolver{delay: 20 * time.Millisecond}
	reader := NewReader(resolver)

	var wg sync.WaitGroup
	results := make([]*entity.EntityAnnotations, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			result, err := reader.Resolve("User")
			assert.NoError(t, err)
			results[i] = result
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), resolver.calls.Load())
	for _, result := range results {
		assert.Same(t, results[0], result)
	}
}

func TestReaderKeysByClass(t *testing.T) {
	resolver := &countingResolver{}
	reader := NewReader(resolver)

	user, err := reader.Resolve("User")
	require.NoError(t, err)
	order, err := reader.Resolve("Order")
	require.NoError(t, err)

	assert.Equal(t, "User", user.ClassName)
	assert.Equal(t, "Order", order.ClassName)
	assert.Equal(t, int32(2), resolver.calls.Load())
}

func TestReaderDoesNotCacheFailures(t *testing.T) {
	resolver := &countingResolver{}
	resolver.fail.Store(true)
	reader := NewReader(resolver)

	_, err := reader.Resolve("User")
	require.ErrorIs(t, err, errors.ErrClassNotFound)
	assert.Equal(t, 0, reader.Len())

	resolver.fail.Store(false)
	result, err := reader.Resolve("User")
	require.NoError(t, err)
	assert.Equal(t, "User", result.ClassName)
	assert.Equal(t, int32(2), resolver.calls.Load())
}

func TestReaderInvalidateAndPurge(t *testing.T) {
	resolver := &countingResolver{}
	reader := NewReader(resolver)

	_, _ = reader.Resolve("User")
	_, _ = reader.Resolve("Order")
	require.Equal(t, 2, reader.Len())

	assert.Equal(t, []string{"Order", "User"}, reader.Classes())

	reader.Invalidate("User")
	assert.Equal(t, 1, reader.Len())
	assert.Equal(t, []string{"Order"}, reader.Classes())
	_, _ = reader.Resolve("User")
	assert.Equal(t, int32(3), resolver.calls.Load())

	reader.Purge()
	assert.Equal(t, 0, reader.Len())
	assert.Empty(t, reader.Classes())
}

func TestReaderWrapsEntityReader(t *testing.T) {
	introspector := entity.NewStaticIntrospector(entity.ClassSource{
		ID:      "User",
		Comment: "/** @table users */",
	})
	reader := NewReader(entity.NewReader(introspector))

	result, err := reader.Resolve("User")
	require.NoError(t, err)
	table, _ := result.Class.Get("table")
	s, _ := table.Str()
	assert.Equal(t, "users", s)
}
