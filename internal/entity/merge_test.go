package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	a "github.com/toyz/entitydoc/internal/annotations"
)

func TestDeepMergeScalars(t *testing.T) {
	child := a.ParseMap("/** @table child_t\n * @inherit */")
	parent := a.ParseMap("/** @table parent_t\n * @schema s */")

	merged := DeepMerge(child, parent)

	table, _ := merged.Get("table")
	s, _ := table.Str()
	assert.Equal(t, "child_t", s)

	schema, ok := merged.Get("schema")
	require.True(t, ok)
	s, _ = schema.Str()
	assert.Equal(t, "s", s)

	assert.True(t, merged.Has("inherit"))
	assert.Equal(t, []string{"table", "schema", "inherit"}, merged.Keys())
}

func TestDeepMergeGroupsRecursively(t *testing.T) {
	child := a.NewMap()
	child.Set("cache", a.Group(
		a.Keyed("ttl", a.Number(60)),
		a.Keyed("options", a.Group(a.Keyed("region", a.String("eu")))),
	))

	parent := a.NewMap()
	parent.Set("cache", a.Group(
		a.Keyed("driver", a.String("redis")),
		a.Keyed("ttl", a.Number(3600)),
		a.Keyed("options", a.Group(a.Keyed("region", a.String("us")), a.Keyed("tls", a.Bool(true)))),
	))

	merged := DeepMerge(child, parent)
	cache, _ := merged.Get("cache")

	expected := a.Group(
		a.Keyed("driver", a.String("redis")),
		a.Keyed("ttl", a.Number(60)),
		a.Keyed("options", a.Group(a.Keyed("region", a.String("eu")), a.Keyed("tls", a.Bool(true)))),
	)
	assert.True(t, a.Equal(expected, cache), "got %s", cache)
}

func TestDeepMergeChildWinsOnKindMismatch(t *testing.T) {
	child := a.NewMap()
	child.Set("cache", a.Bool(false))
	parent := a.NewMap()
	parent.Set("cache", a.Group(a.Keyed("ttl", a.Number(1))))

	merged := DeepMerge(child, parent)
	v, _ := merged.Get("cache")
	assert.True(t, a.Equal(a.Bool(false), v))
}

func TestDeepMergeReplacesLists(t *testing.T) {
	child := a.ParseMap("/** @index a\n * @index b */")
	parent := a.ParseMap("/** @index x\n * @index y\n * @index z */")

	merged := DeepMerge(child, parent)
	v, _ := merged.Get("index")
	assert.True(t, a.Equal(a.List(a.String("a"), a.String("b")), v), "got %s", v)
}

func TestDeepMergePositionalEntriesByIndex(t *testing.T) {
	child := a.ParseMap(`/** @order("name") */`)
	parent := a.ParseMap(`/** @order("id", "created_at") */`)

	merged := DeepMerge(child, parent)
	v, _ := merged.Get("order")
	expected := a.Group(a.Positional(a.String("name")), a.Positional(a.String("created_at")))
	assert.True(t, a.Equal(expected, v), "got %s", v)
}

func TestDeepMergeLeavesInputsUntouched(t *testing.T) {
	child := a.ParseMap("/** @table c */")
	parent := a.ParseMap("/** @table p\n * @schema s */")

	DeepMerge(child, parent)

	assert.Equal(t, 1, child.Len())
	assert.Equal(t, 2, parent.Len())
}
