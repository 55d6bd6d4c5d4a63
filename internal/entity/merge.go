package entity

import "github.com/toyz/entitydoc/internal/annotations"

// DeepMerge combines a child's annotations with those it inherits.
// Keys from both sides are kept. Where both sides hold a keyed group the
// groups are merged key by key, recursively; any other conflict is won by
// the child, so lists are replaced rather than concatenated.
func DeepMerge(child, parent *annotations.Map) *annotations.Map {
	merged := annotations.NewMap()

	parent.Range(func(name string, inherited annotations.Value) bool {
		if own, ok := child.Get(name); ok {
			merged.Set(name, mergeValues(own, inherited))
			return true
		}
		merged.Set(name, inherited)
		return true
	})

	child.Range(func(name string, own annotations.Value) bool {
		if !merged.Has(name) {
			merged.Set(name, own)
		}
		return true
	})

	return merged
}

func mergeValues(own, inherited annotations.Value) annotations.Value {
	ownEntries, ownIsGroup := own.Entries()
	inheritedEntries, inheritedIsGroup := inherited.Entries()
	if !ownIsGroup || !inheritedIsGroup {
		return own
	}

	inheritedOrder, inheritedByKey := annotations.CollapseEntries(inheritedEntries)
	ownOrder, ownByKey := annotations.CollapseEntries(ownEntries)

	entries := make([]annotations.Entry, 0, len(inheritedOrder)+len(ownOrder))
	for _, key := range inheritedOrder {
		if entry, ok := ownByKey[key]; ok {
			entry.Value = mergeValues(entry.Value, inheritedByKey[key].Value)
			entries = append(entries, entry)
			continue
		}
		entries = append(entries, inheritedByKey[key])
	}
	for _, key := range ownOrder {
		if _, ok := inheritedByKey[key]; !ok {
			entries = append(entries, ownByKey[key])
		}
	}

	return annotations.Group(entries...)
}
