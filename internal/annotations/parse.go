package annotations

// Result is the annotation map of one comment block together with the
// occurrences that had to be dropped on the way.
type Result struct {
	Map    *Map
	Misses []*SyntaxError
}

// Parse normalizes a raw comment block, extracts its tags, parses their
// arguments and accumulates repeated tags. It never fails: malformed
// occurrences are reported in Result.Misses and left out of the map.
func Parse(comment string) Result {
	text := Normalize(comment)
	extraction := Extract(text)

	result := Result{
		Map:    NewMap(),
		Misses: extraction.Misses,
	}

	for _, occ := range extraction.Occurrences {
		value, err := ParseArguments(occ.Args)
		if err != nil {
			miss := NewSyntaxError(occ.Name, ReasonInvalidArguments, text, occ.Offset)
			miss.WithCause(err)
			result.Misses = append(result.Misses, miss)
			continue
		}
		result.Map.Add(occ.Name, value)
	}

	return result
}

// ParseMap is Parse without the diagnostics
func ParseMap(comment string) *Map {
	return Parse(comment).Map
}
