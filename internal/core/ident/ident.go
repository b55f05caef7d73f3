// Package ident allocates collection-scoped integer identifiers.
// Allocation is a scan of existing ids at the moment a record is
// materialized; the single-writer state container serializes callers, so
// max+1 never collides.
package ident

// Next returns max(ids)+1, or 1 for an empty collection.
func Next(ids []int) int {
	max := 0
	for _, id := range ids {
		if id > max {
			max = id
		}
	}
	return max + 1
}

// Sequence returns n contiguous ids starting at Next(ids). Bulk generators
// use one sequence per batch rather than re-scanning mid-loop.
func Sequence(ids []int, n int) []int {
	start := Next(ids)
	out := make([]int, n)
	for i := range out {
		out[i] = start + i
	}
	return out
}
