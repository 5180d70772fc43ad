// Package suffixarray builds the suffix array of a sentinel-terminated
// string, as required by fmindex.FMIndex's construction.
package suffixarray

import "sort"

// Build returns the suffix array of s: a permutation of [0, len(s)) such
// that s[SA[i]:] < s[SA[j]:] lexicographically iff i < j.
//
// This is a straightforward comparison sort over suffix start indices
// rather than a linear-time construction (e.g. SA-IS); spec.md explicitly
// permits either, and the distilled source this module implements makes
// the same choice for the same reason: clarity over asymptotic optimality
// at the genome sizes this exercise targets. The sort is a total order (no
// two suffixes of a sentinel-terminated string with a unique sentinel are
// equal), so the result is deterministic for a given input.
func Build(s string) []int {
	sa := make([]int, len(s))
	for i := range sa {
		sa[i] = i
	}
	sort.Slice(sa, func(i, j int) bool {
		return s[sa[i]:] < s[sa[j]:]
	})
	return sa
}
