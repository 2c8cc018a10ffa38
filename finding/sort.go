package finding

import "slices"

// Sort orders findings by severity rank, CRITICAL first. The sort is stable:
// findings of equal severity keep their relative order. The input slice is
// sorted in place and returned.
func Sort(findings []Finding) []Finding {
	slices.SortStableFunc(findings, func(a, b Finding) int {
		return a.Severity.Rank() - b.Severity.Rank()
	})
	return findings
}

// IsSorted reports whether findings are in non-decreasing severity rank.
func IsSorted(findings []Finding) bool {
	return slices.IsSortedFunc(findings, func(a, b Finding) int {
		return a.Severity.Rank() - b.Severity.Rank()
	})
}

// Highest returns the most urgent severity among findings. ok is false when
// findings is empty.
func Highest(findings []Finding) (severity Severity, ok bool) {
	for i, f := range findings {
		if i == 0 || f.Severity.Rank() < severity.Rank() {
			severity = f.Severity
		}
		ok = true
	}
	return severity, ok
}
