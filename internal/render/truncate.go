package render

// Truncate shortens s to at most max runes. max <= 0 means no limit.
func Truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	n := 0
	for i := range s {
		if n == max {
			return s[:i]
		}
		n++
	}
	return s
}

// Clip returns at most max leading items. max <= 0 yields an empty slice.
func Clip[T any](items []T, max int) []T {
	if max <= 0 {
		return items[:0:0]
	}
	if len(items) > max {
		return items[:max]
	}
	return items
}
