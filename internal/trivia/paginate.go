package trivia

// Paginate slices items into the 1-based page of the given size. Pages beyond
// the end yield an empty slice; the caller decides what that means. Input
// order is preserved and the input is never mutated.
func Paginate[T any](items []T, page, pageSize int) []T {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return nil
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
