package usecase

// Pagination defaults shared by listing use cases.
const (
	DefaultPageSize = 50
	MaxPageSize     = 100

	// Number of recent movements included in a balance summary.
	BalanceSummaryMovements = 10
)

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
