package repository

// Paginator plans offset pagination windows. Each instance carries its
// own default and hard cap, so callers with different limits can
// coexist.
type Paginator struct {
	Default int
	Max     int
}

// NewPaginator creates a paginator with the given default page size and
// hard cap. Non-positive values fall back to 10 and 16.
func NewPaginator(def, max int) Paginator {
	if def <= 0 {
		def = 10
	}
	if max <= 0 {
		max = 16
	}
	if def > max {
		def = max
	}
	return Paginator{Default: def, Max: max}
}

// Window an effective pagination directive. Page and Limit are the
// values actually used and must be echoed back to the caller.
type Window struct {
	Page  int
	Limit int
	Skip  int
}

// Plan clamps the requested page and limit into a concrete window.
// Pages below 1 become page 1; limits below 1 take the default; limits
// above the cap are clamped to the cap.
func (p Paginator) Plan(page, limit int) Window {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = p.Default
	}
	if limit > p.Max {
		limit = p.Max
	}
	return Window{
		Page:  page,
		Limit: limit,
		Skip:  (page - 1) * limit,
	}
}
