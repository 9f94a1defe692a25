package repository

// HitFilter constrains admin hit listings. Optional dimensions use sentinel
// absence: an empty string or zero timestamp means the dimension is omitted
// from the query entirely, never matched against.
type HitFilter struct {
	Category  string // equality, "" = omitted
	IPAddress string // equality, "" = omitted
	Before    int64  // date <= Before, 0 = omitted
	After     int64  // date >= After, 0 = omitted
	Limit     int
	Page      int // 1-based
}

// Offset returns the pagination offset for the filter's page/limit pair.
func (f HitFilter) Offset() int {
	page := f.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * f.Limit
}

// Applied reports exactly the dimensions that participate in the query,
// keyed by their wire names. Used to echo effective filters back to callers.
func (f HitFilter) Applied() map[string]any {
	applied := make(map[string]any)
	if f.Category != "" {
		applied["category"] = f.Category
	}
	if f.IPAddress != "" {
		applied["ip_address"] = f.IPAddress
	}
	if f.Before > 0 {
		applied["before"] = f.Before
	}
	if f.After > 0 {
		applied["after"] = f.After
	}
	return applied
}
