package models

// PropertyRecord is a single harvested listing, tagged with the state whose
// stream produced it. Every field defaults to the empty string when the
// source omits it; the record is never mutated after construction.
type PropertyRecord struct {
	State     string
	Name      string
	City      string
	Address   string
	Price     string
	Bedrooms  string
	Bathrooms string
	URL       string
	Slug      string
}

// HeaderFields is the canonical column order for report sheets. The first
// record written to a sheet fixes its header to this order for the sheet's
// lifetime.
var HeaderFields = []string{
	"state", "name", "city", "address", "price", "bedrooms", "bathrooms", "url", "slug",
}

// Values returns the record's fields in HeaderFields order.
func (r *PropertyRecord) Values() []string {
	return []string{
		r.State, r.Name, r.City, r.Address,
		r.Price, r.Bedrooms, r.Bathrooms, r.URL, r.Slug,
	}
}

// CrawlTarget tracks pagination progress for one state stream. It is owned
// by a single goroutine and discarded when that stream stops.
type CrawlTarget struct {
	State     string
	PageCount int
	MaxPages  int
}
