package vrm

import (
	"regexp"
	"strings"
)

var slugSepRe = regexp.MustCompile(`[^a-z0-9]+`)

// Slug derives a URL-safe identifier from a property's name, city and
// state. Each part is lower-cased, every run of characters outside
// [a-z0-9] collapses to a single hyphen, and parts that clean to nothing
// are dropped. Surviving parts join in name-city-state order.
func Slug(name, city, state string) string {
	parts := make([]string, 0, 3)
	for _, part := range []string{name, city, state} {
		cleaned := strings.Trim(slugSepRe.ReplaceAllString(strings.ToLower(part), "-"), "-")
		if cleaned != "" {
			parts = append(parts, cleaned)
		}
	}
	return strings.Join(parts, "-")
}
