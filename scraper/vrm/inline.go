package vrm

import (
	"encoding/json"
	"regexp"
)

// inlineModelRe matches the page initialization script:
//
//	window.__INITIAL_STATE__ = { ... };
//
// (?s) lets the payload span lines; the non-greedy body stops at the "};"
// that terminates the assignment statement.
var inlineModelRe = regexp.MustCompile(`(?s)window\.__INITIAL_STATE__\s*=\s*(\{.*?\});`)

// ExtractInlineModel recovers the JSON model embedded in page markup.
// It returns (nil, false) when the marker is missing or the payload does
// not parse; pages without a usable model are expected and never abort the
// crawl. Only the first marker occurrence is considered.
func ExtractInlineModel(markup string) (map[string]any, bool) {
	m := inlineModelRe.FindStringSubmatch(markup)
	if m == nil {
		return nil, false
	}

	var model map[string]any
	if err := json.Unmarshal([]byte(m[1]), &model); err != nil {
		return nil, false
	}
	return model, true
}
