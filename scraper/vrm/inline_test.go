package vrm

import "testing"

const validPage = `<html><head>
<script>var analytics = {"id": 1};</script>
<script>
window.__INITIAL_STATE__ =
	{"properties": [{"name": "Sea Breeze", "city": "Norfolk", "price": "120"}, {"name": "Hilltop", "city": "Richmond", "bedrooms": 3}]};
</script>
</head><body><div>listings</div></body></html>`

func TestExtractInlineModel(t *testing.T) {
	model, ok := ExtractInlineModel(validPage)
	if !ok {
		t.Fatal("expected model to be extracted")
	}

	props, ok := model["properties"].([]any)
	if !ok {
		t.Fatalf("properties: got %T, want []any", model["properties"])
	}
	if len(props) != 2 {
		t.Fatalf("properties length: got %d, want 2", len(props))
	}

	first, ok := props[0].(map[string]any)
	if !ok {
		t.Fatalf("first property: got %T, want map", props[0])
	}
	if first["name"] != "Sea Breeze" {
		t.Errorf("first name: got %v, want Sea Breeze", first["name"])
	}
	if first["price"] != "120" {
		t.Errorf("first price: got %v, want \"120\"", first["price"])
	}

	second := props[1].(map[string]any)
	if second["name"] != "Hilltop" {
		t.Errorf("order not preserved, second name: got %v", second["name"])
	}
}

func TestExtractInlineModelNoMarker(t *testing.T) {
	markup := `<html><script>var other = {"properties": []};</script></html>`
	if _, ok := ExtractInlineModel(markup); ok {
		t.Error("expected absent result for markup without the marker")
	}
}

func TestExtractInlineModelMalformedPayload(t *testing.T) {
	markup := `<html><script>window.__INITIAL_STATE__ = {broken json};</script></html>`
	if _, ok := ExtractInlineModel(markup); ok {
		t.Error("expected absent result for malformed payload")
	}
}

func TestExtractInlineModelEmptyMarkup(t *testing.T) {
	if _, ok := ExtractInlineModel(""); ok {
		t.Error("expected absent result for empty markup")
	}
}

func TestExtractInlineModelFirstMarkerWins(t *testing.T) {
	markup := `<script>window.__INITIAL_STATE__ = {"properties": [{"name": "First"}]};</script>
<script>window.__INITIAL_STATE__ = {"properties": [{"name": "Second"}]};</script>`

	model, ok := ExtractInlineModel(markup)
	if !ok {
		t.Fatal("expected model to be extracted")
	}
	props := model["properties"].([]any)
	first := props[0].(map[string]any)
	if first["name"] != "First" {
		t.Errorf("expected first marker occurrence, got %v", first["name"])
	}
}

func TestExtractInlineModelIrregularSpacing(t *testing.T) {
	markup := "<script>window.__INITIAL_STATE__   \n\t=   \n{\"properties\": []};</script>"
	model, ok := ExtractInlineModel(markup)
	if !ok {
		t.Fatal("expected model despite irregular spacing")
	}
	if props, _ := model["properties"].([]any); len(props) != 0 {
		t.Errorf("properties: got %v, want empty", props)
	}
}
