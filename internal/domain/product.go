package domain

// Product is an opaque product record as returned by Open Food Facts.
// The external schema has hundreds of optional fields; the core only ever
// reads the ingredient/allergen/trace related ones, everything else is
// passed through untouched for display.
type Product map[string]interface{}

// Barcode returns the product code, trying the common identifier fields.
func (p Product) Barcode() string {
	for _, key := range []string{"code", "_id", "id"} {
		if v, ok := p[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

// Name returns the first non-empty product name variant.
func (p Product) Name() string {
	for _, key := range []string{"product_name", "product_name_en"} {
		if v, ok := p[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

// StringField returns a top-level string field, or "" when absent or not a string.
func (p Product) StringField(key string) string {
	v, _ := p[key].(string)
	return v
}

// StringSliceField returns a top-level array-of-strings field. Non-string
// elements are skipped; absent or wrong-typed fields yield nil.
func (p Product) StringSliceField(key string) []string {
	raw, ok := p[key].([]interface{})
	if !ok {
		return nil
	}
	var out []string
	for _, el := range raw {
		if s, ok := el.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
