package schema

// fallbackByKind resolves a type-appropriate default for fields declared
// without an explicit one. Every kind in Kinds() has an entry, so resolution
// is total: no field ever resolves to an undefined value.
var fallbackByKind = map[Kind]func(Field) any{
	KindBoolean: func(Field) any { return false },
	KindNumber:  numericFallback,
	KindSlider:  numericFallback,
	KindMultiSelect: func(Field) any {
		return []string{}
	},
	KindArray: func(Field) any {
		return []any{}
	},
	KindSelect: func(f Field) any {
		if len(f.Options) > 0 {
			return f.Options[0].Value
		}

		return ""
	},
	KindColor:    func(Field) any { return "#000000" },
	KindText:     emptyStringFallback,
	KindTextarea: emptyStringFallback,
	KindCode:     emptyStringFallback,
	KindDate:     emptyStringFallback,
	KindTime:     emptyStringFallback,
	KindPassword: emptyStringFallback,
	KindEmail:    emptyStringFallback,
	KindURL:      emptyStringFallback,
}

func numericFallback(f Field) any {
	if f.Min != nil {
		return *f.Min
	}

	return float64(0)
}

func emptyStringFallback(Field) any { return "" }

// FallbackValue returns the deterministic default for a field: the declared
// Default when present, otherwise the kind-derived fallback. Pure function of
// the descriptor.
func FallbackValue(f Field) any {
	if f.Default != nil {
		return f.Default
	}

	if fallback, ok := fallbackByKind[f.Kind]; ok {
		return fallback(f)
	}

	return ""
}

// Defaults builds the default config for a template, one resolved value per
// declared field.
func Defaults(t *Template) Config {
	cfg := make(Config, len(t.Fields))
	for _, f := range t.Fields {
		cfg[f.Key] = FallbackValue(f)
	}

	return cfg
}

// Merge overlays stored values onto the template defaults. A key present in
// stored always wins, fields absent from both get their kind-derived
// fallback, and stored keys the template does not declare are carried
// through untouched.
func Merge(t *Template, stored Config) Config {
	cfg := Defaults(t)
	for k, v := range stored {
		cfg[k] = v
	}

	return cfg
}
