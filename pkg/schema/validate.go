package schema

import (
	"fmt"
	"math"
	"net/url"
	"reflect"
	"regexp"
	"strconv"
	"unicode/utf8"
)

// Errors maps field keys to their single error message. An empty map means
// the config is valid.
type Errors map[string]string

// emailPattern is an RFC-lite check: one @, no whitespace, a dotted domain.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// kindChecks holds the type-specific checks applied when a value is present.
// Kinds without an entry only go through required and rule checks.
var kindChecks = map[Kind]func(Field, any) string{
	KindNumber:      checkNumeric,
	KindSlider:      checkNumeric,
	KindEmail:       checkEmail,
	KindURL:         checkURL,
	KindArray:       checkList,
	KindMultiSelect: checkList,
}

// Validate checks a candidate config against a template and returns one error
// message per failing field key. It is a pure function: identical inputs
// always produce identical results.
//
// Fields hidden by their visibility predicate are skipped entirely and never
// contribute an error, even when their stored value would otherwise fail.
// For visible fields the checks run in a fixed order - required, kind check,
// field bounds, named rules, custom rule - and the first failure wins.
func Validate(t *Template, cfg Config) Errors {
	errs := make(Errors)

	for _, f := range t.Fields {
		if !f.Visible(cfg) {
			continue
		}

		value := cfg[f.Key]
		if isEmpty(value) {
			if f.Required {
				errs[f.Key] = f.DisplayLabel() + " is required"
			}

			continue
		}

		if msg := validateValue(f, value, cfg); msg != "" {
			errs[f.Key] = msg
		}
	}

	return errs
}

// ValidateField runs the checks for a single visible field value. Used by the
// config session for live per-field feedback.
func ValidateField(f Field, value any, cfg Config) string {
	if !f.Visible(cfg) {
		return ""
	}

	if isEmpty(value) {
		if f.Required {
			return f.DisplayLabel() + " is required"
		}

		return ""
	}

	return validateValue(f, value, cfg)
}

func validateValue(f Field, value any, cfg Config) string {
	if check, ok := kindChecks[f.Kind]; ok {
		if msg := check(f, value); msg != "" {
			return msg
		}
	}

	if msg := checkBounds(f, value); msg != "" {
		return msg
	}

	if f.Rules != nil {
		if msg := checkRules(f, value, cfg); msg != "" {
			return msg
		}
	}

	return ""
}

// isEmpty reports the absent/null/empty-string cases that trip the required
// check.
func isEmpty(value any) bool {
	if value == nil {
		return true
	}

	if s, ok := value.(string); ok {
		return s == ""
	}

	return false
}

func checkNumeric(f Field, value any) string {
	n, ok := toFloat(value)
	if !ok || math.IsNaN(n) || math.IsInf(n, 0) {
		return f.DisplayLabel() + " must be a number"
	}

	return ""
}

func checkEmail(f Field, value any) string {
	s, ok := value.(string)
	if !ok || !emailPattern.MatchString(s) {
		return f.DisplayLabel() + " must be a valid email address"
	}

	return ""
}

func checkURL(f Field, value any) string {
	s, ok := value.(string)
	if !ok {
		return f.DisplayLabel() + " must be a valid URL"
	}

	parsed, err := url.Parse(s)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return f.DisplayLabel() + " must be a valid URL"
	}

	return ""
}

func checkList(f Field, value any) string {
	kind := reflect.ValueOf(value).Kind()
	if kind != reflect.Slice && kind != reflect.Array {
		return f.DisplayLabel() + " must be a list"
	}

	return ""
}

// checkBounds applies the descriptor-level Min/Max bounds of number and
// slider fields.
func checkBounds(f Field, value any) string {
	if f.Kind != KindNumber && f.Kind != KindSlider {
		return ""
	}

	n, ok := toFloat(value)
	if !ok {
		return ""
	}

	if f.Min != nil && n < *f.Min {
		return fmt.Sprintf("%s must be at least %v", f.DisplayLabel(), *f.Min)
	}

	if f.Max != nil && n > *f.Max {
		return fmt.Sprintf("%s must be at most %v", f.DisplayLabel(), *f.Max)
	}

	return ""
}

// checkRules evaluates the named rules in declaration order; the first
// failing rule produces the field's message.
func checkRules(f Field, value any, cfg Config) string {
	rules := f.Rules
	label := f.DisplayLabel()

	if rules.Min != nil {
		if n, ok := toFloat(value); ok && n < *rules.Min {
			return fmt.Sprintf("%s must be at least %v", label, *rules.Min)
		}
	}

	if rules.Max != nil {
		if n, ok := toFloat(value); ok && n > *rules.Max {
			return fmt.Sprintf("%s must be at most %v", label, *rules.Max)
		}
	}

	if rules.MinLength != nil {
		if l, ok := lengthOf(value); ok && l < *rules.MinLength {
			return fmt.Sprintf("%s must be at least %d %s", label, *rules.MinLength, lengthUnit(value))
		}
	}

	if rules.MaxLength != nil {
		if l, ok := lengthOf(value); ok && l > *rules.MaxLength {
			return fmt.Sprintf("%s must be at most %d %s", label, *rules.MaxLength, lengthUnit(value))
		}
	}

	if rules.Pattern != "" {
		if msg := checkPattern(rules, label, value); msg != "" {
			return msg
		}
	}

	if rules.Custom != nil {
		if err := rules.Custom(value, cfg); err != nil {
			if err.Error() == "" {
				return "Validation failed"
			}

			return err.Error()
		}
	}

	return ""
}

func checkPattern(rules *Rules, label string, value any) string {
	s, isString := value.(string)
	if !isString {
		return ""
	}

	re, err := regexp.Compile(rules.Pattern)
	if err != nil {
		// Template author error; an uncompilable pattern cannot match
		// anything, so it is skipped rather than failing every config.
		return ""
	}

	if !re.MatchString(s) {
		if rules.PatternMessage != "" {
			return rules.PatternMessage
		}

		return label + " has an invalid format"
	}

	return ""
}

// toFloat coerces the numeric representations a JSON-decoded config can
// carry.
func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}

		return n, true
	default:
		return 0, false
	}
}

// lengthUnit picks the word used in length error messages.
func lengthUnit(value any) string {
	if _, ok := value.(string); ok {
		return "characters"
	}

	return "entries"
}

// lengthOf measures strings in runes and lists in elements.
func lengthOf(value any) (int, bool) {
	if s, ok := value.(string); ok {
		return utf8.RuneCountInString(s), true
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		return rv.Len(), true
	}

	return 0, false
}
