package form

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Bounds of the editable numeric parameters
const (
	MinFraction  = 0.0
	MaxFraction  = 1.0
	MinSuffixLen = 1
	MaxSuffixLen = 10
)

// Validation holds one message per checked field; an empty message means
// the field is valid.
type Validation struct {
	ValidationSize string `json:"train_validation_size,omitempty"`
	TestSize       string `json:"test_validation_size,omitempty"`
	MinSuffix      string `json:"min_suffix_size,omitempty"`
	Categorical    string `json:"categorical_columns,omitempty"`
	Continuous     string `json:"continuous_columns,omitempty"`
}

// HasErrors reports whether any check failed
func (v Validation) HasErrors() bool {
	return v.ValidationSize != "" ||
		v.TestSize != "" ||
		v.MinSuffix != "" ||
		v.Categorical != "" ||
		v.Continuous != ""
}

// For returns the message of a single field
func (v Validation) For(field Field) string {
	switch field {
	case FieldValidationSize:
		return v.ValidationSize
	case FieldTestSize:
		return v.TestSize
	case FieldMinSuffix:
		return v.MinSuffix
	case FieldCategorical:
		return v.Categorical
	case FieldContinuous:
		return v.Continuous
	default:
		return ""
	}
}

// Validate runs every check against the record. Checks are independent and
// none is skipped because another one failed.
func Validate(r Record, b Baseline) Validation {
	return Validation{
		ValidationSize: CheckFraction("Validation size", r.ValidationSize),
		TestSize:       CheckFraction("Test size", r.TestSize),
		MinSuffix:      CheckMinSuffix(r.MinSuffix),
		Categorical:    CheckAdded("categorical", b.Categorical, r.Categorical.Items),
		Continuous:     CheckAdded("continuous", b.Continuous, r.Continuous.Items),
	}
}

// CheckField runs the check of a single field against raw input, as if the
// input had been typed into that field
func CheckField(field Field, raw string, b Baseline) string {
	switch field {
	case FieldValidationSize:
		return CheckFraction("Validation size", raw)
	case FieldTestSize:
		return CheckFraction("Test size", raw)
	case FieldMinSuffix:
		return CheckMinSuffix(raw)
	case FieldCategorical:
		return CheckAdded("categorical", b.Categorical, ParseListField(raw).Items)
	case FieldContinuous:
		return CheckAdded("continuous", b.Continuous, ParseListField(raw).Items)
	default:
		return fmt.Sprintf("unknown field %q", field)
	}
}

// CheckFraction accepts a number in [0,1]
func CheckFraction(label, raw string) string {
	v, ok := parseFloat(raw)
	if !ok {
		return fmt.Sprintf("%s must be a number between 0 and 1.", label)
	}
	if v < MinFraction || v > MaxFraction {
		return fmt.Sprintf("%s must be between 0 and 1.", label)
	}
	return ""
}

// CheckMinSuffix accepts an integer in [1,10]
func CheckMinSuffix(raw string) string {
	n, ok := parseInt(raw)
	if !ok {
		return "Minimum suffix length must be an integer between 1 and 10."
	}
	if n < MinSuffixLen || n > MaxSuffixLen {
		return "Minimum suffix length must be between 1 and 10."
	}
	return ""
}

// CheckAdded reports the values of current that are missing from original
func CheckAdded(kind string, original, current []string) string {
	added := FindAdded(original, current)
	if len(added) == 0 {
		return ""
	}
	return fmt.Sprintf("The following %s values are not in the original list: %s", kind, strings.Join(added, ", "))
}

// FindAdded returns every element of current that original does not contain,
// in the order of current. A repeated value is returned once per occurrence.
func FindAdded(original, current []string) []string {
	known := make(map[string]struct{}, len(original))
	for _, o := range original {
		known[o] = struct{}{}
	}

	added := []string{}
	for _, c := range current {
		if _, ok := known[c]; !ok {
			added = append(added, c)
		}
	}
	return added
}

// parseFloat and parseInt deliberately accept only the whole trimmed string,
// the same values the backend accepts. "0.5abc" is not a number.
func parseFloat(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// parseInt is strict too: "3.0" is not an integer.
func parseInt(raw string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	return n, true
}
