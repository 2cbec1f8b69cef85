package form

import (
	"fmt"
	"strconv"

	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/internal/domain/entity"
)

// Field names a user editable parameter. Values match the JSON keys of the
// property record.
type Field string

const (
	FieldValidationSize Field = "train_validation_size"
	FieldTestSize       Field = "test_validation_size"
	FieldMinSuffix      Field = "min_suffix_size"
	FieldCategorical    Field = "categorical_columns"
	FieldContinuous     Field = "continuous_columns"
)

// Fields lists the editable fields in display order
var Fields = []Field{
	FieldValidationSize,
	FieldTestSize,
	FieldMinSuffix,
	FieldCategorical,
	FieldContinuous,
}

// IsList reports whether the field holds a column list
func (f Field) IsList() bool {
	return f == FieldCategorical || f == FieldContinuous
}

// Label is the human readable name of the field
func (f Field) Label() string {
	switch f {
	case FieldValidationSize:
		return "Validation set size"
	case FieldTestSize:
		return "Test set size"
	case FieldMinSuffix:
		return "Minimum suffix length"
	case FieldCategorical:
		return "Categorical values to encode"
	case FieldContinuous:
		return "Continuous values to encode"
	default:
		return string(f)
	}
}

// Help is the hint shown under a field that has no error
func (f Field) Help() string {
	switch f {
	case FieldValidationSize, FieldTestSize:
		return "Fraction between 0 and 1 (inclusive)."
	case FieldMinSuffix:
		return "Integer between 1 and 10."
	case FieldCategorical:
		return "List of categorical column names separated by commas or spaces. Any name not in the original list will be treated as an error and block submission."
	case FieldContinuous:
		return "List of continuous column names separated by commas or spaces. Any name not in the original list will be treated as an error and block submission."
	default:
		return ""
	}
}

// ParseField maps a JSON key to a Field
func ParseField(name string) (Field, bool) {
	for _, f := range Fields {
		if string(f) == name {
			return f, true
		}
	}
	return "", false
}

// Record is the working copy of a property record while it is being edited.
// Numeric parameters are kept as typed text so invalid input stays visible.
type Record struct {
	Properties entity.LogProperties

	ValidationSize string
	TestSize       string
	MinSuffix      string
	Categorical    ListField
	Continuous     ListField
}

// NewRecord builds a working record from a loaded property record
func NewRecord(props entity.LogProperties) Record {
	props = props.Clone()
	return Record{
		Properties:     props,
		ValidationSize: strconv.FormatFloat(props.TrainValidationSize, 'f', -1, 64),
		TestSize:       strconv.FormatFloat(props.TestValidationSize, 'f', -1, 64),
		MinSuffix:      strconv.Itoa(props.MinSuffixSize),
		Categorical:    NewListField(props.CategoricalColumns),
		Continuous:     NewListField(props.ContinuousColumns),
	}
}

// Text returns the current input text of a field
func (r Record) Text(field Field) string {
	switch field {
	case FieldValidationSize:
		return r.ValidationSize
	case FieldTestSize:
		return r.TestSize
	case FieldMinSuffix:
		return r.MinSuffix
	case FieldCategorical:
		return r.Categorical.Text
	case FieldContinuous:
		return r.Continuous.Text
	default:
		return ""
	}
}

// Payload converts the record back into a property record. It fails when a
// numeric field does not parse; callers validate first.
func (r Record) Payload() (entity.LogProperties, error) {
	props := r.Properties.Clone()

	val, ok := parseFloat(r.ValidationSize)
	if !ok {
		return props, fmt.Errorf("invalid %s: %q", FieldValidationSize, r.ValidationSize)
	}
	test, ok := parseFloat(r.TestSize)
	if !ok {
		return props, fmt.Errorf("invalid %s: %q", FieldTestSize, r.TestSize)
	}
	suffix, ok := parseInt(r.MinSuffix)
	if !ok {
		return props, fmt.Errorf("invalid %s: %q", FieldMinSuffix, r.MinSuffix)
	}

	props.TrainValidationSize = val
	props.TestValidationSize = test
	props.MinSuffixSize = suffix
	props.CategoricalColumns = cloneStrings(r.Categorical.Items)
	props.ContinuousColumns = cloneStrings(r.Continuous.Items)
	return props, nil
}

func (r Record) clone() Record {
	out := r
	out.Properties = r.Properties.Clone()
	out.Categorical = r.Categorical.clone()
	out.Continuous = r.Continuous.clone()
	return out
}

// Baseline is the column lists as first loaded for the selected log. Added
// values are detected against it.
type Baseline struct {
	Categorical []string
	Continuous  []string
}

func newBaseline(props entity.LogProperties) Baseline {
	return Baseline{
		Categorical: cloneStrings(props.CategoricalColumns),
		Continuous:  cloneStrings(props.ContinuousColumns),
	}
}

func (b Baseline) clone() Baseline {
	return Baseline{
		Categorical: cloneStrings(b.Categorical),
		Continuous:  cloneStrings(b.Continuous),
	}
}
