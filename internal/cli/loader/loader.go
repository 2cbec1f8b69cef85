package loader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"sigs.k8s.io/yaml"

	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/internal/form"
)

// ParameterFile holds overrides for the editable properties of one event log.
// Absent keys keep the defaults returned by the backend.
type ParameterFile struct {
	// EventLog optionally names the log the parameters belong to
	EventLog string `json:"event_log,omitempty"`

	TrainValidationSize *float64 `json:"train_validation_size,omitempty"`
	TestValidationSize  *float64 `json:"test_validation_size,omitempty"`
	MinSuffixSize       *int     `json:"min_suffix_size,omitempty"`
	CategoricalColumns  []string `json:"categorical_columns,omitempty"`
	ContinuousColumns   []string `json:"continuous_columns,omitempty"`
}

// FieldSetter is the part of the form controller a parameter file writes to
type FieldSetter interface {
	SetField(field form.Field, raw string) error
}

// LoadFromFile loads a parameter file in YAML or JSON
func LoadFromFile(path string) (*ParameterFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var params ParameterFile
	if err := yaml.UnmarshalStrict(data, &params); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}

	return &params, nil
}

// Values returns the raw text of every field present in the file
func (p *ParameterFile) Values() map[form.Field]string {
	values := make(map[form.Field]string)
	if p.TrainValidationSize != nil {
		values[form.FieldValidationSize] = strconv.FormatFloat(*p.TrainValidationSize, 'f', -1, 64)
	}
	if p.TestValidationSize != nil {
		values[form.FieldTestSize] = strconv.FormatFloat(*p.TestValidationSize, 'f', -1, 64)
	}
	if p.MinSuffixSize != nil {
		values[form.FieldMinSuffix] = strconv.Itoa(*p.MinSuffixSize)
	}
	if p.CategoricalColumns != nil {
		values[form.FieldCategorical] = strings.Join(p.CategoricalColumns, ", ")
	}
	if p.ContinuousColumns != nil {
		values[form.FieldContinuous] = strings.Join(p.ContinuousColumns, ", ")
	}
	return values
}

// ApplyTo writes every present field into the form in field order
func (p *ParameterFile) ApplyTo(target FieldSetter) error {
	values := p.Values()
	for _, field := range form.Fields {
		raw, ok := values[field]
		if !ok {
			continue
		}
		if err := target.SetField(field, raw); err != nil {
			return fmt.Errorf("failed to set %s: %w", field, err)
		}
	}
	return nil
}
