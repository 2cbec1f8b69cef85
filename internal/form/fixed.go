package form

import (
	"strings"

	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/internal/domain/entity"
)

// FixedProperty is a read-only property shown next to the editable fields
type FixedProperty struct {
	Label string
	Value string
}

// FixedProperties lists the read-only properties of a record in display
// order. Every surface renders this list so they stay in step.
func FixedProperties(p entity.LogProperties) []FixedProperty {
	fixed := []FixedProperty{
		{"Case name", p.CaseName},
		{"Concept name", p.ConceptName},
		{"Timestamp name", p.TimestampName},
		{"Date format", p.DateFormat},
		{"Time since case start column", p.TimeSinceCaseStartColumn},
		{"Time since last event column", p.TimeSinceLastEventColumn},
		{"Day in week column", p.DayInWeekColumn},
		{"Seconds in day column", p.SecondsInDayColumn},
	}
	if p.WindowSize != "" {
		fixed = append(fixed, FixedProperty{"Window size", p.WindowSize})
	}
	if len(p.ContinuousPositiveColumns) > 0 {
		fixed = append(fixed, FixedProperty{"Continuous positive columns", strings.Join(p.ContinuousPositiveColumns, ", ")})
	}
	return fixed
}
