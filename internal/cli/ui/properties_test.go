package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/internal/domain/entity"
	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/internal/form"
)

func TestRenderLogList(t *testing.T) {
	out := RenderLogList("http://127.0.0.1:8000", []string{"helpdesk", "sepsis"})
	assert.Contains(t, out, "helpdesk")
	assert.Contains(t, out, "sepsis")
	assert.Contains(t, out, "Total: 2 event log(s)")

	assert.Contains(t, RenderLogList("http://127.0.0.1:8000", nil), "No event logs found")
}

func TestRenderProperties(t *testing.T) {
	out := RenderProperties("helpdesk", entity.LogProperties{
		CaseName:            "CaseID",
		DateFormat:          "%Y/%m/%d %H:%M:%S.%f",
		TrainValidationSize: 0.15,
		MinSuffixSize:       5,
		CategoricalColumns:  []string{"Activity", "Resource"},
	})

	assert.Contains(t, out, "helpdesk")
	assert.Contains(t, out, "CaseID")
	assert.Contains(t, out, "0.15")
	assert.Contains(t, out, "Categorical values to encode (2)")
	assert.Contains(t, out, "Resource")
}

func TestRenderRecordShowsErrors(t *testing.T) {
	record := form.NewRecord(entity.LogProperties{
		TrainValidationSize: 0.15,
		TestValidationSize:  0.2,
		MinSuffixSize:       5,
	})
	record.MinSuffix = "42"

	state := form.State{
		Selected: "helpdesk",
		Record:   &record,
		Validation: form.Validation{
			MinSuffix: "Minimum suffix length must be between 1 and 10.",
		},
	}

	out := RenderRecord(state)
	assert.Contains(t, out, "42")
	assert.Contains(t, out, "Minimum suffix length must be between 1 and 10.")

	assert.Contains(t, RenderRecord(form.State{}), "No event log properties loaded")
}

func TestValidationSummary(t *testing.T) {
	assert.Empty(t, ValidationSummary(form.Validation{}))

	summary := ValidationSummary(form.Validation{
		TestSize:    "Test size must be between 0 and 1.",
		Categorical: "The following categorical values are not in the original list: z",
	})
	assert.Contains(t, summary, "Test size must be between 0 and 1.")
	assert.Contains(t, summary, "not in the original list: z")
}
