package dto

import (
	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/internal/domain/entity"
	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/internal/form"
)

// UpdateFieldRequest is one keystroke-level edit of a form field (HTTP)
type UpdateFieldRequest struct {
	Field string `json:"field" vd:"len($)>0"`
	Value string `json:"value"`
	// Seq orders the edits of one page; stale edits are not applied
	Seq int64 `json:"seq"`
}

// FieldResponse is the form after an edit (HTTP)
type FieldResponse struct {
	Field      string          `json:"field"`
	Text       string          `json:"text"`
	Validation form.Validation `json:"validation"`
	CanSubmit  bool            `json:"can_submit"`
	Seq        int64           `json:"seq,omitempty"`
	Applied    bool            `json:"applied"`
}

// FormStateResponse is the full form (HTTP)
type FormStateResponse struct {
	Logs       []string              `json:"logs"`
	Selected   string                `json:"selected,omitempty"`
	Busy       bool                  `json:"busy"`
	Properties *entity.LogProperties `json:"properties,omitempty"`
	Values     map[string]string     `json:"values,omitempty"`
	Validation form.Validation       `json:"validation"`
	CanSubmit  bool                  `json:"can_submit"`
}

// ToFieldResponse converts a form snapshot after an edit of field
func ToFieldResponse(field form.Field, state form.State) *FieldResponse {
	resp := &FieldResponse{
		Field:      string(field),
		Validation: state.Validation,
		CanSubmit:  state.CanSubmit(),
	}
	if state.Record != nil {
		resp.Text = state.Record.Text(field)
	}
	return resp
}

// ToFormStateResponse converts a form snapshot
func ToFormStateResponse(state form.State) *FormStateResponse {
	resp := &FormStateResponse{
		Logs:       state.Logs,
		Selected:   state.Selected,
		Busy:       state.Busy,
		Validation: state.Validation,
		CanSubmit:  state.CanSubmit(),
	}
	if resp.Logs == nil {
		resp.Logs = []string{}
	}
	if state.Record != nil {
		props := state.Record.Properties
		resp.Properties = &props
		resp.Values = make(map[string]string, len(form.Fields))
		for _, field := range form.Fields {
			resp.Values[string(field)] = state.Record.Text(field)
		}
	}
	return resp
}
