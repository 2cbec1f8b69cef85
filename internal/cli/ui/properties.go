package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/tree"

	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/internal/domain/entity"
	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/internal/form"
)

// RenderLogList renders the catalog as a tree rooted at the server address
func RenderLogList(server string, logs []string) string {
	if len(logs) == 0 {
		return Styles.Key.Render("No event logs found")
	}

	root := tree.Root(Styles.Title.Render("Event logs") + Styles.Key.Render(" ("+server+")"))
	for _, name := range logs {
		root.Child(Styles.Value.Render(name))
	}

	summary := Styles.Key.Render(fmt.Sprintf("Total: %d event log(s)", len(logs)))
	return root.String() + "\n\n" + summary
}

// RenderProperties renders the property record of one event log as a tree
func RenderProperties(name string, props entity.LogProperties) string {
	fixed := tree.Root(Styles.Bold.Render("Fixed properties"))
	for _, prop := range form.FixedProperties(props) {
		fixed.Child(keyValue(prop.Label, prop.Value))
	}

	editable := tree.Root(Styles.Bold.Render("Editable properties")).
		Child(
			keyValue(form.FieldValidationSize.Label(), fmt.Sprint(props.TrainValidationSize)),
			keyValue(form.FieldTestSize.Label(), fmt.Sprint(props.TestValidationSize)),
			keyValue(form.FieldMinSuffix.Label(), fmt.Sprint(props.MinSuffixSize)),
			columnNode(form.FieldCategorical.Label(), props.CategoricalColumns),
			columnNode(form.FieldContinuous.Label(), props.ContinuousColumns),
		)

	return tree.Root(Styles.Title.Render(name)).
		Child(fixed, editable).
		String()
}

// RenderRecord renders the working record with inline validation messages
func RenderRecord(state form.State) string {
	if state.Record == nil {
		return Styles.Muted.Render("No event log properties loaded")
	}

	root := tree.Root(Styles.Title.Render(state.Selected))
	for _, field := range form.Fields {
		text := state.Record.Text(field)
		if text == "" {
			text = Styles.Muted.Render("(empty)")
		} else {
			text = Styles.Value.Render(text)
		}
		label := fmt.Sprintf("%s: %s", Styles.Key.Render(field.Label()), text)

		if msg := state.Validation.For(field); msg != "" {
			root.Child(tree.Root(label).Child(Styles.Invalid.Render("✗ " + msg)))
			continue
		}
		root.Child(label)
	}
	return root.String()
}

// ValidationSummary joins every inline message into one block
func ValidationSummary(v form.Validation) string {
	var lines []string
	for _, field := range form.Fields {
		if msg := v.For(field); msg != "" {
			lines = append(lines, fmt.Sprintf("• %s: %s", field.Label(), msg))
		}
	}
	return strings.Join(lines, "\n")
}

func keyValue(key, value string) string {
	if value == "" {
		value = Styles.Muted.Render("(none)")
	} else {
		value = Styles.Value.Render(value)
	}
	return fmt.Sprintf("%s: %s", Styles.Key.Render(key), value)
}

func columnNode(label string, columns []string) *tree.Tree {
	node := tree.Root(Styles.Key.Render(fmt.Sprintf("%s (%d)", label, len(columns))))
	if len(columns) == 0 {
		node.Child(Styles.Muted.Render("(none)"))
		return node
	}
	for _, col := range columns {
		node.Child(Styles.Value.Render(col))
	}
	return node
}
