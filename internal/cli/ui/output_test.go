package ui

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prevOut, prevNoColor := Out, color.NoColor
	Out, color.NoColor = &buf, true
	t.Cleanup(func() { Out, color.NoColor = prevOut, prevNoColor })
	return &buf
}

func TestPrintMessages(t *testing.T) {
	buf := captureOutput(t)

	PrintSuccess("saved %s", "a.zip")
	PrintError("failed: %d", 2)
	PrintWarning("Cancelled")
	PrintInfo("Connecting to %s...", "http://x")

	assert.Equal(t, "✓ saved a.zip\n✗ failed: 2\n⚠ Cancelled\nℹ Connecting to http://x...\n", buf.String())
}

func TestPrintBoxes(t *testing.T) {
	buf := captureOutput(t)

	PrintErrorBox("Encoding Failed", "Error during processing.")
	PrintFormBanner("http://127.0.0.1:8000")

	out := buf.String()
	assert.Contains(t, out, "Encoding Failed")
	assert.Contains(t, out, "Error during processing.")
	assert.Contains(t, out, "Event Log Preparation")
	assert.Contains(t, out, "http://127.0.0.1:8000")
}
