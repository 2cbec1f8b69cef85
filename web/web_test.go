package web

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplatesParse(t *testing.T) {
	tmpl, err := Templates(nil)
	require.NoError(t, err)
	assert.NotNil(t, tmpl.Lookup("index.html.tmpl"))
}

// The page script numbers field edits, drops superseded responses and only
// writes normalized text back over the value it sent.
func TestScriptSequencesFieldEdits(t *testing.T) {
	script, err := fs.ReadFile(Static(), "app.js")
	require.NoError(t, err)

	src := string(script)
	assert.Contains(t, src, "seq: seq")
	assert.Contains(t, src, "latestSeq[input.name] !== seq")
	assert.Contains(t, src, "input.value === sent")
	assert.Contains(t, src, "filename\\*=UTF-8''")
}
