package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseListField(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantText  string
		wantItems []string
	}{
		{
			name:      "comma without space gets a space",
			raw:       "a,b",
			wantText:  "a, b",
			wantItems: []string{"a", "b"},
		},
		{
			name:      "runs of separators collapse",
			raw:       "a,  b ,c",
			wantText:  "a,  b , c",
			wantItems: []string{"a", "b", "c"},
		},
		{
			name:      "trailing comma is kept while typing",
			raw:       "a, b,",
			wantText:  "a, b,",
			wantItems: []string{"a", "b"},
		},
		{
			name:      "trailing space is kept while typing",
			raw:       "a ",
			wantText:  "a ",
			wantItems: []string{"a"},
		},
		{
			name:      "space separated",
			raw:       "Activity Resource",
			wantText:  "Activity Resource",
			wantItems: []string{"Activity", "Resource"},
		},
		{
			name:      "duplicates are preserved",
			raw:       "a,a",
			wantText:  "a, a",
			wantItems: []string{"a", "a"},
		},
		{
			name:      "double comma",
			raw:       ",,a",
			wantText:  ", ,a",
			wantItems: []string{"a"},
		},
		{
			name:      "empty input",
			raw:       "",
			wantText:  "",
			wantItems: []string{},
		},
		{
			name:      "whitespace only",
			raw:       "   ",
			wantText:  "   ",
			wantItems: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseListField(tt.raw)
			assert.Equal(t, tt.wantText, got.Text)
			assert.Equal(t, tt.wantItems, got.Items)
		})
	}
}

func TestNewListField(t *testing.T) {
	items := []string{"Activity", "Resource"}
	f := NewListField(items)

	assert.Equal(t, "Activity, Resource", f.Text)
	assert.Equal(t, items, f.Items)

	items[0] = "changed"
	assert.Equal(t, "Activity", f.Items[0], "field must not alias the input slice")
}

func TestNewListFieldEmpty(t *testing.T) {
	f := NewListField(nil)
	assert.Equal(t, "", f.Text)
	assert.Empty(t, f.Items)
}

func TestNormalizedCursor(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		pos  int
		want int
	}{
		{name: "no change", raw: "a, b", pos: 2, want: 2},
		{name: "space inserted before cursor", raw: "a,b", pos: 2, want: 3},
		{name: "space inserted after cursor", raw: "a,b,c", pos: 1, want: 1},
		{name: "edit in the middle", raw: "Lifecycle,Activity, Resource", pos: 10, want: 11},
		{name: "two insertions before cursor", raw: "a,b,c", pos: 5, want: 7},
		{name: "wide characters", raw: "事件,日志", pos: 3, want: 4},
		{name: "start", raw: "a,b", pos: 0, want: 0},
		{name: "past end", raw: "a,b", pos: 9, want: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizedCursor(tt.raw, tt.pos))
		})
	}
}
