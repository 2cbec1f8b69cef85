package form

import (
	"regexp"
	"strings"
)

var (
	// a comma directly followed by anything but a space
	commaWithoutSpace = regexp.MustCompile(`,([^ ])`)
	// runs of commas and/or spaces
	listSeparators = regexp.MustCompile(`[, ]+`)
)

// ListField keeps the text a user is typing together with the column names
// parsed from it. Both halves are always derived from the same input.
type ListField struct {
	Text  string
	Items []string
}

// NewListField builds a field from a loaded column list
func NewListField(items []string) ListField {
	return ListField{
		Text:  strings.Join(items, ", "),
		Items: cloneStrings(items),
	}
}

// ParseListField normalizes raw input and parses it into column names
func ParseListField(raw string) ListField {
	text := NormalizeListText(raw)
	return ListField{
		Text:  text,
		Items: ParseList(text),
	}
}

// NormalizeListText inserts a space after every comma that is directly
// followed by another character. Trailing commas and spaces are kept so the
// user can keep typing.
func NormalizeListText(raw string) string {
	return commaWithoutSpace.ReplaceAllString(raw, ", $1")
}

// NormalizedCursor maps a rune cursor position in raw to the same spot in
// NormalizeListText(raw), past every space inserted before it.
func NormalizedCursor(raw string, pos int) int {
	runes := []rune(raw)
	if pos <= 0 {
		return 0
	}
	if pos > len(runes) {
		pos = len(runes)
	}
	offset := len(string(runes[:pos]))

	shifted := pos
	for _, loc := range commaWithoutSpace.FindAllStringIndex(raw, -1) {
		if loc[0] >= offset {
			break
		}
		shifted++
	}
	return shifted
}

// ParseList splits text on runs of commas or spaces. Pieces are trimmed and
// empty pieces dropped; order and duplicates are preserved.
func ParseList(text string) []string {
	parts := listSeparators.Split(text, -1)
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		items = append(items, part)
	}
	return items
}

func (f ListField) clone() ListField {
	return ListField{Text: f.Text, Items: cloneStrings(f.Items)}
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
