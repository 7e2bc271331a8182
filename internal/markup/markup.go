// Package markup implements the editor's inline markup dialect:
// **bold**, _italic_, and line-leading "• " (bullet), "<n>. " (numbered),
// "□ " (unchecked task). All functions are pure.
package markup

import (
	"regexp"
	"strconv"
	"strings"
)

// Placeholder labels inserted when nothing is selected.
const (
	BoldPlaceholder   = "**bold text**"
	ItalicPlaceholder = "_italic text_"
	BulletLabel       = "List item"
	NumberedLabel     = "List item"
	CheckboxLabel     = "Task"
)

// Selection is a byte range within the text. Start == End means no
// selection (a bare cursor).
type Selection struct {
	Start int
	End   int
}

func (s Selection) empty() bool {
	return s.Start >= s.End
}

func (s Selection) clamp(n int) Selection {
	if s.Start < 0 {
		s.Start = 0
	}
	if s.End > n {
		s.End = n
	}
	return s
}

// InsertBold wraps the selected substring in ** markers, or appends a
// placeholder when the selection is empty. Only marker characters are
// inserted at the selection boundaries; the rest of the text is never
// rescanned or re-escaped.
func InsertBold(text string, sel Selection) string {
	return insertInline(text, sel, "**", BoldPlaceholder)
}

// InsertItalic wraps the selected substring in _ markers, or appends a
// placeholder when the selection is empty.
func InsertItalic(text string, sel Selection) string {
	return insertInline(text, sel, "_", ItalicPlaceholder)
}

func insertInline(text string, sel Selection, marker, placeholder string) string {
	sel = sel.clamp(len(text))
	if sel.empty() {
		return text + placeholder
	}
	return text[:sel.Start] + marker + text[sel.Start:sel.End] + marker + text[sel.End:]
}

// AppendBullet appends a new bullet line to the text.
func AppendBullet(text string) string {
	return text + "\n• " + BulletLabel
}

// AppendNumbered appends a new numbered line to the text. The number is
// the count of numbered lines already present plus one, so consecutive
// appends produce 1., 2., 3. without renumbering existing lines.
func AppendNumbered(text string) string {
	n := 1 + len(numberedLine.FindAllString(text, -1))
	return text + "\n" + strconv.Itoa(n) + ". " + NumberedLabel
}

// AppendCheckbox appends a new unchecked task line to the text.
func AppendCheckbox(text string) string {
	return text + "\n□ " + CheckboxLabel
}

var (
	boldSpan     = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicSpan   = regexp.MustCompile(`_(.*?)_`)
	bulletLine   = regexp.MustCompile(`(?m)^[•□] `)
	numberedLine = regexp.MustCompile(`(?m)^\d+\. `)
)

// ToPlainText flattens markup for sharing: bold/italic markers are
// stripped keeping the inner text, and bullet, checkbox, and numbered line
// prefixes all become "- ". The transform is lossy and export-only; the
// output is never fed back into the editor.
func ToPlainText(text string) string {
	out := boldSpan.ReplaceAllString(text, "$1")
	out = italicSpan.ReplaceAllString(out, "$1")
	out = bulletLine.ReplaceAllString(out, "- ")
	out = numberedLine.ReplaceAllString(out, "- ")
	return out
}

// Preview returns the first maxLines lines of content, appending "..." on
// a new line if truncated. Content with maxLines or fewer lines is
// returned unchanged.
func Preview(content string, maxLines int) string {
	if content == "" || maxLines <= 0 {
		return content
	}

	pos := 0
	found := 0
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			found++
			if found == maxLines {
				pos = i
				break
			}
		}
	}
	if found < maxLines {
		return content
	}
	return content[:pos] + "\n..."
}

// CountLines returns the number of lines in content. Empty content has 0.
func CountLines(content string) int {
	if content == "" {
		return 0
	}
	return strings.Count(content, "\n") + 1
}
