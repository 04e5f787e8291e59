// Package render formats a report record as text, Markdown, or PDF.
// Rendering never mutates the record; the diacritic folding used for
// the PDF's base font is a presentation detail only.
package render

import "strings"

var folder = strings.NewReplacer(
	"ą", "a", "Ą", "A",
	"ć", "c", "Ć", "C",
	"ę", "e", "Ę", "E",
	"ł", "l", "Ł", "L",
	"ń", "n", "Ń", "N",
	"ó", "o", "Ó", "O",
	"ś", "s", "Ś", "S",
	"ź", "z", "Ź", "Z",
	"ż", "z", "Ż", "Z",
)

// Fold substitutes Polish diacritics with base-Latin equivalents for
// fonts that cannot render them.
func Fold(s string) string {
	return folder.Replace(s)
}
