package chat

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jkleczar/wypadek/internal/report"
)

// Free-text extraction heuristics shared by the scripted backend and the
// LLM backfill path. They are deliberately permissive: a miss means a
// re-prompt, never an error.

var (
	isoDateRe    = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
	dottedDateRe = regexp.MustCompile(`(\d{2})\.(\d{2})\.(\d{4})`)
	clockRe      = regexp.MustCompile(`(\d{1,2})[:.h](\d{2})`)
	peselFindRe  = regexp.MustCompile(`\b\d{11}\b`)
	nipFindRe    = regexp.MustCompile(`\b\d{3}[- ]?\d{3}[- ]?\d{2}[- ]?\d{2}\b|\b\d{10}\b`)
	emailFindRe  = regexp.MustCompile(`[^\s@]+@[^\s@]+\.[^\s@]+`)
)

// ExtractDate recognizes YYYY-MM-DD, DD.MM.YYYY and the relative words
// "wczoraj" / "dzisiaj" / "dziś" against now. Empty string on miss.
func ExtractDate(input string, now time.Time) string {
	if m := isoDateRe.FindString(input); m != "" {
		return m
	}
	if m := dottedDateRe.FindStringSubmatch(input); m != nil {
		return fmt.Sprintf("%s-%s-%s", m[3], m[2], m[1])
	}
	lower := strings.ToLower(input)
	switch {
	case strings.Contains(lower, "wczoraj"):
		return now.AddDate(0, 0, -1).Format("2006-01-02")
	case strings.Contains(lower, "dzisiaj"), strings.Contains(lower, "dziś"):
		return now.Format("2006-01-02")
	}
	return ""
}

// Named parts of day and the clock times the original assistant assigned.
var dayParts = []struct {
	word string
	at   string
}{
	{"rano", "08:00"},
	{"popołudni", "15:00"}, // before "południe", which it contains
	{"południe", "12:00"},
	{"wieczór", "18:00"},
	{"wieczor", "18:00"},
}

// ExtractTime recognizes HH:MM (also "." and "h" separators) and named
// parts of day. Empty string on miss.
func ExtractTime(input string) string {
	if m := clockRe.FindStringSubmatch(input); m != nil {
		hh := m[1]
		if len(hh) == 1 {
			hh = "0" + hh
		}
		return hh + ":" + m[2]
	}
	lower := strings.ToLower(input)
	for _, p := range dayParts {
		if strings.Contains(lower, p.word) {
			return p.at
		}
	}
	return ""
}

// ExtractPESEL finds an 11-digit run in the input.
func ExtractPESEL(input string) string {
	compact := strings.ReplaceAll(input, " ", "")
	if report.ValidPESEL(compact) {
		return compact
	}
	return peselFindRe.FindString(input)
}

// ExtractNIP finds a 10-digit NIP, tolerating the usual dash grouping.
func ExtractNIP(input string) string {
	if m := nipFindRe.FindString(input); m != "" {
		return report.NormalizeNIP(m)
	}
	compact := report.NormalizeNIP(input)
	if report.ValidNIP(compact) {
		return compact
	}
	return ""
}

// ExtractEmail finds an email-shaped token.
func ExtractEmail(input string) string {
	return emailFindRe.FindString(input)
}

// CapitalizeName folds a name token to "Xxxx" form the way the scripted
// assistant echoes first and last names.
func CapitalizeName(input string) string {
	s := strings.TrimSpace(input)
	if s == "" {
		return ""
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
	return string(runes)
}
