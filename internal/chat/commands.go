package chat

import (
	"strings"

	"github.com/jkleczar/wypadek/internal/report"
)

// Recognized command tokens. Matching is case-insensitive and
// substring-based, mirroring how users actually type in chat.

var (
	skipTokens = []string{"pomiń", "pomin", "nie chcę podawać", "nie podam"}
	doneTokens = []string{"koniec", "to wszystko", "nic więcej"}
	yesTokens  = []string{"tak", "oczywiście", "zgadza się", "owszem"}
	noTokens   = []string{"nie", "skąd", "bynajmniej"}
)

func containsAny(input string, tokens []string) bool {
	lower := strings.ToLower(input)
	for _, t := range tokens {
		if strings.Contains(lower, t) {
			return true
		}
	}
	return false
}

// IsSkip reports whether the input asks to skip an optional question.
func IsSkip(input string) bool { return containsAny(input, skipTokens) }

// IsDone reports whether the input closes an open-ended loop.
func IsDone(input string) bool { return containsAny(input, doneTokens) }

// YesNo classifies the input as an answer. "nie" is checked after "tak"
// so that "no tak" style confirmations read as yes.
func YesNo(input string) (report.Answer, bool) {
	if containsAny(input, yesTokens) {
		return report.AnswerYes, true
	}
	if containsAny(input, noTokens) {
		return report.AnswerNo, true
	}
	return report.AnswerUnset, false
}
