package report

import (
	"regexp"
	"strings"
)

var (
	peselRe = regexp.MustCompile(`^\d{11}$`)
	nipRe   = regexp.MustCompile(`^\d{10}$`)
	regonRe = regexp.MustCompile(`^\d{9}$`)
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^\d{9,}$`)
)

// ValidPESEL reports whether s is an 11-digit PESEL.
func ValidPESEL(s string) bool { return peselRe.MatchString(s) }

// NormalizeNIP strips dashes and spaces from a NIP as entered by the user.
func NormalizeNIP(s string) string {
	return strings.NewReplacer("-", "", " ", "").Replace(s)
}

// ValidNIP reports whether s, after dash stripping, is a 10-digit NIP.
func ValidNIP(s string) bool { return nipRe.MatchString(NormalizeNIP(s)) }

// ValidREGON reports whether s is a 9-digit REGON.
func ValidREGON(s string) bool { return regonRe.MatchString(s) }

// ValidEmail checks the usual local@domain.tld shape.
func ValidEmail(s string) bool { return emailRe.MatchString(s) }

// ValidPhone accepts at least nine digits, spaces ignored.
func ValidPhone(s string) bool {
	return phoneRe.MatchString(strings.ReplaceAll(s, " ", ""))
}
