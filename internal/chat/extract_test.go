package chat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExtractDate(t *testing.T) {
	now := time.Date(2025, 12, 6, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"iso", "wypadek był 2025-12-06 rano", "2025-12-06"},
		{"dotted", "06.12.2025", "2025-12-06"},
		{"yesterday", "to było wczoraj", "2025-12-05"},
		{"today", "dzisiaj po południu", "2025-12-06"},
		{"miss", "jakiś czas temu", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractDate(tt.input, now))
		})
	}
}

func TestExtractTime(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"colon", "około 14:30", "14:30"},
		{"single digit hour", "o 9:15", "09:15"},
		{"dot separator", "14.30", "14:30"},
		{"h separator", "14h30", "14:30"},
		{"morning", "to było rano", "08:00"},
		{"noon", "w południe", "12:00"},
		{"afternoon", "popołudniu", "15:00"},
		{"evening", "wieczorem", "18:00"},
		{"miss", "nie pamiętam", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractTime(tt.input))
		})
	}
}

func TestExtractPESEL(t *testing.T) {
	assert.Equal(t, "90010112345", ExtractPESEL("mój pesel to 90010112345"))
	assert.Equal(t, "90010112345", ExtractPESEL("900 101 12345"))
	assert.Empty(t, ExtractPESEL("1234567890"))
}

func TestExtractNIP(t *testing.T) {
	assert.Equal(t, "1234567890", ExtractNIP("NIP: 123-456-78-90"))
	assert.Equal(t, "1234567890", ExtractNIP("1234567890"))
	assert.Empty(t, ExtractNIP("123456789"))
}

func TestExtractEmail(t *testing.T) {
	assert.Equal(t, "jan@example.com", ExtractEmail("piszcie na jan@example.com proszę"))
	assert.Empty(t, ExtractEmail("nie mam adresu"))
}

func TestCapitalizeName(t *testing.T) {
	assert.Equal(t, "Jan", CapitalizeName("jAN"))
	assert.Equal(t, "Łukasz", CapitalizeName("łukasz"))
	assert.Empty(t, CapitalizeName("   "))
}

func TestCommandTokens(t *testing.T) {
	assert.True(t, IsSkip("Pomiń"))
	assert.True(t, IsSkip("pomin to pytanie"))
	assert.True(t, IsDone("Koniec opisu"))
	assert.False(t, IsDone("kontynuuję"))
}
