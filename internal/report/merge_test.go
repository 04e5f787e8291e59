package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyOverwritesOnlyPresentKeys(t *testing.T) {
	rec := New()
	require.NoError(t, Apply(rec, Partial{"injuredName": "Jan", "nip": "1234567890"}))
	require.NoError(t, Apply(rec, Partial{"injuredName": "Adam"}))

	assert.Equal(t, "Adam", rec.InjuredName)
	assert.Equal(t, "1234567890", rec.NIP, "keys absent from the second partial stay put")
}

func TestApplyIsIdempotent(t *testing.T) {
	partial := Partial{
		"injuredName":    "Jan",
		"wasSudden":      "tak",
		"accidentSequence": []SequenceStep{{Description: "wszedł na drabinę"}, {Description: "upadek"}},
	}

	once := New()
	require.NoError(t, Apply(once, partial))
	twice := New()
	require.NoError(t, Apply(twice, partial))
	require.NoError(t, Apply(twice, partial))

	assert.Equal(t, once, twice)
}

func TestApplyReplacesSequenceWholesale(t *testing.T) {
	rec := New()
	require.NoError(t, Apply(rec, Partial{"accidentSequence": []SequenceStep{
		{Description: "krok pierwszy"},
		{Description: "krok drugi"},
		{Description: "krok trzeci"},
	}}))
	require.Len(t, rec.AccidentSequence, 3)

	require.NoError(t, Apply(rec, Partial{"accidentSequence": []SequenceStep{
		{Description: "jedyny krok"},
	}}))

	require.Len(t, rec.AccidentSequence, 1)
	assert.Equal(t, 1, rec.AccidentSequence[0].Step)
	assert.Equal(t, "jedyny krok", rec.AccidentSequence[0].Description)
}

func TestApplyEmptyPartialIsNoOp(t *testing.T) {
	rec := New()
	rec.InjuredName = "Jan"
	require.NoError(t, Apply(rec, Partial{}))
	assert.Equal(t, "Jan", rec.InjuredName)
}

func TestApplyRenumbersIncomingSequence(t *testing.T) {
	rec := New()
	require.NoError(t, Apply(rec, Partial{"accidentSequence": []SequenceStep{
		{Step: 7, Description: "a"},
		{Step: 2, Description: "b"},
	}}))
	assert.Equal(t, 1, rec.AccidentSequence[0].Step)
	assert.Equal(t, 2, rec.AccidentSequence[1].Step)
}
